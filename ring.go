// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shmq

import "code.hybscloud.com/spin"

// ring is the lock-free MPMC algorithm operating on a header and slot
// array that live inside shared memory rather than a private Go slice.
//
// Each slot carries a sequence number alongside its payload. A producer
// claims a slot by CASing enqueue_pos once the slot's sequence matches
// the position being claimed, then release-stores sequence+1 after
// copying the payload in; a consumer mirrors this against dequeue_pos,
// publishing its claimed position+capacity on completion so the slot is
// ready for the next lap. tail/head/seq live as atomix.Uint64 values at fixed byte
// offsets inside data rather than as struct fields, and the payload is a
// raw elementSize-byte slice, because elements here are opaque bytes
// crossing an address-space boundary, not typed Go values.
type ring struct {
	data []byte
	hdr  *header
	l    layout
}

func newRing(data []byte, hdr *header, l layout) *ring {
	return &ring{data: data, hdr: hdr, l: l}
}

// tryEnqueue copies payload into the next free slot. payload must be
// exactly l.elementSize bytes; a mismatched length is rejected before
// any ticket is claimed, leaving enqueue_pos unchanged.
func (r *ring) tryEnqueue(payload []byte) error {
	if uint64(len(payload)) != r.l.elementSize {
		return ErrInvalidParameters
	}

	sw := spin.Wait{}
	pos := r.hdr.enqueuePos.LoadAcquire()
	for {
		off := r.l.slotOffset(pos & r.l.mask)
		seqPtr := slotSequencePtr(r.data, off)
		seq := seqPtr.LoadAcquire()
		diff := int64(seq) - int64(pos)

		switch {
		case diff == 0:
			if r.hdr.enqueuePos.CompareAndSwapRelaxed(pos, pos+1) {
				copy(slotPayload(r.data, off, r.l.elementSize), payload)
				seqPtr.StoreRelease(pos + 1)
				return nil
			}
			pos = r.hdr.enqueuePos.LoadAcquire()
		case diff < 0:
			return ErrFull
		default:
			pos = r.hdr.enqueuePos.LoadAcquire()
		}
		sw.Once()
	}
}

// tryDequeue claims the next published slot and copies its payload out
// into a freshly allocated elementSize-byte slice.
func (r *ring) tryDequeue() ([]byte, error) {
	sw := spin.Wait{}
	pos := r.hdr.dequeuePos.LoadAcquire()
	for {
		off := r.l.slotOffset(pos & r.l.mask)
		seqPtr := slotSequencePtr(r.data, off)
		seq := seqPtr.LoadAcquire()
		diff := int64(seq) - int64(pos+1)

		switch {
		case diff == 0:
			if r.hdr.dequeuePos.CompareAndSwapRelaxed(pos, pos+1) {
				out := make([]byte, r.l.elementSize)
				copy(out, slotPayload(r.data, off, r.l.elementSize))
				seqPtr.StoreRelease(pos + r.l.capacity)
				return out, nil
			}
			pos = r.hdr.dequeuePos.LoadAcquire()
		case diff < 0:
			return nil, ErrEmpty
		default:
			pos = r.hdr.dequeuePos.LoadAcquire()
		}
		sw.Once()
	}
}

// isEmpty is a best-effort hint: a snapshot, not a transactional fact.
func (r *ring) isEmpty() bool {
	enq := r.hdr.enqueuePos.LoadAcquire()
	deq := r.hdr.dequeuePos.LoadAcquire()
	return enq == deq
}

// isFull is the symmetric best-effort hint.
func (r *ring) isFull() bool {
	enq := r.hdr.enqueuePos.LoadAcquire()
	deq := r.hdr.dequeuePos.LoadAcquire()
	return enq-deq >= r.l.capacity
}

func (r *ring) capacity() uint64 {
	return r.l.capacity
}

func (r *ring) elementSize() uint64 {
	return r.l.elementSize
}
