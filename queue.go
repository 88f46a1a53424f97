// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shmq

import (
	"fmt"
	"time"

	"code.hybscloud.com/spin"
)

// Queue is a handle to an attached shared-memory segment. It is returned
// by Create and Attach and implements Handle.
//
// A Queue must be obtained via Create or Attach; the zero value is not
// usable. Every method is safe to call concurrently from any number of
// goroutines in any number of attached processes — synchronization is
// carried entirely by the atomics inside the shared segment, there is no
// in-process lock guarding Queue itself.
type Queue struct {
	seg     *segment
	hdr     *header
	l       layout
	r       *ring
	created bool
}

// Create creates a new named shared-memory queue sized for capacity
// elements of elementSize bytes each. capacity must be a power of two;
// both must be non-zero. Fails with ErrInvalidParameters on bad
// parameters, or ErrCreateFailed if a segment with this name already
// exists or the OS otherwise refuses creation.
func Create(name string, elementSize, capacity uint64) (*Queue, error) {
	l, err := newLayout(elementSize, capacity)
	if err != nil {
		return nil, err
	}

	seg, _, err := openOrCreateSegment(name, l.segmentSize(), true)
	if err != nil {
		return nil, err
	}

	hdr := headerAt(seg.data)
	hdr.init(seg.data, l)

	return &Queue{seg: seg, hdr: hdr, l: l, r: newRing(seg.data, hdr, l), created: true}, nil
}

// Attach opens an existing named shared-memory queue. It waits, bounded
// by WithWait (2s by default), both for the object to reach its full
// size (the brief window between the creator's exclusive create and its
// ftruncate call) and for ready to be set. If opts supplies
// WithElementSize/WithCapacity, the segment's header must match or
// Attach fails with ErrInvalidParameters. Fails with ErrOpenFailed if the
// segment does not exist or the wait budget expires first.
func Attach(name string, opts ...AttachOption) (*Queue, error) {
	o := resolveAttachOptions(opts)
	deadline := time.Now().Add(o.wait)

	seg, err := attachSegment(name, deadline)
	if err != nil {
		return nil, err
	}
	hdr := headerAt(seg.data)

	if err := waitReady(hdr, deadline); err != nil {
		_ = platformUnmap(seg)
		return nil, err
	}

	if err := hdr.validate(o.elementSize, o.capacity); err != nil {
		_ = platformUnmap(seg)
		return nil, err
	}

	l, err := newLayout(hdr.elementSize, hdr.capacity)
	if err != nil {
		_ = platformUnmap(seg)
		return nil, err
	}

	return &Queue{seg: seg, hdr: hdr, l: l, r: newRing(seg.data, hdr, l)}, nil
}

// attachSegment retries openOrCreateSegment until the named object
// exists and has grown to at least HeaderSize bytes, or deadline passes.
func attachSegment(name string, deadline time.Time) (*segment, error) {
	sw := spin.Wait{}
	for {
		seg, _, err := openOrCreateSegment(name, 0, false)
		if err == nil {
			return seg, nil
		}
		if !IsOpenFailed(err) || time.Now().After(deadline) {
			return nil, err
		}
		sw.Once()
	}
}

// waitReady acquire-spins on hdr.ready until it becomes non-zero or
// deadline passes.
func waitReady(hdr *header, deadline time.Time) error {
	sw := spin.Wait{}
	for hdr.ready.LoadAcquire() == 0 {
		if time.Now().After(deadline) {
			return fmt.Errorf("shmq: timed out waiting for segment to become ready: %w", ErrOpenFailed)
		}
		sw.Once()
	}
	return nil
}

// TryEnqueue implements Producer.
func (q *Queue) TryEnqueue(b []byte) error {
	return q.r.tryEnqueue(b)
}

// TryDequeue implements Consumer.
func (q *Queue) TryDequeue() ([]byte, error) {
	return q.r.tryDequeue()
}

// Capacity returns the number of slots in the queue.
func (q *Queue) Capacity() uint64 {
	return q.r.capacity()
}

// ElementSize returns the fixed payload size, in bytes, of every element.
func (q *Queue) ElementSize() uint64 {
	return q.r.elementSize()
}

// IsEmpty reports a best-effort snapshot of emptiness: concurrent
// producers and consumers can invalidate it before the caller acts on it.
func (q *Queue) IsEmpty() bool {
	return q.r.isEmpty()
}

// IsFull reports a best-effort snapshot of fullness, subject to the same
// staleness as IsEmpty.
func (q *Queue) IsFull() bool {
	return q.r.isFull()
}

// Created reports whether this handle is the one that created the
// segment (as opposed to attaching to one created by another process).
func (q *Queue) Created() bool {
	return q.created
}

// Detach unmaps the segment from this process. It does not unlink the
// underlying named object; other attached processes, and the object
// itself, are unaffected. Use Unlink to remove the object once no
// process needs it anymore.
func (q *Queue) Detach() error {
	return q.seg.unmap()
}

var _ Handle = (*Queue)(nil)
