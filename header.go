// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shmq

import (
	"fmt"
	"unsafe"

	"code.hybscloud.com/atomix"
)

// header is overlaid directly on the first HeaderSize bytes of the mapped
// segment via unsafe.Pointer, in the manner of the generation counter in
// other_examples' calvinalkan-agent-task/pkg/slotcache and the
// cache-line-aligned message struct in AlephTX-aleph-tx/feeder/shm's
// seqlock ring. Field order fixes field offsets (Go never reorders
// declared struct fields), and the trailing pad arrays place enqueuePos
// and dequeuePos each on its own cache line so producers and consumers
// never share a cache line. ready shares the first line with the
// immutable fields; it is written once, at init.
type header struct {
	magic       [8]byte     // 0..8
	version     uint32      // 8..12
	_           [4]byte     // 12..16 reserved
	elementSize uint64      // 16..24
	capacity    uint64      // 24..32
	ready       atomix.Uint64 // 32..40
	_           [24]byte    // 40..64 pad to next cache line
	enqueuePos  atomix.Uint64 // 64..72
	_           [56]byte    // 72..128 pad to next cache line
	dequeuePos  atomix.Uint64 // 128..136
	_           [56]byte    // 136..192 pad to HeaderSize
}

func init() {
	if sz := unsafe.Sizeof(header{}); sz != HeaderSize {
		panic(fmt.Sprintf("shmq: header size is %d, expected %d", sz, HeaderSize))
	}
	if off := unsafe.Offsetof(header{}.ready); off != 32 {
		panic(fmt.Sprintf("shmq: header.ready offset is %d, expected 32", off))
	}
	if off := unsafe.Offsetof(header{}.enqueuePos); off != 64 {
		panic(fmt.Sprintf("shmq: header.enqueuePos offset is %d, expected 64", off))
	}
	if off := unsafe.Offsetof(header{}.dequeuePos); off != 128 {
		panic(fmt.Sprintf("shmq: header.dequeuePos offset is %d, expected 128", off))
	}
}

// headerAt casts the start of a mapped segment to *header. data must be
// at least HeaderSize bytes.
func headerAt(data []byte) *header {
	return (*header)(unsafe.Pointer(&data[0]))
}

// init zeroes the header, writes the immutable fields, seeds every slot's
// sequence to its own index, and — last — release-stores ready. Only
// after that store may another process attach safely.
func (h *header) init(data []byte, l layout) {
	clear(data[:HeaderSize])
	copy(h.magic[:], magicValue)
	h.version = layoutVersion
	h.elementSize = l.elementSize
	h.capacity = l.capacity

	for i := uint64(0); i < l.capacity; i++ {
		slotSequencePtr(data, l.slotOffset(i)).StoreRelaxed(i)
	}

	h.ready.StoreRelease(1)
}

// validate checks the header against compile-time layout constants and,
// when non-zero, against caller-supplied expectations.
func (h *header) validate(wantElementSize, wantCapacity uint64) error {
	if string(h.magic[:]) != magicValue {
		return fmt.Errorf("shmq: bad magic: %w", ErrInvalidParameters)
	}
	if h.version != layoutVersion {
		return fmt.Errorf("shmq: layout version %d, expected %d: %w", h.version, layoutVersion, ErrInvalidParameters)
	}
	cap := h.capacity
	if cap == 0 || cap&(cap-1) != 0 {
		return fmt.Errorf("shmq: capacity %d is not a power of two: %w", cap, ErrInvalidParameters)
	}
	if h.elementSize == 0 {
		return fmt.Errorf("shmq: element_size is zero: %w", ErrInvalidParameters)
	}
	if wantElementSize != 0 && wantElementSize != h.elementSize {
		return fmt.Errorf("shmq: element_size %d, expected %d: %w", h.elementSize, wantElementSize, ErrInvalidParameters)
	}
	if wantCapacity != 0 && wantCapacity != cap {
		return fmt.Errorf("shmq: capacity %d, expected %d: %w", cap, wantCapacity, ErrInvalidParameters)
	}
	return nil
}

// slotSequencePtr returns a pointer to the 8-byte atomic sequence counter
// of the slot beginning at byte offset off within data.
func slotSequencePtr(data []byte, off uint64) *atomix.Uint64 {
	return (*atomix.Uint64)(unsafe.Pointer(&data[off]))
}

// slotPayload returns the elementSize-byte payload region of the slot
// beginning at byte offset off within data.
func slotPayload(data []byte, off, elementSize uint64) []byte {
	start := off + 8
	return data[start : start+elementSize]
}
