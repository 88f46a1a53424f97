// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shmq

// Binary layout constants. Offsets are fixed: magic at 0,
// version at 8, element_size at 16, capacity at 24, ready at 32,
// enqueue_pos at 64, dequeue_pos at 128. HeaderSize is a cache-line
// multiple large enough to isolate magic, enqueue_pos, and dequeue_pos
// onto distinct lines.
const (
	// magicValue identifies the segment layout. Eight printable bytes,
	// stored as-is at offset 0.
	magicValue = "FQUEUE01"

	// layoutVersion is the layout version written at offset 8.
	layoutVersion uint32 = 1

	// cacheLineSize is the assumed false-sharing boundary. 64 bytes is
	// correct for every mainstream x86_64/arm64 target; a wider line only
	// costs a little padding, it never breaks correctness.
	cacheLineSize = 64

	// HeaderSize is the fixed size, in bytes, of the segment header.
	HeaderSize = 192
)

// layout computes the positional addressing scheme for a segment with a
// given element size and capacity. It carries no runtime state beyond
// these derived numbers.
type layout struct {
	elementSize uint64
	capacity    uint64
	slotSize    uint64 // round_up(8 + elementSize, cacheLineSize)
	mask        uint64 // capacity - 1
}

// newLayout validates capacity/elementSize and derives the rest of the
// layout. capacity must already be a power of two (the header stores it
// verbatim for cross-process validation; silently rounding it, as the
// in-process lfq builder does, would let two
// attachers disagree about what they asked for).
func newLayout(elementSize, capacity uint64) (layout, error) {
	if elementSize == 0 || capacity == 0 {
		return layout{}, ErrInvalidParameters
	}
	if capacity&(capacity-1) != 0 {
		return layout{}, ErrInvalidParameters
	}
	slotSize := roundUpCacheLine(8 + elementSize)
	return layout{
		elementSize: elementSize,
		capacity:    capacity,
		slotSize:    slotSize,
		mask:        capacity - 1,
	}, nil
}

// segmentSize returns the total size in bytes of the segment this layout
// describes: HEADER_SIZE + capacity × SLOT_SIZE.
func (l layout) segmentSize() uint64 {
	return HeaderSize + l.capacity*l.slotSize
}

// slotOffset returns the byte offset of slot i (already reduced mod
// capacity by the caller via pos & mask) relative to the start of the
// segment.
func (l layout) slotOffset(i uint64) uint64 {
	return HeaderSize + i*l.slotSize
}

func roundUpCacheLine(n uint64) uint64 {
	return (n + cacheLineSize - 1) / cacheLineSize * cacheLineSize
}
