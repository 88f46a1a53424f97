// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shmq

import (
	"errors"
	"fmt"

	"code.hybscloud.com/iox"
)

// ErrFull indicates TryEnqueue observed the target slot a full cycle
// behind its claim: the queue is at capacity.
//
// ErrFull is a control flow signal, not a failure. It chains to
// [iox.ErrWouldBlock] so [IsWouldBlock] and [iox.IsWouldBlock] recognize it;
// use [IsFull] or errors.Is(err, ErrFull) when the distinction from
// [ErrEmpty] matters.
var ErrFull = fmt.Errorf("shmq: queue full: %w", iox.ErrWouldBlock)

// ErrEmpty indicates TryDequeue observed the target slot not yet
// published: the queue has no item for the caller's ticket.
//
// Like ErrFull, ErrEmpty is a control flow signal chained to
// [iox.ErrWouldBlock].
var ErrEmpty = fmt.Errorf("shmq: queue empty: %w", iox.ErrWouldBlock)

// ErrInvalidParameters indicates a caller-supplied parameter is missing,
// zero, out of range, or disagrees with a previously-initialized header.
//
// Raised by: Create with a missing or zero element_size/capacity, Create
// with a non-power-of-two capacity, TryEnqueue with a payload whose length
// does not equal element_size, and Attach with an explicit
// element_size/capacity override that does not match the segment's header.
var ErrInvalidParameters = errors.New("shmq: invalid parameters")

// ErrCreateFailed indicates the OS rejected exclusive creation of the
// named segment (it already exists, or creation was otherwise refused).
var ErrCreateFailed = errors.New("shmq: create failed")

// ErrOpenFailed indicates the OS rejected opening the named segment, or
// an Attach call's bounded wait for the segment to become ready expired
// first.
var ErrOpenFailed = errors.New("shmq: open failed")

// IsWouldBlock reports whether err is ErrFull, ErrEmpty, or otherwise
// chains to [iox.ErrWouldBlock]. Delegates to [iox.IsWouldBlock].
func IsWouldBlock(err error) bool {
	return iox.IsWouldBlock(err)
}

// IsFull reports whether err is (or wraps) ErrFull.
func IsFull(err error) bool {
	return errors.Is(err, ErrFull)
}

// IsEmpty reports whether err is (or wraps) ErrEmpty.
func IsEmpty(err error) bool {
	return errors.Is(err, ErrEmpty)
}

// IsInvalidParameters reports whether err is (or wraps) ErrInvalidParameters.
func IsInvalidParameters(err error) bool {
	return errors.Is(err, ErrInvalidParameters)
}

// IsCreateFailed reports whether err is (or wraps) ErrCreateFailed.
func IsCreateFailed(err error) bool {
	return errors.Is(err, ErrCreateFailed)
}

// IsOpenFailed reports whether err is (or wraps) ErrOpenFailed.
func IsOpenFailed(err error) bool {
	return errors.Is(err, ErrOpenFailed)
}
