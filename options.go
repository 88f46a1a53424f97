// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shmq

import "time"

// defaultAttachWait bounds how long Attach spins waiting for a
// just-created segment to publish ready. It is generous relative to the
// handful of stores the creator performs between create and ready.
const defaultAttachWait = 2 * time.Second

// attachOptions holds the optional cross-check parameters and wait
// budget for Attach, built via the functional-option pattern.
type attachOptions struct {
	elementSize uint64
	capacity    uint64
	wait        time.Duration
}

// AttachOption configures an Attach call.
type AttachOption func(*attachOptions)

// WithElementSize cross-checks the segment's element_size against want.
// Attach fails with ErrInvalidParameters if they disagree.
func WithElementSize(want uint64) AttachOption {
	return func(o *attachOptions) { o.elementSize = want }
}

// WithCapacity cross-checks the segment's capacity against want.
// Attach fails with ErrInvalidParameters if they disagree.
func WithCapacity(want uint64) AttachOption {
	return func(o *attachOptions) { o.capacity = want }
}

// WithWait overrides the bounded spin-wait budget Attach allows for a
// freshly-created segment to become ready. Exceeding the budget yields
// ErrOpenFailed.
func WithWait(d time.Duration) AttachOption {
	return func(o *attachOptions) { o.wait = d }
}

func resolveAttachOptions(opts []AttachOption) attachOptions {
	o := attachOptions{wait: defaultAttachWait}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
