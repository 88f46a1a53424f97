// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !unix

package shmq

import "fmt"

// Named POSIX shared memory (/dev/shm) has no portable equivalent on
// non-unix targets in this design — a Windows build would need a
// completely different named-mapping API (CreateFileMapping et al.),
// which is out of scope (see DESIGN.md). Both entry points fail cleanly
// rather than silently falling back to process-private memory, which
// would violate the whole point of the segment: visibility across
// process boundaries.
func platformOpenOrCreate(name string, size uint64, create bool) (*segment, bool, error) {
	kind := ErrOpenFailed
	if create {
		kind = ErrCreateFailed
	}
	return nil, false, fmt.Errorf("shmq: named shared memory is not supported on this platform: %w", kind)
}

func platformUnmap(*segment) error {
	return nil
}

// Unlink is unsupported on this platform.
func Unlink(name string) error {
	return fmt.Errorf("shmq: named shared memory is not supported on this platform: %w", ErrOpenFailed)
}
