// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shmq

// segment is a mapped view of a named OS shared-memory object. The
// platform-specific implementations (segment_unix.go, segment_other.go)
// fill in platformOpenOrCreate/platformUnmap; this file holds the
// platform-independent shape shared by the rest of the package.
type segment struct {
	data []byte
	name string
}

// openOrCreateSegment acquires or creates a named shared-memory object of
// exactly size bytes and maps it writable into the caller's address
// space.
//
//   - create == true: create-exclusive. If the object already exists,
//     returns ErrCreateFailed. On success the object is sized to size and
//     createdNow is true.
//   - create == false: open existing. If it does not exist, returns
//     ErrOpenFailed. size is ignored: the object's current size is
//     mapped, and an object smaller than HeaderSize is reported as
//     ErrOpenFailed. createdNow is false.
func openOrCreateSegment(name string, size uint64, create bool) (seg *segment, createdNow bool, err error) {
	return platformOpenOrCreate(name, size, create)
}

// unmap releases the mapping on all exit paths. It does not unlink the
// underlying named object — the segment survives until Unlink is called
// by some (possibly different) attached process.
func (s *segment) unmap() error {
	return platformUnmap(s)
}
