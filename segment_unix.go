// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build unix

package shmq

import (
	"fmt"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// shmDir is the POSIX shared-memory mount point, the same convention
// AlephTX-aleph-tx/feeder/shm uses for its ring buffers. Any process on
// the host that knows the name can attach by constructing this same path.
const shmDir = "/dev/shm"

func segmentPath(name string) string {
	return filepath.Join(shmDir, name)
}

// platformOpenOrCreate implements openOrCreateSegment. When create is
// false, size is ignored and the object's actual current size (via
// fstat, the same approach calvinalkan-agent-task/pkg/slotcache uses
// before mmapping an existing cache file) is mapped instead — the
// attacher cannot know the true segment size until it has read the
// header's capacity/element_size, and a segment barely past O_CREAT but
// not yet ftruncated is smaller than HeaderSize, which the caller treats
// as not-yet-ready and retries.
func platformOpenOrCreate(name string, size uint64, create bool) (*segment, bool, error) {
	path := segmentPath(name)

	var fd int
	var err error
	createdNow := create
	if create {
		fd, err = unix.Open(path, unix.O_RDWR|unix.O_CREAT|unix.O_EXCL, 0o600)
		if err != nil {
			return nil, false, fmt.Errorf("shmq: create %q: %v: %w", name, err, ErrCreateFailed)
		}
	} else {
		fd, err = unix.Open(path, unix.O_RDWR, 0)
		if err != nil {
			return nil, false, fmt.Errorf("shmq: open %q: %v: %w", name, err, ErrOpenFailed)
		}
	}
	defer unix.Close(fd)

	mapSize := size
	if create {
		if err := unix.Ftruncate(fd, int64(size)); err != nil {
			unix.Unlink(path)
			return nil, false, fmt.Errorf("shmq: size %q to %d bytes: %v: %w", name, size, err, ErrCreateFailed)
		}
	} else {
		var stat unix.Stat_t
		if err := unix.Fstat(fd, &stat); err != nil {
			return nil, false, fmt.Errorf("shmq: stat %q: %v: %w", name, err, ErrOpenFailed)
		}
		if stat.Size < HeaderSize {
			return nil, false, fmt.Errorf("shmq: %q is smaller than the segment header: %w", name, ErrOpenFailed)
		}
		mapSize = uint64(stat.Size)
	}

	data, err := unix.Mmap(fd, 0, int(mapSize), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		if create {
			unix.Unlink(path)
		}
		kind := ErrOpenFailed
		if create {
			kind = ErrCreateFailed
		}
		return nil, false, fmt.Errorf("shmq: mmap %q: %v: %w", name, err, kind)
	}

	return &segment{data: data, name: name}, createdNow, nil
}

func platformUnmap(s *segment) error {
	if s.data == nil {
		return nil
	}
	err := unix.Munmap(s.data)
	s.data = nil
	return err
}

// Unlink removes the named shared-memory object. It does not invalidate
// mappings already held by attached processes — those remain valid until
// each process unmaps — but no further Attach/Create call will find the
// object afterward. Nothing in Create/Attach/Detach calls it
// automatically; whatever process owns the segment's lifetime decides
// when to unlink it.
func Unlink(name string) error {
	if err := unix.Unlink(segmentPath(name)); err != nil {
		return fmt.Errorf("shmq: unlink %q: %v: %w", name, err, ErrOpenFailed)
	}
	return nil
}
