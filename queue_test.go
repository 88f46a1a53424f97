// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build unix

package shmq_test

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"code.hybscloud.com/shmq"
)

// segmentName derives a collision-free /dev/shm name from the running
// test and process, and arranges for the object to be unlinked on
// cleanup — tests never rely on a previous run's leftovers.
func segmentName(t *testing.T) string {
	t.Helper()
	name := fmt.Sprintf("shmq-test-%s-%d-%d", strings.ReplaceAll(t.Name(), "/", "_"), os.Getpid(), time.Now().UnixNano())
	t.Cleanup(func() { _ = shmq.Unlink(name) })
	return name
}

// TestCreateThenFillThenDrain fills a queue to capacity, drains it in
// FIFO order, and checks the full/empty boundary errors on both ends.
func TestCreateThenFillThenDrain(t *testing.T) {
	name := segmentName(t)
	q, err := shmq.Create(name, 4, 4)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	defer q.Detach()

	items := [][]byte{[]byte("0001"), []byte("0002"), []byte("0003"), []byte("0004")}
	for _, item := range items {
		if err := q.TryEnqueue(item); err != nil {
			t.Fatalf("TryEnqueue(%s): %v", item, err)
		}
	}
	if err := q.TryEnqueue([]byte("0005")); !shmq.IsFull(err) {
		t.Fatalf("TryEnqueue on full queue: got %v, want ErrFull", err)
	}
	for _, want := range items {
		got, err := q.TryDequeue()
		if err != nil {
			t.Fatalf("TryDequeue: %v", err)
		}
		if !bytes.Equal(got, want) {
			t.Fatalf("TryDequeue: got %q, want %q", got, want)
		}
	}
	if _, err := q.TryDequeue(); !shmq.IsEmpty(err) {
		t.Fatalf("TryDequeue on empty queue: got %v, want ErrEmpty", err)
	}
}

// TestAttachCrossProcessView checks that a second handle attaching to
// an already-created segment observes the same capacity, element size,
// and slot state the creator just initialized, and sees items the
// creator enqueued before the second handle even attached.
func TestAttachCrossProcessView(t *testing.T) {
	name := segmentName(t)
	creator, err := shmq.Create(name, 8, 16)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	defer creator.Detach()

	if err := creator.TryEnqueue([]byte("abcdefgh")); err != nil {
		t.Fatalf("TryEnqueue: %v", err)
	}

	attacher, err := shmq.Attach(name)
	if err != nil {
		t.Fatalf("Attach: %v", err)
	}
	defer attacher.Detach()

	if attacher.Capacity() != creator.Capacity() {
		t.Fatalf("Capacity mismatch: attacher=%d creator=%d", attacher.Capacity(), creator.Capacity())
	}
	if attacher.ElementSize() != creator.ElementSize() {
		t.Fatalf("ElementSize mismatch: attacher=%d creator=%d", attacher.ElementSize(), creator.ElementSize())
	}

	got, err := attacher.TryDequeue()
	if err != nil {
		t.Fatalf("TryDequeue from attacher: %v", err)
	}
	if !bytes.Equal(got, []byte("abcdefgh")) {
		t.Fatalf("TryDequeue from attacher: got %q, want %q", got, "abcdefgh")
	}
}

// TestWrapAround drives enqueue_pos and dequeue_pos past the slot
// array's length to check the ring wraps correctly.
func TestWrapAround(t *testing.T) {
	name := segmentName(t)
	q, err := shmq.Create(name, 1, 2)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	defer q.Detach()

	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	mustDequeue := func(want string) {
		t.Helper()
		got, err := q.TryDequeue()
		must(err)
		if string(got) != want {
			t.Fatalf("TryDequeue: got %q, want %q", got, want)
		}
	}

	must(q.TryEnqueue([]byte("A")))
	must(q.TryEnqueue([]byte("B")))
	mustDequeue("A")
	must(q.TryEnqueue([]byte("C")))
	mustDequeue("B")
	mustDequeue("C")
	if _, err := q.TryDequeue(); !shmq.IsEmpty(err) {
		t.Fatalf("TryDequeue on drained queue: got %v, want ErrEmpty", err)
	}
}

// TestRejectBadSizes checks that payloads shorter or longer than
// ElementSize() are rejected with ErrInvalidParameters while an
// exact-size payload is accepted.
func TestRejectBadSizes(t *testing.T) {
	name := segmentName(t)
	q, err := shmq.Create(name, 16, 4)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	defer q.Detach()

	if err := q.TryEnqueue([]byte("short")); !shmq.IsInvalidParameters(err) {
		t.Fatalf("TryEnqueue(short): got %v, want ErrInvalidParameters", err)
	}
	if err := q.TryEnqueue([]byte("0123456789abcdef")); err != nil {
		t.Fatalf("TryEnqueue(16 bytes): %v", err)
	}
	if err := q.TryEnqueue([]byte("0123456789abcdefX")); !shmq.IsInvalidParameters(err) {
		t.Fatalf("TryEnqueue(17 bytes): got %v, want ErrInvalidParameters", err)
	}
}

// TestAttachMismatch checks that Attach rejects a mismatched
// WithElementSize cross-check.
func TestAttachMismatch(t *testing.T) {
	name := segmentName(t)
	q, err := shmq.Create(name, 32, 16)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	defer q.Detach()

	if _, err := shmq.Attach(name, shmq.WithElementSize(64)); !shmq.IsInvalidParameters(err) {
		t.Fatalf("Attach(elementSize=64): got %v, want ErrInvalidParameters", err)
	}
}

// TestEmptyFullHints checks IsEmpty/IsFull on a fresh and a full queue.
func TestEmptyFullHints(t *testing.T) {
	name := segmentName(t)
	q, err := shmq.Create(name, 4, 4)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	defer q.Detach()

	if !q.IsEmpty() {
		t.Fatalf("fresh queue: IsEmpty() = false, want true")
	}
	if q.IsFull() {
		t.Fatalf("fresh queue: IsFull() = true, want false")
	}
	for i := range 4 {
		if err := q.TryEnqueue([]byte{byte(i), 0, 0, 0}); err != nil {
			t.Fatalf("TryEnqueue(%d): %v", i, err)
		}
	}
	if q.IsEmpty() {
		t.Fatalf("full queue: IsEmpty() = true, want false")
	}
	if !q.IsFull() {
		t.Fatalf("full queue: IsFull() = false, want true")
	}
}

// TestCreateRejectsDuplicateName checks that a second Create for a
// still-live name fails with ErrCreateFailed rather than silently
// reinitializing the segment.
func TestCreateRejectsDuplicateName(t *testing.T) {
	name := segmentName(t)
	first, err := shmq.Create(name, 4, 4)
	if err != nil {
		t.Fatalf("first Create: %v", err)
	}
	defer first.Detach()

	if _, err := shmq.Create(name, 4, 4); !shmq.IsCreateFailed(err) {
		t.Fatalf("second Create: got %v, want ErrCreateFailed", err)
	}
}

// TestCreateRejectsBadParameters checks zero element size, zero
// capacity, and non-power-of-two capacity are all rejected.
func TestCreateRejectsBadParameters(t *testing.T) {
	name := segmentName(t)
	cases := []struct {
		name        string
		elementSize uint64
		capacity    uint64
	}{
		{"zero element size", 0, 4},
		{"zero capacity", 4, 0},
		{"capacity not power of two", 4, 3},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := shmq.Create(name+"-"+c.name, c.elementSize, c.capacity); !shmq.IsInvalidParameters(err) {
				t.Fatalf("Create(%d, %d): got %v, want ErrInvalidParameters", c.elementSize, c.capacity, err)
			}
		})
	}
}

// TestAttachMissingSegmentTimesOut ensures Attach does not spin forever
// against a name nobody ever created.
func TestAttachMissingSegmentTimesOut(t *testing.T) {
	name := segmentName(t)
	start := time.Now()
	_, err := shmq.Attach(name, shmq.WithWait(50*time.Millisecond))
	if !shmq.IsOpenFailed(err) {
		t.Fatalf("Attach(missing): got %v, want ErrOpenFailed", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("Attach(missing) took %v, want well under 1s", elapsed)
	}
}

// TestDetachThenUnlink checks the lifecycle split between Detach, which
// only unmaps, and Unlink, the separate, explicit removal step.
func TestDetachThenUnlink(t *testing.T) {
	name := fmt.Sprintf("shmq-test-lifecycle-%d-%d", os.Getpid(), time.Now().UnixNano())
	q, err := shmq.Create(name, 4, 4)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := q.Detach(); err != nil {
		t.Fatalf("Detach: %v", err)
	}

	// The segment still exists after Detach: a fresh Attach succeeds.
	attacher, err := shmq.Attach(name)
	if err != nil {
		t.Fatalf("Attach after Detach: %v", err)
	}
	if err := attacher.Detach(); err != nil {
		t.Fatalf("Detach: %v", err)
	}

	if err := shmq.Unlink(name); err != nil {
		t.Fatalf("Unlink: %v", err)
	}
	if _, err := shmq.Attach(name, shmq.WithWait(50*time.Millisecond)); !shmq.IsOpenFailed(err) {
		t.Fatalf("Attach after Unlink: got %v, want ErrOpenFailed", err)
	}
}
