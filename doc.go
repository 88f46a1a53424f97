// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package shmq provides a bounded, fixed-element-size, multi-producer
// multi-consumer FIFO queue whose entire state lives in a named
// shared-memory segment.
//
// Producers and consumers attach to the segment by name; once attached,
// TryEnqueue and TryDequeue synchronize exclusively through atomics
// embedded in the shared region — no kernel IPC primitive sits on the
// fast path, only a handful of loads, stores, and compare-and-swaps
// against memory every attached process maps.
//
// # Quick Start
//
//	// One process creates the segment:
//	q, err := shmq.Create("orders", 8, 1024) // 8-byte elements, 1024 slots
//
//	// Any number of other processes attach to it by name:
//	q, err := shmq.Attach("orders", shmq.WithElementSize(8), shmq.WithCapacity(1024))
//
//	// Both sides share the same non-blocking API:
//	err := q.TryEnqueue(payload)     // ErrFull if at capacity
//	payload, err := q.TryDequeue()   // ErrEmpty if nothing published yet
//
//	// When done with this process's view of the segment:
//	q.Detach()
//
//	// Once no process needs the segment anymore, some external actor
//	// (not necessarily a participant) removes the underlying object:
//	shmq.Unlink("orders")
//
// # Non-blocking only
//
// TryEnqueue and TryDequeue never suspend; each is a single indivisible
// attempt that either succeeds or returns ErrFull/ErrEmpty immediately.
// Blocking with a deadline is a thin retry-with-backoff loop built on top
// and is deliberately not part of this package — it belongs to whatever
// binding or application layer knows how long a caller is willing to
// wait:
//
//	backoff := iox.Backoff{}
//	deadline := time.Now().Add(time.Second)
//	for {
//	    err := q.TryEnqueue(payload)
//	    if err == nil {
//	        break
//	    }
//	    if !shmq.IsFull(err) || time.Now().After(deadline) {
//	        return err
//	    }
//	    backoff.Wait()
//	}
//
// # Error Handling
//
// TryEnqueue/TryDequeue return ErrFull/ErrEmpty, both chained to
// [iox.ErrWouldBlock] for ecosystem consistency with
// [code.hybscloud.com/lfq]:
//
//	shmq.IsWouldBlock(err)  // true for either ErrFull or ErrEmpty
//	shmq.IsFull(err)        // true only for ErrFull
//	shmq.IsEmpty(err)       // true only for ErrEmpty
//
// Create and Attach report configuration and OS-level failures through
// ErrInvalidParameters, ErrCreateFailed, and ErrOpenFailed — see each
// function's documentation and errors.go for exactly when each applies.
//
// # Capacity
//
// Unlike [code.hybscloud.com/lfq]'s builder, which silently rounds
// capacity up to the next power of two, Create here requires an
// already-power-of-two capacity and rejects anything else with
// ErrInvalidParameters. The capacity is written into the shared header
// verbatim and read back by every attacher; silently substituting a
// different number than the one two cooperating processes agreed on
// would be exactly the kind of surprise a fixed binary contract exists
// to prevent.
//
// # Thread and Process Safety
//
// TryEnqueue is safe to call concurrently from any number of goroutines
// in any number of attached processes; so is TryDequeue. There is no
// single-producer or single-consumer specialization — unlike the
// in-process lfq package, a shared-memory segment has no way to enforce,
// or benefit much from assuming, that only one process ever produces or
// consumes.
//
// # Crash Model
//
// A process that crashes after claiming a ticket (the CAS on
// enqueue_pos/dequeue_pos) but before publishing the corresponding slot
// sequence leaves that slot permanently stuck: every future TryDequeue
// that reaches it returns ErrEmpty, and every future TryEnqueue that
// reaches it returns ErrFull, because the slot keeps its stale sequence.
// Callers that retry on those errors retry forever. This
// package does not attempt crash recovery; the only remedy is external —
// Unlink the segment and recreate it. See DESIGN.md for the reasoning
// behind leaving recovery out of scope.
package shmq
