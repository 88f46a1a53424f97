// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shmq

// Producer is the interface for enqueueing elements into a shared-memory
// queue from any number of attached processes.
type Producer interface {
	// TryEnqueue copies b into the queue (non-blocking). b must be
	// exactly ElementSize() bytes. Returns nil on success, ErrFull if the
	// queue is at capacity, or ErrInvalidParameters if len(b) is wrong.
	TryEnqueue(b []byte) error
}

// Consumer is the interface for dequeueing elements from a shared-memory
// queue from any number of attached processes.
type Consumer interface {
	// TryDequeue removes and returns an element (non-blocking). Returns
	// (nil, ErrEmpty) if the queue currently holds nothing for the
	// caller's ticket.
	TryDequeue() ([]byte, error)
}

// Handle is the combined producer/consumer interface exposed to callers
// that want a single type for both directions of traffic. *Queue
// implements Handle; callers that only need one side of the traffic can
// narrow to Producer or Consumer.
type Handle interface {
	Producer
	Consumer
	Capacity() uint64
	ElementSize() uint64
	IsEmpty() bool
	IsFull() bool
	Detach() error
}
