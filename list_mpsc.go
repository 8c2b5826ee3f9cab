// Copyright 2026 The Synccell Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfq

import "sync/atomic"

// LinkedListMPSC is an unbounded, lock-free, multi-producer
// single-consumer FIFO queue.
//
// It shares its enqueue algorithm byte-for-byte in shape with
// [LinkedListMPMC] ([enqueueNode]). Dequeue has no head lock at all: the
// single-consumer contract makes head a plain field the consumer owns
// outright, never touched by anyone else. Calling TryDequeue from more
// than one goroutine concurrently is undefined behavior — this queue
// does not and cannot detect that misuse.
type LinkedListMPSC[T any] struct {
	head *node[T] // owned exclusively by the single consumer
	_    padTail
	tail atomic.Pointer[node[T]]
	_    padTail
	pool nodePool[node[T]]
}

// NewLinkedListMPSC creates an empty queue. The default node pool size
// is 0; override with [WithPoolSize].
func NewLinkedListMPSC[T any](opts ...Option) *LinkedListMPSC[T] {
	o := resolveOptions(opts, 0)
	q := &LinkedListMPSC[T]{pool: newNodePool[node[T]](o.poolSize, resetNode[T])}
	sentinel := q.pool.get()
	q.head = sentinel
	q.tail.Store(sentinel)
	return q
}

// Enqueue appends v to the tail of the queue. Safe for any number of
// concurrent producers.
func (q *LinkedListMPSC[T]) Enqueue(v T) {
	n := q.pool.get()
	n.value = v
	enqueueNode(&q.tail, n, &q.pool)
}

// TryDequeue removes and returns the oldest value. It returns ErrEmpty
// if the queue is empty. Must only ever be called from a single
// goroutine — see the single-consumer contract above.
func (q *LinkedListMPSC[T]) TryDequeue() (T, error) {
	h := q.head
	next := h.next.Load()
	if next == nil {
		var zero T
		return zero, ErrEmpty
	}

	v := next.value
	var zero T
	next.value = zero
	q.head = next

	q.pool.put(h)
	return v, nil
}

// IsLockFree reports whether the queue's atomic operations are lock-free
// on this platform.
func (q *LinkedListMPSC[T]) IsLockFree() bool {
	return true
}

// Close steals the tail pointer, drains every remaining item, and
// releases the final sentinel. Not safe against concurrent producers or
// a concurrent consumer; see [LinkedListMPMC.Close].
func (q *LinkedListMPSC[T]) Close() {
	var bk Backoff
	oldTail := q.tail.Load()
	for oldTail != nil && !q.tail.CompareAndSwap(oldTail, nil) {
		oldTail = q.tail.Load()
		bk.Spin()
	}
	if oldTail == nil {
		return
	}

	for q.head != oldTail {
		if _, err := q.TryDequeue(); err != nil {
			continue
		}
	}
	q.pool.put(oldTail)
}
