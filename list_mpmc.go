// Copyright 2026 The Synccell Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfq

import "sync/atomic"

// LinkedListMPMC is an unbounded, lock-free, multi-producer
// multi-consumer FIFO queue.
//
// It is a Michael–Scott linked-list queue: enqueue is lock-free and
// wait-free for a producer once its own tail CAS succeeds; dequeue is
// lock-free against producers but mutually exclusive among consumers —
// a single "dequeue in progress" lock serializes them. The original
// algorithm packs that lock into the low bit of the head pointer itself
// (a tagged pointer, portable without 128-bit CAS). Go's garbage
// collector cannot tolerate a pointer whose only live reference is a
// bit-mangled integer — a future compacting collector would be free to
// move or reclaim the object out from under it — so this port keeps the
// same "one bit of lock, one pointer of identity" contract but as two
// adjacent atomic fields instead of one packed word: headLock CAS
// acquires the right to mutate head, exactly as the tag bit would.
//
// A sentinel node always sits at head; the live range is head.next
// through tail, inclusive. Head and tail are never nil while the queue
// is open.
type LinkedListMPMC[T any] struct {
	_        pad
	head     atomic.Pointer[node[T]]
	headLock atomic.Bool
	_        padTail
	tail     atomic.Pointer[node[T]]
	_        padTail
	pool     nodePool[node[T]]
}

// NewLinkedListMPMC creates an empty queue. The default node pool size
// is 0 (every node is allocated and freed through the Go heap); override
// with [WithPoolSize].
func NewLinkedListMPMC[T any](opts ...Option) *LinkedListMPMC[T] {
	o := resolveOptions(opts, 0)
	q := &LinkedListMPMC[T]{pool: newNodePool[node[T]](o.poolSize, resetNode[T])}
	sentinel := q.pool.get()
	q.head.Store(sentinel)
	q.tail.Store(sentinel)
	return q
}

// Enqueue appends v to the tail of the queue.
func (q *LinkedListMPMC[T]) Enqueue(v T) {
	n := q.pool.get()
	n.value = v
	enqueueNode(&q.tail, n, &q.pool)
}

// TryDequeue removes and returns the oldest value. It returns ErrEmpty
// if the queue is empty at some linearization point.
func (q *LinkedListMPMC[T]) TryDequeue() (T, error) {
	var bk Backoff
	for !q.headLock.CompareAndSwap(false, true) {
		bk.Snooze()
	}

	sentinel := q.head.Load()
	next := sentinel.next.Load()
	if next == nil {
		q.headLock.Store(false)
		var zero T
		return zero, ErrEmpty
	}

	v := next.value
	var zero T
	next.value = zero
	q.head.Store(next)
	q.headLock.Store(false)

	q.pool.put(sentinel)
	return v, nil
}

// IsLockFree reports whether the queue's atomic operations are lock-free
// on this platform. Every GOARCH the Go toolchain supports implements
// lock-free 64-bit CAS, so this is an honest constant, not a guess.
func (q *LinkedListMPMC[T]) IsLockFree() bool {
	return true
}

// Close steals the tail pointer (blocking further enqueues: an Enqueue
// after Close returns its node to the pool and drops v), drains every remaining
// item, and releases the final sentinel. Close is not safe against
// concurrent producers or consumers; callers must synchronize "last
// producer/consumer finished" with "Close runs" themselves.
func (q *LinkedListMPMC[T]) Close() {
	var bk Backoff
	oldTail := q.tail.Load()
	for oldTail != nil && !q.tail.CompareAndSwap(oldTail, nil) {
		oldTail = q.tail.Load()
		bk.Spin()
	}
	if oldTail == nil {
		return
	}

	for q.head.Load() != oldTail {
		if _, err := q.TryDequeue(); err != nil {
			continue
		}
	}
	q.pool.put(oldTail)
}
