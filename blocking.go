// Copyright 2026 The Synccell Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfq

import "sync"

// queue is the two-method shape every queue in this package shares —
// LinkedListMPMC, LinkedListMPSC, and BlockArrayMPMC all satisfy it —
// and is exactly enough surface for [Blocking] to wrap any of them.
type queue[T any] interface {
	Enqueue(T)
	TryDequeue() (T, error)
}

// Blocking adapts any lock-free queue in this package into one whose
// consumers can block until an item is available, trading the inner
// queue's non-blocking guarantee for ordinary goroutine-park semantics
// on the empty path. TryDequeue, and Dequeue when an item is already
// present, never touch the mutex; Enqueue takes it briefly to broadcast.
type Blocking[Q queue[T], T any] struct {
	inner Q
	mu    sync.Mutex
	cond  *sync.Cond
}

// NewBlocking wraps inner in a blocking-capable façade.
func NewBlocking[Q queue[T], T any](inner Q) *Blocking[Q, T] {
	b := &Blocking[Q, T]{inner: inner}
	b.cond = sync.NewCond(&b.mu)
	return b
}

// Enqueue appends v, then wakes every goroutine blocked in Dequeue.
// Broadcast rather than Signal: the inner queue may be MPMC, and a
// single wakeup could land on a consumer that immediately finds nothing
// (another consumer got there first) while a real item sits unclaimed
// for everyone else.
func (b *Blocking[Q, T]) Enqueue(v T) {
	b.inner.Enqueue(v)
	b.mu.Lock()
	b.cond.Broadcast()
	b.mu.Unlock()
}

// TryDequeue removes and returns the oldest value without blocking. It
// returns ErrEmpty exactly when the wrapped queue does.
func (b *Blocking[Q, T]) TryDequeue() (T, error) {
	return b.inner.TryDequeue()
}

// Dequeue removes and returns the oldest value, parking the calling
// goroutine until one is available. It never returns an error.
func (b *Blocking[Q, T]) Dequeue() T {
	for {
		if v, err := b.inner.TryDequeue(); err == nil {
			return v
		}
		b.mu.Lock()
		if v, err := b.inner.TryDequeue(); err == nil {
			b.mu.Unlock()
			return v
		}
		b.cond.Wait()
		b.mu.Unlock()
	}
}
