// Copyright 2026 The Synccell Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfq

import "sync/atomic"

// nodePool is a bounded cache of up to N previously-freed objects,
// reducing allocator traffic on the hot enqueue/dequeue path. It is the
// Go shape of the original's ObjectCachePool: an array of CAS-guarded
// slots, scanned linearly on both get and put.
//
// N == 0 degenerates to a pure allocator passthrough, exercised by
// [LinkedListMPMC] and [LinkedListMPSC] by default.
//
// Slot CAS uses relaxed-equivalent ordering semantics in the sense that
// the pool never needs to establish happens-before on its own: the data
// an object carries is only ever read again after the queue's own
// head/tail synchronization has already done that job. Go's sync/atomic
// exposes no ordering weaker than sequential consistency, so in this
// port that is simply what every pool CAS uses.
type nodePool[T any] struct {
	cache []atomic.Pointer[T]
	reset func(*T)
}

// newNodePool creates a pool caching up to n objects. reset is called on
// every object passed to put, before it is offered to the cache — also
// when n == 0 or the cache is full and the object is dropped. reset may
// be nil.
func newNodePool[T any](n int, reset func(*T)) nodePool[T] {
	return nodePool[T]{
		cache: make([]atomic.Pointer[T], n),
		reset: reset,
	}
}

// get returns a cached object if one is available, otherwise allocates a
// new zero-valued one. The caller is responsible for initializing it.
func (p *nodePool[T]) get() *T {
	for i := range p.cache {
		if v := p.cache[i].Load(); v != nil {
			if p.cache[i].CompareAndSwap(v, nil) {
				return v
			}
		}
	}
	return new(T)
}

// put resets v and offers it to the cache. If every slot is occupied,
// the object is dropped for the garbage collector to reclaim.
func (p *nodePool[T]) put(v *T) {
	if p.reset != nil {
		p.reset(v)
	}
	for i := range p.cache {
		if p.cache[i].CompareAndSwap(nil, v) {
			return
		}
	}
}
