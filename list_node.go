// Copyright 2026 The Synccell Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfq

import "sync/atomic"

// node is the Michael–Scott linked-list cell shared by LinkedListMPMC and
// LinkedListMPSC. A sentinel node always sits at head; value is only
// meaningful on nodes reachable from head.next onward.
type node[T any] struct {
	next  atomic.Pointer[node[T]]
	value T
}

func resetNode[T any](n *node[T]) {
	n.next.Store(nil)
	var zero T
	n.value = zero
}

// enqueueNode appends n to the list rooted by tail, the shape shared by
// LinkedListMPMC and LinkedListMPSC (they differ only in how the head
// side dequeues). If tail has already been stolen to nil, the queue has
// been closed: n is returned to pool instead of being linked in.
//
// Memory safety: until we store n into queueTail.next, queueTail itself
// can never be freed, because head can only advance past a node once its
// next is non-nil — and queueTail's next is nil by construction until
// this call sets it. ABA safety: we only ever need queueTail's identity,
// not its contents, and a node whose next is nil is always a valid link
// point regardless of how many times tail has moved since we read it.
func enqueueNode[T any](tail *atomic.Pointer[node[T]], n *node[T], pool *nodePool[node[T]]) {
	for {
		queueTail := tail.Load()
		if queueTail == nil {
			pool.put(n)
			return
		}
		if tail.CompareAndSwap(queueTail, n) {
			queueTail.next.Store(n)
			return
		}
	}
}
