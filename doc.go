// Copyright 2026 The Synccell Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package lfq provides unbounded FIFO queue implementations.
//
// Unlike a ring-buffer based queue, every variant here grows without a
// fixed capacity: Enqueue never fails and never blocks waiting for
// space. The package offers three queue cores and one adapter:
//
//   - LinkedListMPMC: multi-producer, multi-consumer, one node per value
//   - LinkedListMPSC: multi-producer, single-consumer, one node per value
//   - BlockArrayMPMC: multi-producer, multi-consumer, values packed into
//     fixed-size blocks to amortize allocation
//   - Blocking: wraps any of the above with a park-until-available Dequeue
//
// # Quick Start
//
//	q := lfq.NewLinkedListMPMC[int]()
//	q.Enqueue(42)
//	v, err := q.TryDequeue()
//	if lfq.IsEmpty(err) {
//	    // nothing to do right now, try again later
//	}
//
// # Choosing a Variant
//
// LinkedListMPMC is the general-purpose default: any number of
// producers and consumers, one allocation per element (amortized by an
// optional node pool, see [WithPoolSize]).
//
// LinkedListMPSC drops the head lock entirely for a meaningful win when
// the consumer side is known to be a single goroutine — TryDequeue
// becomes a handful of unsynchronized field accesses. Calling
// TryDequeue from more than one goroutine is undefined behavior; it is
// not detected or guarded against.
//
// BlockArrayMPMC amortizes allocation across a block of values instead
// of one node per value, at the cost of a fixed per-block bookkeeping
// overhead and a slightly more involved dequeue path (TryDequeue can
// legitimately return [ErrEmpty] on a lost race with another consumer
// even when the queue is not actually empty — callers that care about
// that distinction should retry rather than treat it as "nothing here").
//
// # Basic Usage
//
//	q := lfq.NewLinkedListMPMC[Job]()
//
//	go func() { // producer
//	    for job := range jobs {
//	        q.Enqueue(job)
//	    }
//	}()
//
//	go func() { // consumer
//	    var backoff lfq.Backoff
//	    for {
//	        job, err := q.TryDequeue()
//	        if err != nil {
//	            backoff.Snooze()
//	            continue
//	        }
//	        backoff.Reset()
//	        job.Run()
//	    }
//	}()
//
// # Blocking Consumers
//
// Wrap any queue in [Blocking] when a consumer should park instead of
// spinning while the queue is empty:
//
//	inner := lfq.NewLinkedListMPMC[Event]()
//	q := lfq.NewBlocking[*lfq.LinkedListMPMC[Event], Event](inner)
//
//	go func() {
//	    for {
//	        ev := q.Dequeue() // blocks until an event arrives
//	        handle(ev)
//	    }
//	}()
//
//	q.Enqueue(Event{})
//
// # Error Handling
//
// TryDequeue returns [ErrEmpty] — checked with [IsEmpty] — when there is
// nothing to dequeue. There is no enqueue-side error: these queues are
// unbounded, so Enqueue cannot fail on the queue's own account (it can
// still panic on an out-of-memory allocation, exactly like appending to
// a Go slice would).
//
// # Closing a Queue
//
// Close drains any remaining items and releases the queue's internal
// bookkeeping nodes back to their pool. It is not safe to call
// concurrently with Enqueue or TryDequeue/Dequeue — callers must first
// establish, through their own synchronization, that no other goroutine
// will touch the queue again.
//
// # Memory Ordering
//
// The algorithms in this package are ported from implementations that
// distinguish acquire, release, and relaxed atomic orderings. Go's
// sync/atomic package exposes none of that: every atomic operation is
// sequentially consistent. Every ordering annotation in the original
// designs therefore collapses to a plain Load/Store/CompareAndSwap here
// — a deliberate simplification, not an oversight, and one the Go
// memory model makes sound by construction.
//
// # Race Detection
//
// Go's race detector instruments every synchronized access and slows
// the program down enough to change its timing characteristics. The
// concurrent stress tests in this package rely on many goroutines
// actually interleaving across head/tail and slot-state atomics to
// exercise the boundary and contention paths they're named for;
// under -race that interleaving skews toward whichever goroutine the
// instrumentation happens to schedule next, rather than the races the
// test is trying to provoke. [RaceEnabled] reports whether the
// detector is active in the current build, and the affected tests skip
// themselves when it is.
package lfq
