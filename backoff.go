// Copyright 2026 The Synccell Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfq

import "github.com/synccell/lfq/internal/pause"

// SpinLimit and YieldLimit are the crossbeam-derived backoff thresholds
// used by [Backoff]. They are part of the observable contract and must
// not be tuned away silently.
const (
	SpinLimit  = 6
	YieldLimit = 10
)

// Backoff performs exponential backoff in spin loops.
//
// Backing off in spin loops reduces contention and improves overall
// performance. Backoff can execute CPU relax hints, yield the current
// goroutine's time slice, and report when further spinning is no longer
// worthwhile so the caller can fall back to a blocking wait.
//
// The zero value is ready to use. A Backoff is not safe for concurrent
// use — each goroutine in a retry loop keeps its own.
//
// Example, retrying a CAS because another thread made progress:
//
//	var bk Backoff
//	for {
//	    if a.CompareAndSwap(old, new) {
//	        break
//	    }
//	    bk.Spin()
//	}
//
// Example, waiting for another thread's result:
//
//	var bk Backoff
//	for !ready.Load() {
//	    bk.Snooze()
//	}
type Backoff struct {
	step uint32
}

// Spin backs off in a lock-free loop. Use this when retrying an operation
// because another thread made progress on the same shared state.
func (b *Backoff) Spin() {
	n := b.step
	if n > SpinLimit {
		n = SpinLimit
	}
	for i := uint32(0); i < 1<<n; i++ {
		pause.Hint()
	}
	if b.step <= SpinLimit {
		b.step++
	}
}

// Snooze backs off in a blocking loop. Use this when waiting for another
// thread to make progress rather than retrying your own operation.
func (b *Backoff) Snooze() {
	if b.step <= SpinLimit {
		for i := uint32(0); i < 1<<b.step; i++ {
			pause.Hint()
		}
	} else {
		pause.ThreadYield()
	}
	if b.step <= YieldLimit {
		b.step++
	}
}

// IsCompleted reports whether exponential backoff has completed, meaning
// further spinning is wasteful and the caller should block using a
// different synchronization mechanism instead.
func (b *Backoff) IsCompleted() bool {
	return b.step > YieldLimit
}

// Reset clears the backoff counter.
func (b *Backoff) Reset() {
	b.step = 0
}
