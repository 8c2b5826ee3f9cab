// Copyright 2026 The Synccell Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfq

import "errors"

// ErrEmpty indicates that TryDequeue found the queue empty at some
// linearization point.
//
// ErrEmpty is a control flow signal, not a failure. The caller should
// retry later (with a [Backoff] or by blocking via [Blocking.Dequeue])
// rather than propagating the error.
//
// All three queues in this package are unbounded: Enqueue never fails
// and never returns an error.
//
// Example:
//
//	var bk Backoff
//	for {
//	    v, err := q.TryDequeue()
//	    if err == nil {
//	        bk.Reset()
//	        process(v)
//	        continue
//	    }
//	    if IsEmpty(err) {
//	        bk.Snooze()
//	        continue
//	    }
//	    return err // unreachable today, but future-proofs callers
//	}
var ErrEmpty = errors.New("lfq: queue is empty")

// IsEmpty reports whether err is (or wraps) [ErrEmpty].
func IsEmpty(err error) bool {
	return errors.Is(err, ErrEmpty)
}
