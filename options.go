// Copyright 2026 The Synccell Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfq

// queueOptions collects the handful of tunables every queue constructor
// accepts. Unlike the bounded algorithms this package used to offer,
// there is no producer/consumer-count axis to select an algorithm by —
// each type is its own constructor — so there is no Builder here, only
// a pool-size knob.
type queueOptions struct {
	poolSize int
}

// Option configures a queue at construction time.
type Option func(*queueOptions)

// WithPoolSize sets the depth of the internal node/block cache, which
// reuses freed nodes or blocks to cut allocator traffic. The default
// depends on the queue: 0 (pure allocator passthrough) for the two
// linked-list queues, 2 for [BlockArrayMPMC].
//
// Panics if n is negative.
func WithPoolSize(n int) Option {
	if n < 0 {
		panic("lfq: pool size must be >= 0")
	}
	return func(o *queueOptions) {
		o.poolSize = n
	}
}

func resolveOptions(opts []Option, defaultPoolSize int) queueOptions {
	o := queueOptions{poolSize: defaultPoolSize}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
