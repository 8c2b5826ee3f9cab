// Copyright 2026 The Synccell Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfq

// cacheLineSize is the assumed destructive-interference size. Go exposes
// no portable way to query it at compile time, so — like the rest of the
// ecosystem — we hardcode the value that holds on every architecture this
// module targets.
const cacheLineSize = 64

// pad is inserted between contended atomic fields to prevent false sharing.
// It carries no data; its only job is to push the following field onto its
// own cache line.
type pad [cacheLineSize]byte

// padTail pads out a trailing 8-byte field (a pointer or a 64-bit word) to
// a full cache line, so the next struct allocated after this one doesn't
// share a line with it either.
type padTail [cacheLineSize - 8]byte
