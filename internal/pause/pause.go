// Copyright 2026 The Synccell Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package pause provides the two primitives a spin-wait loop needs:
// a fine-grained CPU relax hint and a cooperative OS yield.
//
// Hint is linked directly to the Go runtime's own procyield, which already
// emits the architecture-appropriate instruction (PAUSE on amd64, YIELD on
// arm64, a plain loop elsewhere) — the same mechanism the runtime itself
// uses inside sync.Mutex and sync/atomic spin loops, so there is no value
// in re-deriving it with per-GOARCH assembly files.
package pause

import (
	"runtime"
	_ "unsafe" // for go:linkname
)

//go:linkname procyield runtime.procyield
func procyield(cycles uint32)

// Hint emits one architecture-specific spin-wait relax instruction.
// It never blocks and never yields the current OS time slice.
func Hint() {
	procyield(1)
}

// ThreadYield surrenders the current OS time slice cooperatively.
func ThreadYield() {
	runtime.Gosched()
}
