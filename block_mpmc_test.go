// Copyright 2026 The Synccell Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfq_test

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/synccell/lfq"
)

func TestBlockArrayMPMCBasic(t *testing.T) {
	q := lfq.NewBlockArrayMPMC[int]()

	_, err := q.TryDequeue()
	require.ErrorIs(t, err, lfq.ErrEmpty)

	for i := range 10 {
		q.Enqueue(i)
	}

	got := drainRetrying(t, q, 10)
	for i, v := range got {
		require.Equal(t, i, v)
	}

	_, err = q.TryDequeue()
	require.True(t, lfq.IsEmpty(err))
}

// TestBlockArrayMPMCBlockBoundary pushes past lfq.BlockCap elements so the
// queue is forced to allocate and link a second block, then a third.
func TestBlockArrayMPMCBlockBoundary(t *testing.T) {
	q := lfq.NewBlockArrayMPMC[int]()

	n := lfq.BlockCap*2 + 5
	for i := range n {
		q.Enqueue(i)
	}

	got := drainRetrying(t, q, n)
	for i, v := range got {
		require.Equal(t, i, v)
	}
}

func TestBlockArrayMPMCIsLockFree(t *testing.T) {
	q := lfq.NewBlockArrayMPMC[int]()
	require.True(t, q.IsLockFree())
}

func TestBlockArrayMPMCClose(t *testing.T) {
	q := lfq.NewBlockArrayMPMC[int]()
	for i := range lfq.BlockCap + 10 {
		q.Enqueue(i)
	}
	q.Close()

	_, err := q.TryDequeue()
	require.ErrorIs(t, err, lfq.ErrEmpty)
}

// drainRetrying dequeues n values, retrying on ErrEmpty returned by a lost
// race with another consumer (BlockArrayMPMC's stealing semantics) rather
// than treating it as "queue is empty".
func drainRetrying(t *testing.T, q *lfq.BlockArrayMPMC[int], n int) []int {
	t.Helper()
	out := make([]int, 0, n)
	var bk lfq.Backoff
	for len(out) < n {
		v, err := q.TryDequeue()
		if err != nil {
			bk.Snooze()
			continue
		}
		bk.Reset()
		out = append(out, v)
	}
	return out
}

// TestBlockArrayMPMCConcurrent hammers the queue across several block
// boundaries with many producers and consumers racing concurrently.
func TestBlockArrayMPMCConcurrent(t *testing.T) {
	if lfq.RaceEnabled {
		t.Skip("skip: lock-free algorithm uses cross-variable memory ordering")
	}

	const producers = 8
	const perProducer = lfq.BlockCap*3 + 17
	const total = producers * perProducer

	q := lfq.NewBlockArrayMPMC[int]()

	var wg sync.WaitGroup
	for p := range producers {
		wg.Add(1)
		go func(base int) {
			defer wg.Done()
			for i := range perProducer {
				q.Enqueue(base*perProducer + i)
			}
		}(p)
	}

	seen := make([]bool, total)
	var mu sync.Mutex
	var dequeued atomic.Int64
	var consumersWg sync.WaitGroup

	for range producers {
		consumersWg.Add(1)
		go func() {
			defer consumersWg.Done()
			var bk lfq.Backoff
			for dequeued.Load() < total {
				v, err := q.TryDequeue()
				if err != nil {
					bk.Snooze()
					continue
				}
				bk.Reset()
				mu.Lock()
				require.False(t, seen[v], "value %d dequeued twice", v)
				seen[v] = true
				mu.Unlock()
				dequeued.Add(1)
			}
		}()
	}

	wg.Wait()
	consumersWg.Wait()

	for _, v := range seen {
		require.True(t, v)
	}
}
