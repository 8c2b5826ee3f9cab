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

func TestLinkedListMPMCBasic(t *testing.T) {
	q := lfq.NewLinkedListMPMC[int]()

	_, err := q.TryDequeue()
	require.ErrorIs(t, err, lfq.ErrEmpty)

	for i := range 10 {
		q.Enqueue(i)
	}
	for i := range 10 {
		v, err := q.TryDequeue()
		require.NoError(t, err)
		require.Equal(t, i, v)
	}

	_, err = q.TryDequeue()
	require.True(t, lfq.IsEmpty(err))
}

func TestLinkedListMPMCIsLockFree(t *testing.T) {
	q := lfq.NewLinkedListMPMC[int]()
	require.True(t, q.IsLockFree())
}

func TestLinkedListMPMCWithPoolSize(t *testing.T) {
	q := lfq.NewLinkedListMPMC[string](lfq.WithPoolSize(4))
	q.Enqueue("a")
	v, err := q.TryDequeue()
	require.NoError(t, err)
	require.Equal(t, "a", v)
}

func TestLinkedListMPMCClose(t *testing.T) {
	q := lfq.NewLinkedListMPMC[int]()
	for i := range 5 {
		q.Enqueue(i)
	}
	q.Close()

	// Close drains synchronously; nothing should remain.
	_, err := q.TryDequeue()
	require.ErrorIs(t, err, lfq.ErrEmpty)
}

// TestLinkedListMPMCConcurrent hammers the queue with many producers and
// many consumers and checks every enqueued value is dequeued exactly once.
func TestLinkedListMPMCConcurrent(t *testing.T) {
	if lfq.RaceEnabled {
		t.Skip("skip: lock-free algorithm uses cross-variable memory ordering")
	}

	const producers = 8
	const perProducer = 2000
	const total = producers * perProducer

	q := lfq.NewLinkedListMPMC[int]()

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
