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

func TestLinkedListMPSCBasic(t *testing.T) {
	q := lfq.NewLinkedListMPSC[int]()

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

func TestLinkedListMPSCClose(t *testing.T) {
	q := lfq.NewLinkedListMPSC[int]()
	for i := range 5 {
		q.Enqueue(i)
	}
	q.Close()

	_, err := q.TryDequeue()
	require.ErrorIs(t, err, lfq.ErrEmpty)
}

// TestLinkedListMPSCProducersAgreeWithSingleConsumer checks FIFO order
// is preserved per producer, and no value is lost or duplicated, when
// many producers race against exactly one consumer.
func TestLinkedListMPSCProducersAgreeWithSingleConsumer(t *testing.T) {
	const producers = 6
	const perProducer = 3000
	const total = producers * perProducer

	q := lfq.NewLinkedListMPSC[[2]int]() // [producerID, sequence]

	var wg sync.WaitGroup
	for p := range producers {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for i := range perProducer {
				q.Enqueue([2]int{id, i})
			}
		}(p)
	}

	nextExpected := make([]int, producers)
	count := 0
	var stop atomic.Bool

	go func() {
		wg.Wait()
		stop.Store(true)
	}()

	var bk lfq.Backoff
	for count < total {
		v, err := q.TryDequeue()
		if err != nil {
			if stop.Load() {
				// producers are done; whatever remains is already
				// enqueued, so a second empty read means we're through.
				if v2, err2 := q.TryDequeue(); err2 == nil {
					require.Equal(t, nextExpected[v2[0]], v2[1])
					nextExpected[v2[0]]++
					count++
					continue
				}
				break
			}
			bk.Snooze()
			continue
		}
		bk.Reset()
		require.Equal(t, nextExpected[v[0]], v[1])
		nextExpected[v[0]]++
		count++
	}

	require.Equal(t, total, count)
	for _, n := range nextExpected {
		require.Equal(t, perProducer, n)
	}
}
