// Copyright 2026 The Synccell Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfq

import "sync/atomic"

// Slot state bits.
const (
	written uint32 = 1 << 0
	read    uint32 = 1 << 1
	destroy uint32 = 1 << 2
)

// Lap, BlockCap, and HasNext are part of the observable contract: each
// block covers one "lap" of index values, one of which (BlockCap) is
// reserved to mean "this block is full, wait for the next one."
const (
	Lap      = 64
	BlockCap = Lap - 1
	HasNext  = 1

	indexShift = 1
)

// slot holds one value and its publication state in a block.
type slot[T any] struct {
	value T
	state atomic.Uint32
}

// waitWrite spins until a producer has published this slot's value.
func (s *slot[T]) waitWrite() {
	var bk Backoff
	for s.state.Load()&written == 0 {
		bk.Snooze()
	}
}

// fetchOrUint32 atomically ORs bits into a and returns the prior value.
// It is a plain CAS retry loop performing the same operation the
// slot/block state machine used in C++ via std::atomic<uint32_t>::fetch_or.
func fetchOrUint32(a *atomic.Uint32, bits uint32) uint32 {
	for {
		old := a.Load()
		if a.CompareAndSwap(old, old|bits) {
			return old
		}
	}
}

// block is a fixed-size chunk of BlockCap slots linked into the queue's
// block list. Blocks are never freed while in use: see destroyBlock.
type block[T any] struct {
	next  atomic.Pointer[block[T]]
	freed atomic.Bool
	slots [BlockCap]slot[T]
}

func resetBlock[T any](b *block[T]) {
	b.next.Store(nil)
	b.freed.Store(false)
	for i := range b.slots {
		b.slots[i].state.Store(0)
		var zero T
		b.slots[i].value = zero
	}
}

// waitNext spins until this block's successor has been installed.
func (b *block[T]) waitNext() *block[T] {
	var bk Backoff
	for {
		if n := b.next.Load(); n != nil {
			return n
		}
		bk.Snooze()
	}
}

// position is a (index, block) pair — either the head or the tail of
// the queue. index's bit 0 is the HasNext flag; bits 63..1 are the
// absolute FIFO position, i.e. index = position<<1 | hasNext.
type position[T any] struct {
	index atomic.Uint64
	block atomic.Pointer[block[T]]
}

// BlockArrayMPMC is an unbounded, multi-producer multi-consumer FIFO
// queue built from a linked chain of fixed-size slot blocks, rather than
// one node per element — ported from crossbeam's injector queue (the
// entry-point side of a work-stealing deque), generalized from "steal"
// to plain FIFO dequeue semantics since work-stealing itself is out of
// scope here.
//
// It amortizes one allocation over BlockCap operations and is lock-free
// on the fast path: enqueue/dequeue only ever wait on another thread
// that is, itself, guaranteed to make progress (installing a block,
// publishing a slot), never on a lock.
type BlockArrayMPMC[T any] struct {
	_    pad
	head position[T]
	_    pad
	tail position[T]
	_    pad
	pool nodePool[block[T]]
}

// NewBlockArrayMPMC creates an empty queue. The default block pool size
// is 2 (one spare block kept ready, one in flight); override with
// [WithPoolSize].
func NewBlockArrayMPMC[T any](opts ...Option) *BlockArrayMPMC[T] {
	o := resolveOptions(opts, 2)
	q := &BlockArrayMPMC[T]{pool: newNodePool[block[T]](o.poolSize, resetBlock[T])}
	b := q.pool.get()
	q.head.block.Store(b)
	q.tail.block.Store(b)
	return q
}

// Enqueue appends v to the tail of the queue.
func (q *BlockArrayMPMC[T]) Enqueue(v T) {
	var bk Backoff
	tail := q.tail.index.Load()
	blk := q.tail.block.Load()
	var nextBlock *block[T]

	for {
		offset := (tail >> indexShift) % Lap
		if offset == BlockCap {
			bk.Snooze()
			tail = q.tail.index.Load()
			blk = q.tail.block.Load()
			continue
		}

		// Pre-allocate the next block outside the CAS to keep the
		// window where other producers are stuck at offset==BlockCap
		// as short as possible.
		if offset+1 == BlockCap && nextBlock == nil {
			nextBlock = q.pool.get()
		}

		newTail := tail + 1<<indexShift
		if q.tail.index.CompareAndSwap(tail, newTail) {
			if offset+1 == BlockCap {
				b := nextBlock
				nextBlock = nil
				nextIndex := newTail + 1<<indexShift
				q.tail.block.Store(b)
				q.tail.index.Store(nextIndex)
				blk.next.Store(b)
			} else if nextBlock != nil {
				// Lost the race for the boundary slot on an earlier
				// iteration but won a slot in a later block; release
				// the spare block we no longer need.
				q.pool.put(nextBlock)
				nextBlock = nil
			}

			s := &blk.slots[offset]
			s.value = v
			fetchOrUint32(&s.state, written)
			return
		}

		blk = q.tail.block.Load()
		tail = q.tail.index.Load()
		bk.Spin()
	}
}

// TryDequeue removes and returns the oldest value. It returns ErrEmpty
// if the queue is empty, or if this dequeuer lost a race with another
// consumer for the head position — the caller is expected to retry
// (this is a stealing semantics: a CAS failure does not retry in place).
func (q *BlockArrayMPMC[T]) TryDequeue() (T, error) {
	var bk Backoff
	var head uint64
	var blk *block[T]
	var offset uint64

	for {
		head = q.head.index.Load()
		blk = q.head.block.Load()
		offset = (head >> indexShift) % Lap
		if offset == BlockCap {
			bk.Snooze()
			continue
		}
		break
	}

	newHead := head + 1<<indexShift
	if newHead&HasNext == 0 {
		tail := q.tail.index.Load()
		if (head >> indexShift) == (tail >> indexShift) {
			var zero T
			return zero, ErrEmpty
		}
		if (head>>indexShift)/Lap != (tail>>indexShift)/Lap {
			newHead |= HasNext
		}
	}

	if !q.head.index.CompareAndSwap(head, newHead) {
		var zero T
		return zero, ErrEmpty
	}

	if offset+1 == BlockCap {
		next := blk.waitNext()
		nextIndex := (newHead &^ uint64(HasNext)) + 1<<indexShift
		if next.next.Load() != nil {
			nextIndex |= HasNext
		}
		q.head.block.Store(next)
		q.head.index.Store(nextIndex)
	}

	s := &blk.slots[offset]
	s.waitWrite()
	v := s.value
	var zero T
	s.value = zero

	old := fetchOrUint32(&s.state, read)
	if offset+1 == BlockCap || old&destroy != 0 {
		q.destroyBlock(blk, offset)
	}

	return v, nil
}

// destroyBlock marks slots [0, count) as destroyed from the top down. A
// slot still showing written-without-read means another consumer is
// still using it and will inherit responsibility for freeing the block.
// Once every slot has been accounted for, the block is returned to the
// pool (through release).
func (q *BlockArrayMPMC[T]) destroyBlock(b *block[T], count uint64) {
	for i := int64(count) - 1; i >= 0; i-- {
		s := &b.slots[i]
		if s.state.Load()&read == 0 {
			if fetchOrUint32(&s.state, destroy)&read == 0 {
				return
			}
		}
	}
	q.release(b)
}

// release returns b to the pool unless block.freed is already set.
// Putting b into the pool runs resetBlock, which clears freed again, so
// the flag only stops callers that reach the CAS before that reset; a
// later release of the same block puts it into the pool a second time.
func (q *BlockArrayMPMC[T]) release(b *block[T]) {
	if b.freed.CompareAndSwap(false, true) {
		q.pool.put(b)
	}
}

// IsLockFree reports whether the queue's atomic operations are lock-free
// on this platform.
func (q *BlockArrayMPMC[T]) IsLockFree() bool {
	return true
}

// Close drains every remaining item and releases the final block. The
// original's block-list queue never specified a destructor (its C++
// source is enqueue-only scaffolding); this mirrors TryDequeue's own
// loop until the queue is empty, then frees the block head points to.
// TryDequeue only ever frees blocks that head has already moved past,
// so that block has not been released before. Close does not steal the
// tail: an Enqueue after Close still writes into the tail block, which
// Close has returned to the pool. Close is not safe against concurrent
// producers or consumers.
func (q *BlockArrayMPMC[T]) Close() {
	for {
		if _, err := q.TryDequeue(); err != nil {
			head := q.head.index.Load()
			tail := q.tail.index.Load()
			if (head >> indexShift) == (tail >> indexShift) {
				break
			}
			continue
		}
	}
	q.release(q.head.block.Load())
}
