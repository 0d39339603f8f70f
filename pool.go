// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fixed

import (
	"math"
	"math/rand/v2"
)

// Handle identifies a live allocation in a [Pool].
//
// A handle names a run of one or more adjacent slots together with the
// stamp the pool gave that allocation. Once the allocation is freed the
// stamp no longer matches, so stale and double-freed handles are rejected
// instead of corrupting the free set. Each pool starts its stamps at a
// random offset, so a handle from another pool is rejected with high
// probability. The zero Handle is never valid.
type Handle struct {
	index int32
	n     int32
	stamp uint32
}

// Index returns the index of the first slot of the allocation.
func (h Handle) Index() int { return int(h.index) }

// Len returns the number of slots in the allocation.
func (h Handle) Len() int { return int(h.n) }

// Pool is a fixed-capacity slot allocator over caller-supplied storage.
//
// Free slot indices live on a [Stack], so reuse is LIFO: the most recently
// freed slot is the next one handed out by Alloc. AllocContiguous finds a
// run of adjacent free slots by a best-effort first-fit search; it never
// compacts, so a fragmented pool may refuse a run even when enough slots
// are free in total.
//
// Pool is not safe for concurrent use.
type Pool[T any] struct {
	buffer []T
	free   *Stack[int32]
	stamps []uint32 // 0 while free, else the stamp of the owning allocation
	stamp  uint32

	// AllocContiguous scratch, sized at construction
	marked []bool
	popped []int32
}

// NewPool creates a pool whose slots are the elements of buf.
// All slots start free. Panics if buf is empty or too large to index
// with int32.
func NewPool[T any](buf []T) *Pool[T] {
	if len(buf) < 1 {
		panic("fixed: capacity must be >= 1")
	}
	if len(buf) > math.MaxInt32 {
		panic("fixed: capacity exceeds int32 range")
	}
	n := len(buf)
	p := &Pool[T]{
		buffer: buf,
		free:   NewStack(make([]int32, n)),
		stamps: make([]uint32, n),
		marked: make([]bool, n),
		popped: make([]int32, 0, n),
		stamp:  rand.Uint32(),
	}
	// Push in reverse so the first Alloc returns slot 0.
	for i := n - 1; i >= 0; i-- {
		p.free.Push(int32(i))
	}
	return p
}

func (p *Pool[T]) nextStamp() uint32 {
	p.stamp++
	if p.stamp == 0 {
		p.stamp = 1
	}
	return p.stamp
}

// Alloc takes one free slot.
// Returns ErrOutOfSlots if every slot is allocated.
func (p *Pool[T]) Alloc() (Handle, error) {
	i, err := p.free.Pop()
	if err != nil {
		return Handle{}, ErrOutOfSlots
	}
	s := p.nextStamp()
	p.stamps[i] = s
	return Handle{index: i, n: 1, stamp: s}, nil
}

// AllocContiguous takes a run of n adjacent free slots.
//
// Free indices are popped one at a time and marked; after each pop a
// window grows left and right from the popped index through marked
// neighbours. The first window that reaches n slots is committed, and every
// other examined index is pushed back in its original order. The search is
// best effort: the run found is not necessarily the lowest one, and a
// fragmented pool fails even when Available() >= n.
//
// Returns ErrInvalidArgument if n < 1 and ErrOutOfSlots if no run exists.
// On failure the pool is unchanged.
func (p *Pool[T]) AllocContiguous(n int) (Handle, error) {
	if n < 1 {
		return Handle{}, ErrInvalidArgument
	}
	if n > p.free.Len() {
		return Handle{}, ErrOutOfSlots
	}

	last := len(p.buffer) - 1
	lo, hi, found := 0, 0, false
	for !p.free.IsEmpty() {
		idx, _ := p.free.Pop()
		p.popped = append(p.popped, idx)
		p.marked[idx] = true

		i, j := int(idx), int(idx)
		for j-i+1 < n {
			if i > 0 && p.marked[i-1] {
				i--
				continue
			}
			if j < last && p.marked[j+1] {
				j++
				continue
			}
			break
		}
		if j-i+1 == n {
			lo, hi, found = i, j, true
			break
		}
	}

	var h Handle
	if found {
		h = Handle{index: int32(lo), n: int32(n), stamp: p.nextStamp()}
		for k := lo; k <= hi; k++ {
			p.marked[k] = false
			p.stamps[k] = h.stamp
		}
	}
	// Restore the rest in reverse pop order to keep the free stack's order.
	for k := len(p.popped) - 1; k >= 0; k-- {
		idx := p.popped[k]
		if p.marked[idx] {
			p.marked[idx] = false
			p.free.Push(idx)
		}
	}
	p.popped = p.popped[:0]

	if !found {
		return Handle{}, ErrOutOfSlots
	}
	return h, nil
}

// live reports whether h names a current allocation of this pool.
func (p *Pool[T]) live(h Handle) bool {
	if h.stamp == 0 || h.n < 1 || h.index < 0 || int(h.index)+int(h.n) > len(p.buffer) {
		return false
	}
	for k := int(h.index); k < int(h.index)+int(h.n); k++ {
		if p.stamps[k] != h.stamp {
			return false
		}
	}
	return true
}

// Free releases every slot of the allocation h.
// Returns ErrInvalidHandle, changing nothing, if h is out of range or is
// not a live allocation of this pool.
func (p *Pool[T]) Free(h Handle) error {
	if !p.live(h) {
		return ErrInvalidHandle
	}
	for k := int(h.index) + int(h.n) - 1; k >= int(h.index); k-- {
		p.stamps[k] = 0
		p.free.Push(int32(k))
	}
	return nil
}

// Get returns a pointer to the first slot of h, or nil if h is not live.
// The pointer stays valid until h is freed.
func (p *Pool[T]) Get(h Handle) *T {
	if !p.live(h) {
		return nil
	}
	return &p.buffer[h.index]
}

// Slice returns the slots of h as a slice, or nil if h is not live.
// The slice has len and cap h.Len().
func (p *Pool[T]) Slice(h Handle) []T {
	if !p.live(h) {
		return nil
	}
	lo, hi := int(h.index), int(h.index)+int(h.n)
	return p.buffer[lo:hi:hi]
}

// Slots returns the backing storage, free and allocated slots alike.
// It lets index-linked structures such as [List] use the pool as an arena.
func (p *Pool[T]) Slots() []T { return p.buffer }

// Len returns the number of allocated slots.
func (p *Pool[T]) Len() int { return len(p.buffer) - p.free.Len() }

// Available returns the number of free slots.
func (p *Pool[T]) Available() int { return p.free.Len() }

// Cap returns the number of slots.
func (p *Pool[T]) Cap() int { return len(p.buffer) }

// IsEmpty reports whether no slot is allocated.
func (p *Pool[T]) IsEmpty() bool { return p.free.IsFull() }

// IsFull reports whether every slot is allocated.
func (p *Pool[T]) IsFull() bool { return p.free.IsEmpty() }
