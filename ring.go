// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fixed

import "code.hybscloud.com/atomix"

// Ring is a bounded FIFO ring buffer over caller-supplied storage.
//
// Based on Lamport's ring buffer with cached index optimization. The read
// and write cursors increase monotonically and are reduced modulo the
// capacity only when indexing, so Len is always tail-head.
//
// Ring is single-threaded by default. One producer goroutine (Write,
// WriteBatch) and one consumer goroutine (Read, ReadBatch, Discard, Peek)
// may run concurrently: each cursor is stored only by its owner with
// release ordering and observed by the other side with acquire ordering.
// Any other sharing needs external locking.
//
// Memory: O(capacity), no allocation after construction
type Ring[T any] struct {
	_          pad
	head       atomix.Uint64 // Consumer reads from here
	_          pad
	cachedTail uint64 // Consumer's cached view of tail
	_          pad
	tail       atomix.Uint64 // Producer writes here
	_          pad
	cachedHead uint64 // Producer's cached view of head
	_          pad
	buffer     []T
	n          uint64
	mask       uint64 // n-1 when n is a power of 2, otherwise 0
}

// NewRing creates a ring buffer over buf. The capacity is len(buf);
// power-of-2 capacities index with a mask instead of a modulo.
// Panics if buf is empty.
func NewRing[T any](buf []T) *Ring[T] {
	if len(buf) < 1 {
		panic("fixed: capacity must be >= 1")
	}
	n := uint64(len(buf))
	r := &Ring[T]{buffer: buf, n: n}
	if n > 1 && n&(n-1) == 0 {
		r.mask = n - 1
	}
	return r
}

func (r *Ring[T]) slot(cursor uint64) uint64 {
	if r.mask != 0 {
		return cursor & r.mask
	}
	return cursor % r.n
}

// free returns the space available to the producer at tail.
func (r *Ring[T]) free(tail uint64) uint64 {
	if tail-r.cachedHead >= r.n {
		r.cachedHead = r.head.LoadAcquire()
	}
	return r.n - (tail - r.cachedHead)
}

// avail returns the elements available to the consumer at head.
func (r *Ring[T]) avail(head uint64) uint64 {
	if head >= r.cachedTail {
		r.cachedTail = r.tail.LoadAcquire()
	}
	return r.cachedTail - head
}

// Write appends v (producer only).
// Returns ErrCapacityExceeded if the ring is full.
func (r *Ring[T]) Write(v T) error {
	tail := r.tail.LoadRelaxed()
	if r.free(tail) == 0 {
		return ErrCapacityExceeded
	}

	r.buffer[r.slot(tail)] = v
	r.tail.StoreRelease(tail + 1)
	return nil
}

// WriteBatch appends every element of vs in order (producer only).
//
// The batch is all-or-nothing: if fewer than len(vs) slots are free,
// nothing is written and ErrCapacityExceeded is returned. The whole batch
// becomes visible to the consumer at once.
func (r *Ring[T]) WriteBatch(vs []T) error {
	tail := r.tail.LoadRelaxed()
	need := uint64(len(vs))
	if need > r.free(tail) {
		// cachedHead may be stale even after a refresh in free
		r.cachedHead = r.head.LoadAcquire()
		if need > r.n-(tail-r.cachedHead) {
			return ErrCapacityExceeded
		}
	}
	if need == 0 {
		return nil
	}

	start := r.slot(tail)
	first := min(need, r.n-start)
	copy(r.buffer[start:], vs[:first])
	copy(r.buffer, vs[first:])
	r.tail.StoreRelease(tail + need)
	return nil
}

// Read removes and returns the oldest element (consumer only).
// Returns (zero-value, ErrEmpty) if the ring is empty.
func (r *Ring[T]) Read() (T, error) {
	head := r.head.LoadRelaxed()
	if r.avail(head) == 0 {
		var zero T
		return zero, ErrEmpty
	}

	i := r.slot(head)
	v := r.buffer[i]
	var zero T
	r.buffer[i] = zero
	r.head.StoreRelease(head + 1)
	return v, nil
}

// ReadBatch fills dst with the len(dst) oldest elements (consumer only).
//
// The batch is all-or-nothing: if fewer than len(dst) elements are
// available, nothing is consumed and ErrEmpty is returned.
func (r *Ring[T]) ReadBatch(dst []T) error {
	head, n, err := r.reserve(len(dst))
	if err != nil || n == 0 {
		return err
	}

	start := r.slot(head)
	first := min(n, r.n-start)
	copy(dst, r.buffer[start:start+first])
	copy(dst[first:], r.buffer[:n-first])
	r.release(head, start, first, n)
	return nil
}

// Discard consumes the n oldest elements without copying them
// (consumer only). It is the skip mode of ReadBatch, meant to follow Peek.
//
// Returns ErrInvalidArgument if n is negative and ErrEmpty, consuming
// nothing, if fewer than n elements are available.
func (r *Ring[T]) Discard(n int) error {
	if n < 0 {
		return ErrInvalidArgument
	}
	head, m, err := r.reserve(n)
	if err != nil || m == 0 {
		return err
	}

	start := r.slot(head)
	r.release(head, start, min(m, r.n-start), m)
	return nil
}

func (r *Ring[T]) reserve(n int) (head, m uint64, err error) {
	head = r.head.LoadRelaxed()
	m = uint64(n)
	if m > r.avail(head) {
		r.cachedTail = r.tail.LoadAcquire()
		if m > r.cachedTail-head {
			return head, 0, ErrEmpty
		}
	}
	return head, m, nil
}

// release clears the n consumed slots starting at start and publishes
// the new head. first is the length of the run before the wrap.
func (r *Ring[T]) release(head, start, first, n uint64) {
	clear(r.buffer[start : start+first])
	clear(r.buffer[:n-first])
	r.head.StoreRelease(head + n)
}

// Peek returns a pointer to the oldest element without consuming it
// (consumer only). Returns nil if the ring is empty.
//
// The pointer is valid until the next Read, ReadBatch or Discard.
func (r *Ring[T]) Peek() *T {
	head := r.head.LoadRelaxed()
	if r.avail(head) == 0 {
		return nil
	}
	return &r.buffer[r.slot(head)]
}

// Len returns the number of buffered elements.
// Under concurrent use the result is a snapshot.
func (r *Ring[T]) Len() int {
	head := r.head.LoadAcquire()
	tail := r.tail.LoadAcquire()
	return int(tail - head)
}

// Cap returns the ring capacity.
func (r *Ring[T]) Cap() int {
	return int(r.n)
}

// IsEmpty reports whether no elements are buffered.
func (r *Ring[T]) IsEmpty() bool {
	return r.Len() == 0
}

// IsFull reports whether Cap elements are buffered.
func (r *Ring[T]) IsFull() bool {
	return r.Len() == int(r.n)
}
