// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package fixed provides fixed-capacity containers that never allocate
// after construction.
//
// The package offers five containers, each built over storage the caller
// supplies once:
//
//   - Stack: bounded LIFO
//   - Ring: bounded FIFO with wrap-around cursors
//   - Pool: slot allocator with single and contiguous-run allocation
//   - List: intrusive doubly linked list over an index arena
//   - Map: fixed bucket-count hash map composed from Pool and List
//
// # Quick Start
//
// Direct constructors take the backing storage:
//
//	var stackBuf [64]int
//	s := fixed.NewStack(stackBuf[:])
//
//	r := fixed.NewRing(make([]Event, 1024))
//	p := fixed.NewPool(make([]Block, 256))
//
// Builder API allocates the storage for you:
//
//	r := fixed.BuildRing[Event](fixed.New(1000).PowerOfTwo()) // capacity 1024
//	m := fixed.BuildMap[uint32, Session](fixed.New(512), nil)  // identity hash
//
// # Pool Handles
//
// Pool hands out [Handle] values instead of pointers. A handle names a slot
// index (or a run of adjacent slots) plus the stamp of the allocation, so a
// stale or doubled Free is rejected with [ErrInvalidHandle]:
//
//	h, err := p.Alloc()
//	if err != nil {
//	    // Pool exhausted
//	}
//	blk := p.Get(h)   // *Block, valid until Free
//	p.Free(h)         // nil
//	p.Free(h)         // ErrInvalidHandle
//
// Freed slots are reused LIFO. AllocContiguous searches the free slots for
// a run of adjacent indices, first fit and best effort; it never compacts,
// so a fragmented pool can refuse a run even with enough free slots.
//
// # Lists and Maps
//
// List links nodes by index rather than by pointer. The arena is a
// []Node[T], typically the slots of a Pool, and several lists may share
// one arena:
//
//	p := fixed.NewPool(make([]fixed.Node[Task], 128))
//	ready := fixed.NewList(p.Slots())
//	h, _ := p.Alloc()
//	ready.Append(fixed.Ref(h.Index()))
//
// Map is exactly that composition: one List per bucket, nodes from a Pool
// of [MapNode]. The pool capacity bounds the total number of entries and
// also sets the bucket count. Keys hash through a caller function; when
// none is given, unsigned integer keys hash to themselves:
//
//	m := fixed.NewMap[uint16, int](fixed.NewPool(make([]fixed.MapNode[uint16, int], 3)), nil)
//	m.Set(1, 2)
//	v, err := m.Get(1)      // 2, nil
//	err = m.Remove(5)       // ErrNotFound
//
// [HashString] and [HashBytes] hash with xxHash64; [Identity] is the
// unsigned identity hash.
//
// # Error Handling
//
// Every operation returns an explicit error and leaves the container
// unchanged on failure; batch and contiguous operations are
// all-or-nothing.
//
// Full and empty conditions wrap [ErrWouldBlock], sourced from
// [code.hybscloud.com/iox], because they are backpressure rather than
// failure:
//
//	// Retry loop with backoff
//	backoff := iox.Backoff{}
//	for {
//	    err := r.Write(ev)
//	    if err == nil {
//	        break
//	    }
//	    if !fixed.IsWouldBlock(err) {
//	        return err
//	    }
//	    backoff.Wait()
//	}
//
// The specific errors are:
//
//	ErrCapacityExceeded  stack, ring or pool full (would block)
//	ErrEmpty             stack or ring empty (would block)
//	ErrOutOfSlots        pool cannot satisfy the request (wraps ErrCapacityExceeded)
//	ErrOutOfCapacity     map pool exhausted (wraps ErrOutOfSlots)
//	ErrNotFound          missing key, or ref not a member of the list
//	ErrInvalidArgument   request that can never succeed
//	ErrInvalidHandle     out-of-range, stale or already-freed handle
//
// Misuse that cannot be reported as an error, such as constructing over
// empty storage or a Map without a usable hash, panics.
//
// # Thread Safety
//
// Containers are not synchronized. Callers must serialize access, with one
// exception: a Ring may be used by exactly one producer goroutine (Write,
// WriteBatch) and one consumer goroutine (Read, ReadBatch, Discard, Peek)
// at the same time. Its cursors use [code.hybscloud.com/atomix] with
// release stores and acquire loads, as in a Lamport SPSC queue.
//
// Ring never blocks. Producers and consumers poll and back off on
// [ErrWouldBlock], for example with iox.Backoff or spin.Wait.
//
// # Race Detection
//
// The race detector cannot observe the happens-before edges that the Ring
// cursors establish for its element slots, so concurrent ring tests are
// excluded via //go:build !race and [RaceEnabled].
//
// # Dependencies
//
// This package uses [code.hybscloud.com/iox] for semantic errors,
// [code.hybscloud.com/atomix] for atomic cursors with explicit memory
// ordering, [golang.org/x/exp/constraints] for the unsigned identity hash
// and [github.com/cespare/xxhash/v2] for string and byte hashing.
package fixed
