// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fixed

import (
	"iter"
	"math"
)

// Ref is the index of a [Node] in a list arena.
type Ref int32

// None is the Ref of no node: the empty list's head and tail, the prev of
// the head and the next of the tail.
const None Ref = -1

// Node is an arena element carrying a payload and its list links.
//
// The links are owned by whichever [List] the node is currently linked
// into; a node belongs to at most one list at a time. The node does not
// record its membership.
type Node[T any] struct {
	Value T
	prev  Ref
	next  Ref
}

// List is an intrusive doubly linked list over an arena of nodes.
//
// The list never allocates or frees nodes. Callers own the arena (often a
// [Pool]'s slots) and hand the list references to link and unlink. Several
// lists may share one arena as long as each node is linked into at most
// one of them.
//
// Append and unlinking are O(1); InsertBefore and Remove first verify
// membership by walking the list, which is O(Len).
//
// List is not safe for concurrent use.
type List[T any] struct {
	arena []Node[T]
	head  Ref
	tail  Ref
	n     int
}

// NewList creates an empty list over arena.
// Panics if arena is empty or too large to index with a Ref.
func NewList[T any](arena []Node[T]) *List[T] {
	if len(arena) < 1 {
		panic("fixed: capacity must be >= 1")
	}
	if len(arena) > math.MaxInt32 {
		panic("fixed: capacity exceeds int32 range")
	}
	return &List[T]{arena: arena, head: None, tail: None}
}

func (l *List[T]) inArena(r Ref) bool {
	return r >= 0 && int(r) < len(l.arena)
}

// Contains reports whether r is linked into this list.
func (l *List[T]) Contains(r Ref) bool {
	if !l.inArena(r) {
		return false
	}
	for e := l.head; e != None; e = l.arena[e].next {
		if e == r {
			return true
		}
	}
	return false
}

func (l *List[T]) linkSole(r Ref) {
	l.arena[r].prev = None
	l.arena[r].next = None
	l.head, l.tail = r, r
	l.n = 1
}

// InsertBefore links r immediately before anchor.
//
// anchor must be a member of this list, or None when the list is empty, in
// which case r becomes both head and tail. r must not already be linked
// into any list.
//
// Returns ErrInvalidArgument if r is outside the arena, equals anchor, or
// anchor is None on a non-empty list; ErrNotFound if anchor is not a member.
func (l *List[T]) InsertBefore(anchor, r Ref) error {
	if !l.inArena(r) || r == anchor {
		return ErrInvalidArgument
	}
	if anchor == None {
		if l.n != 0 {
			return ErrInvalidArgument
		}
		l.linkSole(r)
		return nil
	}
	if !l.Contains(anchor) {
		return ErrNotFound
	}

	a := &l.arena[anchor]
	e := &l.arena[r]
	e.prev = a.prev
	e.next = anchor
	a.prev = r
	if e.prev != None {
		l.arena[e.prev].next = r
	} else {
		l.head = r
	}
	l.n++
	return nil
}

// Append links r at the tail in O(1).
// r must not already be linked into any list.
// Returns ErrInvalidArgument if r is outside the arena.
func (l *List[T]) Append(r Ref) error {
	if !l.inArena(r) {
		return ErrInvalidArgument
	}
	if l.n == 0 {
		l.linkSole(r)
		return nil
	}

	e := &l.arena[r]
	e.prev = l.tail
	e.next = None
	l.arena[l.tail].next = r
	l.tail = r
	l.n++
	return nil
}

// Remove unlinks r and clears its links.
// Returns ErrNotFound if r is not a member of this list.
func (l *List[T]) Remove(r Ref) error {
	if !l.Contains(r) {
		return ErrNotFound
	}

	e := &l.arena[r]
	if e.prev != None {
		l.arena[e.prev].next = e.next
	} else {
		l.head = e.next
	}
	if e.next != None {
		l.arena[e.next].prev = e.prev
	} else {
		l.tail = e.prev
	}
	e.prev, e.next = None, None
	l.n--
	return nil
}

// Search returns the first node from the head whose value satisfies match,
// or None.
func (l *List[T]) Search(match func(*T) bool) Ref {
	for e := l.head; e != None; e = l.arena[e].next {
		if match(&l.arena[e].Value) {
			return e
		}
	}
	return None
}

// At returns the node i steps from the head, or None if i is out of range.
func (l *List[T]) At(i int) Ref {
	if i < 0 || i >= l.n {
		return None
	}
	e := l.head
	for range i {
		e = l.arena[e].next
	}
	return e
}

// Value returns the payload of r, or nil if r is outside the arena.
func (l *List[T]) Value(r Ref) *T {
	if !l.inArena(r) {
		return nil
	}
	return &l.arena[r].Value
}

// Next returns the node after r, or None.
// r must be a member of this list.
func (l *List[T]) Next(r Ref) Ref {
	if !l.inArena(r) {
		return None
	}
	return l.arena[r].next
}

// Prev returns the node before r, or None.
// r must be a member of this list.
func (l *List[T]) Prev(r Ref) Ref {
	if !l.inArena(r) {
		return None
	}
	return l.arena[r].prev
}

// All yields every member from head to tail with its payload.
// The list must not be modified during iteration.
func (l *List[T]) All() iter.Seq2[Ref, *T] {
	return func(yield func(Ref, *T) bool) {
		for e := l.head; e != None; e = l.arena[e].next {
			if !yield(e, &l.arena[e].Value) {
				return
			}
		}
	}
}

// Head returns the first node, or None if the list is empty.
func (l *List[T]) Head() Ref { return l.head }

// Tail returns the last node, or None if the list is empty.
func (l *List[T]) Tail() Ref { return l.tail }

// Len returns the number of linked nodes.
func (l *List[T]) Len() int { return l.n }
