// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fixed

// Stack is a bounded LIFO stack over caller-supplied storage.
//
// Elements occupy buffer[0:n); Push writes buffer[n] and Pop reads
// buffer[n-1]. Capacity is len(buffer) and never changes.
//
// Stack is not safe for concurrent use.
type Stack[T any] struct {
	buffer []T
	n      int
}

// NewStack creates a stack over buf. The stack capacity is len(buf).
// Panics if buf is empty.
func NewStack[T any](buf []T) *Stack[T] {
	if len(buf) < 1 {
		panic("fixed: capacity must be >= 1")
	}
	return &Stack[T]{buffer: buf}
}

// Push copies v onto the top of the stack.
// Returns ErrCapacityExceeded if the stack is full.
func (s *Stack[T]) Push(v T) error {
	if s.n == len(s.buffer) {
		return ErrCapacityExceeded
	}
	s.buffer[s.n] = v
	s.n++
	return nil
}

// Pop removes and returns the top element.
// Returns (zero-value, ErrEmpty) if the stack is empty.
func (s *Stack[T]) Pop() (T, error) {
	if s.n == 0 {
		var zero T
		return zero, ErrEmpty
	}
	s.n--
	v := s.buffer[s.n]
	var zero T
	s.buffer[s.n] = zero
	return v, nil
}

// Peek returns the top element without removing it.
// Returns (zero-value, ErrEmpty) if the stack is empty.
func (s *Stack[T]) Peek() (T, error) {
	if s.n == 0 {
		var zero T
		return zero, ErrEmpty
	}
	return s.buffer[s.n-1], nil
}

// Reset empties the stack and clears the occupied slots.
func (s *Stack[T]) Reset() {
	clear(s.buffer[:s.n])
	s.n = 0
}

// Len returns the number of elements on the stack.
func (s *Stack[T]) Len() int { return s.n }

// Cap returns the stack capacity.
func (s *Stack[T]) Cap() int { return len(s.buffer) }

// IsEmpty reports whether the stack holds no elements.
func (s *Stack[T]) IsEmpty() bool { return s.n == 0 }

// IsFull reports whether the stack holds Cap elements.
func (s *Stack[T]) IsFull() bool { return s.n == len(s.buffer) }
