// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fixed

// Bounded is the occupancy interface shared by the flat-buffer containers.
//
// Stack and Ring count stored elements; Pool counts allocated slots.
type Bounded interface {
	// Len returns the number of occupied slots.
	Len() int
	// Cap returns the fixed capacity.
	Cap() int
	// IsEmpty reports whether Len() == 0.
	IsEmpty() bool
	// IsFull reports whether Len() == Cap().
	IsFull() bool
}

// Producer is the write side of a FIFO.
//
// Write copies the element into the container's storage, so the caller's
// value may be reused after Write returns.
type Producer[T any] interface {
	// Write appends an element (non-blocking).
	// Returns nil on success, ErrCapacityExceeded if full.
	Write(v T) error
	// WriteBatch appends all elements or none.
	WriteBatch(vs []T) error
}

// Consumer is the read side of a FIFO.
//
// Read returns the element by value and clears the slot it occupied so
// referenced objects can be collected.
type Consumer[T any] interface {
	// Read removes and returns the oldest element (non-blocking).
	// Returns (zero-value, ErrEmpty) if empty.
	Read() (T, error)
	// ReadBatch fills dst completely or consumes nothing.
	ReadBatch(dst []T) error
}

var (
	_ Bounded       = (*Stack[int])(nil)
	_ Bounded       = (*Ring[int])(nil)
	_ Bounded       = (*Pool[int])(nil)
	_ Producer[int] = (*Ring[int])(nil)
	_ Consumer[int] = (*Ring[int])(nil)
)
