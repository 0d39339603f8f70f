// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fixed

// Options configures container creation.
type Options struct {
	// Capacity (exact unless powerOfTwo)
	capacity int

	// Round capacity up to the next power of 2
	powerOfTwo bool
}

// Builder allocates backing storage once and constructs a container over
// it.
//
// The New* constructors take caller-supplied storage, which suits storage
// declared at package or stack scope. Builder covers the common case of
// allocating that storage at start-up.
//
// Example:
//
//	// Ring over 1024 slots, indexed with a mask
//	r := fixed.BuildRing[Event](fixed.New(1000).PowerOfTwo())
//
//	// Map with up to 256 entries
//	m := fixed.BuildMap[string, int](fixed.New(256), fixed.HashString)
type Builder struct {
	opts Options
}

// New creates a builder for containers of the given capacity.
// Panics if capacity < 1.
func New(capacity int) *Builder {
	if capacity < 1 {
		panic("fixed: capacity must be >= 1")
	}
	return &Builder{opts: Options{capacity: capacity}}
}

// PowerOfTwo rounds the capacity up to the next power of 2.
//
// Ring indexes power-of-2 buffers with a mask instead of a modulo, and a
// Map with a power-of-2 bucket count reduces hashes the same way.
func (b *Builder) PowerOfTwo() *Builder {
	b.opts.powerOfTwo = true
	return b
}

// Cap returns the capacity containers built by b will have.
func (b *Builder) Cap() int {
	if b.opts.powerOfTwo {
		return roundToPow2(b.opts.capacity)
	}
	return b.opts.capacity
}

// BuildStack creates a Stack with freshly allocated storage.
func BuildStack[T any](b *Builder) *Stack[T] {
	return NewStack(make([]T, b.Cap()))
}

// BuildRing creates a Ring with freshly allocated storage.
func BuildRing[T any](b *Builder) *Ring[T] {
	return NewRing(make([]T, b.Cap()))
}

// BuildPool creates a Pool with freshly allocated slots.
func BuildPool[T any](b *Builder) *Pool[T] {
	return NewPool(make([]T, b.Cap()))
}

// BuildList creates an empty List with a freshly allocated arena.
// The arena is reachable through the list's Value method.
func BuildList[T any](b *Builder) *List[T] {
	return NewList(make([]Node[T], b.Cap()))
}

// BuildMap creates a Map with a freshly allocated node pool.
// hash follows the rules of NewMap.
func BuildMap[K comparable, V any](b *Builder, hash func(K) uint64) *Map[K, V] {
	return NewMap[K, V](BuildPool[MapNode[K, V]](b), hash)
}

// roundToPow2 rounds n up to the next power of 2.
func roundToPow2(n int) int {
	if n < 2 {
		return 1
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return n + 1
}

// pad is cache line padding to prevent false sharing.
type pad [64]byte
