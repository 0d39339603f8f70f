// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fixed

import "iter"

// Entry is the key-value payload of a [Map] node.
// Entries are matched by key only.
type Entry[K comparable, V any] struct {
	Key   K
	Value V
	slot  Handle
}

// MapNode is the pool element type a [Map] is built on.
type MapNode[K comparable, V any] = Node[Entry[K, V]]

// Map is a fixed-capacity hash map with separate chaining.
//
// The map has one bucket per pool slot; bucket i is a [List] of the
// entries whose key hashes to i modulo the bucket count. Nodes come from a
// caller-supplied [Pool], which bounds the total number of entries no
// matter how keys distribute. The map never rehashes or grows. A skewed
// hash only lengthens individual buckets.
//
// Map is not safe for concurrent use.
type Map[K comparable, V any] struct {
	pool    *Pool[MapNode[K, V]]
	buckets []List[Entry[K, V]]
	hash    func(K) uint64
	n       int
}

// NewMap creates an empty map whose nodes are allocated from pool.
//
// If hash is nil, K must be an unsigned integer type and keys hash to
// themselves. Panics if pool is nil, or if hash is nil for any other K.
//
// Example:
//
//	storage := make([]fixed.MapNode[string, int], 64)
//	m := fixed.NewMap[string, int](fixed.NewPool(storage), fixed.HashString)
func NewMap[K comparable, V any](pool *Pool[MapNode[K, V]], hash func(K) uint64) *Map[K, V] {
	if pool == nil {
		panic("fixed: nil pool")
	}
	if hash == nil {
		hash = unsignedHash[K]()
		if hash == nil {
			panic("fixed: hash function required for non-unsigned key type")
		}
	}

	arena := pool.Slots()
	buckets := make([]List[Entry[K, V]], pool.Cap())
	for i := range buckets {
		buckets[i] = List[Entry[K, V]]{arena: arena, head: None, tail: None}
	}
	return &Map[K, V]{pool: pool, buckets: buckets, hash: hash}
}

func (m *Map[K, V]) find(k K) (*List[Entry[K, V]], Ref) {
	l := &m.buckets[m.hash(k)%uint64(len(m.buckets))]
	return l, l.Search(func(e *Entry[K, V]) bool { return e.Key == k })
}

// Set stores v under k.
//
// An existing key is updated in place and Len is unchanged. A new key
// takes a node from the pool and is appended to its bucket.
// Returns ErrOutOfCapacity, changing nothing, if the pool has no free slot.
func (m *Map[K, V]) Set(k K, v V) error {
	l, r := m.find(k)
	if r != None {
		l.Value(r).Value = v
		return nil
	}

	h, err := m.pool.Alloc()
	if err != nil {
		return ErrOutOfCapacity
	}
	r = Ref(h.Index())
	*l.Value(r) = Entry[K, V]{Key: k, Value: v, slot: h}
	l.Append(r)
	m.n++
	return nil
}

// Get returns a copy of the value stored under k.
// Returns (zero-value, ErrNotFound) if k is absent.
func (m *Map[K, V]) Get(k K) (V, error) {
	l, r := m.find(k)
	if r == None {
		var zero V
		return zero, ErrNotFound
	}
	return l.Value(r).Value, nil
}

// Contains reports whether k is present.
func (m *Map[K, V]) Contains(k K) bool {
	_, r := m.find(k)
	return r != None
}

// Remove deletes k and returns its node to the pool.
// Returns ErrNotFound if k is absent.
func (m *Map[K, V]) Remove(k K) error {
	l, r := m.find(k)
	if r == None {
		return ErrNotFound
	}

	e := l.Value(r)
	slot := e.slot
	l.Remove(r)
	*e = Entry[K, V]{}
	if err := m.pool.Free(slot); err != nil {
		// The node was allocated by Set and is only freed here.
		panic("fixed: map node not live in pool: " + err.Error())
	}
	m.n--
	return nil
}

// All yields every entry, bucket by bucket and in insertion order within
// a bucket. The map must not be modified during iteration.
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for i := range m.buckets {
			for _, e := range m.buckets[i].All() {
				if !yield(e.Key, e.Value) {
					return
				}
			}
		}
	}
}

// Len returns the number of entries.
func (m *Map[K, V]) Len() int { return m.n }

// Cap returns the maximum number of entries, the pool capacity.
func (m *Map[K, V]) Cap() int { return m.pool.Cap() }
