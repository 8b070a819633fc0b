// Modifications copyright (c) Arista Networks, Inc. 2024
// Underlying
// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chash

// Iterator is a cursor over the entries of a Table, obtained from
// Begin. It visits buckets in index order and each chain from head to
// tail, so every live entry is seen exactly once. The order is derived
// from the hash and carries no other meaning.
//
// Inserting a new key into, removing from, clearing or destroying the
// Table invalidates the Iterator: the next Advance panics. Replacing the
// value of an existing key does not. Begin a new Iterator to traverse
// the Table again after a change.
type Iterator[K, V any] struct {
	t      *Table[K, V]
	gen    uint64
	bucket int
	n      int // arena index + 1 of the current entry
	end    bool
}

// Begin returns an Iterator positioned at the first entry of t, or at
// the end if t is empty.
func (t *Table[K, V]) Begin() *Iterator[K, V] {
	it := &Iterator[K, V]{t: t}
	if t == nil || t.count == 0 {
		it.end = true
		return it
	}
	it.gen = t.gen
	it.seek(0)
	return it
}

// seek moves it to the head of the first non-empty bucket at or after
// bucket.
func (it *Iterator[K, V]) seek(bucket int) {
	buckets := it.t.buckets
	for ; bucket < len(buckets); bucket++ {
		if n := buckets[bucket]; n != 0 {
			it.bucket = bucket
			it.n = n
			return
		}
	}
	it.n = 0
	it.end = true
}

func (it *Iterator[K, V]) check() {
	if it.t.gen != it.gen {
		panic("chash: table modified during iteration")
	}
}

// Advance moves the iterator to the next entry. Past the last entry End
// reports true and further calls do nothing.
func (it *Iterator[K, V]) Advance() {
	if it.end {
		return
	}
	it.check()
	if next := it.t.entries[it.n-1].next; next != 0 {
		it.n = next
		return
	}
	it.seek(it.bucket + 1)
}

// End reports whether the iterator has moved past the last entry.
func (it *Iterator[K, V]) End() bool {
	return it.end
}

// Key returns the key at the iterator's current position, or the zero
// value of K at the end.
func (it *Iterator[K, V]) Key() K {
	if it.end {
		var zero K
		return zero
	}
	it.check()
	return it.t.entries[it.n-1].key
}

// Value returns the value at the iterator's current position, or the
// zero value of V at the end.
func (it *Iterator[K, V]) Value() V {
	if it.end {
		var zero V
		return zero
	}
	it.check()
	return it.t.entries[it.n-1].value
}

// Pair returns the key and value at the iterator's current position.
func (it *Iterator[K, V]) Pair() Pair[K, V] {
	return Pair[K, V]{Key: it.Key(), Value: it.Value()}
}
