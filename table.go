// Modifications copyright (c) Arista Networks, Inc. 2024
// Underlying
// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package chash provides the Table type, a hash table with separate
// chaining. Users provide the hash and equal functions, so any key type
// can be stored.
//
// The following requirements are the user's responsibility to follow:
//   - equal(a, b) => hash(a) == hash(b)
//   - hash must be deterministic for the lifetime of the Table.
//   - equal(a, a) must be true for all values of a. Be careful around NaN
//     float values.
//   - If a key in a Table contains references, such as pointers, maps,
//     or slices, modifying the referenced data in a way that affects
//     the result of the equal or hash functions will result in undefined
//     behavior.
//   - A Table must not be used from more than one goroutine at a time.
package chash

// A Table is an array of buckets. Each bucket holds the head of a chain
// of entries whose hash, masked by the bucket count, selects that
// bucket. Entries are stored in an arena owned by the Table and linked
// by arena index, so unlinking or relinking an entry never leaves a
// dangling reference. Freed arena slots are kept on a free list.
//
// New entries are appended at the tail of their chain. When an insert
// makes a chain reach the max depth, the bucket array is doubled and
// every entry is relinked into the new array. Growing is best effort: if
// the new array cannot be obtained the Table keeps its current size.
// Removal never shrinks the bucket array.
//
// Iterators walk the bucket array in index order and each chain from
// head to tail. Every structural change to the Table bumps a
// generation counter, which iterators check to fail fast.

import (
	"fmt"
	"io"
	"reflect"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Pair is a key and the value stored with it.
type Pair[K, V any] struct {
	Key   K
	Value V
}

type entry[K, V any] struct {
	key   K
	value V
	// next is the arena index + 1 of the following entry in the chain,
	// or of the following free slot when the entry is on the free list.
	// 0 terminates.
	next int
}

// Table implements a hash table with separate chaining.
type Table[K, V any] struct {
	count int // # live entries == size of table
	gen   uint64

	// head of every chain as an arena index + 1, 0 when the bucket is
	// empty. len(buckets) is a power of 2.
	buckets []int
	entries []entry[K, V]
	free    int // head of the free list, same encoding as buckets

	hash  func(K) uint64
	equal func(a, b K) bool

	maxDepth   int
	maxBuckets int
	budget     Budget
	log        *zap.Logger

	releaseKey   func(K) error
	releaseValue func(V) error

	// set when K or V can hold nil
	checkKey   bool
	checkValue bool

	resizes   int
	skipped   int
	destroyed bool
}

// New creates an empty Table. The equal func must return true for two
// values of K that are equal and false otherwise. The hash func should
// return a uniformly distributed hash value, and if equal(a, b) then
// hash(a) == hash(b). New fails only with an *AllocationError, when the
// Budget refuses the initial bucket array.
func New[K, V any](
	hash func(K) uint64,
	equal func(a, b K) bool,
	opts ...Option) (*Table[K, V], error) {

	if hash == nil || equal == nil {
		panic("chash: New called with nil hash or equal func")
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	nbuckets := roundPow2(o.buckets)
	if nbuckets > o.maxBuckets {
		panic(fmt.Sprintf("chash: %d initial buckets exceed the max of %d", nbuckets, o.maxBuckets))
	}

	t := &Table[K, V]{
		hash:         hash,
		equal:        equal,
		maxDepth:     o.maxDepth,
		maxBuckets:   o.maxBuckets,
		budget:       o.budget,
		log:          o.logger,
		releaseKey:   releaseFunc[K](o.releaseKey, "key"),
		releaseValue: releaseFunc[V](o.releaseValue, "value"),
		checkKey:     nillable[K](),
		checkValue:   nillable[V](),
	}
	buckets, err := t.makeBuckets(nbuckets)
	if err != nil {
		return nil, err
	}
	t.buckets = buckets
	return t, nil
}

// NewWith creates a Table, see [New], and inserts pairs into it.
func NewWith[K, V any](
	hash func(K) uint64,
	equal func(a, b K) bool,
	pairs []Pair[K, V],
	opts ...Option) (*Table[K, V], error) {

	t, err := New[K, V](hash, equal, opts...)
	if err != nil {
		return nil, err
	}
	for _, p := range pairs {
		if err := t.Set(p.Key, p.Value); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func releaseFunc[T any](f any, what string) func(T) error {
	if f == nil {
		return closeElem[T]
	}
	release, ok := f.(func(T) error)
	if !ok {
		var zero T
		panic(fmt.Sprintf("chash: %s release func %T does not accept %T", what, f, zero))
	}
	if release == nil {
		return closeElem[T]
	}
	return release
}

// closeElem releases v if it is an io.Closer.
func closeElem[T any](v T) error {
	if c, ok := any(v).(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func nillable[T any]() bool {
	switch reflect.TypeOf((*T)(nil)).Elem().Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Chan, reflect.Func:
		return true
	}
	return false
}

func isNil[T any](v T) bool {
	rv := reflect.ValueOf(any(v))
	if !rv.IsValid() {
		return true
	}
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Chan, reflect.Func:
		return rv.IsNil()
	}
	return false
}

func roundPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

func (t *Table[K, V]) acquire(r Resource, n int) error {
	if t.budget == nil {
		return nil
	}
	if err := t.budget.Acquire(r, n); err != nil {
		return allocationError(r, n, err)
	}
	return nil
}

func (t *Table[K, V]) release(r Resource, n int) {
	if t.budget != nil && n > 0 {
		t.budget.Release(r, n)
	}
}

func (t *Table[K, V]) makeBuckets(n int) ([]int, error) {
	if err := t.acquire(Buckets, n); err != nil {
		return nil, err
	}
	return make([]int, n), nil
}

func (t *Table[K, V]) checkLive() {
	if t.destroyed {
		panic("chash: use of destroyed table")
	}
}

func (t *Table[K, V]) bucketFor(key K) int {
	return int(t.hash(key) & uint64(len(t.buckets)-1))
}

// Len returns the count of live entries in t.
func (t *Table[K, V]) Len() int {
	if t == nil {
		return 0
	}
	return t.count
}

// Get returns the value associated with key and true if that key is
// in the Table, otherwise it returns the zero value of V and false.
func (t *Table[K, V]) Get(key K) (V, bool) {
	p, ok := t.Lookup(key)
	return p.Value, ok
}

// Contains reports whether key is in t.
func (t *Table[K, V]) Contains(key K) bool {
	return t.find(key) != 0
}

// Lookup returns the stored key and value equal to key. The key
// returned is the one held by the Table, which may differ from key
// while still being equal to it.
func (t *Table[K, V]) Lookup(key K) (Pair[K, V], bool) {
	n := t.find(key)
	if n == 0 {
		return Pair[K, V]{}, false
	}
	e := &t.entries[n-1]
	return Pair[K, V]{Key: e.key, Value: e.value}, true
}

// find returns the arena index + 1 of the entry equal to key, or 0.
func (t *Table[K, V]) find(key K) int {
	if t == nil {
		return 0
	}
	t.checkLive()
	if t.count == 0 {
		return 0
	}
	for n := t.buckets[t.bucketFor(key)]; n != 0; n = t.entries[n-1].next {
		if t.equal(key, t.entries[n-1].key) {
			return n
		}
	}
	return 0
}

// Insert associates key with value in t. If an equal key is already
// present, its key and value are replaced in place and the previous pair
// is returned with replaced set. Otherwise a new entry is appended to the
// key's chain, which may grow the bucket array. If the entry cannot be
// allocated an *AllocationError is returned and t is unchanged.
func (t *Table[K, V]) Insert(key K, value V) (prev Pair[K, V], replaced bool, err error) {
	if t == nil {
		panic("chash: Insert called on nil table")
	}
	t.checkLive()
	if t.checkKey && isNil(key) {
		panic("chash: Insert called with nil key")
	}
	if t.checkValue && isNil(value) {
		panic("chash: Insert called with nil value")
	}

	b := t.bucketFor(key)
	depth := 0
	tail := 0
	for n := t.buckets[b]; n != 0; n = t.entries[n-1].next {
		e := &t.entries[n-1]
		if t.equal(key, e.key) {
			// already have a mapping for key. Update it.
			prev = Pair[K, V]{Key: e.key, Value: e.value}
			e.key = key
			e.value = value
			return prev, true, nil
		}
		tail = n
		depth++
	}

	n, err := t.newEntry(key, value)
	if err != nil {
		return prev, false, err
	}
	if tail == 0 {
		t.buckets[b] = n
	} else {
		t.entries[tail-1].next = n
	}
	t.count++
	t.gen++

	depth++
	if depth >= t.maxDepth {
		t.grow(depth)
	}
	return prev, false, nil
}

// Set associates key with value in t, discarding any previous pair.
func (t *Table[K, V]) Set(key K, value V) error {
	_, _, err := t.Insert(key, value)
	return err
}

func (t *Table[K, V]) newEntry(key K, value V) (int, error) {
	if err := t.acquire(Entries, 1); err != nil {
		return 0, err
	}
	if n := t.free; n != 0 {
		e := &t.entries[n-1]
		t.free = e.next
		*e = entry[K, V]{key: key, value: value}
		return n, nil
	}
	t.entries = append(t.entries, entry[K, V]{key: key, value: value})
	return len(t.entries), nil
}

// freeEntry puts the slot n on the free list, clearing key and value in
// case they hold pointers.
func (t *Table[K, V]) freeEntry(n int) {
	t.entries[n-1] = entry[K, V]{next: t.free}
	t.free = n
	t.release(Entries, 1)
}

// Remove deletes key from t and returns the pair that was stored. The
// caller owns the returned key and value. Remove reports false if key
// is not present.
func (t *Table[K, V]) Remove(key K) (Pair[K, V], bool) {
	if t == nil {
		return Pair[K, V]{}, false
	}
	t.checkLive()
	if t.count == 0 {
		return Pair[K, V]{}, false
	}
	b := t.bucketFor(key)
	prev := 0
	for n := t.buckets[b]; n != 0; {
		e := &t.entries[n-1]
		if !t.equal(key, e.key) {
			prev = n
			n = e.next
			continue
		}
		p := Pair[K, V]{Key: e.key, Value: e.value}
		if prev == 0 {
			t.buckets[b] = e.next
		} else {
			t.entries[prev-1].next = e.next
		}
		t.freeEntry(n)
		t.count--
		t.gen++
		return p, true
	}
	return Pair[K, V]{}, false
}

// Clear deletes all entries from t. The bucket array keeps its size.
func (t *Table[K, V]) Clear() {
	if t == nil || t.count == 0 {
		return
	}
	t.checkLive()
	t.release(Entries, t.count)
	clear(t.buckets)
	clear(t.entries)
	t.entries = t.entries[:0]
	t.free = 0
	t.count = 0
	t.gen++
}

// Destroy releases every entry and the bucket array. When releaseKeys or
// releaseValues is set, each key or value is first passed to the release
// function given by WithKeyRelease or WithValueRelease, or closed if it
// is an io.Closer and no function was given. Errors from releasing are
// combined and returned. A destroyed Table panics on any further use
// other than Len, Stats, Begin, Clear and Destroy.
func (t *Table[K, V]) Destroy(releaseKeys, releaseValues bool) error {
	if t == nil || t.destroyed {
		return nil
	}
	var err error
	if releaseKeys || releaseValues {
		for _, head := range t.buckets {
			for n := head; n != 0; n = t.entries[n-1].next {
				e := &t.entries[n-1]
				if releaseKeys {
					err = multierr.Append(err, t.releaseKey(e.key))
				}
				if releaseValues {
					err = multierr.Append(err, t.releaseValue(e.value))
				}
			}
		}
	}
	t.release(Entries, t.count)
	t.release(Buckets, len(t.buckets))
	t.buckets = nil
	t.entries = nil
	t.free = 0
	t.count = 0
	t.gen++
	t.destroyed = true
	return err
}

// grow doubles the bucket array and relinks every entry into it. depth
// is the chain length that triggered the grow.
func (t *Table[K, V]) grow(depth int) {
	oldn := len(t.buckets)
	newn := oldn * 2
	if newn > t.maxBuckets {
		t.skipped++
		t.log.Debug("chash: resize skipped, max buckets reached",
			zap.Int("buckets", oldn), zap.Int("len", t.count), zap.Int("depth", depth))
		return
	}
	newbuckets, err := t.makeBuckets(newn)
	if err != nil {
		t.skipped++
		t.log.Debug("chash: resize skipped",
			zap.Int("buckets", oldn), zap.Int("len", t.count), zap.Int("depth", depth),
			zap.Error(err))
		return
	}

	mask := uint64(newn - 1)
	for i := 0; i < oldn; i++ {
		// Entries of old bucket i land in new bucket i (x) or i+oldn (y).
		// Track the tail of both so chain order is kept.
		var xy [2]int
		for n := t.buckets[i]; n != 0; {
			e := &t.entries[n-1]
			next := e.next
			e.next = 0
			dst := int(t.hash(e.key) & mask)
			useY := 0
			if dst != i {
				useY = 1
			}
			if tail := xy[useY]; tail == 0 {
				newbuckets[dst] = n
			} else {
				t.entries[tail-1].next = n
			}
			xy[useY] = n
			n = next
		}
	}
	t.buckets = newbuckets
	t.release(Buckets, oldn)
	t.resizes++
	t.gen++
	t.log.Debug("chash: resized",
		zap.Int("buckets", newn), zap.Int("len", t.count), zap.Int("depth", depth))
}

// Stats describes the shape of a Table.
type Stats struct {
	Len            int
	Buckets        int
	MaxDepth       int
	Resizes        int
	SkippedResizes int
	LongestChain   int
}

// Stats returns the current shape of t.
func (t *Table[K, V]) Stats() Stats {
	if t == nil {
		return Stats{}
	}
	s := Stats{
		Len:            t.count,
		Buckets:        len(t.buckets),
		MaxDepth:       t.maxDepth,
		Resizes:        t.resizes,
		SkippedResizes: t.skipped,
	}
	for _, head := range t.buckets {
		depth := 0
		for n := head; n != 0; n = t.entries[n-1].next {
			depth++
		}
		if depth > s.LongestChain {
			s.LongestChain = depth
		}
	}
	return s
}
