// Modifications copyright (c) Arista Networks, Inc. 2024
// Underlying
// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build go1.23

package chash

import "iter"

// All returns an iterator over key-value pairs from t. As with
// Iterator, yield must not insert new keys into or remove keys from t.
func (t *Table[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for it := t.Begin(); !it.End(); it.Advance() {
			if !yield(it.Key(), it.Value()) {
				return
			}
		}
	}
}

// Keys returns an iterator over keys in t.
func (t *Table[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for it := t.Begin(); !it.End(); it.Advance() {
			if !yield(it.Key()) {
				return
			}
		}
	}
}

// Values returns an iterator over values in t.
func (t *Table[K, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		for it := t.Begin(); !it.End(); it.Advance() {
			if !yield(it.Value()) {
				return
			}
		}
	}
}
