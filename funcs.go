// Modifications copyright (c) Arista Networks, Inc. 2022
// Underlying
// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chash

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

// String converts t to a string representation using fmt's default
// formatting of keys and values.
func (t *Table[K, V]) String() string {
	return StringFunc(t,
		func(key K) string { return fmt.Sprint(key) },
		func(value V) string { return fmt.Sprint(value) },
	)
}

// String converts t to a string representation using K's and V's
// String functions.
func String[K fmt.Stringer, V fmt.Stringer](t *Table[K, V]) string {
	return StringFunc(t,
		func(key K) string { return key.String() },
		func(value V) string { return value.String() },
	)
}

type strKV struct {
	k string
	v string
}

// StringFunc converts t to a string representation with the help of
// strK and strV functions to stringify t's keys and values. Pairs are
// sorted by their key's string.
func StringFunc[K any, V any](t *Table[K, V],
	strK func(key K) string,
	strV func(value V) string) string {
	if t == nil || t.Len() == 0 {
		return "chash.Table[]"
	}
	strs := make([]strKV, 0, t.Len())
	s := 0
	for it := t.Begin(); !it.End(); it.Advance() {
		kv := strKV{k: strK(it.Key()), v: strV(it.Value())}
		s += len(kv.k) + len(kv.v)
		strs = append(strs, kv)
	}
	slices.SortFunc(strs, func(a, b strKV) int { return strings.Compare(a.k, b.k) })

	var b strings.Builder
	b.Grow(len("chash.Table[]") + // space for header and footer
		len(strs)*2 - 1 + // space for delimiters
		s) // space for keys and values
	b.WriteString("chash.Table[")
	for i, kv := range strs {
		if i != 0 {
			b.WriteByte(' ')
		}
		b.WriteString(kv.k)
		b.WriteByte(':')
		b.WriteString(kv.v)
	}
	b.WriteByte(']')
	return b.String()
}

// Equal returns true if the same set of keys and values are in t1 and
// t2. Values are compared using ==.
func Equal[K any, V comparable](t1, t2 *Table[K, V]) bool {
	return EqualFunc(t1, t2, Eq[V])
}

// EqualFunc returns true if the same set of keys and values are in t1
// and t2. Values are compared using eq.
func EqualFunc[K, V any](t1, t2 *Table[K, V], eq func(V, V) bool) bool {
	if t1.Len() != t2.Len() {
		return false
	}
	for it := t1.Begin(); !it.End(); it.Advance() {
		v2, ok := t2.Get(it.Key())
		if !ok || !eq(it.Value(), v2) {
			return false
		}
	}
	return true
}
