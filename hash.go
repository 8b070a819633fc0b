// Modifications copyright (c) Arista Networks, Inc. 2024
// Underlying
// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chash

import (
	"hash/maphash"
	"unsafe"

	"golang.org/x/exp/constraints"
)

// BytesHash hashes b with the multiplicative string hash of CPython 2.
// It is deterministic across processes, which makes it convenient for
// tests, but it is easy to force collisions with; prefer Seeded with
// maphash.Bytes for keys from untrusted input.
func BytesHash(b []byte) uint64 {
	if len(b) == 0 {
		return 0
	}
	x := uint64(b[0]) << 7
	for _, c := range b[1:] {
		x = 1000003*x ^ uint64(c)
	}
	return x ^ uint64(len(b))
}

// StringHash is BytesHash over the bytes of s.
func StringHash(s string) uint64 {
	if len(s) == 0 {
		return 0
	}
	x := uint64(s[0]) << 7
	for i := 1; i < len(s); i++ {
		x = 1000003*x ^ uint64(s[i])
	}
	return x ^ uint64(len(s))
}

// IntHash hashes an integer by mixing all of its bits, so that keys
// differing only in their high bits still spread across buckets.
func IntHash[T constraints.Integer](v T) uint64 {
	return mix64(uint64(v))
}

// PointerHash hashes the address p points to. Use it with Eq for tables
// keyed by identity.
func PointerHash[T any](p *T) uint64 {
	return mix64(uint64(uintptr(unsafe.Pointer(p))))
}

// splitmix64 finalizer
func mix64(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}

// Seeded binds seed to a hash function in the style of the
// [hash/maphash] package, such as maphash.String or maphash.Bytes.
func Seeded[K any](seed maphash.Seed, hash func(maphash.Seed, K) uint64) func(K) uint64 {
	return func(key K) uint64 {
		return hash(seed, key)
	}
}

// Eq is an equal func for comparable keys.
func Eq[T comparable](a, b T) bool {
	return a == b
}
