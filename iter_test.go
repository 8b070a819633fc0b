// Modifications copyright (c) Arista Networks, Inc. 2022
// Underlying
// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chash

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const modified = "chash: table modified during iteration"

func TestIter(t *testing.T) {
	m := mustNew[uint64, uint64](t, badIntHash, Eq[uint64])
	expected := make(map[uint64]uint64, 9)
	for i := uint64(0); i < 9; i++ {
		expected[i] = i
		m.Set(i, i)
	}
	for i := m.Begin(); !i.End(); i.Advance() {
		e, ok := expected[i.Key()]
		if !ok {
			t.Errorf("unexpected value in m: [%d: %d]", i.Key(), i.Value())
			continue
		}
		if e != i.Value() {
			t.Errorf("wrong value for key %d. Expected: %d Got: %d", i.Key(), e, i.Value())
			continue
		}
		delete(expected, i.Key())
	}
	if len(expected) > 0 {
		t.Errorf("Values not found in m: %v", expected)
	}
}

func TestIterOrder(t *testing.T) {
	m := mustNew[uint64, string](t, badIntHash, Eq[uint64], WithBuckets(8), WithMaxDepth(4))
	// bucket 5 holds 5 then 13, bucket 1 holds 1, bucket 7 holds 7
	for _, k := range []uint64{5, 7, 13, 1} {
		m.Set(k, "")
	}
	var got []uint64
	for it := m.Begin(); !it.End(); it.Advance() {
		got = append(got, it.Key())
	}
	require.Equal(t, []uint64{1, 5, 13, 7}, got)
}

func TestIterEmpty(t *testing.T) {
	m := mustNew[string, int](t, StringHash, Eq[string])
	it := m.Begin()
	require.True(t, it.End())
	it.Advance()
	require.True(t, it.End())
	require.Equal(t, "", it.Key())
	require.Equal(t, 0, it.Value())

	// a table whose entries were all removed
	m.Set("a", 1)
	m.Remove("a")
	require.True(t, m.Begin().End())
}

func TestIterEnd(t *testing.T) {
	m := mustNew[int, int](t, IntHash[int], Eq[int])
	m.Set(1, 10)
	it := m.Begin()
	require.False(t, it.End())
	require.Equal(t, Pair[int, int]{1, 10}, it.Pair())
	it.Advance()
	require.True(t, it.End())
	require.Equal(t, Pair[int, int]{}, it.Pair())

	// once ended, mutation is not observed and Advance stays a no-op
	m.Set(2, 20)
	require.NotPanics(t, it.Advance)
	require.True(t, it.End())
}

func TestIterReplace(t *testing.T) {
	m := mustNew[int, int](t, IntHash[int], Eq[int])
	for i := 0; i < 10; i++ {
		m.Set(i, i)
	}
	n := 0
	for it := m.Begin(); !it.End(); it.Advance() {
		m.Set(it.Key(), it.Value()*100)
		require.Equal(t, it.Key()*100, it.Value())
		n++
	}
	require.Equal(t, 10, n)
}

func TestIterInvalidated(t *testing.T) {
	for _, tc := range []struct {
		desc   string
		mutate func(m *Table[uint64, uint64])
	}{
		{
			desc:   "insert",
			mutate: func(m *Table[uint64, uint64]) { m.Set(1000, 1000) },
		},
		{
			desc:   "remove",
			mutate: func(m *Table[uint64, uint64]) { m.Remove(1) },
		},
		{
			desc:   "clear",
			mutate: func(m *Table[uint64, uint64]) { m.Clear() },
		},
		{
			desc: "resize",
			mutate: func(m *Table[uint64, uint64]) {
				// 0, 32 and 64 share bucket 0 until the table grows
				m.Set(32, 32)
				m.Set(64, 64)
			},
		},
	} {
		t.Run(tc.desc, func(t *testing.T) {
			m := mustNew[uint64, uint64](t, badIntHash, Eq[uint64])
			for i := uint64(0); i < 4; i++ {
				m.Set(i, i)
			}
			it := m.Begin()
			tc.mutate(m)
			require.PanicsWithValue(t, modified, it.Advance)
			require.PanicsWithValue(t, modified, func() { it.Key() })
		})
	}
}

func TestIterResize(t *testing.T) {
	m := mustNew[uint64, uint64](t, badIntHash, Eq[uint64])

	// insert numbers that initially hash to the same bucket, but will
	// be split into different buckets on resize.
	initial := map[uint64]uint64{0: 0, 32: 32}
	for k, e := range initial {
		m.Set(k, e)
	}
	m.Set(64, 64)
	require.Equal(t, 1, m.Stats().Resizes)
	initial[64] = 64

	// a fresh iterator after the resize sees every entry once
	for i := m.Begin(); !i.End(); i.Advance() {
		if i.Key() != i.Value() {
			t.Errorf("expected key == value, but got: %d != %d", i.Key(), i.Value())
			t.Error(m.debugString())
		}
		if _, ok := initial[i.Key()]; ok {
			delete(initial, i.Key())
			continue
		}
		t.Errorf("Unexpected value from iter: %d", i.Key())
	}
	for k := range initial {
		t.Errorf("iter missing key: %d", k)
	}
}

func BenchmarkIter(b *testing.B) {
	m, _ := NewWith(StringHash, Eq[string], []Pair[string, int]{
		{"one", 1},
		{"two", 2},
		{"three", 3},
	})
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for it := m.Begin(); !it.End(); it.Advance() {
		}
	}
}
