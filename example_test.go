// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chash_test

import (
	"errors"
	"fmt"
	"hash/maphash"

	"github.com/aristanetworks/chash"
)

func ExampleTable_Begin() {
	m, err := chash.NewWith(
		chash.Seeded(maphash.MakeSeed(), maphash.String),
		chash.Eq[string],
		[]chash.Pair[string, string]{
			{"Avenue", "AVE"},
			{"Street", "ST"},
			{"Court", "CT"},
		})
	if err != nil {
		panic(err)
	}

	for it := m.Begin(); !it.End(); it.Advance() {
		fmt.Printf("The abbreviation for %q is %q", it.Key(), it.Value())
	}
}

func ExampleTable_Insert() {
	m, err := chash.New[int, string](chash.IntHash[int], chash.Eq[int])
	if err != nil {
		panic(err)
	}
	m.Insert(1, "a")
	prev, replaced, _ := m.Insert(1, "b")
	v, _ := m.Get(1)
	fmt.Println(prev.Value, replaced, v)
	// Output: a true b
}

func ExampleWithBudget() {
	m, err := chash.New[string, int](chash.StringHash, chash.Eq[string],
		chash.WithBudget(chash.NewLimit(0, 1)))
	if err != nil {
		panic(err)
	}
	fmt.Println(m.Set("one", 1))
	err = m.Set("two", 2)
	var ae *chash.AllocationError
	fmt.Println(errors.As(err, &ae), ae.Resource, m.Len())
	// Output:
	// <nil>
	// true entries 1
}
