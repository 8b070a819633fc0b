// Modifications copyright (c) Arista Networks, Inc. 2024
// Underlying
// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chash

import (
	"github.com/pkg/errors"
)

// Resource identifies the kind of backing storage a Table obtains from
// its Budget.
type Resource uint8

const (
	// Buckets is a slot of a bucket array.
	Buckets Resource = iota
	// Entries is one key/value entry of a chain.
	Entries
)

func (r Resource) String() string {
	switch r {
	case Buckets:
		return "bucket slots"
	case Entries:
		return "entries"
	}
	return "unknown resource"
}

// Budget accounts for the storage a Table holds. Acquire is called before
// a bucket array or an entry is created and may refuse it by returning
// an error; Release is called with the same sizes once that storage is
// given back. A Budget may be shared by several tables used from the same
// goroutine.
type Budget interface {
	Acquire(r Resource, n int) error
	Release(r Resource, n int)
}

// Limit is a Budget with fixed ceilings per Resource. A ceiling of zero
// or less means that resource is unlimited.
type Limit struct {
	max  [2]int
	used [2]int
}

// NewLimit returns a Limit allowing at most maxBuckets bucket slots and
// maxEntries entries to be held at once.
func NewLimit(maxBuckets, maxEntries int) *Limit {
	l := &Limit{}
	l.max[Buckets] = maxBuckets
	l.max[Entries] = maxEntries
	return l
}

// Acquire implements Budget.
func (l *Limit) Acquire(r Resource, n int) error {
	if limit := l.max[r]; limit > 0 && l.used[r]+n > limit {
		return errors.Wrapf(ErrBudgetExhausted, "%d of %d %s in use", l.used[r], limit, r)
	}
	l.used[r] += n
	return nil
}

// Release implements Budget.
func (l *Limit) Release(r Resource, n int) {
	l.used[r] -= n
	if l.used[r] < 0 {
		panic("chash: budget released more " + r.String() + " than acquired")
	}
}

// Used reports how much of r is currently held.
func (l *Limit) Used(r Resource) int {
	return l.used[r]
}
