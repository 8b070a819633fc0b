// Modifications copyright (c) Arista Networks, Inc. 2024
// Underlying
// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chash

import (
	"go.uber.org/zap"
)

const (
	// DefaultBuckets is the bucket count of a new Table.
	DefaultBuckets = 32
	// DefaultMaxDepth is the chain length that triggers a resize.
	DefaultMaxDepth = 3
	// DefaultMaxBuckets is the bucket count beyond which a Table stops
	// growing. Chains may grow past the max depth once it is reached.
	DefaultMaxBuckets = 1 << 20
)

type options struct {
	buckets      int
	maxDepth     int
	maxBuckets   int
	budget       Budget
	logger       *zap.Logger
	releaseKey   any
	releaseValue any
}

func defaultOptions() options {
	return options{
		buckets:    DefaultBuckets,
		maxDepth:   DefaultMaxDepth,
		maxBuckets: DefaultMaxBuckets,
		logger:     zap.NewNop(),
	}
}

// Option configures a Table at construction.
type Option func(*options)

// WithBuckets sets the initial bucket count. n is rounded up to a power
// of two.
func WithBuckets(n int) Option {
	if n < 1 {
		panic("chash: WithBuckets requires a positive bucket count")
	}
	return func(o *options) {
		o.buckets = n
	}
}

// WithMaxDepth sets the chain length that, once reached by an insert,
// doubles the bucket array.
func WithMaxDepth(depth int) Option {
	if depth < 1 {
		panic("chash: WithMaxDepth requires a positive depth")
	}
	return func(o *options) {
		o.maxDepth = depth
	}
}

// WithMaxBuckets caps the bucket count reachable by resizing.
func WithMaxBuckets(n int) Option {
	if n < 1 {
		panic("chash: WithMaxBuckets requires a positive bucket count")
	}
	return func(o *options) {
		o.maxBuckets = n
	}
}

// WithBudget makes the Table obtain its bucket arrays and entries from b.
func WithBudget(b Budget) Option {
	return func(o *options) {
		o.budget = b
	}
}

// WithLogger sets the logger used to report resizes.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l == nil {
			l = zap.NewNop()
		}
		o.logger = l
	}
}

// WithKeyRelease sets the function Destroy uses to release keys. K must
// match the key type of the Table it is passed to.
func WithKeyRelease[K any](release func(K) error) Option {
	return func(o *options) {
		o.releaseKey = release
	}
}

// WithValueRelease sets the function Destroy uses to release values. V
// must match the value type of the Table it is passed to.
func WithValueRelease[V any](release func(V) error) Option {
	return func(o *options) {
		o.releaseValue = release
	}
}
