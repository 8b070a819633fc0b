// Modifications copyright (c) Arista Networks, Inc. 2024
// Underlying
// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chash

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrBudgetExhausted is returned by a Limit that has no room left for
// the requested allocation.
var ErrBudgetExhausted = errors.New("budget exhausted")

// AllocationError reports that backing storage for a bucket array or an
// entry could not be obtained. It is the only error a Table returns from
// New and Insert. Err holds the reason given by the Budget.
type AllocationError struct {
	Resource Resource
	Size     int
	Err      error
}

func (e *AllocationError) Error() string {
	return fmt.Sprintf("chash: cannot allocate %d %s: %v", e.Size, e.Resource, e.Err)
}

func (e *AllocationError) Unwrap() error {
	return e.Err
}

func allocationError(r Resource, size int, err error) error {
	return errors.WithStack(&AllocationError{Resource: r, Size: size, Err: err})
}
