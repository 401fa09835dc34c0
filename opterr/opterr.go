// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package opterr defines the errors reported by the optimization packages.
//
// Errors unwrap to one sentinel per kind:
//
//	if errors.Is(err, opterr.ErrIncompatibleDimensions) {
//	    // examples do not match the solution
//	}
package opterr

import "github.com/born-ml/erm/internal/opterr"

// Kind classifies an optimization error.
type Kind = opterr.Kind

// Error carries the kind, the failing operation and details.
type Error = opterr.Error

// Error kinds.
const (
	IncompatibleDimensions     = opterr.IncompatibleDimensions
	UnattainableTargetInterval = opterr.UnattainableTargetInterval
	IdentityMismatch           = opterr.IdentityMismatch
	EmptyDataset               = opterr.EmptyDataset
	IncompatibleOutput         = opterr.IncompatibleOutput
	InvalidParameter           = opterr.InvalidParameter
	BudgetExhausted            = opterr.BudgetExhausted
)

// Sentinel errors, one per kind.
var (
	ErrIncompatibleDimensions     = opterr.ErrIncompatibleDimensions
	ErrUnattainableTargetInterval = opterr.ErrUnattainableTargetInterval
	ErrIdentityMismatch           = opterr.ErrIdentityMismatch
	ErrEmptyDataset               = opterr.ErrEmptyDataset
	ErrIncompatibleOutput         = opterr.ErrIncompatibleOutput
	ErrInvalidParameter           = opterr.ErrInvalidParameter
	ErrBudgetExhausted            = opterr.ErrBudgetExhausted
)

// KindOf returns the kind of err, or 0 if err is not an optimization error.
func KindOf(err error) Kind { return opterr.KindOf(err) }
