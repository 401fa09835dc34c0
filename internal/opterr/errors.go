// Package opterr defines the error kinds shared by the optimization packages.
//
// Every failure is reported as an *Error carrying a Kind and structured context.
// An *Error unwraps to the sentinel of its kind, so callers can match with
// errors.Is and inspect details with errors.As:
//
//	if errors.Is(err, opterr.ErrUnattainableTargetInterval) {
//	    // widen the search interval
//	}
//
// Running out of an epoch or call budget is normally not an error: optimizers and
// searches report it through IsSuccessful and the caller decides what to do.
package opterr

import (
	"errors"
	"fmt"
)

// Kind classifies an optimization error.
type Kind int

// Error kinds.
const (
	IncompatibleDimensions Kind = iota + 1
	UnattainableTargetInterval
	IdentityMismatch
	EmptyDataset
	IncompatibleOutput
	InvalidParameter
	BudgetExhausted
)

// Sentinel errors, one per kind.
var (
	ErrIncompatibleDimensions     = errors.New("incompatible dimensions")
	ErrUnattainableTargetInterval = errors.New("target interval is not attainable")
	ErrIdentityMismatch           = errors.New("term does not reference the receiver")
	ErrEmptyDataset               = errors.New("empty dataset")
	ErrIncompatibleOutput         = errors.New("output incompatible with loss function")
	ErrInvalidParameter           = errors.New("invalid parameter")
	ErrBudgetExhausted            = errors.New("epoch budget exhausted")
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case IncompatibleDimensions:
		return "incompatible_dimensions"
	case UnattainableTargetInterval:
		return "unattainable_target_interval"
	case IdentityMismatch:
		return "identity_mismatch"
	case EmptyDataset:
		return "empty_dataset"
	case IncompatibleOutput:
		return "incompatible_output"
	case InvalidParameter:
		return "invalid_parameter"
	case BudgetExhausted:
		return "budget_exhausted"
	default:
		return "unknown"
	}
}

// sentinel maps a kind to its package-level error.
func (k Kind) sentinel() error {
	switch k {
	case IncompatibleDimensions:
		return ErrIncompatibleDimensions
	case UnattainableTargetInterval:
		return ErrUnattainableTargetInterval
	case IdentityMismatch:
		return ErrIdentityMismatch
	case EmptyDataset:
		return ErrEmptyDataset
	case IncompatibleOutput:
		return ErrIncompatibleOutput
	case InvalidParameter:
		return ErrInvalidParameter
	case BudgetExhausted:
		return ErrBudgetExhausted
	default:
		return nil
	}
}

// Error provides detailed information about an optimization failure.
type Error struct {
	Kind    Kind   // Kind of failure
	Op      string // Operation that failed (e.g., "VectorSolution.Resize")
	Details string // Additional details
}

// New creates an *Error with a formatted details message.
func New(kind Kind, op, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Op:      op,
		Details: fmt.Sprintf(format, args...),
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Kind, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Details)
}

// Unwrap returns the sentinel error of the kind.
func (e *Error) Unwrap() error {
	return e.Kind.sentinel()
}

// KindOf returns the kind of err, or 0 if err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
