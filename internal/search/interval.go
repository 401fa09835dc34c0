// Package search implements one-dimensional search procedures over black-box
// scalar functions.
//
// This package provides:
//   - Interval: closed real interval
//   - BinarySearch: bisection towards a target interval of function values
//   - ExponentialSearch: geometric bracketing of a target interval
//   - GoldenSectionSearch: golden-section optimization of a quasiconvex function
//
// Every search is a resumable object: construct it, then call Update or Step as
// many times as the caller's budget allows, and inspect the current state between
// calls.
package search

import "fmt"

// Function is a univariate real function.
type Function func(float64) float64

// Interval is a closed interval [Begin, End] with Begin <= End.
type Interval struct {
	begin float64
	end   float64
}

// NewInterval creates the interval spanned by two boundaries given in any order.
func NewInterval(boundary1, boundary2 float64) Interval {
	if boundary1 <= boundary2 {
		return Interval{begin: boundary1, end: boundary2}
	}
	return Interval{begin: boundary2, end: boundary1}
}

// Point creates the zero-size interval [v, v].
func Point(v float64) Interval {
	return Interval{begin: v, end: v}
}

// Begin returns the lower boundary.
func (i Interval) Begin() float64 { return i.begin }

// End returns the upper boundary.
func (i Interval) End() float64 { return i.end }

// Center returns the midpoint.
func (i Interval) Center() float64 { return 0.5 * (i.begin + i.end) }

// Size returns End - Begin.
func (i Interval) Size() float64 { return i.end - i.begin }

// Contains reports whether v lies in the closed interval.
func (i Interval) Contains(v float64) bool {
	return i.begin <= v && v <= i.end
}

// Intersects reports whether the two closed intervals overlap.
func (i Interval) Intersects(other Interval) bool {
	return i.begin <= other.end && other.begin <= i.end
}

// String formats the interval as [begin, end].
func (i Interval) String() string {
	return fmt.Sprintf("[%g, %g]", i.begin, i.end)
}
