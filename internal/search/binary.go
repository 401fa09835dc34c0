package search

import "github.com/born-ml/erm/internal/opterr"

// BinarySearchParameters configures a BinarySearch.
type BinarySearchParameters struct {
	TargetInterval Interval // Interval of acceptable function values
	SearchInterval Interval // Interval of arguments to search

	// UseSearchIntervalValues tells the search to use SearchIntervalValues instead
	// of evaluating the function at both boundaries, saving two calls.
	UseSearchIntervalValues bool
	SearchIntervalValues    Interval // Function values at the search interval boundaries

	// EarlyExitIntervalWidth stops the search once the search interval is at most
	// this wide, even if no argument with a value in the target was found.
	EarlyExitIntervalWidth float64
}

// BinarySearch looks for an argument in the search interval whose function value
// lies in the target interval.
//
// The function is assumed, but not required, to be non-decreasing. The search
// interval [a, b] must be such that [f(a), f(b)] overlaps the target interval.
// When a satisfying argument is found, the current search interval collapses to
// that single argument.
//
// Example:
//
//	bs, err := search.NewBinarySearch(f, search.BinarySearchParameters{
//	    TargetInterval: search.NewInterval(0.45, 0.50),
//	    SearchInterval: search.NewInterval(-4, 4),
//	})
//	if err != nil {
//	    return err
//	}
//	for !bs.IsDone() {
//	    bs.Update(1)
//	}
type BinarySearch struct {
	function             Function
	targetInterval       Interval
	searchInterval       Interval
	searchIntervalValues Interval
	earlyExitWidth       float64
	isSuccessful         bool
	calls                int
}

// NewBinarySearch creates a binary search and evaluates (or reuses) the function
// values at the search interval boundaries.
//
// Returns an UnattainableTargetInterval error if the target interval does not
// intersect the interval spanned by the boundary values.
func NewBinarySearch(function Function, parameters BinarySearchParameters) (*BinarySearch, error) {
	b := &BinarySearch{function: function}
	if err := b.Reset(parameters); err != nil {
		return nil, err
	}
	return b, nil
}

// Update performs bisection steps until a satisfying argument is found, the early
// exit width is reached, or maxFunctionCalls calls have been made.
func (b *BinarySearch) Update(maxFunctionCalls int) {
	for i := 0; i < maxFunctionCalls; i++ {
		if b.IsDone() {
			return
		}

		candidateArgument := b.searchInterval.Center()
		candidateValue := b.call(candidateArgument)

		if candidateValue <= b.targetInterval.End() {
			b.searchInterval = Interval{begin: candidateArgument, end: b.searchInterval.End()}
			b.searchIntervalValues = Interval{begin: candidateValue, end: b.searchIntervalValues.End()}
		}

		if candidateValue >= b.targetInterval.Begin() {
			b.searchInterval = Interval{begin: b.searchInterval.Begin(), end: candidateArgument}
			b.searchIntervalValues = Interval{begin: b.searchIntervalValues.Begin(), end: candidateValue}
		}

		if b.searchInterval.Size() == 0 {
			b.isSuccessful = true
		}
	}
}

// Reset restarts the search with new parameters, keeping the function.
func (b *BinarySearch) Reset(parameters BinarySearchParameters) error {
	b.targetInterval = parameters.TargetInterval
	b.searchInterval = parameters.SearchInterval
	b.earlyExitWidth = parameters.EarlyExitIntervalWidth
	b.isSuccessful = false

	if parameters.UseSearchIntervalValues {
		b.searchIntervalValues = parameters.SearchIntervalValues
		switch {
		case b.targetInterval.Contains(b.searchIntervalValues.Begin()):
			b.collapse(b.searchInterval.Begin(), b.searchIntervalValues.Begin())
			return nil
		case b.targetInterval.Contains(b.searchIntervalValues.End()):
			b.collapse(b.searchInterval.End(), b.searchIntervalValues.End())
			return nil
		}
	} else {
		bound1 := b.call(b.searchInterval.Begin())
		if b.targetInterval.Contains(bound1) {
			b.collapse(b.searchInterval.Begin(), bound1)
			return nil
		}

		bound2 := b.call(b.searchInterval.End())
		if b.targetInterval.Contains(bound2) {
			b.collapse(b.searchInterval.End(), bound2)
			return nil
		}

		b.searchIntervalValues = NewInterval(bound1, bound2)
	}

	// confirm that the target interval is attainable
	if !b.targetInterval.Intersects(b.searchIntervalValues) {
		return opterr.New(opterr.UnattainableTargetInterval, "BinarySearch",
			"target %v does not intersect boundary values %v", b.targetInterval, b.searchIntervalValues)
	}
	return nil
}

// CurrentSearchInterval returns the current interval of candidate arguments.
func (b *BinarySearch) CurrentSearchInterval() Interval { return b.searchInterval }

// CurrentSearchIntervalValues returns the function values at the current
// search interval boundaries.
func (b *BinarySearch) CurrentSearchIntervalValues() Interval { return b.searchIntervalValues }

// IsSuccessful reports whether an argument with a value in the target was found.
func (b *BinarySearch) IsSuccessful() bool { return b.isSuccessful }

// IsDone reports whether further updates would do nothing.
func (b *BinarySearch) IsDone() bool {
	return b.isSuccessful || b.searchInterval.Size() <= b.earlyExitWidth
}

// NumFunctionCalls returns the number of function evaluations made so far.
func (b *BinarySearch) NumFunctionCalls() int { return b.calls }

func (b *BinarySearch) call(x float64) float64 {
	b.calls++
	return b.function(x)
}

func (b *BinarySearch) collapse(argument, value float64) {
	b.searchInterval = Point(argument)
	b.searchIntervalValues = Point(value)
	b.isSuccessful = true
}
