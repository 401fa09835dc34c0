package search

import (
	"math"

	"github.com/born-ml/erm/internal/opterr"
)

// ExponentialSearchParameters configures an ExponentialSearch.
type ExponentialSearchParameters struct {
	TargetInterval Interval // Interval of acceptable function values
	ArgumentGuess  float64  // Starting argument
	Base           float64  // Step growth factor (default: 2.0, must be > 1)
	InitialStep    float64  // Distance of the first evaluation from the guess (default: 1.0)
}

// ExponentialSearch brackets a target interval of values of a non-decreasing
// function.
//
// Starting from a guessed argument, it evaluates guess ± step, guess ± step·base,
// guess ± step·base², ... in the direction that moves the function value towards
// the target, until an evaluation lands in the target or the last two arguments straddle
// it. The resulting bounding interval and its values are suitable as
// BinarySearchParameters with UseSearchIntervalValues set.
//
// Until the target is bracketed, the open side of the bounding interval is a
// signed infinity. A search whose next argument would leave the finite range is
// exhausted and makes no further calls.
type ExponentialSearch struct {
	function       Function
	targetInterval Interval
	guess          float64
	base           float64
	step           float64
	direction      float64

	lastArgument float64
	lastValue    float64

	bounding       Interval
	boundingValues Interval
	isSuccessful   bool
	isExhausted    bool
	calls          int
}

// NewExponentialSearch creates an exponential search and evaluates the function
// at the guessed argument.
func NewExponentialSearch(function Function, parameters ExponentialSearchParameters) (*ExponentialSearch, error) {
	if parameters.Base == 0 {
		parameters.Base = 2.0
	}
	if parameters.InitialStep == 0 {
		parameters.InitialStep = 1.0
	}
	if parameters.Base <= 1 {
		return nil, opterr.New(opterr.InvalidParameter, "ExponentialSearch", "base must be greater than 1, got %g", parameters.Base)
	}
	if parameters.InitialStep < 0 {
		return nil, opterr.New(opterr.InvalidParameter, "ExponentialSearch", "initial step must be positive, got %g", parameters.InitialStep)
	}

	e := &ExponentialSearch{
		function:       function,
		targetInterval: parameters.TargetInterval,
		guess:          parameters.ArgumentGuess,
		base:           parameters.Base,
		step:           parameters.InitialStep,
	}

	value := e.call(e.guess)
	e.lastArgument = e.guess
	e.lastValue = value

	if e.targetInterval.Contains(value) {
		e.bounding = Point(e.guess)
		e.boundingValues = Point(value)
		e.isSuccessful = true
		return e, nil
	}

	if value < e.targetInterval.Begin() {
		e.direction = 1
	} else {
		e.direction = -1
	}
	e.setOpenBound()
	return e, nil
}

// Update evaluates up to maxFunctionCalls new arguments, stopping early once the
// target is bracketed.
func (e *ExponentialSearch) Update(maxFunctionCalls int) {
	for i := 0; i < maxFunctionCalls && !e.isSuccessful && !e.isExhausted; i++ {
		argument := e.guess + e.direction*e.step
		if math.IsInf(argument, 0) || math.IsNaN(argument) {
			e.isExhausted = true
			return
		}
		e.step *= e.base
		value := e.call(argument)

		if e.targetInterval.Contains(value) {
			e.bounding = Point(argument)
			e.boundingValues = Point(value)
			e.isSuccessful = true
			return
		}

		// overshoot: the last two values straddle the target
		if e.targetInterval.Intersects(NewInterval(e.lastValue, value)) {
			e.bounding = NewInterval(e.lastArgument, argument)
			e.boundingValues = NewInterval(e.lastValue, value)
			e.isSuccessful = true
			return
		}

		e.lastArgument = argument
		e.lastValue = value
		e.setOpenBound()
	}
}

// BoundingSearchInterval returns the current interval of arguments known to
// contain a solution, with a signed infinity on the open side until the target
// is bracketed.
func (e *ExponentialSearch) BoundingSearchInterval() Interval { return e.bounding }

// BoundingSearchIntervalValues returns the function values at the boundaries of
// BoundingSearchInterval.
func (e *ExponentialSearch) BoundingSearchIntervalValues() Interval { return e.boundingValues }

// IsSuccessful reports whether the target interval has been bracketed.
func (e *ExponentialSearch) IsSuccessful() bool { return e.isSuccessful }

// IsExhausted reports whether the step has outgrown the finite range without
// bracketing the target.
func (e *ExponentialSearch) IsExhausted() bool { return e.isExhausted }

// NumFunctionCalls returns the number of function evaluations made so far.
func (e *ExponentialSearch) NumFunctionCalls() int { return e.calls }

func (e *ExponentialSearch) call(x float64) float64 {
	e.calls++
	return e.function(x)
}

func (e *ExponentialSearch) setOpenBound() {
	open := math.Inf(int(e.direction))
	e.bounding = NewInterval(e.lastArgument, open)
	e.boundingValues = NewInterval(e.lastValue, open)
}
