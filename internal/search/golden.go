package search

import "math"

// Objective selects whether a search minimizes or maximizes its function.
type Objective int

// Objective senses.
const (
	Minimize Objective = iota
	Maximize
)

// goldenRatio is (√5 - 1) / 2, the fraction kept by each golden-section step.
const goldenRatio = 0.6180339887498949

// maxGoldenSteps caps OptimizeToPrecision; the bracket reaches float64
// resolution long before.
const maxGoldenSteps = 2000

// GoldenSectionSearch optimizes a quasiconvex (or quasiconcave, for Maximize)
// function over a bracket.
//
// The search keeps three points, the two bracket boundaries and one interior
// point with the best value seen so far. Each step evaluates one new point in the
// larger of the two sub-brackets and drops one boundary, shrinking the bracket
// geometrically by the golden ratio.
type GoldenSectionSearch struct {
	function Function
	sign     float64 // +1 to minimize, -1 to maximize

	// arguments a < m < b and their sign-adjusted values
	a, m, b    float64
	fa, fm, fb float64

	calls int
}

// NewGoldenSectionSearch creates a golden-section search over the bracket
// spanned by two boundaries and evaluates the function three times.
func NewGoldenSectionSearch(function Function, boundary1, boundary2 float64, objective Objective) *GoldenSectionSearch {
	g := &GoldenSectionSearch{function: function, sign: 1}
	if objective == Maximize {
		g.sign = -1
	}

	bracket := NewInterval(boundary1, boundary2)
	g.a, g.b = bracket.Begin(), bracket.End()
	g.m = g.a + (1-goldenRatio)*(g.b-g.a)

	g.fa = g.call(g.a)
	g.fb = g.call(g.b)
	g.fm = g.call(g.m)
	return g
}

// Step performs up to count golden-section steps.
func (g *GoldenSectionSearch) Step(count int) {
	for i := 0; i < count; i++ {
		var x float64
		if g.b-g.m > g.m-g.a {
			x = g.m + (1-goldenRatio)*(g.b-g.m)
		} else {
			x = g.m - (1-goldenRatio)*(g.m-g.a)
		}

		// the bracket reached floating point resolution
		if x == g.m || x <= g.a || x >= g.b {
			return
		}

		fx := g.call(x)
		if fx < g.fm {
			if x > g.m {
				g.a, g.fa = g.m, g.fm
			} else {
				g.b, g.fb = g.m, g.fm
			}
			g.m, g.fm = x, fx
		} else {
			if x > g.m {
				g.b, g.fb = x, fx
			} else {
				g.a, g.fa = x, fx
			}
		}
	}
}

// OptimizeToPrecision steps until Precision is at most precision or the bracket
// cannot shrink any further.
func (g *GoldenSectionSearch) OptimizeToPrecision(precision float64) {
	for i := 0; i < maxGoldenSteps && g.Precision() > precision; i++ {
		before := g.b - g.a
		g.Step(1)
		if g.b-g.a == before {
			return
		}
	}
}

// Argument returns the best argument found so far.
func (g *GoldenSectionSearch) Argument() float64 {
	switch {
	case g.fa < g.fm && g.fa <= g.fb:
		return g.a
	case g.fb < g.fm && g.fb < g.fa:
		return g.b
	default:
		return g.m
	}
}

// Value returns the function value at Argument.
func (g *GoldenSectionSearch) Value() float64 {
	return g.sign * g.best()
}

// Bound returns the bound on the optimum implied by convexity: a lower bound on
// the minimum when minimizing, an upper bound on the maximum when maximizing.
func (g *GoldenSectionSearch) Bound() float64 {
	return g.sign * g.lowerBound()
}

// Precision returns |Value - Bound|, an upper bound on the suboptimality of
// Argument for convex (or concave) functions.
func (g *GoldenSectionSearch) Precision() float64 {
	return g.best() - g.lowerBound()
}

// Interval returns the current bracket.
func (g *GoldenSectionSearch) Interval() Interval {
	return Interval{begin: g.a, end: g.b}
}

// NumFunctionCalls returns the number of function evaluations made so far.
func (g *GoldenSectionSearch) NumFunctionCalls() int { return g.calls }

func (g *GoldenSectionSearch) call(x float64) float64 {
	g.calls++
	return g.sign * g.function(x)
}

func (g *GoldenSectionSearch) best() float64 {
	return math.Min(g.fm, math.Min(g.fa, g.fb))
}

// lowerBound extends the chords through the interior point: for a convex
// function, the chord through (m, b) bounds f from below on [a, m] and the chord
// through (a, m) bounds it from below on [m, b].
func (g *GoldenSectionSearch) lowerBound() float64 {
	bound := g.best()
	if g.m <= g.a || g.b <= g.m {
		return bound
	}

	leftSlope := (g.fm - g.fa) / (g.m - g.a)
	rightSlope := (g.fb - g.fm) / (g.b - g.m)

	bound = math.Min(bound, g.fm-rightSlope*(g.m-g.a))
	bound = math.Min(bound, g.fm+leftSlope*(g.b-g.m))
	return bound
}

// GoldenSectionMinimizer is the minimizing form of GoldenSectionSearch.
//
// Example:
//
//	minimizer := search.NewGoldenSectionMinimizer(f, 0, 10)
//	minimizer.MinimizeToPrecision(1e-8)
//	x := minimizer.ArgMin()
type GoldenSectionMinimizer struct {
	search *GoldenSectionSearch
}

// NewGoldenSectionMinimizer creates a minimizer over the bracket spanned by two
// boundaries.
func NewGoldenSectionMinimizer(function Function, boundary1, boundary2 float64) *GoldenSectionMinimizer {
	return &GoldenSectionMinimizer{search: NewGoldenSectionSearch(function, boundary1, boundary2, Minimize)}
}

// Step performs up to count golden-section steps.
func (g *GoldenSectionMinimizer) Step(count int) { g.search.Step(count) }

// MinimizeToPrecision steps until MinUpperBound - MinLowerBound <= precision.
func (g *GoldenSectionMinimizer) MinimizeToPrecision(precision float64) {
	g.search.OptimizeToPrecision(precision)
}

// ArgMin returns the best argument found so far.
func (g *GoldenSectionMinimizer) ArgMin() float64 { return g.search.Argument() }

// MinUpperBound returns the smallest function value seen so far.
func (g *GoldenSectionMinimizer) MinUpperBound() float64 { return g.search.Value() }

// MinLowerBound returns a lower bound on the minimum, valid for convex functions.
func (g *GoldenSectionMinimizer) MinLowerBound() float64 { return g.search.Bound() }

// Precision returns MinUpperBound - MinLowerBound.
func (g *GoldenSectionMinimizer) Precision() float64 { return g.search.Precision() }

// Interval returns the current bracket.
func (g *GoldenSectionMinimizer) Interval() Interval { return g.search.Interval() }
