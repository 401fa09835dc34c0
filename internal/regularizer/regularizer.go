// Package regularizer implements the convex penalties g(w) of the SDCA objective
// together with their conjugates and conjugate gradients.
//
// Regularizers see a solution through solution.Parameters and treat the bias
// coordinates like any other weight.
package regularizer

import (
	"math"

	"github.com/born-ml/erm/internal/opterr"
	"github.com/born-ml/erm/internal/solution"
)

// Regularizer is a strongly convex penalty on the solution.
type Regularizer interface {
	// Value returns g(w).
	Value(w solution.Parameters) float64

	// Conjugate returns g*(v) = sup_u {⟨v, u⟩ - g(u)}.
	Conjugate(v solution.Parameters) float64

	// ConjugateGradient writes ∇g*(v) = argmax_u {⟨v, u⟩ - g(u)} into w.
	ConjugateGradient(v, w solution.Parameters) error
}

// L1Prox soft-thresholds v in place: every coordinate shrinks towards zero by
// beta and stops at zero.
func L1Prox(v []float64, beta float64) {
	for i, x := range v {
		shrunk := math.Abs(x) - beta
		if shrunk <= 0 {
			v[i] = 0
			continue
		}
		v[i] = math.Copysign(shrunk, x)
	}
}

// LInfinityProx applies the proximal operator of beta·‖·‖∞ to v in place.
//
// The largest magnitudes are clipped to a common threshold t chosen so that the
// total clipped amount equals beta. If ‖v‖₁ <= beta the result is zero. scratch
// holds the sorted magnitudes; it is reused when it has room for len(v) values
// and allocated otherwise.
func LInfinityProx(v, scratch []float64, beta float64) {
	n := len(v)
	if n == 0 {
		return
	}
	if cap(scratch) < n {
		scratch = make([]float64, n)
	}
	magnitudes := sortedMagnitudes(v, scratch[:n])

	// magnitudes are ascending, walk them from the largest
	sum, threshold := 0.0, 0.0
	for k := 1; k <= n; k++ {
		sum += magnitudes[n-k]
		threshold = (sum - beta) / float64(k)
		if k == n || threshold >= magnitudes[n-k-1] {
			break
		}
	}

	if threshold <= 0 {
		for i := range v {
			v[i] = 0
		}
		return
	}
	for i, x := range v {
		if math.Abs(x) > threshold {
			v[i] = math.Copysign(threshold, x)
		}
	}
}

func verifySameSize(op string, v, w solution.Parameters) error {
	if len(v.Values()) != len(w.Values()) || v.NumColumns() != w.NumColumns() {
		return opterr.New(opterr.IncompatibleDimensions, op,
			"%d coordinates in %d columns, want %d in %d",
			len(w.Values()), w.NumColumns(), len(v.Values()), v.NumColumns())
	}
	return nil
}
