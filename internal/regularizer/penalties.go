package regularizer

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"

	"github.com/born-ml/erm/internal/solution"
)

// L2 is g(w) = ½‖w‖².
type L2 struct{}

// NewL2 creates an L2 regularizer.
func NewL2() L2 { return L2{} }

// Value returns ½‖w‖².
func (L2) Value(w solution.Parameters) float64 {
	return 0.5 * solution.Norm2Squared(w)
}

// Conjugate returns ½‖v‖².
func (L2) Conjugate(v solution.Parameters) float64 {
	return 0.5 * solution.Norm2Squared(v)
}

// ConjugateGradient copies v into w.
func (L2) ConjugateGradient(v, w solution.Parameters) error {
	if err := verifySameSize("L2.ConjugateGradient", v, w); err != nil {
		return err
	}
	copy(w.Values(), v.Values())
	solution.Constrain(w)
	return nil
}

// ElasticNet is g(w) = ½‖w‖² + Beta·‖w‖₁.
type ElasticNet struct {
	Beta float64
}

// NewElasticNet creates an elastic net regularizer with L1 weight beta.
func NewElasticNet(beta float64) ElasticNet { return ElasticNet{Beta: beta} }

// Value returns ½‖w‖² + β‖w‖₁.
func (e ElasticNet) Value(w solution.Parameters) float64 {
	return 0.5*solution.Norm2Squared(w) + e.Beta*solution.Norm1(w)
}

// Conjugate returns ½‖L1Prox(v, β)‖².
func (e ElasticNet) Conjugate(v solution.Parameters) float64 {
	sum := 0.0
	for _, x := range v.Values() {
		if shrunk := math.Abs(x) - e.Beta; shrunk > 0 {
			sum += shrunk * shrunk
		}
	}
	return 0.5 * sum
}

// ConjugateGradient writes L1Prox(v, β) into w.
func (e ElasticNet) ConjugateGradient(v, w solution.Parameters) error {
	if err := verifySameSize("ElasticNet.ConjugateGradient", v, w); err != nil {
		return err
	}
	values := w.Values()
	copy(values, v.Values())
	L1Prox(values, e.Beta)
	solution.Constrain(w)
	return nil
}

// Max is g(w) = ½‖w‖² + Beta·Σ_j ‖w_j‖∞ over the columns w_j of the solution.
//
// Max keeps scratch buffers between calls and must not be shared by optimizers
// running side by side.
type Max struct {
	Beta float64

	column     []float64
	gradient   []float64
	magnitudes []float64
}

// NewMax creates a max regularizer with L∞ weight beta.
func NewMax(beta float64) *Max { return &Max{Beta: beta} }

// Value returns ½‖w‖² + β·Σ_j max_i |w_ij|.
func (m *Max) Value(w solution.Parameters) float64 {
	sum := 0.0
	for j := 0; j < w.NumColumns(); j++ {
		m.column = w.Column(j, m.column)
		sum += floats.Norm(m.column, math.Inf(1))
	}
	return 0.5*solution.Norm2Squared(w) + m.Beta*sum
}

// Conjugate returns ⟨v, u⟩ - g(u) at u = ∇g*(v), one column at a time.
func (m *Max) Conjugate(v solution.Parameters) float64 {
	sum := 0.0
	for j := 0; j < v.NumColumns(); j++ {
		m.column = v.Column(j, m.column)
		m.gradient = append(m.gradient[:0], m.column...)
		LInfinityProx(m.gradient, m.scratch(len(m.column)), m.Beta)

		sum += floats.Dot(m.column, m.gradient) -
			0.5*floats.Dot(m.gradient, m.gradient) -
			m.Beta*floats.Norm(m.gradient, math.Inf(1))
	}
	return sum
}

// ConjugateGradient writes the column-wise LInfinityProx of v into w.
func (m *Max) ConjugateGradient(v, w solution.Parameters) error {
	if err := verifySameSize("Max.ConjugateGradient", v, w); err != nil {
		return err
	}
	for j := 0; j < v.NumColumns(); j++ {
		m.column = v.Column(j, m.column)
		LInfinityProx(m.column, m.scratch(len(m.column)), m.Beta)
		w.SetColumn(j, m.column)
	}
	return nil
}

func (m *Max) scratch(n int) []float64 {
	if cap(m.magnitudes) < n {
		m.magnitudes = make([]float64, n)
	}
	return m.magnitudes[:n]
}

// sortedMagnitudes fills dst with |v| in ascending order.
func sortedMagnitudes(v, dst []float64) []float64 {
	for i, x := range v {
		dst[i] = math.Abs(x)
	}
	slices.Sort(dst)
	return dst
}
