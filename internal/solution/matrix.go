package solution

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/erm/internal/opterr"
)

// MatrixSolution is a linear predictor with k outputs: p = xᵀW (+ b).
type MatrixSolution[T Element] struct {
	store[T]
}

// NewMatrixSolution creates an unsized matrix solution.
func NewMatrixSolution[T Element](biased bool) *MatrixSolution[T] {
	return &MatrixSolution[T]{store: store[T]{biased: biased}}
}

// NewBiasedMatrixSolution creates an unsized matrix solution with a bias row.
func NewBiasedMatrixSolution[T Element]() *MatrixSolution[T] { return NewMatrixSolution[T](true) }

// NewUnbiasedMatrixSolution creates an unsized matrix solution without a bias row.
func NewUnbiasedMatrixSolution[T Element]() *MatrixSolution[T] { return NewMatrixSolution[T](false) }

// Resize sizes the solution for len(input) features and len(output) outputs.
func (m *MatrixSolution[T]) Resize(input, output []T) error {
	return m.resize("MatrixSolution.Resize", len(input), len(output))
}

// Empty returns a new unsized solution with the same bias flag.
func (m *MatrixSolution[T]) Empty() *MatrixSolution[T] { return NewMatrixSolution[T](m.biased) }

// CopyFrom copies the coordinates of other.
func (m *MatrixSolution[T]) CopyFrom(other *MatrixSolution[T]) error {
	return m.copyFrom("MatrixSolution.CopyFrom", &other.store)
}

// Multiply returns xᵀW + b in a new slice.
func (m *MatrixSolution[T]) Multiply(input []T) []float64 {
	dst := make([]float64, m.NumOutputs())
	m.Predict(input, dst)
	return dst
}

// Outputs converts output into dst.
func (m *MatrixSolution[T]) Outputs(output []T, dst []float64) {
	for j, y := range output {
		dst[j] = float64(y)
	}
}

// Combine sets m = this.Scale*m + other.Scale*other.Of.
func (m *MatrixSolution[T]) Combine(this, other Scaled[*MatrixSolution[T]]) error {
	const op = "MatrixSolution.Combine"
	if this.Of != m {
		return opterr.New(opterr.IdentityMismatch, op, "first term does not reference the receiver")
	}
	if err := m.sameShape(op, &other.Of.store); err != nil {
		return err
	}
	m.combine(this.Scale, &other.Of.store, other.Scale)
	return nil
}

// ScaleAddOuter sets m = this.Scale*m + [x; 1]·rowᵀ.
func (m *MatrixSolution[T]) ScaleAddOuter(this Scaled[*MatrixSolution[T]], input []T, row []float64) error {
	if this.Of != m {
		return opterr.New(opterr.IdentityMismatch, "MatrixSolution.ScaleAddOuter",
			"first term does not reference the receiver")
	}
	floats.Scale(this.Scale, m.Values())
	m.addOuter(input, row)
	return nil
}

// Subtract sets m = m - other.
func (m *MatrixSolution[T]) Subtract(other *MatrixSolution[T]) error {
	if err := m.sameShape("MatrixSolution.Subtract", &other.store); err != nil {
		return err
	}
	floats.Sub(m.Values(), other.Values())
	return nil
}

// GetMatrix returns a view of the weights, bias row excluded.
func (m *MatrixSolution[T]) GetMatrix() *mat.Dense {
	if m.weights == nil || m.inputSize == 0 {
		return &mat.Dense{}
	}
	return m.weights.Slice(0, m.inputSize, 0, m.NumOutputs()).(*mat.Dense)
}

// GetBias returns a copy of the bias row, zeros for unbiased solutions.
func (m *MatrixSolution[T]) GetBias() *mat.VecDense {
	numOutputs := m.NumOutputs()
	if numOutputs == 0 {
		return &mat.VecDense{}
	}
	bias := mat.NewVecDense(numOutputs, nil)
	if m.biased {
		bias.CopyVec(m.weights.RowView(m.inputSize))
	}
	return bias
}
