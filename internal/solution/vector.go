package solution

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/erm/internal/opterr"
)

// VectorSolution is a linear predictor with one output: p = w·x (+ b).
type VectorSolution[T Element] struct {
	store[T]
	prediction [1]float64
}

// NewVectorSolution creates an unsized vector solution.
func NewVectorSolution[T Element](biased bool) *VectorSolution[T] {
	return &VectorSolution[T]{store: store[T]{biased: biased}}
}

// NewBiasedVectorSolution creates an unsized vector solution with a bias.
func NewBiasedVectorSolution[T Element]() *VectorSolution[T] { return NewVectorSolution[T](true) }

// NewUnbiasedVectorSolution creates an unsized vector solution without a bias.
func NewUnbiasedVectorSolution[T Element]() *VectorSolution[T] { return NewVectorSolution[T](false) }

// Resize sizes the solution for an input of len(input) features.
func (v *VectorSolution[T]) Resize(input []T, _ T) error {
	return v.resize("VectorSolution.Resize", len(input), 1)
}

// Empty returns a new unsized solution with the same bias flag.
func (v *VectorSolution[T]) Empty() *VectorSolution[T] { return NewVectorSolution[T](v.biased) }

// CopyFrom copies the coordinates of other.
func (v *VectorSolution[T]) CopyFrom(other *VectorSolution[T]) error {
	return v.copyFrom("VectorSolution.CopyFrom", &other.store)
}

// Multiply returns w·x + b.
func (v *VectorSolution[T]) Multiply(input []T) float64 {
	v.Predict(input, v.prediction[:])
	return v.prediction[0]
}

// Outputs writes output into dst[0].
func (v *VectorSolution[T]) Outputs(output T, dst []float64) {
	dst[0] = float64(output)
}

// Combine sets v = this.Scale*v + other.Scale*other.Of.
func (v *VectorSolution[T]) Combine(this, other Scaled[*VectorSolution[T]]) error {
	const op = "VectorSolution.Combine"
	if this.Of != v {
		return opterr.New(opterr.IdentityMismatch, op, "first term does not reference the receiver")
	}
	if err := v.sameShape(op, &other.Of.store); err != nil {
		return err
	}
	v.combine(this.Scale, &other.Of.store, other.Scale)
	return nil
}

// ScaleAddOuter sets v = this.Scale*v + [x; 1]·row[0].
func (v *VectorSolution[T]) ScaleAddOuter(this Scaled[*VectorSolution[T]], input []T, row []float64) error {
	if this.Of != v {
		return opterr.New(opterr.IdentityMismatch, "VectorSolution.ScaleAddOuter",
			"first term does not reference the receiver")
	}
	floats.Scale(this.Scale, v.Values())
	v.addOuter(input, row)
	return nil
}

// Subtract sets v = v - other.
func (v *VectorSolution[T]) Subtract(other *VectorSolution[T]) error {
	const op = "VectorSolution.Subtract"
	if err := v.sameShape(op, &other.store); err != nil {
		return err
	}
	floats.Sub(v.Values(), other.Values())
	return nil
}

// GetVector returns a view of the weights, bias excluded.
func (v *VectorSolution[T]) GetVector() *mat.VecDense {
	if v.inputSize == 0 {
		return &mat.VecDense{}
	}
	return mat.NewVecDense(v.inputSize, v.Values()[:v.inputSize])
}

// GetBias returns the bias, 0 for unbiased solutions.
func (v *VectorSolution[T]) GetBias() float64 {
	if !v.biased || v.weights == nil {
		return 0
	}
	return v.Values()[v.inputSize]
}
