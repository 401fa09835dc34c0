// Package solution implements the trainable parameter blocks of the optimizers.
//
// A solution maps an input row x of d features to k predictions. It is stored as
// a single gonum matrix W of shape (d + b) × k, where b is 1 for biased solutions
// and the bias is the last row. Every operation works on the extended input
// [x; 1] (or x when unbiased), so a biased solution behaves exactly like an
// unbiased one trained on inputs with an appended constant feature, and a
// VectorSolution behaves exactly like a one-column MatrixSolution.
package solution

import "gonum.org/v1/gonum/floats"

// Element is the set of input element types a solution accepts. Inputs are
// converted to float64 before any arithmetic.
type Element interface {
	~float32 | ~float64 | ~int | ~int32 | ~int64
}

// Parameters is the coordinate view of a solution used by regularizers.
type Parameters interface {
	// Values returns every coordinate, bias included, in row-major order.
	// The slice shares storage with the solution.
	Values() []float64

	// NumColumns returns the number of outputs.
	NumColumns() int

	// Column copies column j, bias included, into dst and returns it.
	// A nil dst is allocated.
	Column(j int, dst []float64) []float64

	// SetColumn overwrites column j, bias included, with src.
	SetColumn(j int, src []float64)
}

// Solution is the algebra the optimizers need from a parameter block.
//
// T is the input element type, O the output type of an example (T for
// VectorSolution, []T for MatrixSolution) and S the concrete solution type.
type Solution[T Element, O any, S any] interface {
	Parameters

	// Resize allocates storage matching an example. It is a no-op when the
	// solution already has these dimensions and an IncompatibleDimensions
	// error when it has others.
	Resize(input []T, output O) error

	// Reset zeroes every coordinate.
	Reset()

	// Empty returns a new unsized solution with the same bias flag.
	Empty() S

	// CopyFrom copies the coordinates of other into the receiver.
	CopyFrom(other S) error

	// IsBiased reports whether the solution carries a bias row.
	IsBiased() bool

	// InputSize returns the number of input features d.
	InputSize() int

	// NumOutputs returns the number of outputs k.
	NumOutputs() int

	// Predict writes the k predictions for input into dst.
	Predict(input []T, dst []float64)

	// Outputs converts an example output into dst.
	Outputs(output O, dst []float64)

	// Norm2SquaredOf returns the squared norm of the extended input.
	Norm2SquaredOf(input []T) float64

	// Combine sets the receiver to this.Scale*receiver + other.Scale*other.Of.
	// this.Of must be the receiver.
	Combine(this, other Scaled[S]) error

	// ScaleAddOuter sets the receiver to this.Scale*receiver + [x; 1]·rowᵀ.
	// this.Of must be the receiver.
	ScaleAddOuter(this Scaled[S], input []T, row []float64) error

	// AddOuter adds [x; 1]·rowᵀ to the receiver.
	AddOuter(input []T, row []float64)

	// Subtract subtracts other from the receiver.
	Subtract(other S) error

	// Norm1 returns the sum of absolute coordinates, bias included.
	Norm1() float64

	// Norm2Squared returns the sum of squared coordinates, bias included.
	Norm2Squared() float64

	// Density returns the fraction of non-zero weights, bias excluded.
	Density() float64
}

// Constrained is implemented by parameter blocks that pin some coordinates,
// such as MaskedMatrixSolution. Code that writes coordinates through Values
// calls Constrain afterwards.
type Constrained interface {
	ApplyConstraints()
}

// Constrain re-applies the constraints of p, if it has any.
func Constrain(p Parameters) {
	if c, ok := p.(Constrained); ok {
		c.ApplyConstraints()
	}
}

// Scaled is a solution term multiplied by a scalar.
type Scaled[S any] struct {
	Of    S
	Scale float64
}

// Scale creates the term a·s.
func Scale[S any](s S, a float64) Scaled[S] {
	return Scaled[S]{Of: s, Scale: a}
}

// Norm1 returns the sum of absolute coordinates of p.
func Norm1(p Parameters) float64 {
	values := p.Values()
	if len(values) == 0 {
		return 0
	}
	return floats.Norm(values, 1)
}

// Norm2Squared returns the sum of squared coordinates of p.
func Norm2Squared(p Parameters) float64 {
	values := p.Values()
	return floats.Dot(values, values)
}

var (
	_ Solution[float64, float64, *VectorSolution[float64]]   = (*VectorSolution[float64])(nil)
	_ Solution[float32, []float32, *MatrixSolution[float32]] = (*MatrixSolution[float32])(nil)

	_ Solution[float64, []float64, *MaskedMatrixSolution[float64]] = (*MaskedMatrixSolution[float64])(nil)
	_ Constrained                                                  = (*MaskedMatrixSolution[float64])(nil)
)
