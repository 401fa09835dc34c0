package solution

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/erm/internal/opterr"
)

// MaskParameters pins part of a MaskedMatrixSolution. Both matrices are
// inputSize × numOutputs and cover the weights only, the bias row stays free.
type MaskParameters struct {
	Mask          *mat.Dense // Non-zero entries mark frozen weights
	FrozenWeights *mat.Dense // Values of the frozen weights (nil: zero)
}

// MaskedMatrixSolution is a MatrixSolution whose masked weights are held at
// frozen values. Every update re-applies the mask, so an optimizer training a
// masked solution only moves the free weights.
//
// Empty and CopyFrom carry the mask over, so the auxiliary solutions of an
// optimizer share the constraints of the one it trains.
//
// Example:
//
//	mask := mat.NewDense(d, k, nil) // 1 where the weight stays at its frozen value
//	w := solution.NewBiasedMaskedMatrixSolution[float64]()
//	if err := w.SetMaskParameters(solution.MaskParameters{Mask: mask}); err != nil {
//	    return err
//	}
type MaskedMatrixSolution[T Element] struct {
	MatrixSolution[T]

	// mask and frozen are replaced, never modified, so copies may share them.
	mask   *mat.Dense
	frozen *mat.Dense
}

// NewMaskedMatrixSolution creates an unsized masked matrix solution without a mask.
func NewMaskedMatrixSolution[T Element](biased bool) *MaskedMatrixSolution[T] {
	return &MaskedMatrixSolution[T]{MatrixSolution: MatrixSolution[T]{store: store[T]{biased: biased}}}
}

// NewBiasedMaskedMatrixSolution creates an unsized masked matrix solution with a bias row.
func NewBiasedMaskedMatrixSolution[T Element]() *MaskedMatrixSolution[T] {
	return NewMaskedMatrixSolution[T](true)
}

// NewUnbiasedMaskedMatrixSolution creates an unsized masked matrix solution without a bias row.
func NewUnbiasedMaskedMatrixSolution[T Element]() *MaskedMatrixSolution[T] {
	return NewMaskedMatrixSolution[T](false)
}

// SetMaskParameters replaces the mask and the frozen weights and applies them.
// A nil mask removes the constraints. The parameters are copied.
//
// Returns an error if the matrices differ in shape, or if the solution is sized
// and the matrices do not match its weights.
func (m *MaskedMatrixSolution[T]) SetMaskParameters(params MaskParameters) error {
	const op = "MaskedMatrixSolution.SetMaskParameters"
	if params.Mask == nil || params.Mask.IsEmpty() {
		if params.FrozenWeights != nil && !params.FrozenWeights.IsEmpty() {
			return opterr.New(opterr.InvalidParameter, op, "frozen weights given without a mask")
		}
		m.mask, m.frozen = nil, nil
		return nil
	}

	r, c := params.Mask.Dims()
	frozen := mat.NewDense(r, c, nil)
	if params.FrozenWeights != nil {
		if fr, fc := params.FrozenWeights.Dims(); fr != r || fc != c {
			return opterr.New(opterr.IncompatibleDimensions, op,
				"mask is %d×%d, frozen weights are %d×%d", r, c, fr, fc)
		}
		frozen.Copy(params.FrozenWeights)
	}
	if m.weights != nil {
		if err := m.checkMask(op, r, c); err != nil {
			return err
		}
	}

	m.mask = mat.DenseCopyOf(params.Mask)
	m.frozen = frozen
	m.ApplyConstraints()
	return nil
}

// MaskParameters returns copies of the mask and the frozen weights, nil
// matrices when no mask is set.
func (m *MaskedMatrixSolution[T]) MaskParameters() MaskParameters {
	if m.mask == nil {
		return MaskParameters{}
	}
	return MaskParameters{Mask: mat.DenseCopyOf(m.mask), FrozenWeights: mat.DenseCopyOf(m.frozen)}
}

// Resize sizes the solution and checks the mask against the new dimensions.
func (m *MaskedMatrixSolution[T]) Resize(input, output []T) error {
	const op = "MaskedMatrixSolution.Resize"
	if err := m.resize(op, len(input), len(output)); err != nil {
		return err
	}
	if m.mask != nil {
		rows, columns := m.mask.Dims()
		if err := m.checkMask(op, rows, columns); err != nil {
			return err
		}
	}
	m.ApplyConstraints()
	return nil
}

// Reset zeroes the free coordinates and restores the frozen weights.
func (m *MaskedMatrixSolution[T]) Reset() {
	m.store.Reset()
	m.ApplyConstraints()
}

// Empty returns a new unsized solution with the same bias flag and mask.
func (m *MaskedMatrixSolution[T]) Empty() *MaskedMatrixSolution[T] {
	empty := NewMaskedMatrixSolution[T](m.biased)
	empty.mask, empty.frozen = m.mask, m.frozen
	return empty
}

// CopyFrom copies the coordinates and the mask of other.
func (m *MaskedMatrixSolution[T]) CopyFrom(other *MaskedMatrixSolution[T]) error {
	if err := m.copyFrom("MaskedMatrixSolution.CopyFrom", &other.store); err != nil {
		return err
	}
	m.mask, m.frozen = other.mask, other.frozen
	return nil
}

// Combine sets m = this.Scale*m + other.Scale*other.Of, then applies the mask.
func (m *MaskedMatrixSolution[T]) Combine(this, other Scaled[*MaskedMatrixSolution[T]]) error {
	const op = "MaskedMatrixSolution.Combine"
	if this.Of != m {
		return opterr.New(opterr.IdentityMismatch, op, "first term does not reference the receiver")
	}
	if err := m.sameShape(op, &other.Of.store); err != nil {
		return err
	}
	m.combine(this.Scale, &other.Of.store, other.Scale)
	m.ApplyConstraints()
	return nil
}

// ScaleAddOuter sets m = this.Scale*m + [x; 1]·rowᵀ, then applies the mask.
func (m *MaskedMatrixSolution[T]) ScaleAddOuter(this Scaled[*MaskedMatrixSolution[T]], input []T, row []float64) error {
	if this.Of != m {
		return opterr.New(opterr.IdentityMismatch, "MaskedMatrixSolution.ScaleAddOuter",
			"first term does not reference the receiver")
	}
	floats.Scale(this.Scale, m.Values())
	m.addOuter(input, row)
	m.ApplyConstraints()
	return nil
}

// AddOuter adds [x; 1]·rowᵀ, then applies the mask.
func (m *MaskedMatrixSolution[T]) AddOuter(input []T, row []float64) {
	m.addOuter(input, row)
	m.ApplyConstraints()
}

// Subtract sets m = m - other, then applies the mask.
func (m *MaskedMatrixSolution[T]) Subtract(other *MaskedMatrixSolution[T]) error {
	if err := m.sameShape("MaskedMatrixSolution.Subtract", &other.store); err != nil {
		return err
	}
	floats.Sub(m.Values(), other.Values())
	m.ApplyConstraints()
	return nil
}

// SetColumn overwrites column j, bias included, then applies the mask.
func (m *MaskedMatrixSolution[T]) SetColumn(j int, src []float64) {
	m.store.SetColumn(j, src)
	m.ApplyConstraints()
}

// ApplyConstraints sets every masked weight to its frozen value.
func (m *MaskedMatrixSolution[T]) ApplyConstraints() {
	if m.mask == nil || m.weights == nil {
		return
	}
	for i := 0; i < m.inputSize; i++ {
		row, flags, frozen := m.weights.RawRowView(i), m.mask.RawRowView(i), m.frozen.RawRowView(i)
		for j, flag := range flags {
			if flag != 0 {
				row[j] = frozen[j]
			}
		}
	}
}

// Unmasked returns a plain MatrixSolution holding a copy of the coordinates.
func (m *MaskedMatrixSolution[T]) Unmasked() *MatrixSolution[T] {
	plain := NewMatrixSolution[T](m.biased)
	if m.weights != nil {
		// plain is unsized with the same bias flag, the copy cannot fail
		_ = plain.copyFrom("MaskedMatrixSolution.Unmasked", &m.store)
	}
	return plain
}

func (m *MaskedMatrixSolution[T]) checkMask(op string, rows, columns int) error {
	if rows != m.inputSize || columns != m.NumOutputs() {
		return opterr.New(opterr.IncompatibleDimensions, op,
			"mask is %d×%d, weights are %d×%d", rows, columns, m.inputSize, m.NumOutputs())
	}
	return nil
}
