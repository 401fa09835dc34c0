package solution

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/erm/internal/opterr"
)

// store holds the parameter matrix shared by VectorSolution and MatrixSolution.
type store[T Element] struct {
	biased    bool
	inputSize int

	// weights is (inputSize + bias) × numOutputs, nil until resized.
	weights *mat.Dense

	// extended is the scratch extended input [x; 1], viewed by ext.
	extended []float64
	ext      *mat.VecDense
}

func (s *store[T]) resize(op string, inputSize, numOutputs int) error {
	if s.weights != nil {
		if inputSize == s.inputSize && numOutputs == s.NumOutputs() {
			return nil
		}
		return opterr.New(opterr.IncompatibleDimensions, op,
			"solution has %d inputs and %d outputs, example has %d inputs and %d outputs",
			s.inputSize, s.NumOutputs(), inputSize, numOutputs)
	}

	rows := inputSize + s.biasRows()
	if rows == 0 || numOutputs == 0 {
		return opterr.New(opterr.IncompatibleDimensions, op,
			"cannot size a solution for %d inputs and %d outputs", inputSize, numOutputs)
	}

	s.inputSize = inputSize
	s.weights = mat.NewDense(rows, numOutputs, nil)
	s.extended = make([]float64, rows)
	if s.biased {
		s.extended[inputSize] = 1
	}
	s.ext = mat.NewVecDense(rows, s.extended)
	return nil
}

func (s *store[T]) biasRows() int {
	if s.biased {
		return 1
	}
	return 0
}

// extend converts input into the scratch extended input.
func (s *store[T]) extend(input []T) []float64 {
	if len(input) != s.inputSize {
		panic(fmt.Sprintf("solution: input has %d features, want %d", len(input), s.inputSize))
	}
	for i, x := range input {
		s.extended[i] = float64(x)
	}
	return s.extended
}

func (s *store[T]) sameShape(op string, other *store[T]) error {
	if other.weights == nil || s.biased != other.biased ||
		s.inputSize != other.inputSize || s.NumOutputs() != other.NumOutputs() {
		return opterr.New(opterr.IncompatibleDimensions, op, "solutions differ in shape or bias")
	}
	return nil
}

func (s *store[T]) copyFrom(op string, other *store[T]) error {
	if other.weights == nil {
		return opterr.New(opterr.IncompatibleDimensions, op, "source solution is not sized")
	}
	if s.weights == nil && s.biased == other.biased {
		if err := s.resize(op, other.inputSize, other.NumOutputs()); err != nil {
			return err
		}
	}
	if err := s.sameShape(op, other); err != nil {
		return err
	}
	s.weights.Copy(other.weights)
	return nil
}

func (s *store[T]) combine(a float64, other *store[T], b float64) {
	values := s.Values()
	if other == s {
		floats.Scale(a+b, values)
		return
	}
	floats.Scale(a, values)
	floats.AddScaled(values, b, other.Values())
}

// addOuter adds [x; 1]·rowᵀ to the weights.
func (s *store[T]) addOuter(input []T, row []float64) {
	s.extend(input)
	s.weights.RankOne(s.weights, 1, s.ext, mat.NewVecDense(len(row), row))
}

// IsBiased reports whether the solution carries a bias row.
func (s *store[T]) IsBiased() bool { return s.biased }

// InputSize returns the number of input features.
func (s *store[T]) InputSize() int { return s.inputSize }

// NumOutputs returns the number of outputs, 0 before the first Resize.
func (s *store[T]) NumOutputs() int {
	if s.weights == nil {
		return 0
	}
	_, c := s.weights.Dims()
	return c
}

// NumColumns returns the number of outputs.
func (s *store[T]) NumColumns() int { return s.NumOutputs() }

// Values returns every coordinate in row-major order, bias row last.
func (s *store[T]) Values() []float64 {
	if s.weights == nil {
		return nil
	}
	return s.weights.RawMatrix().Data
}

// Column copies column j, bias included, into dst. dst is reused when it has
// room for the column.
func (s *store[T]) Column(j int, dst []float64) []float64 {
	rows, _ := s.weights.Dims()
	if cap(dst) < rows {
		dst = make([]float64, rows)
	}
	return mat.Col(dst[:rows], j, s.weights)
}

// SetColumn overwrites column j, bias included.
func (s *store[T]) SetColumn(j int, src []float64) {
	s.weights.SetCol(j, src)
}

// Reset zeroes every coordinate.
func (s *store[T]) Reset() {
	if s.weights != nil {
		s.weights.Zero()
	}
}

// Predict writes the predictions for input into dst.
func (s *store[T]) Predict(input []T, dst []float64) {
	extended := s.extend(input)
	for j := range dst {
		dst[j] = 0
	}
	for i, x := range extended {
		if x != 0 {
			floats.AddScaled(dst, x, s.weights.RawRowView(i))
		}
	}
}

// Norm2SquaredOf returns ‖x‖², plus 1 when biased.
func (s *store[T]) Norm2SquaredOf(input []T) float64 {
	extended := s.extend(input)
	return floats.Dot(extended, extended)
}

// Norm1 returns the sum of absolute coordinates, bias included.
func (s *store[T]) Norm1() float64 { return Norm1(s) }

// Norm2Squared returns the sum of squared coordinates, bias included.
func (s *store[T]) Norm2Squared() float64 { return Norm2Squared(s) }

// Density returns the fraction of non-zero weights, bias excluded.
func (s *store[T]) Density() float64 {
	if s.weights == nil || s.inputSize == 0 {
		return 0
	}
	numOutputs := s.NumOutputs()
	weights := s.Values()[:s.inputSize*numOutputs]

	nonZero := 0
	for _, w := range weights {
		if w != 0 {
			nonZero++
		}
	}
	return float64(nonZero) / float64(len(weights))
}

// AddOuter adds [x; 1]·rowᵀ to the solution.
func (s *store[T]) AddOuter(input []T, row []float64) { s.addOuter(input, row) }
