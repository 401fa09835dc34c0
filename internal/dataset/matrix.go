package dataset

import (
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/erm/internal/opterr"
)

// MatrixExamples adapts the rows of a gonum matrix and a slice of scalar outputs
// into a Container. Inputs are views into the matrix storage.
type MatrixExamples struct {
	inputs  *mat.Dense
	outputs []float64
	weights []float64
}

// NewMatrixExamples creates a container whose i-th example is (row i of inputs,
// outputs[i]). weights may be nil, meaning every example has weight 1.
func NewMatrixExamples(inputs *mat.Dense, outputs, weights []float64) (*MatrixExamples, error) {
	rows, _ := inputs.Dims()
	if rows != len(outputs) {
		return nil, opterr.New(opterr.IncompatibleDimensions, "NewMatrixExamples",
			"%d input rows but %d outputs", rows, len(outputs))
	}
	if weights != nil && len(weights) != rows {
		return nil, opterr.New(opterr.IncompatibleDimensions, "NewMatrixExamples",
			"%d input rows but %d weights", rows, len(weights))
	}
	return &MatrixExamples{inputs: inputs, outputs: outputs, weights: weights}, nil
}

// Size returns the number of rows.
func (m *MatrixExamples) Size() int { return len(m.outputs) }

// Get returns the example at row i.
func (m *MatrixExamples) Get(i int) Example[[]float64, float64] {
	return NewWeightedExample(m.inputs.RawRowView(i), m.outputs[i], weightAt(m.weights, i))
}

// MatrixRowExamples adapts the rows of an input matrix and the rows of an output
// matrix into a Container of vector-output examples.
type MatrixRowExamples struct {
	inputs  *mat.Dense
	outputs *mat.Dense
	weights []float64
}

// NewMatrixRowExamples creates a container whose i-th example is (row i of
// inputs, row i of outputs). weights may be nil.
func NewMatrixRowExamples(inputs, outputs *mat.Dense, weights []float64) (*MatrixRowExamples, error) {
	rows, _ := inputs.Dims()
	outRows, _ := outputs.Dims()
	if rows != outRows {
		return nil, opterr.New(opterr.IncompatibleDimensions, "NewMatrixRowExamples",
			"%d input rows but %d output rows", rows, outRows)
	}
	if weights != nil && len(weights) != rows {
		return nil, opterr.New(opterr.IncompatibleDimensions, "NewMatrixRowExamples",
			"%d input rows but %d weights", rows, len(weights))
	}
	return &MatrixRowExamples{inputs: inputs, outputs: outputs, weights: weights}, nil
}

// Size returns the number of rows.
func (m *MatrixRowExamples) Size() int {
	rows, _ := m.inputs.Dims()
	return rows
}

// Get returns the example at row i.
func (m *MatrixRowExamples) Get(i int) Example[[]float64, []float64] {
	return NewWeightedExample(m.inputs.RawRowView(i), m.outputs.RawRowView(i), weightAt(m.weights, i))
}

func weightAt(weights []float64, i int) float64 {
	if weights == nil {
		return 1.0
	}
	return weights[i]
}
