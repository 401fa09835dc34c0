package solution_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/erm/internal/opterr"
	"github.com/born-ml/erm/internal/solution"
)

func TestVectorSolution_Algebra(t *testing.T) {
	v := solution.NewBiasedVectorSolution[float64]()
	require.NoError(t, v.Resize([]float64{1, 2}, 1))

	v.AddOuter([]float64{1, 2}, []float64{0.5})
	assert.Equal(t, []float64{0.5, 1.0}, v.GetVector().RawVector().Data)
	assert.Equal(t, 0.5, v.GetBias())
	assert.Equal(t, 0.5, v.Multiply([]float64{2, -1}))
	assert.Equal(t, 2.0, v.Norm1())
	assert.Equal(t, 1.5, v.Norm2Squared())
	assert.Equal(t, 1.0, v.Density())
	assert.Equal(t, 6.0, v.Norm2SquaredOf([]float64{1, 2}))

	require.NoError(t, v.Combine(solution.Scale(v, 2), solution.Scale(v, 1)))
	assert.Equal(t, []float64{1.5, 3, 1.5}, v.Values())

	require.NoError(t, v.ScaleAddOuter(solution.Scale(v, 0.5), []float64{0, 1}, []float64{1}))
	assert.Equal(t, []float64{0.75, 2.5, 1.75}, v.Values())

	v.Reset()
	assert.Equal(t, []float64{0, 0, 0}, v.Values())
	assert.Equal(t, 0.0, v.Density())
}

func TestVectorSolution_IdentityMismatch(t *testing.T) {
	v := solution.NewUnbiasedVectorSolution[float64]()
	w := solution.NewUnbiasedVectorSolution[float64]()
	require.NoError(t, v.Resize([]float64{1, 2}, 1))
	require.NoError(t, w.Resize([]float64{1, 2}, 1))

	err := v.Combine(solution.Scale(w, 1), solution.Scale(v, 1))
	assert.ErrorIs(t, err, opterr.ErrIdentityMismatch)

	err = v.ScaleAddOuter(solution.Scale(w, 1), []float64{1, 1}, []float64{1})
	assert.ErrorIs(t, err, opterr.ErrIdentityMismatch)

	w.AddOuter([]float64{1, -1}, []float64{2})
	require.NoError(t, v.Combine(solution.Scale(v, 1), solution.Scale(w, -0.5)))
	assert.Equal(t, []float64{-1, 1}, v.Values())
}

func TestSolution_Resize(t *testing.T) {
	v := solution.NewBiasedVectorSolution[int]()
	require.NoError(t, v.Resize([]int{1, 2, 3}, 1))
	require.NoError(t, v.Resize([]int{4, 5, 6}, -1))
	assert.Equal(t, 3, v.InputSize())
	assert.Equal(t, 1, v.NumOutputs())

	err := v.Resize([]int{1, 2}, 1)
	assert.ErrorIs(t, err, opterr.ErrIncompatibleDimensions)

	m := solution.NewUnbiasedMatrixSolution[float32]()
	require.NoError(t, m.Resize([]float32{1, 2}, []float32{1, 1, 1}))
	err = m.Resize([]float32{1, 2}, []float32{1, 1})
	assert.ErrorIs(t, err, opterr.ErrIncompatibleDimensions)

	empty := solution.NewUnbiasedVectorSolution[float64]()
	err = empty.Resize(nil, 0)
	assert.ErrorIs(t, err, opterr.ErrIncompatibleDimensions)
}

func TestSolution_BiasEquivalence(t *testing.T) {
	biased := solution.NewBiasedVectorSolution[int]()
	unbiased := solution.NewUnbiasedVectorSolution[int]()
	require.NoError(t, biased.Resize([]int{0, 0}, 0))
	require.NoError(t, unbiased.Resize([]int{0, 0, 1}, 0))

	inputs := [][]int{{1, 2}, {-3, 1}, {0, 4}}
	rows := []float64{0.25, -1, 2}
	for i, x := range inputs {
		biased.AddOuter(x, rows[i:i+1])
		unbiased.AddOuter(append(append([]int{}, x...), 1), rows[i:i+1])
	}

	assert.Equal(t, unbiased.Values(), biased.Values())
	assert.Equal(t, unbiased.Norm2SquaredOf([]int{2, 3, 1}), biased.Norm2SquaredOf([]int{2, 3}))
	assert.Equal(t, unbiased.Multiply([]int{2, 3, 1}), biased.Multiply([]int{2, 3}))
}

func TestMatrixSolution_Algebra(t *testing.T) {
	m := solution.NewBiasedMatrixSolution[float32]()
	require.NoError(t, m.Resize([]float32{1, 2}, []float32{0, 0, 0}))

	m.AddOuter([]float32{1, 2}, []float64{1, -1, 0})
	assert.Equal(t, []float64{4, -4, 0}, m.Multiply([]float32{1, 1}))
	assert.InDelta(t, 2.0/3.0, m.Density(), 1e-12)

	r, c := m.GetMatrix().Dims()
	assert.Equal(t, 2, r)
	assert.Equal(t, 3, c)
	assert.Equal(t, []float64{1, -1, 0}, m.GetBias().RawVector().Data)
	assert.Equal(t, []float64{-1, -2, -1}, m.Column(1, nil))

	m.SetColumn(2, []float64{1, 1, 1})
	assert.Equal(t, []float64{1, -1, 1, 2, -2, 1, 1, -1, 1}, m.Values())
	assert.Equal(t, 3, m.NumColumns())

	dst := make([]float64, 3)
	m.Outputs([]float32{1, -1, 0.5}, dst)
	assert.Equal(t, []float64{1, -1, 0.5}, dst)
}

func TestMatrixSolution_MatchesVectorSolution(t *testing.T) {
	v := solution.NewBiasedVectorSolution[float64]()
	m := solution.NewBiasedMatrixSolution[float64]()
	require.NoError(t, v.Resize([]float64{0, 0, 0}, 0))
	require.NoError(t, m.Resize([]float64{0, 0, 0}, []float64{0}))

	inputs := [][]float64{{1, 0.5, -2}, {3, 1, 1}, {-1, -1, 0.25}}
	for i, x := range inputs {
		row := []float64{float64(i) - 0.75}
		require.NoError(t, v.ScaleAddOuter(solution.Scale(v, 0.9), x, row))
		require.NoError(t, m.ScaleAddOuter(solution.Scale(m, 0.9), x, row))
	}

	assert.Equal(t, v.Values(), m.Values())
	assert.Equal(t, v.GetBias(), m.GetBias().AtVec(0))
	assert.True(t, mat.Equal(v.GetVector(), m.GetMatrix().ColView(0)))
	assert.Equal(t, []float64{v.Multiply(inputs[0])}, m.Multiply(inputs[0]))
}

func TestSolution_CopyAndSubtract(t *testing.T) {
	m := solution.NewUnbiasedMatrixSolution[float64]()
	require.NoError(t, m.Resize([]float64{1, 2}, []float64{1, 2}))
	m.AddOuter([]float64{1, 2}, []float64{3, 4})

	c := m.Empty()
	require.NoError(t, c.CopyFrom(m))
	assert.Equal(t, m.Values(), c.Values())

	m.AddOuter([]float64{1, 0}, []float64{1, 1})
	assert.NotEqual(t, m.Values(), c.Values())

	require.NoError(t, m.Subtract(c))
	assert.Equal(t, []float64{1, 1, 0, 0}, m.Values())

	biased := solution.NewBiasedMatrixSolution[float64]()
	assert.ErrorIs(t, biased.CopyFrom(m), opterr.ErrIncompatibleDimensions)
	assert.ErrorIs(t, m.CopyFrom(solution.NewUnbiasedMatrixSolution[float64]()), opterr.ErrIncompatibleDimensions)
}

func TestSolution_Unsized(t *testing.T) {
	v := solution.NewBiasedVectorSolution[float64]()
	assert.Nil(t, v.Values())
	assert.Equal(t, 0, v.NumOutputs())
	assert.Equal(t, 0.0, v.Density())
	assert.Equal(t, 0.0, v.GetBias())
	assert.Equal(t, 0.0, solution.Norm1(v))
	assert.True(t, v.Empty().IsBiased())
}
