package optim_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/erm/internal/dataset"
	"github.com/born-ml/erm/internal/loss"
	"github.com/born-ml/erm/internal/opterr"
	"github.com/born-ml/erm/internal/optim"
	"github.com/born-ml/erm/internal/regularizer"
	"github.com/born-ml/erm/internal/rng"
	"github.com/born-ml/erm/internal/search"
	"github.com/born-ml/erm/internal/solution"
)

func matrixSet() dataset.Set[float64, []float64] {
	return dataset.RandomVector[float64](rng.New("reoptimize"), 100, 8, 0, 3)
}

func reoptimizeParameters() optim.SDCAParameters {
	return optim.SDCAParameters{Regularization: 0.1, DesiredDualityGap: 1e-5, PermuteData: true}
}

// assertZerosKept requires every zero weight of sparse to be zero in dense.
func assertZerosKept(t *testing.T, sparse, dense *solution.MatrixSolution[float64]) {
	t.Helper()
	s, d := sparse.GetMatrix(), dense.GetMatrix()
	rows, columns := s.Dims()
	for i := 0; i < rows; i++ {
		for j := 0; j < columns; j++ {
			if s.At(i, j) == 0 {
				assert.Zero(t, d.At(i, j), "weight (%d, %d)", i, j)
			}
		}
	}
}

func TestReoptimizeSparseSolution(t *testing.T) {
	examples := matrixSet()

	// a checkerboard of zero weights
	sparse := solution.NewBiasedMatrixSolution[float64]()
	require.NoError(t, sparse.Resize(make([]float64, 8), make([]float64, 3)))
	for j := 0; j < 3; j++ {
		column := make([]float64, 9)
		for i := range column {
			if (i+j)%2 == 1 {
				column[i] = 1
			}
		}
		sparse.SetColumn(j, column)
	}

	dense, info, err := optim.ReoptimizeSparseSolution(examples, sparse,
		loss.NewSmoothedHingeLoss(1), reoptimizeParameters(), 200)
	require.NoError(t, err)

	assert.LessOrEqual(t, info.DualityGap(), 1e-5)
	assert.GreaterOrEqual(t, info.DualityGap(), -1e-9)
	assertZerosKept(t, sparse, dense)
	assert.InDelta(t, sparse.Density(), dense.Density(), 0.1)
	assert.LessOrEqual(t, dense.Density(), sparse.Density())
}

// TestReoptimizeSparseSolution_AfterGetSparseSolution retrains the elastic net
// result with L2 on its own zero pattern.
func TestReoptimizeSparseSolution_AfterGetSparseSolution(t *testing.T) {
	examples := matrixSet()
	params := optim.DefaultGetSparseSolutionParameters()
	params.TargetDensity = search.NewInterval(0.3, 0.6)
	params.SDCAParameters.Regularization = 0.1
	params.MaxEpochs = 5000

	result, err := optim.GetSparseSolution(examples, solution.NewBiasedMatrixSolution[float64](),
		loss.NewSmoothedHingeLoss(1), params)
	if err != nil {
		require.ErrorIs(t, err, opterr.ErrBudgetExhausted)
	}
	require.NotNil(t, result.Solution)

	dense, info, err := optim.ReoptimizeSparseSolution(examples, result.Solution,
		loss.NewSmoothedHingeLoss(1), reoptimizeParameters(), 200)
	require.NoError(t, err)
	assert.LessOrEqual(t, info.DualityGap(), 1e-5)
	assertZerosKept(t, result.Solution, dense)
}

// TestSDCA_MaskedSolution trains with frozen non-zero weights under every
// regularizer and requires them untouched.
func TestSDCA_MaskedSolution(t *testing.T) {
	for name, reg := range map[string]regularizer.Regularizer{
		"L2":         regularizer.NewL2(),
		"ElasticNet": regularizer.NewElasticNet(0.1),
		"Max":        regularizer.NewMax(0.1),
	} {
		t.Run(name, func(t *testing.T) {
			mask := mat.NewDense(8, 3, nil)
			frozen := mat.NewDense(8, 3, nil)
			mask.Set(2, 1, 1)
			frozen.Set(2, 1, 0.75)
			mask.Set(5, 0, 1)

			w := solution.NewBiasedMaskedMatrixSolution[float64]()
			require.NoError(t, w.SetMaskParameters(solution.MaskParameters{Mask: mask, FrozenWeights: frozen}))

			optimizer, err := optim.NewSDCA(matrixSet(), w, loss.NewSmoothedHingeLoss(1), reg, reoptimizeParameters())
			require.NoError(t, err)
			optimizer.PerformEpochs(5)
			require.NoError(t, optimizer.SetParameters(optim.SDCAParameters{Regularization: 0.05, PermuteData: true}))
			optimizer.PerformEpochs(5)

			weights := optimizer.GetSolution().GetMatrix()
			assert.Equal(t, 0.75, weights.At(2, 1))
			assert.Zero(t, weights.At(5, 0))
		})
	}
}

func TestReoptimizeSparseSolution_Unsized(t *testing.T) {
	_, _, err := optim.ReoptimizeSparseSolution(matrixSet(), solution.NewBiasedMatrixSolution[float64](),
		loss.NewSmoothedHingeLoss(1), reoptimizeParameters(), 10)
	assert.ErrorIs(t, err, opterr.ErrInvalidParameter)
}
