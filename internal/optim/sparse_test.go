package optim_test

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/erm/internal/dataset"
	"github.com/born-ml/erm/internal/loss"
	"github.com/born-ml/erm/internal/opterr"
	"github.com/born-ml/erm/internal/optim"
	"github.com/born-ml/erm/internal/rng"
	"github.com/born-ml/erm/internal/search"
	"github.com/born-ml/erm/internal/solution"
)

func sparseSet(t *testing.T) dataset.Set[float64, float64] {
	t.Helper()
	examples, _, _ := dataset.LinearRegression(rng.New("sparse"), 200, 40, 0.1)
	return examples
}

func sparseParameters(target search.Interval) optim.GetSparseSolutionParameters {
	params := optim.DefaultGetSparseSolutionParameters()
	params.TargetDensity = target
	params.SDCAParameters.Regularization = 0.1
	params.MaxEpochs = 5000
	return params
}

func TestGetSparseSolution(t *testing.T) {
	targets := []search.Interval{
		search.NewInterval(0.70, 0.75),
		search.NewInterval(0.45, 0.50),
		search.NewInterval(0.20, 0.25),
	}
	examples := sparseSet(t)

	for _, target := range targets {
		t.Run(target.String(), func(t *testing.T) {
			result, err := optim.GetSparseSolution(examples, solution.NewBiasedVectorSolution[float64](),
				loss.NewSquareLoss(), sparseParameters(target))
			require.NoError(t, err)

			assert.InDelta(t, target.Center(), result.Density, 0.1)
			assert.InDelta(t, result.Density, result.Solution.Density(), 1e-12)
			assert.Positive(t, result.Beta)
			assert.Positive(t, result.Info.NumEpochsPerformed)
		})
	}
}

func TestGetSparseSolution_DensityDecreasesWithTarget(t *testing.T) {
	examples := sparseSet(t)
	dense, err := optim.GetSparseSolution(examples, solution.NewBiasedVectorSolution[float64](),
		loss.NewSquareLoss(), sparseParameters(search.NewInterval(0.70, 0.75)))
	require.NoError(t, err)
	sparse, err := optim.GetSparseSolution(examples, solution.NewBiasedVectorSolution[float64](),
		loss.NewSquareLoss(), sparseParameters(search.NewInterval(0.20, 0.25)))
	require.NoError(t, err)

	assert.Greater(t, sparse.Beta, dense.Beta)
	assert.Less(t, sparse.Density, dense.Density)
}

func TestGetSparseSolution_Classification(t *testing.T) {
	data, _ := dataset.LinearClassification(rng.New("sparse"), 200, 40, 0.25)
	var examples dataset.Set[float64, float64] = data

	params := optim.DefaultGetSparseSolutionParameters()
	params.TargetDensity = search.NewInterval(0.45, 0.50)
	params.SDCAParameters.Regularization = 0.1
	params.MaxEpochs = 5000

	result, err := optim.GetSparseSolution(examples, solution.NewBiasedVectorSolution[float64](),
		loss.NewSmoothedHingeLoss(loss.DefaultSmoothedHingeGamma), params)
	require.NoError(t, err)
	assert.InDelta(t, params.TargetDensity.Center(), result.Density, 0.1)
}

func TestGetSparseSolution_BudgetExhausted(t *testing.T) {
	params := sparseParameters(search.NewInterval(0.20, 0.25))
	params.MaxEpochs = 1

	result, err := optim.GetSparseSolution(sparseSet(t), solution.NewBiasedVectorSolution[float64](),
		loss.NewSquareLoss(), params)
	assert.ErrorIs(t, err, opterr.ErrBudgetExhausted)

	// the result of the final run is still populated
	require.NotNil(t, result.Solution)
	assert.False(t, result.IsSuccessful)
	assert.Positive(t, result.Beta)
	assert.Equal(t, result.Solution.Density(), result.Density)
}

// tinyOutputSet has outputs so small that a zero solution is already within the
// early exit duality gap, so no evaluation runs an epoch and every density is 0.
func tinyOutputSet() dataset.Set[float64, float64] {
	r := rng.New("tiny")
	examples := make([]dataset.Example[[]float64, float64], 20)
	for i := range examples {
		examples[i] = dataset.NewExample([]float64{r.NormFloat64(), r.NormFloat64(), r.NormFloat64()}, 0.001)
	}
	return dataset.FromSlice(examples)
}

func TestGetSparseSolution_ZeroEpochEvaluations(t *testing.T) {
	tests := []struct {
		name      string
		maxEpochs int
		want      error
	}{
		// 513 evaluations overflow the base 4 step before the budget runs out
		{"step overflow", 1000, opterr.ErrUnattainableTargetInterval},
		{"budget", 50, opterr.ErrBudgetExhausted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := optim.DefaultGetSparseSolutionParameters()
			params.TargetDensity = search.NewInterval(0.45, 0.5)
			params.MaxEpochs = tt.maxEpochs

			type outcome struct {
				result optim.SparseSolution[*solution.VectorSolution[float64]]
				err    error
			}
			done := make(chan outcome, 1)
			go func() {
				result, err := optim.GetSparseSolution(tinyOutputSet(), solution.NewBiasedVectorSolution[float64](),
					loss.NewSquareLoss(), params)
				done <- outcome{result, err}
			}()

			select {
			case got := <-done:
				assert.ErrorIs(t, got.err, tt.want)
				require.NotNil(t, got.result.Solution)
				assert.False(t, got.result.IsSuccessful)
				assert.Zero(t, got.result.Density)
			case <-time.After(30 * time.Second):
				t.Fatal("GetSparseSolution did not return")
			}
		})
	}
}

func TestGetSparseSolution_InvalidParameters(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*optim.GetSparseSolutionParameters)
		want   error
	}{
		{"target above one", func(p *optim.GetSparseSolutionParameters) {
			p.TargetDensity = search.NewInterval(0.5, 1.5)
		}, opterr.ErrInvalidParameter},
		{"negative budget", func(p *optim.GetSparseSolutionParameters) { p.MaxEpochs = -1 }, opterr.ErrInvalidParameter},
		{"base not above one", func(p *optim.GetSparseSolutionParameters) {
			p.ExponentialSearchBase = 0.5
		}, opterr.ErrInvalidParameter},
		{"zero regularization", func(p *optim.GetSparseSolutionParameters) {
			p.SDCAParameters.Regularization = 0
		}, opterr.ErrInvalidParameter},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := sparseParameters(search.NewInterval(0.45, 0.50))
			tt.modify(&params)
			_, err := optim.GetSparseSolution(sparseSet(t), solution.NewBiasedVectorSolution[float64](),
				loss.NewSquareLoss(), params)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestGetSparseSolution_Logging(t *testing.T) {
	var buf bytes.Buffer
	params := sparseParameters(search.NewInterval(0.45, 0.50))
	params.Logger = slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := optim.GetSparseSolution(sparseSet(t), solution.NewBiasedVectorSolution[float64](),
		loss.NewSquareLoss(), params)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "density evaluation")
	assert.Contains(t, buf.String(), "sparse solution")
}
