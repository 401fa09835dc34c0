package optim

import (
	"log/slog"
	"math"

	"github.com/born-ml/erm/internal/dataset"
	"github.com/born-ml/erm/internal/loss"
	"github.com/born-ml/erm/internal/opterr"
	"github.com/born-ml/erm/internal/regularizer"
	"github.com/born-ml/erm/internal/rng"
	"github.com/born-ml/erm/internal/search"
	"github.com/born-ml/erm/internal/solution"
)

// sparseSearchEarlyExitWidth stops the binary search over the log scale once
// the bracket is narrower than this.
const sparseSearchEarlyExitWidth = 1e-3

// GetSparseSolutionParameters configures GetSparseSolution.
type GetSparseSolutionParameters struct {
	TargetDensity  search.Interval // Acceptable fraction of non-zero weights
	SDCAParameters SDCAParameters  // Parameters of the underlying SDCA runs

	MaxEpochs               int     // Total epoch budget of the search (default: 20 × SDCAMaxEpochsPerCall)
	SDCAMaxEpochsPerCall    int     // Epochs per density evaluation and for the final run (default: 50)
	SDCAEarlyExitDualityGap float64 // Duality gap that ends an SDCA run early (default: 1e-4)
	RandomSeed              string  // Seed of the SDCA runs, overrides SDCAParameters.RandomSeed when set

	ExponentialSearchGuess float64 // Elastic net β at log scale 0 (default: 1/64)
	ExponentialSearchBase  float64 // Step growth of the exponential search (default: 4)

	Logger *slog.Logger // Progress logger (default: discard)
}

// DefaultGetSparseSolutionParameters returns the parameters used by the
// sparse fine-tuning tool, targeting a density of 0.5 ± 0.025.
func DefaultGetSparseSolutionParameters() GetSparseSolutionParameters {
	return GetSparseSolutionParameters{
		TargetDensity:           search.NewInterval(0.475, 0.525),
		SDCAParameters:          DefaultSDCAParameters(),
		MaxEpochs:               1000,
		SDCAMaxEpochsPerCall:    50,
		SDCAEarlyExitDualityGap: 1e-4,
		RandomSeed:              rng.DefaultSeed,
		ExponentialSearchGuess:  1.0 / 64.0,
		ExponentialSearchBase:   4.0,
	}
}

// SparseSolution is the result of GetSparseSolution.
type SparseSolution[S any] struct {
	Solution     S            // Trained solution
	Info         SolutionInfo // Objectives of the final SDCA run
	Beta         float64      // Elastic net β of the final run
	Density      float64      // Fraction of non-zero weights, bias excluded
	IsSuccessful bool         // Density lies in the target interval
}

// GetSparseSolution trains sol with SDCA and an elastic net regularizer whose
// β is calibrated so that the fraction of non-zero weights lands in the target
// density interval.
//
// β is searched on a log scale, β(m) = guess·exp(-m), so the density is
// non-decreasing in m. An exponential search from m = 0 brackets the target,
// then a binary search refines the bracket. Each density evaluation runs at
// most SDCAMaxEpochsPerCall epochs from a reset optimizer and spends them, but
// never less than one, from the MaxEpochs budget. A final run at the chosen β
// produces the result.
//
// When the budget runs out before the target is reached, the result is still
// populated from the final run at the best β found and the error is
// BudgetExhausted. When the exponential search runs off the finite range, for
// instance because every density evaluation returns zero, the result is
// populated the same way and the error is UnattainableTargetInterval. Any other error leaves the result empty.
//
// Example:
//
//	params := optim.DefaultGetSparseSolutionParameters()
//	params.TargetDensity = search.NewInterval(0.20, 0.25)
//	params.SDCAParameters.Regularization = 0.1
//	result, err := optim.GetSparseSolution(examples, solution.NewBiasedVectorSolution[float64](),
//	    loss.NewSquareLoss(), params)
func GetSparseSolution[T solution.Element, O any, S solution.Solution[T, O, S]](
	examples dataset.Set[T, O], sol S, lossFunction loss.Function, params GetSparseSolutionParameters,
) (SparseSolution[S], error) {
	const op = "GetSparseSolution"
	var result SparseSolution[S]

	params, err := withSparseDefaults(op, params)
	if err != nil {
		return result, err
	}
	logger := params.Logger

	sdcaParams := params.SDCAParameters
	sdcaParams.RandomSeed = params.RandomSeed
	guess := params.ExponentialSearchGuess
	optimizer, err := NewSDCA(examples, sol, lossFunction, regularizer.NewElasticNet(guess), sdcaParams)
	if err != nil {
		return result, err
	}

	beta := func(m float64) float64 { return guess * math.Exp(-m) }
	remaining := params.MaxEpochs
	evaluations := 0

	density := func(m float64) float64 {
		invariant(optimizer.SetRegularizer(regularizer.NewElasticNet(beta(m))))
		before := optimizer.GetSolutionInfo().NumEpochsPerformed
		optimizer.Update(min(params.SDCAMaxEpochsPerCall, remaining), params.SDCAEarlyExitDualityGap)
		info := optimizer.GetSolutionInfo()
		// an evaluation that starts below the early exit gap still costs an epoch
		remaining -= max(1, info.NumEpochsPerformed-before)

		d := optimizer.GetSolution().Density()
		evaluations++
		logger.Debug("density evaluation",
			"evaluation", evaluations,
			"beta", beta(m),
			"density", d,
			"dualityGap", info.DualityGap(),
			"epochs", info.NumEpochsPerformed-before,
			"remainingEpochs", remaining)

		optimizer.Reset()
		return d
	}

	chosen, err := searchLogScale(density, &remaining, params)
	if err != nil {
		return result, err
	}

	result.Beta = beta(chosen.m)
	invariant(optimizer.SetRegularizer(regularizer.NewElasticNet(result.Beta)))
	optimizer.Update(params.SDCAMaxEpochsPerCall, params.SDCAEarlyExitDualityGap)

	result.Solution = optimizer.GetSolution()
	result.Info = optimizer.GetSolutionInfo()
	result.Density = result.Solution.Density()
	result.IsSuccessful = params.TargetDensity.Contains(result.Density)

	logger.Info("sparse solution",
		"beta", result.Beta,
		"density", result.Density,
		"target", params.TargetDensity.String(),
		"dualityGap", result.Info.DualityGap(),
		"evaluations", evaluations,
		"successful", result.IsSuccessful)

	switch {
	case chosen.found:
		return result, nil
	case chosen.unbounded:
		return result, opterr.New(opterr.UnattainableTargetInterval, op,
			"no elastic net strength reaches density %v", params.TargetDensity)
	case remaining <= 0:
		return result, opterr.New(opterr.BudgetExhausted, op,
			"epoch budget of %d spent before reaching density %v", params.MaxEpochs, params.TargetDensity)
	}
	return result, nil
}

// logScaleChoice is the outcome of searchLogScale.
type logScaleChoice struct {
	m         float64
	found     bool // density(m) lies in the target
	unbounded bool // the exponential search ran off the finite range
}

// searchLogScale runs the exponential search and then the binary search over
// the log scale m while epochs remain.
func searchLogScale(density search.Function, remaining *int, params GetSparseSolutionParameters) (logScaleChoice, error) {
	target := params.TargetDensity

	exponential, err := search.NewExponentialSearch(density, search.ExponentialSearchParameters{
		TargetInterval: target,
		Base:           params.ExponentialSearchBase,
	})
	if err != nil {
		return logScaleChoice{}, err
	}
	for !exponential.IsSuccessful() && !exponential.IsExhausted() && *remaining > 0 {
		exponential.Update(1)
	}

	bounding := exponential.BoundingSearchInterval()
	if !exponential.IsSuccessful() {
		// the open side is infinite, keep the last evaluated argument
		choice := logScaleChoice{m: bounding.Begin(), unbounded: exponential.IsExhausted()}
		if math.IsInf(bounding.Begin(), 0) {
			choice.m = bounding.End()
		}
		return choice, nil
	}
	if bounding.Size() == 0 {
		return logScaleChoice{m: bounding.Begin(), found: true}, nil
	}

	binary, err := search.NewBinarySearch(density, search.BinarySearchParameters{
		TargetInterval:          target,
		SearchInterval:          bounding,
		UseSearchIntervalValues: true,
		SearchIntervalValues:    exponential.BoundingSearchIntervalValues(),
		EarlyExitIntervalWidth:  sparseSearchEarlyExitWidth,
	})
	if err != nil {
		return logScaleChoice{}, err
	}
	for !binary.IsDone() && *remaining > 0 {
		binary.Update(1)
	}

	interval, values := binary.CurrentSearchInterval(), binary.CurrentSearchIntervalValues()
	if binary.IsSuccessful() {
		return logScaleChoice{m: interval.Begin(), found: true}, nil
	}
	if math.Abs(values.Begin()-target.Center()) <= math.Abs(values.End()-target.Center()) {
		return logScaleChoice{m: interval.Begin()}, nil
	}
	return logScaleChoice{m: interval.End()}, nil
}

func withSparseDefaults(op string, params GetSparseSolutionParameters) (GetSparseSolutionParameters, error) {
	defaults := DefaultGetSparseSolutionParameters()
	if params.SDCAMaxEpochsPerCall == 0 {
		params.SDCAMaxEpochsPerCall = defaults.SDCAMaxEpochsPerCall
	}
	if params.MaxEpochs == 0 {
		params.MaxEpochs = 20 * params.SDCAMaxEpochsPerCall
	}
	if params.SDCAEarlyExitDualityGap == 0 {
		params.SDCAEarlyExitDualityGap = defaults.SDCAEarlyExitDualityGap
	}
	if params.RandomSeed == "" {
		params.RandomSeed = params.SDCAParameters.RandomSeed
	}
	if params.ExponentialSearchGuess == 0 {
		params.ExponentialSearchGuess = defaults.ExponentialSearchGuess
	}
	if params.ExponentialSearchBase == 0 {
		params.ExponentialSearchBase = defaults.ExponentialSearchBase
	}
	if params.Logger == nil {
		params.Logger = slog.New(slog.DiscardHandler)
	}

	switch {
	case params.SDCAMaxEpochsPerCall < 0 || params.MaxEpochs < 0:
		return params, opterr.New(opterr.InvalidParameter, op,
			"epoch counts must be positive, got %d per call and %d total", params.SDCAMaxEpochsPerCall, params.MaxEpochs)
	case params.ExponentialSearchGuess < 0:
		return params, opterr.New(opterr.InvalidParameter, op,
			"exponential search guess must be positive, got %g", params.ExponentialSearchGuess)
	case params.TargetDensity.Begin() < 0 || params.TargetDensity.End() > 1:
		return params, opterr.New(opterr.InvalidParameter, op,
			"target density %v is outside [0, 1]", params.TargetDensity)
	}
	return params, nil
}
