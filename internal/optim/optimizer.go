// Package optim implements the empirical risk minimization optimizers.
//
// This package provides:
//   - Optimizer interface: the epoch-driven contract shared by all optimizers
//   - SGD: averaged stochastic (sub)gradient descent with an L2 regularizer
//   - SDCA: stochastic dual coordinate ascent with a pluggable regularizer,
//     tracking a primal/dual objective pair
//   - GetSparseSolution: calibrates an elastic net SDCA run to a target density
//
// Every optimizer trains a solution.Solution on a dataset.Set under a
// loss.Function. Runs are deterministic given the same examples, parameters,
// seed string and epoch counts.
//
// Example usage:
//
//	var examples dataset.Set[float64, float64] = dataset.FromSlice(rows)
//
//	optimizer, err := optim.NewSDCA(examples, solution.NewBiasedVectorSolution[float64](),
//	    loss.NewLogisticLoss(), regularizer.NewL2(), optim.DefaultSDCAParameters())
//	if err != nil {
//	    return err
//	}
//	optimizer.Update(50, 1e-4)
//
//	w := optimizer.GetSolution().GetVector()
package optim

import (
	"fmt"

	"github.com/born-ml/erm/internal/dataset"
	"github.com/born-ml/erm/internal/loss"
	"github.com/born-ml/erm/internal/opterr"
	"github.com/born-ml/erm/internal/solution"
)

// Optimizer is the contract shared by SGD and SDCA.
type Optimizer[S any] interface {
	// PerformEpochs runs count passes over the examples.
	PerformEpochs(count int)

	// Reset restores the state right after construction, random generator included.
	Reset()

	// GetSolution returns the current solution.
	GetSolution() S
}

// DefaultRegularization is the regularization strength λ of the default parameters.
const DefaultRegularization = 1.0

// checkRegularization rejects a non-positive regularization strength.
func checkRegularization(op string, lambda float64) error {
	if lambda <= 0 {
		return opterr.New(opterr.InvalidParameter, op, "regularization must be positive, got %g", lambda)
	}
	return nil
}

// prepare sizes sol for the examples and verifies every example against the
// solution dimensions and the loss.
func prepare[T solution.Element, O any, S solution.Solution[T, O, S]](
	op string, examples dataset.Set[T, O], sol S, lossFunction loss.Multivariate,
) error {
	if examples == nil || examples.Size() == 0 {
		return opterr.New(opterr.EmptyDataset, op, "no examples to optimize over")
	}

	var output []float64
	for i := 0; i < examples.Size(); i++ {
		example := examples.Get(i)
		if err := sol.Resize(example.Input, example.Output); err != nil {
			return fmt.Errorf("example %d: %w", i, err)
		}
		if output == nil {
			output = make([]float64, sol.NumOutputs())
		}
		if err := verifyOutput(sol, example.Output, output, lossFunction); err != nil {
			return fmt.Errorf("example %d: %w", i, err)
		}
	}
	return nil
}

func verifyOutput[T solution.Element, O any, S solution.Solution[T, O, S]](
	sol S, output O, scratch []float64, lossFunction loss.Multivariate,
) error {
	sol.Outputs(output, scratch)
	return lossFunction.VerifyOutput(scratch)
}

// invariant panics on errors that construction has already ruled out, such as
// shape mismatches between solutions sized from the same examples.
func invariant(err error) {
	if err != nil {
		panic(fmt.Sprintf("optim: %v", err))
	}
}
