// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides the empirical risk minimization optimizers.
//
// # Overview
//
// This package contains:
//   - SGD: averaged stochastic (sub)gradient descent with an L2 regularizer
//   - SDCA: stochastic dual coordinate ascent with a pluggable regularizer and a
//     duality gap stopping criterion
//   - GetSparseSolution: an elastic net SDCA run calibrated to a target density
//   - Optimizer interface shared by SGD and SDCA
//
// Both optimizers minimize
//
//	(1/n) Σ ℓ(w·x_i, y_i) + λ g(w)
//
// over a linear predictor w, where ℓ is a loss.Function and g a
// regularizer.Regularizer (½‖w‖² for SGD).
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/erm/dataset"
//	    "github.com/born-ml/erm/loss"
//	    "github.com/born-ml/erm/optim"
//	    "github.com/born-ml/erm/regularizer"
//	    "github.com/born-ml/erm/solution"
//	)
//
//	func main() {
//	    var examples dataset.Set[float64, float64] = dataset.FromSlice(rows)
//
//	    optimizer, err := optim.NewSDCA(examples, solution.NewBiasedVectorSolution[float64](),
//	        loss.NewLogisticLoss(), regularizer.NewL2(), optim.SDCAParameters{
//	            Regularization:    0.01,
//	            DesiredDualityGap: 1e-4,
//	            PermuteData:       true,
//	        })
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    // Train until the duality gap is small enough
//	    optimizer.PerformEpochs(100)
//
//	    info := optimizer.GetSolutionInfo()
//	    fmt.Printf("epochs=%d gap=%g\n", info.NumEpochsPerformed, info.DualityGap())
//	}
//
// # Optimizers
//
// SGD has no stopping criterion, the caller picks the number of epochs:
//
//	optimizer, err := optim.NewSGD(examples, solution.NewBiasedVectorSolution[float64](),
//	    loss.NewHingeLoss(), optim.SGDParameters{Regularization: 0.01})
//	optimizer.PerformEpochs(20)
//
// SDCA tracks the primal and dual objectives and stops once their gap reaches
// the desired value:
//
//	optimizer.Update(50, 1e-4) // at most 50 epochs
//
// # Sparse Solutions
//
//	params := optim.DefaultGetSparseSolutionParameters()
//	params.TargetDensity = search.NewInterval(0.20, 0.25)
//	result, err := optim.GetSparseSolution(examples, solution.NewBiasedVectorSolution[float64](),
//	    loss.NewSquareLoss(), params)
//
// For matrix solutions, ReoptimizeSparseSolution then retrains the surviving
// weights with L2 regularization on a MaskedMatrixSolution that keeps the zeros
// in place.
//
// # Determinism
//
// All randomness derives from the RandomSeed strings of the parameters. Two runs
// with the same examples, parameters and epoch counts produce identical
// solutions, and Reset restores an optimizer to its freshly constructed state.
package optim
