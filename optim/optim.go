// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package optim

import (
	"github.com/born-ml/erm/internal/dataset"
	"github.com/born-ml/erm/internal/loss"
	"github.com/born-ml/erm/internal/optim"
	"github.com/born-ml/erm/internal/regularizer"
	"github.com/born-ml/erm/internal/solution"
)

// Optimizer interface defines the epoch-driven contract of SGD and SDCA.
type Optimizer[S any] = optim.Optimizer[S]

// DefaultRegularization is the regularization strength of the default parameters.
const DefaultRegularization = optim.DefaultRegularization

// SGD (Stochastic Gradient Descent)

// SGD represents the averaged SGD optimizer.
type SGD[T solution.Element, O any, S solution.Solution[T, O, S]] = optim.SGD[T, O, S]

// SGDParameters contains configuration for the SGD optimizer.
type SGDParameters = optim.SGDParameters

// DefaultSGDParameters returns the default SGD configuration.
func DefaultSGDParameters() SGDParameters { return optim.DefaultSGDParameters() }

// NewSGD creates a new SGD optimizer training sol on examples.
//
// Example:
//
//	optimizer, err := optim.NewSGD(examples, solution.NewBiasedVectorSolution[float64](),
//	    loss.NewHingeLoss(), optim.SGDParameters{Regularization: 0.01})
func NewSGD[T solution.Element, O any, S solution.Solution[T, O, S]](
	examples dataset.Set[T, O], sol S, lossFunction loss.Function, params SGDParameters,
) (*SGD[T, O, S], error) {
	return optim.NewSGD(examples, sol, lossFunction, params)
}

// SDCA (Stochastic Dual Coordinate Ascent)

// SDCA represents the SDCA optimizer.
type SDCA[T solution.Element, O any, S solution.Solution[T, O, S]] = optim.SDCA[T, O, S]

// SDCAParameters contains configuration for the SDCA optimizer.
type SDCAParameters = optim.SDCAParameters

// SolutionInfo holds the primal and dual objectives of an SDCA run.
type SolutionInfo = optim.SolutionInfo

// State is the phase of an SDCA optimizer.
type State = optim.State

// SDCA states.
const (
	Ready      = optim.Ready
	Stepping   = optim.Stepping
	Successful = optim.Successful
)

// DefaultSDCAParameters returns the default SDCA configuration.
func DefaultSDCAParameters() SDCAParameters { return optim.DefaultSDCAParameters() }

// NewSDCA creates a new SDCA optimizer training sol on examples. A nil
// regularizer selects L2.
//
// Example:
//
//	optimizer, err := optim.NewSDCA(examples, solution.NewBiasedVectorSolution[float64](),
//	    loss.NewSquareLoss(), regularizer.NewElasticNet(0.1), optim.DefaultSDCAParameters())
func NewSDCA[T solution.Element, O any, S solution.Solution[T, O, S]](
	examples dataset.Set[T, O], sol S, lossFunction loss.Function, reg regularizer.Regularizer, params SDCAParameters,
) (*SDCA[T, O, S], error) {
	return optim.NewSDCA(examples, sol, lossFunction, reg, params)
}

// Sparse solutions

// GetSparseSolutionParameters contains configuration for GetSparseSolution.
type GetSparseSolutionParameters = optim.GetSparseSolutionParameters

// SparseSolution is the result of GetSparseSolution.
type SparseSolution[S any] = optim.SparseSolution[S]

// DefaultGetSparseSolutionParameters returns the default sparse search configuration.
func DefaultGetSparseSolutionParameters() GetSparseSolutionParameters {
	return optim.DefaultGetSparseSolutionParameters()
}

// GetSparseSolution trains sol with an elastic net whose strength is searched
// so that the fraction of non-zero weights lands in params.TargetDensity.
func GetSparseSolution[T solution.Element, O any, S solution.Solution[T, O, S]](
	examples dataset.Set[T, O], sol S, lossFunction loss.Function, params GetSparseSolutionParameters,
) (SparseSolution[S], error) {
	return optim.GetSparseSolution(examples, sol, lossFunction, params)
}

// ReoptimizeSparseSolution retrains the non-zero weights of a sparse matrix
// solution with L2 regularization while its zero weights stay at zero.
func ReoptimizeSparseSolution[T solution.Element](
	examples dataset.Set[T, []T], sparse *solution.MatrixSolution[T], lossFunction loss.Function,
	params SDCAParameters, maxEpochs int,
) (*solution.MatrixSolution[T], SolutionInfo, error) {
	return optim.ReoptimizeSparseSolution(examples, sparse, lossFunction, params, maxEpochs)
}
