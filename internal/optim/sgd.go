package optim

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"

	"github.com/born-ml/erm/internal/dataset"
	"github.com/born-ml/erm/internal/loss"
	"github.com/born-ml/erm/internal/rng"
	"github.com/born-ml/erm/internal/solution"
)

// SGDParameters holds configuration for the SGD optimizer.
type SGDParameters struct {
	Regularization float64 // L2 regularization strength λ (must be > 0)
	RandomSeed     string  // Seed of the example permutations (default: rng.DefaultSeed)
}

// DefaultSGDParameters returns λ = DefaultRegularization and the default seed.
func DefaultSGDParameters() SGDParameters {
	return SGDParameters{Regularization: DefaultRegularization, RandomSeed: rng.DefaultSeed}
}

// SGD implements averaged stochastic (sub)gradient descent on
//
//	(1/n) Σ ω_i ℓ(w·x_i, y_i) + (λ/2)‖w‖²
//
// Update rule for the t-th example (x, y) with weight ω, counting across epochs:
//
//	g    = -ω · ℓ'(last·x, y) / (λt)
//	last = last·(1 - 1/t) + x·gᵀ
//	avg  = avg·(1 - 1/t) + last·(1/t)
//
// The averaged iterate avg is the solution; the raw iterate last is available
// through GetLastSolution. Every epoch visits the examples in a fresh permutation.
// SGD has no stopping criterion, the caller decides how many epochs to run.
//
// Example:
//
//	optimizer, err := optim.NewSGD(examples, solution.NewBiasedVectorSolution[float64](),
//	    loss.NewHingeLoss(), optim.SGDParameters{Regularization: 0.01})
//	if err != nil {
//	    return err
//	}
//	optimizer.PerformEpochs(10)
type SGD[T solution.Element, O any, S solution.Solution[T, O, S]] struct {
	examples dataset.Set[T, O]
	loss     loss.Multivariate
	params   SGDParameters

	random *rand.Rand
	order  []int

	last     S
	averaged S
	steps    int

	prediction []float64
	output     []float64
	row        []float64
}

// NewSGD creates an SGD optimizer that trains sol, which is sized for the
// examples and zeroed.
//
// Returns an error if the dataset is empty, λ is not positive, an example does
// not match the dimensions of the others, or an output is invalid for the loss.
func NewSGD[T solution.Element, O any, S solution.Solution[T, O, S]](
	examples dataset.Set[T, O], sol S, lossFunction loss.Function, params SGDParameters,
) (*SGD[T, O, S], error) {
	const op = "NewSGD"
	if err := checkRegularization(op, params.Regularization); err != nil {
		return nil, err
	}

	multivariate := loss.NewMultivariate(lossFunction)
	if err := prepare(op, examples, sol, multivariate); err != nil {
		return nil, err
	}

	last := sol.Empty()
	if err := last.CopyFrom(sol); err != nil {
		return nil, err
	}

	numOutputs := sol.NumOutputs()
	s := &SGD[T, O, S]{
		examples:   examples,
		loss:       multivariate,
		params:     params,
		order:      make([]int, examples.Size()),
		last:       last,
		averaged:   sol,
		prediction: make([]float64, numOutputs),
		output:     make([]float64, numOutputs),
		row:        make([]float64, numOutputs),
	}
	s.Reset()
	return s, nil
}

// PerformEpochs runs count epochs.
func (s *SGD[T, O, S]) PerformEpochs(count int) {
	for e := 0; e < count; e++ {
		rng.Permutation(s.random, s.order)
		for _, i := range s.order {
			s.step(s.examples.Get(i))
		}
	}
}

// Update runs one epoch.
func (s *SGD[T, O, S]) Update() { s.PerformEpochs(1) }

// Reset zeroes both iterates, the step counter and the random generator.
func (s *SGD[T, O, S]) Reset() {
	s.last.Reset()
	s.averaged.Reset()
	s.steps = 0
	s.random = rng.New(s.params.RandomSeed)
}

// GetSolution returns the averaged iterate.
func (s *SGD[T, O, S]) GetSolution() S { return s.averaged }

// GetLastSolution returns the raw iterate.
func (s *SGD[T, O, S]) GetLastSolution() S { return s.last }

// Steps returns the number of examples processed since construction or Reset.
func (s *SGD[T, O, S]) Steps() int { return s.steps }

// Parameters returns the optimizer configuration.
func (s *SGD[T, O, S]) Parameters() SGDParameters { return s.params }

func (s *SGD[T, O, S]) step(example dataset.Example[[]T, O]) {
	s.steps++
	t := float64(s.steps)

	s.last.Predict(example.Input, s.prediction)
	s.last.Outputs(example.Output, s.output)
	s.loss.Derivative(s.prediction, s.output, s.row)
	floats.Scale(-example.Weight/(s.params.Regularization*t), s.row)

	invariant(s.last.ScaleAddOuter(solution.Scale(s.last, 1-1/t), example.Input, s.row))
	invariant(s.averaged.Combine(solution.Scale(s.averaged, 1-1/t), solution.Scale(s.last, 1/t)))
}
