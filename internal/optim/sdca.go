package optim

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"

	"github.com/born-ml/erm/internal/dataset"
	"github.com/born-ml/erm/internal/loss"
	"github.com/born-ml/erm/internal/opterr"
	"github.com/born-ml/erm/internal/regularizer"
	"github.com/born-ml/erm/internal/rng"
	"github.com/born-ml/erm/internal/solution"
)

// lipschitzTolerance skips examples whose step would divide by (almost) zero,
// such as all-zero inputs of an unbiased solution.
const lipschitzTolerance = 1e-8

// SDCAParameters holds configuration for the SDCA optimizer.
type SDCAParameters struct {
	Regularization    float64 // Regularization strength λ (must be > 0)
	DesiredDualityGap float64 // PerformEpochs stops once the gap is at most this
	RandomSeed        string  // Seed of the permutations (default: rng.DefaultSeed)

	// PermuteData shuffles the visiting order before every epoch. The order
	// carries over between calls and is only restored to 0..n-1 by Reset, so
	// PerformEpochs(2) and two PerformEpochs(1) calls visit the same sequence.
	PermuteData bool
}

// DefaultSDCAParameters returns λ = DefaultRegularization, no early exit,
// permuted epochs and the default seed.
func DefaultSDCAParameters() SDCAParameters {
	return SDCAParameters{
		Regularization: DefaultRegularization,
		PermuteData:    true,
		RandomSeed:     rng.DefaultSeed,
	}
}

// SolutionInfo describes the progress of an SDCA run.
type SolutionInfo struct {
	PrimalObjective    float64
	DualObjective      float64
	NumEpochsPerformed int
}

// DualityGap returns PrimalObjective - DualObjective, an upper bound on the
// suboptimality of the current solution.
func (i SolutionInfo) DualityGap() float64 {
	return i.PrimalObjective - i.DualObjective
}

// State is the phase of an SDCA optimizer.
type State int

// SDCA states.
const (
	Ready      State = iota // At an epoch boundary, objectives are current
	Stepping                // Inside an epoch
	Successful              // At an epoch boundary with the desired duality gap reached
)

// String returns the name of the state.
func (s State) String() string {
	switch s {
	case Ready:
		return "Ready"
	case Stepping:
		return "Stepping"
	case Successful:
		return "Successful"
	default:
		return "Unknown"
	}
}

// SDCA implements stochastic dual coordinate ascent on
//
//	P(w) = (1/n) Σ ℓ(w·x_i, y_i) + λ g(w)
//
// Each example i owns a dual variable α_i (one value per output). The optimizer
// keeps v = Σ x_i α_i / (λn) over the dual updates and the primal solution
// w = ∇g*(v). A step on example (x, y) with L = ‖x‖² / (λn) computes
//
//	α' = ConjugateProx(1/L, (w·x)/L + α, y)
//	v  = v + x·(α - α')/(λn)
//	w  = ∇g*(v)
//
// After every epoch the primal objective P(w) and the dual objective
// D(α) = -(1/n) Σ ℓ*(α_i, y_i) - λ g*(v) are recomputed. Their difference, the
// duality gap, is non-negative and shrinks towards zero as epochs accumulate.
//
// Example:
//
//	optimizer, err := optim.NewSDCA(examples, solution.NewBiasedVectorSolution[float64](),
//	    loss.NewSquareLoss(), regularizer.NewElasticNet(0.1), optim.SDCAParameters{
//	        Regularization:    0.01,
//	        DesiredDualityGap: 1e-4,
//	        PermuteData:       true,
//	    })
//	if err != nil {
//	    return err
//	}
//	optimizer.PerformEpochs(100)
//	fmt.Println(optimizer.GetSolutionInfo().DualityGap())
type SDCA[T solution.Element, O any, S solution.Solution[T, O, S]] struct {
	examples    dataset.Set[T, O]
	loss        loss.Multivariate
	regularizer regularizer.Regularizer
	params      SDCAParameters

	random *rand.Rand
	order  []int

	w S // primal solution
	v S // scaled sum of the dual updates

	numOutputs    int
	duals         []float64 // n × numOutputs, row i belongs to example i
	norms         []float64 // ‖x_i‖², plus 1 when biased
	normInvLambda float64   // 1 / (λn)

	info     SolutionInfo
	stepping bool

	prediction []float64
	output     []float64
	proxed     []float64
	delta      []float64
}

// NewSDCA creates an SDCA optimizer that trains sol, which is sized for the
// examples and zeroed. A nil regularizer selects L2.
//
// Returns an error if the dataset is empty, λ is not positive, an example does
// not match the dimensions of the others, or an output is invalid for the loss.
func NewSDCA[T solution.Element, O any, S solution.Solution[T, O, S]](
	examples dataset.Set[T, O], sol S, lossFunction loss.Function, reg regularizer.Regularizer, params SDCAParameters,
) (*SDCA[T, O, S], error) {
	const op = "NewSDCA"
	if err := checkRegularization(op, params.Regularization); err != nil {
		return nil, err
	}
	if reg == nil {
		reg = regularizer.NewL2()
	}

	multivariate := loss.NewMultivariate(lossFunction)
	if err := prepare(op, examples, sol, multivariate); err != nil {
		return nil, err
	}

	v := sol.Empty()
	if err := v.CopyFrom(sol); err != nil {
		return nil, err
	}

	n := examples.Size()
	numOutputs := sol.NumOutputs()
	s := &SDCA[T, O, S]{
		examples:      examples,
		loss:          multivariate,
		regularizer:   reg,
		params:        params,
		order:         make([]int, n),
		w:             sol,
		v:             v,
		numOutputs:    numOutputs,
		duals:         make([]float64, n*numOutputs),
		norms:         make([]float64, n),
		normInvLambda: 1 / (params.Regularization * float64(n)),
		prediction:    make([]float64, numOutputs),
		output:        make([]float64, numOutputs),
		proxed:        make([]float64, numOutputs),
		delta:         make([]float64, numOutputs),
	}
	for i := range s.norms {
		s.norms[i] = sol.Norm2SquaredOf(examples.Get(i).Input)
	}

	s.Reset()
	return s, nil
}

// PerformEpochs runs up to count epochs, stopping early once the duality gap is
// at most the desired gap of the parameters.
func (s *SDCA[T, O, S]) PerformEpochs(count int) {
	s.Update(count, s.params.DesiredDualityGap)
}

// Update runs up to maxEpochs epochs, stopping early once the duality gap is at
// most desiredDualityGap.
func (s *SDCA[T, O, S]) Update(maxEpochs int, desiredDualityGap float64) {
	for e := 0; e < maxEpochs; e++ {
		if s.info.DualityGap() <= desiredDualityGap {
			return
		}
		if s.params.PermuteData {
			s.random.Shuffle(len(s.order), func(i, j int) {
				s.order[i], s.order[j] = s.order[j], s.order[i]
			})
		}

		s.stepping = true
		for _, i := range s.order {
			s.step(i)
		}
		s.stepping = false

		s.info.NumEpochsPerformed++
		s.computeObjectives()
	}
}

// IsSuccessful reports whether the duality gap is at most the desired gap.
func (s *SDCA[T, O, S]) IsSuccessful() bool {
	return s.info.DualityGap() <= s.params.DesiredDualityGap
}

// State returns the current phase of the optimizer.
func (s *SDCA[T, O, S]) State() State {
	switch {
	case s.stepping:
		return Stepping
	case s.IsSuccessful():
		return Successful
	default:
		return Ready
	}
}

// Reset zeroes the solution and the dual state and restores the example order
// and the random generator, so the next epochs reproduce a fresh optimizer.
func (s *SDCA[T, O, S]) Reset() {
	s.w.Reset()
	s.v.Reset()
	invariant(s.regularizer.ConjugateGradient(s.v, s.w))
	for i := range s.duals {
		s.duals[i] = 0
	}
	for i := range s.order {
		s.order[i] = i
	}
	s.random = rng.New(s.params.RandomSeed)
	s.info = SolutionInfo{}
	s.computeObjectives()
}

// SetLossFunction replaces the loss and recomputes the objectives. The dual
// state is kept.
//
// Returns an error, and keeps the previous loss, if an output is invalid for
// the new loss.
func (s *SDCA[T, O, S]) SetLossFunction(lossFunction loss.Function) error {
	multivariate := loss.NewMultivariate(lossFunction)
	for i := 0; i < s.examples.Size(); i++ {
		if err := verifyOutput(s.w, s.examples.Get(i).Output, s.output, multivariate); err != nil {
			return err
		}
	}
	s.loss = multivariate
	s.computeObjectives()
	return nil
}

// SetRegularizer replaces the regularizer, recomputes w = ∇g*(v) and the
// objectives. The dual state is kept.
func (s *SDCA[T, O, S]) SetRegularizer(reg regularizer.Regularizer) error {
	if reg == nil {
		return opterr.New(opterr.InvalidParameter, "SDCA.SetRegularizer", "regularizer is nil")
	}
	if err := reg.ConjugateGradient(s.v, s.w); err != nil {
		return err
	}
	s.regularizer = reg
	s.computeObjectives()
	return nil
}

// SetParameters replaces the parameters. The dual state is kept: a new λ
// rescales v so that it still equals Σ x_i α_i / (λn), and a new seed restarts
// the random generator.
func (s *SDCA[T, O, S]) SetParameters(params SDCAParameters) error {
	if err := checkRegularization("SDCA.SetParameters", params.Regularization); err != nil {
		return err
	}

	if params.Regularization != s.params.Regularization {
		floats.Scale(s.params.Regularization/params.Regularization, s.v.Values())
		solution.Constrain(s.v)
		s.normInvLambda = 1 / (params.Regularization * float64(s.examples.Size()))
		invariant(s.regularizer.ConjugateGradient(s.v, s.w))
	}
	if params.RandomSeed != s.params.RandomSeed {
		s.random = rng.New(params.RandomSeed)
	}
	s.params = params
	s.computeObjectives()
	return nil
}

// Parameters returns the optimizer configuration.
func (s *SDCA[T, O, S]) Parameters() SDCAParameters { return s.params }

// GetSolution returns the primal solution.
func (s *SDCA[T, O, S]) GetSolution() S { return s.w }

// GetSolutionInfo returns the objectives and epoch count.
func (s *SDCA[T, O, S]) GetSolutionInfo() SolutionInfo { return s.info }

func (s *SDCA[T, O, S]) step(i int) {
	lipschitz := s.norms[i] * s.normInvLambda
	if lipschitz < lipschitzTolerance {
		return
	}

	example := s.examples.Get(i)
	dual := s.dual(i)

	s.w.Predict(example.Input, s.prediction)
	for j, p := range s.prediction {
		s.prediction[j] = p/lipschitz + dual[j]
	}
	s.w.Outputs(example.Output, s.output)
	s.loss.ConjugateProx(1/lipschitz, s.prediction, s.output, s.proxed)

	for j := range s.delta {
		s.delta[j] = (dual[j] - s.proxed[j]) * s.normInvLambda
	}
	s.v.AddOuter(example.Input, s.delta)
	invariant(s.regularizer.ConjugateGradient(s.v, s.w))
	copy(dual, s.proxed)
}

func (s *SDCA[T, O, S]) computeObjectives() {
	primalSum, dualSum := 0.0, 0.0
	for i := 0; i < s.examples.Size(); i++ {
		example := s.examples.Get(i)
		s.w.Predict(example.Input, s.prediction)
		s.w.Outputs(example.Output, s.output)

		primalSum += s.loss.Value(s.prediction, s.output)
		dualSum += s.loss.Conjugate(s.dual(i), s.output)
	}

	n := float64(s.examples.Size())
	lambda := s.params.Regularization
	s.info.PrimalObjective = primalSum/n + lambda*s.regularizer.Value(s.w)
	s.info.DualObjective = -dualSum/n - lambda*s.regularizer.Conjugate(s.v)
}

func (s *SDCA[T, O, S]) dual(i int) []float64 {
	return s.duals[i*s.numOutputs : (i+1)*s.numOutputs]
}
