package loss_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/erm/internal/loss"
	"github.com/born-ml/erm/internal/opterr"
	"github.com/born-ml/erm/internal/search"
)

// conjugateDomain returns a bracket of the conjugate's domain for an output.
type conjugateDomain func(output float64) (float64, float64)

func bounded(lo, hi float64) conjugateDomain {
	return func(float64) (float64, float64) { return lo, hi }
}

// binaryDomain covers b with y·b ∈ [-width, 0].
func binaryDomain(width float64) conjugateDomain {
	return func(output float64) (float64, float64) { return 0, -output * width }
}

var losses = []struct {
	name   string
	loss   loss.Function
	domain conjugateDomain
	binary bool
}{
	{"Square", loss.NewSquareLoss(), bounded(-20, 20), false},
	{"Absolute", loss.NewAbsoluteLoss(), bounded(-1, 1), false},
	{"Huber", loss.NewHuberLoss(1), bounded(-1, 1), false},
	{"HuberNarrow", loss.NewHuberLoss(0.5), bounded(-1, 1), false},
	{"Hinge", loss.NewHingeLoss(), binaryDomain(1), true},
	{"SmoothedHinge", loss.NewSmoothedHingeLoss(1), binaryDomain(1), true},
	{"SquaredHinge", loss.NewSquaredHingeLoss(), binaryDomain(20), true},
	{"Logistic", loss.NewLogisticLoss(), binaryDomain(1), true},
}

var (
	predictions = []float64{-2.3, -0.4, 0.35, 1.7}
	outputs     = []float64{-1, 1}
)

func TestLoss_DerivativeMatchesFiniteDifference(t *testing.T) {
	const h = 1e-6
	for _, tc := range losses {
		t.Run(tc.name, func(t *testing.T) {
			for _, y := range outputs {
				for _, p := range predictions {
					numeric := (tc.loss.Value(p+h, y) - tc.loss.Value(p-h, y)) / (2 * h)
					assert.InDelta(t, numeric, tc.loss.Derivative(p, y), 1e-5, "p=%g y=%g", p, y)
				}
			}
		})
	}
}

func TestLoss_FenchelYoungEquality(t *testing.T) {
	for _, tc := range losses {
		t.Run(tc.name, func(t *testing.T) {
			for _, y := range outputs {
				for _, p := range predictions {
					v := tc.loss.Derivative(p, y)
					sum := tc.loss.Value(p, y) + tc.loss.Conjugate(v, y)
					assert.InDelta(t, p*v, sum, 1e-6, "p=%g y=%g", p, y)
				}
			}
		})
	}
}

func TestLoss_ConjugateProxIsOptimal(t *testing.T) {
	for _, tc := range losses {
		t.Run(tc.name, func(t *testing.T) {
			for _, y := range outputs {
				for _, theta := range []float64{0.1, 1, 5} {
					for _, z := range []float64{-1.5, -0.2, 0.7, 2} {
						objective := func(b float64) float64 {
							return theta*tc.loss.Conjugate(b, y) + 0.5*(b-z)*(b-z)
						}

						b := tc.loss.ConjugateProx(theta, z, y)
						require.False(t, math.IsInf(objective(b), 1), "prox left the domain")

						lo, hi := tc.domain(y)
						minimizer := search.NewGoldenSectionMinimizer(objective, lo, hi)
						minimizer.MinimizeToPrecision(1e-12)
						assert.LessOrEqual(t, objective(b), minimizer.MinUpperBound()+1e-7,
							"theta=%g z=%g y=%g", theta, z, y)
					}
				}
			}
		})
	}
}

func TestLoss_ConjugateOutsideDomain(t *testing.T) {
	assert.True(t, math.IsInf(loss.NewAbsoluteLoss().Conjugate(1.5, 1), 1))
	assert.True(t, math.IsInf(loss.NewHuberLoss(1).Conjugate(-2, 1), 1))
	assert.True(t, math.IsInf(loss.NewHingeLoss().Conjugate(0.5, 1), 1))
	assert.True(t, math.IsInf(loss.NewSmoothedHingeLoss(1).Conjugate(0.5, 1), 1))
	assert.False(t, math.IsInf(loss.NewSmoothedHingeLoss(1).Conjugate(0.5, -1), 0))
	assert.True(t, math.IsInf(loss.NewSquaredHingeLoss().Conjugate(0.1, 1), 1))
	assert.True(t, math.IsInf(loss.NewLogisticLoss().Conjugate(-1.5, 1), 1))
}

func TestLoss_Values(t *testing.T) {
	assert.Equal(t, 2.0, loss.NewSquareLoss().Value(3, 1))
	assert.Equal(t, 1.0, loss.NewSquareLoss().ConjugateProx(1, 3, 1))
	assert.Equal(t, 0.125, loss.NewHuberLoss(1).Value(1.5, 1))
	assert.Equal(t, 1.5, loss.NewHuberLoss(1).Value(3, 1))
	assert.Equal(t, 0.0, loss.NewHingeLoss().ConjugateProx(0.2, 0.5, 1))
	assert.InDelta(t, -0.7, loss.NewHingeLoss().ConjugateProx(0.2, -0.5, 1), 1e-15)
	assert.Equal(t, 0.125, loss.NewSmoothedHingeLoss(1).Value(0.5, 1))
	assert.Equal(t, 1.5, loss.NewSmoothedHingeLoss(1).Value(-1, 1))
	assert.Equal(t, 2.0, loss.NewSquaredHingeLoss().Value(1, -1))
	assert.InDelta(t, math.Ln2, loss.NewLogisticLoss().Value(0, 1), 1e-15)
	assert.Equal(t, 20.0, loss.NewLogisticLoss().Value(-20, 1))
	assert.InDelta(t, -math.Ln2, loss.NewLogisticLoss().Conjugate(-0.5, 1), 1e-12)
}

func TestLoss_Smoothness(t *testing.T) {
	assert.Equal(t, 1.0, loss.NewSquareLoss().Smoothness())
	assert.True(t, math.IsInf(loss.NewAbsoluteLoss().Smoothness(), 1))
	assert.Equal(t, 2.0, loss.NewHuberLoss(0.5).Smoothness())
	assert.True(t, math.IsInf(loss.NewHingeLoss().Smoothness(), 1))
	assert.Equal(t, 0.5, loss.NewSmoothedHingeLoss(2).Smoothness())
	assert.Equal(t, 1.0, loss.NewSquaredHingeLoss().Smoothness())
	assert.Equal(t, 0.25, loss.NewLogisticLoss().Smoothness())

	// zero values fall back to the defaults
	assert.Equal(t, 1.0, loss.HuberLoss{}.Smoothness())
	assert.Equal(t, 1.0, loss.SmoothedHingeLoss{}.Smoothness())
	assert.InDelta(t, loss.NewLogisticLoss().ConjugateProx(0.5, 0.3, 1),
		loss.LogisticLoss{}.ConjugateProx(0.5, 0.3, 1), 1e-15)
}

func TestLoss_VerifyOutput(t *testing.T) {
	for _, tc := range losses {
		t.Run(tc.name, func(t *testing.T) {
			assert.NoError(t, tc.loss.VerifyOutput(1))
			assert.NoError(t, tc.loss.VerifyOutput(-1))
			assert.ErrorIs(t, tc.loss.VerifyOutput(math.NaN()), opterr.ErrIncompatibleOutput)
			if tc.binary {
				assert.ErrorIs(t, tc.loss.VerifyOutput(0.5), opterr.ErrIncompatibleOutput)
				assert.ErrorIs(t, tc.loss.VerifyOutput(0), opterr.ErrIncompatibleOutput)
			} else {
				assert.NoError(t, tc.loss.VerifyOutput(0.5))
			}
		})
	}
}

func TestLogisticLoss_NewtonSettings(t *testing.T) {
	exact := loss.LogisticLoss{MaxNewtonSteps: 100, Tolerance: 1e-14}
	coarse := loss.LogisticLoss{MaxNewtonSteps: 1, Tolerance: 1e-6}

	for _, theta := range []float64{0.01, 1, 100} {
		b := exact.ConjugateProx(theta, 0.4, -1)
		assert.Greater(t, b, 0.0)
		assert.Less(t, b, 1.0)
		// optimality: θ·log((1 - b)/b) + (-b) - (-0.4) = 0 in the margin variable c = -b
		c := -b
		assert.InDelta(t, 0.0, c-(-0.4)+theta*math.Log((1+c)/(-c)), 1e-9)

		approx := coarse.ConjugateProx(theta, 0.4, -1)
		assert.Greater(t, approx, 0.0)
		assert.Less(t, approx, 1.0)
	}
}

func TestMultivariate(t *testing.T) {
	m := loss.NewMultivariate(loss.NewSquareLoss())
	prediction := []float64{1, 2}
	output := []float64{0, 4}

	assert.Equal(t, 2.5, m.Value(prediction, output))

	dst := make([]float64, 2)
	m.Derivative(prediction, output, dst)
	assert.Equal(t, []float64{1, -2}, dst)

	assert.Equal(t, 0.5+(2+8), m.Conjugate([]float64{1, 2}, output))

	m.ConjugateProx(1, []float64{2, 6}, output, dst)
	assert.Equal(t, []float64{1, 1}, dst)
	assert.Equal(t, 1.0, m.Smoothness())

	h := loss.NewMultivariate(loss.NewHingeLoss())
	assert.NoError(t, h.VerifyOutput([]float64{1, -1, 1}))
	assert.ErrorIs(t, h.VerifyOutput([]float64{1, 0}), opterr.ErrIncompatibleOutput)
}
