package regularizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"

	"github.com/born-ml/erm/internal/opterr"
	"github.com/born-ml/erm/internal/regularizer"
	"github.com/born-ml/erm/internal/rng"
	"github.com/born-ml/erm/internal/solution"
)

func TestL1Prox(t *testing.T) {
	v := []float64{1, 2, 3, -1, -2, -3, 0.5, -0.5}
	regularizer.L1Prox(v, 1.0)
	assert.InDeltaSlice(t, []float64{0, 1, 2, 0, -1, -2, 0, 0}, v, 1e-9)
}

func TestLInfinityProx(t *testing.T) {
	v := []float64{1, 2, 3, -1, -2, -3, 0.5, -0.5}
	regularizer.LInfinityProx(v, nil, 2.0)
	assert.InDeltaSlice(t, []float64{1, 2, 2, -1, -2, -2, 0.5, -0.5}, v, 1e-9)
}

func TestLInfinityProx_Cases(t *testing.T) {
	tests := []struct {
		name string
		v    []float64
		beta float64
		want []float64
	}{
		{"budget exceeds norm", []float64{1, -1, 0.5}, 2.5, []float64{0, 0, 0}},
		{"budget equals norm", []float64{1, -1}, 2, []float64{0, 0}},
		{"single largest", []float64{4, 1, -2}, 1, []float64{3, 1, -2}},
		{"spread over ties", []float64{-3, 3, 1}, 3, []float64{-1.5, 1.5, 1}},
		{"zero budget", []float64{-3, 3, 1}, 0, []float64{-3, 3, 1}},
		{"empty", nil, 1, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scratch := make([]float64, 1)
			regularizer.LInfinityProx(tt.v, scratch, tt.beta)
			assert.InDeltaSlice(t, tt.want, tt.v, 1e-12)
		})
	}
}

func TestLInfinityProx_ShrinksByBudget(t *testing.T) {
	r := rng.New("linf")
	scratch := make([]float64, 64)
	for i := 0; i < 100; i++ {
		v := make([]float64, 1+r.IntN(40))
		for j := range v {
			v[j] = 3 * r.NormFloat64()
		}
		beta := r.Float64() * floats.Norm(v, 1)
		original := append([]float64(nil), v...)

		regularizer.LInfinityProx(v, scratch, beta)

		// the clipped amount is exactly beta when ‖v‖₁ > β
		diff := make([]float64, len(v))
		floats.SubTo(diff, original, v)
		assert.InDelta(t, beta, floats.Norm(diff, 1), 1e-9)
	}
}

type penalty struct {
	name string
	reg  regularizer.Regularizer
}

func penalties() []penalty {
	return []penalty{
		{"L2", regularizer.NewL2()},
		{"ElasticNet", regularizer.NewElasticNet(0.3)},
		{"Max", regularizer.NewMax(0.7)},
	}
}

// randomParameters returns a 5×3 parameter block with normal coordinates.
func randomParameters(t *testing.T, seed string) *solution.MatrixSolution[float64] {
	t.Helper()
	p := solution.NewBiasedMatrixSolution[float64]()
	require.NoError(t, p.Resize(make([]float64, 4), make([]float64, 3)))
	r := rng.New(seed)
	values := p.Values()
	for i := range values {
		values[i] = r.NormFloat64()
	}
	return p
}

func TestRegularizer_FenchelEquality(t *testing.T) {
	for _, tc := range penalties() {
		t.Run(tc.name, func(t *testing.T) {
			v := randomParameters(t, "v")
			w := v.Empty()
			require.NoError(t, w.Resize(make([]float64, 4), make([]float64, 3)))

			require.NoError(t, tc.reg.ConjugateGradient(v, w))

			inner := floats.Dot(v.Values(), w.Values())
			assert.InDelta(t, inner-tc.reg.Value(w), tc.reg.Conjugate(v), 1e-9)
		})
	}
}

func TestRegularizer_FenchelYoungInequality(t *testing.T) {
	for _, tc := range penalties() {
		t.Run(tc.name, func(t *testing.T) {
			v := randomParameters(t, "v")
			for i := 0; i < 20; i++ {
				u := randomParameters(t, string(rune('a'+i)))
				inner := floats.Dot(u.Values(), v.Values())
				assert.GreaterOrEqual(t, tc.reg.Value(u)+tc.reg.Conjugate(v), inner-1e-12)
			}
		})
	}
}

func TestRegularizer_Values(t *testing.T) {
	p := solution.NewUnbiasedMatrixSolution[float64]()
	require.NoError(t, p.Resize([]float64{0, 0}, []float64{0, 0}))
	copy(p.Values(), []float64{1, -2, 3, 0.5})

	assert.InDelta(t, 7.125, regularizer.NewL2().Value(p), 1e-12)
	assert.InDelta(t, 7.125+6.5, regularizer.NewElasticNet(1).Value(p), 1e-12)
	// column maxima are 3 and 2
	assert.InDelta(t, 7.125+5*0.5, regularizer.NewMax(0.5).Value(p), 1e-12)
	assert.InDelta(t, 0.5*(0+1+4+0), regularizer.NewElasticNet(1).Conjugate(p), 1e-12)
}

func TestElasticNet_ZeroBetaIsL2(t *testing.T) {
	v := randomParameters(t, "x")
	a, b := v.Empty(), v.Empty()
	require.NoError(t, a.CopyFrom(v))
	require.NoError(t, b.CopyFrom(v))

	require.NoError(t, regularizer.NewL2().ConjugateGradient(v, a))
	require.NoError(t, regularizer.NewElasticNet(0).ConjugateGradient(v, b))
	assert.Equal(t, a.Values(), b.Values())
	assert.Equal(t, regularizer.NewL2().Conjugate(v), regularizer.NewElasticNet(0).Conjugate(v))
}

func TestRegularizer_IncompatibleDimensions(t *testing.T) {
	v := randomParameters(t, "v")
	w := solution.NewBiasedVectorSolution[float64]()
	require.NoError(t, w.Resize(make([]float64, 4), 0))

	for _, tc := range penalties() {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.reg.ConjugateGradient(v, w)
			assert.ErrorIs(t, err, opterr.ErrIncompatibleDimensions)
		})
	}
}
