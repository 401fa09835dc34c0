package dataset

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
)

// Number is the set of element types the synthetic generators produce.
type Number interface {
	~float32 | ~float64 | ~int | ~int32 | ~int64
}

// randomScale widens the normal draws so integer element types are not
// dominated by zeros after truncation.
const randomScale = 3.0

// RandomScalar builds n examples with d random features followed by
// constantFeatures features equal to 1, and outputs in {-1, +1}.
//
// Per example the generator draws d features, then one output. RandomVector with
// one output consumes the generator identically, so both produce the same
// problem from the same seed.
func RandomScalar[T Number](r *rand.Rand, n, d, constantFeatures int) *Examples[[]T, T] {
	examples := make([]Example[[]T, T], n)
	for i := range examples {
		input := randomInput[T](r, d, constantFeatures)
		examples[i] = NewExample(input, randomSign[T](r))
	}
	return FromSlice(examples)
}

// RandomVector is RandomScalar with numOutputs outputs per example.
func RandomVector[T Number](r *rand.Rand, n, d, constantFeatures, numOutputs int) *Examples[[]T, []T] {
	examples := make([]Example[[]T, []T], n)
	for i := range examples {
		input := randomInput[T](r, d, constantFeatures)
		output := make([]T, numOutputs)
		for j := range output {
			output[j] = randomSign[T](r)
		}
		examples[i] = NewExample(input, output)
	}
	return FromSlice(examples)
}

// LinearRegression draws a random weight vector w and bias b and builds n
// examples with x ~ N(0, 1) and y = x·w + b + noise·N(0, 1).
//
// Returns the examples together with the generating weights and bias.
func LinearRegression(r *rand.Rand, n, d int, noise float64) (*Examples[[]float64, float64], []float64, float64) {
	weights := normalSlice(r, d)
	bias := r.NormFloat64()

	examples := make([]Example[[]float64, float64], n)
	for i := range examples {
		input := normalSlice(r, d)
		output := floats.Dot(input, weights) + bias + noise*r.NormFloat64()
		examples[i] = NewExample(input, output)
	}
	return FromSlice(examples), weights, bias
}

// LinearClassification draws a random separating hyperplane and builds n
// examples labeled by the side they fall on. Points closer to the hyperplane
// than margin are pushed away from it, so the data is separable with that margin.
func LinearClassification(r *rand.Rand, n, d int, margin float64) (*Examples[[]float64, float64], []float64) {
	weights := normalSlice(r, d)
	floats.Scale(1/floats.Norm(weights, 2), weights)

	examples := make([]Example[[]float64, float64], n)
	for i := range examples {
		input := normalSlice(r, d)
		score := floats.Dot(input, weights)

		label := 1.0
		if score < 0 {
			label = -1.0
		}
		if label*score < margin {
			floats.AddScaled(input, label*margin-score, weights)
		}
		examples[i] = NewExample(input, label)
	}
	return FromSlice(examples), weights
}

func randomInput[T Number](r *rand.Rand, d, constantFeatures int) []T {
	input := make([]T, d+constantFeatures)
	for j := 0; j < d; j++ {
		input[j] = T(randomScale * r.NormFloat64())
	}
	for j := d; j < len(input); j++ {
		input[j] = 1
	}
	return input
}

func randomSign[T Number](r *rand.Rand) T {
	if r.Float64() < 0.5 {
		return -1
	}
	return 1
}

func normalSlice(r *rand.Rand, n int) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = r.NormFloat64()
	}
	return s
}
