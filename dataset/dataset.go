// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package dataset provides the read-only example containers consumed by the
// optimizers, adapters over gonum matrices and synthetic problem generators.
//
// Example:
//
//	inputs := mat.NewDense(3, 2, []float64{1, 2, 3, 4, 5, 6})
//	examples, err := dataset.NewMatrixExamples(inputs, []float64{1, -1, 1}, nil)
package dataset

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/erm/internal/dataset"
)

// Example is a weighted (input, output) pair.
type Example[I, O any] = dataset.Example[I, O]

// Container is a randomly indexable, read-only collection.
type Container[E any] = dataset.Container[E]

// Set is the container type the optimizers train on.
type Set[T, O any] = dataset.Set[T, O]

// Examples is a slice-backed Container.
type Examples[I, O any] = dataset.Examples[I, O]

// MatrixExamples views the rows of a matrix as examples with scalar outputs.
type MatrixExamples = dataset.MatrixExamples

// MatrixRowExamples views the rows of two matrices as examples with row outputs.
type MatrixRowExamples = dataset.MatrixRowExamples

// Number is the set of element types the generators produce.
type Number = dataset.Number

// NewExample creates an example with weight 1.
func NewExample[I, O any](input I, output O) Example[I, O] { return dataset.NewExample(input, output) }

// NewWeightedExample creates an example with the given weight.
func NewWeightedExample[I, O any](input I, output O, weight float64) Example[I, O] {
	return dataset.NewWeightedExample(input, output, weight)
}

// Clone returns a copy of e that owns its storage.
func Clone[T any, O any](e Example[[]T, O]) Example[[]T, O] { return dataset.Clone(e) }

// FromSlice wraps a slice of examples without copying it.
func FromSlice[I, O any](examples []Example[I, O]) *Examples[I, O] { return dataset.FromSlice(examples) }

// NewMatrixExamples creates examples from the rows of inputs. A nil weights
// slice gives every example weight 1.
func NewMatrixExamples(inputs *mat.Dense, outputs, weights []float64) (*MatrixExamples, error) {
	return dataset.NewMatrixExamples(inputs, outputs, weights)
}

// NewMatrixRowExamples creates examples from the rows of inputs and outputs.
func NewMatrixRowExamples(inputs, outputs *mat.Dense, weights []float64) (*MatrixRowExamples, error) {
	return dataset.NewMatrixRowExamples(inputs, outputs, weights)
}

// RandomScalar builds n random examples with constantFeatures trailing ones and
// outputs in {-1, +1}.
func RandomScalar[T Number](r *rand.Rand, n, d, constantFeatures int) *Examples[[]T, T] {
	return dataset.RandomScalar[T](r, n, d, constantFeatures)
}

// RandomVector is RandomScalar with numOutputs outputs per example.
func RandomVector[T Number](r *rand.Rand, n, d, constantFeatures, numOutputs int) *Examples[[]T, []T] {
	return dataset.RandomVector[T](r, n, d, constantFeatures, numOutputs)
}

// LinearRegression builds a noisy linear regression problem and returns it with
// its generating weights and bias.
func LinearRegression(r *rand.Rand, n, d int, noise float64) (*Examples[[]float64, float64], []float64, float64) {
	return dataset.LinearRegression(r, n, d, noise)
}

// LinearClassification builds a linearly separable problem with the given margin
// and returns it with its unit normal.
func LinearClassification(r *rand.Rand, n, d int, margin float64) (*Examples[[]float64, float64], []float64) {
	return dataset.LinearClassification(r, n, d, margin)
}
