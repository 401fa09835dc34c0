// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package solution provides the trainable parameter blocks of the optimizers.
//
// VectorSolution predicts one output, MatrixSolution several. Both come in a
// biased form, whose bias behaves as an always-on input feature, and an
// unbiased form. MaskedMatrixSolution holds chosen weights at frozen values.
//
// Example:
//
//	w := solution.NewBiasedVectorSolution[float64]()
//	// ... train with optim.NewSDCA(examples, w, ...)
//	fmt.Println(w.GetVector(), w.GetBias(), w.Density())
package solution

import "github.com/born-ml/erm/internal/solution"

// Element is the set of input element types a solution accepts.
type Element = solution.Element

// Parameters is the coordinate view of a solution used by regularizers.
type Parameters = solution.Parameters

// Solution is the algebra the optimizers need from a parameter block.
type Solution[T Element, O any, S any] = solution.Solution[T, O, S]

// Scaled is a solution term multiplied by a scalar.
type Scaled[S any] = solution.Scaled[S]

// VectorSolution is a linear predictor with one output.
type VectorSolution[T Element] = solution.VectorSolution[T]

// MatrixSolution is a linear predictor with several outputs.
type MatrixSolution[T Element] = solution.MatrixSolution[T]

// MaskedMatrixSolution is a MatrixSolution whose masked weights are held at
// frozen values.
type MaskedMatrixSolution[T Element] = solution.MaskedMatrixSolution[T]

// MaskParameters pins part of a MaskedMatrixSolution.
type MaskParameters = solution.MaskParameters

// Constrained is implemented by parameter blocks that pin some coordinates.
type Constrained = solution.Constrained

// Scale creates the term a·s.
func Scale[S any](s S, a float64) Scaled[S] { return solution.Scale(s, a) }

// NewVectorSolution creates an unsized vector solution.
func NewVectorSolution[T Element](biased bool) *VectorSolution[T] {
	return solution.NewVectorSolution[T](biased)
}

// NewBiasedVectorSolution creates an unsized vector solution with a bias.
func NewBiasedVectorSolution[T Element]() *VectorSolution[T] { return solution.NewBiasedVectorSolution[T]() }

// NewUnbiasedVectorSolution creates an unsized vector solution without a bias.
func NewUnbiasedVectorSolution[T Element]() *VectorSolution[T] {
	return solution.NewUnbiasedVectorSolution[T]()
}

// NewMatrixSolution creates an unsized matrix solution.
func NewMatrixSolution[T Element](biased bool) *MatrixSolution[T] {
	return solution.NewMatrixSolution[T](biased)
}

// NewBiasedMatrixSolution creates an unsized matrix solution with a bias row.
func NewBiasedMatrixSolution[T Element]() *MatrixSolution[T] { return solution.NewBiasedMatrixSolution[T]() }

// NewUnbiasedMatrixSolution creates an unsized matrix solution without a bias row.
func NewUnbiasedMatrixSolution[T Element]() *MatrixSolution[T] {
	return solution.NewUnbiasedMatrixSolution[T]()
}

// NewMaskedMatrixSolution creates an unsized masked matrix solution without a mask.
func NewMaskedMatrixSolution[T Element](biased bool) *MaskedMatrixSolution[T] {
	return solution.NewMaskedMatrixSolution[T](biased)
}

// NewBiasedMaskedMatrixSolution creates an unsized masked matrix solution with a bias row.
func NewBiasedMaskedMatrixSolution[T Element]() *MaskedMatrixSolution[T] {
	return solution.NewBiasedMaskedMatrixSolution[T]()
}

// NewUnbiasedMaskedMatrixSolution creates an unsized masked matrix solution without a bias row.
func NewUnbiasedMaskedMatrixSolution[T Element]() *MaskedMatrixSolution[T] {
	return solution.NewUnbiasedMaskedMatrixSolution[T]()
}

// Constrain re-applies the constraints of p, if it has any.
func Constrain(p Parameters) { solution.Constrain(p) }

// Norm1 returns the sum of absolute coordinates of p.
func Norm1(p Parameters) float64 { return solution.Norm1(p) }

// Norm2Squared returns the sum of squared coordinates of p.
func Norm2Squared(p Parameters) float64 { return solution.Norm2Squared(p) }
