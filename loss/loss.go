// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package loss provides the convex loss functions of the optimizers.
//
// Regression losses: SquareLoss, AbsoluteLoss, HuberLoss.
// Classification losses (outputs in {-1, +1}): HingeLoss, SmoothedHingeLoss,
// SquaredHingeLoss, LogisticLoss.
//
// Every loss exposes its value, derivative, Fenchel conjugate and the proximal
// operator of the conjugate used by SDCA:
//
//	l := loss.NewHuberLoss(0.5)
//	l.Value(0.3, 1.0)
//	l.ConjugateProx(2.0, 0.1, 1.0)
package loss

import "github.com/born-ml/erm/internal/loss"

// Function is the contract every scalar loss implements.
type Function = loss.Function

// Multivariate applies a scalar loss to every output column.
type Multivariate = loss.Multivariate

// NewMultivariate wraps a scalar loss for matrix solutions.
func NewMultivariate(l Function) Multivariate { return loss.NewMultivariate(l) }

// Regression losses

// SquareLoss is ½(p - y)².
type SquareLoss = loss.SquareLoss

// AbsoluteLoss is |p - y|.
type AbsoluteLoss = loss.AbsoluteLoss

// HuberLoss is quadratic within Gamma of the output and linear beyond.
type HuberLoss = loss.HuberLoss

// DefaultHuberGamma is the default Huber width.
const DefaultHuberGamma = loss.DefaultHuberGamma

// NewSquareLoss creates a square loss.
func NewSquareLoss() SquareLoss { return loss.NewSquareLoss() }

// NewAbsoluteLoss creates an absolute loss.
func NewAbsoluteLoss() AbsoluteLoss { return loss.NewAbsoluteLoss() }

// NewHuberLoss creates a Huber loss of the given width.
func NewHuberLoss(gamma float64) HuberLoss { return loss.NewHuberLoss(gamma) }

// Classification losses

// HingeLoss is max(0, 1 - p·y).
type HingeLoss = loss.HingeLoss

// SmoothedHingeLoss is the hinge loss with a quadratic kink of width Gamma.
type SmoothedHingeLoss = loss.SmoothedHingeLoss

// SquaredHingeLoss is ½max(0, 1 - p·y)².
type SquaredHingeLoss = loss.SquaredHingeLoss

// LogisticLoss is log(1 + exp(-p·y)).
type LogisticLoss = loss.LogisticLoss

// DefaultSmoothedHingeGamma is the default smoothing width.
const DefaultSmoothedHingeGamma = loss.DefaultSmoothedHingeGamma

// Logistic loss Newton defaults.
const (
	DefaultLogisticMaxNewtonSteps = loss.DefaultLogisticMaxNewtonSteps
	DefaultLogisticTolerance      = loss.DefaultLogisticTolerance
)

// NewHingeLoss creates a hinge loss.
func NewHingeLoss() HingeLoss { return loss.NewHingeLoss() }

// NewSmoothedHingeLoss creates a smoothed hinge loss of the given width.
func NewSmoothedHingeLoss(gamma float64) SmoothedHingeLoss { return loss.NewSmoothedHingeLoss(gamma) }

// NewSquaredHingeLoss creates a squared hinge loss.
func NewSquaredHingeLoss() SquaredHingeLoss { return loss.NewSquaredHingeLoss() }

// NewLogisticLoss creates a logistic loss with the default Newton settings.
func NewLogisticLoss() LogisticLoss { return loss.NewLogisticLoss() }
