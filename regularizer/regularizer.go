// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package regularizer provides the convex penalties of the SDCA optimizer and
// the proximal operators they are built on.
//
//   - L2: ½‖w‖²
//   - ElasticNet: ½‖w‖² + Beta·‖w‖₁
//   - Max: ½‖w‖² + Beta·Σ_j ‖w_j‖∞ over the output columns
package regularizer

import "github.com/born-ml/erm/internal/regularizer"

// Regularizer is the contract every penalty implements.
type Regularizer = regularizer.Regularizer

// L2 is the squared Euclidean penalty.
type L2 = regularizer.L2

// ElasticNet adds an L1 term to L2.
type ElasticNet = regularizer.ElasticNet

// Max adds the per-column L∞ norms to L2.
type Max = regularizer.Max

// NewL2 creates an L2 penalty.
func NewL2() L2 { return regularizer.NewL2() }

// NewElasticNet creates an elastic net penalty.
func NewElasticNet(beta float64) ElasticNet { return regularizer.NewElasticNet(beta) }

// NewMax creates a max penalty.
func NewMax(beta float64) *Max { return regularizer.NewMax(beta) }

// L1Prox soft-thresholds every coordinate of v by beta, in place.
//
// Example:
//
//	v := []float64{1, 2, 3, -1, -2, -3, 0.5, -0.5}
//	regularizer.L1Prox(v, 1.0) // v = {0, 1, 2, 0, -1, -2, 0, 0}
func L1Prox(v []float64, beta float64) { regularizer.L1Prox(v, beta) }

// LInfinityProx clips the largest magnitudes of v so that the total removed
// mass equals beta, in place. scratch is reused when it is large enough.
//
// Example:
//
//	v := []float64{1, 2, 3, -1, -2, -3, 0.5, -0.5}
//	regularizer.LInfinityProx(v, nil, 2.0) // v = {1, 2, 2, -1, -2, -2, 0.5, -0.5}
func LInfinityProx(v, scratch []float64, beta float64) { regularizer.LInfinityProx(v, scratch, beta) }
