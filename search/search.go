// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package search provides resumable one-dimensional searches over a scalar
// function, used to calibrate hyperparameters.
//
//   - BinarySearch: bisection towards a target interval of values
//   - ExponentialSearch: brackets a target interval from a guessed argument
//   - GoldenSectionSearch / GoldenSectionMinimizer: optimize a quasiconvex function
//
// Example:
//
//	es, _ := search.NewExponentialSearch(f, search.ExponentialSearchParameters{
//	    TargetInterval: search.NewInterval(0.45, 0.50),
//	})
//	for !es.IsSuccessful() {
//	    es.Update(1)
//	}
//	bs, _ := search.NewBinarySearch(f, search.BinarySearchParameters{
//	    TargetInterval:          search.NewInterval(0.45, 0.50),
//	    SearchInterval:          es.BoundingSearchInterval(),
//	    UseSearchIntervalValues: true,
//	    SearchIntervalValues:    es.BoundingSearchIntervalValues(),
//	})
package search

import "github.com/born-ml/erm/internal/search"

// Function is a scalar function of one argument.
type Function = search.Function

// Interval is a closed real interval.
type Interval = search.Interval

// NewInterval creates the interval spanned by two boundaries in any order.
func NewInterval(boundary1, boundary2 float64) Interval { return search.NewInterval(boundary1, boundary2) }

// Point creates the interval [v, v].
func Point(v float64) Interval { return search.Point(v) }

// BinarySearch looks for an argument whose value lies in a target interval.
type BinarySearch = search.BinarySearch

// BinarySearchParameters contains configuration for BinarySearch.
type BinarySearchParameters = search.BinarySearchParameters

// NewBinarySearch creates a binary search.
func NewBinarySearch(f Function, parameters BinarySearchParameters) (*BinarySearch, error) {
	return search.NewBinarySearch(f, parameters)
}

// ExponentialSearch brackets a target interval of values.
type ExponentialSearch = search.ExponentialSearch

// ExponentialSearchParameters contains configuration for ExponentialSearch.
type ExponentialSearchParameters = search.ExponentialSearchParameters

// NewExponentialSearch creates an exponential search.
func NewExponentialSearch(f Function, parameters ExponentialSearchParameters) (*ExponentialSearch, error) {
	return search.NewExponentialSearch(f, parameters)
}

// Objective selects minimization or maximization.
type Objective = search.Objective

// Objectives.
const (
	Minimize = search.Minimize
	Maximize = search.Maximize
)

// GoldenSectionSearch optimizes a quasiconvex function on an interval.
type GoldenSectionSearch = search.GoldenSectionSearch

// GoldenSectionMinimizer is the minimizing form of GoldenSectionSearch.
type GoldenSectionMinimizer = search.GoldenSectionMinimizer

// NewGoldenSectionSearch creates a golden section search.
func NewGoldenSectionSearch(f Function, boundary1, boundary2 float64, objective Objective) *GoldenSectionSearch {
	return search.NewGoldenSectionSearch(f, boundary1, boundary2, objective)
}

// NewGoldenSectionMinimizer creates a golden section minimizer.
func NewGoldenSectionMinimizer(f Function, boundary1, boundary2 float64) *GoldenSectionMinimizer {
	return search.NewGoldenSectionMinimizer(f, boundary1, boundary2)
}
