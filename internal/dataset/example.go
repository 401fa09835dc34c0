// Package dataset provides the read-only example containers consumed by the
// optimizers.
//
// A container is indexed randomly and never mutated while an optimizer holds it,
// so several optimizers may share one container side by side.
package dataset

import "slices"

// Example is a weighted (input, output) pair.
//
// Inputs are slices, so an Example built by NewExample is a view over the
// caller's storage. Use Clone for an owned copy; both behave identically in the
// optimizers.
type Example[I, O any] struct {
	Input  I
	Output O
	Weight float64
}

// NewExample creates an example with weight 1.
func NewExample[I, O any](input I, output O) Example[I, O] {
	return Example[I, O]{Input: input, Output: output, Weight: 1.0}
}

// NewWeightedExample creates an example with the given weight.
func NewWeightedExample[I, O any](input I, output O, weight float64) Example[I, O] {
	return Example[I, O]{Input: input, Output: output, Weight: weight}
}

// Clone returns a copy that owns its input (and output, if it is a slice).
func Clone[T any, O any](e Example[[]T, O]) Example[[]T, O] {
	out := e
	out.Input = slices.Clone(e.Input)
	if row, ok := any(e.Output).([]T); ok {
		out.Output = any(slices.Clone(row)).(O)
	}
	return out
}

// Container is a randomly indexable, read-only collection.
type Container[E any] interface {
	// Size returns the number of elements.
	Size() int

	// Get returns the element at index i, 0 <= i < Size().
	Get(i int) E
}

// Examples is a slice-backed Container of examples.
type Examples[I, O any] struct {
	examples []Example[I, O]
}

// FromSlice wraps a slice of examples. The slice is not copied and must not be
// modified while an optimizer uses the container.
func FromSlice[I, O any](examples []Example[I, O]) *Examples[I, O] {
	return &Examples[I, O]{examples: examples}
}

// Size returns the number of examples.
func (e *Examples[I, O]) Size() int { return len(e.examples) }

// Get returns the example at index i.
func (e *Examples[I, O]) Get(i int) Example[I, O] { return e.examples[i] }

// Set is the container type accepted by the optimizers: inputs are rows of T,
// outputs are O (T for scalar outputs, []T for vector outputs).
type Set[T, O any] = Container[Example[[]T, O]]
