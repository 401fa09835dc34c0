package rng_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/born-ml/erm/internal/rng"
)

func TestNew_SameSeedSameStream(t *testing.T) {
	a := rng.New("54321blastoff")
	b := rng.New("54321blastoff")

	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Uint64(), b.Uint64(), "draw %d", i)
	}
}

func TestNew_DifferentSeeds(t *testing.T) {
	a := rng.New("seed-a")
	b := rng.New("seed-b")

	same := 0
	for i := 0; i < 16; i++ {
		if a.Uint64() == b.Uint64() {
			same++
		}
	}
	assert.Less(t, same, 16)
}

func TestWords_EmptyUsesDefault(t *testing.T) {
	e1, e2 := rng.Words("")
	d1, d2 := rng.Words(rng.DefaultSeed)
	assert.Equal(t, d1, e1)
	assert.Equal(t, d2, e2)
}

func TestPermutation(t *testing.T) {
	perm := make([]int, 50)
	rng.Permutation(rng.New("perm"), perm)

	sorted := slices.Clone(perm)
	slices.Sort(sorted)
	for i, v := range sorted {
		assert.Equal(t, i, v)
	}

	again := make([]int, 50)
	rng.Permutation(rng.New("perm"), again)
	assert.Equal(t, perm, again)
}
