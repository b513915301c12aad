package perm

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAll(t *testing.T) {
	factorials := []int{1, 1, 2, 6, 24, 120, 720}
	for n, factorial := range factorials {
		permutations := All(n)
		assert.Len(t, permutations, factorial)

		// Lexicographic order implies uniqueness
		for i := 1; i < len(permutations); i++ {
			assert.Equal(t, -1, slices.Compare(permutations[i-1].Values(), permutations[i].Values()))
		}
	}
	assert.True(t, All(0)[0].Equal(MustNew()))
}

func TestConstrainedPermutations(t *testing.T) {
	//** Arrange
	startsWithZero := func(prefix []int) bool { return prefix[0] == 0 }
	noDescent := func(prefix []int) bool {
		last := len(prefix) - 1
		return last == 0 || prefix[last-1] < prefix[last]
	}

	//** Act
	startingWithZero := ConstrainedPermutations(4, []func(prefix []int) bool{startsWithZero})
	increasing := ConstrainedPermutations(5, []func(prefix []int) bool{noDescent})

	//** Assert
	assert.Len(t, startingWithZero, 6)
	for _, perm := range startingWithZero {
		assert.Equal(t, 0, perm.At(0))
	}
	assert.Len(t, increasing, 1)
	assert.True(t, increasing[0].Equal(MustNew(0, 1, 2, 3, 4)))
}
