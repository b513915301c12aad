package perm

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPatternDetails(t *testing.T) {
	t.Run("Known patterns", func(t *testing.T) {
		assert.Equal(t, []PatternDetail{
			{Absent, Absent, 2, 1},
			{Absent, 0, 0, 2},
			{1, 0, 1, 1},
		}, MustNew(2, 0, 1).PatternDetails())

		assert.Equal(t, []PatternDetail{
			{Absent, Absent, 1, 3},
			{0, Absent, 2, 1},
			{Absent, 0, 0, 1},
			{0, 1, 1, 1},
		}, MustNew(1, 3, 0, 2).PatternDetails())

		assert.Empty(t, MustNew().PatternDetails())
	})

	t.Run("Matches nearest earlier values", func(t *testing.T) {
		for range 200 {
			//** Arrange
			perm := randomPerm(rand.Intn(12) + 1)

			//** Act
			details := perm.PatternDetails()

			//** Assert
			assert.Len(t, details, perm.Len())
			assert.Equal(t, PatternDetail{Absent, Absent, perm.At(0), perm.Len() - perm.At(0)}, details[0])
			for position, detail := range details {
				floor, ceiling := nearestEarlierValues(perm, position)
				assert.Equal(t, floor, detail.FloorPos, "floor of %d in %v", position, perm)
				assert.Equal(t, ceiling, detail.CeilingPos, "ceiling of %d in %v", position, perm)
				assert.GreaterOrEqual(t, detail.SpaceBelow, 0)
				assert.GreaterOrEqual(t, detail.SpaceAbove, 0)
			}
		}
	})
}

// Quadratic reference for the floor/ceiling positions
func nearestEarlierValues(perm Perm, position int) (floor, ceiling int) {
	floor, ceiling = Absent, Absent
	for i := range position {
		if perm.At(i) < perm.At(position) && (floor == Absent || perm.At(i) > perm.At(floor)) {
			floor = i
		} else if perm.At(i) > perm.At(position) && (ceiling == Absent || perm.At(i) < perm.At(ceiling)) {
			ceiling = i
		}
	}
	return floor, ceiling
}
