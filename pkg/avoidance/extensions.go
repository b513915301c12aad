package avoidance

import (
	"github.com/limaJavier/permuta/pkg/perm"
	"github.com/samber/lo"
)

// candidateValues infers which values may extend current from the extension sets of its sub-permutations.
//
// Removing one of the last maxPatternLen positions of current yields a permutation of the previous level
// whose extensions are known. A value k legal for that sub-permutation corresponds to k (if k <= removed
// value) and k+1 (if k >= removed value) once the removed element is put back, so the candidates are the
// intersection of these shifted sets over all probed positions.
func (class *Class) candidateValues(current perm.Perm, previous *cacheLevel) ([]int, error) {
	if previous == nil { // Only the empty permutation has no previous level
		return []int{0}, nil
	}

	var values []int
	length := current.Len()
	for position := max(0, length-class.maxPatternLen); position < length; position++ {
		removed := current.At(position)
		subPerm := current.RemoveAt(position)

		entry, ok := previous.lookup(subPerm)
		if !ok {
			return nil, InvariantError{Perm: subPerm, Reason: "sub-permutation is missing from the previous level"}
		} else if entry.state != extensionsComputed {
			return nil, InvariantError{Perm: subPerm, Reason: "extensions of the sub-permutation are not available"}
		}

		potentialValues := make([]int, 0, len(entry.extensions)+1)
		for _, k := range entry.extensions {
			if k <= removed {
				potentialValues = append(potentialValues, k)
			}
			if k >= removed {
				potentialValues = append(potentialValues, k+1)
			}
		}

		if position == max(0, length-class.maxPatternLen) {
			values = potentialValues
		} else {
			values = lo.Intersect(values, potentialValues)
		}

		if len(values) == 0 {
			break
		}
	}

	return values, nil
}

// extend computes the extension set of entry and returns the admitted permutations of the next length.
// Only entry is written, so distinct entries may be extended concurrently.
func (class *Class) extend(entry *cacheEntry, previous *cacheLevel) ([]perm.Perm, error) {
	values, err := class.candidateValues(entry.perm, previous)
	if err != nil {
		return nil, err
	}

	admitted := make([]perm.Perm, 0, len(values))
	entry.extensions = make([]int, 0, len(values))
	for _, value := range values {
		extended := entry.perm.Extend(value)

		// Any occurrence of a basis pattern would be visible in one of the probed sub-permutations unless it
		// covers the whole permutation, which is only possible when the lengths are equal
		if extended.Len() <= class.maxPatternLen && lo.ContainsBy(class.basis, extended.Equal) {
			continue
		}

		admitted = append(admitted, extended)
		entry.extensions = append(entry.extensions, value)
	}
	entry.state = extensionsComputed

	return admitted, nil
}
