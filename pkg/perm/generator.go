package perm

// ConstrainedPermutations returns every permutation of length n, in lexicographic order, whose prefixes all hold the constraints.
// A constraint receives the prefix built so far (the last element being the one just placed) and reports whether the
// prefix may still be completed; returning false prunes every permutation sharing that prefix.
//
// Example:
//
//	// Permutations starting with 0
//	permutations := perm.ConstrainedPermutations(4, []func(prefix []int) bool{
//		func(prefix []int) bool {
//			return prefix[0] == 0
//		},
//	})
func ConstrainedPermutations(n int, constraints []func(prefix []int) bool) []Perm {
	permutations := make([]Perm, 0)
	constrainedPermutations(
		constraints,
		make([]bool, n),
		make([]int, 0, n),
		&permutations,
	)
	return permutations
}

// All returns the n! permutations of length n in lexicographic order
func All(n int) []Perm {
	return ConstrainedPermutations(n, nil)
}

func constrainedPermutations(
	constraints []func(prefix []int) bool,
	used []bool,
	prefix []int,
	permutations *[]Perm) {

	if len(prefix) == len(used) {
		*permutations = append(*permutations, MustNew(prefix...))
		return
	}

	for value := range len(used) {
		if used[value] {
			continue
		}

		prefix = append(prefix, value)
		constraintViolated := false
		for _, constraint := range constraints {
			if !constraint(prefix) {
				constraintViolated = true
				break
			}
		}

		if !constraintViolated {
			used[value] = true
			constrainedPermutations(constraints, used, prefix, permutations)
			used[value] = false
		}
		prefix = prefix[:len(prefix)-1]
	}
}
