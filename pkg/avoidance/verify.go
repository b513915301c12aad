package avoidance

import (
	"fmt"

	"github.com/limaJavier/permuta/pkg/perm"
	"github.com/samber/lo"
)

// Verify cross-checks every level up to n independently of the builder: each member must avoid the basis
// according to the occurrence search, and each avoider found by exhaustive enumeration must be a member
func Verify(class *Class, n int) error {
	if n > class.MaxLength() {
		return fmt.Errorf("%w: requested %d, built up to %d", ErrNotBuilt, n, class.MaxLength())
	}

	for length := 0; length <= n; length++ {
		members := class.levels[length].perms()

		//** Soundness
		if offending, ok := lo.Find(members, func(member perm.Perm) bool {
			return !perm.Avoids(member, class.basis...)
		}); ok {
			return fmt.Errorf("%w: %v contains a basis pattern", ErrVerification, offending)
		}

		//** Completeness
		// A prefix containing a pattern cannot be completed into an avoider, so the enumeration is pruned there
		avoiders := perm.ConstrainedPermutations(length, []func(prefix []int) bool{
			func(prefix []int) bool {
				standardized, _ := perm.Standardize(prefix)
				return perm.Avoids(standardized, class.basis...)
			},
		})
		if missing := lo.Reject(avoiders, func(avoider perm.Perm, _ int) bool {
			return class.Contains(avoider)
		}); len(missing) > 0 {
			return fmt.Errorf("%w: %d permutations of length %d are missing, first %v", ErrVerification, len(missing), length, missing[0])
		}
		if len(avoiders) != len(members) {
			return fmt.Errorf("%w: expected %d permutations of length %d, found %d", ErrVerification, len(avoiders), length, len(members))
		}
	}

	return nil
}
