package avoidance

import (
	"errors"
	"fmt"

	"github.com/limaJavier/permuta/pkg/perm"
)

var (
	ErrEmptyBasis     = errors.New("basis must contain at least one pattern")
	ErrEmptyPattern   = errors.New("basis patterns must not be empty")
	ErrNegativeLength = errors.New("length must not be negative")
	ErrNotBuilt       = errors.New("length has not been built yet")
	ErrVerification   = errors.New("class verification failed")
)

// InvariantError signals that the cache levels are inconsistent: a sub-permutation that must have been
// built (with its extensions still available) is missing. It is never recoverable.
type InvariantError struct {
	Perm   perm.Perm // Sub-permutation looked up
	Reason string
}

func (err InvariantError) Error() string {
	return fmt.Sprintf("cache invariant violated for %v: %v", err.Perm, err.Reason)
}
