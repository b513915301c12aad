package perm

import "errors"

// ErrNotPermutation is returned whenever a value sequence is not a bijection on [0,len)
var ErrNotPermutation = errors.New("sequence is not a permutation")
