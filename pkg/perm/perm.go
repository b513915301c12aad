package perm

import (
	"cmp"
	"encoding/binary"
	"fmt"
	"log"
	"slices"
	"strconv"
	"strings"
)

// Perm is an immutable permutation of the integers 0..n-1. Operations that grow or shrink a
// permutation return a new value and never touch the receiver.
type Perm struct {
	values []int
}

// New builds a permutation after verifying that values is a bijection on [0,len(values))
func New(values ...int) (Perm, error) {
	seen := make([]bool, len(values))
	for position, value := range values {
		if value < 0 || value >= len(values) {
			return Perm{}, fmt.Errorf("%w: value %d at position %d is outside [0,%d)", ErrNotPermutation, value, position, len(values))
		} else if seen[value] {
			return Perm{}, fmt.Errorf("%w: value %d is repeated", ErrNotPermutation, value)
		}
		seen[value] = true
	}
	return Perm{values: slices.Clone(values)}, nil
}

// MustNew is like New but panics on invalid input; meant for literals and tests
func MustNew(values ...int) Perm {
	perm, err := New(values...)
	if err != nil {
		log.Panicf("cannot build permutation: %v", err)
	}
	return perm
}

// FromString parses compact one-line notation such as "0231" (lengths up to 10) or a comma
// separated list such as "0,2,3,1"
func FromString(str string) (Perm, error) {
	str = strings.TrimSpace(str)
	str = strings.Trim(str, "[]()")
	if str == "" {
		return Perm{}, nil
	}

	var fields []string
	if strings.ContainsAny(str, ", ") {
		fields = strings.FieldsFunc(str, func(r rune) bool { return r == ',' || r == ' ' })
	} else {
		fields = strings.Split(str, "")
	}

	values := make([]int, 0, len(fields))
	for _, field := range fields {
		value, err := strconv.Atoi(field)
		if err != nil {
			return Perm{}, fmt.Errorf("%w: invalid value %q", ErrNotPermutation, field)
		}
		values = append(values, value)
	}
	return New(values...)
}

// Standardize returns the permutation order-isomorphic to a sequence of distinct integers
func Standardize(sequence []int) (Perm, error) {
	order := make([]int, len(sequence))
	for i := range order {
		order[i] = i
	}
	slices.SortFunc(order, func(a, b int) int { return cmp.Compare(sequence[a], sequence[b]) })

	values := make([]int, len(sequence))
	for rank, position := range order {
		if rank > 0 && sequence[order[rank-1]] == sequence[position] {
			return Perm{}, fmt.Errorf("%w: value %d is repeated", ErrNotPermutation, sequence[position])
		}
		values[position] = rank
	}
	return Perm{values: values}, nil
}

func (perm Perm) Len() int {
	return len(perm.values)
}

func (perm Perm) At(position int) int {
	return perm.values[position]
}

// Values returns a copy of the underlying sequence
func (perm Perm) Values() []int {
	return slices.Clone(perm.values)
}

func (perm Perm) Equal(other Perm) bool {
	return slices.Equal(perm.values, other.values)
}

// Key returns an identity usable as a map key; two permutations share a key if and only if they are equal
func (perm Perm) Key() string {
	buffer := make([]byte, 0, 4*len(perm.values))
	for _, value := range perm.values {
		buffer = binary.BigEndian.AppendUint32(buffer, uint32(value))
	}
	return string(buffer)
}

func (perm Perm) String() string {
	var builder strings.Builder
	builder.WriteByte('[')
	for i, value := range perm.values {
		if i > 0 {
			builder.WriteByte(',')
		}
		builder.WriteString(strconv.Itoa(value))
	}
	builder.WriteByte(']')
	return builder.String()
}

// Extend increments every value greater than or equal to value and appends value at the end,
// producing a permutation of length n+1
func (perm Perm) Extend(value int) Perm {
	if value < 0 || value > len(perm.values) {
		log.Panicf("cannot extend permutation of length %d with value %d", len(perm.values), value)
	}

	values := make([]int, len(perm.values)+1)
	for i, current := range perm.values {
		if current >= value {
			current++
		}
		values[i] = current
	}
	values[len(perm.values)] = value
	return Perm{values: values}
}

// RemoveAt deletes the given position and decrements every value greater than the deleted one,
// producing a permutation of length n-1
func (perm Perm) RemoveAt(position int) Perm {
	if position < 0 || position >= len(perm.values) {
		log.Panicf("cannot remove position %d from permutation of length %d", position, len(perm.values))
	}

	removed := perm.values[position]
	values := make([]int, 0, len(perm.values)-1)
	for i, current := range perm.values {
		if i == position {
			continue
		} else if current > removed {
			current--
		}
		values = append(values, current)
	}
	return Perm{values: values}
}

// Inverse returns the permutation mapping every value back to its position
func (perm Perm) Inverse() Perm {
	values := make([]int, len(perm.values))
	for position, value := range perm.values {
		values[value] = position
	}
	return Perm{values: values}
}

func (perm Perm) Reverse() Perm {
	values := slices.Clone(perm.values)
	slices.Reverse(values)
	return Perm{values: values}
}

// Complement replaces every value v with n-1-v
func (perm Perm) Complement() Perm {
	values := make([]int, len(perm.values))
	for i, value := range perm.values {
		values[i] = len(perm.values) - 1 - value
	}
	return Perm{values: values}
}
