package perm

import "github.com/emirpasic/gods/lists/doublylinkedlist"

// Absent marks a missing floor or ceiling reference in a PatternDetail
const Absent = -1

// PatternDetail describes, for one position k of a pattern, the nearest values seen at earlier positions
type PatternDetail struct {
	FloorPos   int // Position < k holding the largest earlier value below value(k), or Absent
	CeilingPos int // Position < k holding the smallest earlier value above value(k), or Absent
	SpaceBelow int // value(k) - value(FloorPos), or value(k) when FloorPos is Absent
	SpaceAbove int // value(CeilingPos) - value(k), or len - value(k) when CeilingPos is Absent
}

type valuePosition struct {
	value, position int
}

// PatternDetails computes the floor/ceiling structure of the permutation in a single left-to-right pass.
//
// The pass keeps every (value, position) pair seen so far in a double-ended list that is sorted by value
// up to a rotation: reading front to back the values ascend, wrapping around once from the maximum to the
// minimum. New extremes are inserted next to the current minimum; any other value is bracketed by rotating
// until back < value < front, at which point back and front are its floor and ceiling.
func (perm Perm) PatternDetails() []PatternDetail {
	details := make([]PatternDetail, 0, len(perm.values))
	if len(perm.values) == 0 {
		return details
	}

	deque := doublylinkedlist.New(valuePosition{perm.values[0], 0})
	smallest, biggest := perm.values[0], perm.values[0]
	details = append(details, perm.patternDetail(0, Absent, Absent))

	for position := 1; position < len(perm.values); position++ {
		current := perm.values[position]
		floor, ceiling := Absent, Absent

		switch {
		case current < smallest: // New minimum, its ceiling is the old minimum
			rotateUntil(deque, func(front, _ valuePosition) bool { return front.value == smallest })
			ceiling = front(deque).position
			smallest = current
		case current > biggest: // New maximum, its floor is the old maximum
			rotateUntil(deque, func(front, _ valuePosition) bool { return front.value == smallest })
			floor = back(deque).position
			biggest = current
		default:
			rotateUntil(deque, func(front, back valuePosition) bool { return back.value < current && current < front.value })
			floor, ceiling = back(deque).position, front(deque).position
		}

		deque.Prepend(valuePosition{current, position}) // Inserting between back and front keeps the rotated order
		details = append(details, perm.patternDetail(position, floor, ceiling))
	}

	return details
}

func (perm Perm) patternDetail(position, floor, ceiling int) PatternDetail {
	value := perm.values[position]
	detail := PatternDetail{
		FloorPos:   floor,
		CeilingPos: ceiling,
		SpaceBelow: value,
		SpaceAbove: len(perm.values) - value,
	}
	if floor != Absent {
		detail.SpaceBelow = value - perm.values[floor]
	}
	if ceiling != Absent {
		detail.SpaceAbove = perm.values[ceiling] - value
	}
	return detail
}

// Moves the front element to the back until the predicate holds for the current ends
func rotateUntil(deque *doublylinkedlist.List, predicate func(front, back valuePosition) bool) {
	for range deque.Size() {
		if predicate(front(deque), back(deque)) {
			return
		}
		first := front(deque)
		deque.Remove(0)
		deque.Add(first)
	}
}

func front(deque *doublylinkedlist.List) valuePosition {
	value, _ := deque.Get(0)
	return value.(valuePosition)
}

func back(deque *doublylinkedlist.List) valuePosition {
	value, _ := deque.Get(deque.Size() - 1)
	return value.(valuePosition)
}
