package perm

import (
	"iter"
	"slices"
)

// Occurrence is a strictly increasing list of text positions whose values are order-isomorphic to a pattern
type Occurrence []int

// Search is a resumable depth-first enumeration of the occurrences of a pattern inside a text.
// Every call to Next resumes from the saved partial occurrence and cursor, so occurrences are produced
// lazily in lexicographic order of their position tuples.
type Search struct {
	text    Perm
	pattern Perm
	details []PatternDetail

	chosen []int // Positions of the partial occurrence
	cursor int   // Next text position to examine for extending chosen
	done   bool
}

func NewSearch(text, pattern Perm) *Search {
	return &Search{
		text:    text,
		pattern: pattern,
		details: pattern.PatternDetails(),
		chosen:  make([]int, 0, pattern.Len()),
		done:    pattern.Len() == 0 || pattern.Len() > text.Len(),
	}
}

// Next returns the next occurrence, or false once the search is exhausted
func (search *Search) Next() (Occurrence, bool) {
	if search.done {
		return nil, false
	}

	textLen, patternLen := search.text.Len(), search.pattern.Len()
	position := search.cursor

	for {
		depth := len(search.chosen)
		lowerBound, upperBound := search.bounds(depth)

		//** Scan forward for a value that fits the bounds, leaving room for the remaining pattern elements
		extended := false
		for ; position <= textLen-(patternLen-depth); position++ {
			if value := search.text.values[position]; lowerBound <= value && value <= upperBound {
				search.chosen = append(search.chosen, position)
				position++
				extended = true
				break
			}
		}

		if extended {
			if len(search.chosen) < patternLen {
				continue
			}
			occurrence := Occurrence(slices.Clone(search.chosen))
			search.backtrack()
			return occurrence, true
		}

		//** Backtrack
		if depth == 0 {
			search.done = true
			return nil, false
		}
		search.backtrack()
		position = search.cursor
	}
}

// Drops the last chosen position and moves the cursor right after it
func (search *Search) backtrack() {
	last := search.chosen[len(search.chosen)-1]
	search.chosen = search.chosen[:len(search.chosen)-1]
	search.cursor = last + 1
}

// Admissible value interval for the text element matched against pattern position depth
func (search *Search) bounds(depth int) (lowerBound, upperBound int) {
	detail := search.details[depth]

	lowerBound = detail.SpaceBelow
	if detail.FloorPos != Absent {
		lowerBound += search.text.values[search.chosen[detail.FloorPos]]
	}

	upperBound = search.text.Len() - detail.SpaceAbove
	if detail.CeilingPos != Absent {
		upperBound = search.text.values[search.chosen[detail.CeilingPos]] - detail.SpaceAbove
	}

	return lowerBound, upperBound
}

// Occurrences lazily yields every occurrence of pattern in text; the consumer may stop at any point
func Occurrences(text, pattern Perm) iter.Seq[Occurrence] {
	return func(yield func(Occurrence) bool) {
		search := NewSearch(text, pattern)
		for {
			occurrence, ok := search.Next()
			if !ok || !yield(occurrence) {
				return
			}
		}
	}
}

// Contains reports whether pattern occurs in text, stopping at the first occurrence
func Contains(text, pattern Perm) bool {
	_, ok := NewSearch(text, pattern).Next()
	return ok
}

// Avoids reports whether text contains none of the given patterns
func Avoids(text Perm, basis ...Perm) bool {
	for _, pattern := range basis {
		if Contains(text, pattern) {
			return false
		}
	}
	return true
}

func CountOccurrences(text, pattern Perm) int {
	count := 0
	for range Occurrences(text, pattern) {
		count++
	}
	return count
}
