package avoidance

import (
	"github.com/limaJavier/permuta/pkg/perm"
	"github.com/samber/lo"
)

type extensionState uint8

const (
	extensionsUnknown  extensionState = iota // Not computed yet
	extensionsComputed                       // Holds exactly the values legal to append
	extensionsCleared                        // Consumed by the next level and released
)

// cacheEntry is a permutation of some level together with the values that extend it inside the class
type cacheEntry struct {
	perm       perm.Perm
	state      extensionState
	extensions []int
}

// cacheLevel holds the permutations of a single length in insertion order, indexed by key
type cacheLevel struct {
	entries []*cacheEntry
	index   map[string]*cacheEntry
}

func newCacheLevel(capacity int) *cacheLevel {
	return &cacheLevel{
		entries: make([]*cacheEntry, 0, capacity),
		index:   make(map[string]*cacheEntry, capacity),
	}
}

// Adds the permutation with unknown extensions; returns false if it was already present
func (level *cacheLevel) insert(p perm.Perm) bool {
	key := p.Key()
	if _, ok := level.index[key]; ok {
		return false
	}
	entry := &cacheEntry{perm: p}
	level.entries = append(level.entries, entry)
	level.index[key] = entry
	return true
}

func (level *cacheLevel) lookup(p perm.Perm) (*cacheEntry, bool) {
	entry, ok := level.index[p.Key()]
	return entry, ok
}

// Releases every extension set while keeping the permutations enumerable
func (level *cacheLevel) clear() {
	for _, entry := range level.entries {
		entry.extensions = nil
		entry.state = extensionsCleared
	}
}

func (level *cacheLevel) perms() []perm.Perm {
	return lo.Map(level.entries, func(entry *cacheEntry, _ int) perm.Perm { return entry.perm })
}
