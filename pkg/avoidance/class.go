// Package avoidance builds, length by length, the permutations avoiding a finite basis of patterns.
package avoidance

import (
	"context"
	"fmt"
	"runtime"
	"slices"
	"sync"
	"time"

	"github.com/limaJavier/permuta/pkg/perm"
	"github.com/samber/lo"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultMaxChunkSize bounds the number of entries a single worker processes in one task
const DefaultMaxChunkSize = 500_000

// Class is the avoidance class of a basis, built inductively one length at a time.
//
// Level i of the cache holds exactly the permutations of length i avoiding every basis pattern. Building
// level n+1 reads the extension sets of level n-1, records those of level n and then releases level n-1's,
// so at most two levels carry extension data at any time.
//
// A Class is not safe for concurrent use while Build is running.
type Class struct {
	basis         []perm.Perm
	maxPatternLen int
	levels        []*cacheLevel

	workers      int
	maxChunkSize int
	logger       *zap.Logger
}

type Option func(*Class)

// WithWorkers sets the size of the worker pool; values below one are ignored
func WithWorkers(workers int) Option {
	return func(class *Class) {
		if workers > 0 {
			class.workers = workers
		}
	}
}

// WithMaxChunkSize caps the number of entries per worker task; values below one are ignored
func WithMaxChunkSize(maxChunkSize int) Option {
	return func(class *Class) {
		if maxChunkSize > 0 {
			class.maxChunkSize = maxChunkSize
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(class *Class) {
		if logger != nil {
			class.logger = logger
		}
	}
}

// New creates the class of permutations avoiding basis with only the empty permutation built
func New(basis []perm.Perm, options ...Option) (*Class, error) {
	if len(basis) == 0 {
		return nil, ErrEmptyBasis
	} else if lo.SomeBy(basis, func(pattern perm.Perm) bool { return pattern.Len() == 0 }) {
		return nil, ErrEmptyPattern
	}

	class := &Class{
		basis:         slices.Clone(basis),
		maxPatternLen: lo.MaxBy(basis, func(a, b perm.Perm) bool { return a.Len() > b.Len() }).Len(),
		workers:       runtime.NumCPU(),
		maxChunkSize:  DefaultMaxChunkSize,
		logger:        zap.NewNop(),
	}
	for _, option := range options {
		option(class)
	}

	level := newCacheLevel(1)
	level.insert(perm.MustNew())
	class.levels = []*cacheLevel{level}

	return class, nil
}

// Build creates the class of basis and builds it up to length n
func Build(ctx context.Context, basis []perm.Perm, n int, options ...Option) (*Class, error) {
	class, err := New(basis, options...)
	if err != nil {
		return nil, err
	}
	if err := class.Build(ctx, n); err != nil {
		return nil, err
	}
	return class, nil
}

// Build extends the cache until every length up to n is available. Lengths already built are kept, so
// calling Build again with a larger n resumes from the highest level. On error no new level is published.
func (class *Class) Build(ctx context.Context, n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeLength, n)
	}

	for len(class.levels) <= n {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := class.buildNextLevel(ctx); err != nil {
			return fmt.Errorf("cannot build permutations of length %d: %w", len(class.levels), err)
		}
	}
	return nil
}

func (class *Class) buildNextLevel(ctx context.Context) error {
	start := time.Now()
	currentLength := len(class.levels) - 1
	current := class.levels[currentLength]
	var previous *cacheLevel
	if currentLength > 0 {
		previous = class.levels[currentLength-1]
	}

	next := newCacheLevel(len(current.entries))
	var nextMutex sync.Mutex // Guards next, the only structure shared between workers

	chunkSize := class.chunkSize(len(current.entries))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(class.workers)

	for _, chunk := range lo.Chunk(current.entries, chunkSize) {
		group.Go(func() error {
			for i, entry := range chunk {
				if i%cancellationCheckInterval == 0 {
					if err := groupCtx.Err(); err != nil {
						return err
					}
				}

				admitted, err := class.extend(entry, previous)
				if err != nil {
					return err
				}

				nextMutex.Lock()
				for _, extended := range admitted {
					next.insert(extended)
				}
				nextMutex.Unlock()
			}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return err
	}

	if previous != nil {
		previous.clear()
	}
	class.levels = append(class.levels, next)

	class.logger.Debug("built cache level",
		zap.Int("length", currentLength+1),
		zap.Int("permutations", len(next.entries)),
		zap.Int("parents", len(current.entries)),
		zap.Int("chunkSize", chunkSize),
		zap.Int("workers", class.workers),
		zap.Duration("elapsed", time.Since(start)),
	)
	return nil
}

const cancellationCheckInterval = 4096

// Entries divided by workers rounded up, capped at maxChunkSize and never below one
func (class *Class) chunkSize(entries int) int {
	size := (entries + class.workers - 1) / class.workers
	return max(1, min(size, class.maxChunkSize))
}

// MaxLength returns the highest length built so far
func (class *Class) MaxLength() int {
	return len(class.levels) - 1
}

// Basis returns a copy of the forbidden patterns
func (class *Class) Basis() []perm.Perm {
	return slices.Clone(class.basis)
}

// PermutationsOfLength lists the class members of length n in insertion order. The order depends on the
// worker count and is not stable across runs; the set is.
func (class *Class) PermutationsOfLength(n int) ([]perm.Perm, error) {
	if n < 0 || n > class.MaxLength() {
		return nil, fmt.Errorf("%w: requested %d, built up to %d", ErrNotBuilt, n, class.MaxLength())
	}
	return class.levels[n].perms(), nil
}

// Count returns the number of class members of length n
func (class *Class) Count(n int) (int, error) {
	if n < 0 || n > class.MaxLength() {
		return 0, fmt.Errorf("%w: requested %d, built up to %d", ErrNotBuilt, n, class.MaxLength())
	}
	return len(class.levels[n].entries), nil
}

// Contains reports whether p belongs to the class, by lookup when its length is built and by direct
// occurrence search otherwise
func (class *Class) Contains(p perm.Perm) bool {
	if p.Len() <= class.MaxLength() {
		_, ok := class.levels[p.Len()].lookup(p)
		return ok
	}
	return perm.Avoids(p, class.basis...)
}
