// Package dedupe tracks recently seen webhook delivery ids.
//
// Syncs are idempotent, so suppressing a redelivered notification is purely
// an optimization; losing an entry on eviction is harmless.
package dedupe

import (
	"context"
	"sync"
)

// Deduper answers whether a delivery id has been seen before.
type Deduper interface {
	// SeenAndRecord reports whether id was already recorded, recording it if
	// not. An empty id is never recorded and never reported as seen.
	SeenAndRecord(ctx context.Context, id string) bool

	// Size returns the number of ids currently tracked.
	Size() int64
}

type seenSet struct {
	mu      sync.Mutex
	maxSize int
	order   []string
	seen    map[string]struct{}
}

// New creates an in-memory deduper. With a positive max size the oldest
// entries are evicted first-in-first-out once the bound is hit.
func New(opts ...Option) Deduper {
	s := &seenSet{
		maxSize: defaultMaxSize,
		seen:    make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *seenSet) SeenAndRecord(_ context.Context, id string) bool {
	if id == "" {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.seen[id]; ok {
		return true
	}
	s.seen[id] = struct{}{}
	s.order = append(s.order, id)
	if s.maxSize > 0 && len(s.order) > s.maxSize {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.seen, oldest)
	}
	return false
}

func (s *seenSet) Size() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.seen))
}
