package partvec

import (
	"context"
	"sync"

	"github.com/hupe1980/partvec/metadata"
)

// SafeCollection guards a Collection with a single reader/writer lock so it
// can be shared between goroutines. Writes are also paced by the write rate
// configured with WithWriteRate.
//
// The wrapped Collection must not be used directly once wrapped.
type SafeCollection struct {
	mu sync.RWMutex
	c  *Collection
}

// NewSafe wraps c for concurrent use.
func NewSafe(c *Collection) *SafeCollection {
	return &SafeCollection{c: c}
}

// Upsert is the concurrent form of Collection.Upsert. It blocks until the
// write rate admits the write or ctx is done.
func (s *SafeCollection) Upsert(ctx context.Context, id string, vec []float32, meta metadata.Document) (string, error) {
	if err := s.c.resources.AcquireWrite(ctx); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.c.Upsert(id, vec, meta)
}

// UpsertTo is the concurrent form of Collection.UpsertTo.
func (s *SafeCollection) UpsertTo(ctx context.Context, partition, id string, vec []float32, meta metadata.Document) (string, error) {
	if err := s.c.resources.AcquireWrite(ctx); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.c.UpsertTo(partition, id, vec, meta)
}

// TryUpsert is Upsert without waiting: it fails with ErrWriteThrottled when
// the write rate does not admit a write right now.
func (s *SafeCollection) TryUpsert(id string, vec []float32, meta metadata.Document) (string, error) {
	if !s.c.resources.TryAcquireWrite() {
		return "", ErrWriteThrottled
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.c.Upsert(id, vec, meta)
}

// Get is the concurrent form of Collection.Get.
func (s *SafeCollection) Get(id string) (string, Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.c.Get(id)
}

// Partition is the concurrent form of Collection.Partition.
func (s *SafeCollection) Partition(name string) (map[string]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.c.Partition(name)
}

// Search is the concurrent form of Collection.Search.
func (s *SafeCollection) Search(ctx context.Context, partition string, query []float32, k int) ([]Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.c.Search(partition, query, k)
}

// SearchPartitions is the concurrent form of Collection.SearchPartitions.
func (s *SafeCollection) SearchPartitions(ctx context.Context, names []string, query []float32, k int) ([]Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.c.SearchPartitions(ctx, names, query, k)
}

// Summarize is the concurrent form of Collection.Summarize.
func (s *SafeCollection) Summarize() Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.c.Summarize()
}

// Len returns the number of stored records.
func (s *SafeCollection) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.c.Len()
}

// View runs fn with the read lock held. fn must not mutate c.
func (s *SafeCollection) View(fn func(c *Collection) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return fn(s.c)
}

// Update runs fn with the write lock held, for multi-step writes that must
// not interleave with other writers.
func (s *SafeCollection) Update(ctx context.Context, fn func(c *Collection) error) error {
	if err := s.c.resources.AcquireWrite(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return fn(s.c)
}
