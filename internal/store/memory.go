package store

import (
	"errors"
	"sync"
	"time"

	"github.com/i474232898/bikeshare-dashboard/internal/rental"
)

var (
	// ErrNotLoaded is returned when no dataset has been loaded yet.
	ErrNotLoaded = errors.New("no dataset loaded")
)

// MemoryStore is a concurrency-safe holder for the current dataset.
// Datasets are immutable, so swapping the pointer is the only write.
type MemoryStore struct {
	mu sync.RWMutex

	current  *rental.Dataset
	loadedAt time.Time
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Save replaces the current dataset.
func (s *MemoryStore) Save(ds *rental.Dataset) {
	if ds == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = ds
	s.loadedAt = time.Now().UTC()
}

// Current returns the most recently saved dataset.
func (s *MemoryStore) Current() (*rental.Dataset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return nil, ErrNotLoaded
	}
	return s.current, nil
}

// LoadedAt reports when the current dataset was saved; zero if none.
func (s *MemoryStore) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}
