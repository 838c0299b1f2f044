package cache

import (
	"context"
	"sync"
	"time"

	"github.com/amirasaad/corebank/pkg/repository"
)

// MemoryProcessedStore remembers processed event keys in process memory.
// Entries expire after ttl; a zero ttl keeps them forever.
type MemoryProcessedStore struct {
	mu   sync.RWMutex
	seen map[string]time.Time
	ttl  time.Duration
	now  func() time.Time
}

// NewMemoryProcessedStore creates an empty store.
func NewMemoryProcessedStore(ttl time.Duration) *MemoryProcessedStore {
	return &MemoryProcessedStore{
		seen: make(map[string]time.Time),
		ttl:  ttl,
		now:  time.Now,
	}
}

func (s *MemoryProcessedStore) Seen(_ context.Context, key string) (bool, error) {
	s.mu.RLock()
	at, ok := s.seen[key]
	s.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if s.ttl > 0 && s.now().Sub(at) > s.ttl {
		s.mu.Lock()
		delete(s.seen, key)
		s.mu.Unlock()
		return false, nil
	}
	return true, nil
}

func (s *MemoryProcessedStore) MarkProcessed(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seen[key] = s.now()
	return nil
}

var _ repository.ProcessedEventStore = (*MemoryProcessedStore)(nil)
