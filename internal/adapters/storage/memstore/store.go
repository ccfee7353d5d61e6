package memstore

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/dravina/dravina-agent/internal/domain"
)

// Store is a simple in-memory implementation of domain.MemoryStore.
// It is NOT persistent and is only suitable for development / local mode.
type Store struct {
	mu    sync.RWMutex
	items map[domain.UserID][]domain.MemoryItem
}

func NewStore() *Store {
	return &Store{
		items: make(map[domain.UserID][]domain.MemoryItem),
	}
}

func (s *Store) GetAll(_ context.Context, userID domain.UserID, limit int) ([]domain.MemoryItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := s.items[userID]
	if limit > 0 && len(items) > limit {
		items = items[len(items)-limit:]
	}
	out := make([]domain.MemoryItem, len(items))
	copy(out, items)
	return out, nil
}

func (s *Store) Search(_ context.Context, query string, userID domain.UserID, tag string, limit int) ([]domain.MemoryItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.MemoryItem
	for _, item := range s.items[userID] {
		if tag != "" && item.Tag != tag {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(item.Content), strings.ToLower(query)) {
			continue
		}
		out = append(out, item)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

// Add appends items for the user. The in-memory backend stores content
// verbatim regardless of infer; inference is a capability of richer
// backends.
func (s *Store) Add(_ context.Context, items []domain.MemoryItem, userID domain.UserID, _ bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for _, item := range items {
		item.UserID = userID
		if item.CreatedAt.IsZero() {
			item.CreatedAt = now
		}
		s.items[userID] = append(s.items[userID], item)
	}
	return nil
}
