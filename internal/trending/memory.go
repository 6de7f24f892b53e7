package trending

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore keeps documents in process memory.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]Document
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]Document)}
}

// FindByTerm implements Store.
func (s *MemoryStore) FindByTerm(_ context.Context, term string) (Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, doc := range s.docs {
		if doc.SearchTerm == term {
			return doc, nil
		}
	}
	return Document{}, ErrNotFound
}

// Create implements Store.
func (s *MemoryStore) Create(_ context.Context, doc Document) (Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	if _, exists := s.docs[doc.ID]; exists {
		return Document{}, fmt.Errorf("document %s already exists", doc.ID)
	}
	if s.docs == nil {
		s.docs = make(map[string]Document)
	}
	s.docs[doc.ID] = doc
	return doc, nil
}

// SetCount implements Store.
func (s *MemoryStore) SetCount(_ context.Context, id string, count int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.docs[id]
	if !ok {
		return fmt.Errorf("document %s: %w", id, ErrNotFound)
	}
	doc.Count = count
	s.docs[id] = doc
	return nil
}

// Top implements Store. Ties are broken by search term so repeated reads
// return the same order.
func (s *MemoryStore) Top(_ context.Context, limit int) ([]Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Document, 0, len(s.docs))
	for _, doc := range s.docs {
		out = append(out, doc)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].SearchTerm < out[j].SearchTerm
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
