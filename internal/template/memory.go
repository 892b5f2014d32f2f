package template

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore keeps templates in process memory.
type MemoryStore struct {
	mu        sync.RWMutex
	templates map[string]Template
	now       func() time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		templates: make(map[string]Template),
		now:       time.Now,
	}
}

// Create assigns an id and timestamps to draft and stores it.
func (s *MemoryStore) Create(_ context.Context, draft Template) (Template, error) {
	now := s.now().UTC()
	draft.ID = uuid.NewString()
	draft.CreatedAt = now
	draft.UpdatedAt = now

	s.mu.Lock()
	s.templates[draft.ID] = draft
	s.mu.Unlock()

	return draft, nil
}

// Get returns the template with the given id.
func (s *MemoryStore) Get(_ context.Context, id string) (Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.templates[id]
	if !ok {
		return Template{}, ErrNotFound
	}
	return t, nil
}

// List returns every template, oldest first.
func (s *MemoryStore) List(_ context.Context) ([]Template, error) {
	s.mu.RLock()
	templates := make([]Template, 0, len(s.templates))
	for _, t := range s.templates {
		templates = append(templates, t)
	}
	s.mu.RUnlock()

	sortTemplates(templates)
	return templates, nil
}

// Delete removes the template with the given id.
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.templates[id]; !ok {
		return ErrNotFound
	}
	delete(s.templates, id)
	return nil
}
