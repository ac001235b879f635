package meal

import (
	"context"
	"sync"

	"messhall/pkg/domain"
	"messhall/pkg/platform/sentinel"
)

// InMemoryStore keeps meal definitions in a map for tests and single-node
// runs.
type InMemoryStore struct {
	mu    sync.RWMutex
	meals map[domain.MealID]*Meal
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{meals: make(map[domain.MealID]*Meal)}
}

func (s *InMemoryStore) Insert(_ context.Context, m *Meal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *m
	s.meals[m.ID] = &cp
	return nil
}

func (s *InMemoryStore) Update(_ context.Context, m *Meal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.meals[m.ID]; !ok {
		return sentinel.ErrNotFound
	}
	cp := *m
	s.meals[m.ID] = &cp
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, mealID domain.MealID) (*Meal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if m, ok := s.meals[mealID]; ok {
		cp := *m
		return &cp, nil
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemoryStore) List(_ context.Context) ([]*Meal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Meal, 0, len(s.meals))
	for _, m := range s.meals {
		cp := *m
		out = append(out, &cp)
	}
	return out, nil
}
