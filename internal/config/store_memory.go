package config

import (
	"context"
	"sort"
	"sync"

	"messhall/pkg/platform/sentinel"
)

// InMemoryStore keeps settings in a map for tests and single-node runs.
type InMemoryStore struct {
	mu       sync.RWMutex
	settings map[string]Setting
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{settings: make(map[string]Setting)}
}

func (s *InMemoryStore) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if setting, ok := s.settings[key]; ok {
		return setting.Value, nil
	}
	return "", sentinel.ErrNotFound
}

func (s *InMemoryStore) Set(_ context.Context, setting Setting) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings[setting.Key] = setting
	return nil
}

func (s *InMemoryStore) List(_ context.Context) ([]Setting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Setting, 0, len(s.settings))
	for _, setting := range s.settings {
		out = append(out, setting)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}
