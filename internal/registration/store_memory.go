package registration

import (
	"context"
	"sort"
	"sync"
	"time"

	"messhall/pkg/domain"
	"messhall/pkg/platform/sentinel"
)

type tripleKey struct {
	actorID domain.UserID
	mealID  domain.MealID
	date    domain.Date
}

// InMemoryStore keeps the ledger in maps for tests and single-node runs. The
// registered-triple index under the same mutex gives the same uniqueness
// guarantee the relational store gets from its partial unique index.
type InMemoryStore struct {
	mu      sync.Mutex
	records map[domain.RegistrationID]*Registration
	triples map[tripleKey]domain.RegistrationID
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		records: make(map[domain.RegistrationID]*Registration),
		triples: make(map[tripleKey]domain.RegistrationID),
	}
}

func (s *InMemoryStore) key(r *Registration) tripleKey {
	return tripleKey{actorID: r.ActorID, mealID: r.MealID, date: r.Date}
}

func (s *InMemoryStore) Insert(_ context.Context, r *Registration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := s.key(r)
	if _, taken := s.triples[k]; taken {
		return sentinel.ErrConflict
	}
	cp := *r
	s.records[r.ID] = &cp
	s.triples[k] = r.ID
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id domain.RegistrationID) (*Registration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.records[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (s *InMemoryStore) FindRegisteredTriple(_ context.Context, actorID domain.UserID, mealID domain.MealID, date domain.Date) (*Registration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.triples[tripleKey{actorID: actorID, mealID: mealID, date: date}]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *s.records[id]
	return &cp, nil
}

func (s *InMemoryStore) CancelIfRegistered(_ context.Context, id domain.RegistrationID, at time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.records[id]
	if !ok || r.Status != StatusRegistered {
		return false, nil
	}
	if err := r.ApplyCancellation(at); err != nil {
		return false, nil
	}
	delete(s.triples, s.key(r))
	return true, nil
}

func (s *InMemoryStore) UpdateNotes(_ context.Context, id domain.RegistrationID, notes string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.records[id]
	if !ok {
		return false, nil
	}
	r.Notes = notes
	return true, nil
}

func (s *InMemoryStore) ListRegisteredByActorDate(_ context.Context, actorID domain.UserID, date domain.Date) ([]*Registration, error) {
	return s.collect(func(r *Registration) bool {
		return r.Status == StatusRegistered && r.ActorID == actorID && r.Date == date
	}), nil
}

func (s *InMemoryStore) ListRegisteredByDate(_ context.Context, date domain.Date) ([]*Registration, error) {
	return s.collect(func(r *Registration) bool {
		return r.Status == StatusRegistered && r.Date == date
	}), nil
}

func (s *InMemoryStore) ListRegisteredInRange(_ context.Context, actorID *domain.UserID, start, end domain.Date) ([]*Registration, error) {
	return s.collect(func(r *Registration) bool {
		if r.Status != StatusRegistered {
			return false
		}
		if actorID != nil && r.ActorID != *actorID {
			return false
		}
		return !r.Date.Before(start) && !r.Date.After(end)
	}), nil
}

func (s *InMemoryStore) ListByActor(_ context.Context, actorID domain.UserID, limit, offset int) ([]*Registration, error) {
	all := s.collect(func(r *Registration) bool {
		return r.ActorID == actorID
	})
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (s *InMemoryStore) collect(match func(*Registration) bool) []*Registration {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*Registration
	for _, r := range s.records {
		if match(r) {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out
}
