// Package memory implements the repositories on process memory. It backs
// STORAGE_TYPE=memory and the use case tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/gdugdh24/studymatch-backend/internal/domain"
	"github.com/gdugdh24/studymatch-backend/internal/repository"
	"github.com/google/uuid"
)

type Store struct {
	mu       sync.RWMutex
	profiles map[uuid.UUID]domain.Profile
	matches  map[int64]domain.MatchSuggestion
	byPair   map[domain.PairKey]int64
	nextID   int64
	now      func() time.Time
}

func NewStore() *Store {
	return &Store{
		profiles: make(map[uuid.UUID]domain.Profile),
		matches:  make(map[int64]domain.MatchSuggestion),
		byPair:   make(map[domain.PairKey]int64),
		now:      time.Now,
	}
}

func (s *Store) Profiles() repository.ProfileRepository {
	return profileRepository{s}
}

func (s *Store) Matches() repository.MatchRepository {
	return matchRepository{s}
}

type profileRepository struct{ s *Store }

func (r profileRepository) GetByUserID(_ context.Context, userID uuid.UUID) (*domain.Profile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.profiles[userID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return copyProfile(p), nil
}

func (r profileRepository) ListExcept(_ context.Context, userID uuid.UUID) ([]*domain.Profile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*domain.Profile, 0, len(r.s.profiles))
	for id, p := range r.s.profiles {
		if id == userID {
			continue
		}
		out = append(out, copyProfile(p))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].UserID.String() < out[j].UserID.String()
	})
	return out, nil
}

func (r profileRepository) ListUserIDs(_ context.Context) ([]uuid.UUID, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	ids := make([]uuid.UUID, 0, len(r.s.profiles))
	for id := range r.s.profiles {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return ids[i].String() < ids[j].String()
	})
	return ids, nil
}

func (r profileRepository) Upsert(_ context.Context, profile *domain.Profile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	profile.Normalize()
	now := r.s.now()
	if existing, ok := r.s.profiles[profile.UserID]; ok {
		profile.CreatedAt = existing.CreatedAt
	} else {
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now
	r.s.profiles[profile.UserID] = *copyProfile(*profile)
	return nil
}

type matchRepository struct{ s *Store }

func (r matchRepository) FindByPair(_ context.Context, pair domain.PairKey) (*domain.MatchSuggestion, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	pair = domain.NewPairKey(pair.A, pair.B)
	id, ok := r.s.byPair[pair]
	if !ok {
		return nil, domain.ErrSuggestionNotFound
	}
	return copyMatch(r.s.matches[id]), nil
}

func (r matchRepository) Create(_ context.Context, match *domain.MatchSuggestion) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	pair := domain.NewPairKey(match.UserAID, match.UserBID)
	if _, ok := r.s.byPair[pair]; ok {
		return domain.ErrPairWriteConflict
	}

	r.s.nextID++
	now := r.s.now()
	match.ID = r.s.nextID
	match.UserAID, match.UserBID = pair.A, pair.B
	if match.Status == "" {
		match.Status = domain.MatchStatusSuggestion
	}
	match.CreatedAt = now
	match.UpdatedAt = now

	r.s.matches[match.ID] = *copyMatch(*match)
	r.s.byPair[pair] = match.ID
	return nil
}

func (r matchRepository) UpdateScore(_ context.Context, id int64, score int, reasons []string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	m, ok := r.s.matches[id]
	if !ok || !m.Editable() {
		return domain.ErrPairWriteConflict
	}
	m.CompatibilityScore = score
	m.Reasons = append([]string(nil), reasons...)
	m.UpdatedAt = r.s.now()
	r.s.matches[id] = m
	return nil
}

func (r matchRepository) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	m, ok := r.s.matches[id]
	if !ok || !m.Editable() {
		return domain.ErrPairWriteConflict
	}
	delete(r.s.matches, id)
	delete(r.s.byPair, m.Pair())
	return nil
}

func (r matchRepository) ListForUser(_ context.Context, userID uuid.UUID, status *domain.MatchStatus) ([]*domain.MatchSuggestion, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []*domain.MatchSuggestion
	for _, m := range r.s.matches {
		if !m.HasUser(userID) {
			continue
		}
		if status != nil && m.Status != *status {
			continue
		}
		out = append(out, copyMatch(m))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// SetStatus stands in for the external connection workflow in tests.
func (s *Store) SetStatus(id int64, status domain.MatchStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.matches[id]
	if !ok {
		return domain.ErrSuggestionNotFound
	}
	m.Status = status
	s.matches[id] = m
	return nil
}

// DeleteProfile removes a profile without touching suggestions.
func (s *Store) DeleteProfile(userID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.profiles, userID)
}

func copyProfile(p domain.Profile) *domain.Profile {
	p.Courses = append([]string{}, p.Courses...)
	p.Interests = append([]string{}, p.Interests...)
	return &p
}

func copyMatch(m domain.MatchSuggestion) *domain.MatchSuggestion {
	m.Reasons = append([]string{}, m.Reasons...)
	return &m
}
