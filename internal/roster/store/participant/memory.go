package participant

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"

	"festdraft/internal/roster/models"
	id "festdraft/pkg/domain"
	"festdraft/pkg/platform/sentinel"
)

// InMemory stores participants in memory.
type InMemory struct {
	mu           sync.RWMutex
	participants map[id.ParticipantID]*models.Participant
}

func NewInMemory() *InMemory {
	return &InMemory{participants: make(map[id.ParticipantID]*models.Participant)}
}

func clone(p *models.Participant) *models.Participant {
	cp := *p
	cp.Achievements = slices.Clone(p.Achievements)
	return &cp
}

func (s *InMemory) Create(_ context.Context, p *models.Participant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.participants[p.ID]; exists {
		return fmt.Errorf("participant exists: %w", sentinel.ErrAlreadyUsed)
	}
	s.participants[p.ID] = clone(p)
	return nil
}

// CreateMany inserts all participants or none.
func (s *InMemory) CreateMany(_ context.Context, ps []*models.Participant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range ps {
		if _, exists := s.participants[p.ID]; exists {
			return fmt.Errorf("participant exists: %w", sentinel.ErrAlreadyUsed)
		}
	}
	for _, p := range ps {
		s.participants[p.ID] = clone(p)
	}
	return nil
}

func (s *InMemory) Update(_ context.Context, p *models.Participant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.participants[p.ID]; !ok {
		return fmt.Errorf("participant not found: %w", sentinel.ErrNotFound)
	}
	s.participants[p.ID] = clone(p)
	return nil
}

func (s *InMemory) Delete(_ context.Context, participantID id.ParticipantID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.participants[participantID]; !ok {
		return fmt.Errorf("participant not found: %w", sentinel.ErrNotFound)
	}
	delete(s.participants, participantID)
	return nil
}

func (s *InMemory) FindByID(_ context.Context, participantID id.ParticipantID) (*models.Participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if p, ok := s.participants[participantID]; ok {
		return clone(p), nil
	}
	return nil, fmt.Errorf("participant not found: %w", sentinel.ErrNotFound)
}

// List returns participants ordered by ID, restricted to sectionID unless
// it is zero.
func (s *InMemory) List(_ context.Context, sectionID id.SectionID) ([]*models.Participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Participant, 0, len(s.participants))
	for _, p := range s.participants {
		if !sectionID.IsNil() && p.SectionID != sectionID {
			continue
		}
		out = append(out, clone(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// UnassignTeam clears teamID from every participant on it.
func (s *InMemory) UnassignTeam(_ context.Context, teamID id.TeamID) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, p := range s.participants {
		if p.TeamID == teamID {
			p.TeamID = 0
			n++
		}
	}
	return n, nil
}

func (s *InMemory) CountBySection(_ context.Context, sectionID id.SectionID) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, p := range s.participants {
		if p.SectionID == sectionID {
			n++
		}
	}
	return n, nil
}

func (s *InMemory) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.participants), nil
}
