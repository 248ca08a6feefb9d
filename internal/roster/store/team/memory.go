package team

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"festdraft/internal/roster/models"
	id "festdraft/pkg/domain"
	"festdraft/pkg/platform/sentinel"
)

// InMemory stores teams in memory for tests and single-node dev.
//
// Error Contract:
// - ErrNotFound when the team does not exist
// - ErrAlreadyUsed when another team has the same name (case-insensitive)
type InMemory struct {
	mu    sync.RWMutex
	teams map[id.TeamID]*models.Team
}

func NewInMemory() *InMemory {
	return &InMemory{teams: make(map[id.TeamID]*models.Team)}
}

func (s *InMemory) Create(_ context.Context, t *models.Team) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkName(t); err != nil {
		return err
	}
	cp := *t
	s.teams[t.ID] = &cp
	return nil
}

func (s *InMemory) Update(_ context.Context, t *models.Team) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.teams[t.ID]; !ok {
		return fmt.Errorf("team not found: %w", sentinel.ErrNotFound)
	}
	if err := s.checkName(t); err != nil {
		return err
	}
	cp := *t
	s.teams[t.ID] = &cp
	return nil
}

// checkName must be called with the lock held.
func (s *InMemory) checkName(t *models.Team) error {
	for _, existing := range s.teams {
		if existing.ID != t.ID && strings.EqualFold(existing.Name, t.Name) {
			return fmt.Errorf("team name must be unique: %w", sentinel.ErrAlreadyUsed)
		}
	}
	return nil
}

func (s *InMemory) Delete(_ context.Context, teamID id.TeamID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.teams[teamID]; !ok {
		return fmt.Errorf("team not found: %w", sentinel.ErrNotFound)
	}
	delete(s.teams, teamID)
	return nil
}

func (s *InMemory) FindByID(_ context.Context, teamID id.TeamID) (*models.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if t, ok := s.teams[teamID]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, fmt.Errorf("team not found: %w", sentinel.ErrNotFound)
}

// List returns every team ordered by ID.
func (s *InMemory) List(_ context.Context) ([]*models.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Team, 0, len(s.teams))
	for _, t := range s.teams {
		cp := *t
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *InMemory) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.teams), nil
}
