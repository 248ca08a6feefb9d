package group

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

// InMemory stores groups in memory. Names are unique per section ignoring
// case.
type InMemory struct {
	mu     sync.RWMutex
	groups map[id.GroupID]*models.Group
}

func NewInMemory() *InMemory {
	return &InMemory{groups: make(map[id.GroupID]*models.Group)}
}

func (s *InMemory) Create(_ context.Context, g *models.Group) error {
	return s.put(g, false)
}

func (s *InMemory) Update(_ context.Context, g *models.Group) error {
	return s.put(g, true)
}

func (s *InMemory) put(g *models.Group, mustExist bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.groups[g.ID]; mustExist && !ok {
		return fmt.Errorf("group not found: %w", sentinel.ErrNotFound)
	}
	for _, existing := range s.groups {
		if existing.ID != g.ID && existing.SectionID == g.SectionID && strings.EqualFold(existing.Name, g.Name) {
			return fmt.Errorf("group name must be unique within its section: %w", sentinel.ErrAlreadyUsed)
		}
	}
	cp := *g
	cp.SectionName = ""
	s.groups[g.ID] = &cp
	return nil
}

func (s *InMemory) Delete(_ context.Context, groupID id.GroupID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.groups[groupID]; !ok {
		return fmt.Errorf("group not found: %w", sentinel.ErrNotFound)
	}
	delete(s.groups, groupID)
	return nil
}

func (s *InMemory) FindByID(_ context.Context, groupID id.GroupID) (*models.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if g, ok := s.groups[groupID]; ok {
		cp := *g
		return &cp, nil
	}
	return nil, fmt.Errorf("group not found: %w", sentinel.ErrNotFound)
}

// List returns the groups of sectionID, or every group for a zero id.
func (s *InMemory) List(_ context.Context, sectionID id.SectionID) ([]*models.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Group, 0, len(s.groups))
	for _, g := range s.groups {
		if !sectionID.IsNil() && g.SectionID != sectionID {
			continue
		}
		cp := *g
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *InMemory) CountBySection(_ context.Context, sectionID id.SectionID) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, g := range s.groups {
		if g.SectionID == sectionID {
			n++
		}
	}
	return n, nil
}

func (s *InMemory) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.groups), nil
}
