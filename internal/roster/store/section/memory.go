package section

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

// InMemory stores sections in memory. Names are unique ignoring case.
type InMemory struct {
	mu       sync.RWMutex
	sections map[id.SectionID]*models.Section
}

func NewInMemory() *InMemory {
	return &InMemory{sections: make(map[id.SectionID]*models.Section)}
}

func (s *InMemory) Create(_ context.Context, sec *models.Section) error {
	return s.put(sec, false)
}

func (s *InMemory) Update(_ context.Context, sec *models.Section) error {
	return s.put(sec, true)
}

func (s *InMemory) put(sec *models.Section, mustExist bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sections[sec.ID]; mustExist && !ok {
		return fmt.Errorf("section not found: %w", sentinel.ErrNotFound)
	}
	for _, existing := range s.sections {
		if existing.ID != sec.ID && strings.EqualFold(existing.Name, sec.Name) {
			return fmt.Errorf("section name must be unique: %w", sentinel.ErrAlreadyUsed)
		}
	}
	cp := *sec
	s.sections[sec.ID] = &cp
	return nil
}

func (s *InMemory) Delete(_ context.Context, sectionID id.SectionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sections[sectionID]; !ok {
		return fmt.Errorf("section not found: %w", sentinel.ErrNotFound)
	}
	delete(s.sections, sectionID)
	return nil
}

func (s *InMemory) FindByID(_ context.Context, sectionID id.SectionID) (*models.Section, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if sec, ok := s.sections[sectionID]; ok {
		cp := *sec
		return &cp, nil
	}
	return nil, fmt.Errorf("section not found: %w", sentinel.ErrNotFound)
}

func (s *InMemory) List(_ context.Context) ([]*models.Section, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Section, 0, len(s.sections))
	for _, sec := range s.sections {
		cp := *sec
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *InMemory) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sections), nil
}
