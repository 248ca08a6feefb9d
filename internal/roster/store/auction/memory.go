package auction

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

// InMemory stores auctions in memory.
type InMemory struct {
	mu       sync.RWMutex
	auctions map[id.AuctionID]*models.Auction
}

func NewInMemory() *InMemory {
	return &InMemory{auctions: make(map[id.AuctionID]*models.Auction)}
}

func clone(a *models.Auction) *models.Auction {
	cp := *a
	cp.FirstTeamsOrder = slices.Clone(a.FirstTeamsOrder)
	cp.AuthorizedManagers = slices.Clone(a.AuthorizedManagers)
	return &cp
}

func (s *InMemory) Create(_ context.Context, a *models.Auction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.auctions[a.ID]; exists {
		return fmt.Errorf("auction exists: %w", sentinel.ErrAlreadyUsed)
	}
	s.auctions[a.ID] = clone(a)
	return nil
}

// UpdateStatus moves an auction from one status to another. A concurrent
// transition that already changed the status yields ErrInvalidState.
func (s *InMemory) UpdateStatus(_ context.Context, auctionID id.AuctionID, from, to models.AuctionStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.auctions[auctionID]
	if !ok {
		return fmt.Errorf("auction not found: %w", sentinel.ErrNotFound)
	}
	if a.Status != from {
		return fmt.Errorf("auction is %s: %w", a.Status, sentinel.ErrInvalidState)
	}
	a.Status = to
	return nil
}

// UpdateDraft replaces the settings of a draft auction. Status and access
// code are kept.
func (s *InMemory) UpdateDraft(_ context.Context, a *models.Auction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, err := s.draft(a.ID)
	if err != nil {
		return err
	}
	cp := clone(a)
	cp.Status = stored.Status
	cp.AccessCode = stored.AccessCode
	cp.CreatedAt = stored.CreatedAt
	s.auctions[a.ID] = cp
	return nil
}

func (s *InMemory) DeleteDraft(_ context.Context, auctionID id.AuctionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.draft(auctionID); err != nil {
		return err
	}
	delete(s.auctions, auctionID)
	return nil
}

// draft must be called with the lock held.
func (s *InMemory) draft(auctionID id.AuctionID) (*models.Auction, error) {
	a, ok := s.auctions[auctionID]
	if !ok {
		return nil, fmt.Errorf("auction not found: %w", sentinel.ErrNotFound)
	}
	if a.Status != models.AuctionDraft {
		return nil, fmt.Errorf("auction is %s: %w", a.Status, sentinel.ErrInvalidState)
	}
	return a, nil
}

func (s *InMemory) FindByID(_ context.Context, auctionID id.AuctionID) (*models.Auction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if a, ok := s.auctions[auctionID]; ok {
		return clone(a), nil
	}
	return nil, fmt.Errorf("auction not found: %w", sentinel.ErrNotFound)
}

func (s *InMemory) List(_ context.Context) ([]*models.Auction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Auction, 0, len(s.auctions))
	for _, a := range s.auctions {
		out = append(out, clone(a))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *InMemory) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.auctions), nil
}
