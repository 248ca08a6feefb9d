// Package wishlist keeps each team's draft wishlist in client storage and in
// step with other views writing the same profile.
package wishlist

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"festdraft/internal/client/storage"
	"festdraft/internal/roster/models"
	id "festdraft/pkg/domain"
	"festdraft/pkg/validation"
)

// Key is the storage key of the whole wishlist collection.
const Key = "fms_wishlist"

// MaxPriority is the lowest rank a wishlist item can carry. Rank 1 is the
// first pick; 0 leaves the item unranked.
const MaxPriority = 5

var (
	ErrNoTeam   = errors.New("wishlist needs a team")
	ErrAssigned = errors.New("participant is already on a team")
)

// Item is a wishlisted participant with the manager's own ranking and
// notes. The participant fields are stored flat so values written before
// items carried a priority still decode.
type Item struct {
	*models.Participant
	Priority int    `json:"priority,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

// ItemUpdate changes the non-nil fields of an item. A zero priority or an
// empty note clears it.
type ItemUpdate struct {
	Priority *int
	Notes    *string
}

func (u ItemUpdate) validate() error {
	if u.Priority != nil {
		if err := validation.Var("priority", *u.Priority, fmt.Sprintf("min=0,max=%d", MaxPriority)); err != nil {
			return err
		}
	}
	if u.Notes != nil {
		if err := validation.Var("notes", *u.Notes, "max=280"); err != nil {
			return err
		}
	}
	return nil
}

// Entry is one team's wishlist in stored order.
type Entry struct {
	Team         string  `json:"team"`
	Participants []*Item `json:"participants"`
}

// Manager owns the wishlist key. It is safe for concurrent use.
type Manager struct {
	store    storage.Store
	logger   *slog.Logger
	onChange func()

	mu      sync.Mutex
	entries []Entry
	cancel  func()
}

type Option func(*Manager)

func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithOnChange registers fn to run after another view replaced the
// wishlist. It runs on the storage notification goroutine.
func WithOnChange(fn func()) Option {
	return func(m *Manager) { m.onChange = fn }
}

// Open loads the stored wishlist. A corrupt value is discarded and the
// manager starts empty. When store is also a storage.Watcher, writes from
// other views replace the in-memory copy.
func Open(ctx context.Context, store storage.Store, opts ...Option) (*Manager, error) {
	m := &Manager{
		store:  store,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(m)
	}
	entries, err := m.load(ctx)
	if err != nil {
		return nil, err
	}
	m.entries = entries
	if w, ok := store.(storage.Watcher); ok {
		m.cancel = w.OnExternalChange(Key, m.replace)
	}
	return m, nil
}

func (m *Manager) load(ctx context.Context) ([]Entry, error) {
	entries, err := storage.GetJSON[[]Entry](ctx, m.store, Key, nil)
	if errors.Is(err, storage.ErrDiscarded) {
		m.logger.Warn("discarded unreadable wishlist", "error", err)
		return nil, nil
	}
	return dropBlank(entries), err
}

// replace adopts a value written elsewhere. Last writer wins.
func (m *Manager) replace(value []byte) {
	var entries []Entry
	if value != nil {
		decoded, ok := storage.DecodeJSON[[]Entry](value)
		if !ok {
			m.logger.Warn("ignoring unreadable wishlist written by another view")
			return
		}
		entries = dropBlank(decoded)
	}
	m.mu.Lock()
	m.entries = entries
	m.mu.Unlock()
	if m.onChange != nil {
		m.onChange()
	}
}

// Add appends p to team's wishlist. It reports false when p was already
// there. Participants already on a team are refused with ErrAssigned.
func (m *Manager) Add(ctx context.Context, team string, p *models.Participant) (bool, error) {
	if team == "" {
		return false, ErrNoTeam
	}
	if p.HasTeam() {
		return false, ErrAssigned
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	entries := cloneEntries(m.entries)
	i := indexOf(entries, team)
	if i < 0 {
		entries = append(entries, Entry{Team: team})
		i = len(entries) - 1
	}
	if containsParticipant(entries[i].Participants, p.ID) {
		return false, nil
	}
	cp := *p
	entries[i].Participants = append(entries[i].Participants, &Item{Participant: &cp})
	if err := m.persistLocked(ctx, entries); err != nil {
		return false, err
	}
	return true, nil
}

// Remove drops participantID from team's wishlist. It reports false when
// there was nothing to remove, in which case storage is left untouched.
func (m *Manager) Remove(ctx context.Context, team string, participantID id.ParticipantID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entries := cloneEntries(m.entries)
	i := indexOf(entries, team)
	if i < 0 {
		return false, nil
	}
	before := len(entries[i].Participants)
	entries[i].Participants = slices.DeleteFunc(entries[i].Participants, func(it *Item) bool {
		return it.ID == participantID
	})
	if len(entries[i].Participants) == before {
		return false, nil
	}
	if err := m.persistLocked(ctx, entries); err != nil {
		return false, err
	}
	return true, nil
}

// Update ranks or annotates participantID on team's wishlist. It reports
// false when the participant is not there.
func (m *Manager) Update(ctx context.Context, team string, participantID id.ParticipantID, u ItemUpdate) (bool, error) {
	if err := u.validate(); err != nil {
		return false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	entries := cloneEntries(m.entries)
	i := indexOf(entries, team)
	if i < 0 {
		return false, nil
	}
	j := slices.IndexFunc(entries[i].Participants, func(it *Item) bool { return it.ID == participantID })
	if j < 0 {
		return false, nil
	}
	it := *entries[i].Participants[j]
	if u.Priority != nil {
		it.Priority = *u.Priority
	}
	if u.Notes != nil {
		it.Notes = strings.TrimSpace(*u.Notes)
	}
	entries[i].Participants[j] = &it
	if err := m.persistLocked(ctx, entries); err != nil {
		return false, err
	}
	return true, nil
}

// Clear drops team's whole wishlist and returns how many items it held.
// Storage is left untouched when there was nothing to clear.
func (m *Manager) Clear(ctx context.Context, team string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entries := cloneEntries(m.entries)
	i := indexOf(entries, team)
	if i < 0 {
		return 0, nil
	}
	n := len(entries[i].Participants)
	entries = slices.Delete(entries, i, i+1)
	if err := m.persistLocked(ctx, entries); err != nil {
		return 0, err
	}
	return n, nil
}

func (m *Manager) persistLocked(ctx context.Context, entries []Entry) error {
	if err := storage.SetJSON(ctx, m.store, Key, entries); err != nil {
		return err
	}
	m.entries = entries
	return nil
}

// List returns team's wishlist ranked by priority. Unranked items follow
// the ranked ones and keep insertion order.
func (m *Manager) List(team string) []*Item {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := indexOf(m.entries, team)
	if i < 0 {
		return nil
	}
	out := make([]*Item, len(m.entries[i].Participants))
	for j, it := range m.entries[i].Participants {
		p := *it.Participant
		out[j] = &Item{Participant: &p, Priority: it.Priority, Notes: it.Notes}
	}
	slices.SortStableFunc(out, func(a, b *Item) int { return rank(a) - rank(b) })
	return out
}

func rank(it *Item) int {
	if it.Priority == 0 {
		return MaxPriority + 1
	}
	return it.Priority
}

func (m *Manager) Contains(team string, participantID id.ParticipantID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := indexOf(m.entries, team)
	return i >= 0 && containsParticipant(m.entries[i].Participants, participantID)
}

// Teams names every team with a stored wishlist, in stored order.
func (m *Manager) Teams() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	teams := make([]string, 0, len(m.entries))
	for _, e := range m.entries {
		teams = append(teams, e.Team)
	}
	return teams
}

// Close stops following other views.
func (m *Manager) Close() {
	m.mu.Lock()
	cancel := m.cancel
	m.cancel = nil
	m.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

func indexOf(entries []Entry, team string) int {
	return slices.IndexFunc(entries, func(e Entry) bool { return e.Team == team })
}

func containsParticipant(items []*Item, participantID id.ParticipantID) bool {
	return slices.ContainsFunc(items, func(it *Item) bool { return it.ID == participantID })
}

// dropBlank removes items that decoded without a participant.
func dropBlank(entries []Entry) []Entry {
	for i := range entries {
		entries[i].Participants = slices.DeleteFunc(entries[i].Participants, func(it *Item) bool {
			return it == nil || it.Participant == nil
		})
	}
	return entries
}

// cloneEntries copies the entry slice and each item slice so a failed
// write leaves m.entries untouched. Items are replaced, never mutated.
func cloneEntries(entries []Entry) []Entry {
	out := make([]Entry, len(entries))
	for i, e := range entries {
		out[i] = Entry{Team: e.Team, Participants: slices.Clone(e.Participants)}
	}
	return out
}
