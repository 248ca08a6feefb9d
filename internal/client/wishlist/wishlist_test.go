package wishlist

import (
	"context"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"festdraft/internal/client/storage"
	"festdraft/internal/roster/models"
	id "festdraft/pkg/domain"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func participant(pid int64, name string) *models.Participant {
	return &models.Participant{ID: id.ParticipantID(pid), Name: name, Status: models.StatusNotSelected, Active: true}
}

func names(items []*Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Name)
	}
	return out
}

func open(t *testing.T, s storage.Store, opts ...Option) *Manager {
	t.Helper()
	m, err := Open(context.Background(), s, opts...)
	require.NoError(t, err)
	t.Cleanup(m.Close)
	return m
}

func TestAddIsIdempotent(t *testing.T) {
	ctx := context.Background()
	m := open(t, storage.NewMemoryProfile().Open())

	added, err := m.Add(ctx, "Axis", participant(1, "Alice"))
	require.NoError(t, err)
	assert.True(t, added)
	added, err = m.Add(ctx, "Axis", participant(1, "Alice"))
	require.NoError(t, err)
	assert.False(t, added)
	_, err = m.Add(ctx, "Axis", participant(2, "Bob"))
	require.NoError(t, err)

	assert.Equal(t, []string{"Alice", "Bob"}, names(m.List("Axis")))
	assert.True(t, m.Contains("Axis", 1))
	assert.False(t, m.Contains("Nexus", 1))
}

func TestWishlistsArePerTeam(t *testing.T) {
	ctx := context.Background()
	m := open(t, storage.NewMemoryProfile().Open())

	_, err := m.Add(ctx, "Axis", participant(1, "Alice"))
	require.NoError(t, err)
	_, err = m.Add(ctx, "Nexus", participant(1, "Alice"))
	require.NoError(t, err)

	assert.Equal(t, []string{"Axis", "Nexus"}, m.Teams())
	assert.Len(t, m.List("Nexus"), 1)
	assert.Empty(t, m.List("Vertex"))
}

func TestAddRejects(t *testing.T) {
	m := open(t, storage.NewMemoryProfile().Open())

	_, err := m.Add(context.Background(), "", participant(1, "Alice"))
	assert.ErrorIs(t, err, ErrNoTeam)

	drafted := participant(2, "Bob")
	drafted.TeamID = 9
	_, err = m.Add(context.Background(), "Axis", drafted)
	assert.ErrorIs(t, err, ErrAssigned)
	assert.Empty(t, m.Teams())
}

func TestRemove(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryProfile().Open()
	m := open(t, store)
	_, err := m.Add(ctx, "Axis", participant(1, "Alice"))
	require.NoError(t, err)
	_, err = m.Add(ctx, "Axis", participant(2, "Bob"))
	require.NoError(t, err)

	removed, err := m.Remove(ctx, "Axis", 1)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = m.Remove(ctx, "Axis", 1)
	require.NoError(t, err)
	assert.False(t, removed, "removing a non-member is a no-op")
	removed, err = m.Remove(ctx, "Vertex", 2)
	require.NoError(t, err)
	assert.False(t, removed)

	got, err := storage.GetJSON[[]Entry](ctx, store, Key, nil)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, []string{"Bob"}, names(got[0].Participants))
}

func TestListReturnsCopies(t *testing.T) {
	m := open(t, storage.NewMemoryProfile().Open())
	_, err := m.Add(context.Background(), "Axis", participant(1, "Alice"))
	require.NoError(t, err)

	m.List("Axis")[0].Name = "changed"
	assert.Equal(t, "Alice", m.List("Axis")[0].Name)
}

func TestOpenReadsStoredValue(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryProfile().Open()
	stored := []Entry{{Team: "Equinox", Participants: []*Item{{Participant: participant(5, "Eve"), Priority: 2}}}}
	require.NoError(t, storage.SetJSON(ctx, store, Key, stored))

	m := open(t, store)

	if diff := cmp.Diff([]string{"Eve"}, names(m.List("Equinox"))); diff != "" {
		t.Errorf("wishlist mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 2, m.List("Equinox")[0].Priority)
}

func TestOpenReadsUnrankedValue(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryProfile().Open()
	raw := `[{"team":"Axis","participants":[{"id":"7","name":"Gina","status":"Not Selected","isActive":true},{"priority":1}]}]`
	require.NoError(t, store.Set(ctx, Key, []byte(raw)))

	m := open(t, store)

	got := m.List("Axis")
	require.Len(t, got, 1, "items without a participant are dropped")
	assert.Equal(t, id.ParticipantID(7), got[0].ID)
	assert.Zero(t, got[0].Priority)
	assert.Empty(t, got[0].Notes)
}

func TestOpenDiscardsCorruptValue(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryProfile().Open()
	require.NoError(t, store.Set(ctx, Key, []byte(`{"team":`)))

	m := open(t, store)

	assert.Empty(t, m.Teams())
	raw, err := store.Get(ctx, Key)
	require.NoError(t, err)
	assert.Nil(t, raw)
}

func TestExternalWritesReplaceLocalCopy(t *testing.T) {
	ctx := context.Background()
	profile := storage.NewMemoryProfile()
	var notified atomic.Int32
	mine := open(t, profile.Open(), WithOnChange(func() { notified.Add(1) }))
	theirs := open(t, profile.Open())

	_, err := mine.Add(ctx, "Axis", participant(1, "Alice"))
	require.NoError(t, err)
	assert.Zero(t, notified.Load(), "own writes are not echoed")

	_, err = theirs.Add(ctx, "Axis", participant(2, "Bob"))
	require.NoError(t, err)

	assert.Equal(t, int32(1), notified.Load())
	assert.Equal(t, []string{"Alice", "Bob"}, names(mine.List("Axis")))

	require.NoError(t, profile.Open().Remove(ctx, Key))
	assert.Empty(t, mine.Teams())
	assert.Empty(t, theirs.Teams())
}

func TestCloseStopsFollowing(t *testing.T) {
	ctx := context.Background()
	profile := storage.NewMemoryProfile()
	mine := open(t, profile.Open())
	mine.Close()

	theirs := open(t, profile.Open())
	_, err := theirs.Add(ctx, "Axis", participant(1, "Alice"))
	require.NoError(t, err)

	assert.Empty(t, mine.Teams())
}

func TestUpdateRanksAndAnnotates(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryProfile().Open()
	m := open(t, store)
	for i, name := range []string{"Alice", "Bob", "Cara"} {
		_, err := m.Add(ctx, "Axis", participant(int64(i+1), name))
		require.NoError(t, err)
	}

	updated, err := m.Update(ctx, "Axis", 3, ItemUpdate{Priority: ptr(1), Notes: ptr("  strong closer ")})
	require.NoError(t, err)
	assert.True(t, updated)
	_, err = m.Update(ctx, "Axis", 2, ItemUpdate{Priority: ptr(2)})
	require.NoError(t, err)

	assert.Equal(t, []string{"Cara", "Bob", "Alice"}, names(m.List("Axis")))
	assert.Equal(t, "strong closer", m.List("Axis")[0].Notes)

	got, err := storage.GetJSON[[]Entry](ctx, store, Key, nil)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, []string{"Alice", "Bob", "Cara"}, names(got[0].Participants), "storage keeps insertion order")

	_, err = m.Update(ctx, "Axis", 3, ItemUpdate{Priority: ptr(0)})
	require.NoError(t, err)
	assert.Equal(t, []string{"Bob", "Alice", "Cara"}, names(m.List("Axis")))
	assert.Equal(t, "strong closer", m.List("Axis")[2].Notes, "notes survive a priority change")
}

func TestUpdateRejects(t *testing.T) {
	ctx := context.Background()
	m := open(t, storage.NewMemoryProfile().Open())
	_, err := m.Add(ctx, "Axis", participant(1, "Alice"))
	require.NoError(t, err)

	tests := []struct {
		name   string
		update ItemUpdate
		want   string
	}{
		{"negative priority", ItemUpdate{Priority: ptr(-1)}, "priority must be at least 0"},
		{"priority past the last rank", ItemUpdate{Priority: ptr(MaxPriority + 1)}, "priority must be at most 5"},
		{"long notes", ItemUpdate{Notes: ptr(strings.Repeat("x", 281))}, "notes must be at most 280 characters"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.Update(ctx, "Axis", 1, tt.update)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	updated, err := m.Update(ctx, "Axis", 9, ItemUpdate{Priority: ptr(1)})
	require.NoError(t, err)
	assert.False(t, updated)
	updated, err = m.Update(ctx, "Nexus", 1, ItemUpdate{Priority: ptr(1)})
	require.NoError(t, err)
	assert.False(t, updated)
	assert.Zero(t, m.List("Axis")[0].Priority)
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryProfile().Open()
	m := open(t, store)
	_, err := m.Add(ctx, "Axis", participant(1, "Alice"))
	require.NoError(t, err)
	_, err = m.Add(ctx, "Axis", participant(2, "Bob"))
	require.NoError(t, err)
	_, err = m.Add(ctx, "Nexus", participant(3, "Cara"))
	require.NoError(t, err)

	n, err := m.Clear(ctx, "Axis")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Empty(t, m.List("Axis"))
	assert.Equal(t, []string{"Nexus"}, m.Teams())

	n, err = m.Clear(ctx, "Axis")
	require.NoError(t, err)
	assert.Zero(t, n)

	got, err := storage.GetJSON[[]Entry](ctx, store, Key, nil)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Nexus", got[0].Team)
}

func ptr[T any](v T) *T { return &v }
