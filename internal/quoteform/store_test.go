package quoteform

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(WindowReplacement(), time.Minute)

	s, err := store.Create(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, s.ID())

	fillStep(t, s)
	require.NoError(t, s.Advance(1))
	require.NoError(t, store.Save(ctx, s))

	loaded, err := store.Load(ctx, s.ID())
	require.NoError(t, err)
	assert.Equal(t, 2, loaded.CurrentStep())
	if diff := cmp.Diff(s.Values(), loaded.Values()); diff != "" {
		t.Fatalf("values differ (-want +got):\n%s", diff)
	}

	// Loaded sessions are copies until saved.
	require.NoError(t, loaded.Retreat(2))
	again, err := store.Load(ctx, s.ID())
	require.NoError(t, err)
	assert.Equal(t, 2, again.CurrentStep())
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(WindowReplacement(), time.Minute)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	s, err := store.Create(ctx)
	require.NoError(t, err)

	now = now.Add(59 * time.Second)
	_, err = store.Load(ctx, s.ID())
	require.NoError(t, err)

	now = now.Add(time.Minute)
	_, err = store.Load(ctx, s.ID())
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.Equal(t, 0, store.Len())
}

func TestMemoryStoreDelete(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(WindowReplacement(), 0)
	s, err := store.Create(ctx)
	require.NoError(t, err)
	require.NoError(t, store.Delete(ctx, s.ID()))
	_, err = store.Load(ctx, s.ID())
	assert.ErrorIs(t, err, ErrSessionNotFound)
	require.NoError(t, store.Delete(ctx, "missing"))
}

func TestRestoreRejectsForeignSnapshots(t *testing.T) {
	def := WindowReplacement()
	snap := NewSession("x", def).Snapshot()

	other := snap
	other.Form = "roofing"
	_, err := Restore(def, other)
	assert.Error(t, err)

	other = snap
	other.CurrentStep = 9
	_, err = Restore(def, other)
	assert.Error(t, err)

	other = snap
	other.Status = "paused"
	_, err = Restore(def, other)
	assert.Error(t, err)
}

func TestSnapshotKeepsConfirmation(t *testing.T) {
	def := WindowReplacement()
	s := NewSession("x", def)
	walkToFinal(t, s)
	fillStep(t, s)
	c, err := s.Submit()
	require.NoError(t, err)

	restored, err := Restore(def, s.Snapshot())
	require.NoError(t, err)
	assert.True(t, restored.Submitted())
	got, ok := restored.Confirmation()
	require.True(t, ok)
	assert.Equal(t, c, got)
	_, err = restored.SetField(FieldZipcode, "11111")
	assert.ErrorIs(t, err, ErrSubmitted)
}
