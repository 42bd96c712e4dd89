package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mtgkit/deckforge/internal/deck"
)

func TestCollectionUpsertAndGet(t *testing.T) {
	repo := NewCollectionRepository(setupTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, "Lightning Bolt", 4))

	// Lookups are case-insensitive.
	qty, err := repo.Get(ctx, "LIGHTNING BOLT")
	require.NoError(t, err)
	assert.Equal(t, 4, qty)

	// Upsert overwrites rather than accumulates.
	require.NoError(t, repo.Upsert(ctx, "Lightning Bolt", 2))
	qty, err = repo.Get(ctx, "Lightning Bolt")
	require.NoError(t, err)
	assert.Equal(t, 2, qty)
}

func TestCollectionGetMissing(t *testing.T) {
	repo := NewCollectionRepository(setupTestDB(t))

	qty, err := repo.Get(context.Background(), "Black Lotus")
	require.NoError(t, err)
	assert.Equal(t, 0, qty)
}

func TestCollectionUpsertZeroRemoves(t *testing.T) {
	repo := NewCollectionRepository(setupTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, "Opt", 3))
	require.NoError(t, repo.Upsert(ctx, "Opt", 0))

	snapshot, err := repo.Snapshot(ctx)
	require.NoError(t, err)
	assert.Empty(t, snapshot)
}

func TestCollectionSnapshot(t *testing.T) {
	repo := NewCollectionRepository(setupTestDB(t))
	ctx := context.Background()

	for name, qty := range map[string]int{"Shock": 4, "Opt": 2, "Embercleave": 1} {
		require.NoError(t, repo.Upsert(ctx, name, qty))
	}

	snapshot, err := repo.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, snapshot, 3)

	qty, ok := snapshot.Owned("Shock")
	assert.True(t, ok)
	assert.Equal(t, 4, qty)
}

func TestCollectionReplaceAll(t *testing.T) {
	repo := NewCollectionRepository(setupTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, "Old Card", 4))

	replacement := deck.Collection{}
	replacement.Add("New Card", 2)
	replacement.Add("Skipped Card", 0)
	require.NoError(t, repo.ReplaceAll(ctx, replacement))

	snapshot, err := repo.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, snapshot, 1)

	qty, ok := snapshot.Owned("New Card")
	assert.True(t, ok)
	assert.Equal(t, 2, qty)
}
