package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erazemk/stockroom/internal/db"
	"github.com/erazemk/stockroom/internal/model"
)

func TestDecrementAvailable(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	item, err := CreateItem(ctx, database, itemFields("BK-1", "Beaker", 5, 5))
	require.NoError(t, err)

	require.NoError(t, DecrementAvailable(ctx, database, item.ID, 3))

	got, _ := GetItem(ctx, database, item.ID)
	assert.Equal(t, 2, got.QuantityAvailable)
	assert.Equal(t, 5, got.QuantityTotal)
}

func TestDecrementAvailableInsufficient(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	item, err := CreateItem(ctx, database, itemFields("BK-1", "Beaker", 5, 2))
	require.NoError(t, err)

	err = DecrementAvailable(ctx, database, item.ID, 3)
	assert.ErrorIs(t, err, model.ErrInsufficientStock)

	got, _ := GetItem(ctx, database, item.ID)
	assert.Equal(t, 2, got.QuantityAvailable)
}

func TestDecrementAvailableMissingItem(t *testing.T) {
	database := db.NewTestDB(t)

	err := DecrementAvailable(context.Background(), database, "missing", 1)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestRestoreAvailableCapsAtTotal(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	item, err := CreateItem(ctx, database, itemFields("BK-1", "Beaker", 5, 4))
	require.NoError(t, err)

	require.NoError(t, RestoreAvailable(ctx, database, item.ID, 3))

	got, _ := GetItem(ctx, database, item.ID)
	assert.Equal(t, 5, got.QuantityAvailable)
}

func TestNonPositiveQuantityRejected(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	assert.Error(t, DecrementAvailable(ctx, database, "x", 0))
	assert.Error(t, RestoreAvailable(ctx, database, "x", -1))
}
