package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erazemk/stockroom/internal/db"
	"github.com/erazemk/stockroom/internal/model"
)

func TestInsertAndGetTransaction(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	item, err := CreateItem(ctx, database, itemFields("BK-1", "Beaker", 5, 5))
	require.NoError(t, err)

	tx := &model.Transaction{
		ItemID: item.ID, Type: model.TransactionCheckout, Quantity: 2,
		UserName: "ana", ProjectName: "PCR", Notes: "bench 2", Status: model.StatusOpen,
	}
	require.NoError(t, InsertTransaction(ctx, database, tx))
	assert.NotEmpty(t, tx.ID)
	assert.False(t, tx.Timestamp.IsZero())

	got, err := GetTransaction(ctx, database, tx.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 2, got.Quantity)
	assert.Equal(t, "PCR", got.ProjectName)
	assert.Equal(t, "bench 2", got.Notes)
	assert.Equal(t, "Beaker", got.ItemName)
	assert.Equal(t, "BK-1", got.ItemSKU)
	assert.WithinDuration(t, tx.Timestamp, got.Timestamp, time.Second)
}

func TestCloseLoanOnlyOnce(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	item, err := CreateItem(ctx, database, itemFields("BK-1", "Beaker", 5, 5))
	require.NoError(t, err)

	loan := &model.Transaction{ItemID: item.ID, Type: model.TransactionCheckout, Quantity: 1, UserName: "ana", Status: model.StatusOpen}
	require.NoError(t, InsertTransaction(ctx, database, loan))

	require.NoError(t, CloseLoan(ctx, database, loan.ID))
	assert.ErrorIs(t, CloseLoan(ctx, database, loan.ID), model.ErrLoanNotOpen)

	got, _ := GetTransaction(ctx, database, loan.ID)
	assert.Equal(t, model.StatusClosed, got.Status)
}

func TestCloseLoanRejectsNonCheckout(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	item, err := CreateItem(ctx, database, itemFields("BK-1", "Beaker", 5, 5))
	require.NoError(t, err)

	ret := &model.Transaction{ItemID: item.ID, Type: model.TransactionReturn, Quantity: 1, UserName: "ana", Status: model.StatusOpen}
	require.NoError(t, InsertTransaction(ctx, database, ret))

	assert.ErrorIs(t, CloseLoan(ctx, database, ret.ID), model.ErrLoanNotOpen)
}

func TestListTransactionsFiltered(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	beaker, err := CreateItem(ctx, database, itemFields("BK-1", "Beaker", 5, 5))
	require.NoError(t, err)
	flask, err := CreateItem(ctx, database, itemFields("FL-1", "Flask", 5, 5))
	require.NoError(t, err)

	base := time.Now().UTC()
	entries := []*model.Transaction{
		{ItemID: beaker.ID, Type: model.TransactionCheckout, Quantity: 1, UserName: "ana", Status: model.StatusOpen, Timestamp: base},
		{ItemID: beaker.ID, Type: model.TransactionReturn, Quantity: 1, UserName: "ana", Status: model.StatusClosed, Timestamp: base.Add(time.Second)},
		{ItemID: flask.ID, Type: model.TransactionCheckout, Quantity: 2, UserName: "bo", Status: model.StatusOpen, Timestamp: base.Add(2 * time.Second)},
	}
	for _, e := range entries {
		require.NoError(t, InsertTransaction(ctx, database, e))
	}

	all, err := ListTransactions(ctx, database, model.TransactionFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, entries[2].ID, all[0].ID, "newest first")

	open, err := ListTransactions(ctx, database, model.TransactionFilter{
		Type: model.TransactionCheckout, Status: model.StatusOpen,
	})
	require.NoError(t, err)
	assert.Len(t, open, 2)

	byItem, err := ListTransactions(ctx, database, model.TransactionFilter{ItemID: beaker.ID})
	require.NoError(t, err)
	assert.Len(t, byItem, 2)
}
