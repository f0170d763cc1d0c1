package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/erazemk/stockroom/internal/model"
)

// DecrementAvailable takes quantity units out of an item's available stock.
// The guard and the write are one conditional UPDATE, so two callers racing
// for the last unit cannot both pass.
func DecrementAvailable(ctx context.Context, db DBTX, itemID string, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("quantity must be positive")
	}

	result, err := db.ExecContext(ctx,
		`UPDATE items SET quantity_available = quantity_available - ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND quantity_available >= ?`,
		quantity, itemID, quantity,
	)
	if err != nil {
		return fmt.Errorf("decrementing available quantity: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 1 {
		return nil
	}

	// Nothing changed: either the item is gone or there is not enough stock.
	var available int
	err = db.QueryRowContext(ctx,
		`SELECT quantity_available FROM items WHERE id = ?`, itemID,
	).Scan(&available)
	if err == sql.ErrNoRows {
		return fmt.Errorf("item %s: %w", itemID, model.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("checking available quantity: %w", err)
	}
	return fmt.Errorf("%w: have %d, need %d", model.ErrInsufficientStock, available, quantity)
}

// RestoreAvailable puts quantity units back into an item's available stock,
// capped at quantity_total. Units above the cap are discarded.
func RestoreAvailable(ctx context.Context, db DBTX, itemID string, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("quantity must be positive")
	}

	result, err := db.ExecContext(ctx,
		`UPDATE items SET quantity_available = MIN(quantity_available + ?, quantity_total),
		        updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		quantity, itemID,
	)
	if err != nil {
		return fmt.Errorf("restoring available quantity: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("item %s: %w", itemID, model.ErrNotFound)
	}
	return nil
}
