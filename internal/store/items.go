package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/erazemk/stockroom/internal/model"
)

const itemColumns = `id, sku, name, category, type, location,
	quantity_total, quantity_available, min_stock_threshold, unit_price, notes,
	created_at, updated_at`

func scanItem(s scanner) (*model.Item, error) {
	item := &model.Item{}
	var notes sql.NullString
	err := s.Scan(&item.ID, &item.SKU, &item.Name, &item.Category, &item.Type, &item.Location,
		&item.QuantityTotal, &item.QuantityAvailable, &item.MinStockThreshold, &item.UnitPrice, &notes,
		&item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}
	item.Notes = notes.String
	return item, nil
}

// CreateItem inserts a new catalog entry from manual entry.
func CreateItem(ctx context.Context, db DBTX, f model.ItemFields) (*model.Item, error) {
	if err := f.Check(); err != nil {
		return nil, err
	}

	id := uuid.NewString()
	_, err := db.ExecContext(ctx,
		`INSERT INTO items (id, sku, name, category, type, location,
		                    quantity_total, quantity_available, min_stock_threshold, unit_price, notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, f.SKU, f.Name, f.Category, f.Type, f.Location,
		f.QuantityTotal, f.QuantityAvailable, f.MinStockThreshold, f.UnitPrice, nullString(f.Notes),
	)
	if isUniqueViolation(err) {
		return nil, fmt.Errorf("creating item %q: %w", f.SKU, model.ErrDuplicateSKU)
	}
	if err != nil {
		return nil, fmt.Errorf("creating item: %w", err)
	}

	return GetItem(ctx, db, id)
}

// GetItem returns an item by ID, or nil if it does not exist.
func GetItem(ctx context.Context, db DBTX, id string) (*model.Item, error) {
	item, err := scanItem(db.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE id = ?`, id,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	return item, nil
}

// GetItemBySKU returns an item by its business key, or nil if none matches.
// Scanned barcodes resolve through here.
func GetItemBySKU(ctx context.Context, db DBTX, sku string) (*model.Item, error) {
	item, err := scanItem(db.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE sku = ?`, sku,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting item by sku: %w", err)
	}
	return item, nil
}

// ListItems returns all items ordered by name.
func ListItems(ctx context.Context, db DBTX) ([]model.Item, error) {
	return queryItems(ctx, db, `SELECT `+itemColumns+` FROM items ORDER BY name, sku`)
}

// ListLowStockItems returns items whose available quantity is at or below
// their reorder threshold.
func ListLowStockItems(ctx context.Context, db DBTX) ([]model.Item, error) {
	return queryItems(ctx, db,
		`SELECT `+itemColumns+` FROM items
		 WHERE quantity_available <= min_stock_threshold
		 ORDER BY quantity_available, name`)
}

func queryItems(ctx context.Context, db DBTX, query string, args ...any) ([]model.Item, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	var items []model.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

// UpdateItem replaces an item's mutable fields (a direct edit), including
// quantity_available. When expectedAvailable is non-nil the edit applies only
// if the stored quantity_available still equals it; otherwise it fails with
// model.ErrStaleItem, so an edit based on an old read cannot undo a checkout
// or return committed in between.
func UpdateItem(ctx context.Context, db DBTX, id string, f model.ItemFields, expectedAvailable *int) (*model.Item, error) {
	if err := f.Check(); err != nil {
		return nil, err
	}

	var expected any
	if expectedAvailable != nil {
		expected = *expectedAvailable
	}

	result, err := db.ExecContext(ctx,
		`UPDATE items SET sku = ?, name = ?, category = ?, type = ?, location = ?,
		        quantity_total = ?, quantity_available = ?, min_stock_threshold = ?,
		        unit_price = ?, notes = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND (? IS NULL OR quantity_available = ?)`,
		f.SKU, f.Name, f.Category, f.Type, f.Location,
		f.QuantityTotal, f.QuantityAvailable, f.MinStockThreshold,
		f.UnitPrice, nullString(f.Notes), id, expected, expected,
	)
	if isUniqueViolation(err) {
		return nil, fmt.Errorf("updating item %q: %w", f.SKU, model.ErrDuplicateSKU)
	}
	if err != nil {
		return nil, fmt.Errorf("updating item: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		current, err := GetItem(ctx, db, id)
		if err != nil {
			return nil, err
		}
		if current == nil {
			return nil, fmt.Errorf("updating item %s: %w", id, model.ErrNotFound)
		}
		return nil, fmt.Errorf("updating item %s: available is %d, expected %d: %w",
			id, current.QuantityAvailable, *expectedAvailable, model.ErrStaleItem)
	}

	return GetItem(ctx, db, id)
}

// UpsertItem inserts an item or, when the SKU already exists, replaces its
// mutable fields in place. The existing id, created_at and ledger entries are
// left alone. Fields are written as given; no invariant check happens here.
func UpsertItem(ctx context.Context, db DBTX, f model.ItemFields) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO items (id, sku, name, category, type, location,
		                    quantity_total, quantity_available, min_stock_threshold, unit_price, notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (sku) DO UPDATE SET
		     name = excluded.name,
		     category = excluded.category,
		     type = excluded.type,
		     location = excluded.location,
		     quantity_total = excluded.quantity_total,
		     quantity_available = excluded.quantity_available,
		     min_stock_threshold = excluded.min_stock_threshold,
		     unit_price = excluded.unit_price,
		     notes = excluded.notes,
		     updated_at = CURRENT_TIMESTAMP`,
		uuid.NewString(), f.SKU, f.Name, f.Category, f.Type, f.Location,
		f.QuantityTotal, f.QuantityAvailable, f.MinStockThreshold, f.UnitPrice, nullString(f.Notes),
	)
	if err != nil {
		return fmt.Errorf("upserting item %q: %w", f.SKU, err)
	}
	return nil
}

// DeleteItem removes an item. Its transactions go with it (ON DELETE CASCADE).
func DeleteItem(ctx context.Context, db DBTX, id string) error {
	result, err := db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("deleting item %s: %w", id, model.ErrNotFound)
	}
	return nil
}

// DeleteItems removes several items at once and returns how many existed.
func DeleteItems(ctx context.Context, db DBTX, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	result, err := db.ExecContext(ctx, `DELETE FROM items WHERE id IN (`+placeholders+`)`, args...)
	if err != nil {
		return 0, fmt.Errorf("deleting items: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting deleted items: %w", err)
	}
	return n, nil
}
