package importer

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/erazemk/stockroom/internal/model"
	"github.com/erazemk/stockroom/internal/store"
)

// Dedupe collapses rows sharing a SKU. The last occurrence's values win and
// the survivor takes the slot where that SKU first appeared.
func Dedupe(rows []model.ImportRow) []model.ImportRow {
	slot := make(map[string]int, len(rows))
	out := make([]model.ImportRow, 0, len(rows))
	for _, r := range rows {
		if i, seen := slot[r.SKU]; seen {
			out[i] = r
			continue
		}
		slot[r.SKU] = len(out)
		out = append(out, r)
	}
	return out
}

// Reconcile writes rows into the catalog keyed by SKU: new SKUs become new
// items, known SKUs have their fields replaced in place. The whole batch is
// one transaction, so either every row lands or none does. It returns the
// number of rows written after deduplication.
//
// Rows are written as given; filtering out invalid rows is up to the caller.
func Reconcile(ctx context.Context, db *sql.DB, rows []model.ImportRow) (int, error) {
	rows = Dedupe(rows)
	if len(rows) == 0 {
		return 0, nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning import: %w", err)
	}
	defer tx.Rollback()

	for _, r := range rows {
		if err := store.UpsertItem(ctx, tx, r.Fields()); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing import: %w", err)
	}
	return len(rows), nil
}
