package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/erazemk/stockroom/internal/model"
)

const transactionSelect = `SELECT t.id, t.item_id, t.transaction_type, t.quantity, t.user_name,
	        t.project_name, t.notes, t.timestamp, t.status,
	        COALESCE(i.name, ''), COALESCE(i.sku, ''), COALESCE(i.category, ''), COALESCE(i.location, '')
	 FROM transactions t
	 LEFT JOIN items i ON i.id = t.item_id`

func scanTransaction(s scanner) (*model.Transaction, error) {
	t := &model.Transaction{}
	var notes sql.NullString
	err := s.Scan(&t.ID, &t.ItemID, &t.Type, &t.Quantity, &t.UserName,
		&t.ProjectName, &notes, &t.Timestamp, &t.Status,
		&t.ItemName, &t.ItemSKU, &t.ItemCategory, &t.ItemLocation)
	if err != nil {
		return nil, err
	}
	t.Notes = notes.String
	return t, nil
}

// InsertTransaction appends a ledger entry. ID and Timestamp are assigned
// here when the caller leaves them empty.
func InsertTransaction(ctx context.Context, db DBTX, t *model.Transaction) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.Timestamp.IsZero() {
		t.Timestamp = time.Now().UTC()
	}

	_, err := db.ExecContext(ctx,
		`INSERT INTO transactions (id, item_id, transaction_type, quantity, user_name,
		                           project_name, notes, timestamp, status)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.ItemID, t.Type, t.Quantity, t.UserName,
		t.ProjectName, nullString(t.Notes), t.Timestamp, t.Status,
	)
	if err != nil {
		return fmt.Errorf("recording %s transaction: %w", t.Type, err)
	}
	return nil
}

// GetTransaction returns a transaction by ID, or nil if it does not exist.
func GetTransaction(ctx context.Context, db DBTX, id string) (*model.Transaction, error) {
	t, err := scanTransaction(db.QueryRowContext(ctx, transactionSelect+` WHERE t.id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting transaction: %w", err)
	}
	return t, nil
}

// CloseLoan flips an open checkout to CLOSED. It succeeds at most once per
// loan; any later call gets model.ErrLoanNotOpen.
func CloseLoan(ctx context.Context, db DBTX, loanID string) error {
	result, err := db.ExecContext(ctx,
		`UPDATE transactions SET status = ?
		 WHERE id = ? AND transaction_type = ? AND status = ?`,
		model.StatusClosed, loanID, model.TransactionCheckout, model.StatusOpen,
	)
	if err != nil {
		return fmt.Errorf("closing loan: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("loan %s: %w", loanID, model.ErrLoanNotOpen)
	}
	return nil
}

// ListTransactions returns ledger entries newest first, optionally filtered.
func ListTransactions(ctx context.Context, db DBTX, filter model.TransactionFilter) ([]model.Transaction, error) {
	query := transactionSelect + ` WHERE 1=1`
	var args []any

	if filter.Type != "" {
		query += ` AND t.transaction_type = ?`
		args = append(args, filter.Type)
	}
	if filter.Status != "" {
		query += ` AND t.status = ?`
		args = append(args, filter.Status)
	}
	if filter.ItemID != "" {
		query += ` AND t.item_id = ?`
		args = append(args, filter.ItemID)
	}

	query += ` ORDER BY t.timestamp DESC, t.rowid DESC`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	var transactions []model.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}
		transactions = append(transactions, *t)
	}
	return transactions, rows.Err()
}
