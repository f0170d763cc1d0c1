// Package ledger implements checkout and return of catalog items. Each
// operation is one SQL transaction: the quantity change and the ledger
// entries it produces commit together or not at all.
package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/erazemk/stockroom/internal/model"
	"github.com/erazemk/stockroom/internal/store"
)

// CheckoutRequest describes a new loan.
type CheckoutRequest struct {
	ItemID      string `json:"item_id"`
	Quantity    int    `json:"quantity"`
	UserName    string `json:"user_name"`
	ProjectName string `json:"project_name"`
	Notes       string `json:"notes"`
}

// ReturnRequest identifies a loan to close. ItemID and Quantity are
// optional; when set they must match the stored loan.
type ReturnRequest struct {
	LoanID   string `json:"loan_id"`
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
}

// Checkout deducts quantity from an item's available stock and opens a loan.
// It fails with model.ErrInsufficientStock, leaving everything untouched,
// when fewer than quantity units are available.
func Checkout(ctx context.Context, db *sql.DB, req CheckoutRequest) (*model.Transaction, error) {
	if req.ItemID == "" {
		return nil, &model.FieldError{Field: "item_id", Message: "item_id is required"}
	}
	if req.Quantity <= 0 {
		return nil, &model.FieldError{Field: "quantity", Message: "quantity must be positive"}
	}
	if strings.TrimSpace(req.UserName) == "" {
		return nil, &model.FieldError{Field: "user_name", Message: "user_name is required"}
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning checkout: %w", err)
	}
	defer tx.Rollback()

	if err := store.DecrementAvailable(ctx, tx, req.ItemID, req.Quantity); err != nil {
		return nil, err
	}

	loan := &model.Transaction{
		ItemID:      req.ItemID,
		Type:        model.TransactionCheckout,
		Quantity:    req.Quantity,
		UserName:    strings.TrimSpace(req.UserName),
		ProjectName: strings.TrimSpace(req.ProjectName),
		Notes:       strings.TrimSpace(req.Notes),
		Status:      model.StatusOpen,
	}
	if err := store.InsertTransaction(ctx, tx, loan); err != nil {
		return nil, err
	}

	opened, err := committedRow(ctx, tx, loan.ID)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing checkout: %w", err)
	}
	return opened, nil
}

// Return closes an open loan, restores its quantity to the item (capped at
// quantity_total) and appends a RETURN entry referencing the loan. A loan can
// be returned only once; later attempts fail with model.ErrLoanNotOpen.
func Return(ctx context.Context, db *sql.DB, req ReturnRequest) (*model.Transaction, error) {
	if req.LoanID == "" {
		return nil, &model.FieldError{Field: "loan_id", Message: "loan_id is required"}
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning return: %w", err)
	}
	defer tx.Rollback()

	loan, err := store.GetTransaction(ctx, tx, req.LoanID)
	if err != nil {
		return nil, err
	}
	if loan == nil {
		return nil, fmt.Errorf("loan %s: %w", req.LoanID, model.ErrNotFound)
	}
	if !loan.IsActiveLoan() {
		return nil, fmt.Errorf("loan %s: %w", req.LoanID, model.ErrLoanNotOpen)
	}
	if req.ItemID != "" && req.ItemID != loan.ItemID {
		return nil, fmt.Errorf("%w: loan %s is for item %s, not %s",
			model.ErrReturnMismatch, loan.ID, loan.ItemID, req.ItemID)
	}
	if req.Quantity != 0 && req.Quantity != loan.Quantity {
		return nil, fmt.Errorf("%w: loan %s has quantity %d, got %d",
			model.ErrReturnMismatch, loan.ID, loan.Quantity, req.Quantity)
	}

	if err := store.CloseLoan(ctx, tx, loan.ID); err != nil {
		return nil, err
	}
	if err := store.RestoreAvailable(ctx, tx, loan.ItemID, loan.Quantity); err != nil {
		return nil, err
	}

	err = store.InsertTransaction(ctx, tx, &model.Transaction{
		ItemID:      loan.ItemID,
		Type:        model.TransactionReturn,
		Quantity:    loan.Quantity,
		UserName:    loan.UserName,
		ProjectName: loan.ProjectName,
		Notes:       ReturnNote(loan.ID),
		Status:      model.StatusClosed,
	})
	if err != nil {
		return nil, err
	}

	closed, err := committedRow(ctx, tx, loan.ID)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing return: %w", err)
	}
	return closed, nil
}

// committedRow reads a loan back inside tx so the caller gets the row as it
// will be committed. Nothing after Commit may fail the operation.
func committedRow(ctx context.Context, tx *sql.Tx, id string) (*model.Transaction, error) {
	loan, err := store.GetTransaction(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if loan == nil {
		return nil, fmt.Errorf("loan %s: %w", id, model.ErrNotFound)
	}
	return loan, nil
}

// ReturnNote is the note written on the RETURN entry for a closed loan.
func ReturnNote(loanID string) string {
	return "Returned from loan " + loanID
}

// ActiveLoans lists open checkouts, newest first.
func ActiveLoans(ctx context.Context, db *sql.DB) ([]model.Transaction, error) {
	return store.ListTransactions(ctx, db, model.TransactionFilter{
		Type:   model.TransactionCheckout,
		Status: model.StatusOpen,
	})
}
