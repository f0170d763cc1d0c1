package model

import "time"

// Transaction is an append-only ledger entry recording a quantity movement.
type Transaction struct {
	ID          string    `json:"id"`
	ItemID      string    `json:"item_id"`
	Type        string    `json:"transaction_type"`
	Quantity    int       `json:"quantity"`
	UserName    string    `json:"user_name"`
	ProjectName string    `json:"project_name"`
	Notes       string    `json:"notes,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
	Status      string    `json:"status"`

	// Joined fields (not always populated).
	ItemName     string `json:"item_name,omitempty"`
	ItemSKU      string `json:"item_sku,omitempty"`
	ItemCategory string `json:"item_category,omitempty"`
	ItemLocation string `json:"item_location,omitempty"`
}

// Transaction types. ADJUSTMENT and RESTOCK are reserved for direct-edit
// auditing; the ledger itself only writes CHECKOUT and RETURN.
const (
	TransactionCheckout   = "CHECKOUT"
	TransactionReturn     = "RETURN"
	TransactionAdjustment = "ADJUSTMENT"
	TransactionRestock    = "RESTOCK"
)

// Transaction statuses.
const (
	StatusOpen   = "OPEN"
	StatusClosed = "CLOSED"
)

// IsActiveLoan reports whether t is an outstanding checkout.
func (t *Transaction) IsActiveLoan() bool {
	return t.Type == TransactionCheckout && t.Status == StatusOpen
}

// TransactionFilter narrows ListTransactions. Zero values match everything.
type TransactionFilter struct {
	Type   string
	Status string
	ItemID string
}
