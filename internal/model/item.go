package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item is a catalog entry for a piece of equipment or consumable stock.
type Item struct {
	ID                string          `json:"id"`
	SKU               string          `json:"sku"`
	Name              string          `json:"name"`
	Category          string          `json:"category"`
	Type              string          `json:"type"`
	Location          string          `json:"location"`
	QuantityTotal     int             `json:"quantity_total"`
	QuantityAvailable int             `json:"quantity_available"`
	MinStockThreshold int             `json:"min_stock_threshold"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
	Notes             string          `json:"notes,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// Item types.
const (
	ItemTypeAsset      = "ASSET"
	ItemTypeConsumable = "CONSUMABLE"
)

// ValidItemType reports whether t is one of the known item types.
func ValidItemType(t string) bool {
	return t == ItemTypeAsset || t == ItemTypeConsumable
}

// ItemFields holds the mutable attributes of an item. It is what manual
// entry, direct edits and import upserts write.
type ItemFields struct {
	SKU               string          `json:"sku"`
	Name              string          `json:"name"`
	Category          string          `json:"category"`
	Type              string          `json:"type"`
	Location          string          `json:"location"`
	QuantityTotal     int             `json:"quantity_total"`
	QuantityAvailable int             `json:"quantity_available"`
	MinStockThreshold int             `json:"min_stock_threshold"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
	Notes             string          `json:"notes,omitempty"`
}

// Check verifies the item invariants that a direct edit must satisfy.
func (f ItemFields) Check() error {
	switch {
	case f.SKU == "":
		return &FieldError{Field: "sku", Message: "sku is required"}
	case f.Name == "":
		return &FieldError{Field: "name", Message: "name is required"}
	case !ValidItemType(f.Type):
		return &FieldError{Field: "type", Message: "type must be ASSET or CONSUMABLE"}
	case f.QuantityTotal < 0:
		return &FieldError{Field: "quantity_total", Message: "quantity_total cannot be negative"}
	case f.QuantityAvailable < 0:
		return &FieldError{Field: "quantity_available", Message: "quantity_available cannot be negative"}
	case f.QuantityAvailable > f.QuantityTotal:
		return &FieldError{Field: "quantity_available", Message: "quantity_available exceeds quantity_total"}
	case f.MinStockThreshold < 0:
		return &FieldError{Field: "min_stock_threshold", Message: "min_stock_threshold cannot be negative"}
	case f.UnitPrice.IsNegative():
		return &FieldError{Field: "unit_price", Message: "unit_price cannot be negative"}
	}
	return nil
}

// LowStock reports whether available stock has dropped to the reorder threshold.
func (i *Item) LowStock() bool {
	return i.QuantityAvailable <= i.MinStockThreshold
}
