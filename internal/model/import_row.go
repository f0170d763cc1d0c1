package model

import "github.com/shopspring/decimal"

// ImportRow is one normalized and validated spreadsheet line. It is never
// persisted as-is.
type ImportRow struct {
	Name              string          `json:"name"`
	SKU               string          `json:"sku"`
	Category          string          `json:"category"`
	Type              string          `json:"type"`
	Location          string          `json:"location"`
	QuantityTotal     int             `json:"quantity_total"`
	QuantityAvailable int             `json:"quantity_available"`
	MinStockThreshold int             `json:"min_stock_threshold"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
	Notes             string          `json:"notes,omitempty"`
	IsValid           bool            `json:"is_valid"`
	Errors            []string        `json:"errors"`
}

// Fields returns the item attributes carried by the row.
func (r ImportRow) Fields() ItemFields {
	return ItemFields{
		SKU:               r.SKU,
		Name:              r.Name,
		Category:          r.Category,
		Type:              r.Type,
		Location:          r.Location,
		QuantityTotal:     r.QuantityTotal,
		QuantityAvailable: r.QuantityAvailable,
		MinStockThreshold: r.MinStockThreshold,
		UnitPrice:         r.UnitPrice,
		Notes:             r.Notes,
	}
}

// ValidRows returns the rows marked valid, in input order.
func ValidRows(rows []ImportRow) []ImportRow {
	var valid []ImportRow
	for _, r := range rows {
		if r.IsValid {
			valid = append(valid, r)
		}
	}
	return valid
}
