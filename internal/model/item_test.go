package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func validFields() ItemFields {
	return ItemFields{
		SKU:               "PIP-200",
		Name:              "Pipette 200ul",
		Category:          "Liquid handling",
		Type:              ItemTypeAsset,
		Location:          "Bench 3",
		QuantityTotal:     4,
		QuantityAvailable: 4,
		UnitPrice:         decimal.RequireFromString("129.50"),
	}
}

func TestItemFieldsCheck(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ItemFields)
		field  string
	}{
		{"valid", func(*ItemFields) {}, ""},
		{"missing sku", func(f *ItemFields) { f.SKU = "" }, "sku"},
		{"missing name", func(f *ItemFields) { f.Name = "" }, "name"},
		{"bad type", func(f *ItemFields) { f.Type = "TOOL" }, "type"},
		{"negative total", func(f *ItemFields) { f.QuantityTotal = -1 }, "quantity_total"},
		{"negative available", func(f *ItemFields) { f.QuantityAvailable = -1 }, "quantity_available"},
		{"available over total", func(f *ItemFields) { f.QuantityAvailable = 5 }, "quantity_available"},
		{"negative threshold", func(f *ItemFields) { f.MinStockThreshold = -2 }, "min_stock_threshold"},
		{"negative price", func(f *ItemFields) { f.UnitPrice = decimal.NewFromInt(-1) }, "unit_price"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validFields()
			tt.mutate(&f)
			err := f.Check()
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			var fe *FieldError
			if assert.ErrorAs(t, err, &fe) {
				assert.Equal(t, tt.field, fe.Field)
			}
		})
	}
}

func TestItemLowStock(t *testing.T) {
	item := &Item{QuantityAvailable: 2, MinStockThreshold: 2}
	assert.True(t, item.LowStock())

	item.QuantityAvailable = 3
	assert.False(t, item.LowStock())
}

func TestValidRowsKeepsOrder(t *testing.T) {
	rows := []ImportRow{
		{SKU: "A", IsValid: true},
		{SKU: "B", IsValid: false, Errors: []string{"Name required"}},
		{SKU: "C", IsValid: true},
	}

	valid := ValidRows(rows)
	if assert.Len(t, valid, 2) {
		assert.Equal(t, "A", valid[0].SKU)
		assert.Equal(t, "C", valid[1].SKU)
	}
}

func TestTransactionIsActiveLoan(t *testing.T) {
	assert.True(t, (&Transaction{Type: TransactionCheckout, Status: StatusOpen}).IsActiveLoan())
	assert.False(t, (&Transaction{Type: TransactionCheckout, Status: StatusClosed}).IsActiveLoan())
	assert.False(t, (&Transaction{Type: TransactionReturn, Status: StatusClosed}).IsActiveLoan())
}
