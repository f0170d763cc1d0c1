package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeHeader(t *testing.T) {
	tests := map[string]string{
		"name":           "name",
		"  Item Name  ":  "item_name",
		"Qty (Total)":    "qty_total",
		"__SKU__":        "sku",
		"Unit-Price":     "unit_price",
		"Min. Stock":     "min_stock",
		"Reorder  Level": "reorder_level",
		"":               "",
		"---":            "",
	}
	for in, want := range tests {
		assert.Equal(t, want, NormalizeHeader(in), "header %q", in)
	}
}

func TestNormalizeMapsAliasesAndDropsUnknown(t *testing.T) {
	got := Normalize(RawRow{
		"Item Name":   "Drill",
		"SKU Code":    "DR-1",
		"Qty":         "3",
		"Cost":        12.5,
		"Description": "cordless",
		"Colour":      "red",
	})

	assert.Equal(t, RawRow{
		FieldName:          "Drill",
		FieldSKU:           "DR-1",
		FieldQuantityTotal: "3",
		FieldUnitPrice:     12.5,
		FieldNotes:         "cordless",
	}, got)
}

func TestNormalizeTypos(t *testing.T) {
	got := Normalize(RawRow{"Quantitiy Total": "4", "Quantitiy Available": "2"})
	assert.Equal(t, RawRow{FieldQuantityTotal: "4", FieldQuantityAvailable: "2"}, got)
}

func TestNormalizeIsIdempotent(t *testing.T) {
	rows := []RawRow{
		{"Item": "Beaker", "item_sku": "BK-1", "Total Qty": 10, "Available Qty": 9},
		{"threshold": "2", "Price": "1.20", "Location": "Shelf B"},
		{},
	}
	for _, raw := range rows {
		once := Normalize(raw)
		assert.Equal(t, once, Normalize(once))
	}
}

func TestNormalizeDoesNotDefault(t *testing.T) {
	assert.Empty(t, Normalize(RawRow{"unrelated": "x"}))
}

func TestNormalizeOrderedRightmostWins(t *testing.T) {
	headers := []string{"Qty", "Total", "Name"}

	got := NormalizeOrdered(headers, RawRow{"Qty": "1", "Total": "2", "Name": "Tape"})
	assert.Equal(t, "2", got[FieldQuantityTotal])

	got = NormalizeOrdered(headers, RawRow{"Qty": "1", "Name": "Tape"})
	assert.Equal(t, "1", got[FieldQuantityTotal])
}

func TestCanonicalFieldsAreTheirOwnAliases(t *testing.T) {
	for _, field := range CanonicalFields {
		got, ok := CanonicalField(field)
		assert.True(t, ok, field)
		assert.Equal(t, field, got)
	}
}
