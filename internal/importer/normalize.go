// Package importer turns spreadsheet rows into catalog items: header
// normalization, row validation, file decoding and the SKU-keyed upsert.
package importer

import (
	"strings"
	"unicode"
)

// RawRow maps a header to a cell value. Cells are strings or numbers; an
// empty cell is an absent key.
type RawRow map[string]any

// Canonical field names, in template column order.
const (
	FieldName              = "name"
	FieldSKU               = "sku"
	FieldCategory          = "category"
	FieldType              = "type"
	FieldLocation          = "location"
	FieldQuantityTotal     = "quantity_total"
	FieldQuantityAvailable = "quantity_available"
	FieldMinStockThreshold = "min_stock_threshold"
	FieldUnitPrice         = "unit_price"
	FieldNotes             = "notes"
)

// CanonicalFields lists the canonical field names in template column order.
var CanonicalFields = []string{
	FieldName, FieldSKU, FieldCategory, FieldType, FieldLocation,
	FieldQuantityTotal, FieldQuantityAvailable, FieldMinStockThreshold,
	FieldUnitPrice, FieldNotes,
}

// headerAliases maps normalized header text to a canonical field.
var headerAliases = map[string]string{
	"name":      FieldName,
	"item_name": FieldName,
	"item":      FieldName,

	"sku":      FieldSKU,
	"sku_code": FieldSKU,
	"item_sku": FieldSKU,

	"category": FieldCategory,

	"type":      FieldType,
	"item_type": FieldType,

	"location": FieldLocation,

	"quantity_total":  FieldQuantityTotal,
	"quantitiy_total": FieldQuantityTotal,
	"qty_total":       FieldQuantityTotal,
	"total_qty":       FieldQuantityTotal,
	"total":           FieldQuantityTotal,
	"quantity":        FieldQuantityTotal,
	"qty":             FieldQuantityTotal,

	"quantity_available":  FieldQuantityAvailable,
	"quantitiy_available": FieldQuantityAvailable,
	"qty_available":       FieldQuantityAvailable,
	"available_qty":       FieldQuantityAvailable,
	"available":           FieldQuantityAvailable,

	"min_stock_threshold": FieldMinStockThreshold,
	"min_stock":           FieldMinStockThreshold,
	"threshold":           FieldMinStockThreshold,
	"reorder_level":       FieldMinStockThreshold,

	"unit_price": FieldUnitPrice,
	"price":      FieldUnitPrice,
	"cost":       FieldUnitPrice,

	"notes":       FieldNotes,
	"description": FieldNotes,
}

// NormalizeHeader lower-cases and trims a header, collapses every run of
// characters outside [a-z0-9] into one underscore and strips underscores
// from both ends.
func NormalizeHeader(header string) string {
	var b strings.Builder
	pendingSep := false
	for _, r := range strings.ToLower(strings.TrimSpace(header)) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(r)
			continue
		}
		pendingSep = true
	}
	return b.String()
}

// CanonicalField returns the canonical field a header maps to, if any.
func CanonicalField(header string) (string, bool) {
	field, ok := headerAliases[NormalizeHeader(header)]
	return field, ok
}

// Normalize re-keys a row by canonical field name. Unknown headers are
// dropped; nothing is defaulted. When several headers map to the same field
// the result depends on map iteration order, so decoders that know the
// column order use NormalizeOrdered instead.
func Normalize(raw RawRow) RawRow {
	out := make(RawRow, len(raw))
	for header, value := range raw {
		if field, ok := CanonicalField(header); ok {
			out[field] = value
		}
	}
	return out
}

// NormalizeOrdered is Normalize for a row whose column order is known:
// among headers that alias to the same field, the rightmost present cell wins.
func NormalizeOrdered(headers []string, raw RawRow) RawRow {
	out := make(RawRow, len(raw))
	for _, header := range headers {
		value, present := raw[header]
		if !present {
			continue
		}
		if field, ok := CanonicalField(header); ok {
			out[field] = value
		}
	}
	return out
}

// isDashPlaceholder reports whether s consists only of dash characters,
// which spreadsheets often use to mean "blank".
func isDashPlaceholder(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r != '-' && !unicode.Is(unicode.Pd, r) {
			return false
		}
	}
	return true
}
