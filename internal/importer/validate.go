package importer

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/erazemk/stockroom/internal/model"
)

// Defaults applied to blank text fields.
const (
	DefaultCategory = "Uncategorized"
	DefaultLocation = "Unassigned"
)

// Row defect messages.
const (
	ErrNameRequired        = "Name required"
	ErrSKURequired         = "SKU required"
	ErrInvalidType         = "Type must be ASSET or CONSUMABLE"
	ErrNegativeTotal       = "Qty total cannot be negative"
	ErrNegativeAvailable   = "Qty available cannot be negative"
	ErrAvailableAboveTotal = "Qty available exceeds total"
	ErrNegativeMinStock    = "Min stock cannot be negative"
	ErrNegativePrice       = "Price cannot be negative"
)

// Validate turns a normalized row into an ImportRow, filling defaults and
// recording every defect found. index is the row's 0-based position in the
// sheet and only feeds generated SKUs. It never fails: a bad row comes back
// with IsValid false and its defects in Errors.
func Validate(row RawRow, index int) model.ImportRow {
	out := model.ImportRow{
		Name:     text(row[FieldName]),
		Category: text(row[FieldCategory]),
		Location: text(row[FieldLocation]),
		Notes:    text(row[FieldNotes]),
		Errors:   []string{},
	}
	if out.Category == "" {
		out.Category = DefaultCategory
	}
	if out.Location == "" {
		out.Location = DefaultLocation
	}

	out.SKU = text(row[FieldSKU])
	if out.SKU == "" {
		out.SKU = AutoSKU(out.Name, index)
	}

	if out.Name == "" {
		out.Errors = append(out.Errors, ErrNameRequired)
	}
	if out.SKU == "" {
		out.Errors = append(out.Errors, ErrSKURequired)
	}

	out.Type = strings.ToUpper(text(row[FieldType]))
	switch {
	case out.Type == "":
		out.Type = model.ItemTypeConsumable
	case !model.ValidItemType(out.Type):
		out.Errors = append(out.Errors, ErrInvalidType)
		out.Type = model.ItemTypeConsumable
	}

	total := quantity(row[FieldQuantityTotal], 0)
	available := quantity(row[FieldQuantityAvailable], total)
	threshold := quantity(row[FieldMinStockThreshold], 0)
	out.UnitPrice = price(row[FieldUnitPrice])

	// Defects are judged on the cell value; fractions are dropped afterwards.
	if total < 0 {
		out.Errors = append(out.Errors, ErrNegativeTotal)
	}
	if available < 0 {
		out.Errors = append(out.Errors, ErrNegativeAvailable)
	}
	if available > total {
		out.Errors = append(out.Errors, ErrAvailableAboveTotal)
	}
	if threshold < 0 {
		out.Errors = append(out.Errors, ErrNegativeMinStock)
	}
	if out.UnitPrice.IsNegative() {
		out.Errors = append(out.Errors, ErrNegativePrice)
	}

	out.QuantityTotal = int(math.Trunc(total))
	out.QuantityAvailable = min(int(math.Trunc(available)), out.QuantityTotal)
	out.MinStockThreshold = int(math.Trunc(threshold))
	out.IsValid = len(out.Errors) == 0
	return out
}

// AutoSKU builds the SKU given to a row that has none:
// AUTO-<upper-cased name slug>-<index+1 padded to four digits>.
func AutoSKU(name string, index int) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToUpper(name) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			dash = false
			b.WriteRune(r)
			continue
		}
		dash = true
	}
	slug := b.String()
	if slug == "" {
		slug = "ITEM"
	}
	return fmt.Sprintf("AUTO-%s-%04d", slug, index+1)
}

// text renders a cell as trimmed text. Dash-only placeholders count as blank.
func text(v any) string {
	var s string
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		s = v
	case float64:
		s = strconv.FormatFloat(v, 'f', -1, 64)
	default:
		s = fmt.Sprint(v)
	}
	s = strings.TrimSpace(s)
	if isDashPlaceholder(s) {
		return ""
	}
	return s
}

// number parses a cell as a finite float. ok is false for absent, blank and
// non-numeric cells.
func number(v any) (float64, bool) {
	var f float64
	switch v := v.(type) {
	case nil:
		return 0, false
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int64:
		f = float64(v)
	default:
		s := text(v)
		if s == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// quantity parses a quantity cell. Values outside the 32-bit range are
// treated as unreadable.
func quantity(v any, fallback float64) float64 {
	f, ok := number(v)
	if !ok || f > math.MaxInt32 || f < math.MinInt32 {
		return fallback
	}
	return f
}

func price(v any) decimal.Decimal {
	switch v := v.(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return decimal.Zero
		}
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int64:
		return decimal.NewFromInt(v)
	}
	s := text(v)
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
