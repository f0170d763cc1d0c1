package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"
)

// Template formats.
const (
	FormatXLSX = "xlsx"
	FormatCSV  = "csv"
)

// TemplateSheet is the sheet name used in the XLSX template.
const TemplateSheet = "Template"

// templateExample is the single example line written below the headers,
// in CanonicalFields order.
var templateExample = []any{
	"Example Item", "SKU-001", "Electronics", "ASSET", "Shelf A1",
	10, 8, 2, 99.99, "Optional notes",
}

// TemplateFilename returns the download name for a template format.
func TemplateFilename(format string) string {
	return "inventory_import_template." + format
}

// WriteTemplate writes an import template in the given format: the canonical
// headers followed by one example row.
func WriteTemplate(w io.Writer, format string) error {
	switch format {
	case FormatXLSX:
		return writeXLSXTemplate(w)
	case FormatCSV:
		return writeCSVTemplate(w)
	default:
		return fmt.Errorf("unknown template format %q", format)
	}
}

func writeXLSXTemplate(w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), TemplateSheet); err != nil {
		return fmt.Errorf("naming template sheet: %w", err)
	}

	headers := make([]any, len(CanonicalFields))
	for i, field := range CanonicalFields {
		headers[i] = field
	}
	if err := f.SetSheetRow(TemplateSheet, "A1", &headers); err != nil {
		return fmt.Errorf("writing template headers: %w", err)
	}
	example := append([]any(nil), templateExample...)
	if err := f.SetSheetRow(TemplateSheet, "A2", &example); err != nil {
		return fmt.Errorf("writing template row: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing template: %w", err)
	}
	return nil
}

func writeCSVTemplate(w io.Writer) error {
	example := make([]string, len(templateExample))
	for i, v := range templateExample {
		switch v := v.(type) {
		case string:
			example[i] = v
		case int:
			example[i] = strconv.Itoa(v)
		case float64:
			example[i] = strconv.FormatFloat(v, 'f', -1, 64)
		}
	}

	cw := csv.NewWriter(w)
	if err := cw.WriteAll([][]string{CanonicalFields, example}); err != nil {
		return fmt.Errorf("writing template: %w", err)
	}
	return nil
}
