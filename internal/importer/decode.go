package importer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/erazemk/stockroom/internal/model"
)

// ErrUnreadableFile is returned when an upload cannot be decoded as a
// spreadsheet at all. Row-level problems are never reported this way.
var ErrUnreadableFile = errors.New("unreadable spreadsheet")

var (
	zipMagic = []byte("PK\x03\x04")
	utf8BOM  = []byte("\ufeff")
)

// Parse decodes a CSV or XLSX file and returns one validated ImportRow per
// non-blank data line. filename only selects the format: a .csv name is read
// as CSV, anything else must be an XLSX workbook. Only the first sheet is
// read and its first row holds the headers.
func Parse(r io.Reader, filename string) ([]model.ImportRow, error) {
	headers, records, err := decode(r, filename)
	if err != nil {
		return nil, err
	}

	rows := make([]model.ImportRow, 0, len(records))
	for _, cells := range records {
		raw := rawRow(headers, cells)
		if len(raw) == 0 {
			continue
		}
		rows = append(rows, Validate(NormalizeOrdered(headers, raw), len(rows)))
	}
	return rows, nil
}

func decode(r io.Reader, filename string) ([]string, [][]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: reading upload: %v", ErrUnreadableFile, err)
	}

	var table [][]string
	if strings.EqualFold(filepath.Ext(filename), ".csv") && !bytes.HasPrefix(data, zipMagic) {
		table, err = decodeCSV(data)
	} else {
		table, err = decodeXLSX(data)
	}
	if err != nil {
		return nil, nil, err
	}

	if len(table) == 0 {
		return nil, nil, nil
	}
	return table[0], table[1:], nil
}

func decodeCSV(data []byte) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	table, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableFile, err)
	}
	return table, nil
}

func decodeXLSX(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableFile, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("%w: workbook has no sheets", ErrUnreadableFile)
	}

	table, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w: reading sheet %q: %v", ErrUnreadableFile, sheet, err)
	}
	return table, nil
}

// rawRow pairs cells with their headers. Blank cells and cells under a blank
// header are left out, so an all-blank line yields an empty row.
func rawRow(headers, cells []string) RawRow {
	raw := make(RawRow, len(headers))
	for i, cell := range cells {
		if i >= len(headers) || strings.TrimSpace(headers[i]) == "" {
			continue
		}
		if strings.TrimSpace(cell) == "" {
			continue
		}
		raw[headers[i]] = cell
	}
	return raw
}
