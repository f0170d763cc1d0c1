package importer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestParseCSV(t *testing.T) {
	input := "Item Name,SKU Code,Qty,Available,Price,Colour\n" +
		"Drill,DR-1,3,2,10.5,red\n" +
		",,,,,\n" +
		"Tape,,5,,,\n"

	rows, err := Parse(strings.NewReader(input), "stock.csv")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Drill", rows[0].Name)
	assert.Equal(t, "DR-1", rows[0].SKU)
	assert.Equal(t, 3, rows[0].QuantityTotal)
	assert.Equal(t, 2, rows[0].QuantityAvailable)
	assert.Equal(t, "10.5", rows[0].UnitPrice.String())
	assert.True(t, rows[0].IsValid)

	assert.Equal(t, "Tape", rows[1].Name)
	assert.Equal(t, "AUTO-TAPE-0002", rows[1].SKU)
	assert.Equal(t, 5, rows[1].QuantityAvailable)
}

func TestParseCSVRaggedAndBOM(t *testing.T) {
	input := "\ufeffname,sku,quantity\n" +
		"Beaker\n" +
		"Flask,FL-1,2,extra\n"

	rows, err := Parse(strings.NewReader(input), "STOCK.CSV")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Beaker", rows[0].Name)
	assert.Equal(t, "AUTO-BEAKER-0001", rows[0].SKU)
	assert.Equal(t, "FL-1", rows[1].SKU)
	assert.Equal(t, 2, rows[1].QuantityTotal)
}

func TestParseCSVAliasCollisionRightmostWins(t *testing.T) {
	rows, err := Parse(strings.NewReader("name,qty,total\nTape,1,4\n"), "a.csv")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 4, rows[0].QuantityTotal)
}

func TestParseXLSX(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"Name", "SKU", "Type", "Quantity Total", "Unit Price"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]any{"Centrifuge", "CF-1", "Asset", 2, 4500.5}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]any{"Tubes", "TB-1", "bogus", 100, 0.25}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	rows, err := Parse(bytes.NewReader(buf.Bytes()), "stock.xlsx")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "ASSET", rows[0].Type)
	assert.Equal(t, 2, rows[0].QuantityTotal)
	assert.Equal(t, "4500.5", rows[0].UnitPrice.String())
	assert.True(t, rows[0].IsValid)

	assert.False(t, rows[1].IsValid)
	assert.Equal(t, []string{ErrInvalidType}, rows[1].Errors)
}

func TestParseXLSXWithCSVName(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetRow(f.GetSheetName(0), "A1", &[]any{"name", "sku"}))
	require.NoError(t, f.SetSheetRow(f.GetSheetName(0), "A2", &[]any{"Scale", "SC-1"}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	rows, err := Parse(bytes.NewReader(buf.Bytes()), "mislabelled.csv")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "SC-1", rows[0].SKU)
}

func TestParseUnreadableFile(t *testing.T) {
	_, err := Parse(strings.NewReader("definitely not a workbook"), "stock.xlsx")
	assert.ErrorIs(t, err, ErrUnreadableFile)

	_, err = Parse(strings.NewReader("x"), "stock.ods")
	assert.ErrorIs(t, err, ErrUnreadableFile)
}

func TestParseEmptyCSV(t *testing.T) {
	rows, err := Parse(strings.NewReader(""), "empty.csv")
	require.NoError(t, err)
	assert.Empty(t, rows)

	rows, err = Parse(strings.NewReader("name,sku\n"), "headers.csv")
	require.NoError(t, err)
	assert.Empty(t, rows)
}
