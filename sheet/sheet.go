// Package sheet reads raw spreadsheet cells from external sources.
//
// A Reader yields a row-major, 1-indexed enumeration of populated cells,
// each carrying a tagged raw content value: numeric, text, or empty.
// Formula cells surface as text starting with the "=" marker; everything
// downstream of the reader is source-format agnostic.
package sheet

import (
	"path/filepath"
	"strconv"
	"strings"
)

// Kind classifies raw cell content.
type Kind int

const (
	Empty Kind = iota
	Number
	Text
)

// Content is the raw value of one cell as read from the source.
type Content struct {
	Kind   Kind
	Number float64
	Text   string
}

// Cell is one position in a sheet, 1-indexed.
type Cell struct {
	Row, Col int
	Content  Content
}

// Reader enumerates a sheet's cells in row-major order.
type Reader interface {
	Cells() ([]Cell, error)
}

// Open returns a Reader for path based on its extension: .csv files use the
// CSV reader, everything else is treated as an xlsx workbook. sheetName
// selects the worksheet for workbooks; the empty string means the active
// sheet. CSV input has a single implicit sheet and ignores sheetName.
func Open(path, sheetName string) Reader {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return &CSVReader{Path: path}
	}
	return &XLSXReader{Path: path, Sheet: sheetName}
}

// Classify interprets one raw string value: empty, a number, or text.
func Classify(raw string) Content {
	if raw == "" {
		return Content{Kind: Empty}
	}
	if v, err := strconv.ParseFloat(raw, 64); err == nil {
		return Content{Kind: Number, Number: v}
	}
	return Content{Kind: Text, Text: raw}
}
