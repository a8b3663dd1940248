// Package cell handles canonical spreadsheet cell references.
//
// A reference is rendered as column letters followed by a 1-based row
// number, e.g. "B12". Absolute markers ($) in source formulas are stripped
// during parsing: $B$12, B$12 and B12 all name the same cell. Equality and
// ordering are defined over the canonical Name() string.
package cell

import (
	"regexp"
	"strings"

	"github.com/xuri/excelize/v2"

	"sheetc/scanner"
)

// refPattern matches one cell reference in formula text: uppercase column
// letters followed by digits, tolerating a $ before either part. Scanning
// raw text instead of a parsed argument list means words like "MAX2" also
// match; that looseness is part of the extraction contract.
var refPattern = regexp.MustCompile(`\$?[A-Z]+\$?\d+`)

// ID identifies a cell by 1-based column and row.
type ID struct {
	Col int
	Row int
}

// Parse interprets a cell reference, tolerating absolute markers before the
// column letters or the row digits.
func Parse(ref string) (ID, bool) {
	col, row, err := excelize.CellNameToCoordinates(strings.ReplaceAll(ref, "$", ""))
	if err != nil {
		return ID{}, false
	}
	return ID{Col: col, Row: row}, true
}

// Name renders the canonical LETTERS+DIGITS reference.
func (id ID) Name() string {
	name, err := excelize.CoordinatesToCellName(id.Col, id.Row)
	if err != nil {
		return ""
	}
	return name
}

// Refs returns every distinct cell reference in formula text, canonicalized
// and in first-appearance order. Text inside string literals is ignored.
func Refs(formula string) []string {
	masked := scanner.MaskLiterals(formula, ' ')
	var refs []string
	seen := make(map[string]bool)
	for _, loc := range refPattern.FindAllStringIndex(masked, -1) {
		id, ok := Parse(formula[loc[0]:loc[1]])
		if !ok {
			continue
		}
		name := id.Name()
		if !seen[name] {
			seen[name] = true
			refs = append(refs, name)
		}
	}
	return refs
}
