package sheet

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// XLSXReader reads one worksheet of an xlsx workbook via excelize.
type XLSXReader struct {
	Path  string
	Sheet string // worksheet name; empty means the active sheet
}

// Cells enumerates the worksheet row-major. Formula cells are reported as
// text with the "=" marker prepended when the stored formula lacks one, so
// the extractor sees the same shape a raw-content source would produce.
func (r *XLSXReader) Cells() ([]Cell, error) {
	f, err := excelize.OpenFile(r.Path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", r.Path, err)
	}
	defer f.Close()

	name := r.Sheet
	if name == "" {
		name = f.GetSheetName(f.GetActiveSheetIndex())
	}
	if idx, err := f.GetSheetIndex(name); err != nil || idx == -1 {
		return nil, fmt.Errorf("workbook %s has no sheet %q", r.Path, name)
	}

	maxCol, maxRow, err := bounds(f, name)
	if err != nil {
		return nil, err
	}

	var cells []Cell
	for row := 1; row <= maxRow; row++ {
		for col := 1; col <= maxCol; col++ {
			ref, err := excelize.CoordinatesToCellName(col, row)
			if err != nil {
				continue
			}
			if formula, err := f.GetCellFormula(name, ref); err == nil && formula != "" {
				if !strings.HasPrefix(formula, "=") {
					formula = "=" + formula
				}
				cells = append(cells, Cell{Row: row, Col: col, Content: Content{Kind: Text, Text: formula}})
				continue
			}
			raw, err := f.GetCellValue(name, ref)
			if err != nil {
				continue
			}
			cells = append(cells, Cell{Row: row, Col: col, Content: Classify(raw)})
		}
	}
	return cells, nil
}

// bounds determines the populated rectangle of a worksheet. GetRows trims
// trailing cells whose cached value is empty, which hides formula cells
// that have never been evaluated, so the sheet dimension is consulted too.
func bounds(f *excelize.File, name string) (maxCol, maxRow int, err error) {
	rows, err := f.GetRows(name)
	if err != nil {
		return 0, 0, fmt.Errorf("reading sheet %s: %w", name, err)
	}
	maxRow = len(rows)
	for _, row := range rows {
		if len(row) > maxCol {
			maxCol = len(row)
		}
	}
	if dim, err := f.GetSheetDimension(name); err == nil && dim != "" {
		corner := dim
		if i := strings.LastIndex(dim, ":"); i >= 0 {
			corner = dim[i+1:]
		}
		if col, row, err := excelize.CellNameToCoordinates(corner); err == nil {
			if col > maxCol {
				maxCol = col
			}
			if row > maxRow {
				maxRow = row
			}
		}
	}
	return maxCol, maxRow, nil
}
