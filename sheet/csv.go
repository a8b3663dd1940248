package sheet

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// CSVReader reads a CSV file as a single-sheet source. Formulas are plain
// text values starting with "=", since CSV has no cached formula results.
type CSVReader struct {
	Path string
}

// Cells enumerates the file row-major. Rows may have ragged lengths.
func (r *CSVReader) Cells() ([]Cell, error) {
	f, err := os.Open(r.Path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", r.Path, err)
	}
	defer f.Close()

	rd := csv.NewReader(f)
	rd.FieldsPerRecord = -1
	rows, err := rd.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", r.Path, err)
	}

	var cells []Cell
	for ri, row := range rows {
		for ci, raw := range row {
			cells = append(cells, Cell{
				Row:     ri + 1,
				Col:     ci + 1,
				Content: Classify(strings.TrimSpace(raw)),
			})
		}
	}
	return cells, nil
}
