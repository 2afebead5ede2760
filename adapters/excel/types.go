package excel

import (
	"fmt"
	"strings"

	"sheetlens/domain/datareadiness/ingestion"
	"sheetlens/domain/dataset"
)

// emptyHeaderName names header cells that are blank, matching the common
// spreadsheet-to-records convention (__EMPTY, __EMPTY_1, ...)
const emptyHeaderName = "__EMPTY"

// sheetGrid is a decoded sheet before it is turned into records.
// headers are the display strings of the header row; cells are typed values.
type sheetGrid struct {
	name    string
	headers []string
	cells   [][]ingestion.Value
}

// toTable converts a grid into records keyed by header.
// The first non-blank row is the header row. Blank data rows are skipped,
// missing cells are left out of the record, and the column list is the key
// set of the first record in sheet order. Later records are restricted to
// those columns.
func (g sheetGrid) toTable() *dataset.Table {
	table := &dataset.Table{SheetName: g.name, Columns: []string{}, Rows: []dataset.Record{}}

	width := len(g.headers)
	for _, row := range g.cells {
		if len(row) > width {
			width = len(row)
		}
	}
	headers := uniqueHeaders(g.headers, width)

	var allowed map[string]bool
	for _, row := range g.cells {
		record := make(dataset.Record)
		for i, v := range row {
			if v.IsMissing() {
				continue
			}
			record[headers[i]] = v
		}
		if len(record) == 0 {
			continue
		}

		if allowed == nil {
			allowed = make(map[string]bool, len(record))
			for _, h := range headers {
				if _, ok := record[h]; ok {
					table.Columns = append(table.Columns, h)
					allowed[h] = true
				}
			}
		} else {
			for k := range record {
				if !allowed[k] {
					delete(record, k)
				}
			}
		}
		table.Rows = append(table.Rows, record)
	}

	return table
}

// uniqueHeaders trims header text, names blank headers and suffixes duplicates
// with _1, _2, ... so every column name is unique
func uniqueHeaders(raw []string, width int) []string {
	headers := make([]string, width)
	seen := make(map[string]bool, width)

	for i := 0; i < width; i++ {
		name := ""
		if i < len(raw) {
			name = strings.TrimSpace(raw[i])
		}
		if name == "" {
			name = emptyHeaderName
		}

		candidate := name
		for n := 1; seen[candidate]; n++ {
			candidate = fmt.Sprintf("%s_%d", name, n)
		}
		seen[candidate] = true
		headers[i] = candidate
	}
	return headers
}

// isBlankRow reports whether every cell of a raw row is empty
func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
