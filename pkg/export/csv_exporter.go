package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
)

// Report is an ordered tabular export of attendance tallies. Column order is
// fixed at construction and every row must match it, so the rendered file
// lines up with the on-screen stats table.
type Report struct {
	columns []string
	rows    [][]string
}

// NewReport builds a report with the given column headers.
func NewReport(columns ...string) *Report {
	return &Report{columns: columns}
}

// AddRow appends one row. The cell count must match the column count.
func (r *Report) AddRow(cells ...string) error {
	if len(cells) != len(r.columns) {
		return fmt.Errorf("row has %d cells, report has %d columns", len(cells), len(r.columns))
	}
	r.rows = append(r.rows, cells)
	return nil
}

// CSV renders the report as CSV bytes.
func (r *Report) CSV() ([]byte, error) {
	if len(r.columns) == 0 {
		return nil, fmt.Errorf("csv requires at least one column")
	}
	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)
	if err := writer.Write(r.columns); err != nil {
		return nil, fmt.Errorf("write csv headers: %w", err)
	}
	for _, row := range r.rows {
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// Count renders a record counter cell.
func Count(n int) string {
	return strconv.Itoa(n)
}

// Equiv renders an equivalence cell with one decimal. Tallies accumulate in
// exact quarter units; this is the only rounding the export applies.
func Equiv(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}
