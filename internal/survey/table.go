package survey

import "strings"

// Table is an immutable in-memory survey table. Every row holds a raw value
// for every header column; selection produces a new derived table.
type Table struct {
	columns []string
	ids     []string
	rows    []map[string]string
}

// Columns returns the header column codes in order.
func (t *Table) Columns() []string {
	columns := make([]string, len(t.columns))
	copy(columns, t.columns)
	return columns
}

// Len returns the number of respondent rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// ID returns the sequential respondent identifier for a row.
func (t *Table) ID(i int) string {
	return t.ids[i]
}

// Value returns the raw coded value for a row and column code.
func (t *Table) Value(i int, code string) string {
	return t.rows[i][code]
}

// Row returns a copy of one respondent row.
func (t *Table) Row(i int) map[string]string {
	row := make(map[string]string, len(t.rows[i]))
	for code, value := range t.rows[i] {
		row[code] = value
	}
	return row
}

// Select projects the table down to demographic then response columns, in
// that order, preserving row order. Curly quotation marks and apostrophes
// in the selected values are normalized to plain apostrophes.
func (t *Table) Select(demographic, response []string) (*Table, error) {
	present := make(map[string]struct{}, len(t.columns))
	for _, code := range t.columns {
		present[code] = struct{}{}
	}
	selected := make([]string, 0, len(demographic)+len(response))
	selected = append(selected, demographic...)
	selected = append(selected, response...)
	for _, code := range selected {
		if _, ok := present[code]; !ok {
			return nil, &MissingColumnError{Column: code}
		}
	}

	rows := make([]map[string]string, len(t.rows))
	for i, row := range t.rows {
		projected := make(map[string]string, len(selected))
		for _, code := range selected {
			projected[code] = cleanValue(row[code])
		}
		rows[i] = projected
	}
	ids := make([]string, len(t.ids))
	copy(ids, t.ids)
	return &Table{columns: selected, ids: ids, rows: rows}, nil
}

var quoteCleaner = strings.NewReplacer("“", "'", "”", "'", "’", "'")

func cleanValue(value string) string {
	return quoteCleaner.Replace(value)
}
