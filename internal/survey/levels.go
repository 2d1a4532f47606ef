package survey

import (
	"sort"
	"strings"
)

// nonSubstantiveMarkers flag answers that carry no usable response.
var nonSubstantiveMarkers = []string{
	"refused",
	"not applicable",
	"don't know",
	"do not know",
	"no contact",
}

// IsNonSubstantive reports whether an answer label is a refusal, a missing
// marker, or otherwise carries no substantive response.
func IsNonSubstantive(value string) bool {
	lowered := strings.ToLower(value)
	for _, marker := range nonSubstantiveMarkers {
		if strings.Contains(lowered, marker) {
			return true
		}
	}
	return false
}

// ResponseLevels returns the distinct substantive answers observed for a
// column, sorted and joined with "; ". Blank and non-substantive answers
// are excluded.
func (t *Table) ResponseLevels(code string) (string, error) {
	if !t.hasColumn(code) {
		return "", &MissingColumnError{Column: code}
	}
	seen := map[string]struct{}{}
	for _, row := range t.rows {
		value := strings.TrimSpace(row[code])
		if value == "" || IsNonSubstantive(value) {
			continue
		}
		seen[value] = struct{}{}
	}
	levels := make([]string, 0, len(seen))
	for value := range seen {
		levels = append(levels, value)
	}
	sort.Strings(levels)
	return strings.Join(levels, "; "), nil
}

// FilterSubstantive returns a table containing only rows with a substantive
// answer for every listed column.
func (t *Table) FilterSubstantive(codes ...string) (*Table, error) {
	for _, code := range codes {
		if !t.hasColumn(code) {
			return nil, &MissingColumnError{Column: code}
		}
	}
	filtered := &Table{columns: t.Columns()}
	for i, row := range t.rows {
		keep := true
		for _, code := range codes {
			value := strings.TrimSpace(row[code])
			if value == "" || IsNonSubstantive(value) {
				keep = false
				break
			}
		}
		if keep {
			filtered.rows = append(filtered.rows, row)
			filtered.ids = append(filtered.ids, t.ids[i])
		}
	}
	return filtered, nil
}

func (t *Table) hasColumn(code string) bool {
	for _, column := range t.columns {
		if column == code {
			return true
		}
	}
	return false
}
