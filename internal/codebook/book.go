package codebook

import (
	"fmt"
	"strconv"
	"strings"
)

// UnknownColumnError reports a phrase lookup against an undeclared column.
type UnknownColumnError struct {
	Code string
}

// Error returns a readable message naming the offending column code.
func (err *UnknownColumnError) Error() string {
	return fmt.Sprintf("codebook has no entry for column %q", err.Code)
}

// Book is the runtime lookup structure built from a validated Spec.
type Book struct {
	columns map[string]Column
	order   []string
	recodes map[string]Recode
}

// NewBook indexes a validated spec for lookups.
func NewBook(spec Spec) *Book {
	book := &Book{
		columns: make(map[string]Column, len(spec.Columns)),
		order:   make([]string, 0, len(spec.Columns)),
		recodes: make(map[string]Recode, len(spec.Recodes)),
	}
	for _, column := range spec.Columns {
		book.columns[column.Code] = column
		book.order = append(book.order, column.Code)
	}
	for _, recode := range spec.Recodes {
		book.recodes[recode.Column] = recode
	}
	return book
}

// Codes returns the declared column codes in document order.
func (book *Book) Codes() []string {
	codes := make([]string, len(book.order))
	copy(codes, book.order)
	return codes
}

// Has reports whether the book declares the given column.
func (book *Book) Has(code string) bool {
	_, ok := book.columns[code]
	return ok
}

// Column returns the declaration for a column code.
func (book *Book) Column(code string) (Column, bool) {
	column, ok := book.columns[code]
	return column, ok
}

// Sentence returns the preamble sentence template for a column, or "".
func (book *Book) Sentence(code string) string {
	return book.columns[code].Sentence
}

// Phrase maps one raw coded value to its natural-language phrase. Blank and
// unmapped values fall back to the column default; the lookup is total for
// declared columns and fails only when the column itself is undeclared.
func (book *Book) Phrase(code, raw string) (string, error) {
	column, ok := book.columns[code]
	if !ok {
		return "", &UnknownColumnError{Code: code}
	}
	value := strings.TrimSpace(raw)
	if value == "" {
		return column.defaultPhrase(), nil
	}
	if phrase, mapped := column.Values[value]; mapped {
		return phrase, nil
	}
	if column.Numeric {
		if normalized, ok := normalizeNumber(value); ok {
			return normalized, nil
		}
	}
	if column.Passthrough {
		return value, nil
	}
	return column.defaultPhrase(), nil
}

// Recode maps a raw answer label onto its recoded category, if any.
func (book *Book) Recode(code, raw string) string {
	recode, ok := book.recodes[code]
	if !ok {
		return raw
	}
	value := strings.TrimSpace(raw)
	if value == "" {
		return raw
	}
	if mapped, exists := recode.Values[value]; exists {
		return mapped
	}
	for _, keep := range recode.Keep {
		if value == keep {
			return value
		}
	}
	if recode.Other != "" {
		return recode.Other
	}
	return raw
}

func (column Column) defaultPhrase() string {
	if column.Default != nil {
		return *column.Default
	}
	return DefaultPhrase
}

// normalizeNumber strips a trailing ".0" style fraction from integral values.
func normalizeNumber(value string) (string, bool) {
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return "", false
	}
	if parsed == float64(int64(parsed)) {
		return strconv.FormatInt(int64(parsed), 10), true
	}
	return value, true
}
