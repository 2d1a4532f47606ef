package codebook

import (
	_ "embed"
	"fmt"
)

// ghanaR9 holds the codebook shipped with the binary.
//
//go:embed ghana_r9.yml
var ghanaR9 []byte

// Embedded returns the built-in Afrobarometer Ghana round 9 codebook.
func Embedded() (*Book, error) {
	spec, err := parseYAMLSpec(ghanaR9)
	if err != nil {
		return nil, fmt.Errorf("embedded codebook: %w", err)
	}
	normalized, err := NormalizeSpec(spec)
	if err != nil {
		return nil, fmt.Errorf("embedded codebook: %w", err)
	}
	return NewBook(normalized), nil
}
