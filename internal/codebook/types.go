// Package codebook holds the static mapping from coded survey answers to
// natural-language phrases. Phrases may contain pronoun and verb
// placeholders ({subj}, {poss}, {are}, ...) that the prompt assembler
// substitutes per perspective; a phrase ending with "." is treated as a
// complete sentence and bypasses the column's sentence template.
package codebook

// Spec defines the codebook document schema loaded from YAML or JSON.
type Spec struct {
	Version int      `json:"version" yaml:"version"`
	Columns []Column `json:"columns" yaml:"columns"`
	Recodes []Recode `json:"recodes" yaml:"recodes"`
}

// Column declares the phrase table for one survey column.
type Column struct {
	Code string `json:"code" yaml:"code"`
	// Default is the phrase used for blank or unmapped raw values. An
	// explicitly empty default drops the column from the preamble instead.
	Default *string `json:"default" yaml:"default"`
	// Numeric columns normalize raw values like "23.0" to "23" when unmapped.
	Numeric bool `json:"numeric" yaml:"numeric"`
	// Passthrough columns use the raw value itself as the phrase when unmapped.
	Passthrough bool `json:"passthrough" yaml:"passthrough"`
	// Sentence is the template wrapped around {phrase} for the preamble.
	// Empty means the phrase is already a complete sentence (or the column
	// is rendered generically, as response columns are).
	Sentence string            `json:"sentence" yaml:"sentence"`
	Values   map[string]string `json:"values" yaml:"values"`
}

// Recode maps raw answer labels onto coarser categories before phrase
// lookup. Keep lists labels left untouched; Other, when set, replaces any
// label missing from both Values and Keep.
type Recode struct {
	Column string            `json:"column" yaml:"column"`
	Values map[string]string `json:"values" yaml:"values"`
	Keep   []string          `json:"keep" yaml:"keep"`
	Other  string            `json:"other" yaml:"other"`
}

// DefaultPhrase is used when a column declares no default of its own.
const DefaultPhrase = "not stated"
