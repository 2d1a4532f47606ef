package promptgen

import "fmt"

// LengthMismatchError reports a question_text list whose length does not
// match the selected column count. This is a caller-contract violation and
// is raised before any row is processed.
type LengthMismatchError struct {
	Questions int
	Columns   int
}

// Error returns a readable message with both lengths.
func (err *LengthMismatchError) Error() string {
	return fmt.Sprintf("question_text has %d entries but %d columns are selected", err.Questions, err.Columns)
}
