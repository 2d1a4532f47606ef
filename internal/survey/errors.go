package survey

import "fmt"

// FormatError reports a file that could not be read as tabular data.
type FormatError struct {
	Path string
	Err  error
}

// Error returns a readable message naming the offending file.
func (err *FormatError) Error() string {
	return fmt.Sprintf("cannot read %s as tabular data: %v", err.Path, err.Err)
}

// Unwrap exposes the underlying cause.
func (err *FormatError) Unwrap() error {
	return err.Err
}

// SchemaError reports a duplicated column in the file header.
type SchemaError struct {
	Column string
}

// Error returns a readable message naming the duplicated column.
func (err *SchemaError) Error() string {
	return fmt.Sprintf("header declares column %q more than once", err.Column)
}

// MissingColumnError reports a requested column absent from the header.
type MissingColumnError struct {
	Column string
}

// Error returns a readable message naming the missing column.
func (err *MissingColumnError) Error() string {
	return fmt.Sprintf("column %q is not present in the survey data", err.Column)
}
