package codebook

import (
	"fmt"
	"strings"
)

// Issue captures a validation problem in a codebook specification.
type Issue struct {
	Field   string
	Message string
}

// ValidationError reports one or more validation issues.
type ValidationError struct {
	Issues []Issue
}

// Error returns a readable message for validation failures.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return ""
	}
	parts := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		parts = append(parts, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return fmt.Sprintf("codebook validation failed: %s", strings.Join(parts, "; "))
}

type issueCollector struct {
	issues []Issue
}

func (collector *issueCollector) add(field, message string) {
	collector.issues = append(collector.issues, Issue{Field: field, Message: message})
}

func (collector *issueCollector) result() error {
	if len(collector.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: collector.issues}
}

// NormalizeSpec trims whitespace and validates a codebook spec.
func NormalizeSpec(spec Spec) (Spec, error) {
	collector := &issueCollector{}
	if spec.Version == 0 {
		collector.add("version", "is required")
	} else if spec.Version != 1 {
		collector.add("version", fmt.Sprintf("unsupported version %d", spec.Version))
	}
	if len(spec.Columns) == 0 {
		collector.add("columns", "must include at least one entry")
	}

	seen := map[string]struct{}{}
	for i, column := range spec.Columns {
		prefix := fmt.Sprintf("columns[%d]", i)
		column.Code = strings.TrimSpace(column.Code)
		if column.Code == "" {
			collector.add(prefix+".code", "is required")
		} else if _, exists := seen[column.Code]; exists {
			collector.add(prefix+".code", fmt.Sprintf("duplicate code %q", column.Code))
		} else {
			seen[column.Code] = struct{}{}
		}
		if len(column.Values) == 0 && !column.Passthrough && !column.Numeric {
			collector.add(prefix+".values", "must include at least one entry, or set passthrough or numeric")
		}
		if column.Sentence != "" && !strings.Contains(column.Sentence, "{phrase}") {
			collector.add(prefix+".sentence", "must contain the {phrase} placeholder")
		}
		spec.Columns[i] = column
	}

	for i, recode := range spec.Recodes {
		prefix := fmt.Sprintf("recodes[%d]", i)
		recode.Column = strings.TrimSpace(recode.Column)
		if recode.Column == "" {
			collector.add(prefix+".column", "is required")
		} else if _, declared := seen[recode.Column]; !declared {
			collector.add(prefix+".column", fmt.Sprintf("unknown column %q", recode.Column))
		}
		if len(recode.Values) == 0 && recode.Other == "" {
			collector.add(prefix+".values", "must include at least one entry or set other")
		}
		spec.Recodes[i] = recode
	}

	if err := collector.result(); err != nil {
		return Spec{}, err
	}
	return spec, nil
}
