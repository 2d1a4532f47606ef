package config

import (
	"fmt"
	"strings"

	"surveygen/internal/spec"
)

// Issue captures a validation problem in a pipeline configuration.
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
	return fmt.Sprintf("config validation failed: %s", strings.Join(parts, "; "))
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

// Validate checks a normalized config for structural problems.
func Validate(cfg *spec.Config) error {
	collector := &issueCollector{}
	if cfg.Version == 0 {
		collector.add("version", "is required")
	} else if cfg.Version != 1 {
		collector.add("version", fmt.Sprintf("unsupported version %d", cfg.Version))
	}
	if cfg.Input == "" {
		collector.add("input", "is required")
	}
	if len(cfg.DemographicColumns)+len(cfg.ResponseColumns) == 0 {
		collector.add("demographic_columns", "no columns selected")
	}
	seen := map[string]struct{}{}
	checkColumns(collector, "demographic_columns", cfg.DemographicColumns, seen)
	checkColumns(collector, "response_columns", cfg.ResponseColumns, seen)

	selected := len(cfg.DemographicColumns) + len(cfg.ResponseColumns)
	if len(cfg.QuestionText) != selected {
		collector.add("question_text", fmt.Sprintf("expected %d entries to match the selected columns, got %d", selected, len(cfg.QuestionText)))
	}
	for i, text := range cfg.QuestionText {
		if text == "" {
			collector.add(fmt.Sprintf("question_text[%d]", i), "is required")
		}
	}

	switch cfg.Perspective {
	case spec.PerspectiveSecondPerson, spec.PerspectiveThirdPerson:
	default:
		collector.add("perspective", fmt.Sprintf("must be %s or %s", spec.PerspectiveSecondPerson, spec.PerspectiveThirdPerson))
	}
	if cfg.Seed < 0 {
		collector.add("seed", "must not be negative")
	}
	return collector.result()
}

func checkColumns(collector *issueCollector, field string, codes []string, seen map[string]struct{}) {
	for i, code := range codes {
		if code == "" {
			collector.add(fmt.Sprintf("%s[%d]", field, i), "is required")
			continue
		}
		if _, exists := seen[code]; exists {
			collector.add(fmt.Sprintf("%s[%d]", field, i), fmt.Sprintf("duplicate column %q", code))
			continue
		}
		seen[code] = struct{}{}
	}
}
