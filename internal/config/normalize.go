package config

import (
	"strings"

	"surveygen/internal/spec"
)

// Normalize trims whitespace and applies defaults before validation.
func Normalize(cfg *spec.Config) {
	cfg.Input = strings.TrimSpace(cfg.Input)
	cfg.Codebook = strings.TrimSpace(cfg.Codebook)
	cfg.Perspective = strings.TrimSpace(strings.ToLower(cfg.Perspective))
	if cfg.Perspective == "" {
		cfg.Perspective = spec.PerspectiveSecondPerson
	}
	cfg.DemographicColumns = trimSlice(cfg.DemographicColumns)
	cfg.ResponseColumns = trimSlice(cfg.ResponseColumns)
	for i, text := range cfg.QuestionText {
		cfg.QuestionText[i] = strings.TrimSpace(text)
	}
	if strings.TrimSpace(cfg.Output.Dir) == "" {
		cfg.Output.Dir = DefaultOutputDir
	}
}

func trimSlice(values []string) []string {
	trimmed := make([]string, 0, len(values))
	for _, value := range values {
		trimmed = append(trimmed, strings.TrimSpace(value))
	}
	return trimmed
}
