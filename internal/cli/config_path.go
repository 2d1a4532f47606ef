package cli

import (
	"fmt"
	"os"

	"surveygen/internal/config"
)

// resolveConfigPath returns the explicit path when given, otherwise searches
// upward from the working directory.
func resolveConfigPath(explicit string) (string, error) {
	if explicit != "" {
		info, err := os.Stat(explicit)
		if err != nil {
			return "", fmt.Errorf("config path %q: %w", explicit, err)
		}
		if info.IsDir() {
			return "", fmt.Errorf("config path %q is a directory", explicit)
		}
		return explicit, nil
	}
	return config.FindConfigPath("")
}
