package finder

import (
	"StorWatch/internal/pkg/paths"
	"fmt"
	"os"
	"path/filepath"
)

// FindConfigFile looks for a configuration file and returns its absolute
// path. An explicit path is tried as given; otherwise the standard locations
// from the path provider are searched in order.
func FindConfigFile(configPath string, mustExist bool) (string, error) {
	for _, candidate := range paths.ConfigCandidates(configPath) {
		if _, err := os.Stat(candidate); err != nil {
			continue
		}
		absPath, err := filepath.Abs(candidate)
		if err != nil {
			return "", fmt.Errorf("failed to get absolute path: %w", err)
		}
		return absPath, nil
	}

	if mustExist {
		return "", fmt.Errorf("configuration file not found: %s", configPath)
	}

	return configPath, nil
}
