package backtest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// ExportToJSON writes a run's full result, records included, to a file
// for offline analysis.
func ExportToJSON(result *Result, path string) error {
	if path == "" {
		return fmt.Errorf("output path is empty")
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}

	return nil
}
