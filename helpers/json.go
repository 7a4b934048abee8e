package helpers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spektr-org/tabular/engine"
)

// ErrNotFound is returned by the loaders when the file does not exist.
var ErrNotFound = errors.New("file not found")

// SaveJSON writes v to path as indented JSON, creating parent directories.
func SaveJSON(path string, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", path, err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, append(out, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// LoadJSON decodes the JSON file at path into v.
func LoadJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// LoadDataset reads a dataset saved with SaveJSON. Records decoded from JSON
// carry every field, so the result has all columns.
func LoadDataset(path string) (engine.Dataset, error) {
	var ds engine.Dataset
	if err := LoadJSON(path, &ds); err != nil {
		return engine.Dataset{}, err
	}
	if ds.Records == nil {
		ds.Records = []engine.Record{}
	}
	ds.Columns = engine.FullColumnSet
	return ds, nil
}
