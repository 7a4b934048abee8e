package schema

import (
	"fmt"

	"github.com/spektr-org/tabular/engine"
)

// ============================================================================
// SCHEMA — Describes the columns of a dataset source
// ============================================================================
// Default() describes the fixed record schema the engine consumes.
// DiscoverFromCSV() describes whatever a CSV actually carries, so loaders can
// check it against Default() before building records.
// ============================================================================

// ColumnType is the value type of a column.
type ColumnType string

const (
	TypeString ColumnType = "string"
	TypeInt    ColumnType = "int"
	TypeFloat  ColumnType = "float"
	TypeBool   ColumnType = "bool"
)

// Config describes the complete shape of a dataset.
type Config struct {
	Name        string       `json:"name"`
	Version     string       `json:"version,omitempty"`
	Description string       `json:"description,omitempty"`
	Columns     []ColumnMeta `json:"columns"`

	// Auto-discovery metadata
	DiscoveredFrom string `json:"discoveredFrom,omitempty"`
	DiscoveredAt   string `json:"discoveredAt,omitempty"`
	Rows           int    `json:"rows,omitempty"`
}

// ColumnMeta describes one column.
type ColumnMeta struct {
	Key             string     `json:"key"`
	Header          string     `json:"header,omitempty"` // raw header as it appears in the source
	DisplayName     string     `json:"displayName"`
	Type            ColumnType `json:"type"`
	Required        bool       `json:"required,omitempty"`
	Numeric         bool       `json:"numeric,omitempty"`
	SampleValues    []string   `json:"sampleValues,omitempty"`
	CardinalityHint string     `json:"cardinalityHint,omitempty"` // "low", "medium", "high"
	NullCount       int        `json:"nullCount,omitempty"`
}

// Default returns the schema of engine.Record.
func Default() Config {
	return Config{
		Name:        "Users",
		Version:     "1.0",
		Description: "Synthetic user records",
		Columns: []ColumnMeta{
			{Key: "id", DisplayName: "ID", Type: TypeInt, Required: true, Numeric: true},
			{Key: "name", DisplayName: "Name", Type: TypeString, Required: true},
			{Key: "age", DisplayName: "Age", Type: TypeInt, Required: true, Numeric: true},
			{Key: "score", DisplayName: "Score", Type: TypeFloat, Required: true, Numeric: true},
			{Key: "category", DisplayName: "Category", Type: TypeString, Required: true,
				SampleValues: engine.DefaultCategories, CardinalityHint: "low"},
			{Key: "active", DisplayName: "Active", Type: TypeBool, Required: true},
		},
	}
}

// Column returns the metadata for key, if present.
func (c Config) Column(key string) (ColumnMeta, bool) {
	for _, col := range c.Columns {
		if col.Key == key {
			return col, true
		}
	}
	return ColumnMeta{}, false
}

// Keys returns all column keys.
func (c Config) Keys() []string {
	keys := make([]string, len(c.Columns))
	for i, col := range c.Columns {
		keys[i] = col.Key
	}
	return keys
}

// NumericKeys returns the keys of numeric columns.
func (c Config) NumericKeys() []string {
	var keys []string
	for _, col := range c.Columns {
		if col.Numeric {
			keys = append(keys, col.Key)
		}
	}
	return keys
}

// Validate maps CSV headers onto engine columns.
//
// Headers are normalized ("Score" -> "score"); unrecognised headers are
// ignored. A header that appears twice, or a header set with no recognised
// column at all, fails with engine.ErrInvalidInput.
func Validate(headers []string) (engine.ColumnSet, map[engine.Column]int, error) {
	var present engine.ColumnSet
	index := make(map[engine.Column]int)

	for i, h := range headers {
		col, err := engine.ParseColumn(ToSnakeCase(h))
		if err != nil {
			continue
		}
		if present.Has(col) {
			return 0, nil, fmt.Errorf("%w: duplicate column %q", engine.ErrInvalidInput, h)
		}
		present = present.With(col)
		index[col] = i
	}

	if present == 0 {
		return 0, nil, fmt.Errorf("%w: no known columns in %v", engine.ErrInvalidInput, headers)
	}
	return present, index, nil
}

// CheckTypes compares discovered column types against the default schema.
// Integers are accepted where floats are expected, 0/1 integers where
// booleans are, and anything where a string is.
func CheckTypes(discovered *Config) error {
	want := Default()
	for _, got := range discovered.Columns {
		exp, ok := want.Column(got.Key)
		if !ok {
			continue
		}
		switch {
		case got.Type == exp.Type:
		case exp.Type == TypeString:
		case exp.Type == TypeFloat && got.Type == TypeInt:
		case exp.Type == TypeBool && got.Type == TypeInt:
		default:
			return engine.NewColumnError(got.Key, "check",
				fmt.Errorf("%w: expected %s, found %s", engine.ErrTypeMismatch, exp.Type, got.Type))
		}
	}
	return nil
}
