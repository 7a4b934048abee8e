package engine

import (
	"fmt"
	"strings"
)

// ============================================================================
// TABULAR ENGINE TYPES — Fixed-schema records
// ============================================================================
// A Dataset is an ordered slice of Records plus the set of columns its source
// actually supplied. Analyze and FilterByThreshold treat it as read-only.
//
// Dependency: engine imports gonum for numeric kernels only. No I/O.
// ============================================================================

// ============================================================================
// RECORD — One row
// ============================================================================

// Record is a single row of a Dataset.
type Record struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Age      int     `json:"age"`
	Score    float64 `json:"score"`
	Category string  `json:"category"`
	Active   bool    `json:"active"`
}

// DefaultCategories is the vocabulary the sample generator draws from.
var DefaultCategories = []string{"A", "B", "C", "D"}

// ============================================================================
// COLUMN — Named field of a Record
// ============================================================================

// Column identifies one field of a Record.
type Column int

const (
	ColumnID Column = iota
	ColumnName
	ColumnAge
	ColumnScore
	ColumnCategory
	ColumnActive
)

// AllColumns lists every column in schema order.
var AllColumns = []Column{ColumnID, ColumnName, ColumnAge, ColumnScore, ColumnCategory, ColumnActive}

var columnNames = [...]string{"id", "name", "age", "score", "category", "active"}

func (c Column) String() string {
	if c < 0 || int(c) >= len(columnNames) {
		return fmt.Sprintf("column(%d)", int(c))
	}
	return columnNames[c]
}

// Numeric reports whether the column holds numbers a threshold can compare.
func (c Column) Numeric() bool {
	return c == ColumnID || c == ColumnAge || c == ColumnScore
}

// ParseColumn maps a column name ("score", " Score ") to its Column.
func ParseColumn(name string) (Column, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for i, n := range columnNames {
		if n == key {
			return Column(i), nil
		}
	}
	return 0, &ColumnError{Column: name, Op: "parse", cause: ErrUnknownColumn}
}

// numericValue reads a numeric column from r. Callers check c.Numeric() first.
func numericValue(r Record, c Column) float64 {
	switch c {
	case ColumnID:
		return float64(r.ID)
	case ColumnAge:
		return float64(r.Age)
	case ColumnScore:
		return r.Score
	}
	return 0
}

// ============================================================================
// COLUMN SET
// ============================================================================

// ColumnSet is a bitset of columns present in a Dataset.
type ColumnSet uint8

// FullColumnSet contains every column.
const FullColumnSet ColumnSet = 1<<len(columnNames) - 1

// NewColumnSet builds a set from columns.
func NewColumnSet(cols ...Column) ColumnSet {
	var s ColumnSet
	for _, c := range cols {
		s = s.With(c)
	}
	return s
}

// With returns s plus c.
func (s ColumnSet) With(c Column) ColumnSet { return s | 1<<uint(c) }

// Has reports whether c is in s.
func (s ColumnSet) Has(c Column) bool { return s&(1<<uint(c)) != 0 }

// Missing returns the columns of want that s lacks, in schema order.
func (s ColumnSet) Missing(want ColumnSet) []Column {
	var out []Column
	for _, c := range AllColumns {
		if want.Has(c) && !s.Has(c) {
			out = append(out, c)
		}
	}
	return out
}

// Columns lists the members of s in schema order.
func (s ColumnSet) Columns() []Column {
	var out []Column
	for _, c := range AllColumns {
		if s.Has(c) {
			out = append(out, c)
		}
	}
	return out
}

// ============================================================================
// DATASET
// ============================================================================

// Dataset is an ordered, fixed-schema collection of records.
type Dataset struct {
	Columns ColumnSet `json:"-"`
	Records []Record  `json:"records"`
}

// NewDataset wraps records built in code; every column is present.
func NewDataset(records []Record) Dataset {
	return Dataset{Columns: FullColumnSet, Records: records}
}

// Len returns the number of records.
func (d Dataset) Len() int { return len(d.Records) }

// Values extracts a numeric column as float64s, in record order.
func (d Dataset) Values(c Column) ([]float64, error) {
	if !c.Numeric() {
		return nil, &ColumnError{Column: c.String(), Op: "values", cause: ErrUnknownColumn}
	}
	if !d.Columns.Has(c) {
		return nil, &ColumnError{Column: c.String(), Op: "values", cause: ErrUnknownColumn}
	}
	out := make([]float64, len(d.Records))
	for i, r := range d.Records {
		out[i] = numericValue(r, c)
	}
	return out, nil
}
