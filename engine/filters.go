package engine

import (
	"fmt"
	"math"
	"strings"
)

// ============================================================================
// FILTERS — Numeric threshold selection
// ============================================================================
// Single pass over the records; matching rows are copied into a fresh slice
// so the input Dataset is never aliased or mutated.
// ============================================================================

// DefaultHighPerformerThreshold is the score cut-off used by FilterHighPerformers.
const DefaultHighPerformerThreshold = 80.0

// Comparator selects how a record value is compared against the threshold.
type Comparator int

const (
	GreaterOrEqual Comparator = iota
	Greater
	LessOrEqual
	Less
	Equal
)

var comparatorSymbols = [...]string{">=", ">", "<=", "<", "=="}

func (c Comparator) String() string {
	if !c.valid() {
		return fmt.Sprintf("comparator(%d)", int(c))
	}
	return comparatorSymbols[c]
}

func (c Comparator) valid() bool {
	return c >= 0 && int(c) < len(comparatorSymbols)
}

// ParseComparator maps ">=", ">", "<=", "<", "==" (or "gte", "gt", "lte", "lt", "eq").
func ParseComparator(s string) (Comparator, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case ">=", "gte", "ge":
		return GreaterOrEqual, nil
	case ">", "gt":
		return Greater, nil
	case "<=", "lte", "le":
		return LessOrEqual, nil
	case "<", "lt":
		return Less, nil
	case "==", "=", "eq":
		return Equal, nil
	}
	return 0, fmt.Errorf("comparator %q: %w", s, ErrTypeMismatch)
}

func (c Comparator) match(v, threshold float64) bool {
	switch c {
	case GreaterOrEqual:
		return v >= threshold
	case Greater:
		return v > threshold
	case LessOrEqual:
		return v <= threshold
	case Less:
		return v < threshold
	case Equal:
		return v == threshold
	}
	return false
}

// FilterByThreshold returns the records whose numeric column satisfies the
// comparator against threshold (default: value >= threshold).
// Order and columns are preserved. No match yields an empty Dataset, not an error.
func FilterByThreshold(ds Dataset, column string, threshold float64, opts ...FilterOption) (Dataset, error) {
	cfg := applyFilterOptions(opts)

	col, err := ParseColumn(column)
	if err != nil {
		return Dataset{}, err
	}
	if !col.Numeric() || !ds.Columns.Has(col) {
		return Dataset{}, NewColumnError(column, "filter", ErrUnknownColumn)
	}
	if math.IsNaN(threshold) {
		return Dataset{}, NewColumnError(column, "filter", fmt.Errorf("%w: threshold is NaN", ErrTypeMismatch))
	}
	if !cfg.Comparator.valid() {
		return Dataset{}, NewColumnError(column, "filter", fmt.Errorf("%w: %s", ErrTypeMismatch, cfg.Comparator))
	}

	out := make([]Record, 0, len(ds.Records))
	for _, r := range ds.Records {
		if cfg.Comparator.match(numericValue(r, col), threshold) {
			out = append(out, r)
		}
	}

	return Dataset{Columns: ds.Columns, Records: out}, nil
}

// FilterHighPerformers keeps records with score >= threshold.
func FilterHighPerformers(ds Dataset, threshold float64) (Dataset, error) {
	return FilterByThreshold(ds, ColumnScore.String(), threshold)
}
