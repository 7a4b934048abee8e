package schema

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// ============================================================================
// AUTO-DISCOVERY — Column type inference
// ============================================================================
// Inspects raw CSV and reports, per column: type, sample values, cardinality
// and null count. Loaders use the result to reject a CSV whose known columns
// carry the wrong type before any record is built.
//
// Classification per column:
//   1. Drop null-like values ("", "null", "N/A", ...)
//   2. Detect type: bool, int, float, string (80%+ of values must agree)
//   3. Mark numeric columns, collect samples, set a cardinality hint
// ============================================================================

// DiscoverOptions controls discovery behavior.
type DiscoverOptions struct {
	SampleSize int    // Max rows to inspect (0 = all). Default: 1000
	Name       string // Dataset name override
}

// DefaultDiscoverOptions returns sensible defaults.
func DefaultDiscoverOptions() DiscoverOptions {
	return DiscoverOptions{
		SampleSize: 1000,
	}
}

// DiscoverFromCSV generates a Config by inspecting CSV data.
// A header with no data rows is valid: every column is reported as string.
func DiscoverFromCSV(data []byte, opts ...DiscoverOptions) (*Config, error) {
	opt := DefaultDiscoverOptions()
	if len(opts) > 0 {
		opt = opts[0]
	}

	reader := csv.NewReader(strings.NewReader(string(data)))

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV headers: %w", err)
	}
	if len(headers) == 0 {
		return nil, fmt.Errorf("CSV has no columns")
	}

	var rows [][]string
	limit := opt.SampleSize
	if limit <= 0 {
		limit = 100000 // safety cap
	}
	for i := 0; i < limit; i++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row %d: %w", i+2, err)
		}
		rows = append(rows, row)
	}

	config := &Config{
		Name:           opt.Name,
		Version:        "1.0",
		DiscoveredFrom: "CSV",
		DiscoveredAt:   time.Now().Format(time.RFC3339),
		Rows:           len(rows),
	}
	if config.Name == "" {
		config.Name = "Auto-discovered Dataset"
	}

	for i, header := range headers {
		config.Columns = append(config.Columns, analyzeColumn(header, i, rows))
	}
	return config, nil
}

// ============================================================================
// COLUMN ANALYSIS
// ============================================================================

func analyzeColumn(header string, index int, rows [][]string) ColumnMeta {
	col := ColumnMeta{
		Key:         ToSnakeCase(header),
		Header:      header,
		DisplayName: ToDisplayName(header),
		Type:        TypeString,
	}

	values := make([]string, 0, len(rows))
	uniqueSet := make(map[string]bool)
	for _, row := range rows {
		if index >= len(row) {
			col.NullCount++
			continue
		}
		val := strings.TrimSpace(row[index])
		if isNull(val) {
			col.NullCount++
			continue
		}
		values = append(values, val)
		uniqueSet[val] = true
	}

	if len(values) == 0 {
		return col
	}

	col.Type = detectType(values)
	col.Numeric = col.Type == TypeInt || col.Type == TypeFloat
	col.SampleValues = collectSamples(uniqueSet, 10)

	switch n := len(uniqueSet); {
	case n <= 10:
		col.CardinalityHint = "low"
	case n <= 100:
		col.CardinalityHint = "medium"
	default:
		col.CardinalityHint = "high"
	}
	return col
}

// ============================================================================
// TYPE DETECTION
// ============================================================================

// detectType inspects values to determine column type.
// Requires 80%+ of non-null values to match for bool/int/float.
func detectType(values []string) ColumnType {
	if len(values) == 0 {
		return TypeString
	}

	intCount := 0
	floatCount := 0
	boolCount := 0
	for _, v := range values {
		if isInt(v) {
			intCount++
		}
		if isFloat(v) {
			floatCount++
		}
		if isBool(v) {
			boolCount++
		}
	}

	threshold := int(float64(len(values)) * 0.8)
	if threshold == 0 {
		threshold = 1
	}

	switch {
	case boolCount >= threshold:
		return TypeBool
	case intCount >= threshold:
		return TypeInt
	case floatCount >= threshold:
		return TypeFloat
	}
	return TypeString
}

func isNull(s string) bool {
	switch s {
	case "", "null", "NULL", "N/A", "n/a", "NA":
		return true
	}
	return false
}

func isInt(s string) bool {
	_, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return err == nil
}

func isFloat(s string) bool {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "") // handle "1,234.56"
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

// isBool accepts words only; 0/1 columns are reported as int.
func isBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "false", "yes", "no":
		return true
	}
	return false
}

// ============================================================================
// STRING UTILITIES
// ============================================================================

// ToSnakeCase converts "Column Name" or "columnName" → "column_name".
func ToSnakeCase(s string) string {
	s = strings.TrimSpace(s)

	var result strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) && i > 0 {
			prev := rune(s[i-1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) {
				result.WriteRune('_')
			}
		}
		result.WriteRune(r)
	}

	s = result.String()
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "__", "_")
	s = strings.Trim(s, "_")
	return s
}

// ToDisplayName cleans a header for human display.
// "average_score" → "Average Score", "age" → "Age"
func ToDisplayName(s string) string {
	if strings.Contains(s, " ") {
		return strings.TrimSpace(s)
	}

	s = strings.ReplaceAll(s, "_", " ")
	s = strings.ReplaceAll(s, "-", " ")

	words := strings.Fields(s)
	for i, w := range words {
		if len(w) > 0 {
			words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
		}
	}
	return strings.Join(words, " ")
}

// collectSamples picks up to maxSamples representative values.
func collectSamples(uniqueSet map[string]bool, maxSamples int) []string {
	samples := make([]string, 0, len(uniqueSet))
	for v := range uniqueSet {
		samples = append(samples, v)
	}
	sort.Strings(samples)

	if len(samples) > maxSamples {
		samples = samples[:maxSamples]
	}
	return samples
}
