package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/spektr-org/tabular/schema"
)

// ============================================================================
// FORMATTING — Money, counts, percentages, dates
// ============================================================================

var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
}

// DateLayout is the layout used for every date string in reports.
const DateLayout = "2006-01-02"

// FormatCurrency formats an amount with the symbol for code, comma separators
// and two decimals. Unknown codes fall back to "$".
//
//	FormatCurrency(1234.5, "EUR")  → "€1,234.50"
//	FormatCurrency(-99.999, "USD") → "-$100.00"
func FormatCurrency(amount float64, code string) string {
	symbol, ok := currencySymbols[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		symbol = "$"
	}

	fixed := decimal.NewFromFloat(amount).StringFixed(2)
	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign = "-"
		fixed = fixed[1:]
	}
	intPart, decPart, _ := strings.Cut(fixed, ".")
	return sign + symbol + groupThousands(intPart) + "." + decPart
}

// FormatInt formats an integer with comma separators.
func FormatInt(n int) string {
	if n < 0 {
		return "-" + FormatInt(-n)
	}
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	return fmt.Sprintf("%s,%03d", FormatInt(n/1000), n%1000)
}

// FormatNumber prints whole numbers without decimals and everything else
// with two.
func FormatNumber(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.2f", v)
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var parts []string
	for len(digits) > 3 {
		parts = append([]string{digits[len(digits)-3:]}, parts...)
		digits = digits[:len(digits)-3]
	}
	parts = append([]string{digits}, parts...)
	return strings.Join(parts, ",")
}

// PercentageChange returns the change from oldValue to newValue in percent.
// A zero oldValue yields 0.
func PercentageChange(oldValue, newValue float64) float64 {
	if oldValue == 0 {
		return 0
	}
	return (newValue - oldValue) / oldValue * 100
}

// DateRange lists every day from end-days through end inclusive, oldest
// first, formatted as YYYY-MM-DD. A negative days yields an empty slice.
func DateRange(end time.Time, days int) []string {
	if days < 0 {
		return []string{}
	}
	start := end.AddDate(0, 0, -days)
	out := make([]string, 0, days+1)
	for i := 0; i <= days; i++ {
		out = append(out, start.AddDate(0, 0, i).Format(DateLayout))
	}
	return out
}

// LabelForColumn returns the display label for a record column key.
func LabelForColumn(key string) string {
	if meta, ok := schema.Default().Column(key); ok {
		return meta.DisplayName
	}
	return schema.ToDisplayName(key)
}
