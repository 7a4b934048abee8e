package report

import (
	"fmt"
	"strings"

	"github.com/spektr-org/tabular/engine"
)

// ============================================================================
// TEXT BUILDER — Produces TextData for one-line answers
// ============================================================================

// BuildText condenses a summary into its average score plus a reply that
// reads back every headline figure.
func BuildText(summary *engine.SummaryResult) *TextData {
	if summary == nil || summary.TotalRecords == 0 {
		return &TextData{
			Label: "Average Score",
			Value: "0",
			Unit:  "score",
			Reply: "No records.",
		}
	}

	parts := make([]string, 0, len(summary.CategoryDistribution))
	for _, k := range engine.SortedKeys(summary.CategoryDistribution) {
		parts = append(parts, fmt.Sprintf("%s=%d", k, summary.CategoryDistribution[k]))
	}

	reply := fmt.Sprintf(
		"Analyzed %s records: %s active, average age %.2f, average score %.2f (std %.2f, median %.2f).",
		FormatInt(summary.TotalRecords), FormatInt(summary.ActiveUsers),
		summary.AverageAge, summary.AverageScore,
		summary.ScoreStats.Std, summary.ScoreStats.P50,
	)
	if len(parts) > 0 {
		reply += " Categories: " + strings.Join(parts, ", ") + "."
	}

	return &TextData{
		Label:    "Average Score",
		Value:    fmt.Sprintf("%.2f", summary.AverageScore),
		RawValue: summary.AverageScore,
		Unit:     "score",
		Count:    summary.TotalRecords,
		Reply:    reply,
	}
}

// BuildFilterText reports how many of total records matched a predicate.
func BuildFilterText(matched, total int, column string, cmp engine.Comparator, threshold float64) *TextData {
	pct := 0.0
	if total > 0 {
		pct = float64(matched) / float64(total) * 100
	}
	return &TextData{
		Label:    "Matching Records",
		Value:    FormatInt(matched),
		RawValue: float64(matched),
		Unit:     "records",
		Count:    total,
		Reply: fmt.Sprintf("%s of %s records have %s %s %s (%.1f%%).",
			FormatInt(matched), FormatInt(total), column, cmp, FormatNumber(threshold), pct),
	}
}

// ============================================================================
// GROWTH BUILDER
// ============================================================================

// BuildGrowthText compares the first and last value of a chronological
// series. labels and values are parallel; unit is a currency code.
func BuildGrowthText(labels []string, values []float64, unit string) *TextData {
	n := min(len(labels), len(values))
	if n == 0 {
		return &TextData{
			Label: "Growth",
			Value: "No data",
			Unit:  unit,
			Reply: "No data.",
		}
	}

	var total float64
	for _, v := range values[:n] {
		total += v
	}

	if n < 2 {
		return &TextData{
			Label:    "Growth",
			Value:    FormatCurrency(total, unit),
			RawValue: total,
			Unit:     unit,
			Count:    n,
			Reply:    fmt.Sprintf("Only one period (%s); growth needs at least two.", labels[0]),
			Growth: &GrowthData{
				EarliestValue:  values[0],
				LatestValue:    values[0],
				EarliestPeriod: labels[0],
				LatestPeriod:   labels[0],
				Direction:      "insufficient data",
			},
		}
	}

	earliest, latest := values[0], values[n-1]
	changeAmount := latest - earliest
	changePercent := PercentageChange(earliest, latest)

	direction := "unchanged"
	if changePercent > 0.5 {
		direction = "increased"
	} else if changePercent < -0.5 {
		direction = "decreased"
	}

	absPercent := changePercent
	if absPercent < 0 {
		absPercent = -absPercent
	}
	var displayValue string
	switch direction {
	case "increased":
		displayValue = fmt.Sprintf("↑ %.1f%%", absPercent)
	case "decreased":
		displayValue = fmt.Sprintf("↓ %.1f%%", absPercent)
	default:
		displayValue = "→ No change"
	}

	return &TextData{
		Label:    "Growth",
		Value:    displayValue,
		RawValue: changePercent,
		Unit:     unit,
		Count:    n,
		Reply: fmt.Sprintf("%s: %s by %s (%s total over %d periods).",
			Period(labels[:n]), direction, FormatCurrency(changeAmount, unit),
			FormatCurrency(total, unit), n),
		Growth: &GrowthData{
			EarliestValue:  earliest,
			LatestValue:    latest,
			EarliestPeriod: labels[0],
			LatestPeriod:   labels[n-1],
			ChangeAmount:   changeAmount,
			ChangePercent:  changePercent,
			Direction:      direction,
		},
	}
}

// Period formats the span covered by chronological labels.
func Period(labels []string) string {
	switch len(labels) {
	case 0:
		return "No data"
	case 1:
		return labels[0]
	}
	return fmt.Sprintf("%s – %s", labels[0], labels[len(labels)-1])
}
