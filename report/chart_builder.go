package report

import (
	"github.com/spektr-org/tabular/engine"
)

// ============================================================================
// CHART BUILDER — Produces ChartConfig from summaries and groups
// ============================================================================

// Default color palette for chart series.
var defaultColors = []string{
	"#4F46E5", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6",
	"#06B6D4", "#EC4899", "#84CC16", "#F97316", "#6366F1",
}

// BuildCategoryChart charts the category distribution of a summary, one bar
// per category in ascending label order. Returns nil for an empty distribution.
func BuildCategoryChart(summary *engine.SummaryResult) *ChartConfig {
	if summary == nil || len(summary.CategoryDistribution) == 0 {
		return nil
	}

	keys := engine.SortedKeys(summary.CategoryDistribution)
	points := make([]ChartPoint, 0, len(keys))
	for _, k := range keys {
		points = append(points, ChartPoint{
			Label: k,
			Value: float64(summary.CategoryDistribution[k]),
		})
	}

	config := &ChartConfig{
		ChartType:  "bar",
		Title:      "Category Distribution",
		XAxis:      LabelForColumn("category"),
		YAxis:      "Count",
		Series:     []ChartSeries{{Name: "Records", Data: points}},
		ShowLegend: false,
		ShowGrid:   true,
	}
	config.Colors = assignColors(len(config.Series))
	return config
}

// BuildScoreChart charts per-category score and age averages as two series,
// sorted by sortBy (see engine.SortGroups). Returns nil for an empty dataset.
func BuildScoreChart(ds engine.Dataset, sortBy string) *ChartConfig {
	groups := engine.GroupByCategory(ds)
	if len(groups) == 0 {
		return nil
	}
	engine.SortGroups(groups, sortBy)

	config := &ChartConfig{
		ChartType:  "bar",
		Title:      "Average Score by Category",
		XAxis:      LabelForColumn("category"),
		YAxis:      "Average",
		ShowLegend: true,
		ShowGrid:   true,
	}
	config.Series = []ChartSeries{
		buildSeries("Average Score", groups, func(g engine.Group) float64 { return g.AverageScore }),
		buildSeries("Average Age", groups, func(g engine.Group) float64 { return g.AverageAge }),
	}
	config.Colors = assignColors(len(config.Series))
	for i := range config.Series {
		config.Series[i].Color = config.Colors[i]
	}
	return config
}

// BuildSeriesChart produces a single-series line chart from parallel labels
// and values, e.g. a daily sales series.
func BuildSeriesChart(title, xAxis, yAxis string, labels []string, values []float64) *ChartConfig {
	n := min(len(labels), len(values))
	if n == 0 {
		return nil
	}
	points := make([]ChartPoint, n)
	for i := 0; i < n; i++ {
		points[i] = ChartPoint{Label: labels[i], Value: engine.RoundTo2(values[i])}
	}
	return &ChartConfig{
		ChartType:  "line",
		Title:      title,
		XAxis:      xAxis,
		YAxis:      yAxis,
		Series:     []ChartSeries{{Name: yAxis, Data: points}},
		Colors:     assignColors(1),
		ShowLegend: false,
		ShowGrid:   true,
	}
}

// ============================================================================
// SERIES BUILDERS
// ============================================================================

func buildSeries(name string, groups []engine.Group, value func(engine.Group) float64) ChartSeries {
	points := make([]ChartPoint, 0, len(groups))
	for _, g := range groups {
		points = append(points, ChartPoint{
			Label: g.Key,
			Value: engine.RoundTo2(value(g)),
		})
	}
	return ChartSeries{Name: name, Data: points}
}

func assignColors(count int) []string {
	colors := make([]string, count)
	for i := 0; i < count; i++ {
		colors[i] = defaultColors[i%len(defaultColors)]
	}
	return colors
}
