package engine

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ============================================================================
// AGGREGATORS — Summary statistics, grouping, percentiles
// ============================================================================

// SummaryResult is the Analyzer output. Every field is plain data.
type SummaryResult struct {
	TotalRecords         int            `json:"total_records"`
	AverageAge           float64        `json:"average_age"`
	AverageScore         float64        `json:"average_score"`
	CategoryDistribution map[string]int `json:"category_distribution"`
	ActiveUsers          int            `json:"active_users"`
	ScoreStats           Describe       `json:"score_stats"`
}

// Describe is the count/mean/std/min/quartiles/max bundle of one column.
type Describe struct {
	Count int     `json:"count"`
	Mean  float64 `json:"mean"`
	Std   float64 `json:"std"`
	Min   float64 `json:"min"`
	P25   float64 `json:"25%"`
	P50   float64 `json:"50%"`
	P75   float64 `json:"75%"`
	Max   float64 `json:"max"`
}

// Analyze computes the summary of ds.
//
// Every column must be present (ErrInvalidInput) and ds must hold at least one
// record (ErrEmptyDataset). The empty policy applies to all statistics at once:
// there is no partially filled result.
func Analyze(ds Dataset, opts ...AnalyzeOption) (*SummaryResult, error) {
	cfg := applyAnalyzeOptions(opts)

	if missing := ds.Columns.Missing(FullColumnSet); len(missing) > 0 {
		names := make([]string, len(missing))
		for i, c := range missing {
			names[i] = c.String()
		}
		return nil, fmt.Errorf("%w: missing columns %s", ErrInvalidInput, strings.Join(names, ", "))
	}
	if ds.Len() == 0 {
		return nil, ErrEmptyDataset
	}

	ages, _ := ds.Values(ColumnAge)
	scores, _ := ds.Values(ColumnScore)

	scoreStats, err := DescribeValues(scores)
	if err != nil {
		return nil, err
	}

	distribution := make(map[string]int, len(cfg.Vocabulary))
	for _, v := range cfg.Vocabulary {
		distribution[v] = 0
	}
	active := 0
	for _, r := range ds.Records {
		distribution[r.Category]++
		if r.Active {
			active++
		}
	}

	return &SummaryResult{
		TotalRecords:         ds.Len(),
		AverageAge:           stat.Mean(ages, nil),
		AverageScore:         scoreStats.Mean,
		CategoryDistribution: distribution,
		ActiveUsers:          active,
		ScoreStats:           scoreStats,
	}, nil
}

// DescribeValues computes the descriptive bundle of values.
// Std uses the N-1 denominator; a single value reports Std 0.
func DescribeValues(values []float64) (Describe, error) {
	n := len(values)
	if n == 0 {
		return Describe{}, ErrEmptyDataset
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	d := Describe{
		Count: n,
		Mean:  stat.Mean(values, nil),
		Min:   floats.Min(values),
		Max:   floats.Max(values),
		P25:   Percentile(sorted, 0.25),
		P50:   Percentile(sorted, 0.50),
		P75:   Percentile(sorted, 0.75),
	}
	if n > 1 {
		d.Std = stat.StdDev(values, nil)
	}
	return d, nil
}

// Percentile returns the p-th quantile (0 <= p <= 1) of ascending values,
// interpolating linearly between the order statistics at p*(n-1).
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	switch {
	case p <= 0:
		return sorted[0]
	case p >= 1:
		return sorted[n-1]
	}

	pos := p * float64(n-1)
	lo := int(math.Floor(pos))
	hi := lo + 1
	if hi >= n {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}

// ============================================================================
// GROUPING
// ============================================================================

// Group is one category bucket of a Dataset.
type Group struct {
	Key          string  `json:"key"`
	Count        int     `json:"count"`
	AverageScore float64 `json:"average_score"`
	AverageAge   float64 `json:"average_age"`
}

// GroupByCategory buckets records by category, in first-seen order.
func GroupByCategory(ds Dataset) []Group {
	index := make(map[string]int)
	var groups []Group
	var scoreSums, ageSums []float64

	for _, r := range ds.Records {
		i, ok := index[r.Category]
		if !ok {
			i = len(groups)
			index[r.Category] = i
			groups = append(groups, Group{Key: r.Category})
			scoreSums = append(scoreSums, 0)
			ageSums = append(ageSums, 0)
		}
		groups[i].Count++
		scoreSums[i] += r.Score
		ageSums[i] += float64(r.Age)
	}

	for i := range groups {
		groups[i].AverageScore = scoreSums[i] / float64(groups[i].Count)
		groups[i].AverageAge = ageSums[i] / float64(groups[i].Count)
	}
	return groups
}

// SortGroups orders groups by "count_desc", "count_asc", "score_desc",
// "score_asc" or "label_asc". Anything else keeps grouping order.
func SortGroups(groups []Group, sortBy string) {
	switch sortBy {
	case "count_desc":
		sort.SliceStable(groups, func(i, j int) bool { return groups[i].Count > groups[j].Count })
	case "count_asc":
		sort.SliceStable(groups, func(i, j int) bool { return groups[i].Count < groups[j].Count })
	case "score_desc":
		sort.SliceStable(groups, func(i, j int) bool { return groups[i].AverageScore > groups[j].AverageScore })
	case "score_asc":
		sort.SliceStable(groups, func(i, j int) bool { return groups[i].AverageScore < groups[j].AverageScore })
	case "label_asc", "alpha_asc":
		sort.SliceStable(groups, func(i, j int) bool { return strings.ToLower(groups[i].Key) < strings.ToLower(groups[j].Key) })
	}
}

// SortedKeys returns the keys of a distribution in ascending order.
func SortedKeys(distribution map[string]int) []string {
	keys := make([]string, 0, len(distribution))
	for k := range distribution {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// RoundTo2 rounds to 2 decimal places.
func RoundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}
