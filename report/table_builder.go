package report

import (
	"fmt"
	"strconv"

	"github.com/spektr-org/tabular/engine"
)

// ============================================================================
// TABLE BUILDER — Produces TableData from datasets and summaries
// ============================================================================

// BuildRecordTable lists records one row each, using only the columns the
// dataset carries. limit <= 0 lists every record.
func BuildRecordTable(ds engine.Dataset, limit int) *TableData {
	cols := ds.Columns.Columns()
	if len(cols) == 0 {
		return &TableData{Title: "Records", Columns: []Column{}, Rows: [][]string{}}
	}

	columns := make([]Column, 0, len(cols))
	for _, c := range cols {
		col := Column{Key: c.String(), Label: LabelForColumn(c.String()), Type: "text", Align: "left"}
		switch {
		case c.Numeric():
			col.Type, col.Align = "number", "right"
		case c == engine.ColumnActive:
			col.Type, col.Align = "bool", "center"
		}
		columns = append(columns, col)
	}

	n := ds.Len()
	if limit > 0 && limit < n {
		n = limit
	}
	rows := make([][]string, 0, n)
	for _, r := range ds.Records[:n] {
		row := make([]string, 0, len(cols))
		for _, c := range cols {
			row = append(row, cell(r, c))
		}
		rows = append(rows, row)
	}

	label := fmt.Sprintf("Total (%d records)", ds.Len())
	if n < ds.Len() {
		label = fmt.Sprintf("Showing %d of %d records", n, ds.Len())
	}
	table := &TableData{
		Title:   "Records",
		Columns: columns,
		Rows:    rows,
		Summary: &Summary{Label: label, Values: map[string]string{}},
	}
	if scores, err := ds.Values(engine.ColumnScore); err == nil && len(scores) > 0 {
		if d, err := engine.DescribeValues(scores); err == nil {
			table.Summary.Values["score"] = fmt.Sprintf("%.2f", d.Mean)
		}
	}
	return table
}

func cell(r engine.Record, c engine.Column) string {
	switch c {
	case engine.ColumnID:
		return strconv.Itoa(r.ID)
	case engine.ColumnName:
		return r.Name
	case engine.ColumnAge:
		return strconv.Itoa(r.Age)
	case engine.ColumnScore:
		return fmt.Sprintf("%.2f", r.Score)
	case engine.ColumnCategory:
		return r.Category
	case engine.ColumnActive:
		return strconv.FormatBool(r.Active)
	}
	return ""
}

// BuildStatsTable lays out the score statistics of a summary as
// statistic/value rows.
func BuildStatsTable(summary *engine.SummaryResult) *TableData {
	if summary == nil {
		return &TableData{Title: "Score Statistics", Columns: []Column{}, Rows: [][]string{}}
	}

	s := summary.ScoreStats
	rows := [][]string{
		{"count", strconv.Itoa(s.Count)},
		{"mean", fmt.Sprintf("%.2f", s.Mean)},
		{"std", fmt.Sprintf("%.2f", s.Std)},
		{"min", fmt.Sprintf("%.2f", s.Min)},
		{"25%", fmt.Sprintf("%.2f", s.P25)},
		{"50%", fmt.Sprintf("%.2f", s.P50)},
		{"75%", fmt.Sprintf("%.2f", s.P75)},
		{"max", fmt.Sprintf("%.2f", s.Max)},
	}

	return &TableData{
		Title: "Score Statistics",
		Columns: []Column{
			{Key: "statistic", Label: "Statistic", Type: "text", Align: "left"},
			{Key: "value", Label: "Score", Type: "number", Align: "right"},
		},
		Rows: rows,
		Summary: &Summary{
			Label: fmt.Sprintf("Total (%d records)", summary.TotalRecords),
			Values: map[string]string{
				"average_age":  fmt.Sprintf("%.2f", summary.AverageAge),
				"active_users": FormatInt(summary.ActiveUsers),
			},
		},
	}
}

// BuildGroupTable lists per-category counts and averages.
func BuildGroupTable(groups []engine.Group) *TableData {
	if len(groups) == 0 {
		return &TableData{Title: "Categories", Columns: []Column{}, Rows: [][]string{}}
	}

	columns := []Column{
		{Key: "category", Label: LabelForColumn("category"), Type: "text", Align: "left"},
		{Key: "count", Label: "Count", Type: "number", Align: "center"},
		{Key: "average_score", Label: "Average Score", Type: "number", Align: "right"},
		{Key: "average_age", Label: "Average Age", Type: "number", Align: "right"},
	}

	rows := make([][]string, 0, len(groups))
	var total int
	for _, g := range groups {
		rows = append(rows, []string{
			g.Key,
			strconv.Itoa(g.Count),
			fmt.Sprintf("%.2f", g.AverageScore),
			fmt.Sprintf("%.2f", g.AverageAge),
		})
		total += g.Count
	}

	return &TableData{
		Title:   "Categories",
		Columns: columns,
		Rows:    rows,
		Summary: &Summary{
			Label:  "Total",
			Values: map[string]string{"count": FormatInt(total)},
		},
	}
}
