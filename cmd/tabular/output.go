package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spektr-org/tabular/engine"
	"github.com/spektr-org/tabular/generator"
	"github.com/spektr-org/tabular/helpers"
	"github.com/spektr-org/tabular/report"
)

// ============================================================================
// JSON OUTPUT
// ============================================================================

func writeJSON(w io.Writer, v any, format string) error {
	var (
		out []byte
		err error
	)
	if format == "pretty" {
		out, err = json.MarshalIndent(v, "", "  ")
	} else {
		out, err = json.Marshal(v)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

// ============================================================================
// DATASETS
// ============================================================================

func writeDataset(w io.Writer, ds engine.Dataset, format string) error {
	switch format {
	case "json", "pretty":
		return writeJSON(w, ds, format)
	case "csv":
		return helpers.WriteCSV(w, ds)
	}
	return writeTable(w, report.BuildRecordTable(ds, 20))
}

func writeSales(w io.Writer, series []generator.DailySales, format string) error {
	switch format {
	case "json", "pretty":
		return writeJSON(w, series, format)
	case "text":
		_, err := fmt.Fprintln(w, report.BuildGrowthText(salesLabels(series), salesValues(series), "USD").Reply)
		return err
	}

	cw := csv.NewWriter(w)
	cw.Write([]string{"date", "sales", "expenses", "visitors"})
	for _, d := range series {
		cw.Write([]string{
			d.Date.Format(report.DateLayout),
			report.FormatNumber(d.Sales),
			report.FormatNumber(d.Expenses),
			report.FormatNumber(d.Visitors),
		})
	}
	cw.Flush()
	return cw.Error()
}

// ============================================================================
// CSV OUTPUT — Chart/table results as Sheets-ready CSV
// ============================================================================

func writeResultCSV(w io.Writer, result *report.Result) error {
	cw := csv.NewWriter(w)
	switch {
	case result == nil:
		cw.Write([]string{"Result", "No data"})
	case result.ChartConfig != nil:
		writeChartCSV(cw, result.ChartConfig)
	case result.TableData != nil:
		writeTableCSV(cw, result.TableData)
	default:
		// Fallback: text result as single-row CSV
		cw.Write([]string{"Summary", "Value", "Unit"})
		reply := result.Reply
		if reply == "" {
			reply = "No data"
		}
		var value, unit string
		if result.Data != nil {
			value, unit = result.Data.Value, result.Data.Unit
		}
		cw.Write([]string{reply, value, unit})
	}
	cw.Flush()
	return cw.Error()
}

func writeChartCSV(cw *csv.Writer, chart *report.ChartConfig) {
	if len(chart.Series) == 0 {
		cw.Write([]string{"Result", "No data"})
		return
	}

	xLabel := chart.XAxis
	yLabel := chart.YAxis
	if xLabel == "" {
		xLabel = "Label"
	}
	if yLabel == "" {
		yLabel = "Value"
	}

	// Single series → two columns
	if len(chart.Series) == 1 {
		cw.Write([]string{xLabel, yLabel})
		for _, d := range chart.Series[0].Data {
			cw.Write([]string{d.Label, report.FormatNumber(d.Value)})
		}
		return
	}

	// Multi-series → label + one column per series
	headers := []string{xLabel}
	for _, s := range chart.Series {
		headers = append(headers, s.Name)
	}
	cw.Write(headers)

	for i, d := range chart.Series[0].Data {
		row := []string{d.Label}
		for _, s := range chart.Series {
			if i < len(s.Data) {
				row = append(row, report.FormatNumber(s.Data[i].Value))
			} else {
				row = append(row, "")
			}
		}
		cw.Write(row)
	}
}

func writeTableCSV(cw *csv.Writer, table *report.TableData) {
	if len(table.Columns) == 0 {
		cw.Write([]string{"Result", "No data"})
		return
	}
	cw.Write(table.Headers())
	for _, row := range table.Rows {
		cw.Write(row)
	}
}

func writeCharts(w io.Writer, charts []chartFile) error {
	cw := csv.NewWriter(w)
	cw.Write([]string{"chart", "path"})
	for _, c := range charts {
		cw.Write([]string{c.Chart, c.Path})
	}
	cw.Flush()
	return cw.Error()
}

// ============================================================================
// TEXT OUTPUT
// ============================================================================

func writeTable(w io.Writer, table *report.TableData) error {
	if len(table.Columns) == 0 {
		_, err := fmt.Fprintln(w, "No data.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(table.Headers(), "\t"))
	for _, row := range table.Rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if table.Summary != nil {
		fmt.Fprintln(w, table.Summary.Label)
	}
	return nil
}
