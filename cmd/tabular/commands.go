package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/spektr-org/tabular/engine"
	"github.com/spektr-org/tabular/generator"
	"github.com/spektr-org/tabular/helpers"
	"github.com/spektr-org/tabular/render"
	"github.com/spektr-org/tabular/report"
	"github.com/spektr-org/tabular/schema"
)

// ============================================================================
// GENERATE
// ============================================================================

func (a *app) generateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a seeded sample dataset or sales series",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			seed := generator.WithSeed(a.v.GetUint64("seed"))
			format := a.v.GetString("format")

			if a.v.GetBool("sales") {
				series, err := generator.SalesSeries(a.v.GetInt("days"), seed)
				if err != nil {
					return err
				}
				return a.output(cmd, func(w io.Writer) error {
					return writeSales(w, series, format)
				})
			}

			ds, err := generator.GenerateSample(a.v.GetInt("rows"), seed)
			if err != nil {
				return err
			}
			a.log.InfoContext(cmd.Context(), "sample generated", "records", ds.Len(), "seed", a.v.GetUint64("seed"))
			return a.output(cmd, func(w io.Writer) error {
				return writeDataset(w, ds, format)
			})
		},
	}
	cmd.Flags().Int("rows", 100, "Number of records")
	cmd.Flags().Uint64("seed", generator.DefaultSeed, "Random seed")
	cmd.Flags().Bool("sales", false, "Generate a daily sales series instead of user records")
	cmd.Flags().Int("days", 30, "Days in the sales series")
	return cmd
}

// ============================================================================
// ANALYZE
// ============================================================================

func (a *app) analyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Print descriptive statistics of a dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := a.load(cmd, a.v.GetString("file"))
			if err != nil {
				return err
			}

			var opts []engine.AnalyzeOption
			if vocab := a.v.GetStringSlice("categories"); len(vocab) > 0 {
				opts = append(opts, engine.WithCategoryVocabulary(vocab...))
			}
			summary, err := engine.Analyze(ds, opts...)
			a.log.LogAnalyze(cmd.Context(), ds.Len(), err)
			if err != nil {
				return err
			}

			view := a.v.GetString("view")
			format := a.v.GetString("format")
			return a.output(cmd, func(w io.Writer) error {
				switch format {
				case "json", "pretty":
					return writeJSON(w, summary, format)
				case "text":
					fmt.Fprintln(w, report.BuildText(summary).Reply)
					return nil
				}
				result, err := analyzeView(ds, summary, view)
				if err != nil {
					return err
				}
				return writeResultCSV(w, result)
			})
		},
	}
	cmd.Flags().String("file", "", "Dataset file: .csv or .json, - for CSV on stdin (required)")
	cmd.Flags().String("view", "stats", "CSV view: stats, categories, scores, groups")
	cmd.Flags().StringSlice("categories", nil, "Category vocabulary; unobserved categories report 0")
	return cmd
}

func analyzeView(ds engine.Dataset, summary *engine.SummaryResult, view string) (*report.Result, error) {
	switch view {
	case "", "stats":
		return report.TableResult(report.BuildStatsTable(summary)), nil
	case "categories":
		return report.ChartResult(report.BuildCategoryChart(summary)), nil
	case "scores":
		return report.ChartResult(report.BuildScoreChart(ds, "label_asc")), nil
	case "groups":
		groups := engine.GroupByCategory(ds)
		engine.SortGroups(groups, "count_desc")
		return report.TableResult(report.BuildGroupTable(groups)), nil
	}
	return nil, fmt.Errorf("unknown view %q (want stats, categories, scores or groups)", view)
}

// ============================================================================
// FILTER
// ============================================================================

func (a *app) filterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Keep the records whose column passes a threshold",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmp, err := engine.ParseComparator(a.v.GetString("comparator"))
			if err != nil {
				return err
			}
			ds, err := a.load(cmd, a.v.GetString("file"))
			if err != nil {
				return err
			}

			column := a.v.GetString("column")
			threshold := a.v.GetFloat64("threshold")
			out, err := engine.FilterByThreshold(ds, column, threshold, engine.WithComparator(cmp))
			a.log.LogFilter(cmd.Context(), column, threshold, ds.Len(), out.Len(), err)
			if err != nil {
				return err
			}

			format := a.v.GetString("format")
			limit := a.v.GetInt("limit")
			return a.output(cmd, func(w io.Writer) error {
				if format != "text" {
					return writeDataset(w, out, format)
				}
				fmt.Fprintln(w, report.BuildFilterText(out.Len(), ds.Len(), column, cmp, threshold).Reply)
				if out.Len() == 0 {
					return nil
				}
				fmt.Fprintln(w)
				return writeTable(w, report.BuildRecordTable(out, limit))
			})
		},
	}
	cmd.Flags().String("file", "", "Dataset file: .csv or .json, - for CSV on stdin (required)")
	cmd.Flags().String("column", engine.ColumnScore.String(), "Numeric column: id, age, score")
	cmd.Flags().Float64("threshold", engine.DefaultHighPerformerThreshold, "Threshold value")
	cmd.Flags().String("comparator", engine.GreaterOrEqual.String(), "Comparator: >=, >, <=, <, ==")
	cmd.Flags().Int("limit", 20, "Rows shown in text output (0 = all)")
	return cmd
}

// ============================================================================
// PLOT
// ============================================================================

type chartFile struct {
	Chart string `json:"chart"`
	Path  string `json:"path"`
}

func (a *app) plotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plot",
		Short: "Render sales and dataset charts to image files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			seed := generator.WithSeed(a.v.GetUint64("seed"))

			var (
				ds  engine.Dataset
				err error
			)
			if path := a.v.GetString("file"); path != "" {
				ds, err = a.load(cmd, path)
			} else {
				ds, err = generator.GenerateSample(a.v.GetInt("rows"), seed)
			}
			if err != nil {
				return err
			}
			series, err := generator.SalesSeries(a.v.GetInt("days"), seed)
			if err != nil {
				return err
			}

			summary, err := engine.Analyze(ds)
			a.log.LogAnalyze(ctx, ds.Len(), err)
			if err != nil {
				return err
			}

			dir := a.v.GetString("out-dir")
			ext := "." + strings.TrimPrefix(a.v.GetString("image"), ".")
			charts := []struct {
				name string
				draw func(path string) error
			}{
				{"time_series", func(p string) error { return render.TimeSeries(p, series) }},
				{"distribution", func(p string) error { return render.Distribution(p, series) }},
				{"correlation", func(p string) error { return render.CorrelationHeatmap(p, render.SalesColumns(series)) }},
				{"scores", func(p string) error { return render.ScoreDistribution(p, ds) }},
				{"categories", func(p string) error { return render.CategoryBar(p, summary) }},
			}

			written := make([]chartFile, 0, len(charts))
			for _, c := range charts {
				path := filepath.Join(dir, c.name+ext)
				err := c.draw(path)
				a.log.LogRender(ctx, c.name, path, err)
				if err != nil {
					return err
				}
				written = append(written, chartFile{Chart: c.name, Path: path})
			}

			labels, values := salesLabels(series), salesValues(series)
			growth := report.BuildGrowthText(labels, values, "USD")
			trend := report.BuildSeriesChart("Daily Sales", "Date", "Sales", labels, values)
			format := a.v.GetString("format")
			return a.output(cmd, func(w io.Writer) error {
				switch format {
				case "json", "pretty":
					return writeJSON(w, struct {
						Charts []chartFile          `json:"charts"`
						Growth *report.TextData    `json:"growth"`
						Sales  *report.ChartConfig `json:"sales,omitempty"`
					}{written, growth, trend}, format)
				case "csv":
					return writeCharts(w, written)
				}
				for _, c := range written {
					fmt.Fprintf(w, "%s: %s\n", c.Chart, c.Path)
				}
				fmt.Fprintln(w, growth.Reply)
				return nil
			})
		},
	}
	cmd.Flags().String("file", "", "Dataset file; a sample is generated when empty")
	cmd.Flags().Int("rows", 100, "Sample size when no file is given")
	cmd.Flags().Uint64("seed", generator.DefaultSeed, "Random seed")
	cmd.Flags().Int("days", 30, "Days in the sales series")
	cmd.Flags().String("out-dir", "plots", "Directory for chart images")
	cmd.Flags().String("image", "png", "Image format: png, svg, pdf")
	return cmd
}

func salesLabels(series []generator.DailySales) []string {
	out := make([]string, len(series))
	for i, d := range series {
		out[i] = d.Date.Format(report.DateLayout)
	}
	return out
}

func salesValues(series []generator.DailySales) []float64 {
	out := make([]float64, len(series))
	for i, d := range series {
		out[i] = d.Sales
	}
	return out
}

// ============================================================================
// DISCOVER
// ============================================================================

func (a *app) discoverCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "discover",
		Short: "Print the inferred column types of a CSV file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.v.GetString("file")
			data, err := readInput(cmd, path)
			if err != nil {
				return err
			}
			cfg, err := schema.DiscoverFromCSV(data, schema.DiscoverOptions{
				SampleSize: a.v.GetInt("sample"),
				Name:       filepath.Base(path),
			})
			if err != nil {
				return err
			}
			a.log.InfoContext(cmd.Context(), "schema discovered", "path", path, "columns", len(cfg.Columns), "rows", cfg.Rows)

			format := a.v.GetString("format")
			return a.output(cmd, func(w io.Writer) error {
				switch format {
				case "json", "pretty":
					return writeJSON(w, cfg, format)
				case "csv":
					return writeResultCSV(w, report.TableResult(schemaTable(cfg)))
				}
				return writeTable(w, schemaTable(cfg))
			})
		},
	}
	cmd.Flags().String("file", "", "CSV file, - for stdin (required)")
	cmd.Flags().Int("sample", 1000, "Rows to inspect (0 = all)")
	return cmd
}

func schemaTable(cfg *schema.Config) *report.TableData {
	known := schema.Default()
	t := &report.TableData{
		Title: cfg.Name,
		Columns: []report.Column{
			{Key: "key", Label: "Key", Type: "text", Align: "left"},
			{Key: "type", Label: "Type", Type: "text", Align: "left"},
			{Key: "nulls", Label: "Nulls", Type: "number", Align: "right"},
			{Key: "cardinality", Label: "Cardinality", Type: "text", Align: "left"},
			{Key: "expected", Label: "Expected", Type: "text", Align: "left"},
		},
	}
	for _, c := range cfg.Columns {
		expected := "-"
		if meta, ok := known.Column(c.Key); ok {
			expected = string(meta.Type)
		}
		t.Rows = append(t.Rows, []string{
			c.Key, string(c.Type), fmt.Sprint(c.NullCount), c.CardinalityHint, expected,
		})
	}
	return t
}

// ============================================================================
// INPUT
// ============================================================================

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	switch path {
	case "":
		return nil, fmt.Errorf("--file is required")
	case "-":
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(path)
}

// load reads a dataset as JSON when path ends in .json, CSV otherwise.
func (a *app) load(cmd *cobra.Command, path string) (engine.Dataset, error) {
	ds, err := loadDataset(cmd, path)
	a.log.LogLoad(cmd.Context(), path, ds.Len(), err)
	return ds, err
}

func loadDataset(cmd *cobra.Command, path string) (engine.Dataset, error) {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return helpers.LoadDataset(path)
	}
	data, err := readInput(cmd, path)
	if err != nil {
		return engine.Dataset{}, err
	}
	return helpers.ParseCSV(data)
}
