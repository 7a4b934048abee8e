// Package render draws datasets and sales series to image files with gonum
// plot. The output format follows the file extension (png, svg, pdf, ...).
package render

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/spektr-org/tabular/engine"
	"github.com/spektr-org/tabular/generator"
)

var (
	skyBlue   = color.RGBA{R: 135, G: 206, B: 235, A: 255}
	barIndigo = color.RGBA{R: 79, G: 70, B: 229, A: 255}
)

// Column is a named numeric series, one value per observation.
type Column struct {
	Name   string
	Values []float64
}

// SalesColumns splits a sales series into its numeric columns.
func SalesColumns(series []generator.DailySales) []Column {
	sales := make([]float64, len(series))
	expenses := make([]float64, len(series))
	visitors := make([]float64, len(series))
	for i, d := range series {
		sales[i] = d.Sales
		expenses[i] = d.Expenses
		visitors[i] = d.Visitors
	}
	return []Column{
		{Name: "Sales", Values: sales},
		{Name: "Expenses", Values: expenses},
		{Name: "Visitors", Values: visitors},
	}
}

// DatasetColumns returns the numeric columns ds carries.
func DatasetColumns(ds engine.Dataset) []Column {
	var out []Column
	for _, c := range ds.Columns.Columns() {
		if !c.Numeric() {
			continue
		}
		vals, err := ds.Values(c)
		if err != nil {
			continue
		}
		out = append(out, Column{Name: c.String(), Values: vals})
	}
	return out
}

// ============================================================================
// TIME SERIES
// ============================================================================

// TimeSeries plots daily sales and expenses against date.
func TimeSeries(path string, series []generator.DailySales, opts ...Option) error {
	if len(series) == 0 {
		return fmt.Errorf("%w: empty sales series", engine.ErrInvalidInput)
	}
	cfg := applyOptions(opts, "Sales and Expenses Over Time", 12*vg.Inch, 6*vg.Inch)

	sales := make(plotter.XYs, len(series))
	expenses := make(plotter.XYs, len(series))
	for i, d := range series {
		x := float64(d.Date.Unix())
		sales[i] = plotter.XY{X: x, Y: d.Sales}
		expenses[i] = plotter.XY{X: x, Y: d.Expenses}
	}

	p := plot.New()
	p.Title.Text = cfg.Title
	p.X.Label.Text = "Date"
	p.Y.Label.Text = "Amount ($)"
	p.X.Tick.Marker = plot.TimeTicks{Format: "2006-01-02"}
	p.Legend.Top = true
	p.Legend.Left = true
	p.Add(plotter.NewGrid())

	if err := plotutil.AddLinePoints(p, "Sales", sales, "Expenses", expenses); err != nil {
		return fmt.Errorf("failed to add lines: %w", err)
	}
	return save(p, cfg, path)
}

// ============================================================================
// DISTRIBUTION
// ============================================================================

// Distribution draws a histogram of sales next to box plots of every sales
// column.
func Distribution(path string, series []generator.DailySales, opts ...Option) error {
	if len(series) == 0 {
		return fmt.Errorf("%w: empty sales series", engine.ErrInvalidInput)
	}
	cols := SalesColumns(series)
	return distribution(path, cols[0], "Sales ($)", cols, opts)
}

// ScoreDistribution draws a histogram of scores next to box plots of the
// dataset's numeric columns other than id.
func ScoreDistribution(path string, ds engine.Dataset, opts ...Option) error {
	scores, err := ds.Values(engine.ColumnScore)
	if err != nil {
		return err
	}
	if len(scores) == 0 {
		return engine.ErrEmptyDataset
	}

	var cols []Column
	for _, c := range DatasetColumns(ds) {
		if c.Name != engine.ColumnID.String() {
			cols = append(cols, c)
		}
	}
	return distribution(path, Column{Name: "Score", Values: scores}, "Score", cols, opts)
}

func distribution(path string, hist Column, xLabel string, boxes []Column, opts []Option) error {
	cfg := applyOptions(opts, hist.Name+" Distribution", 14*vg.Inch, 5*vg.Inch)

	left := plot.New()
	left.Title.Text = cfg.Title
	left.X.Label.Text = xLabel
	left.Y.Label.Text = "Frequency"
	left.Add(plotter.NewGrid())

	h, err := plotter.NewHist(plotter.Values(hist.Values), cfg.Bins)
	if err != nil {
		return fmt.Errorf("failed to build histogram: %w", err)
	}
	h.FillColor = skyBlue
	left.Add(h)

	right := plot.New()
	right.Title.Text = "Data Comparison"
	right.Y.Label.Text = "Values"
	right.Add(plotter.NewGrid())

	names := make([]string, len(boxes))
	for i, c := range boxes {
		b, err := plotter.NewBoxPlot(vg.Points(30), float64(i), plotter.Values(c.Values))
		if err != nil {
			return fmt.Errorf("failed to build box plot for %s: %w", c.Name, err)
		}
		right.Add(b)
		names[i] = c.Name
	}
	right.NominalX(names...)

	return saveTiles([][]*plot.Plot{{left, right}}, cfg, path)
}

// ============================================================================
// CATEGORY BAR
// ============================================================================

// CategoryBar draws one bar per category of a summary's distribution.
func CategoryBar(path string, summary *engine.SummaryResult, opts ...Option) error {
	if summary == nil || len(summary.CategoryDistribution) == 0 {
		return fmt.Errorf("%w: empty category distribution", engine.ErrInvalidInput)
	}
	cfg := applyOptions(opts, "Category Distribution", 8*vg.Inch, 5*vg.Inch)

	keys := engine.SortedKeys(summary.CategoryDistribution)
	values := make(plotter.Values, len(keys))
	for i, k := range keys {
		values[i] = float64(summary.CategoryDistribution[k])
	}

	p := plot.New()
	p.Title.Text = cfg.Title
	p.X.Label.Text = "Category"
	p.Y.Label.Text = "Count"
	p.Add(plotter.NewGrid())

	bars, err := plotter.NewBarChart(values, vg.Points(40))
	if err != nil {
		return fmt.Errorf("failed to build bar chart: %w", err)
	}
	bars.Color = barIndigo
	bars.LineStyle.Width = 0
	p.Add(bars)
	p.NominalX(keys...)

	return save(p, cfg, path)
}

// ============================================================================
// OUTPUT
// ============================================================================

func save(p *plot.Plot, cfg *config, path string) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	if err := p.Save(cfg.Width, cfg.Height, path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

func saveTiles(plots [][]*plot.Plot, cfg *config, path string) error {
	format := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	c, err := draw.NewFormattedCanvas(cfg.Width, cfg.Height, format)
	if err != nil {
		return fmt.Errorf("failed to create %s canvas: %w", format, err)
	}

	tiles := draw.Tiles{
		Rows: len(plots),
		Cols: len(plots[0]),
		PadX: vg.Millimeter * 4,
		PadY: vg.Millimeter * 4,
	}
	canvases := plot.Align(plots, tiles, draw.New(c))
	for i := range plots {
		for j := range plots[i] {
			plots[i][j].Draw(canvases[i][j])
		}
	}

	if err := ensureDir(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if _, err := c.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}
	return nil
}
