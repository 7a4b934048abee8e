package render

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/spektr-org/tabular/engine"
)

// CorrelationMatrix returns the Pearson correlation of every pair of columns.
// Columns must share a length of at least two. A constant column correlates
// as NaN with everything.
func CorrelationMatrix(columns []Column) (*mat.SymDense, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("%w: no columns", engine.ErrInvalidInput)
	}
	n := len(columns[0].Values)
	if n < 2 {
		return nil, fmt.Errorf("%w: correlation needs at least two rows, got %d", engine.ErrInvalidInput, n)
	}

	x := mat.NewDense(n, len(columns), nil)
	for j, c := range columns {
		if len(c.Values) != n {
			return nil, fmt.Errorf("%w: column %q has %d rows, want %d",
				engine.ErrInvalidInput, c.Name, len(c.Values), n)
		}
		x.SetCol(j, c.Values)
	}

	corr := mat.NewSymDense(len(columns), nil)
	stat.CorrelationMatrix(corr, x, nil)
	return corr, nil
}

// correlationGrid adapts a correlation matrix to plotter.GridXYZ.
// Undefined correlations draw as 0.
type correlationGrid struct {
	m *mat.SymDense
}

func (g correlationGrid) Dims() (c, r int) {
	n := g.m.SymmetricDim()
	return n, n
}

func (g correlationGrid) Z(c, r int) float64 {
	v := g.m.At(r, c)
	if math.IsNaN(v) {
		return 0
	}
	return v
}

func (g correlationGrid) X(c int) float64 { return float64(c) }
func (g correlationGrid) Y(r int) float64 { return float64(r) }

// CorrelationHeatmap draws the correlation matrix of columns as an annotated
// heatmap on a diverging blue-red scale centered at 0.
func CorrelationHeatmap(path string, columns []Column, opts ...Option) error {
	corr, err := CorrelationMatrix(columns)
	if err != nil {
		return err
	}
	cfg := applyOptions(opts, "Correlation Matrix", 8*vg.Inch, 6*vg.Inch)

	cmap := moreland.SmoothBlueRed()
	cmap.SetMin(-1)
	cmap.SetMax(1)

	grid := correlationGrid{m: corr}
	hm := plotter.NewHeatMap(grid, cmap.Palette(255))
	hm.Min, hm.Max = -1, 1

	names := make([]string, len(columns))
	var (
		points plotter.XYs
		texts  []string
	)
	for i, c := range columns {
		names[i] = c.Name
		for j := range columns {
			points = append(points, plotter.XY{X: float64(j), Y: float64(i)})
			if v := corr.At(i, j); math.IsNaN(v) {
				texts = append(texts, "n/a")
			} else {
				texts = append(texts, fmt.Sprintf("%.2f", v))
			}
		}
	}
	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: points, Labels: texts})
	if err != nil {
		return fmt.Errorf("failed to build labels: %w", err)
	}

	p := plot.New()
	p.Title.Text = cfg.Title
	p.Add(hm, labels)
	p.NominalX(names...)
	p.NominalY(names...)

	return save(p, cfg, path)
}
