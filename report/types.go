package report

// ============================================================================
// REPORT TYPES — Render-ready outputs
// ============================================================================
// Builders turn a SummaryResult or Dataset into one of three shapes a
// frontend or the CLI can render without knowing the record schema:
// chart configs, tables, or a short text answer.
//
// Dependency: report imports engine and shopspring/decimal. No I/O.
// ============================================================================

// Result wraps exactly one render-ready output.
type Result struct {
	Type  string `json:"type"` // "chart", "table", "text"
	Title string `json:"title"`
	Reply string `json:"reply"`

	ChartConfig *ChartConfig `json:"chartConfig,omitempty"`
	TableData   *TableData   `json:"tableData,omitempty"`
	Data        *TextData    `json:"data,omitempty"`
}

// ChartResult wraps a chart config. A nil config yields a nil Result.
func ChartResult(c *ChartConfig) *Result {
	if c == nil {
		return nil
	}
	return &Result{Type: "chart", Title: c.Title, ChartConfig: c}
}

// TableResult wraps a table.
func TableResult(t *TableData) *Result {
	return &Result{Type: "table", Title: t.Title, TableData: t}
}

// TextResult wraps a text answer.
func TextResult(t *TextData) *Result {
	return &Result{Type: "text", Title: t.Label, Reply: t.Reply, Data: t}
}

// ============================================================================
// CHART TYPES
// ============================================================================

// ChartConfig defines how to render a chart.
type ChartConfig struct {
	ChartType  string        `json:"chartType"`
	Title      string        `json:"title"`
	XAxis      string        `json:"xAxis,omitempty"`
	YAxis      string        `json:"yAxis,omitempty"`
	Series     []ChartSeries `json:"series"`
	Colors     []string      `json:"colors,omitempty"`
	ShowLegend bool          `json:"showLegend"`
	ShowGrid   bool          `json:"showGrid"`
}

// ChartSeries represents a data series in a chart.
type ChartSeries struct {
	Name  string       `json:"name"`
	Data  []ChartPoint `json:"data"`
	Color string       `json:"color,omitempty"`
}

// ChartPoint represents a single data point.
type ChartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// ============================================================================
// TABLE TYPES
// ============================================================================

// TableData defines how to render a table.
type TableData struct {
	Title   string     `json:"title"`
	Columns []Column   `json:"columns"`
	Rows    [][]string `json:"rows"`
	Summary *Summary   `json:"summary,omitempty"`
}

// Headers returns the column labels in order.
func (t *TableData) Headers() []string {
	out := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		out[i] = c.Label
	}
	return out
}

// Column defines a table column.
type Column struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Type  string `json:"type"`  // "text", "number", "bool"
	Align string `json:"align"` // "left", "center", "right"
}

// Summary provides totals for a table.
type Summary struct {
	Label  string            `json:"label"`
	Values map[string]string `json:"values"`
}

// ============================================================================
// TEXT TYPES
// ============================================================================

// TextData is a one-number answer plus the sentence that explains it.
type TextData struct {
	Label    string      `json:"label"`
	Value    string      `json:"value"`
	RawValue float64     `json:"rawValue"`
	Unit     string      `json:"unit"`
	Count    int         `json:"count"`
	Reply    string      `json:"reply"`
	Growth   *GrowthData `json:"growth,omitempty"`
}

// GrowthData contains change-over-time metrics.
type GrowthData struct {
	EarliestValue  float64 `json:"earliestValue"`
	LatestValue    float64 `json:"latestValue"`
	EarliestPeriod string  `json:"earliestPeriod"`
	LatestPeriod   string  `json:"latestPeriod"`
	ChangeAmount   float64 `json:"changeAmount"`
	ChangePercent  float64 `json:"changePercent"`
	Direction      string  `json:"direction"` // "increased", "decreased", "unchanged", "insufficient data"
}
