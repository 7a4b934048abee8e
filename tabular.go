// Package tabular describes and filters fixed-schema user datasets.
//
// Usage:
//
//	import "github.com/spektr-org/tabular/engine"
//
//	summary, err := engine.Analyze(ds)
//	high, err := engine.FilterByThreshold(ds, "score", 80,
//	    engine.WithComparator(engine.GreaterOrEqual),
//	)
//
// The engine is pure and in-memory: it never logs and never touches the
// filesystem. Loading and saving live in helpers, render-ready outputs in
// report, PNG charts in render, and sample data in generator.
package tabular
