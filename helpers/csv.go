package helpers

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/spektr-org/tabular/engine"
	"github.com/spektr-org/tabular/schema"
)

// ============================================================================
// CSV HELPER — Parses CSV data into an engine.Dataset
// ============================================================================
// Consumer reads the CSV from wherever it lives (file, stdin, HTTP body).
// This helper checks the headers and column types against the record schema,
// then decodes typed columns through a gota DataFrame.
// Columns the CSV lacks are simply absent from Dataset.Columns; Analyze
// rejects such a dataset, FilterByThreshold only needs its own column.
// ============================================================================

var seriesTypes = map[schema.ColumnType]series.Type{
	schema.TypeString: series.String,
	schema.TypeInt:    series.Int,
	schema.TypeFloat:  series.Float,
	schema.TypeBool:   series.Bool,
}

// ReadCSV parses CSV from r into a Dataset.
func ReadCSV(r io.Reader) (engine.Dataset, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return engine.Dataset{}, fmt.Errorf("failed to read CSV: %w", err)
	}
	return ParseCSV(data)
}

// ParseCSV parses CSV bytes into a Dataset.
func ParseCSV(data []byte) (engine.Dataset, error) {
	discovered, err := schema.DiscoverFromCSV(data)
	if err != nil {
		return engine.Dataset{}, fmt.Errorf("%w: %w", engine.ErrInvalidInput, err)
	}

	headers := make([]string, len(discovered.Columns))
	for i, c := range discovered.Columns {
		headers[i] = c.Key
	}
	present, index, err := schema.Validate(headers)
	if err != nil {
		return engine.Dataset{}, err
	}
	if discovered.Rows == 0 {
		return engine.Dataset{Columns: present, Records: []engine.Record{}}, nil
	}
	if err := schema.CheckTypes(discovered); err != nil {
		return engine.Dataset{}, err
	}

	// Force the schema's types on known columns; everything else stays string.
	want := schema.Default()
	types := make(map[string]series.Type)
	for col, i := range index {
		meta, _ := want.Column(col.String())
		types[discovered.Columns[i].Header] = seriesTypes[meta.Type]
	}

	df := dataframe.ReadCSV(bytes.NewReader(data),
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.WithTypes(types),
	)
	if df.Err != nil {
		return engine.Dataset{}, fmt.Errorf("%w: %w", engine.ErrInvalidInput, df.Err)
	}

	names := df.Names()
	records := make([]engine.Record, df.Nrow())
	for col, i := range index {
		s := df.Col(names[i])
		if err := decodeColumn(records, col, s); err != nil {
			return engine.Dataset{}, err
		}
	}

	return engine.Dataset{Columns: present, Records: records}, nil
}

func decodeColumn(records []engine.Record, col engine.Column, s series.Series) error {
	switch col {
	case engine.ColumnID, engine.ColumnAge:
		vals, err := s.Int()
		if err != nil {
			return engine.NewColumnError(col.String(), "decode", fmt.Errorf("%w: %w", engine.ErrTypeMismatch, err))
		}
		for i, v := range vals {
			if col == engine.ColumnID {
				records[i].ID = v
			} else {
				records[i].Age = v
			}
		}

	case engine.ColumnScore:
		for i, v := range s.Float() {
			if math.IsNaN(v) {
				return engine.NewColumnError(col.String(), "decode",
					fmt.Errorf("%w: row %d is not a number", engine.ErrTypeMismatch, i+1))
			}
			records[i].Score = v
		}

	case engine.ColumnActive:
		vals, err := s.Bool()
		if err != nil {
			return engine.NewColumnError(col.String(), "decode", fmt.Errorf("%w: %w", engine.ErrTypeMismatch, err))
		}
		for i, v := range vals {
			records[i].Active = v
		}

	case engine.ColumnName, engine.ColumnCategory:
		for i, v := range s.Records() {
			if col == engine.ColumnName {
				records[i].Name = v
			} else {
				records[i].Category = v
			}
		}
	}
	return nil
}

// WriteCSV writes ds as CSV with a header row, one column per present field.
// Scores keep their shortest exact decimal form.
func WriteCSV(w io.Writer, ds engine.Dataset) error {
	cols := ds.Columns.Columns()
	if len(cols) == 0 {
		return fmt.Errorf("%w: dataset has no columns", engine.ErrInvalidInput)
	}

	columns := make([]series.Series, 0, len(cols))
	for _, c := range cols {
		columns = append(columns, encodeColumn(ds.Records, c))
	}

	df := dataframe.New(columns...)
	if df.Err != nil {
		return fmt.Errorf("failed to build DataFrame: %w", df.Err)
	}
	return df.WriteCSV(w)
}

func encodeColumn(records []engine.Record, col engine.Column) series.Series {
	name := col.String()
	switch col {
	case engine.ColumnID, engine.ColumnAge:
		vals := make([]int, len(records))
		for i, r := range records {
			if col == engine.ColumnID {
				vals[i] = r.ID
			} else {
				vals[i] = r.Age
			}
		}
		return series.New(vals, series.Int, name)

	case engine.ColumnScore:
		vals := make([]string, len(records))
		for i, r := range records {
			vals[i] = strconv.FormatFloat(r.Score, 'f', -1, 64)
		}
		return series.New(vals, series.String, name)

	case engine.ColumnActive:
		vals := make([]bool, len(records))
		for i, r := range records {
			vals[i] = r.Active
		}
		return series.New(vals, series.Bool, name)
	}

	vals := make([]string, len(records))
	for i, r := range records {
		if col == engine.ColumnName {
			vals[i] = r.Name
		} else {
			vals[i] = r.Category
		}
	}
	return series.New(vals, series.String, name)
}
