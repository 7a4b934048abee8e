package engine

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// randomDataset mirrors the sample generator without importing it.
func randomDataset(n int, seed uint64) Dataset {
	rng := rand.New(rand.NewPCG(seed, seed))
	records := make([]Record, n)
	for i := range records {
		records[i] = Record{
			ID:       i + 1,
			Age:      18 + rng.IntN(52),
			Score:    RoundTo2(75 + 15*rng.NormFloat64()),
			Category: DefaultCategories[rng.IntN(len(DefaultCategories))],
			Active:   rng.IntN(2) == 1,
		}
	}
	return NewDataset(records)
}

func TestFilterByThreshold(t *testing.T) {
	out, err := FilterByThreshold(fixture(), "score", 75)
	require.NoError(t, err)
	require.Equal(t, 2, out.Len())
	assert.Equal(t, 3, out.Records[0].ID)
	assert.Equal(t, 4, out.Records[1].ID)
	assert.Equal(t, FullColumnSet, out.Columns)
}

func TestFilterInclusiveBoundary(t *testing.T) {
	out, err := FilterByThreshold(fixture(), "score", 80)
	require.NoError(t, err)
	require.Equal(t, 2, out.Len())
	assert.Equal(t, 80.0, out.Records[0].Score)
}

func TestFilterNoMatchIsEmpty(t *testing.T) {
	out, err := FilterByThreshold(fixture(), "score", 1000)
	require.NoError(t, err)
	assert.Equal(t, 0, out.Len())
	assert.NotNil(t, out.Records)
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	ds := fixture()
	before := append([]Record(nil), ds.Records...)

	out, err := FilterByThreshold(ds, "age", 0)
	require.NoError(t, err)
	out.Records[0].Score = -1

	assert.Equal(t, before, ds.Records)
}

func TestFilterComparators(t *testing.T) {
	tests := []struct {
		name string
		cmp  Comparator
		want []int
	}{
		{"gte", GreaterOrEqual, []int{2, 3, 4}},
		{"gt", Greater, []int{3, 4}},
		{"lte", LessOrEqual, []int{1, 2}},
		{"lt", Less, []int{1}},
		{"eq", Equal, []int{2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := FilterByThreshold(fixture(), "age", 30, WithComparator(tt.cmp))
			require.NoError(t, err)
			ids := make([]int, 0, out.Len())
			for _, r := range out.Records {
				ids = append(ids, r.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestFilterErrors(t *testing.T) {
	t.Run("UnknownName", func(t *testing.T) {
		_, err := FilterByThreshold(fixture(), "salary", 1)
		assert.ErrorIs(t, err, ErrUnknownColumn)
	})

	t.Run("NonNumeric", func(t *testing.T) {
		for _, col := range []string{"name", "category", "active"} {
			_, err := FilterByThreshold(fixture(), col, 1)
			assert.ErrorIs(t, err, ErrUnknownColumn, col)
		}
	})

	t.Run("AbsentColumn", func(t *testing.T) {
		ds := fixture()
		ds.Columns = NewColumnSet(ColumnID, ColumnAge)
		_, err := FilterByThreshold(ds, "score", 1)
		assert.ErrorIs(t, err, ErrUnknownColumn)

		var ce *ColumnError
		require.ErrorAs(t, err, &ce)
		assert.Equal(t, "score", ce.Column)
	})

	t.Run("NaNThreshold", func(t *testing.T) {
		_, err := FilterByThreshold(fixture(), "score", math.NaN())
		assert.ErrorIs(t, err, ErrTypeMismatch)
	})

	t.Run("BadComparator", func(t *testing.T) {
		_, err := FilterByThreshold(fixture(), "score", 1, WithComparator(Comparator(42)))
		assert.ErrorIs(t, err, ErrTypeMismatch)
	})
}

func TestFilterProperties(t *testing.T) {
	for _, seed := range []uint64{1, 7, 42, 1234} {
		ds := randomDataset(200, seed)

		for _, th := range []float64{40, 60, 75, 90, 110} {
			out, err := FilterByThreshold(ds, "score", th)
			require.NoError(t, err)

			for _, r := range out.Records {
				assert.GreaterOrEqual(t, r.Score, th)
			}
			assert.LessOrEqual(t, out.Len(), ds.Len())

			again, err := FilterByThreshold(out, "score", th)
			require.NoError(t, err)
			assert.Equal(t, out, again, "idempotent at %v", th)

			higher, err := FilterByThreshold(ds, "score", th+5)
			require.NoError(t, err)
			assert.LessOrEqual(t, higher.Len(), out.Len(), "monotone at %v", th)
		}
	}
}

func TestFilterPreservesOrder(t *testing.T) {
	ds := randomDataset(100, 3)
	out, err := FilterByThreshold(ds, "score", 70)
	require.NoError(t, err)
	for i := 1; i < out.Len(); i++ {
		assert.Less(t, out.Records[i-1].ID, out.Records[i].ID)
	}
}

func TestAnalyzeProperties(t *testing.T) {
	for _, seed := range []uint64{5, 11, 99} {
		ds := randomDataset(100, seed)
		res, err := Analyze(ds)
		require.NoError(t, err)
		assert.Equal(t, 100, res.TotalRecords)

		var sum float64
		for _, r := range ds.Records {
			sum += float64(r.Age)
		}
		assert.InDelta(t, sum/100, res.AverageAge, 1e-9)

		high, err := FilterByThreshold(ds, "score", 90)
		require.NoError(t, err)
		mid, err := FilterByThreshold(ds, "score", 70)
		require.NoError(t, err)
		assert.LessOrEqual(t, high.Len(), mid.Len())
	}
}

func TestFilterHighPerformers(t *testing.T) {
	out, err := FilterHighPerformers(fixture(), DefaultHighPerformerThreshold)
	require.NoError(t, err)
	assert.Equal(t, 2, out.Len())
}

func TestParseComparator(t *testing.T) {
	for in, want := range map[string]Comparator{">=": GreaterOrEqual, "gt": Greater, " <= ": LessOrEqual, "lt": Less, "==": Equal} {
		got, err := ParseComparator(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseComparator("~")
	assert.ErrorIs(t, err, ErrTypeMismatch)
	assert.Equal(t, ">=", GreaterOrEqual.String())
}

func TestParseColumn(t *testing.T) {
	c, err := ParseColumn(" Score ")
	require.NoError(t, err)
	assert.Equal(t, ColumnScore, c)
	assert.True(t, c.Numeric())
	assert.False(t, ColumnCategory.Numeric())

	_, err = ParseColumn("nope")
	assert.ErrorIs(t, err, ErrUnknownColumn)
}

func TestColumnSet(t *testing.T) {
	s := NewColumnSet(ColumnID, ColumnScore)
	assert.True(t, s.Has(ColumnScore))
	assert.False(t, s.Has(ColumnAge))
	assert.Equal(t, []Column{ColumnID, ColumnScore}, s.Columns())
	assert.Equal(t, []Column{ColumnName, ColumnAge, ColumnCategory, ColumnActive}, s.Missing(FullColumnSet))
	assert.Empty(t, FullColumnSet.Missing(FullColumnSet))
}
