package generator

import (
	"math"
	"strconv"
	"testing"
	"time"

	"github.com/spektr-org/tabular/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSample(t *testing.T) {
	ds, err := GenerateSample(50)
	require.NoError(t, err)
	require.Equal(t, 50, ds.Len())
	assert.Equal(t, engine.FullColumnSet, ds.Columns)

	vocab := map[string]bool{"A": true, "B": true, "C": true, "D": true}
	for i, r := range ds.Records {
		assert.Equal(t, i+1, r.ID)
		assert.Equal(t, "User_"+strconv.Itoa(i+1), r.Name)
		assert.GreaterOrEqual(t, r.Age, 18)
		assert.Less(t, r.Age, 70)
		assert.True(t, vocab[r.Category], r.Category)
		assert.InDelta(t, math.Round(r.Score*100)/100, r.Score, 1e-9)
	}
}

func TestGenerateSampleDeterministic(t *testing.T) {
	a, err := GenerateSample(20, WithSeed(7))
	require.NoError(t, err)
	b, err := GenerateSample(20, WithSeed(7))
	require.NoError(t, err)
	c, err := GenerateSample(20, WithSeed(8))
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestGenerateSampleScenario(t *testing.T) {
	ds, err := GenerateSample(100)
	require.NoError(t, err)

	res, err := engine.Analyze(ds)
	require.NoError(t, err)
	assert.Equal(t, 100, res.TotalRecords)
	assert.InDelta(t, 75, res.AverageScore, 6)

	high, err := engine.FilterByThreshold(ds, "score", 90)
	require.NoError(t, err)
	mid, err := engine.FilterByThreshold(ds, "score", 70)
	require.NoError(t, err)
	assert.LessOrEqual(t, high.Len(), mid.Len())
}

func TestGenerateSampleOptions(t *testing.T) {
	ds, err := GenerateSample(30, WithCategories("X"), WithAgeRange(40, 41), WithScoreDistribution(10, 0))
	require.NoError(t, err)
	for _, r := range ds.Records {
		assert.Equal(t, "X", r.Category)
		assert.Equal(t, 40, r.Age)
		assert.Equal(t, 10.0, r.Score)
	}
}

func TestGenerateSampleInvalid(t *testing.T) {
	_, err := GenerateSample(-1)
	assert.ErrorIs(t, err, engine.ErrInvalidInput)

	_, err = GenerateSample(5, WithAgeRange(30, 30))
	assert.ErrorIs(t, err, engine.ErrInvalidInput)

	_, err = GenerateSample(5, WithCategories())
	assert.ErrorIs(t, err, engine.ErrInvalidInput)

	ds, err := GenerateSample(0)
	require.NoError(t, err)
	assert.Equal(t, 0, ds.Len())
}

func TestSalesSeries(t *testing.T) {
	start := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	series, err := SalesSeries(30, WithStart(start))
	require.NoError(t, err)
	require.Len(t, series, 30)

	for i, d := range series {
		assert.Equal(t, start.AddDate(0, 0, i), d.Date)
		assert.GreaterOrEqual(t, d.Sales, 100+float64(i)*5)
		assert.Less(t, d.Sales, 500+float64(i)*5)
		assert.GreaterOrEqual(t, d.Expenses, 50.0)
		assert.Less(t, d.Expenses, 300.0)
		assert.GreaterOrEqual(t, d.Visitors, 200.0)
		assert.Less(t, d.Visitors, 1000.0)
	}

	_, err = SalesSeries(-3)
	assert.ErrorIs(t, err, engine.ErrInvalidInput)
}
