package helpers

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spektr-org/tabular/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var usersCSV = `id,name,age,score,category,active
1,User_1,56,82.45,A,true
2,User_2,69,72.93,C,false
3,User_3,46,90,B,true
`

func TestParseCSV(t *testing.T) {
	ds, err := ParseCSV([]byte(usersCSV))
	require.NoError(t, err)

	assert.Equal(t, engine.FullColumnSet, ds.Columns)
	require.Equal(t, 3, ds.Len())
	assert.Equal(t, engine.Record{ID: 1, Name: "User_1", Age: 56, Score: 82.45, Category: "A", Active: true}, ds.Records[0])
	assert.Equal(t, engine.Record{ID: 3, Name: "User_3", Age: 46, Score: 90, Category: "B", Active: true}, ds.Records[2])

	res, err := engine.Analyze(ds)
	require.NoError(t, err)
	assert.Equal(t, 3, res.TotalRecords)
	assert.Equal(t, 2, res.ActiveUsers)
}

func TestParseCSVPartialColumns(t *testing.T) {
	ds, err := ReadCSV(strings.NewReader("Name,Score,Notes\nann,71.5,x\nbob,88,y\n"))
	require.NoError(t, err)
	assert.Equal(t, engine.NewColumnSet(engine.ColumnName, engine.ColumnScore), ds.Columns)

	out, err := engine.FilterByThreshold(ds, "score", 80)
	require.NoError(t, err)
	require.Equal(t, 1, out.Len())
	assert.Equal(t, "bob", out.Records[0].Name)

	_, err = engine.Analyze(ds)
	assert.ErrorIs(t, err, engine.ErrInvalidInput)

	_, err = engine.FilterByThreshold(ds, "age", 10)
	assert.ErrorIs(t, err, engine.ErrUnknownColumn)
}

func TestParseCSVHeaderOnly(t *testing.T) {
	ds, err := ParseCSV([]byte("id,name,age,score,category,active\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, ds.Len())

	_, err = engine.Analyze(ds)
	assert.ErrorIs(t, err, engine.ErrEmptyDataset)
}

func TestParseCSVErrors(t *testing.T) {
	tests := []struct {
		name string
		csv  string
		want error
	}{
		{"Empty", "", engine.ErrInvalidInput},
		{"NoKnownColumns", "foo,bar\n1,2\n", engine.ErrInvalidInput},
		{"DuplicateColumn", "score,Score\n1,2\n", engine.ErrInvalidInput},
		{"TextScore", "id,score\n1,high\n2,low\n", engine.ErrTypeMismatch},
		{"MissingScore", "id,score\n1,80\n2,\n3,70\n4,60\n5,50\n", engine.ErrTypeMismatch},
		{"FractionalAge", "id,age\n1,30.5\n2,40.5\n", engine.ErrTypeMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCSV([]byte(tt.csv))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestWriteCSVRoundTrip(t *testing.T) {
	ds, err := ParseCSV([]byte(usersCSV))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, ds))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "id,name,age,score,category,active", lines[0])
	assert.Equal(t, "1,User_1,56,82.45,A,true", lines[1])

	back, err := ReadCSV(&buf)
	require.NoError(t, err)
	assert.Equal(t, ds, back)
}

func TestWriteCSVSubsetColumns(t *testing.T) {
	ds := engine.Dataset{
		Columns: engine.NewColumnSet(engine.ColumnID, engine.ColumnScore),
		Records: []engine.Record{{ID: 7, Score: 66.6, Name: "hidden"}},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, ds))
	assert.Equal(t, "id,score\n7,66.6\n", buf.String())
}

func TestWriteCSVNoColumns(t *testing.T) {
	err := WriteCSV(&bytes.Buffer{}, engine.Dataset{})
	assert.ErrorIs(t, err, engine.ErrInvalidInput)
}
