package schema

import (
	"testing"

	"github.com/spektr-org/tabular/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultMatchesEngineColumns(t *testing.T) {
	cfg := Default()
	require.Len(t, cfg.Columns, len(engine.AllColumns))
	for i, c := range engine.AllColumns {
		assert.Equal(t, c.String(), cfg.Columns[i].Key)
		assert.Equal(t, c.Numeric(), cfg.Columns[i].Numeric, c.String())
		assert.True(t, cfg.Columns[i].Required)
	}
}

func TestValidate(t *testing.T) {
	present, index, err := Validate([]string{"ID", "Score", "notes"})
	require.NoError(t, err)
	assert.Equal(t, engine.NewColumnSet(engine.ColumnID, engine.ColumnScore), present)
	assert.Equal(t, 0, index[engine.ColumnID])
	assert.Equal(t, 1, index[engine.ColumnScore])
}

func TestValidateDuplicate(t *testing.T) {
	_, _, err := Validate([]string{"score", "Score"})
	assert.ErrorIs(t, err, engine.ErrInvalidInput)
}

func TestValidateNoKnownColumns(t *testing.T) {
	_, _, err := Validate([]string{"foo", "bar"})
	assert.ErrorIs(t, err, engine.ErrInvalidInput)
}

func TestCheckTypesMismatch(t *testing.T) {
	cfg, err := DiscoverFromCSV([]byte("id,score\n1,high\n2,low\n"))
	require.NoError(t, err)

	err = CheckTypes(cfg)
	require.ErrorIs(t, err, engine.ErrTypeMismatch)

	var ce *engine.ColumnError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "score", ce.Column)
}

func TestCheckTypesLenient(t *testing.T) {
	cfg, err := DiscoverFromCSV([]byte("id,name,score,active\n1,42,80,1\n2,7,90,0\n"))
	require.NoError(t, err)
	assert.NoError(t, CheckTypes(cfg))
}
