package gridfmt_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/bjaus/gridfmt"
)

func TestColType(t *testing.T) {
	t.Parallel()
	dynamic := func(r gridfmt.Row) gridfmt.ColumnType {
		if v, _ := r["amount"].(int); v < 0 {
			return gridfmt.Status
		}
		return ""
	}
	tests := map[string]struct {
		col  gridfmt.Column
		row  gridfmt.Row
		want gridfmt.ColumnType
	}{
		"static only": {
			col:  gridfmt.Column{Type: gridfmt.Currency},
			row:  gridfmt.Row{"amount": 1},
			want: gridfmt.Currency,
		},
		"dynamic wins": {
			col:  gridfmt.Column{Type: gridfmt.Currency, DynamicType: dynamic},
			row:  gridfmt.Row{"amount": -1},
			want: gridfmt.Status,
		},
		"empty dynamic falls back": {
			col:  gridfmt.Column{Type: gridfmt.Currency, DynamicType: dynamic},
			row:  gridfmt.Row{"amount": 1},
			want: gridfmt.Currency,
		},
		"neither": {
			col:  gridfmt.Column{},
			row:  gridfmt.Row{},
			want: "",
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, gridfmt.ColType(tt.col, tt.row))
		})
	}
}

func TestParseColumnType(t *testing.T) {
	t.Parallel()
	for _, ct := range gridfmt.ColumnTypes() {
		got, err := gridfmt.ParseColumnType(ct.String())
		require.NoError(t, err)
		assert.Equal(t, ct, got)
	}
	_, err := gridfmt.ParseColumnType("money")
	assert.ErrorIs(t, err, gridfmt.ErrUnknownColumnType)
}

func TestColumnTypesIsCopy(t *testing.T) {
	t.Parallel()
	got := gridfmt.ColumnTypes()
	require.Len(t, got, 10)
	got[0] = "changed"
	assert.Equal(t, gridfmt.Text, gridfmt.ColumnTypes()[0])
}

func TestColumnTypeUnmarshal(t *testing.T) {
	t.Parallel()
	var fromYAML struct {
		Type gridfmt.ColumnType `yaml:"type"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("type: timespan"), &fromYAML))
	assert.Equal(t, gridfmt.TimeSpan, fromYAML.Type)

	var fromJSON struct {
		Type gridfmt.ColumnType `json:"type"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"type":"currency"}`), &fromJSON))
	assert.Equal(t, gridfmt.Currency, fromJSON.Type)

	err := json.Unmarshal([]byte(`{"type":"money"}`), &fromJSON)
	assert.ErrorIs(t, err, gridfmt.ErrUnknownColumnType)
}

func TestColumnValidate(t *testing.T) {
	t.Parallel()
	err := gridfmt.Column{Key: "state", Type: gridfmt.Status}.Validate()
	require.ErrorIs(t, err, gridfmt.ErrInvalidColumn)
	assert.Contains(t, err.Error(), `"state"`)

	ok := gridfmt.Column{Key: "state", Type: gridfmt.Status, Template: func(gridfmt.Row) any { return "x" }}
	assert.NoError(t, ok.Validate())
	assert.NoError(t, gridfmt.Column{Type: gridfmt.Text}.Validate())
}

func TestColumnHeader(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "amount", gridfmt.Column{Key: "amount"}.Header())
	assert.Equal(t, "Amount", gridfmt.Column{Key: "amount", Title: "Amount"}.Header())
}

func TestRowField(t *testing.T) {
	t.Parallel()
	r := gridfmt.Row{"a": nil}
	v, ok := r.Field("a")
	assert.True(t, ok)
	assert.Nil(t, v)
	_, ok = r.Field("b")
	assert.False(t, ok)
}
