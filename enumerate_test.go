package gridfmt_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/gridfmt"
)

func TestEnumerate(t *testing.T) {
	t.Parallel()
	rows := []gridfmt.Row{
		{"name": "Alice"},
		{"name": 0},
		{"name": false},
		{},
		{"name": 7},
	}
	e, err := gridfmt.Enumerate(rows, "name")
	require.NoError(t, err)
	assert.Equal(t, []string{"Alice", "", "", "", "7"}, e.List())

	items := e.Items()
	require.Len(t, items, 5)
	assert.Equal(t, rows[4], items[4].Row)
}

func TestEnumerateAcceptsPlainMaps(t *testing.T) {
	t.Parallel()
	e, err := gridfmt.Enumerate([]map[string]any{{"n": "a"}, {"n": "b"}}, "n")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, e.List())
}

func TestEnumerateRejectsNonSequence(t *testing.T) {
	t.Parallel()
	tests := map[string]any{
		"nil":       nil,
		"nil slice": []gridfmt.Row(nil),
		"map":       gridfmt.Row{"a": 1},
		"strings":   []string{"a"},
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := gridfmt.Enumerate(data, "a")
			require.ErrorIs(t, err, gridfmt.ErrNotSequence)
			assert.Contains(t, err.Error(), "data parameter should be array")
		})
	}
}

func TestEnumerateSelect(t *testing.T) {
	t.Parallel()
	rows := []gridfmt.Row{{"n": "a"}, {"n": "b"}}
	e, err := gridfmt.Enumerate(rows, "n")
	require.NoError(t, err)

	var first, second []gridfmt.Row
	e.OnSelect(func(r gridfmt.Row) { first = append(first, r) })
	e.OnSelect(func(r gridfmt.Row) { second = append(second, r) })

	require.NoError(t, e.Select(1))
	assert.Equal(t, []gridfmt.Row{rows[1]}, first)
	assert.Equal(t, []gridfmt.Row{rows[1]}, second)

	assert.ErrorIs(t, e.Select(2), gridfmt.ErrOutOfRange)
	assert.ErrorIs(t, e.Select(-1), gridfmt.ErrOutOfRange)
	assert.Len(t, first, 1)
}

func TestEnumerationWrite(t *testing.T) {
	t.Parallel()
	e, err := gridfmt.Enumerate([]gridfmt.Row{{"n": "a"}, {"n": "b"}}, "n")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, e.Write(&buf, ""))
	assert.Equal(t, "a\nb\n", buf.String())

	buf.Reset()
	require.NoError(t, e.Write(&buf, ", "))
	assert.Equal(t, "a, b\n", buf.String())
}

func TestEnumerationWriteEmpty(t *testing.T) {
	t.Parallel()
	e, err := gridfmt.Enumerate([]gridfmt.Row{}, "n")
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, e.Write(&buf, ""))
	assert.Empty(t, buf.String())
}
