package gridfmt_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/gridfmt"
)

func column(rows []gridfmt.Row, key string) []any {
	out := make([]any, len(rows))
	for i, r := range rows {
		out[i] = r[key]
	}
	return out
}

func TestSortBySingleKey(t *testing.T) {
	t.Parallel()
	rows := []gridfmt.Row{{"a": 2}, {"a": 1}, {"a": 3}}

	asc := gridfmt.SortBy(rows, gridfmt.Fields("a"), true)
	assert.Equal(t, []gridfmt.Row{{"a": 1}, {"a": 2}, {"a": 3}}, asc)

	desc := gridfmt.SortBy(rows, gridfmt.Fields("a"), false)
	assert.Equal(t, []gridfmt.Row{{"a": 3}, {"a": 2}, {"a": 1}}, desc)
}

func TestSortByDoesNotMutateInput(t *testing.T) {
	t.Parallel()
	rows := []gridfmt.Row{{"a": 2}, {"a": 1}, {"a": 3}}
	_ = gridfmt.SortBy(rows, gridfmt.Fields("a"), true)
	assert.Equal(t, []any{2, 1, 3}, column(rows, "a"))
}

func TestSortByMultiKey(t *testing.T) {
	t.Parallel()
	rows := []gridfmt.Row{{"a": 1, "b": 2}, {"a": 1, "b": 1}}
	got := gridfmt.SortBy(rows, gridfmt.Fields("a", "b"), true)
	assert.Equal(t, []any{1, 2}, column(got, "b"))
}

func TestSortByPrimaryKeyWins(t *testing.T) {
	t.Parallel()
	rows := []gridfmt.Row{
		{"a": 2, "b": 1},
		{"a": 1, "b": 9},
		{"a": 1, "b": 3},
	}
	got := gridfmt.SortBy(rows, gridfmt.Fields("a", "b"), true)
	assert.Equal(t, []any{3, 9, 1}, column(got, "b"))
}

func TestSortByDescendingFlipsEveryKey(t *testing.T) {
	t.Parallel()
	rows := []gridfmt.Row{
		{"a": 1, "b": 1},
		{"a": 1, "b": 2},
		{"a": 2, "b": 1},
	}
	got := gridfmt.SortBy(rows, gridfmt.Fields("a", "b"), false)
	assert.Equal(t, []gridfmt.Row{
		{"a": 2, "b": 1},
		{"a": 1, "b": 2},
		{"a": 1, "b": 1},
	}, got)
}

func TestSortByIsStable(t *testing.T) {
	t.Parallel()
	rows := []gridfmt.Row{
		{"k": 2, "id": "first"},
		{"k": 9, "id": "x"},
		{"k": 2, "id": "second"},
		{"k": 0, "id": "y"},
		{"k": 2, "id": "third"},
	}
	for _, asc := range []bool{true, false} {
		got := gridfmt.SortBy(rows, gridfmt.Fields("k"), asc)
		var ids []string
		for _, r := range got {
			if r["k"] == 2 {
				ids = append(ids, r["id"].(string))
			}
		}
		assert.Equal(t, []string{"first", "second", "third"}, ids, "ascending=%v", asc)
	}
}

func TestSortByIdempotent(t *testing.T) {
	t.Parallel()
	rows := []gridfmt.Row{
		{"a": "b", "n": 2}, {"a": "a", "n": 2}, {"a": "c", "n": 1}, {"a": "a", "n": 1},
	}
	keys := gridfmt.Fields("n", "a")
	for _, asc := range []bool{true, false} {
		once := gridfmt.SortBy(rows, keys, asc)
		twice := gridfmt.SortBy(once, keys, asc)
		assert.Equal(t, once, twice)
	}
}

func TestSortByMissingValues(t *testing.T) {
	t.Parallel()
	rows := []gridfmt.Row{
		{"id": "nil", "a": nil},
		{"id": "two", "a": 2},
		{"id": "absent"},
		{"id": "one", "a": 1},
	}
	ids := func(rs []gridfmt.Row) []any { return column(rs, "id") }

	asc := gridfmt.SortBy(rows, gridfmt.Fields("a"), true)
	assert.Equal(t, []any{"one", "two", "nil", "absent"}, ids(asc))

	desc := gridfmt.SortBy(rows, gridfmt.Fields("a"), false)
	assert.Equal(t, []any{"nil", "absent", "two", "one"}, ids(desc))
}

func TestSortByFuncKey(t *testing.T) {
	t.Parallel()
	rows := []gridfmt.Row{{"name": "ccc"}, {"name": "a"}, {"name": "bb"}}
	byLen := gridfmt.By(func(r gridfmt.Row) any { return len(r["name"].(string)) })
	got := gridfmt.SortBy(rows, []gridfmt.Key{byLen}, true)
	assert.Equal(t, []any{"a", "bb", "ccc"}, column(got, "name"))
}

func TestSortByFuncKeyNilIsMissing(t *testing.T) {
	t.Parallel()
	rows := []gridfmt.Row{{"v": "skip"}, {"v": 1}}
	key := gridfmt.By(func(r gridfmt.Row) any {
		if r["v"] == "skip" {
			return nil
		}
		return r["v"]
	})
	got := gridfmt.SortBy(rows, []gridfmt.Key{key}, true)
	assert.Equal(t, []any{1, "skip"}, column(got, "v"))
}

func TestSortByValueFormatter(t *testing.T) {
	t.Parallel()
	rows := []gridfmt.Row{{"amount": 10}, {"amount": 9}, {"amount": 100}}

	// Formatted currency strings compare bytewise.
	asStrings := gridfmt.WithValueFormatter(func(v any) any {
		return gridfmt.FormatCurrency(float64(v.(int)))
	})
	got := gridfmt.SortBy(rows, gridfmt.Fields("amount"), true, asStrings)
	assert.Equal(t, []any{10, 100, 9}, column(got, "amount"))

	raw := gridfmt.SortBy(rows, gridfmt.Fields("amount"), true)
	assert.Equal(t, []any{9, 10, 100}, column(raw, "amount"))
}

func TestSortByValueFormatterSkipsMissing(t *testing.T) {
	t.Parallel()
	rows := []gridfmt.Row{{}, {"s": "B"}, {"s": "a"}}
	calls := 0
	lower := gridfmt.WithValueFormatter(func(v any) any {
		calls++
		return strings.ToLower(v.(string))
	})
	got := gridfmt.SortBy(rows, gridfmt.Fields("s"), true, lower)
	assert.Equal(t, []any{"a", "B", nil}, column(got, "s"))
	assert.Positive(t, calls)
}

func TestSortByTieBreakPinsRows(t *testing.T) {
	t.Parallel()
	rows := []gridfmt.Row{
		{"n": 1},
		{"n": 5, "pinned": true},
		{"n": 3},
	}
	pinned := func(r gridfmt.Row) bool { p, _ := r["pinned"].(bool); return p }
	pin := gridfmt.WithTieBreak(func(a, b gridfmt.Row) int {
		switch {
		case pinned(a) && !pinned(b):
			return -1
		case pinned(b) && !pinned(a):
			return 1
		}
		return 0
	})

	asc := gridfmt.SortBy(rows, gridfmt.Fields("n"), true, pin)
	assert.Equal(t, []any{5, 1, 3}, column(asc, "n"))

	// The tie-break verdict ignores direction.
	desc := gridfmt.SortBy(rows, gridfmt.Fields("n"), false, pin)
	assert.Equal(t, []any{5, 3, 1}, column(desc, "n"))
}

func TestSortByNoKeys(t *testing.T) {
	t.Parallel()
	rows := []gridfmt.Row{{"a": 2}, {"a": 1}}
	assert.Equal(t, rows, gridfmt.SortBy(rows, nil, true))
	assert.Empty(t, gridfmt.SortBy(nil, gridfmt.Fields("a"), true))
}

func TestSortByPanicPropagates(t *testing.T) {
	t.Parallel()
	errBoom := errors.New("boom")
	key := gridfmt.By(func(gridfmt.Row) any { panic(errBoom) })
	assert.PanicsWithError(t, "boom", func() {
		gridfmt.SortBy([]gridfmt.Row{{}, {}}, []gridfmt.Key{key}, true)
	})
}

func TestCompare(t *testing.T) {
	t.Parallel()
	early := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	late := early.Add(time.Hour)
	tests := map[string]struct {
		a, b any
		want int
	}{
		"ints":            {a: 1, b: 2, want: -1},
		"int vs float":    {a: 2, b: 1.5, want: 1},
		"equal numbers":   {a: int64(3), b: 3.0, want: 0},
		"strings":         {a: "a", b: "b", want: -1},
		"bools":           {a: true, b: false, want: 1},
		"equal bools":     {a: false, b: false, want: 0},
		"times":           {a: late, b: early, want: 1},
		"number < string": {a: 100, b: "1", want: -1},
		"string < bool":   {a: "z", b: false, want: -1},
		"bool < time":     {a: true, b: early, want: -1},
		"time < other":    {a: early, b: []int{1}, want: -1},
		"others":          {a: []int{1}, b: []int{2}, want: -1},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, gridfmt.Compare(tt.a, tt.b))
		})
	}
}

func ExampleSortBy() {
	rows := []gridfmt.Row{
		{"customer": "b", "amount": 2},
		{"customer": "a", "amount": 3},
		{"customer": "b", "amount": 1},
	}
	for _, r := range gridfmt.SortBy(rows, gridfmt.Fields("customer", "amount"), true) {
		fmt.Println(r["customer"], r["amount"])
	}
	// Output:
	// a 3
	// b 1
	// b 2
}

func TestFields(t *testing.T) {
	t.Parallel()
	keys := gridfmt.Fields("a", "b")
	require.Len(t, keys, 2)
	v, ok := keys[1](gridfmt.Row{"b": "x"})
	assert.True(t, ok)
	assert.Equal(t, "x", v)
	_, ok = keys[0](gridfmt.Row{"a": nil})
	assert.False(t, ok)
}
