package gridfmt

import (
	"cmp"
	"slices"
	"strings"
	"time"
)

// Key extracts a sort value from a row. ok is false when the value is
// missing.
type Key func(Row) (v any, ok bool)

// Field returns a Key reading the named field. Absent fields and nil values
// are missing.
func Field(name string) Key {
	return func(r Row) (any, bool) {
		v, ok := r[name]
		return v, ok && v != nil
	}
}

// By returns a Key computed by fn. A nil result is missing.
func By(fn func(Row) any) Key {
	return func(r Row) (any, bool) {
		v := fn(r)
		return v, v != nil
	}
}

// Fields returns one Field key per name, in priority order.
func Fields(names ...string) []Key {
	keys := make([]Key, len(names))
	for i, n := range names {
		keys[i] = Field(n)
	}
	return keys
}

// ValueFormatter maps a key value to the value that is compared.
type ValueFormatter func(any) any

// TieBreak is consulted before the keys for every compared pair. A negative
// result puts a first, a positive result puts b first, and zero defers to
// the keys.
type TieBreak func(a, b Row) int

type sortConfig struct {
	format   ValueFormatter
	tieBreak TieBreak
}

// SortOption configures [SortBy].
type SortOption func(*sortConfig)

// WithValueFormatter compares key values through fn.
func WithValueFormatter(fn ValueFormatter) SortOption {
	return func(c *sortConfig) { c.format = fn }
}

// WithTieBreak installs a pair override. Its verdict is not affected by the
// sort direction.
func WithTieBreak(fn TieBreak) SortOption {
	return func(c *sortConfig) { c.tieBreak = fn }
}

// SortBy returns a stably sorted copy of rows ordered by keys in priority
// order. The input slice is left untouched.
//
// Missing values sort after every present value when ascending and before
// them when descending.
func SortBy(rows []Row, keys []Key, ascending bool, opts ...SortOption) []Row {
	var cfg sortConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	out := slices.Clone(rows)
	slices.SortStableFunc(out, func(a, b Row) int {
		if cfg.tieBreak != nil {
			if c := cfg.tieBreak(a, b); c != 0 {
				return c
			}
		}
		for _, key := range keys {
			c := compareKey(key, a, b, cfg.format)
			if c == 0 {
				continue
			}
			if !ascending {
				return -c
			}
			return c
		}
		return 0
	})
	return out
}

func compareKey(key Key, a, b Row, format ValueFormatter) int {
	av, aok := key(a)
	bv, bok := key(b)
	if format != nil {
		if aok {
			av = format(av)
			aok = av != nil
		}
		if bok {
			bv = format(bv)
			bok = bv != nil
		}
	}
	switch {
	case !aok && !bok:
		return 0
	case !aok:
		return 1
	case !bok:
		return -1
	}
	return Compare(av, bv)
}

const (
	rankNumber = iota
	rankString
	rankBool
	rankTime
	rankOther
)

func rank(v any) int {
	if IsNumber(v) {
		return rankNumber
	}
	switch v.(type) {
	case string:
		return rankString
	case bool:
		return rankBool
	case time.Time:
		return rankTime
	default:
		return rankOther
	}
}

// Compare orders two present values. Values of different kinds order as
// numbers < strings < bools < times < everything else. Within a kind,
// numbers compare numerically, strings bytewise, false before true, times
// chronologically and everything else by [Stringify].
func Compare(a, b any) int {
	ra, rb := rank(a), rank(b)
	if ra != rb {
		return cmp.Compare(ra, rb)
	}
	switch ra {
	case rankNumber:
		af, _ := toFloat(a)
		bf, _ := toFloat(b)
		return cmp.Compare(af, bf)
	case rankString:
		return strings.Compare(a.(string), b.(string))
	case rankBool:
		ab, bb := a.(bool), b.(bool)
		switch {
		case ab == bb:
			return 0
		case !ab:
			return -1
		default:
			return 1
		}
	case rankTime:
		return a.(time.Time).Compare(b.(time.Time))
	default:
		return strings.Compare(Stringify(a), Stringify(b))
	}
}
