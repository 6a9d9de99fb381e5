package gridfmt

import "iter"

// Groups maps group keys to rows. Keys keep first-encounter order and rows
// keep their original relative order within a group.
type Groups struct {
	keys []string
	rows map[string][]Row
}

// GroupBy partitions rows by the named field. Group keys are the
// [Stringify] form of the field value, so 1 and "1" share a group and
// missing or nil values land in the "" group.
func GroupBy(rows []Row, key string) Groups {
	g := Groups{rows: make(map[string][]Row)}
	for _, r := range rows {
		k := Stringify(r[key])
		if _, seen := g.rows[k]; !seen {
			g.keys = append(g.keys, k)
		}
		g.rows[k] = append(g.rows[k], r)
	}
	return g
}

// Len returns the number of groups.
func (g Groups) Len() int { return len(g.keys) }

// Keys returns the group keys in first-encounter order.
func (g Groups) Keys() []string {
	out := make([]string, len(g.keys))
	copy(out, g.keys)
	return out
}

// Get returns the rows of one group.
func (g Groups) Get(key string) []Row { return g.rows[key] }

// All iterates groups in key order.
func (g Groups) All() iter.Seq2[string, []Row] {
	return func(yield func(string, []Row) bool) {
		for _, k := range g.keys {
			if !yield(k, g.rows[k]) {
				return
			}
		}
	}
}

// Map returns the groups as a plain map.
func (g Groups) Map() map[string][]Row {
	out := make(map[string][]Row, len(g.rows))
	for k, v := range g.rows {
		out[k] = v
	}
	return out
}
