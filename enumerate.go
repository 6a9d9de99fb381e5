package gridfmt

import (
	"errors"
	"fmt"
)

// Sentinel errors for [Enumerate].
var (
	ErrNotSequence = errors.New("data parameter should be array")
	ErrOutOfRange  = errors.New("index out of range")
)

// Item is one entry of an [Enumeration].
type Item struct {
	Text string
	Row  Row
}

// Enumeration is a selectable list of rows labelled by one property.
type Enumeration struct {
	items    []Item
	handlers []func(Row)
}

// Enumerate builds a selectable list from data, labelling each row with its
// property value. data must be []Row or []map[string]any. Falsy values
// (missing, nil, false, zero, "") are labelled "".
func Enumerate(data any, property string) (*Enumeration, error) {
	var rows []Row
	switch d := data.(type) {
	case []Row:
		rows = d
	case []map[string]any:
		rows = make([]Row, len(d))
		for i, m := range d {
			rows[i] = m
		}
	default:
		return nil, fmt.Errorf("%w: got %T", ErrNotSequence, data)
	}
	if rows == nil {
		return nil, fmt.Errorf("%w: got nil", ErrNotSequence)
	}

	e := &Enumeration{items: make([]Item, len(rows))}
	for i, r := range rows {
		var text string
		if v := r[property]; !falsy(v) {
			text = Stringify(v)
		}
		e.items[i] = Item{Text: text, Row: r}
	}
	return e, nil
}

// Items returns the entries in order.
func (e *Enumeration) Items() []Item {
	out := make([]Item, len(e.items))
	copy(out, e.items)
	return out
}

// List returns the entry labels. It satisfies the List format.
func (e *Enumeration) List() []string {
	out := make([]string, len(e.items))
	for i, it := range e.items {
		out[i] = it.Text
	}
	return out
}

// OnSelect registers fn to receive the row of every selection.
func (e *Enumeration) OnSelect(fn func(Row)) {
	e.handlers = append(e.handlers, fn)
}

// Select emits a selection of entry i to every registered handler.
func (e *Enumeration) Select(i int) error {
	if i < 0 || i >= len(e.items) {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrOutOfRange, i, len(e.items))
	}
	r := e.items[i].Row
	for _, fn := range e.handlers {
		fn(r)
	}
	return nil
}

func falsy(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case bool:
		return !x
	case string:
		return x == ""
	}
	if n, ok := toFloat(v); ok {
		return n == 0 || n != n
	}
	return false
}
