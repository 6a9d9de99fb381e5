package gridfmt

import (
	"fmt"
	"reflect"
	"strconv"
)

// NumberFormatter turns a numeric cell value into display text.
type NumberFormatter func(float64) string

// Formatter formats cells. The zero value leaves every numeric value
// unchanged; use [NewFormatter] for the defaults.
type Formatter struct {
	time     NumberFormatter
	timeSpan NumberFormatter
	date     NumberFormatter
	currency NumberFormatter
}

// FormatterOption configures a [Formatter].
type FormatterOption func(*Formatter)

// WithTime sets the formatter for Time columns.
func WithTime(fn NumberFormatter) FormatterOption {
	return func(f *Formatter) { f.time = fn }
}

// WithTimeSpan sets the formatter for TimeSpan columns.
func WithTimeSpan(fn NumberFormatter) FormatterOption {
	return func(f *Formatter) { f.timeSpan = fn }
}

// WithDate sets the formatter for Date columns.
func WithDate(fn NumberFormatter) FormatterOption {
	return func(f *Formatter) { f.date = fn }
}

// WithCurrency sets the formatter for Currency columns.
// Default: [FormatCurrency].
func WithCurrency(fn NumberFormatter) FormatterOption {
	return func(f *Formatter) { f.currency = fn }
}

// NewFormatter returns a Formatter with Currency set to [FormatCurrency].
// Time, TimeSpan and Date values pass through unless a formatter is given.
func NewFormatter(opts ...FormatterOption) *Formatter {
	f := &Formatter{currency: FormatCurrency}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

var defaultFormatter = NewFormatter()

// FormatCurrency prefixes the shortest decimal form of v with "$".
func FormatCurrency(v float64) string {
	return "$" + strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatCellContent formats the (c, row) cell with the default Formatter.
func FormatCellContent(c Column, row Row) (any, error) {
	return defaultFormatter.FormatCell(c, row)
}

// FormatCell returns the display value of column c for row.
//
// Numeric values are dispatched on the static c.Type, never on the
// dynamically resolved type. A Format callback that returns a non-numeric
// value skips numeric formatting entirely. Status cells come from
// c.Template applied to the whole row.
func (f *Formatter) FormatCell(c Column, row Row) (any, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	var v any = row
	if c.Key != "" {
		v = row[c.Key]
	}
	if c.Format != nil {
		v = c.Format(row, c.Key)
	}

	if n, ok := toFloat(v); ok {
		var fn NumberFormatter
		switch c.Type {
		case Time:
			fn = f.time
		case TimeSpan:
			fn = f.timeSpan
		case Date:
			fn = f.date
		case Currency:
			fn = f.currency
		}
		if fn == nil {
			return v, nil
		}
		return fn(n), nil
	}

	if c.Type == Status {
		return c.Template(row), nil
	}
	return v, nil
}

// IsNumber reports whether v holds a Go integer or floating point kind.
// Strings are never numeric, even when they parse as numbers.
func IsNumber(v any) bool {
	_, ok := toFloat(v)
	return ok
}

func toFloat(v any) (float64, bool) {
	if v == nil {
		return 0, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	default:
		return 0, false
	}
}

// Stringify converts a value to its display and group-key text.
//
//   - nil → ""
//   - bool → "true" / "false"
//   - integers → base 10
//   - floats → shortest decimal form, so 1.0 and 1 both give "1"
//   - fmt.Stringer → String()
//   - anything else → fmt.Sprint
func Stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case fmt.Stringer:
		return x.String()
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 32)
	case reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64)
	case reflect.String:
		return rv.String()
	default:
		return fmt.Sprint(v)
	}
}
