package gridfmt

import (
	"errors"
	"fmt"
)

// Sentinel errors for column descriptors.
var (
	ErrInvalidColumn     = errors.New("invalid column descriptor")
	ErrUnknownColumnType = errors.New("unknown column type")
)

// ColumnType is the display type of a column. The zero value means the type
// is unresolved and the cell gets no special formatting.
type ColumnType string

const (
	Text     ColumnType = "text"
	Number   ColumnType = "number"
	Boolean  ColumnType = "boolean"
	Date     ColumnType = "date"
	Time     ColumnType = "time"
	TimeSpan ColumnType = "timespan"
	Checkbox ColumnType = "checkbox"
	Status   ColumnType = "status"
	Enum     ColumnType = "enum"
	Currency ColumnType = "currency"
)

var columnTypes = []ColumnType{Text, Number, Boolean, Date, Time, TimeSpan, Checkbox, Status, Enum, Currency}

// String returns the type name.
func (t ColumnType) String() string { return string(t) }

// ColumnTypes returns every known column type.
func ColumnTypes() []ColumnType {
	out := make([]ColumnType, len(columnTypes))
	copy(out, columnTypes)
	return out
}

// ParseColumnType parses a type name.
func ParseColumnType(s string) (ColumnType, error) {
	for _, t := range columnTypes {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownColumnType, s)
}

// UnmarshalText implements encoding.TextUnmarshaler. An empty value decodes
// to the unresolved type.
func (t *ColumnType) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*t = ""
		return nil
	}
	parsed, err := ParseColumnType(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Row is a single keyed record.
type Row map[string]any

// Field returns the value stored under key and whether the key is present.
func (r Row) Field(key string) (any, bool) {
	v, ok := r[key]
	return v, ok
}

// Column describes how one grid column is typed and rendered.
type Column struct {
	// Key selects the row field. Empty means the column shows the whole row.
	Key string
	// Title is the header text. Defaults to Key.
	Title string
	Type  ColumnType

	// DynamicType overrides Type for a specific row when it returns a
	// non-empty type.
	DynamicType func(Row) ColumnType
	// Format replaces the raw field value.
	Format func(row Row, key string) any
	// Template renders Status cells from the whole row. Required when Type
	// is Status.
	Template func(Row) any

	// MaxWidth truncates table cells. Zero means no limit.
	MaxWidth int
}

// Header returns the column title, falling back to the key.
func (c Column) Header() string {
	if c.Title != "" {
		return c.Title
	}
	return c.Key
}

// Validate reports whether the descriptor can be rendered.
func (c Column) Validate() error {
	if c.Type == Status && c.Template == nil {
		return fmt.Errorf("%w: column %q has type %s but no template", ErrInvalidColumn, c.Header(), Status)
	}
	return nil
}

// ColType resolves the effective type of column c for row.
func ColType(c Column, row Row) ColumnType {
	if c.DynamicType != nil {
		if t := c.DynamicType(row); t != "" {
			return t
		}
	}
	return c.Type
}
