package gridfmt

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-logr/logr"
)

// Sentinel errors for rendering.
var (
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrInvalidTemplate   = errors.New("invalid template")
)

// Format is a grid output format.
type Format string

const (
	JSON     Format = "json"
	YAML     Format = "yaml"
	JSONL    Format = "jsonl"
	CSV      Format = "csv"
	TSV      Format = "tsv"
	Table    Format = "table"
	Markdown Format = "markdown"
	HTML     Format = "html"
)

const goTemplatePrefix = "go-template="

var formats = []Format{JSON, YAML, JSONL, CSV, TSV, Table, Markdown, HTML}

// String returns the format name.
func (f Format) String() string { return string(f) }

// Formats returns all static format names.
// GoTemplate is not included because it is parameterized.
func Formats() []Format {
	out := make([]Format, len(formats))
	copy(out, formats)
	return out
}

// GoTemplate returns a Format that executes tmpl once per row. The template
// data maps column titles to formatted cell values.
func GoTemplate(tmpl string) Format {
	return Format(goTemplatePrefix + tmpl)
}

// ParseFormat parses a format name or a go-template=<tmpl> string.
func ParseFormat(s string) (Format, error) {
	if strings.HasPrefix(s, goTemplatePrefix) {
		return Format(s), nil
	}
	for _, f := range formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// BorderStyle controls table border characters.
type BorderStyle int

const (
	BorderRounded BorderStyle = iota // ╭─╮╰╯│┬┴├┤┼
	BorderNone                       // No borders, space-separated columns
	BorderASCII                      // +-+|
	BorderHeavy                      // ┏━┓┗┛┃┳┻┣┫╋
	BorderDouble                     // ╔═╗╚╝║╦╩╠╣╬
)

var borderNames = map[string]BorderStyle{
	"rounded": BorderRounded,
	"none":    BorderNone,
	"ascii":   BorderASCII,
	"heavy":   BorderHeavy,
	"double":  BorderDouble,
}

// ParseBorderStyle parses a border style name.
func ParseBorderStyle(s string) (BorderStyle, error) {
	b, ok := borderNames[s]
	if !ok {
		return 0, fmt.Errorf("unknown border style %q", s)
	}
	return b, nil
}

// Alignment controls column text alignment.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

// Grid is a set of rows displayed through column descriptors.
type Grid struct {
	Title   string
	Caption string
	Columns []Column
	Rows    []Row

	// GroupBy reorders rows into groups of the named field. Table output
	// separates groups with a rule.
	GroupBy string

	Border   BorderStyle
	Numbered bool

	// Styles wraps table cells by their resolved column type. Styles are
	// applied after padding so escape codes never affect widths.
	Styles map[ColumnType]func(string) string
}

// Renderer writes grids. It is safe for concurrent use.
type Renderer struct {
	formatter *Formatter
	log       logr.Logger
}

// RenderOption configures a [Renderer].
type RenderOption func(*Renderer)

// WithFormatter sets the cell formatter. Default: [NewFormatter].
func WithFormatter(f *Formatter) RenderOption {
	return func(r *Renderer) { r.formatter = f }
}

// WithLogger sets the logger. Default: discard.
func WithLogger(l logr.Logger) RenderOption {
	return func(r *Renderer) { r.log = l }
}

// NewRenderer returns a Renderer.
func NewRenderer(opts ...RenderOption) *Renderer {
	r := &Renderer{formatter: defaultFormatter, log: logr.Discard()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var defaultRenderer = NewRenderer()

// Write renders g in format f with the default Renderer.
func Write(w io.Writer, f Format, g Grid) error {
	return defaultRenderer.Write(w, f, g)
}

// Marshal renders g in format f and returns the bytes.
func Marshal(f Format, g Grid) ([]byte, error) {
	return defaultRenderer.Marshal(f, g)
}

// Marshal renders g in format f and returns the bytes.
func (r *Renderer) Marshal(f Format, g Grid) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.Write(&buf, f, g); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write renders g in format f.
func (r *Renderer) Write(w io.Writer, f Format, g Grid) error {
	tmpl, isTemplate := strings.CutPrefix(string(f), goTemplatePrefix)
	if !isTemplate && !isStatic(f) {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}

	s, err := r.build(g)
	if err != nil {
		return err
	}
	r.log.V(1).Info("rendering grid", "format", f.String(), "rows", len(s.rows), "columns", len(s.header), "groups", s.groupCount())

	switch f {
	case JSON:
		return writeJSON(w, s)
	case YAML:
		return writeYAML(w, s)
	case JSONL:
		return writeJSONL(w, s)
	case CSV:
		return writeCSV(w, s)
	case TSV:
		return writeTSV(w, s)
	case Table:
		return writeTable(w, s)
	case Markdown:
		return writeMarkdown(w, s)
	case HTML:
		return writeHTML(w, s)
	default:
		return writeGoTemplate(w, tmpl, s)
	}
}

func isStatic(f Format) bool {
	for _, known := range formats {
		if f == known {
			return true
		}
	}
	return false
}

// sheet is a grid with every cell formatted.
type sheet struct {
	title   string
	caption string
	header  []string
	aligns  []Alignment
	widths  []int // max widths, zero means no limit
	rows    []sheetRow

	border   BorderStyle
	numbered bool
}

type sheetRow struct {
	values []any
	cells  []string
	styles []func(string) string
	group  string
}

func (s *sheet) groupCount() int {
	n := 0
	for i, row := range s.rows {
		if i == 0 || row.group != s.rows[i-1].group {
			n++
		}
	}
	return n
}

func (r *Renderer) build(g Grid) (*sheet, error) {
	for i, c := range g.Columns {
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("column %d: %w", i, err)
		}
	}

	s := &sheet{
		title:    g.Title,
		caption:  g.Caption,
		header:   make([]string, len(g.Columns)),
		aligns:   make([]Alignment, len(g.Columns)),
		widths:   make([]int, len(g.Columns)),
		border:   g.Border,
		numbered: g.Numbered,
	}
	for i, c := range g.Columns {
		s.header[i] = c.Header()
		s.aligns[i] = alignFor(c.Type)
		s.widths[i] = c.MaxWidth
	}

	rows := g.Rows
	groupOf := func(Row) string { return "" }
	if g.GroupBy != "" {
		groups := GroupBy(g.Rows, g.GroupBy)
		rows = make([]Row, 0, len(g.Rows))
		for _, members := range groups.All() {
			rows = append(rows, members...)
		}
		groupOf = func(row Row) string { return Stringify(row[g.GroupBy]) }
	}

	s.rows = make([]sheetRow, len(rows))
	for i, row := range rows {
		sr := sheetRow{
			values: make([]any, len(g.Columns)),
			cells:  make([]string, len(g.Columns)),
			styles: make([]func(string) string, len(g.Columns)),
			group:  groupOf(row),
		}
		for j, c := range g.Columns {
			v, err := r.formatter.FormatCell(c, row)
			if err != nil {
				return nil, fmt.Errorf("row %d column %d: %w", i, j, err)
			}
			sr.values[j] = v
			sr.cells[j] = Stringify(v)
			if g.Styles != nil {
				sr.styles[j] = g.Styles[ColType(c, row)]
			}
		}
		s.rows[i] = sr
	}
	return s, nil
}

func alignFor(t ColumnType) Alignment {
	switch t {
	case Number, Currency:
		return AlignRight
	case Boolean, Checkbox:
		return AlignCenter
	default:
		return AlignLeft
	}
}

// records returns one ordered record per row.
func (s *sheet) records() []record {
	out := make([]record, len(s.rows))
	for i, row := range s.rows {
		out[i] = record{keys: s.header, values: row.values}
	}
	return out
}
