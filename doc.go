// Package gridfmt formats, sorts and groups tabular rows for grid display.
//
// A grid is a slice of [Row] values viewed through [Column] descriptors.
// Each column has a static [ColumnType] and may override it per row with a
// DynamicType callback; [ColType] resolves the effective type.
//
// # Cell Formatting
//
// [FormatCellContent] produces the display value of one cell:
//
//   - the raw value is row[Key], or the whole row when Key is empty
//   - a Format callback replaces the raw value
//   - numeric values of Time, TimeSpan, Date and Currency columns go through
//     the matching [NumberFormatter]
//   - Status columns render through their Template
//
// Numeric dispatch uses the static column type, not the resolved one.
// Inject formatters with [NewFormatter]:
//
//	f := gridfmt.NewFormatter(gridfmt.HumanFormatters()...)
//	v, err := f.FormatCell(col, row)
//
// # Sorting
//
// [SortBy] returns a stably sorted copy ordered by a list of [Key]
// extractors, compared lexicographically:
//
//	sorted := gridfmt.SortBy(rows, gridfmt.Fields("customer", "amount"), true)
//
// [WithValueFormatter] compares values through a mapping and [WithTieBreak]
// installs a pair override that runs before the keys. Missing values sort
// last when ascending and first when descending.
//
// # Grouping
//
// [GroupBy] partitions rows by the [Stringify] form of a field, keeping
// first-encounter key order and row order within each group.
//
// # Rendering
//
// [Write] and [Marshal] render a [Grid] as JSON, YAML, JSONL, CSV, TSV,
// Table, Markdown, HTML or a Go template:
//
//	gridfmt.Write(os.Stdout, gridfmt.Table, gridfmt.Grid{Columns: cols, Rows: rows})
//
// # Enumeration
//
// [Enumerate] labels rows by one property and emits row-selected
// notifications to subscribers registered with OnSelect.
//
// # Errors
//
//   - [ErrInvalidColumn]: Status column without a Template
//   - [ErrUnknownColumnType]: unknown type name
//   - [ErrUnsupportedFormat]: unknown format string
//   - [ErrInvalidTemplate]: invalid go-template syntax
//   - [ErrNotSequence]: Enumerate input is not a row slice
//   - [ErrOutOfRange]: selection index out of range
package gridfmt
