package gridfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

type borderChars struct {
	topLeft, topRight, bottomLeft, bottomRight string
	horizontal, vertical                       string
	topTee, bottomTee, leftTee, rightTee       string
	cross                                      string
}

var borderSets = map[BorderStyle]borderChars{
	BorderRounded: {
		topLeft: "╭", topRight: "╮", bottomLeft: "╰", bottomRight: "╯",
		horizontal: "─", vertical: "│",
		topTee: "┬", bottomTee: "┴", leftTee: "├", rightTee: "┤",
		cross: "┼",
	},
	BorderASCII: {
		topLeft: "+", topRight: "+", bottomLeft: "+", bottomRight: "+",
		horizontal: "-", vertical: "|",
		topTee: "+", bottomTee: "+", leftTee: "+", rightTee: "+",
		cross: "+",
	},
	BorderHeavy: {
		topLeft: "┏", topRight: "┓", bottomLeft: "┗", bottomRight: "┛",
		horizontal: "━", vertical: "┃",
		topTee: "┳", bottomTee: "┻", leftTee: "┣", rightTee: "┫",
		cross: "╋",
	},
	BorderDouble: {
		topLeft: "╔", topRight: "╗", bottomLeft: "╚", bottomRight: "╝",
		horizontal: "═", vertical: "║",
		topTee: "╦", bottomTee: "╩", leftTee: "╠", rightTee: "╣",
		cross: "╬",
	},
}

// tableLayout is a sheet flattened into padded-cell input.
type tableLayout struct {
	header []string
	rows   [][]string
	styles [][]func(string) string
	groups []string
	widths []int
	aligns []Alignment
}

func layoutTable(s *sheet) tableLayout {
	l := tableLayout{
		header: s.header,
		rows:   make([][]string, len(s.rows)),
		styles: make([][]func(string) string, len(s.rows)),
		groups: make([]string, len(s.rows)),
		aligns: s.aligns,
	}
	for i, row := range s.rows {
		l.rows[i] = row.cells
		l.styles[i] = row.styles
		l.groups[i] = row.group
	}

	if s.numbered {
		l.header = append([]string{"#"}, l.header...)
		l.aligns = append([]Alignment{AlignRight}, l.aligns...)
		for i := range l.rows {
			l.rows[i] = append([]string{strconv.Itoa(i + 1)}, l.rows[i]...)
			l.styles[i] = append([]func(string) string{nil}, l.styles[i]...)
		}
	}

	l.widths = computeWidths(len(l.header), l.header, l.rows)

	// Apply max column widths for truncation.
	offset := len(l.header) - len(s.widths)
	for i, max := range s.widths {
		if col := i + offset; max > 0 && l.widths[col] > max {
			l.widths[col] = max
		}
	}
	return l
}

func writeTable(w io.Writer, s *sheet) error {
	if len(s.header) == 0 {
		return nil
	}
	l := layoutTable(s)

	var err error
	if s.border == BorderNone {
		err = renderPlainTable(w, l)
	} else {
		err = renderBorderedTable(w, s.title, l, s.border)
	}
	if err != nil {
		return err
	}

	if s.caption != "" {
		if _, err := fmt.Fprintln(w, s.caption); err != nil {
			return err
		}
	}
	return nil
}

func groupBreak(groups []string, i int) bool {
	return i > 0 && groups[i] != groups[i-1]
}

// --- Plain table (BorderNone) ---

func renderPlainTable(w io.Writer, l tableLayout) error {
	if err := writePlainRow(w, l.header, l.widths, l.aligns, nil); err != nil {
		return err
	}
	if err := writePlainSep(w, l.widths); err != nil {
		return err
	}
	for i, row := range l.rows {
		if groupBreak(l.groups, i) {
			if err := writePlainSep(w, l.widths); err != nil {
				return err
			}
		}
		if err := writePlainRow(w, row, l.widths, l.aligns, l.styles[i]); err != nil {
			return err
		}
	}
	return nil
}

func writePlainSep(w io.Writer, widths []int) error {
	sep := make([]string, len(widths))
	for i, width := range widths {
		sep[i] = strings.Repeat("-", width)
	}
	_, err := fmt.Fprintln(w, strings.Join(sep, "  "))
	return err
}

func writePlainRow(w io.Writer, cells []string, widths []int, aligns []Alignment, styles []func(string) string) error {
	parts := make([]string, len(widths))
	for i, width := range widths {
		parts[i] = styledCell(cells, styles, i, width, aligns[i])
	}
	line := strings.TrimRight(strings.Join(parts, "  "), " ")
	_, err := fmt.Fprintln(w, line)
	return err
}

// --- Bordered table ---

func renderBorderedTable(w io.Writer, title string, l tableLayout, style BorderStyle) error {
	bc := borderSets[style]

	if title != "" {
		// Full-width top border (no column separators).
		if err := drawHLine(w, l.widths, bc.topLeft, bc.horizontal, bc.horizontal, bc.topRight); err != nil {
			return err
		}
		inner := tableInnerWidth(l.widths) - 2 // subtract 1-space padding on each side
		padded := alignCell(runewidth.Truncate(title, inner, "..."), inner, AlignCenter)
		if _, err := fmt.Fprintf(w, "%s %s %s\n", bc.vertical, padded, bc.vertical); err != nil {
			return err
		}
		if err := drawHLine(w, l.widths, bc.leftTee, bc.horizontal, bc.topTee, bc.rightTee); err != nil {
			return err
		}
	} else {
		if err := drawHLine(w, l.widths, bc.topLeft, bc.horizontal, bc.topTee, bc.topRight); err != nil {
			return err
		}
	}

	if err := drawBorderedRow(w, l.header, l.widths, l.aligns, bc.vertical, nil); err != nil {
		return err
	}
	if err := drawHLine(w, l.widths, bc.leftTee, bc.horizontal, bc.cross, bc.rightTee); err != nil {
		return err
	}

	for i, row := range l.rows {
		if groupBreak(l.groups, i) {
			if err := drawHLine(w, l.widths, bc.leftTee, bc.horizontal, bc.cross, bc.rightTee); err != nil {
				return err
			}
		}
		if err := drawBorderedRow(w, row, l.widths, l.aligns, bc.vertical, l.styles[i]); err != nil {
			return err
		}
	}

	return drawHLine(w, l.widths, bc.bottomLeft, bc.horizontal, bc.bottomTee, bc.bottomRight)
}

// tableInnerWidth returns the total character width between the outer vertical
// borders of a bordered table. Each cell contributes its width plus 2 (one
// space of padding on each side), and cells are separated by a single vertical
// border character.
func tableInnerWidth(widths []int) int {
	n := 0
	for _, w := range widths {
		n += w + 2
	}
	if len(widths) > 1 {
		n += len(widths) - 1
	}
	return n
}

func drawHLine(w io.Writer, widths []int, left, fill, mid, right string) error {
	var sb strings.Builder
	sb.WriteString(left)
	for i, width := range widths {
		sb.WriteString(strings.Repeat(fill, width+2))
		if i < len(widths)-1 {
			sb.WriteString(mid)
		}
	}
	sb.WriteString(right)
	_, err := fmt.Fprintln(w, sb.String())
	return err
}

func drawBorderedRow(w io.Writer, cells []string, widths []int, aligns []Alignment, vert string, styles []func(string) string) error {
	var sb strings.Builder
	sb.WriteString(vert)
	for i, width := range widths {
		sb.WriteString(" ")
		sb.WriteString(styledCell(cells, styles, i, width, aligns[i]))
		sb.WriteString(" ")
		if i < len(widths)-1 {
			sb.WriteString(vert)
		}
	}
	sb.WriteString(vert)
	_, err := fmt.Fprintln(w, sb.String())
	return err
}

func styledCell(cells []string, styles []func(string) string, i, width int, align Alignment) string {
	cell := ""
	if i < len(cells) {
		cell = cells[i]
	}
	formatted := formatTableCell(cell, width, align)
	if i < len(styles) && styles[i] != nil {
		formatted = styles[i](formatted)
	}
	return formatted
}

func formatTableCell(s string, width int, align Alignment) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if width > 0 && runewidth.StringWidth(s) > width {
		if width <= 3 {
			s = runewidth.Truncate(s, width, "")
		} else {
			s = runewidth.Truncate(s, width, "...")
		}
	}
	return alignCell(s, width, align)
}

func alignCell(s string, width int, align Alignment) string {
	pad := width - runewidth.StringWidth(s)
	if pad <= 0 {
		return s
	}
	switch align {
	case AlignRight:
		return strings.Repeat(" ", pad) + s
	case AlignCenter:
		left := pad / 2
		right := pad - left
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
	default:
		return s + strings.Repeat(" ", pad)
	}
}
