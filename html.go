package gridfmt

import (
	"fmt"
	"html"
	"io"
)

func writeHTML(w io.Writer, s *sheet) error {
	if _, err := fmt.Fprintln(w, "<table>"); err != nil {
		return err
	}

	if s.title != "" {
		if _, err := fmt.Fprintf(w, "  <caption>%s</caption>\n", html.EscapeString(s.title)); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintln(w, "  <thead>\n    <tr>"); err != nil {
		return err
	}
	for i, col := range s.header {
		if _, err := fmt.Fprintf(w, "      <th%s>%s</th>\n", alignStyle(s.aligns, i), html.EscapeString(col)); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, "    </tr>\n  </thead>"); err != nil {
		return err
	}

	if _, err := fmt.Fprintln(w, "  <tbody>"); err != nil {
		return err
	}
	for _, row := range s.rows {
		if _, err := fmt.Fprintf(w, "    <tr%s>\n", groupAttr(row.group)); err != nil {
			return err
		}
		for i, cell := range row.cells {
			if _, err := fmt.Fprintf(w, "      <td%s>%s</td>\n", alignStyle(s.aligns, i), html.EscapeString(cell)); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w, "    </tr>"); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, "  </tbody>"); err != nil {
		return err
	}

	_, err := fmt.Fprintln(w, "</table>")
	return err
}

func groupAttr(group string) string {
	if group == "" {
		return ""
	}
	return fmt.Sprintf(` data-group="%s"`, html.EscapeString(group))
}

func alignStyle(aligns []Alignment, col int) string {
	if col >= len(aligns) {
		return ""
	}
	switch aligns[col] {
	case AlignRight:
		return ` style="text-align: right"`
	case AlignCenter:
		return ` style="text-align: center"`
	default:
		return ""
	}
}
