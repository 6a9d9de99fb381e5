package gridfmt

import (
	"fmt"
	"io"
	"strings"
)

var tsvEscaper = strings.NewReplacer("\t", " ", "\n", " ", "\r", "")

func writeTSV(w io.Writer, s *sheet) error {
	if err := writeTSVLine(w, s.header); err != nil {
		return err
	}
	for _, row := range s.rows {
		if err := writeTSVLine(w, row.cells); err != nil {
			return err
		}
	}
	return nil
}

func writeTSVLine(w io.Writer, cells []string) error {
	clean := make([]string, len(cells))
	for i, c := range cells {
		clean[i] = tsvEscaper.Replace(c)
	}
	_, err := fmt.Fprintln(w, strings.Join(clean, "\t"))
	return err
}
