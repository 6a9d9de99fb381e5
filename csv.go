package gridfmt

import (
	"encoding/csv"
	"io"
)

func writeCSV(w io.Writer, s *sheet) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(s.header); err != nil {
		return err
	}
	for _, row := range s.rows {
		if err := cw.Write(row.cells); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
