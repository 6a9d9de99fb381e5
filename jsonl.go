package gridfmt

import (
	"encoding/json"
	"io"
)

func writeJSONL(w io.Writer, s *sheet) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for _, rec := range s.records() {
		if err := enc.Encode(rec); err != nil {
			return err
		}
	}
	return nil
}
