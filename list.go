package gridfmt

import (
	"io"
	"strings"
)

// Write renders the entry labels separated by sep. An empty sep means
// newline.
func (e *Enumeration) Write(w io.Writer, sep string) error {
	if len(e.items) == 0 {
		return nil
	}
	if sep == "" {
		sep = "\n"
	}
	_, err := io.WriteString(w, strings.Join(e.List(), sep)+"\n")
	return err
}
