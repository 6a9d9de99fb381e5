// Package loader decodes row data for the CLI.
package loader

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/bjaus/gridfmt"
)

// ErrEmptyInput is returned when the input holds no data.
var ErrEmptyInput = errors.New("empty input")

// Load reads rows from r. Accepted shapes:
//
//   - a JSON or YAML sequence of mappings
//   - a single JSON or YAML mapping (one row)
//   - newline-delimited JSON objects
//   - multi-document YAML, one mapping per document
func Load(r io.Reader) ([]gridfmt.Row, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, ErrEmptyInput
	}
	if isLikelyNDJSON(data) {
		return loadNDJSON(data)
	}
	return loadYAML(data)
}

func loadYAML(data []byte) ([]gridfmt.Row, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	var docs []any
	for {
		var doc any
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode input: %w", err)
		}
		docs = append(docs, doc)
	}

	var rows []gridfmt.Row
	for _, doc := range docs {
		switch d := doc.(type) {
		case []any:
			for _, item := range d {
				row, err := toRow(item, len(rows))
				if err != nil {
					return nil, err
				}
				rows = append(rows, row)
			}
		case nil:
			continue
		default:
			row, err := toRow(d, len(rows))
			if err != nil {
				return nil, err
			}
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func loadNDJSON(data []byte) ([]gridfmt.Row, error) {
	var rows []gridfmt.Row
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		dec := json.NewDecoder(strings.NewReader(line))
		dec.UseNumber()
		var v any
		if err := dec.Decode(&v); err != nil {
			return nil, fmt.Errorf("decode line %d: %w", len(rows)+1, err)
		}
		row, err := toRow(normalizeNumbers(v), len(rows))
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return rows, nil
}

// isLikelyNDJSON reports whether every non-blank line is a JSON object and
// there is more than one of them.
func isLikelyNDJSON(data []byte) bool {
	lines := strings.Split(string(data), "\n")
	objects := 0
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, "{") || !strings.HasSuffix(line, "}") || !json.Valid([]byte(line)) {
			return false
		}
		objects++
	}
	return objects > 1
}

// normalizeNumbers turns json.Number into int when integral, float64
// otherwise, so JSON rows match the number kinds YAML produces.
func normalizeNumbers(v any) any {
	switch x := v.(type) {
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return int(i)
		}
		f, _ := x.Float64()
		return f
	case map[string]any:
		for k, e := range x {
			x[k] = normalizeNumbers(e)
		}
		return x
	case []any:
		for i, e := range x {
			x[i] = normalizeNumbers(e)
		}
		return x
	default:
		return v
	}
}

func toRow(v any, index int) (gridfmt.Row, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("row %d: want a mapping, got %T", index, v)
	}
	return gridfmt.Row(m), nil
}
