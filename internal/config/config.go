// Package config loads grid layouts from YAML.
//
// A layout names the columns to show, how to sort and group rows, and the
// table decorations. Column callbacks and computed sort keys are CEL
// expressions compiled by package expr.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/bjaus/gridfmt"
)

// File is the YAML form of a layout.
type File struct {
	Title    string       `yaml:"title"`
	Caption  string       `yaml:"caption"`
	GroupBy  string       `yaml:"groupBy"`
	Border   string       `yaml:"border"`
	Numbered bool         `yaml:"numbered"`
	Sort     Sort         `yaml:"sort"`
	Columns  []ColumnSpec `yaml:"columns"`
}

// Sort configures row ordering.
type Sort struct {
	Keys       []KeySpec `yaml:"keys"`
	Descending bool      `yaml:"descending"`
	// Value maps each compared key value. CEL, variable "value".
	Value string `yaml:"value"`
	// Pin puts rows for which it is true ahead of all others. CEL, variable
	// "row".
	Pin string `yaml:"pin"`
}

// KeySpec is one sort key: a field name or a CEL expression. A bare
// scalar is shorthand for a field.
type KeySpec struct {
	Field string `yaml:"field"`
	Expr  string `yaml:"expr"`
}

// UnmarshalYAML accepts either a scalar field name or a mapping.
func (k *KeySpec) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		k.Field = node.Value
		return nil
	}
	type plain KeySpec
	return node.Decode((*plain)(k))
}

// ColumnSpec is the YAML form of a column. DynamicType, Format and
// Template are CEL expressions.
type ColumnSpec struct {
	Key         string             `yaml:"key"`
	Title       string             `yaml:"title"`
	Type        gridfmt.ColumnType `yaml:"type"`
	DynamicType string             `yaml:"dynamicType"`
	Format      string             `yaml:"format"`
	Template    string             `yaml:"template"`
	MaxWidth    int                `yaml:"maxWidth"`
}

// Load decodes a layout. Unknown fields are rejected.
func Load(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var f File
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return &f, nil
		}
		return nil, fmt.Errorf("decode layout: %w", err)
	}
	return &f, nil
}

// LoadFile decodes the layout at path.
func LoadFile(path string) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()
	f, err := Load(fh)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Infer builds a layout showing every field found in rows, in sorted key
// order. Column types come from the first non-nil value of each field.
func Infer(rows []gridfmt.Row) *File {
	types := make(map[string]gridfmt.ColumnType)
	for _, r := range rows {
		for k, v := range r {
			if _, seen := types[k]; seen && types[k] != "" {
				continue
			}
			types[k] = inferType(v)
		}
	}
	keys := make([]string, 0, len(types))
	for k := range types {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	f := &File{Columns: make([]ColumnSpec, len(keys))}
	for i, k := range keys {
		f.Columns[i] = ColumnSpec{Key: k, Type: types[k]}
	}
	return f
}

func inferType(v any) gridfmt.ColumnType {
	switch {
	case v == nil:
		return ""
	case gridfmt.IsNumber(v):
		return gridfmt.Number
	}
	if _, ok := v.(bool); ok {
		return gridfmt.Boolean
	}
	return gridfmt.Text
}
