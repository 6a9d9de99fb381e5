package config

import (
	"fmt"

	"github.com/go-logr/logr"

	"github.com/bjaus/gridfmt"
	"github.com/bjaus/gridfmt/internal/expr"
)

// Layout is a compiled File.
type Layout struct {
	Title    string
	Caption  string
	Columns  []gridfmt.Column
	GroupBy  string
	Border   gridfmt.BorderStyle
	Numbered bool

	Keys        []gridfmt.Key
	Ascending   bool
	SortOptions []gridfmt.SortOption
}

// Build compiles every expression in f. Expressions that fail at evaluation
// time are logged and yield nil, so a bad row renders an empty cell and a
// failing dynamicType falls back to the static type.
func (f *File) Build(env *expr.Env, log logr.Logger) (*Layout, error) {
	l := &Layout{
		Title:     f.Title,
		Caption:   f.Caption,
		GroupBy:   f.GroupBy,
		Numbered:  f.Numbered,
		Ascending: !f.Sort.Descending,
	}

	if f.Border != "" {
		b, err := gridfmt.ParseBorderStyle(f.Border)
		if err != nil {
			return nil, err
		}
		l.Border = b
	}

	for i, spec := range f.Columns {
		c, err := buildColumn(env, log.WithValues("column", i), spec)
		if err != nil {
			return nil, fmt.Errorf("column %d: %w", i, err)
		}
		l.Columns = append(l.Columns, c)
	}

	for i, spec := range f.Sort.Keys {
		k, err := buildKey(env, log.WithValues("sortKey", i), spec)
		if err != nil {
			return nil, fmt.Errorf("sort key %d: %w", i, err)
		}
		l.Keys = append(l.Keys, k)
	}

	if f.Sort.Value != "" {
		prg, err := env.Compile(f.Sort.Value)
		if err != nil {
			return nil, fmt.Errorf("sort value: %w", err)
		}
		l.SortOptions = append(l.SortOptions, gridfmt.WithValueFormatter(func(v any) any {
			out, err := prg.Eval(expr.Vars{Value: v})
			if err != nil {
				log.Error(err, "sort value expression failed")
				return nil
			}
			return out
		}))
	}

	if f.Sort.Pin != "" {
		prg, err := env.Compile(f.Sort.Pin)
		if err != nil {
			return nil, fmt.Errorf("sort pin: %w", err)
		}
		pinned := func(r gridfmt.Row) bool {
			ok, err := prg.EvalBool(expr.Vars{Row: r})
			if err != nil {
				log.Error(err, "sort pin expression failed")
				return false
			}
			return ok
		}
		l.SortOptions = append(l.SortOptions, gridfmt.WithTieBreak(func(a, b gridfmt.Row) int {
			pa, pb := pinned(a), pinned(b)
			switch {
			case pa && !pb:
				return -1
			case pb && !pa:
				return 1
			default:
				return 0
			}
		}))
	}

	log.V(1).Info("layout built", "columns", len(l.Columns), "sortKeys", len(l.Keys), "groupBy", l.GroupBy)
	return l, nil
}

func buildColumn(env *expr.Env, log logr.Logger, spec ColumnSpec) (gridfmt.Column, error) {
	c := gridfmt.Column{
		Key:      spec.Key,
		Title:    spec.Title,
		Type:     spec.Type,
		MaxWidth: spec.MaxWidth,
	}

	if spec.DynamicType != "" {
		prg, err := env.Compile(spec.DynamicType)
		if err != nil {
			return c, fmt.Errorf("dynamicType: %w", err)
		}
		c.DynamicType = func(r gridfmt.Row) gridfmt.ColumnType {
			s, err := prg.EvalString(expr.Vars{Row: r, Key: spec.Key})
			if err != nil {
				log.Error(err, "dynamicType expression failed")
				return ""
			}
			if s == "" {
				return ""
			}
			t, err := gridfmt.ParseColumnType(s)
			if err != nil {
				log.Error(err, "dynamicType expression returned an unknown type")
				return ""
			}
			return t
		}
	}

	if spec.Format != "" {
		prg, err := env.Compile(spec.Format)
		if err != nil {
			return c, fmt.Errorf("format: %w", err)
		}
		c.Format = func(r gridfmt.Row, key string) any {
			out, err := prg.Eval(expr.Vars{Row: r, Key: key})
			if err != nil {
				log.Error(err, "format expression failed")
				return nil
			}
			return out
		}
	}

	if spec.Template != "" {
		prg, err := env.Compile(spec.Template)
		if err != nil {
			return c, fmt.Errorf("template: %w", err)
		}
		c.Template = func(r gridfmt.Row) any {
			out, err := prg.Eval(expr.Vars{Row: r, Key: spec.Key})
			if err != nil {
				log.Error(err, "template expression failed")
				return nil
			}
			return out
		}
	}

	return c, c.Validate()
}

func buildKey(env *expr.Env, log logr.Logger, spec KeySpec) (gridfmt.Key, error) {
	switch {
	case spec.Field != "" && spec.Expr != "":
		return nil, fmt.Errorf("set field or expr, not both")
	case spec.Field != "":
		return gridfmt.Field(spec.Field), nil
	case spec.Expr != "":
		prg, err := env.Compile(spec.Expr)
		if err != nil {
			return nil, err
		}
		return gridfmt.By(func(r gridfmt.Row) any {
			out, err := prg.Eval(expr.Vars{Row: r})
			if err != nil {
				log.V(1).Info("sort key expression failed, treating value as missing", "error", err.Error())
				return nil
			}
			return out
		}), nil
	default:
		return nil, fmt.Errorf("empty sort key")
	}
}

// Sort orders rows by the layout's keys. Rows are returned unchanged when
// no keys are configured.
func (l *Layout) Sort(rows []gridfmt.Row) []gridfmt.Row {
	if len(l.Keys) == 0 && len(l.SortOptions) == 0 {
		return rows
	}
	return gridfmt.SortBy(rows, l.Keys, l.Ascending, l.SortOptions...)
}

// Grid assembles a renderable grid over rows.
func (l *Layout) Grid(rows []gridfmt.Row) gridfmt.Grid {
	return gridfmt.Grid{
		Title:    l.Title,
		Caption:  l.Caption,
		Columns:  l.Columns,
		Rows:     rows,
		GroupBy:  l.GroupBy,
		Border:   l.Border,
		Numbered: l.Numbered,
	}
}
