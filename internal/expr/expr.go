// Package expr compiles CEL expressions used by grid layouts.
//
// Expressions see three variables:
//
//   - row: the current row as a map
//   - key: the column key (empty for whole-row columns)
//   - value: the value being compared, for sort value mappings
package expr

import (
	"fmt"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
	"github.com/google/cel-go/common/types/traits"
	celext "github.com/google/cel-go/ext"
)

// Variable names bound during evaluation.
const (
	VarRow   = "row"
	VarKey   = "key"
	VarValue = "value"
)

// Env compiles expressions against the grid variables.
type Env struct {
	env *cel.Env
}

// NewEnv creates an environment with the strings, lists and math extensions.
func NewEnv() (*Env, error) {
	env, err := cel.NewEnv(
		cel.Variable(VarRow, cel.MapType(cel.StringType, cel.DynType)),
		cel.Variable(VarKey, cel.StringType),
		cel.Variable(VarValue, cel.DynType),
		celext.Strings(),
		celext.Lists(),
		celext.Math(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}
	return &Env{env: env}, nil
}

// Program is a compiled expression.
type Program struct {
	src string
	prg cel.Program
}

// Compile parses and type-checks src.
func (e *Env) Compile(src string) (*Program, error) {
	ast, issues := e.env.Compile(src)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile %q: %w", src, issues.Err())
	}
	prg, err := e.env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program %q: %w", src, err)
	}
	return &Program{src: src, prg: prg}, nil
}

// String returns the expression source.
func (p *Program) String() string { return p.src }

// Vars are the values bound for one evaluation.
type Vars struct {
	Row   map[string]any
	Key   string
	Value any
}

// Eval runs the program and converts the result to Go values.
func (p *Program) Eval(v Vars) (any, error) {
	row := v.Row
	if row == nil {
		row = map[string]any{}
	}
	out, _, err := p.prg.Eval(map[string]any{
		VarRow:   row,
		VarKey:   v.Key,
		VarValue: v.Value,
	})
	if err != nil {
		return nil, fmt.Errorf("eval %q: %w", p.src, err)
	}
	return ToGo(out), nil
}

// EvalString runs the program and requires a string result.
func (p *Program) EvalString(v Vars) (string, error) {
	out, err := p.Eval(v)
	if err != nil {
		return "", err
	}
	s, ok := out.(string)
	if !ok {
		return "", fmt.Errorf("eval %q: want string, got %T", p.src, out)
	}
	return s, nil
}

// EvalBool runs the program and requires a bool result.
func (p *Program) EvalBool(v Vars) (bool, error) {
	out, err := p.Eval(v)
	if err != nil {
		return false, err
	}
	b, ok := out.(bool)
	if !ok {
		return false, fmt.Errorf("eval %q: want bool, got %T", p.src, out)
	}
	return b, nil
}

// ToGo converts a CEL value to native Go values, recursing into lists and
// maps.
func ToGo(val ref.Val) any {
	switch v := val.(type) {
	case nil:
		return nil
	case types.Null:
		return nil
	case types.Bool:
		return bool(v)
	case types.Int:
		return int64(v)
	case types.Uint:
		return uint64(v)
	case types.Double:
		return float64(v)
	case types.String:
		return string(v)
	case types.Bytes:
		return []byte(v)
	case types.Timestamp:
		return v.Time
	case types.Duration:
		return v.Duration
	case traits.Mapper:
		out := make(map[string]any)
		it := v.Iterator()
		for it.HasNext() == types.True {
			k := it.Next()
			out[fmt.Sprint(ToGo(k))] = ToGo(v.Get(k))
		}
		return out
	case traits.Lister:
		var out []any
		it := v.Iterator()
		for it.HasNext() == types.True {
			out = append(out, ToGo(it.Next()))
		}
		return out
	}
	return val.Value()
}
