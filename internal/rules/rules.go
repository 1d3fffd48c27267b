// Package rules compiles user-supplied CEL expressions that decide how the
// split controller treats a collapsing column.
package rules

import (
	"fmt"

	"github.com/google/cel-go/cel"
	celext "github.com/google/cel-go/ext"
)

// Facts are the variables a rule can reference.
type Facts struct {
	// Column is "secondary" or "detail".
	Column         string
	Width          float64
	Columns        int
	MaxColumns     int
	AuxiliaryTitle string
	PrimaryTitle   string
}

func (f Facts) activation() map[string]any {
	return map[string]any{
		"column":          f.Column,
		"width":           f.Width,
		"columns":         int64(f.Columns),
		"max_columns":     int64(f.MaxColumns),
		"auxiliary_title": f.AuxiliaryTitle,
		"primary_title":   f.PrimaryTitle,
	}
}

// Config holds the rule sources. An empty expression disables its rule.
type Config struct {
	CollapseInPlace string
}

// Engine evaluates compiled rules.
type Engine struct {
	collapseInPlace cel.Program
}

func newEnv() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable("column", cel.StringType),
		cel.Variable("width", cel.DoubleType),
		cel.Variable("columns", cel.IntType),
		cel.Variable("max_columns", cel.IntType),
		cel.Variable("auxiliary_title", cel.StringType),
		cel.Variable("primary_title", cel.StringType),
		celext.Strings(),
		celext.Math(),
	)
}

// Compile type-checks every configured rule. Rules must yield a bool.
func Compile(cfg Config) (*Engine, error) {
	env, err := newEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}
	e := &Engine{}
	if e.collapseInPlace, err = compileBool(env, cfg.CollapseInPlace); err != nil {
		return nil, fmt.Errorf("collapse_in_place: %w", err)
	}
	return e, nil
}

func compileBool(env *cel.Env, expr string) (cel.Program, error) {
	if expr == "" {
		return nil, nil
	}
	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compilation error: %w", issues.Err())
	}
	if !ast.OutputType().IsExactType(cel.BoolType) {
		return nil, fmt.Errorf("expression must evaluate to bool, got %s", ast.OutputType())
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program error: %w", err)
	}
	return prg, nil
}

// HasCollapseInPlace reports whether the collapse rule is configured.
func (e *Engine) HasCollapseInPlace() bool {
	return e != nil && e.collapseInPlace != nil
}

// CollapseInPlace evaluates the collapse rule. An unconfigured rule is false.
func (e *Engine) CollapseInPlace(f Facts) (bool, error) {
	if !e.HasCollapseInPlace() {
		return false, nil
	}
	return evalBool(e.collapseInPlace, f)
}

func evalBool(prg cel.Program, f Facts) (bool, error) {
	out, _, err := prg.Eval(f.activation())
	if err != nil {
		return false, fmt.Errorf("eval error: %w", err)
	}
	b, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("eval error: expected bool, got %T", out.Value())
	}
	return b, nil
}
