package schema

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/gyeh/medcost/internal/model"
)

// rowEnv declares one typed CEL variable per table column.
var rowEnv = sync.OnceValues(func() (*cel.Env, error) {
	opts := make([]cel.EnvOption, 0, len(model.AllColumns))
	for _, c := range model.AllColumns {
		var t *cel.Type
		switch c.Type {
		case model.TypeInt:
			t = cel.IntType
		case model.TypeFloat:
			t = cel.DoubleType
		default:
			t = cel.StringType
		}
		opts = append(opts, cel.Variable(c.Name, t))
	}
	env, err := cel.NewEnv(opts...)
	if err != nil {
		return nil, fmt.Errorf("create CEL environment: %w", err)
	}
	return env, nil
})

// RowCheck is a per-row predicate written as a CEL expression over the row's
// columns, e.g. `charges <= double(children * 1000 + 5000)`.
type RowCheck struct {
	Name       string
	Expression string
	prg        cel.Program
}

func (c *RowCheck) Key() string { return c.Name }
func (c *RowCheck) Kind() Kind  { return KindRow }

// NewRowCheck compiles and type-checks expression. The expression must
// evaluate to a bool.
func NewRowCheck(name, expression string) (*RowCheck, error) {
	env, err := rowEnv()
	if err != nil {
		return nil, err
	}
	ast, issues := env.Compile(expression)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile row check %s: %w", name, issues.Err())
	}
	if !ast.OutputType().IsExactType(cel.BoolType) {
		return nil, fmt.Errorf("row check %s must return bool, got %s", name, ast.OutputType())
	}
	prg, err := env.Program(ast, cel.CostLimit(100000))
	if err != nil {
		return nil, fmt.Errorf("program for row check %s: %w", name, err)
	}
	return &RowCheck{Name: name, Expression: expression, prg: prg}, nil
}

// MustRowCheck is NewRowCheck for expressions known at compile time.
func MustRowCheck(name, expression string) *RowCheck {
	c, err := NewRowCheck(name, expression)
	if err != nil {
		panic(err)
	}
	return c
}

// Eval evaluates the predicate against r. Missing and invalid cells are left
// out of the activation, so expressions that read them return an error.
func (c *RowCheck) Eval(r *model.Record) (bool, error) {
	out, _, err := c.prg.Eval(r.Values())
	if err != nil {
		return false, fmt.Errorf("evaluate %s: %w", c.Name, err)
	}
	b, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("evaluate %s: non-bool result %v", c.Name, out.Value())
	}
	return b, nil
}
