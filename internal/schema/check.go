// Package schema declares the validation rules for medical-cost tables as
// ordered lists of named check descriptors.
package schema

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gyeh/medcost/internal/model"
)

// Kind separates the three check shapes. Field and row checks are
// row-addressable; table checks yield a single verdict for the whole table.
type Kind int

const (
	KindField Kind = iota
	KindRow
	KindTable
)

func (k Kind) String() string {
	switch k {
	case KindField:
		return "field"
	case KindRow:
		return "row"
	case KindTable:
		return "table"
	default:
		return "unknown"
	}
}

// Check is a single named rule in a Schema.
type Check interface {
	// Key identifies the check within a schema. Field checks are keyed by
	// "column:name", row and table checks by name.
	Key() string
	Kind() Kind
}

// FieldCheck is a vectorized check over one column. Mask receives every
// value of the column (nil for missing cells) and returns one verdict per row.
type FieldCheck struct {
	Name   string
	Column string
	Mask   func(values []any) []bool
}

func (c *FieldCheck) Key() string { return c.Column + ":" + c.Name }
func (c *FieldCheck) Kind() Kind  { return KindField }

// TableCheck is an aggregate over the whole table. A non-nil error means the
// check could not be computed.
type TableCheck struct {
	Name string
	Fn   func(t *model.Table) (bool, error)
}

func (c *TableCheck) Key() string { return c.Name }
func (c *TableCheck) Kind() Kind  { return KindTable }

// absent reports whether v carries no typed value: a missing cell (reported
// by NotNull) or an invalid one (reported by Dtype).
func absent(v any) bool {
	_, bad := v.(model.InvalidCell)
	return v == nil || bad
}

// elementwise lifts a per-value predicate into a column mask. Absent cells
// pass.
func elementwise(pred func(v any) bool) func([]any) []bool {
	return func(values []any) []bool {
		out := make([]bool, len(values))
		for i, v := range values {
			out[i] = absent(v) || pred(v)
		}
		return out
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case int:
		return float64(n), true
	}
	return 0, false
}

// NotNull fails every missing cell of column.
func NotNull(column string) *FieldCheck {
	return &FieldCheck{
		Name:   "not_nullable",
		Column: column,
		Mask: func(values []any) []bool {
			out := make([]bool, len(values))
			for i, v := range values {
				out[i] = v != nil
			}
			return out
		},
	}
}

// Dtype fails every cell of column whose source text did not parse as typ.
func Dtype(column string, typ model.ColumnType) *FieldCheck {
	return &FieldCheck{
		Name:   fmt.Sprintf("dtype(%s)", typ),
		Column: column,
		Mask: func(values []any) []bool {
			out := make([]bool, len(values))
			for i, v := range values {
				_, bad := v.(model.InvalidCell)
				out[i] = !bad
			}
			return out
		},
	}
}

// GreaterThan requires values strictly greater than min.
func GreaterThan(column string, min float64) *FieldCheck {
	return &FieldCheck{
		Name:   fmt.Sprintf("greater_than(%g)", min),
		Column: column,
		Mask: elementwise(func(v any) bool {
			f, ok := toFloat(v)
			return ok && f > min
		}),
	}
}

// GreaterOrEqual requires values greater than or equal to min.
func GreaterOrEqual(column string, min float64) *FieldCheck {
	return &FieldCheck{
		Name:   fmt.Sprintf("greater_than_or_equal_to(%g)", min),
		Column: column,
		Mask: elementwise(func(v any) bool {
			f, ok := toFloat(v)
			return ok && f >= min
		}),
	}
}

// LessThan requires values strictly less than max.
func LessThan(column string, max float64) *FieldCheck {
	return &FieldCheck{
		Name:   fmt.Sprintf("less_than(%g)", max),
		Column: column,
		Mask: elementwise(func(v any) bool {
			f, ok := toFloat(v)
			return ok && f < max
		}),
	}
}

// IsIn requires string values to be one of allowed. Matching is exact.
func IsIn(column string, allowed ...string) *FieldCheck {
	return &FieldCheck{
		Name:   "isin([" + strings.Join(allowed, ", ") + "])",
		Column: column,
		Mask: elementwise(func(v any) bool {
			s, ok := v.(string)
			return ok && slices.Contains(allowed, s)
		}),
	}
}

// Unique fails every occurrence of a value that appears more than once.
func Unique(column string) *FieldCheck {
	return &FieldCheck{
		Name:   "field_uniqueness",
		Column: column,
		Mask: func(values []any) []bool {
			counts := make(map[any]int, len(values))
			for _, v := range values {
				if !absent(v) {
					counts[v]++
				}
			}
			out := make([]bool, len(values))
			for i, v := range values {
				out[i] = absent(v) || counts[v] == 1
			}
			return out
		},
	}
}

// FieldFunc builds a custom element-wise check named name.
func FieldFunc(name, column string, pred func(v any) bool) *FieldCheck {
	return &FieldCheck{Name: name, Column: column, Mask: elementwise(pred)}
}
