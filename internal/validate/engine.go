// Package validate evaluates a schema against a table.
package validate

import (
	"errors"
	"slices"
	"time"

	"github.com/rs/zerolog"

	"github.com/gyeh/medcost/internal/model"
	"github.com/gyeh/medcost/internal/schema"
	"github.com/gyeh/medcost/internal/stats"
)

// DroppedRow records a row removed by a schema with DropInvalidRows.
type DroppedRow struct {
	Row    int
	ID     int64
	HasID  bool
	Checks []string
}

// Result is the outcome of a successful validation.
type Result struct {
	Schema    string
	Table     *model.Table // validated output, filtered in drop mode
	InputRows int
	Dropped   []DroppedRow
	Duration  time.Duration
}

// Empty reports whether every input row was dropped. A table with no input
// rows is not Empty; check InputRows for that.
func (r *Result) Empty() bool {
	return r.InputRows > 0 && r.Table.Len() == 0
}

// Evaluate validates t against s. It never modifies t.
//
// Field checks run first, then row checks, both over every row. Table checks
// run over the rows that passed both. Every violation is collected before
// Evaluate returns; a non-nil error is always an *Error.
func Evaluate(log zerolog.Logger, s *schema.Schema, t *model.Table) (*Result, error) {
	start := time.Now()
	log = log.With().Str("schema", s.Name).Logger()

	n := t.Len()
	failed := make([][]string, n) // failing check keys per row
	var violations []Violation

	for _, c := range s.FieldChecks() {
		values := t.Column(c.Column)
		mask := c.Mask(values)
		v := Violation{Kind: KindSchemaViolation, Check: c.Key(), Column: c.Column}
		for i, ok := range mask {
			if ok {
				continue
			}
			failed[i] = append(failed[i], c.Key())
			v.addRow(t, i, values[i])
		}
		log.Debug().Str("check", c.Key()).Int("failures", len(v.Rows)).Msg("field check evaluated")
		if len(v.Rows) > 0 {
			violations = append(violations, v)
		}
	}

	for _, c := range s.RowChecks() {
		v := Violation{Kind: KindTableCheckViolation, Check: c.Key()}
		for i := range t.Records {
			ok, err := c.Eval(&t.Records[i])
			if err == nil && ok {
				continue
			}
			failed[i] = append(failed[i], c.Key())
			v.addRow(t, i, nil)
		}
		log.Debug().Str("check", c.Key()).Int("failures", len(v.Rows)).Msg("row check evaluated")
		if len(v.Rows) > 0 {
			violations = append(violations, v)
		}
	}

	valid := make([]int, 0, n)
	for i := range n {
		if len(failed[i]) == 0 {
			valid = append(valid, i)
		}
	}
	validTable := t.Select(valid)

	var dropped []DroppedRow
	if s.DropInvalidRows {
		for i := range n {
			if len(failed[i]) == 0 {
				continue
			}
			d := DroppedRow{Row: i, Checks: failed[i]}
			if id, ok := t.Records[i].Value(model.ColID); ok {
				d.ID, d.HasID = id.(int64), true
			}
			dropped = append(dropped, d)
		}
		violations = nil
		if len(dropped) > 0 {
			log.Warn().Int("dropped", len(dropped)).Int("rows", n).Msg("invalid rows dropped")
		}
	}

	for _, c := range s.TableChecks() {
		ok, err := c.Fn(validTable)
		switch {
		case err != nil:
			kind := KindTableCheckViolation
			if errors.Is(err, stats.ErrInsufficientData) {
				kind = KindStatisticalTestUndefined
			}
			violations = append(violations, Violation{Kind: kind, Check: c.Key(), Cause: err})
		case !ok:
			violations = append(violations, Violation{Kind: KindTableCheckViolation, Check: c.Key()})
		}
		log.Debug().Str("check", c.Key()).Bool("passed", err == nil && ok).Msg("table check evaluated")
	}

	dur := time.Since(start)
	if len(violations) > 0 {
		log.Info().
			Int("rows", n).
			Int("violations", len(violations)).
			Str("duration", dur.String()).
			Msg("validation failed")
		return nil, &Error{Schema: s.Name, Violations: violations}
	}

	out := t.Clone()
	if s.DropInvalidRows {
		out = validTable
	}

	log.Info().
		Int("rows_in", n).
		Int("rows_out", out.Len()).
		Int("dropped", len(dropped)).
		Str("duration", dur.String()).
		Msg("validation passed")

	return &Result{
		Schema:    s.Name,
		Table:     out,
		InputRows: n,
		Dropped:   dropped,
		Duration:  dur,
	}, nil
}

func (v *Violation) addRow(t *model.Table, i int, value any) {
	v.Rows = append(v.Rows, i)
	if id, ok := t.Records[i].Value(model.ColID); ok {
		v.IDs = append(v.IDs, id.(int64))
	}
	if value != nil && len(v.FailureCases) < maxFailureCases && !slices.Contains(v.FailureCases, value) {
		v.FailureCases = append(v.FailureCases, value)
	}
}
