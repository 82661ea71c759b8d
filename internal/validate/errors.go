package validate

import (
	"errors"
	"fmt"
	"strings"
)

// Kind is a stable category of violation. Callers should branch on Kind and
// Check rather than matching error strings.
type Kind string

const (
	KindSchemaViolation          Kind = "SchemaViolation"
	KindTableCheckViolation      Kind = "TableCheckViolation"
	KindStatisticalTestUndefined Kind = "StatisticalTestUndefined"
)

// maxFailureCases bounds the failure cases kept per violation.
const maxFailureCases = 10

// Violation is one failed check.
type Violation struct {
	Kind   Kind
	Check  string // check key, e.g. "bmi:check_bmi" or "validate_charges"
	Column string // set for field checks

	// Rows are the positions of failing rows in the evaluated table and IDs
	// the matching Id values (skipped where Id is missing). Both are empty for
	// table-level verdicts.
	Rows []int
	IDs  []int64

	// FailureCases holds up to maxFailureCases offending values.
	FailureCases []any

	Cause error
}

func (v Violation) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s", v.Kind, v.Check)
	switch {
	case len(v.Rows) > 0:
		fmt.Fprintf(&b, " failed for %d row(s)", len(v.Rows))
		if len(v.IDs) > 0 {
			fmt.Fprintf(&b, " (Id %s)", formatIDs(v.IDs))
		}
	case v.Cause != nil:
		fmt.Fprintf(&b, ": %v", v.Cause)
	default:
		b.WriteString(" returned false")
	}
	return b.String()
}

func formatIDs(ids []int64) string {
	n := min(len(ids), maxFailureCases)
	parts := make([]string, n)
	for i := range n {
		parts[i] = fmt.Sprint(ids[i])
	}
	s := strings.Join(parts, ", ")
	if len(ids) > n {
		s += fmt.Sprintf(", ... +%d", len(ids)-n)
	}
	return s
}

// Error lists every violation collected while validating a table.
type Error struct {
	Schema     string
	Violations []Violation
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = v.String()
	}
	return fmt.Sprintf("schema %s: %d violation(s): %s", e.Schema, len(e.Violations), strings.Join(parts, "; "))
}

// Violations extracts the violations from err, or nil if err is not
// (or does not wrap) an *Error.
func Violations(err error) []Violation {
	var e *Error
	if !errors.As(err, &e) {
		return nil
	}
	return e.Violations
}

// IsKind reports whether err carries at least one violation of the given kind.
func IsKind(err error, kind Kind) bool {
	for _, v := range Violations(err) {
		if v.Kind == kind {
			return true
		}
	}
	return false
}
