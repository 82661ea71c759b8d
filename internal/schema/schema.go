package schema

import (
	"fmt"
	"slices"
)

// Schema is a named, ordered list of checks plus the policy for rows that
// fail them. Specialized schemas are derived by copying a base schema and
// replacing, adding or removing checks by key; a replaced check never runs
// alongside its replacement.
type Schema struct {
	Name string

	// DropInvalidRows removes rows failing field or row checks from the
	// output instead of reporting them as violations.
	DropInvalidRows bool

	checks []Check
}

// New returns an empty schema. Use Add to populate it.
func New(name string) *Schema {
	return &Schema{Name: name}
}

// Derive returns a copy of s under a new name. Check descriptors are shared;
// they are immutable once built.
func (s *Schema) Derive(name string) *Schema {
	return &Schema{
		Name:            name,
		DropInvalidRows: s.DropInvalidRows,
		checks:          slices.Clone(s.checks),
	}
}

// Checks returns the checks in evaluation order.
func (s *Schema) Checks() []Check {
	return slices.Clone(s.checks)
}

// Keys returns the check keys in evaluation order.
func (s *Schema) Keys() []string {
	keys := make([]string, len(s.checks))
	for i, c := range s.checks {
		keys[i] = c.Key()
	}
	return keys
}

// Check returns the check with the given key.
func (s *Schema) Check(key string) (Check, bool) {
	i := s.index(key)
	if i < 0 {
		return nil, false
	}
	return s.checks[i], true
}

// Add appends c. Keys must be unique within a schema.
func (s *Schema) Add(c Check) error {
	if s.index(c.Key()) >= 0 {
		return fmt.Errorf("schema %s: check %q already defined", s.Name, c.Key())
	}
	s.checks = append(s.checks, c)
	return nil
}

// Replace swaps the check with the given key for c, keeping its position.
func (s *Schema) Replace(key string, c Check) error {
	i := s.index(key)
	if i < 0 {
		return fmt.Errorf("schema %s: no check %q to replace", s.Name, key)
	}
	if c.Key() != key && s.index(c.Key()) >= 0 {
		return fmt.Errorf("schema %s: check %q already defined", s.Name, c.Key())
	}
	s.checks[i] = c
	return nil
}

// Remove deletes the check with the given key.
func (s *Schema) Remove(key string) error {
	i := s.index(key)
	if i < 0 {
		return fmt.Errorf("schema %s: no check %q to remove", s.Name, key)
	}
	s.checks = slices.Delete(s.checks, i, i+1)
	return nil
}

// FieldChecks, RowChecks and TableChecks return the checks of one kind in
// evaluation order.
func (s *Schema) FieldChecks() []*FieldCheck {
	var out []*FieldCheck
	for _, c := range s.checks {
		if fc, ok := c.(*FieldCheck); ok {
			out = append(out, fc)
		}
	}
	return out
}

func (s *Schema) RowChecks() []*RowCheck {
	var out []*RowCheck
	for _, c := range s.checks {
		if rc, ok := c.(*RowCheck); ok {
			out = append(out, rc)
		}
	}
	return out
}

func (s *Schema) TableChecks() []*TableCheck {
	var out []*TableCheck
	for _, c := range s.checks {
		if tc, ok := c.(*TableCheck); ok {
			out = append(out, tc)
		}
	}
	return out
}

func (s *Schema) index(key string) int {
	return slices.IndexFunc(s.checks, func(c Check) bool { return c.Key() == key })
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
