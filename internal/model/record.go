package model

import (
	"maps"
	"slices"
)

// Record is one row of a medical-cost table: a single insured person.
type Record struct {
	ID       int64
	Age      int64
	Sex      string
	BMI      float64
	Children int64
	Smoker   string
	Region   string
	Charges  float64

	// Missing holds the names of columns that were null in the source.
	// Invalid maps columns whose source text did not parse as the column's
	// type to that text. The corresponding field holds its zero value.
	Missing []string
	Invalid map[string]string
}

// IsMissing reports whether column was null in the source.
func (r *Record) IsMissing(column string) bool {
	return slices.Contains(r.Missing, column)
}

// IsInvalid reports whether column held text of the wrong type.
func (r *Record) IsInvalid(column string) bool {
	_, ok := r.Invalid[column]
	return ok
}

// Has reports whether column holds a usable typed value.
func (r *Record) Has(column string) bool {
	return !r.IsMissing(column) && !r.IsInvalid(column)
}

// Value returns the typed value of column (int64, float64 or string).
// ok is false when the column is unknown, missing or invalid for this row.
func (r *Record) Value(column string) (v any, ok bool) {
	if !r.Has(column) {
		return nil, false
	}
	switch column {
	case ColID:
		return r.ID, true
	case ColAge:
		return r.Age, true
	case ColSex:
		return r.Sex, true
	case ColBMI:
		return r.BMI, true
	case ColChildren:
		return r.Children, true
	case ColSmoker:
		return r.Smoker, true
	case ColRegion:
		return r.Region, true
	case ColCharges:
		return r.Charges, true
	}
	return nil, false
}

// Values returns the usable cells of the row keyed by column name.
func (r *Record) Values() map[string]any {
	out := make(map[string]any, len(AllColumns))
	for _, c := range AllColumns {
		if v, ok := r.Value(c.Name); ok {
			out[c.Name] = v
		}
	}
	return out
}

func (r Record) clone() Record {
	r.Missing = slices.Clone(r.Missing)
	r.Invalid = maps.Clone(r.Invalid)
	return r
}
