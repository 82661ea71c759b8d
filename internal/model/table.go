package model

import "strconv"

// Table is an ordered sequence of Records. It is not required to be sorted.
type Table struct {
	Records []Record
}

// NewTable returns a Table holding a copy of records.
func NewTable(records []Record) *Table {
	t := &Table{Records: make([]Record, len(records))}
	for i, r := range records {
		t.Records[i] = r.clone()
	}
	return t
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Records)
}

// InvalidCell stands in for a cell whose source text did not parse as the
// column's type.
type InvalidCell struct {
	Raw string
}

func (c InvalidCell) String() string { return strconv.Quote(c.Raw) }

// Column returns the values of column for every row, in row order.
// Missing cells are returned as nil and invalid cells as InvalidCell.
func (t *Table) Column(name string) []any {
	out := make([]any, t.Len())
	for i := range t.Records {
		if raw, bad := t.Records[i].Invalid[name]; bad {
			out[i] = InvalidCell{Raw: raw}
			continue
		}
		if v, ok := t.Records[i].Value(name); ok {
			out[i] = v
		}
	}
	return out
}

// Select returns a new Table holding the rows at the given positions, in order.
func (t *Table) Select(indices []int) *Table {
	out := &Table{Records: make([]Record, 0, len(indices))}
	for _, i := range indices {
		out.Records = append(out.Records, t.Records[i].clone())
	}
	return out
}

// Filter returns a new Table holding the rows for which keep returns true.
func (t *Table) Filter(keep func(Record) bool) *Table {
	out := &Table{}
	for _, r := range t.Records {
		if keep(r) {
			out.Records = append(out.Records, r.clone())
		}
	}
	return out
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	return NewTable(t.Records)
}
