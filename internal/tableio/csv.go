package tableio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gyeh/medcost/internal/model"
)

// ReadCSV reads a table with a header row. Columns may appear in any order;
// extra columns are ignored. Empty cells are recorded as missing and
// unparseable numeric cells as invalid, rather than failing the read.
func ReadCSV(r io.Reader) (*model.Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("read csv header: empty input")
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	if err := requireColumns(header); err != nil {
		return nil, err
	}

	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}

	t := &model.Table{}
	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv line %d: %w", line, err)
		}
		t.Records = append(t.Records, parseRow(row, idx))
	}
	return t, nil
}

func parseRow(row []string, idx map[string]int) model.Record {
	var r model.Record
	cell := func(col string) (string, bool) {
		pos := idx[strings.ToLower(col)]
		if pos >= len(row) {
			return "", false
		}
		s := strings.TrimSpace(row[pos])
		return s, s != ""
	}
	invalid := func(col, raw string) {
		if r.Invalid == nil {
			r.Invalid = make(map[string]string)
		}
		r.Invalid[col] = raw
	}
	intCell := func(col string, dst *int64) {
		s, ok := cell(col)
		if !ok {
			r.Missing = append(r.Missing, col)
			return
		}
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			invalid(col, s)
			return
		}
		*dst = v
	}
	floatCell := func(col string, dst *float64) {
		s, ok := cell(col)
		if !ok {
			r.Missing = append(r.Missing, col)
			return
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			invalid(col, s)
			return
		}
		*dst = v
	}
	strCell := func(col string, dst *string) {
		s, ok := cell(col)
		if !ok {
			r.Missing = append(r.Missing, col)
			return
		}
		*dst = s
	}

	intCell(model.ColID, &r.ID)
	intCell(model.ColAge, &r.Age)
	strCell(model.ColSex, &r.Sex)
	floatCell(model.ColBMI, &r.BMI)
	intCell(model.ColChildren, &r.Children)
	strCell(model.ColSmoker, &r.Smoker)
	strCell(model.ColRegion, &r.Region)
	floatCell(model.ColCharges, &r.Charges)
	return r
}

// WriteCSV writes t with a header row in canonical column order. Missing
// cells are written empty and invalid cells as their source text.
func WriteCSV(w io.Writer, t *model.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(model.Columns()); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for i := range t.Records {
		r := &t.Records[i]
		row := make([]string, 0, len(model.AllColumns))
		for _, c := range model.AllColumns {
			if raw, bad := r.Invalid[c.Name]; bad {
				row = append(row, raw)
				continue
			}
			v, ok := r.Value(c.Name)
			if !ok {
				row = append(row, "")
				continue
			}
			switch x := v.(type) {
			case int64:
				row = append(row, strconv.FormatInt(x, 10))
			case float64:
				row = append(row, strconv.FormatFloat(x, 'f', -1, 64))
			default:
				row = append(row, fmt.Sprint(x))
			}
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
