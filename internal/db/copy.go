package db

import (
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/gyeh/medcost/internal/model"
)

// RecordColumns returns the ordered column names for COPY into medcost.records.
func RecordColumns() []string {
	return []string{"run_id", "id", "age", "sex", "bmi", "children", "smoker", "region", "charges"}
}

// RecordSource implements pgx.CopyFromSource over the records of a table,
// tagging every row with the run that produced it.
type RecordSource struct {
	runID   uuid.UUID
	records []model.Record
	pos     int
}

// NewRecordSource creates a CopyFromSource over t.
func NewRecordSource(runID uuid.UUID, t *model.Table) *RecordSource {
	return &RecordSource{runID: runID, records: t.Records, pos: -1}
}

// Next advances to the next row. Returns false after the last record.
func (s *RecordSource) Next() bool {
	s.pos++
	return s.pos < len(s.records)
}

// Values returns the current row's values in COPY column order.
func (s *RecordSource) Values() ([]any, error) {
	r := &s.records[s.pos]
	return []any{s.runID, r.ID, r.Age, r.Sex, r.BMI, r.Children, r.Smoker, r.Region, r.Charges}, nil
}

// Err returns any error encountered during iteration.
func (s *RecordSource) Err() error {
	return nil
}

// Compile-time check that RecordSource satisfies the interface.
var _ pgx.CopyFromSource = (*RecordSource)(nil)
