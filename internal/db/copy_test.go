package db

import (
	"testing"

	"github.com/google/uuid"

	"github.com/gyeh/medcost/internal/model"
)

func TestRecordSource(t *testing.T) {
	runID := uuid.New()
	tbl := model.NewTable([]model.Record{
		{ID: 1, Age: 19, Sex: "female", BMI: 27.9, Smoker: "yes", Region: "southwest", Charges: 16884.92},
		{ID: 2, Age: 18, Sex: "male", BMI: 33.77, Children: 1, Smoker: "no", Region: "southeast", Charges: 1725.55},
	})

	src := NewRecordSource(runID, tbl)
	var rows [][]any
	for src.Next() {
		vals, err := src.Values()
		if err != nil {
			t.Fatalf("Values: %v", err)
		}
		rows = append(rows, vals)
	}
	if src.Err() != nil {
		t.Fatalf("Err: %v", src.Err())
	}

	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if len(rows[0]) != len(RecordColumns()) {
		t.Errorf("values/columns mismatch: %d vs %d", len(rows[0]), len(RecordColumns()))
	}
	if rows[0][0] != runID {
		t.Errorf("run id: got %v", rows[0][0])
	}
	if rows[1][1] != int64(2) || rows[1][6] != "no" {
		t.Errorf("unexpected second row: %v", rows[1])
	}
}

func TestMigrationNames(t *testing.T) {
	names, err := MigrationNames()
	if err != nil {
		t.Fatalf("MigrationNames: %v", err)
	}
	if len(names) == 0 || names[0] != "001_medcost.sql" {
		t.Errorf("unexpected migrations: %v", names)
	}
}
