package ingest

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/gyeh/medcost/internal/model"
	"github.com/gyeh/medcost/internal/schema"
	"github.com/gyeh/medcost/internal/tableio"
	"github.com/gyeh/medcost/internal/validate"
)

func rec(id int64, sex, smoker string, children int64, charges float64) model.Record {
	return model.Record{
		ID: id, Age: 30, Sex: sex, BMI: 25, Children: children,
		Smoker: smoker, Region: "northeast", Charges: charges,
	}
}

func TestCheck_AppliesPopulation(t *testing.T) {
	tbl := model.NewTable([]model.Record{
		rec(1, "female", "no", 0, 3000),
		rec(2, "male", "no", 0, 9000),
		rec(3, "female", "no", 0, 9000), // over 0*1000+5000
	})

	outcomes, err := Check(zerolog.Nop(), "in.csv", tbl, []string{schema.NameFemaleMedCost})
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	o := outcomes[0]
	if !o.Passed() {
		t.Fatalf("expected pass, got %v", o.Err)
	}
	if o.Summary.RowsIn != 2 {
		t.Errorf("RowsIn: got %d, want 2 (female rows only)", o.Summary.RowsIn)
	}
	if o.Summary.RowsOut != 1 || o.Summary.RowsDrop != 1 {
		t.Errorf("out/drop: got %d/%d, want 1/1", o.Summary.RowsOut, o.Summary.RowsDrop)
	}
	if o.Result.Table.Records[0].ID != 1 {
		t.Errorf("kept row: got Id %d, want 1", o.Result.Table.Records[0].ID)
	}
	if tbl.Len() != 3 {
		t.Errorf("input table modified: %d rows", tbl.Len())
	}
}

func TestCheck_CollectsFailures(t *testing.T) {
	tbl := model.NewTable([]model.Record{
		rec(1, "female", "no", 0, 1000),
		rec(2, "male", "no", 0, 1000),
	})

	outcomes, err := Check(zerolog.Nop(), "in.csv", tbl, []string{schema.NameMedCost, schema.NameSmokerMedCost})
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if len(outcomes) != 2 {
		t.Fatalf("outcomes: got %d, want 2", len(outcomes))
	}
	if !outcomes[0].Passed() {
		t.Errorf("MedCost: unexpected failure %v", outcomes[0].Err)
	}
	smoker := outcomes[1]
	if smoker.Passed() {
		t.Fatal("SmokerMedCost: expected failure with no smokers")
	}
	if !validate.IsKind(smoker.Err, validate.KindStatisticalTestUndefined) {
		t.Errorf("SmokerMedCost: got %v", smoker.Err)
	}
	if smoker.Summary.Violations != 1 || smoker.Summary.Passed {
		t.Errorf("summary: %+v", smoker.Summary)
	}
}

func TestCheck_UnknownSchema(t *testing.T) {
	_, err := Check(zerolog.Nop(), "in.csv", model.NewTable(nil), []string{"NoSuchSchema"})
	if err == nil {
		t.Fatal("expected error for unknown schema")
	}
}

func TestCheckFile_LoadError(t *testing.T) {
	_, err := CheckFile(zerolog.Nop(), filepath.Join(t.TempDir(), "missing.csv"), "", []string{schema.NameMedCost})
	var pe *PipelineError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *PipelineError, got %v", err)
	}
	if pe.Phase != "load" {
		t.Errorf("phase: got %q, want load", pe.Phase)
	}
}

func TestCheckFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.parquet")
	tbl := model.NewTable([]model.Record{rec(1, "female", "no", 0, 1000)})
	if err := tableio.Save(path, "", tbl); err != nil {
		t.Fatalf("Save: %v", err)
	}

	outcomes, err := CheckFile(zerolog.Nop(), path, "", []string{schema.NameMedCost})
	if err != nil {
		t.Fatalf("CheckFile: %v", err)
	}
	if !outcomes[0].Passed() || outcomes[0].Summary.FilePath != path {
		t.Errorf("outcome: %+v", outcomes[0].Summary)
	}
}

func TestPipelineError(t *testing.T) {
	inner := errors.New("boom")
	err := &PipelineError{Phase: "store", Err: inner}
	if err.Error() != "store: boom" {
		t.Errorf("Error(): got %q", err.Error())
	}
	if !errors.Is(err, inner) {
		t.Error("Unwrap should expose the inner error")
	}
}
