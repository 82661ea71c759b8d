package store_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	embeddedpostgres "github.com/fergusstrange/embedded-postgres"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/gyeh/medcost/internal/db"
	"github.com/gyeh/medcost/internal/model"
	"github.com/gyeh/medcost/internal/store"
)

const (
	testPort     = 15432
	testDB       = "medcosttest"
	testUser     = "postgres"
	testPassword = "postgres"
)

var testDSN string

func TestMain(m *testing.M) {
	if os.Getenv("MEDCOST_PG_TESTS") != "1" {
		fmt.Fprintln(os.Stderr, "SKIP: set MEDCOST_PG_TESTS=1 to run Postgres tests")
		os.Exit(0)
	}

	testDSN = fmt.Sprintf("postgresql://%s:%s@localhost:%d/%s?sslmode=disable",
		testUser, testPassword, testPort, testDB)

	runtimeDir, err := os.MkdirTemp("", "medcost-store-pg")
	if err != nil {
		fmt.Fprintf(os.Stderr, "runtime dir: %v\n", err)
		os.Exit(1)
	}

	pg := embeddedpostgres.NewDatabase(
		embeddedpostgres.DefaultConfig().
			RuntimePath(runtimeDir).
			Port(uint32(testPort)).
			Database(testDB).
			Username(testUser).
			Password(testPassword).
			Version(embeddedpostgres.V16).
			StartTimeout(30*time.Second),
	)
	if err := pg.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to start embedded postgres: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()

	if err := pg.Stop(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to stop embedded postgres: %v\n", err)
	}
	os.RemoveAll(runtimeDir)
	os.Exit(code)
}

// setupDB connects, drops the medcost schema and re-applies migrations.
func setupDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	pool, err := db.NewPool(ctx, testDSN)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	if _, err := pool.Exec(ctx, "DROP SCHEMA IF EXISTS medcost CASCADE"); err != nil {
		pool.Close()
		t.Fatalf("drop schema: %v", err)
	}
	if err := db.ApplyMigrations(ctx, pool, zerolog.Nop()); err != nil {
		pool.Close()
		t.Fatalf("migrations: %v", err)
	}
	t.Cleanup(pool.Close)
	return pool
}

func sampleTable() *model.Table {
	return model.NewTable([]model.Record{
		{ID: 1, Age: 19, Sex: "female", BMI: 27.9, Children: 0, Smoker: "yes", Region: "southwest", Charges: 16884.92},
		{ID: 2, Age: 18, Sex: "male", BMI: 33.77, Children: 1, Smoker: "no", Region: "southeast", Charges: 1725.55},
		{ID: 3, Age: 28, Sex: "male", BMI: 33.0, Children: 3, Smoker: "no", Region: "southeast", Charges: 4449.46},
	})
}

func TestSave(t *testing.T) {
	pool := setupDB(t)
	ctx := context.Background()

	runID := uuid.New()
	tbl := sampleTable()
	summary := model.RunSummary{
		RunID:    runID.String(),
		Schema:   "MedCost",
		FilePath: "insurance.csv",
		FileSHA:  "abc123",
		RowsIn:   3,
		RowsOut:  3,
		Duration: 12 * time.Millisecond,
	}

	if err := store.Save(ctx, pool, zerolog.Nop(), summary, tbl); err != nil {
		t.Fatalf("Save: %v", err)
	}

	t.Run("record_count", func(t *testing.T) {
		n, err := store.CountRecords(ctx, pool, runID)
		if err != nil {
			t.Fatalf("CountRecords: %v", err)
		}
		if n != 3 {
			t.Errorf("records: got %d, want 3", n)
		}
	})

	t.Run("run_row", func(t *testing.T) {
		var schemaName, source, sha string
		var rowsIn, rowsOut, durMS int64
		err := pool.QueryRow(ctx,
			"SELECT schema_name, source_file, source_sha, rows_in, rows_out, duration_ms FROM medcost.validation_runs WHERE run_id = $1",
			runID).Scan(&schemaName, &source, &sha, &rowsIn, &rowsOut, &durMS)
		if err != nil {
			t.Fatalf("query run: %v", err)
		}
		if schemaName != "MedCost" || source != "insurance.csv" || sha != "abc123" {
			t.Errorf("run: got (%s, %s, %s)", schemaName, source, sha)
		}
		if rowsIn != 3 || rowsOut != 3 || durMS != 12 {
			t.Errorf("counts: in=%d out=%d duration_ms=%d", rowsIn, rowsOut, durMS)
		}
	})

	t.Run("values_round_trip", func(t *testing.T) {
		var r model.Record
		err := pool.QueryRow(ctx,
			"SELECT id, age, sex, bmi, children, smoker, region, charges FROM medcost.records WHERE run_id = $1 AND id = 1",
			runID).Scan(&r.ID, &r.Age, &r.Sex, &r.BMI, &r.Children, &r.Smoker, &r.Region, &r.Charges)
		if err != nil {
			t.Fatalf("query record: %v", err)
		}
		want := tbl.Records[0]
		if r.Age != want.Age || r.Sex != want.Sex || r.BMI != want.BMI || r.Charges != want.Charges {
			t.Errorf("record: got %+v, want %+v", r, want)
		}
	})
}

func TestSave_DuplicateRunRollsBack(t *testing.T) {
	pool := setupDB(t)
	ctx := context.Background()

	summary := model.RunSummary{RunID: uuid.NewString(), Schema: "MedCost", FilePath: "a.csv", RowsIn: 3, RowsOut: 3}
	if err := store.Save(ctx, pool, zerolog.Nop(), summary, sampleTable()); err != nil {
		t.Fatalf("first Save: %v", err)
	}
	if err := store.Save(ctx, pool, zerolog.Nop(), summary, sampleTable()); err == nil {
		t.Fatal("expected duplicate run id to fail")
	}

	var runs int
	if err := pool.QueryRow(ctx, "SELECT count(*) FROM medcost.validation_runs").Scan(&runs); err != nil {
		t.Fatalf("count runs: %v", err)
	}
	if runs != 1 {
		t.Errorf("runs: got %d, want 1", runs)
	}
}

func TestSave_InvalidRunID(t *testing.T) {
	pool := setupDB(t)
	summary := model.RunSummary{RunID: "not-a-uuid", Schema: "MedCost"}
	if err := store.Save(context.Background(), pool, zerolog.Nop(), summary, sampleTable()); err == nil {
		t.Fatal("expected invalid run id to fail")
	}
}

func TestDeleteRun(t *testing.T) {
	pool := setupDB(t)
	ctx := context.Background()

	runID := uuid.New()
	summary := model.RunSummary{RunID: runID.String(), Schema: "MedCost", FilePath: "a.csv", RowsIn: 3, RowsOut: 3}
	if err := store.Save(ctx, pool, zerolog.Nop(), summary, sampleTable()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.DeleteRun(ctx, pool, zerolog.Nop(), runID); err != nil {
		t.Fatalf("DeleteRun: %v", err)
	}

	n, err := store.CountRecords(ctx, pool, runID)
	if err != nil {
		t.Fatalf("CountRecords: %v", err)
	}
	if n != 0 {
		t.Errorf("records after delete: got %d, want 0", n)
	}
}

func TestApplyMigrations_Idempotent(t *testing.T) {
	pool := setupDB(t)
	if err := db.ApplyMigrations(context.Background(), pool, zerolog.Nop()); err != nil {
		t.Fatalf("second ApplyMigrations: %v", err)
	}
}
