// Package store persists validated tables and their validation runs.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/gyeh/medcost/internal/db"
	"github.com/gyeh/medcost/internal/model"
	embedsql "github.com/gyeh/medcost/internal/sql"
)

// Save records a validation run and COPY-loads its output table in a single
// transaction.
func Save(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, summary model.RunSummary, t *model.Table) error {
	start := time.Now()

	runID, err := uuid.Parse(summary.RunID)
	if err != nil {
		return fmt.Errorf("parse run id: %w", err)
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, embedsql.InsertRun,
		runID, summary.Schema, summary.FilePath, summary.FileSHA,
		summary.RowsIn, summary.RowsOut, summary.RowsDrop,
		summary.Duration.Milliseconds(),
	); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	n, err := tx.CopyFrom(ctx,
		pgx.Identifier{"medcost", "records"},
		db.RecordColumns(),
		db.NewRecordSource(runID, t),
	)
	if err != nil {
		return fmt.Errorf("copy records: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	dur := time.Since(start)
	log.Info().
		Str("run_id", summary.RunID).
		Int64("rows_copied", n).
		Str("duration", dur.String()).
		Float64("rows_per_sec", float64(n)/dur.Seconds()).
		Msg("records stored")
	return nil
}

// CountRecords returns the number of stored records for a run.
func CountRecords(ctx context.Context, pool *pgxpool.Pool, runID uuid.UUID) (int64, error) {
	var n int64
	if err := pool.QueryRow(ctx, embedsql.CountRecords, runID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count records: %w", err)
	}
	return n, nil
}
