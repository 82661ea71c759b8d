package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	embedsql "github.com/gyeh/medcost/internal/sql"
)

// DeleteRun removes a validation run and, by cascade, its records.
func DeleteRun(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, runID uuid.UUID) error {
	start := time.Now()

	tag, err := pool.Exec(ctx, embedsql.DeleteRun, runID)
	if err != nil {
		return err
	}

	log.Info().
		Str("run_id", runID.String()).
		Int64("runs_deleted", tag.RowsAffected()).
		Dur("duration", time.Since(start)).
		Msg("run deleted")

	return nil
}
