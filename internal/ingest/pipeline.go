// Package ingest runs the load, validate and store phases over one input file.
package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/gyeh/medcost/internal/config"
	"github.com/gyeh/medcost/internal/store"
)

// PipelineError wraps an error with the phase where it occurred.
type PipelineError struct {
	Phase string
	Err   error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("%s: %s", e.Phase, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// Run executes the load pipeline: load → validate → store. Only outcomes
// that pass validation are stored; the first failing schema aborts the run
// with a "validate" PipelineError wrapping its *validate.Error.
func Run(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, cfg *config.Config) ([]Outcome, error) {
	totalStart := time.Now()

	// Phases 1-2: load and validate
	outcomes, err := CheckFile(log, cfg.FilePath, cfg.Format, cfg.Schemas)
	if err != nil {
		return nil, err
	}
	for _, o := range outcomes {
		if !o.Passed() {
			return outcomes, &PipelineError{Phase: "validate", Err: o.Err}
		}
	}

	// Phase 3: store
	for _, o := range outcomes {
		log.Info().Str("schema", o.Summary.Schema).Msg("storing validated table")
		if err := store.Save(ctx, pool, log, o.Summary, o.Result.Table); err != nil {
			return outcomes, &PipelineError{Phase: "store", Err: err}
		}
	}

	log.Info().
		Int("schemas", len(outcomes)).
		Str("total_duration", time.Since(totalStart).String()).
		Msg("load pipeline complete")

	return outcomes, nil
}
