package ingest

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gyeh/medcost/internal/model"
	"github.com/gyeh/medcost/internal/schema"
	"github.com/gyeh/medcost/internal/tableio"
	"github.com/gyeh/medcost/internal/validate"
)

// Outcome is the result of validating one table against one schema.
type Outcome struct {
	Summary model.RunSummary
	Result  *validate.Result // nil when validation failed
	Err     error            // *validate.Error when validation failed
}

// Passed reports whether the schema accepted the table.
func (o *Outcome) Passed() bool { return o.Err == nil }

// Check validates t against each named schema. The schema's population
// selector is applied first, so FemaleMedCost only sees female rows.
// Violations are reported per outcome; the returned error is reserved for
// unknown schema names.
func Check(log zerolog.Logger, filePath string, t *model.Table, schemas []string) ([]Outcome, error) {
	outcomes := make([]Outcome, 0, len(schemas))
	for _, name := range schemas {
		s, ok := schema.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("unknown schema %q", name)
		}

		input := t.Filter(schema.Population(name))
		runID := uuid.New()
		slog := log.With().Str("run_id", runID.String()).Logger()
		slog.Info().
			Str("schema", name).
			Int("rows", input.Len()).
			Int("population_excluded", t.Len()-input.Len()).
			Msg("validating")

		res, err := validate.Evaluate(slog, s, input)
		o := Outcome{
			Summary: model.RunSummary{
				RunID:    runID.String(),
				Schema:   name,
				FilePath: filePath,
				RowsIn:   int64(input.Len()),
				Passed:   err == nil,
			},
			Result: res,
			Err:    err,
		}
		if res != nil {
			o.Summary.RowsOut = int64(res.Table.Len())
			o.Summary.RowsDrop = int64(len(res.Dropped))
			o.Summary.Duration = res.Duration
		}
		o.Summary.Violations = len(validate.Violations(err))
		outcomes = append(outcomes, o)
	}
	return outcomes, nil
}

// CheckFile loads the table at path and validates it against each schema.
func CheckFile(log zerolog.Logger, path, format string, schemas []string) ([]Outcome, error) {
	t, err := tableio.Load(path, format)
	if err != nil {
		return nil, &PipelineError{Phase: "load", Err: err}
	}
	log.Info().Str("file", path).Int("rows", t.Len()).Msg("table loaded")

	sha, err := tableio.FileHash(path)
	if err != nil {
		return nil, &PipelineError{Phase: "load", Err: err}
	}

	outcomes, err := Check(log, path, t, schemas)
	if err != nil {
		return nil, &PipelineError{Phase: "validate", Err: err}
	}
	for i := range outcomes {
		outcomes[i].Summary.FileSHA = sha
	}
	return outcomes, nil
}
