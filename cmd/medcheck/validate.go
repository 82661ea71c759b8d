package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/gyeh/medcost/internal/exitcode"
	"github.com/gyeh/medcost/internal/ingest"
	"github.com/gyeh/medcost/internal/tableio"
	"github.com/gyeh/medcost/internal/validate"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a table against one or more schemas (no writes to the database)",
	RunE:  runValidate,
}

func init() {
	addInputFlags(validateCmd)
	validateCmd.Flags().StringVar(&cfg.OutputPath, "out", "", "Write the validated (filtered) table here; needs exactly one schema")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	log := setup()

	if err := cfg.Validate(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	outcomes, err := ingest.CheckFile(log, cfg.FilePath, cfg.Format, cfg.Schemas)
	if err != nil {
		log.Error().Err(err).Msg("validation could not run")
		os.Exit(exitcode.LoadError)
	}

	failed := printReport(os.Stdout, cfg.FilePath, outcomes)
	if failed > 0 {
		os.Exit(exitcode.ValidationError)
	}

	if cfg.OutputPath != "" {
		out := outcomes[0].Result.Table
		if err := tableio.Save(cfg.OutputPath, "", out); err != nil {
			log.Error().Err(err).Str("out", cfg.OutputPath).Msg("write output failed")
			os.Exit(exitcode.WriteError)
		}
		log.Info().Str("out", cfg.OutputPath).Int("rows", out.Len()).Msg("validated table written")
	}
	return nil
}

// printReport writes a per-schema report and returns the number of schemas
// that rejected the table.
func printReport(w io.Writer, path string, outcomes []ingest.Outcome) int {
	failed := 0
	fmt.Fprintln(w, "=== medcheck validate ===")
	fmt.Fprintf(w, "File:    %s\n", path)
	if len(outcomes) > 0 && outcomes[0].Summary.FileSHA != "" {
		fmt.Fprintf(w, "SHA-256: %s\n", outcomes[0].Summary.FileSHA)
	}
	for _, o := range outcomes {
		s := o.Summary
		fmt.Fprintln(w)
		if o.Passed() {
			fmt.Fprintf(w, "%-14s PASS  %d rows in, %d out, %d dropped (%s)\n",
				s.Schema, s.RowsIn, s.RowsOut, s.RowsDrop, s.Duration)
			if o.Result.Empty() {
				fmt.Fprintf(w, "%-14s every row was dropped\n", "")
			}
			for _, d := range o.Result.Dropped {
				id := "?"
				if d.HasID {
					id = fmt.Sprint(d.ID)
				}
				fmt.Fprintf(w, "  dropped row %d (Id %s): %v\n", d.Row, id, d.Checks)
			}
			continue
		}
		failed++
		fmt.Fprintf(w, "%-14s FAIL  %d violation(s)\n", s.Schema, s.Violations)
		for _, v := range validate.Violations(o.Err) {
			fmt.Fprintf(w, "  %s\n", v)
			if len(v.FailureCases) > 0 {
				fmt.Fprintf(w, "    failure cases: %v\n", v.FailureCases)
			}
		}
	}
	return failed
}
