package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gyeh/medcost/internal/db"
	"github.com/gyeh/medcost/internal/exitcode"
	"github.com/gyeh/medcost/internal/ingest"
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Validate a table and load the validated rows into the database",
	RunE:  runLoad,
}

func init() {
	addInputFlags(loadCmd)
	rootCmd.AddCommand(loadCmd)
}

func runLoad(cmd *cobra.Command, args []string) error {
	log := setup()
	ctx := context.Background()

	if err := cfg.ValidateWithDSN(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	pool, err := db.NewPool(ctx, cfg.DSN)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		os.Exit(exitcode.DBConnError)
	}
	defer pool.Close()

	outcomes, err := ingest.Run(ctx, pool, log, &cfg)
	if err != nil {
		var pe *ingest.PipelineError
		if errors.As(err, &pe) {
			log.Error().Err(pe.Err).Str("phase", pe.Phase).Msg("load failed")
			switch pe.Phase {
			case "load":
				pool.Close()
				os.Exit(exitcode.LoadError)
			case "validate":
				printReport(os.Stdout, cfg.FilePath, outcomes)
				pool.Close()
				os.Exit(exitcode.ValidationError)
			}
		}
		log.Error().Err(err).Msg("load failed")
		pool.Close()
		os.Exit(exitcode.StoreError)
	}

	for _, o := range outcomes {
		fmt.Printf("Load complete: %s run %s, %d rows stored (%d dropped)\n",
			o.Summary.Schema, o.Summary.RunID, o.Summary.RowsOut, o.Summary.RowsDrop)
	}
	return nil
}
