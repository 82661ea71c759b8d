package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/gyeh/medcost/internal/config"
	"github.com/gyeh/medcost/internal/exitcode"
	"github.com/gyeh/medcost/internal/logging"
)

var (
	cfg        config.Config
	configPath string
	envErr     error
)

var rootCmd = &cobra.Command{
	Use:   "medcheck",
	Short: "Declarative validation of medical-cost tables",
	Long: "Validates insurance charge tables (CSV or Parquet) against the MedCost, " +
		"FemaleMedCost and SmokerMedCost schemas and optionally loads the validated rows into Postgres.",
	SilenceUsage: true,
}

func init() {
	var e config.Env
	e, envErr = config.FromEnv()

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfg.DSN, "dsn", e.DSN, "Postgres connection string (or set MEDCOST_DB_URL)")
	pf.StringVar(&cfg.LogFormat, "log-format", e.LogFormat, "Log format: text or json (or set MEDCOST_LOG_FORMAT)")
	pf.BoolVarP(&cfg.Verbose, "verbose", "v", e.Verbose, "Log per-check results")
	pf.StringVar(&configPath, "config", "", "YAML file with schemas, format and output")
}

// addInputFlags registers the flags shared by validate and load.
func addInputFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&cfg.FilePath, "file", "", "Path to CSV or Parquet file (required)")
	f.StringVar(&cfg.Format, "format", "", "Input format: csv or parquet (default: from extension)")
	f.StringArrayVar(&cfg.Schemas, "schema", nil, "Schema to validate against; repeatable (default: all)")
	_ = cmd.MarkFlagRequired("file")
}

// setup builds the logger and merges the optional config file. Config
// errors exit with a usage error.
func setup() zerolog.Logger {
	log := logging.Setup(cfg.LogFormat, cfg.Verbose)
	if envErr != nil {
		log.Error().Err(envErr).Msg("environment failed")
		os.Exit(exitcode.UsageError)
	}
	if configPath != "" {
		if err := cfg.LoadFromFile(configPath); err != nil {
			log.Error().Err(err).Msg("config file failed")
			os.Exit(exitcode.UsageError)
		}
	}
	return log
}
