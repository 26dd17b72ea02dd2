package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"systemet/internal/config"
	"systemet/internal/logging"
	"systemet/internal/repository"
)

var (
	dbFlag       string
	logLevelFlag string

	cfg *config.Config
	log *logrus.Logger
)

var rootCmd = &cobra.Command{
	Use:   "systemet",
	Short: "Systemet - browse the Systembolaget catalog",
	Long: `Systemet serves a local Systembolaget product catalog (SQLite) as a
sortable, paginated HTML table and answers quick questions about it.

Examples:
  systemet serve                 # serve the product table on :8080
  systemet generate              # write the table to index.html
  systemet stats                 # show catalog statistics
  systemet search "vodka"        # search for products
  systemet product 12345         # show one product`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbFlag, "db", "", "Path to the product database (default $SYSTEMET_DB_NAME or products.db)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level: debug, info, warn, error")
}

// setup loads configuration, applies flag overrides and builds the logger.
// Flags win over environment values.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load()
	if dbFlag != "" {
		cfg.DatabasePath = dbFlag
	}
	if logLevelFlag != "" {
		cfg.LogLevel = logLevelFlag
	}

	var lerr error
	log, lerr = logging.New(cfg.LogLevel)
	clog := logging.Component(log, "config")
	if lerr != nil {
		clog.WithError(lerr).Warn("unknown log level, using info")
	}
	if err != nil {
		clog.WithError(err).Warn("invalid value, using default")
	}
	return nil
}

func newReader() *repository.ProductReader {
	return repository.NewProductReader(cfg.DatabasePath)
}
