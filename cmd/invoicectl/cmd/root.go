package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"storefront/internal/config"
	"storefront/internal/domain"
	"storefront/internal/invoice"
	"storefront/internal/logger"
	"storefront/internal/repository/postgres"
)

var (
	// Global flags
	verbose bool
	fromDB  bool
)

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "invoicectl",
		Short: "Build and render storefront tax invoices offline",
		Long: `invoicectl builds tax invoices from stored order records.

Orders are read from a JSON file holding one order row, or from the
order database with --from-db.

Examples:
  # Print the computed invoice
  invoicectl build order.json

  # Render a PDF into ./out
  invoicectl render order.json -f pdf -o out

  # Spell an amount
  invoicectl words 2180.50`,
		SilenceUsage: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	root.PersistentFlags().BoolVar(&fromDB, "from-db", false, "Treat the argument as an order ID and load it from the database")

	root.AddCommand(newBuildCmd(), newRenderCmd(), newWordsCmd(), newTokenCmd())
	return root
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func newLogger(cfg *config.Config) *logrus.Logger {
	logCfg := cfg.Log
	if !verbose {
		logCfg.Level = "warn"
	}
	return logger.NewWithWriter(logCfg, os.Stderr)
}

func newBuilder(cfg *config.Config, log logrus.FieldLogger) (*invoice.Builder, error) {
	return invoice.NewBuilder(invoice.SettingsFromConfig(&cfg.Invoice), log)
}

// loadOrder reads the order named by arg, either a JSON file or an order ID.
func loadOrder(ctx context.Context, cfg *config.Config, arg string) (*domain.RawOrder, error) {
	if fromDB {
		db, err := postgres.NewDB(ctx, &cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("connecting to database: %w", err)
		}
		defer db.Close()
		return postgres.NewOrderRepo(db).GetByID(ctx, arg)
	}

	data, err := os.ReadFile(arg)
	if err != nil {
		return nil, fmt.Errorf("reading order file: %w", err)
	}
	var order domain.RawOrder
	if err := json.Unmarshal(data, &order); err != nil {
		return nil, fmt.Errorf("decoding order file %s: %w", arg, err)
	}
	return &order, nil
}
