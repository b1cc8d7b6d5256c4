package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"storefront/internal/config"
	"storefront/internal/domain"
	"storefront/internal/export"
)

func newRenderCmd() *cobra.Command {
	var (
		format string
		outDir string
	)
	c := &cobra.Command{
		Use:   "render <order>",
		Short: "Render the invoice to a PDF, XLSX or CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, ok := domain.ParseExportFormat(format)
			if !ok {
				return fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, format)
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log := newLogger(cfg)

			order, err := loadOrder(cmd.Context(), cfg, args[0])
			if err != nil {
				return err
			}
			builder, err := newBuilder(cfg, log)
			if err != nil {
				return err
			}
			doc, err := builder.Build(order)
			if err != nil {
				return err
			}

			exporter := export.NewExporter(export.Options{
				Brand:   cfg.Invoice.Brand,
				Timeout: cfg.Export.Timeout,
			}, nil, log, nil, export.StandardRenderers(cfg.Invoice.CurrencySymbol, cfg.Export.PDFPageSize)...)

			out := exporter.Export(cmd.Context(), doc, f)
			if !out.OK {
				return fmt.Errorf("%w (%s): %w", domain.ErrExportFailed, out.Reason, out.Err)
			}

			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("creating output dir: %w", err)
			}
			path := filepath.Join(outDir, out.Artifact.Filename)
			if err := os.WriteFile(path, out.Artifact.Data, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", path, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	c.Flags().StringVarP(&format, "format", "f", "pdf", "Output format (pdf, xlsx, csv)")
	c.Flags().StringVarP(&outDir, "output", "o", ".", "Directory to write the file into")
	return c
}
