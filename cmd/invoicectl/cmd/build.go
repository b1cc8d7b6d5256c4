package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"storefront/internal/config"
)

func newBuildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "build <order>",
		Short: "Print the computed invoice document as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
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

			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			return encoder.Encode(doc)
		},
	}
}
