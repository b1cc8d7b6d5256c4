package cmd

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"storefront/internal/words"
)

func newWordsCmd() *cobra.Command {
	var phrase bool
	c := &cobra.Command{
		Use:   "words <amount>",
		Short: "Spell an amount in Indian-system words",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := decimal.NewFromString(args[0])
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", args[0], err)
			}
			spell := words.ToWords
			if phrase {
				spell = words.Phrase
			}
			text, err := spell(amount)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}
	c.Flags().BoolVar(&phrase, "phrase", false, `Wrap as "Rupees ... Only"`)
	return c
}
