package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"storefront/internal/config"
	"storefront/internal/domain"
	"storefront/internal/service"
)

func newTokenCmd() *cobra.Command {
	var (
		email string
		role  string
		ttl   time.Duration
	)
	c := &cobra.Command{
		Use:   "token <user-id>",
		Short: "Mint a back-office access token signed with the configured secret",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r := domain.UserRole(role)
			if r != domain.RoleAdmin && r != domain.RoleStaff {
				return fmt.Errorf("unknown role %q", role)
			}
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			token, err := service.NewAuthService(cfg.JWT).IssueToken(args[0], email, r, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	c.Flags().StringVar(&email, "email", "", "Operator email")
	c.Flags().StringVar(&role, "role", string(domain.RoleStaff), "Role (admin, staff)")
	c.Flags().DurationVar(&ttl, "ttl", time.Hour, "Token lifetime")
	return c
}
