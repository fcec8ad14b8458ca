package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iliyamo/medicamp-server/internal/token"
)

// newTokenCmd issues a bearer token without going through POST /jwt. It is
// meant for operators calling admin routes from a shell.
func newTokenCmd() *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Print a bearer token for an email",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := bootstrap()
			if err != nil {
				return err
			}
			raw, err := token.NewService(cfg.JWT.Secret, cfg.JWT.TTL).IssueToken(token.Claims{Email: email})
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), raw)
			return err
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email the token is issued for")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}
