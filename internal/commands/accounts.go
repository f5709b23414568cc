package commands

import (
	"github.com/spf13/cobra"

	"github.com/cleared-dev/siklus/internal/render"
)

func newAccountsCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Inspect the chart of accounts",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the chart of accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer a.Close()
			return render.Accounts(cmd.OutOrStdout(), a.accounts.All())
		},
	})

	return cmd
}
