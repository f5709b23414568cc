package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/siklus/internal/buildinfo"
)

// rootOptions are the persistent flags shared by every subcommand.
type rootOptions struct {
	workspace  string
	configPath string
	logLevel   string
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:     "siklus",
		Short:   "Double-entry bookkeeping for a single small business",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&opts.workspace, "workspace", "w", ".", "workspace directory")
	pf.StringVar(&opts.configPath, "config", "", "config file (default <workspace>/siklus.yaml)")
	pf.StringVar(&opts.logLevel, "log-level", "", "log level override (debug, info, warn, error)")

	rootCmd.AddCommand(
		newInitCommand(opts),
		newRegisterCommand(opts),
		newLoginCommand(opts),
		newLogoutCommand(opts),
		newWhoamiCommand(opts),
		newAccountsCommand(opts),
		newTxCommand(opts),
		newAdjustCommand(opts),
		newLedgerCommand(opts),
		newTrialBalanceCommand(opts),
		newReportCommand(opts),
		newExportCommand(opts),
	)

	return rootCmd
}
