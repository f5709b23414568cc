package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/siklus/internal/auditlog"
	"github.com/cleared-dev/siklus/internal/cycle"
	"github.com/cleared-dev/siklus/internal/export"
	"github.com/cleared-dev/siklus/internal/render"
	"github.com/cleared-dev/siklus/internal/statement"
)

// statementFlags are the period inputs the journals cannot supply.
type statementFlags struct {
	beginningEquity string
	withdrawals     string
}

func (s *statementFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&s.beginningEquity, "beginning-equity", "0", "owner's equity at the start of the period")
	cmd.Flags().StringVar(&s.withdrawals, "withdrawals", "0", "owner withdrawals during the period")
}

func (s *statementFlags) inputs() (statement.Inputs, error) {
	be, err := parseAmount("beginning-equity", s.beginningEquity)
	if err != nil {
		return statement.Inputs{}, err
	}
	wd, err := parseAmount("withdrawals", s.withdrawals)
	if err != nil {
		return statement.Inputs{}, err
	}
	return statement.Inputs{BeginningEquity: be, Withdrawals: wd}, nil
}

// runCycle derives every report for the logged-in user.
func (a *app) runCycle(ctx context.Context, in statement.Inputs) (*cycle.Report, error) {
	u, err := a.currentUser(ctx)
	if err != nil {
		return nil, err
	}
	return cycle.Run(u, cycle.OptionsFromConfig(a.cfg, a.accounts, in)), nil
}

var stageTitles = map[cycle.Stage]string{
	cycle.Unadjusted: "Sebelum Penyesuaian",
	cycle.Adjusted:   "Setelah Penyesuaian",
	cycle.Closed:     "Setelah Penutupan",
}

func newLedgerCommand(opts *rootOptions) *cobra.Command {
	var stage string

	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Print the general ledger with running balances",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := cycle.ParseStage(stage)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			a, err := openApp(ctx, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			f, err := a.formatter()
			if err != nil {
				return err
			}
			r, err := a.runCycle(ctx, statement.Inputs{})
			if err != nil {
				return err
			}
			return render.Ledger(cmd.OutOrStdout(), "Buku Besar "+stageTitles[st], r.Ledger(st), f)
		},
	}

	cmd.Flags().StringVar(&stage, "stage", string(cycle.Adjusted), "unadjusted, adjusted or closed")
	return cmd
}

func newTrialBalanceCommand(opts *rootOptions) *cobra.Command {
	var stage string

	cmd := &cobra.Command{
		Use:   "trial-balance",
		Short: "Print the trial balance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := cycle.ParseStage(stage)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			a, err := openApp(ctx, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			f, err := a.formatter()
			if err != nil {
				return err
			}
			r, err := a.runCycle(ctx, statement.Inputs{})
			if err != nil {
				return err
			}
			return render.TrialBalance(cmd.OutOrStdout(), "Neraca Saldo "+stageTitles[st], r.TrialBalance(st), f)
		},
	}

	cmd.Flags().StringVar(&stage, "stage", string(cycle.Adjusted), "unadjusted, adjusted or closed")
	return cmd
}

func newReportCommand(opts *rootOptions) *cobra.Command {
	var sf statementFlags

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the income statement, equity statement and balance sheet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, err := sf.inputs()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			a, err := openApp(ctx, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			f, err := a.formatter()
			if err != nil {
				return err
			}
			r, err := a.runCycle(ctx, in)
			if err != nil {
				return err
			}

			title := "Laporan Keuangan"
			if a.cfg.Business.Name != "" {
				title += " " + a.cfg.Business.Name
			}
			return render.Statements(cmd.OutOrStdout(), title, r.Statements, f)
		},
	}

	sf.bind(cmd)
	return cmd
}

func newExportCommand(opts *rootOptions) *cobra.Command {
	var sf statementFlags
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every report to an xlsx workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, err := sf.inputs()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			a, err := openApp(ctx, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			r, err := a.runCycle(ctx, in)
			if err != nil {
				return err
			}

			path := out
			if path == "" {
				path = filepath.Join(a.root, a.cfg.Export.FileName)
			}
			if err := writeWorkbook(path, r); err != nil {
				return err
			}

			user, _ := a.session.Current()
			if err := a.audit(user, auditlog.ActionExport, "wrote "+filepath.Base(path), "", ""); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}

	sf.bind(cmd)
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default <workspace>/<export.file_name>)")
	return cmd
}

func writeWorkbook(path string, r *cycle.Report) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("closing %s: %w", path, cerr)
		}
	}()
	return export.Write(f, r)
}
