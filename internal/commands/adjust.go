package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/siklus/internal/auditlog"
	"github.com/cleared-dev/siklus/internal/journal"
)

func newAdjustCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "adjust",
		Short: "Record and manage adjusting entries",
	}
	cmd.AddCommand(
		newAdjustAddCommand(opts),
		newJournalListCommand(opts, journal.Adjusting),
		newJournalDeleteCommand(opts, journal.Adjusting),
	)
	return cmd
}

func newAdjustAddCommand(opts *rootOptions) *cobra.Command {
	var date, debitAccount, creditAccount, amount, memo string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record an adjusting entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := parseDate(date)
			if err != nil {
				return err
			}
			amt, err := parseAmount("amount", amount)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			a, err := openApp(ctx, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			u, err := a.currentUser(ctx)
			if err != nil {
				return err
			}
			out, entryID, err := a.journals().AddAdjustment(u, journal.AdjustmentInput{
				Date:          d,
				DebitAccount:  debitAccount,
				CreditAccount: creditAccount,
				Amount:        amt,
				Memo:          memo,
			})
			if err != nil {
				return err
			}

			details := fmt.Sprintf("%s/%s %s %s", debitAccount, creditAccount, amt.StringFixed(2), memo)
			if err := a.persist(ctx, out, auditlog.ActionAddAdjustment, strings.TrimSpace(details), entryID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Recorded adjustment %s\n", entryID)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&date, "date", "", "entry date YYYY-MM-DD (default today)")
	f.StringVar(&debitAccount, "debit-account", "", "account to debit (required)")
	f.StringVar(&creditAccount, "credit-account", "", "account to credit (required)")
	f.StringVar(&amount, "amount", "", "amount, must be positive (required)")
	f.StringVar(&memo, "memo", "", "description")
	_ = cmd.MarkFlagRequired("debit-account")
	_ = cmd.MarkFlagRequired("credit-account")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}
