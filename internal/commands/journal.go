package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/siklus/internal/auditlog"
	"github.com/cleared-dev/siklus/internal/journal"
	"github.com/cleared-dev/siklus/internal/model"
	"github.com/cleared-dev/siklus/internal/render"
)

// parseDate parses a YYYY-MM-DD flag value. Empty means today.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		s = time.Now().Format(model.DateFormat)
	}
	d, err := time.Parse(model.DateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", s)
	}
	return d, nil
}

func parseAmount(flag, s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, fmt.Errorf("--%s is required", flag)
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid --%s %q: %w", flag, s, err)
	}
	return d, nil
}

func journalTitle(kind journal.Kind) string {
	if kind == journal.Adjusting {
		return "Jurnal Penyesuaian"
	}
	return "Jurnal Umum"
}

func newJournalListCommand(opts *rootOptions, kind journal.Kind) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: fmt.Sprintf("Print the %s journal", kind),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
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
			f, err := a.formatter()
			if err != nil {
				return err
			}

			j := u.Journal
			if kind == journal.Adjusting {
				j = u.Adjustments
			}
			return render.Journal(cmd.OutOrStdout(), journalTitle(kind), j, f)
		},
	}
}

func newJournalDeleteCommand(opts *rootOptions, kind journal.Kind) *cobra.Command {
	var entryID string
	action := auditlog.ActionDeleteRow
	if kind == journal.Adjusting {
		action = auditlog.ActionDeleteAdjustment
	}

	cmd := &cobra.Command{
		Use:   "delete [row]",
		Short: fmt.Sprintf("Delete one row or one whole entry from the %s journal", kind),
		Long: "Delete a single row by the 0-based number shown by list, or every row\n" +
			"of an entry with --entry. Deleting a single row leaves its counterpart.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch {
			case len(args) == 0 && entryID == "":
				return errors.New("give a row number or --entry")
			case len(args) > 0 && entryID != "":
				return errors.New("give either a row number or --entry, not both")
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
			svc := a.journals()

			if entryID != "" {
				out, removed, err := svc.DeleteEntry(u, kind, entryID)
				if err != nil {
					return err
				}
				act := action
				if kind == journal.Primary {
					act = auditlog.ActionDeleteEntry
				}
				details := fmt.Sprintf("deleted %d rows of %s", len(removed), entryID)
				if err := a.persist(ctx, out, act, details, entryID); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted entry %s (%d rows)\n", entryID, len(removed))
				return nil
			}

			idx, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid row %q: %w", args[0], err)
			}
			out, removed, err := svc.DeleteRow(u, kind, idx)
			if err != nil {
				return err
			}
			details := fmt.Sprintf("deleted row %d (%s %s)", idx, removed.Account, removed.NetMovement().StringFixed(2))
			if err := a.persist(ctx, out, action, details, removed.EntryID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted row %d (%s)\n", idx, removed.Account)
			return nil
		},
	}

	cmd.Flags().StringVar(&entryID, "entry", "", "entry ID to delete, e.g. 2024-01-001")
	return cmd
}
