package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cleared-dev/siklus/internal/auditlog"
	"github.com/cleared-dev/siklus/internal/importer"
	"github.com/cleared-dev/siklus/internal/journal"
	"github.com/cleared-dev/siklus/internal/model"
)

func newTxCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tx",
		Short: "Record and manage journal transactions",
	}
	cmd.AddCommand(
		newTxAddCommand(opts),
		newJournalListCommand(opts, journal.Primary),
		newJournalDeleteCommand(opts, journal.Primary),
		newTxImportCommand(opts),
	)
	return cmd
}

func newTxAddCommand(opts *rootOptions) *cobra.Command {
	var date, debitAccount, debitAmount, creditAccount, creditAmount, memo string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a transaction as a debit and a credit line",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := parseDate(date)
			if err != nil {
				return err
			}
			debit, err := parseAmount("debit-amount", debitAmount)
			if err != nil {
				return err
			}
			credit := debit
			if creditAmount != "" {
				if credit, err = parseAmount("credit-amount", creditAmount); err != nil {
					return err
				}
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
			out, entryID, err := a.journals().AddTransaction(u, journal.TransactionInput{
				Date:          d,
				DebitAccount:  debitAccount,
				DebitAmount:   debit,
				CreditAccount: creditAccount,
				CreditAmount:  credit,
				Memo:          memo,
			})
			if err != nil {
				return err
			}

			details := fmt.Sprintf("%s/%s %s %s", debitAccount, creditAccount, debit.StringFixed(2), memo)
			if err := a.persist(ctx, out, auditlog.ActionAddTransaction, strings.TrimSpace(details), entryID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Recorded %s\n", entryID)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&date, "date", "", "transaction date YYYY-MM-DD (default today)")
	f.StringVar(&debitAccount, "debit-account", "", "account to debit (required)")
	f.StringVar(&debitAmount, "debit-amount", "", "debit amount (required)")
	f.StringVar(&creditAccount, "credit-account", "", "account to credit (required)")
	f.StringVar(&creditAmount, "credit-amount", "", "credit amount (default the debit amount)")
	f.StringVar(&memo, "memo", "", "description")
	_ = cmd.MarkFlagRequired("debit-account")
	_ = cmd.MarkFlagRequired("debit-amount")
	_ = cmd.MarkFlagRequired("credit-account")

	return cmd
}

func newTxImportCommand(opts *rootOptions) *cobra.Command {
	var format string
	var adjusting bool

	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import journal lines from CSV",
		Long: "Import every CSV in import/ and move it to import/processed/, or import a\n" +
			"single file. Nothing is saved or moved unless every file imports cleanly.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := openApp(ctx, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			var sources []importSource
			if len(args) > 0 {
				sources = append(sources, importSource{name: filepath.Base(args[0]), path: args[0]})
			} else {
				files, err := importer.Scan(a.root)
				if err != nil {
					return err
				}
				for _, fi := range files {
					sources = append(sources, importSource{name: fi.Name, path: fi.Path, queued: true})
				}
			}
			if len(sources) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing to import")
				return nil
			}

			kind := journal.Primary
			if adjusting {
				kind = journal.Adjusting
			}
			return a.importSources(ctx, cmd.OutOrStdout(), sources, format, kind)
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "input format: journal or legacy (default detect from header)")
	cmd.Flags().BoolVar(&adjusting, "adjusting", false, "import into the adjusting journal")
	return cmd
}

// importSource is one CSV to import. Queued files live in import/ and move
// to import/processed/ once their lines are saved.
type importSource struct {
	name, path string
	queued     bool
}

// importSources parses every source into the logged-in user's journal and
// saves the result. Queued files are moved only after the save; if a move
// fails the earlier moves and the save are undone.
func (a *app) importSources(ctx context.Context, w io.Writer, sources []importSource, format string, kind journal.Kind) error {
	before, err := a.currentUser(ctx)
	if err != nil {
		return err
	}

	reg := importer.DefaultRegistry()
	svc := a.journals()

	u := before
	var summary []string
	var firstID string
	for _, src := range sources {
		data, err := os.ReadFile(src.path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", src.name, err)
		}
		lines, detected, err := reg.Parse(data, format)
		if errors.Is(err, importer.ErrUnknownFormat) {
			return fmt.Errorf("%s: %w (known formats: %s)", src.name, err, strings.Join(reg.Formats(), ", "))
		}
		if err != nil {
			return fmt.Errorf("%s: %w", src.name, err)
		}

		var ids []string
		u, ids, err = svc.Import(u, kind, lines)
		if err != nil {
			return fmt.Errorf("%s: %w", src.name, err)
		}
		if firstID == "" && len(ids) > 0 {
			firstID = ids[0]
		}
		a.logger.Debug("file parsed",
			zap.String("file", src.name),
			zap.String("format", detected),
			zap.Int("entries", len(ids)))
		summary = append(summary, fmt.Sprintf("%s (%s, %d entries)", src.name, detected, len(ids)))
	}

	if err := a.store.Put(ctx, u); err != nil {
		return fmt.Errorf("saving user: %w", err)
	}

	var moved []string
	for _, src := range sources {
		if !src.queued {
			continue
		}
		if err := importer.MarkProcessed(a.root, src.name); err != nil {
			return a.undoImport(ctx, before, moved, err)
		}
		moved = append(moved, src.name)
	}

	details := "imported " + strings.Join(summary, ", ")
	if err := a.record(u.Username, auditlog.ActionImport, details, firstID); err != nil {
		return err
	}
	for _, s := range summary {
		fmt.Fprintf(w, "Imported %s\n", s)
	}
	return nil
}

// undoImport restores the user record and requeues moved files after a
// failed move. cause is returned along with any rollback failure.
func (a *app) undoImport(ctx context.Context, before model.User, moved []string, cause error) error {
	errs := []error{cause}
	if err := a.store.Put(ctx, before); err != nil {
		errs = append(errs, fmt.Errorf("restoring user: %w", err))
	}
	for _, name := range moved {
		if err := importer.Requeue(a.root, name); err != nil {
			errs = append(errs, err)
		}
	}
	a.logger.Warn("import rolled back", zap.Error(cause), zap.Int("requeued", len(moved)))
	return errors.Join(errs...)
}
