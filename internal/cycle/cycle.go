// Package cycle runs the accounting cycle for one user: ledgers and trial
// balances before and after adjustment, the financial statements, closing
// entries and the post-closing trial balance.
package cycle

import (
	"fmt"
	"strings"

	"github.com/cleared-dev/siklus/internal/closing"
	"github.com/cleared-dev/siklus/internal/config"
	"github.com/cleared-dev/siklus/internal/ledger"
	"github.com/cleared-dev/siklus/internal/model"
	"github.com/cleared-dev/siklus/internal/statement"
)

// Stage selects one of the three journals the cycle builds.
type Stage string

const (
	Unadjusted Stage = "unadjusted"
	Adjusted   Stage = "adjusted"
	Closed     Stage = "closed"
)

// ParseStage parses a stage name case-insensitively.
func ParseStage(s string) (Stage, error) {
	switch st := Stage(strings.ToLower(strings.TrimSpace(s))); st {
	case Unadjusted, Adjusted, Closed:
		return st, nil
	default:
		return "", fmt.Errorf("unknown stage %q (want unadjusted, adjusted or closed)", s)
	}
}

// Options carries everything the cycle needs besides the journals.
type Options struct {
	Inputs          statement.Inputs
	Classifier      *statement.Classifier
	ClosingAccounts closing.Accounts
	Closing         closing.Options
}

// OptionsFromConfig builds Options from the workspace config. lookup is
// consulted only in strict classification mode.
func OptionsFromConfig(cfg *config.Config, lookup statement.TypeLookup, in statement.Inputs) Options {
	kw := statement.Keywords{
		Revenue:   cfg.Classification.Revenue,
		Expense:   cfg.Classification.Expense,
		Asset:     cfg.Classification.Asset,
		Liability: cfg.Classification.Liability,
	}
	c := statement.NewClassifier(kw)
	if cfg.Classification.Strict && lookup != nil {
		c = statement.NewStrictClassifier(kw, lookup)
	}
	return Options{
		Inputs:     in,
		Classifier: c,
		ClosingAccounts: closing.Accounts{
			Revenue: cfg.Closing.RevenueAccount,
			Expense: cfg.Closing.ExpenseAccount,
			Summary: cfg.Closing.SummaryAccount,
			Capital: cfg.Closing.CapitalAccount,
		},
		Closing: closing.Options{LegacyLossSign: cfg.Closing.LegacyLossSign},
	}
}

// Report is every table derived from one user's journals.
type Report struct {
	Journal     model.Journal
	Adjustments model.Journal
	Closing     model.Journal

	UnadjustedLedger *ledger.Ledger
	AdjustedLedger   *ledger.Ledger
	ClosedLedger     *ledger.Ledger

	UnadjustedTrialBalance []model.TrialBalanceRow
	AdjustedTrialBalance   []model.TrialBalanceRow
	ClosedTrialBalance     []model.TrialBalanceRow

	Statements statement.Statements
}

// Run derives the full report. The user's journals are not modified.
func Run(u model.User, opts Options) *Report {
	if opts.Classifier == nil {
		opts.Classifier = statement.NewClassifier(statement.DefaultKeywords())
	}
	if opts.ClosingAccounts == (closing.Accounts{}) {
		opts.ClosingAccounts = closing.DefaultAccounts()
	}

	r := &Report{
		Journal:     u.Journal.Clone(),
		Adjustments: u.Adjustments.Clone(),
	}

	r.UnadjustedLedger = ledger.BuildLedger(r.Journal)
	r.UnadjustedTrialBalance = ledger.BuildTrialBalance(r.UnadjustedLedger)

	adjusted := model.Concat(r.Journal, r.Adjustments)
	r.AdjustedLedger = ledger.BuildLedger(adjusted)
	r.AdjustedTrialBalance = ledger.BuildTrialBalance(r.AdjustedLedger)

	r.Statements = statement.Calculate(r.AdjustedTrialBalance, opts.Inputs, opts.Classifier)

	r.Closing = closing.Build(closing.Totals{
		Revenue:   r.Statements.Revenue,
		Expense:   r.Statements.Expense,
		NetIncome: r.Statements.NetIncome,
	}, opts.ClosingAccounts, opts.Closing)

	r.ClosedLedger = ledger.BuildLedger(model.Concat(adjusted, r.Closing))
	r.ClosedTrialBalance = ledger.BuildTrialBalance(r.ClosedLedger)

	return r
}

// Ledger returns the ledger of a stage.
func (r *Report) Ledger(s Stage) *ledger.Ledger {
	switch s {
	case Unadjusted:
		return r.UnadjustedLedger
	case Closed:
		return r.ClosedLedger
	default:
		return r.AdjustedLedger
	}
}

// TrialBalance returns the trial balance of a stage.
func (r *Report) TrialBalance(s Stage) []model.TrialBalanceRow {
	switch s {
	case Unadjusted:
		return r.UnadjustedTrialBalance
	case Closed:
		return r.ClosedTrialBalance
	default:
		return r.AdjustedTrialBalance
	}
}
