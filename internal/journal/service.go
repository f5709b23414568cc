package journal

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/cleared-dev/siklus/internal/id"
	"github.com/cleared-dev/siklus/internal/model"
)

var (
	ErrRowOutOfRange = errors.New("row index out of range")
	ErrEntryNotFound = errors.New("entry not found")
)

// Kind selects one of a user's two journals.
type Kind int

const (
	Primary Kind = iota
	Adjusting
)

func (k Kind) String() string {
	if k == Adjusting {
		return "adjusting"
	}
	return "primary"
}

// Service applies journal mutations to a user record. Every method works on
// a copy of the user and returns it only when the mutation succeeded, so a
// rejected input never reaches the store.
type Service struct {
	accounts AccountChecker
	logger   *zap.Logger
}

// NewService creates a journal Service. A nil accounts checker allows any
// account name.
func NewService(accounts AccountChecker, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{accounts: accounts, logger: logger}
}

// TransactionInput is one submitted transaction.
type TransactionInput struct {
	Date          time.Time
	DebitAccount  string
	DebitAmount   decimal.Decimal
	CreditAccount string
	CreditAmount  decimal.Decimal
	Memo          string
}

// AdjustmentInput is one submitted adjusting entry.
type AdjustmentInput struct {
	Date          time.Time
	DebitAccount  string
	CreditAccount string
	Amount        decimal.Decimal
	Memo          string
}

// AddTransaction appends a debit and a credit line to the primary journal.
// Returns the updated user and the entry ID.
func (s *Service) AddTransaction(u model.User, in TransactionInput) (model.User, string, error) {
	if !in.DebitAmount.Equal(in.CreditAmount) {
		return u, "", ValidationErrors{{
			Rule:        RuleBalanced,
			Description: fmt.Sprintf("debit amount (%s) != credit amount (%s)", in.DebitAmount, in.CreditAmount),
		}}
	}
	return s.addPair(u, Primary, in.Date, in.DebitAccount, in.CreditAccount, in.DebitAmount, in.Memo)
}

// AddAdjustment appends a balanced pair to the adjusting journal.
func (s *Service) AddAdjustment(u model.User, in AdjustmentInput) (model.User, string, error) {
	if !in.Amount.IsPositive() {
		return u, "", ValidationErrors{{
			Rule:        RuleOneSide,
			Description: fmt.Sprintf("adjustment amount must be positive, got %s", in.Amount),
		}}
	}
	return s.addPair(u, Adjusting, in.Date, in.DebitAccount, in.CreditAccount, in.Amount, in.Memo)
}

func (s *Service) addPair(u model.User, kind Kind, date time.Time, debitAcct, creditAcct string, amount decimal.Decimal, memo string) (model.User, string, error) {
	j := journalOf(u, kind)
	entryID := id.NextEntryID(entryIDs(j), date.Year(), int(date.Month()))

	newLines := []model.Line{
		{EntryID: id.FormatLegID(entryID, id.DebitLeg), Date: date, Account: debitAcct, Debit: amount, Credit: decimal.Zero, Memo: memo},
		{EntryID: id.FormatLegID(entryID, id.CreditLeg), Date: date, Account: creditAcct, Debit: decimal.Zero, Credit: amount, Memo: memo},
	}
	if verrs := ValidateLines(newLines, s.accounts); len(verrs) > 0 {
		return u, "", verrs
	}

	out := u.Clone()
	setJournal(&out, kind, append(journalOf(out, kind), newLines...))

	s.logger.Info("entry added",
		zap.String("user", u.Username),
		zap.Stringer("journal", kind),
		zap.String("entry_id", entryID),
		zap.String("amount", amount.StringFixed(2)))
	return out, entryID, nil
}

// DeleteRow removes the line at idx (0-based) from a journal. Only that
// line is removed; its counterpart stays.
func (s *Service) DeleteRow(u model.User, kind Kind, idx int) (model.User, model.Line, error) {
	j := journalOf(u, kind)
	if idx < 0 || idx >= len(j) {
		return u, model.Line{}, fmt.Errorf("%w: %d not in [0,%d)", ErrRowOutOfRange, idx, len(j))
	}

	removed := j[idx]
	out := u.Clone()
	oj := journalOf(out, kind)
	setJournal(&out, kind, append(oj[:idx], oj[idx+1:]...))

	s.logger.Info("row deleted",
		zap.String("user", u.Username),
		zap.Stringer("journal", kind),
		zap.Int("row", idx),
		zap.String("entry_id", removed.EntryID))
	return out, removed, nil
}

// DeleteEntry removes every line of one entry from a journal.
func (s *Service) DeleteEntry(u model.User, kind Kind, entryID string) (model.User, []model.Line, error) {
	group := id.EntryGroup(entryID)
	var kept model.Journal
	var removed []model.Line
	for _, line := range journalOf(u, kind) {
		if line.EntryID != "" && line.EntryGroup() == group {
			removed = append(removed, line)
			continue
		}
		kept = append(kept, line)
	}
	if len(removed) == 0 {
		return u, nil, fmt.Errorf("%w: %s", ErrEntryNotFound, entryID)
	}

	out := u.Clone()
	setJournal(&out, kind, kept)

	s.logger.Info("entry deleted",
		zap.String("user", u.Username),
		zap.Stringer("journal", kind),
		zap.String("entry_id", group),
		zap.Int("rows", len(removed)))
	return out, removed, nil
}

// Import appends externally sourced lines to a journal. Consecutive lines
// are grouped into one entry until their debits and credits balance; each
// group gets a fresh entry ID. A trailing unbalanced group rejects the
// whole import. Returns the new entry IDs.
func (s *Service) Import(u model.User, kind Kind, lines []model.Line) (model.User, []string, error) {
	existing := entryIDs(journalOf(u, kind))
	var imported []model.Line
	var ids []string

	start := 0
	debit, credit := decimal.Zero, decimal.Zero
	for i, line := range lines {
		debit = debit.Add(line.Debit)
		credit = credit.Add(line.Credit)
		if !debit.Equal(credit) || debit.IsZero() {
			continue
		}

		group := lines[start : i+1]
		first := group[0].Date
		entryID := id.NextEntryID(existing, first.Year(), int(first.Month()))
		for leg, gl := range group {
			gl.EntryID = id.FormatLegID(entryID, leg)
			imported = append(imported, gl)
			existing = append(existing, gl.EntryID)
		}
		ids = append(ids, entryID)
		start = i + 1
		debit, credit = decimal.Zero, decimal.Zero
	}

	if start < len(lines) {
		return u, nil, ValidationErrors{{
			Rule:        RuleBalanced,
			Description: fmt.Sprintf("rows %d..%d do not balance (debits %s, credits %s)", start+1, len(lines), debit.StringFixed(2), credit.StringFixed(2)),
		}}
	}
	if verrs := ValidateLines(imported, s.accounts); len(verrs) > 0 {
		return u, nil, verrs
	}

	out := u.Clone()
	setJournal(&out, kind, append(journalOf(out, kind), imported...))

	s.logger.Info("lines imported",
		zap.String("user", u.Username),
		zap.Stringer("journal", kind),
		zap.Int("rows", len(imported)),
		zap.Int("entries", len(ids)))
	return out, ids, nil
}

func journalOf(u model.User, kind Kind) model.Journal {
	if kind == Adjusting {
		return u.Adjustments
	}
	return u.Journal
}

func setJournal(u *model.User, kind Kind, j model.Journal) {
	if kind == Adjusting {
		u.Adjustments = j
		return
	}
	u.Journal = j
}

func entryIDs(j model.Journal) []string {
	ids := make([]string, 0, len(j))
	for _, line := range j {
		if line.EntryID != "" {
			ids = append(ids, line.EntryID)
		}
	}
	return ids
}
