package journal

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/siklus/internal/model"
)

var (
	// ErrUnbalanced is matched by validation failures where debits != credits.
	ErrUnbalanced = errors.New("debit and credit must be equal")
	// ErrInvalidLine is matched by every other validation failure.
	ErrInvalidLine = errors.New("invalid journal line")
)

// Rule names the check a ValidationError failed.
type Rule string

const (
	RuleBalanced Rule = "balanced"
	RuleOneSide  Rule = "one-side"
	RuleAccount  Rule = "account"
	RuleDate     Rule = "date"
	RuleDecimals Rule = "decimals"
)

// ValidationError describes a single rule violation.
type ValidationError struct {
	Rule        Rule
	EntryID     string
	Description string
}

func (e ValidationError) Error() string {
	if e.EntryID == "" {
		return fmt.Sprintf("%s: %s", e.Rule, e.Description)
	}
	return fmt.Sprintf("%s [%s]: %s", e.Rule, e.EntryID, e.Description)
}

func (e ValidationError) Unwrap() error {
	if e.Rule == RuleBalanced {
		return ErrUnbalanced
	}
	return ErrInvalidLine
}

// ValidationErrors collects every violation found in one validation pass.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, ve := range v {
		msgs[i] = ve.Error()
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

func (v ValidationErrors) Unwrap() []error {
	errs := make([]error, len(v))
	for i, ve := range v {
		errs[i] = ve
	}
	return errs
}

// AccountChecker tests whether an account name exists in the chart of accounts.
type AccountChecker interface {
	Exists(name string) bool
}

var hundred = decimal.NewFromInt(100)

// ValidateLines checks a set of new journal lines. Lines are grouped by
// entry; each group must balance. When accounts is non-nil every account
// must be in the chart.
func ValidateLines(lines []model.Line, accounts AccountChecker) ValidationErrors {
	var errs ValidationErrors

	groups := make(map[string][]model.Line)
	var groupOrder []string
	for _, line := range lines {
		g := line.EntryGroup()
		if _, seen := groups[g]; !seen {
			groupOrder = append(groupOrder, g)
		}
		groups[g] = append(groups[g], line)
	}

	for _, g := range groupOrder {
		debit, credit := model.Journal(groups[g]).Totals()
		if !debit.Equal(credit) {
			errs = append(errs, ValidationError{
				Rule:        RuleBalanced,
				EntryID:     g,
				Description: fmt.Sprintf("debits (%s) != credits (%s)", debit.StringFixed(2), credit.StringFixed(2)),
			})
		}
	}

	for _, line := range lines {
		hasDebit := !line.Debit.IsZero()
		hasCredit := !line.Credit.IsZero()
		if hasDebit == hasCredit || line.Debit.IsNegative() || line.Credit.IsNegative() {
			errs = append(errs, ValidationError{
				Rule:        RuleOneSide,
				EntryID:     line.EntryID,
				Description: "line must have exactly one positive debit or credit",
			})
		}

		if strings.TrimSpace(line.Account) == "" {
			errs = append(errs, ValidationError{
				Rule:        RuleAccount,
				EntryID:     line.EntryID,
				Description: "account is required",
			})
		} else if accounts != nil && !accounts.Exists(line.Account) {
			errs = append(errs, ValidationError{
				Rule:        RuleAccount,
				EntryID:     line.EntryID,
				Description: fmt.Sprintf("unknown account %q", line.Account),
			})
		}

		if !line.Dated() {
			errs = append(errs, ValidationError{
				Rule:        RuleDate,
				EntryID:     line.EntryID,
				Description: "date is required",
			})
		}

		for _, amt := range []decimal.Decimal{line.Debit, line.Credit} {
			if !amt.Mul(hundred).Equal(amt.Mul(hundred).Floor()) {
				errs = append(errs, ValidationError{
					Rule:        RuleDecimals,
					EntryID:     line.EntryID,
					Description: fmt.Sprintf("amount %s has more than 2 decimal places", amt),
				})
			}
		}
	}

	return errs
}
