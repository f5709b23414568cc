package statement

import (
	"strings"

	"github.com/cleared-dev/siklus/internal/model"
)

// Keywords lists, per account class, the substrings that put an account
// name in that class. Matching is case-insensitive.
type Keywords struct {
	Revenue   []string
	Expense   []string
	Asset     []string
	Liability []string
}

// DefaultKeywords matches both the English class words and the account
// names of the default chart.
func DefaultKeywords() Keywords {
	return Keywords{
		Revenue:   []string{"revenue", "pendapatan"},
		Expense:   []string{"expense", "beban"},
		Asset:     []string{"cash", "inventory", "supplies", "kas", "persediaan", "perlengkapan"},
		Liability: []string{"payable", "utang"},
	}
}

// TypeLookup resolves an account name to an explicit type.
type TypeLookup interface {
	TypeOf(name string) (model.AccountType, bool)
}

// Classifier decides which statement lines an account contributes to.
//
// An account may match several classes: "Prepaid Expense Rent" is both an
// expense (substring "expense") and, were it named so, an asset.
type Classifier struct {
	keywords Keywords
	explicit TypeLookup
}

// NewClassifier returns a substring classifier.
func NewClassifier(kw Keywords) *Classifier {
	return &Classifier{keywords: kw}
}

// NewStrictClassifier classifies accounts found in lookup by their explicit
// type and falls back to substring matching for the rest.
func NewStrictClassifier(kw Keywords, lookup TypeLookup) *Classifier {
	return &Classifier{keywords: kw, explicit: lookup}
}

func (c *Classifier) IsRevenue(account string) bool {
	return c.is(account, model.AccountTypeRevenue, c.keywords.Revenue)
}

func (c *Classifier) IsExpense(account string) bool {
	return c.is(account, model.AccountTypeExpense, c.keywords.Expense)
}

func (c *Classifier) IsAsset(account string) bool {
	return c.is(account, model.AccountTypeAsset, c.keywords.Asset)
}

func (c *Classifier) IsLiability(account string) bool {
	return c.is(account, model.AccountTypeLiability, c.keywords.Liability)
}

func (c *Classifier) is(account string, typ model.AccountType, keywords []string) bool {
	if c.explicit != nil {
		if t, ok := c.explicit.TypeOf(account); ok {
			return t == typ
		}
	}
	return containsAny(account, keywords)
}

func containsAny(s string, substrs []string) bool {
	s = strings.ToLower(s)
	for _, sub := range substrs {
		if sub != "" && strings.Contains(s, strings.ToLower(sub)) {
			return true
		}
	}
	return false
}
