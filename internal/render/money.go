package render

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Formatter prints decimal amounts in one currency.
type Formatter struct {
	cur money.Currency
}

// NewFormatter returns a Formatter for an ISO 4217 code such as "IDR".
func NewFormatter(code string) (*Formatter, error) {
	cur := money.GetCurrency(strings.ToUpper(code))
	if cur == nil {
		return nil, fmt.Errorf("unknown currency %q", code)
	}
	return &Formatter{cur: *cur}, nil
}

// Format renders d with the currency's symbol and separators, rounded to
// the currency's minor unit.
func (f *Formatter) Format(d decimal.Decimal) string {
	minor := d.Shift(int32(f.cur.Fraction)).Round(0)
	return f.cur.Formatter().Format(minor.IntPart())
}

// Amount renders d, or "" when d is zero. Used for debit/credit columns
// where only one side is set.
func (f *Formatter) Amount(d decimal.Decimal) string {
	if d.IsZero() {
		return ""
	}
	return f.Format(d)
}
