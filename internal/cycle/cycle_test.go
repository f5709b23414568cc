package cycle

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/siklus/internal/config"
	"github.com/cleared-dev/siklus/internal/ledger"
	"github.com/cleared-dev/siklus/internal/model"
	"github.com/cleared-dev/siklus/internal/statement"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func pair(d time.Time, debitAcct, creditAcct, amount, memo string) []model.Line {
	return []model.Line{
		{Date: d, Account: debitAcct, Debit: dec(amount), Memo: memo},
		{Date: d, Account: creditAcct, Credit: dec(amount), Memo: memo},
	}
}

// tokoUser is a small trading business: owner capital, a stock purchase, a
// sale, a utility bill, a bank loan and an accrued wage adjustment.
func tokoUser() model.User {
	var j model.Journal
	j = append(j, pair(date(2024, 1, 1), "Kas", "Modal", "1000", "Modal awal")...)
	j = append(j, pair(date(2024, 1, 2), "Persediaan", "Kas", "300", "Beli barang")...)
	j = append(j, pair(date(2024, 1, 3), "Kas", "Pendapatan", "500", "Penjualan")...)
	j = append(j, pair(date(2024, 1, 4), "Beban Listrik", "Kas", "100", "Bayar listrik")...)
	j = append(j, pair(date(2024, 1, 5), "Kas", "Utang Bank", "200", "Pinjaman")...)

	return model.User{
		Username:    "budi",
		Journal:     j,
		Adjustments: pair(date(2024, 1, 31), "Beban Gaji", "Utang Gaji", "50", "Gaji terutang"),
	}
}

func row(t *testing.T, rows []model.TrialBalanceRow, account string) model.TrialBalanceRow {
	t.Helper()
	for _, r := range rows {
		if r.Account == account {
			return r
		}
	}
	t.Fatalf("account %q not in trial balance", account)
	return model.TrialBalanceRow{}
}

func TestRun_WellFormedCycle(t *testing.T) {
	r := Run(tokoUser(), Options{Inputs: statement.Inputs{BeginningEquity: dec("1000")}})

	assert.Len(t, r.UnadjustedTrialBalance, 6)
	assert.Len(t, r.AdjustedTrialBalance, 8)

	s := r.Statements
	assert.True(t, s.Revenue.Equal(dec("500")), s.Revenue.String())
	assert.True(t, s.Expense.Equal(dec("150")), s.Expense.String())
	assert.True(t, s.NetIncome.Equal(dec("350")))
	assert.True(t, s.EndingEquity.Equal(dec("1350")))
	assert.True(t, s.TotalAssets.Equal(dec("1600")), s.TotalAssets.String())
	assert.True(t, s.TotalLiabilities.Equal(dec("250")))
	assert.True(t, s.Balanced())
	assert.True(t, s.Difference().IsZero())
}

func TestRun_ClosingAndPostClosing(t *testing.T) {
	r := Run(tokoUser(), Options{Inputs: statement.Inputs{BeginningEquity: dec("1000")}})

	require.Len(t, r.Closing, 6)
	for _, l := range r.Closing {
		assert.False(t, l.Dated(), "closing lines are dateless")
	}

	closed := r.ClosedTrialBalance
	assert.Len(t, closed, 10)
	assert.True(t, row(t, closed, "Pendapatan").Credit.IsZero())
	assert.True(t, row(t, closed, "Pendapatan").Debit.IsZero())
	assert.True(t, row(t, closed, "Ikhtisar Laba Rugi").Debit.IsZero())
	assert.True(t, row(t, closed, "Ikhtisar Laba Rugi").Credit.IsZero())
	assert.True(t, row(t, closed, "Modal").Credit.Equal(dec("1350")))

	debit, credit := ledger.TrialBalanceTotals(closed)
	assert.True(t, debit.Equal(credit), "%s != %s", debit, credit)

	// The closing credit to Modal sorts after the dated capital entry.
	modal := r.ClosedLedger.Entries("Modal")
	require.Len(t, modal, 2)
	assert.True(t, modal[0].Dated())
	assert.False(t, modal[1].Dated())
	assert.True(t, modal[1].RunningBalance.Equal(dec("-1350")))
}

func TestRun_UnrecordedWithdrawalIsReportedUnbalanced(t *testing.T) {
	r := Run(tokoUser(), Options{Inputs: statement.Inputs{
		BeginningEquity: dec("1000"),
		Withdrawals:     dec("100"),
	}})

	assert.False(t, r.Statements.Balanced())
	assert.True(t, r.Statements.Difference().Equal(dec("100")))
	// Reporting never blocks the rest of the cycle.
	assert.Len(t, r.Closing, 6)
}

func TestRun_EmptyUser(t *testing.T) {
	r := Run(model.User{Username: "kosong"}, Options{})

	assert.Equal(t, 0, r.AdjustedLedger.Len())
	assert.Empty(t, r.UnadjustedTrialBalance)
	assert.Empty(t, r.Closing)
	assert.Empty(t, r.ClosedTrialBalance)
	assert.True(t, r.Statements.Balanced())
}

func TestRun_DoesNotMutateUser(t *testing.T) {
	u := tokoUser()
	before := len(u.Journal)
	r := Run(u, Options{})

	r.Journal[0].Account = "changed"
	assert.Len(t, u.Journal, before)
	assert.Equal(t, "Kas", u.Journal[0].Account)
}

func TestRun_StageAccessors(t *testing.T) {
	r := Run(tokoUser(), Options{})

	assert.Same(t, r.UnadjustedLedger, r.Ledger(Unadjusted))
	assert.Same(t, r.AdjustedLedger, r.Ledger(Adjusted))
	assert.Same(t, r.ClosedLedger, r.Ledger(Closed))
	assert.Len(t, r.TrialBalance(Unadjusted), 6)
	assert.Len(t, r.TrialBalance(Adjusted), 8)
	assert.Len(t, r.TrialBalance(Closed), 10)
}

func TestParseStage(t *testing.T) {
	for in, want := range map[string]Stage{"adjusted": Adjusted, " Closed ": Closed, "UNADJUSTED": Unadjusted} {
		got, err := ParseStage(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseStage("final")
	assert.ErrorContains(t, err, `unknown stage "final"`)
}

type typeMap map[string]model.AccountType

func (m typeMap) TypeOf(name string) (model.AccountType, bool) {
	t, ok := m[name]
	return t, ok
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := config.Default("x")
	cfg.Closing.CapitalAccount = "Modal Pemilik"
	cfg.Closing.LegacyLossSign = true
	lookup := typeMap{"Prepaid Expense Rent": model.AccountTypeAsset}

	opts := OptionsFromConfig(cfg, lookup, statement.Inputs{})
	assert.Equal(t, "Modal Pemilik", opts.ClosingAccounts.Capital)
	assert.Equal(t, "Ikhtisar Laba Rugi", opts.ClosingAccounts.Summary)
	assert.True(t, opts.Closing.LegacyLossSign)
	assert.True(t, opts.Classifier.IsExpense("Prepaid Expense Rent"), "substring mode by default")

	cfg.Classification.Strict = true
	opts = OptionsFromConfig(cfg, lookup, statement.Inputs{})
	assert.False(t, opts.Classifier.IsExpense("Prepaid Expense Rent"))
	assert.True(t, opts.Classifier.IsAsset("Prepaid Expense Rent"))
	assert.True(t, opts.Classifier.IsExpense("Beban Air"), "unknown accounts fall back to substrings")
}
