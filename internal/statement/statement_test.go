package statement

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/cleared-dev/siklus/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func row(account, debit, credit string) model.TrialBalanceRow {
	return model.TrialBalanceRow{Account: account, Debit: dec(debit), Credit: dec(credit)}
}

func TestCalculate(t *testing.T) {
	rows := []model.TrialBalanceRow{
		row("Kas", "1250", "0"),
		row("Persediaan", "200", "0"),
		row("Modal", "0", "1000"),
		row("Pendapatan", "0", "400"),
		row("Beban Listrik", "150", "0"),
		row("Utang Bank", "0", "200"),
	}
	s := Calculate(rows, Inputs{BeginningEquity: dec("1000"), Withdrawals: dec("0")}, NewClassifier(DefaultKeywords()))

	assert.True(t, s.Revenue.Equal(dec("400")))
	assert.True(t, s.Expense.Equal(dec("150")))
	assert.True(t, s.NetIncome.Equal(dec("250")))
	assert.True(t, s.EndingEquity.Equal(dec("1250")))
	assert.True(t, s.TotalAssets.Equal(dec("1450")))
	assert.True(t, s.TotalLiabilities.Equal(dec("200")))
	assert.True(t, s.LiabilitiesAndEquity.Equal(dec("1450")))
	assert.True(t, s.Balanced())
	assert.True(t, s.Difference().IsZero())
}

func TestCalculate_Withdrawals(t *testing.T) {
	rows := []model.TrialBalanceRow{
		row("Pendapatan", "0", "1000"),
		row("Beban Gaji", "400", "0"),
	}
	s := Calculate(rows, Inputs{BeginningEquity: dec("5000"), Withdrawals: dec("100")}, NewClassifier(DefaultKeywords()))
	assert.True(t, s.NetIncome.Equal(dec("600")))
	assert.True(t, s.EndingEquity.Equal(dec("5500")))
}

func TestCalculate_NetLoss(t *testing.T) {
	rows := []model.TrialBalanceRow{row("Beban Air", "500", "0")}
	s := Calculate(rows, Inputs{}, NewClassifier(DefaultKeywords()))
	assert.True(t, s.Revenue.IsZero())
	assert.True(t, s.NetIncome.Equal(dec("-500")))
	assert.True(t, s.EndingEquity.Equal(dec("-500")))
}

func TestCalculate_ReportsImbalance(t *testing.T) {
	// Beginning equity that the journal does not support leaves the sheet unbalanced.
	rows := []model.TrialBalanceRow{
		row("Kas", "1000", "0"),
		row("Modal", "0", "1000"),
	}
	s := Calculate(rows, Inputs{BeginningEquity: dec("0")}, NewClassifier(DefaultKeywords()))
	assert.False(t, s.Balanced())
	assert.True(t, s.Difference().Equal(dec("1000")))
}

func TestCalculate_Empty(t *testing.T) {
	s := Calculate(nil, Inputs{}, NewClassifier(DefaultKeywords()))
	assert.True(t, s.NetIncome.IsZero())
	assert.True(t, s.Balanced())
}
