package accounts

import "github.com/cleared-dev/siklus/internal/model"

// DefaultChart returns the chart of accounts of a trading business: cash,
// inventory, supplies, two payables, capital, revenue and six expenses.
func DefaultChart() []model.Account {
	return []model.Account{
		{ID: 1010, Name: "Kas", Type: model.AccountTypeAsset, Description: "Cash"},
		{ID: 1020, Name: "Persediaan", Type: model.AccountTypeAsset, Description: "Inventory"},
		{ID: 1030, Name: "Perlengkapan", Type: model.AccountTypeAsset, Description: "Supplies"},
		{ID: 2010, Name: "Utang Bank", Type: model.AccountTypeLiability, Description: "Bank payable"},
		{ID: 2020, Name: "Utang Gaji", Type: model.AccountTypeLiability, Description: "Wages payable"},
		{ID: 3010, Name: "Modal", Type: model.AccountTypeEquity, Description: "Owner's capital"},
		{ID: 4010, Name: "Pendapatan", Type: model.AccountTypeRevenue, Description: "Revenue"},
		{ID: 5010, Name: "Beban Pemeliharaan", Type: model.AccountTypeExpense, Description: "Maintenance expense"},
		{ID: 5020, Name: "Beban Operasional", Type: model.AccountTypeExpense, Description: "Operating expense"},
		{ID: 5030, Name: "Beban Listrik", Type: model.AccountTypeExpense, Description: "Electricity expense"},
		{ID: 5040, Name: "Beban Air", Type: model.AccountTypeExpense, Description: "Water expense"},
		{ID: 5050, Name: "Beban Gaji", Type: model.AccountTypeExpense, Description: "Wages expense"},
		{ID: 5060, Name: "Beban Pengiriman", Type: model.AccountTypeExpense, Description: "Shipping expense"},
	}
}
