// Package render prints journals, ledgers, trial balances and statements as
// markdown.
package render

import (
	"fmt"
	"io"
	"strconv"

	md "github.com/nao1215/markdown"

	"github.com/cleared-dev/siklus/internal/ledger"
	"github.com/cleared-dev/siklus/internal/model"
	"github.com/cleared-dev/siklus/internal/statement"
)

// Journal renders journal lines with their 0-based row numbers, the index
// accepted by row deletion.
func Journal(w io.Writer, title string, j model.Journal, f *Formatter) error {
	doc := md.NewMarkdown(w)
	doc.H2(title)
	if len(j) == 0 {
		doc.PlainText("Belum ada transaksi.")
		return doc.Build()
	}

	rows := make([][]string, 0, len(j)+1)
	for i, l := range j {
		rows = append(rows, []string{
			strconv.Itoa(i), l.DateString(), l.EntryID, l.Account,
			f.Amount(l.Debit), f.Amount(l.Credit), l.Memo,
		})
	}
	debit, credit := j.Totals()
	rows = append(rows, []string{"", "", "", "Total", f.Format(debit), f.Format(credit), ""})

	doc.Table(md.TableSet{
		Header: []string{"No", "Tanggal", "Kode", "Akun", "Debit", "Kredit", "Keterangan"},
		Rows:   rows,
	})
	return doc.Build()
}

// Ledger renders one section per account with running balances.
func Ledger(w io.Writer, title string, l *ledger.Ledger, f *Formatter) error {
	doc := md.NewMarkdown(w)
	doc.H1(title)
	if l.Len() == 0 {
		doc.PlainText("Buku besar kosong.")
		return doc.Build()
	}

	for _, account := range l.Accounts() {
		doc.H2(account)
		entries := l.Entries(account)
		rows := make([][]string, len(entries))
		for i, e := range entries {
			rows[i] = []string{
				e.DateString(), e.EntryID, f.Amount(e.Debit), f.Amount(e.Credit),
				e.Memo, f.Format(e.NetMovement), f.Format(e.RunningBalance),
			}
		}
		doc.Table(md.TableSet{
			Header: []string{"Tanggal", "Kode", "Debit", "Kredit", "Keterangan", "Mutasi", "Saldo Akhir"},
			Rows:   rows,
		})
	}
	return doc.Build()
}

// TrialBalance renders a trial balance with a totals row.
func TrialBalance(w io.Writer, title string, rows []model.TrialBalanceRow, f *Formatter) error {
	doc := md.NewMarkdown(w)
	doc.H2(title)

	out := make([][]string, 0, len(rows)+1)
	for _, r := range rows {
		out = append(out, []string{r.Account, f.Format(r.Debit), f.Format(r.Credit)})
	}
	debit, credit := ledger.TrialBalanceTotals(rows)
	out = append(out, []string{"Total", f.Format(debit), f.Format(credit)})

	doc.Table(md.TableSet{Header: []string{"Akun", "Debit", "Kredit"}, Rows: out})
	if !debit.Equal(credit) {
		doc.PlainText(fmt.Sprintf("Tidak seimbang: selisih %s.", f.Format(debit.Sub(credit))))
	}
	return doc.Build()
}

// Statements renders the income statement, the statement of changes in
// equity and the balance sheet.
func Statements(w io.Writer, title string, s statement.Statements, f *Formatter) error {
	doc := md.NewMarkdown(w)
	doc.H1(title)

	header := []string{"Keterangan", "Jumlah"}

	doc.H2("Laba Rugi")
	doc.Table(md.TableSet{Header: header, Rows: [][]string{
		{"Pendapatan", f.Format(s.Revenue)},
		{"Beban", f.Format(s.Expense)},
		{"Laba Bersih", f.Format(s.NetIncome)},
	}})

	doc.H2("Perubahan Modal")
	doc.Table(md.TableSet{Header: header, Rows: [][]string{
		{"Modal Awal", f.Format(s.BeginningEquity)},
		{"Laba Bersih", f.Format(s.NetIncome)},
		{"Prive", f.Format(s.Withdrawals)},
		{"Modal Akhir", f.Format(s.EndingEquity)},
	}})

	doc.H2("Neraca")
	doc.Table(md.TableSet{Header: header, Rows: [][]string{
		{"Aktiva", f.Format(s.TotalAssets)},
		{"Kewajiban", f.Format(s.TotalLiabilities)},
		{"Modal Akhir", f.Format(s.EndingEquity)},
		{"Kewajiban + Modal", f.Format(s.LiabilitiesAndEquity)},
	}})

	if s.Balanced() {
		doc.PlainText("Neraca seimbang.")
	} else {
		doc.PlainText(fmt.Sprintf("Neraca tidak seimbang: selisih %s.", f.Format(s.Difference())))
	}
	return doc.Build()
}

// Accounts renders the chart of accounts.
func Accounts(w io.Writer, accts []model.Account) error {
	doc := md.NewMarkdown(w)
	doc.H2("Daftar Akun")
	rows := make([][]string, len(accts))
	for i, a := range accts {
		rows[i] = []string{strconv.Itoa(a.ID), a.Name, string(a.Type), a.Description}
	}
	doc.Table(md.TableSet{Header: []string{"Kode", "Akun", "Jenis", "Keterangan"}, Rows: rows})
	return doc.Build()
}
