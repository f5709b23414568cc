// Package export writes a cycle report to a multi-sheet xlsx workbook.
package export

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/cleared-dev/siklus/internal/cycle"
	"github.com/cleared-dev/siklus/internal/ledger"
	"github.com/cleared-dev/siklus/internal/model"
)

var (
	journalHeader = []string{"Tanggal", "Kode", "Akun", "Debit", "Kredit", "Keterangan"}
	tbHeader      = []string{"Akun", "Debit", "Kredit"}
	summaryHeader = []string{"Keterangan", "Jumlah"}
	ledgerHeader  = []string{"Tanggal", "Kode", "Akun", "Debit", "Kredit", "Keterangan", "Mutasi", "Saldo Akhir"}
)

// Write renders r as an xlsx workbook to w.
func Write(w io.Writer, r *cycle.Report) error {
	f, err := Workbook(r)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

// Workbook builds the workbook for r: the fixed sheets in FixedSheets order,
// then one ledger sheet per account of the adjusted ledger.
func Workbook(r *cycle.Report) (*excelize.File, error) {
	b, err := newBuilder()
	if err != nil {
		return nil, err
	}

	s := r.Statements
	steps := []func() error{
		func() error { return b.journal(SheetJournal, r.Journal) },
		func() error { return b.journal(SheetAdjustments, r.Adjustments) },
		func() error { return b.trialBalance(SheetUnadjustedTB, r.UnadjustedTrialBalance) },
		func() error { return b.trialBalance(SheetAdjustedTB, r.AdjustedTrialBalance) },
		func() error { return b.journal(SheetClosing, r.Closing) },
		func() error { return b.trialBalance(SheetClosedTB, r.ClosedTrialBalance) },
		func() error {
			return b.summary(SheetIncomeStatement, []summaryRow{
				{"Pendapatan", s.Revenue},
				{"Beban", s.Expense},
				{"Laba Bersih", s.NetIncome},
			})
		},
		func() error {
			return b.summary(SheetEquityStatement, []summaryRow{
				{"Modal Awal", s.BeginningEquity},
				{"Laba Bersih", s.NetIncome},
				{"Prive", s.Withdrawals},
				{"Modal Akhir", s.EndingEquity},
			})
		},
		func() error {
			return b.summary(SheetBalanceSheet, []summaryRow{
				{"Aktiva", s.TotalAssets},
				{"Kewajiban + Modal", s.LiabilitiesAndEquity},
			})
		},
		func() error { return b.ledgers(r.AdjustedLedger) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			b.f.Close()
			return nil, err
		}
	}

	b.f.SetActiveSheet(0)
	return b.f, nil
}

// ReadSheetNames returns the sheet names of an xlsx workbook in order.
func ReadSheetNames(r io.Reader) ([]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()
	return f.GetSheetList(), nil
}

type summaryRow struct {
	label  string
	amount decimal.Decimal
}

type builder struct {
	f      *excelize.File
	bold   int
	sheets int
}

func newBuilder() (*builder, error) {
	f := excelize.NewFile()
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("creating header style: %w", err)
	}
	return &builder{f: f, bold: bold}, nil
}

// sheet creates a sheet and writes its bold header row. The first sheet
// reuses the default sheet of a new file.
func (b *builder) sheet(name string, header []string) error {
	if b.sheets == 0 {
		if err := b.f.SetSheetName(b.f.GetSheetName(0), name); err != nil {
			return fmt.Errorf("naming sheet %q: %w", name, err)
		}
	} else if _, err := b.f.NewSheet(name); err != nil {
		return fmt.Errorf("creating sheet %q: %w", name, err)
	}
	b.sheets++

	row := make([]any, len(header))
	for i, h := range header {
		row[i] = h
	}
	if err := b.f.SetSheetRow(name, "A1", &row); err != nil {
		return fmt.Errorf("writing header of %q: %w", name, err)
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	if err := b.f.SetCellStyle(name, "A1", last, b.bold); err != nil {
		return fmt.Errorf("styling header of %q: %w", name, err)
	}
	lastCol, _, err := excelize.SplitCellName(last)
	if err != nil {
		return err
	}
	return b.f.SetColWidth(name, "A", lastCol, 16)
}

func (b *builder) row(sheet string, n int, values ...any) error {
	cell, err := excelize.CoordinatesToCellName(1, n)
	if err != nil {
		return err
	}
	if err := b.f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("writing %s row %d: %w", sheet, n, err)
	}
	return nil
}

func (b *builder) journal(name string, lines model.Journal) error {
	if err := b.sheet(name, journalHeader); err != nil {
		return err
	}
	for i, l := range lines {
		if err := b.row(name, i+2, l.DateString(), l.EntryID, l.Account, amount(l.Debit), amount(l.Credit), l.Memo); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) trialBalance(name string, rows []model.TrialBalanceRow) error {
	if err := b.sheet(name, tbHeader); err != nil {
		return err
	}
	for i, r := range rows {
		if err := b.row(name, i+2, r.Account, amount(r.Debit), amount(r.Credit)); err != nil {
			return err
		}
	}
	debit, credit := ledger.TrialBalanceTotals(rows)
	return b.row(name, len(rows)+2, "Total", amount(debit), amount(credit))
}

func (b *builder) summary(name string, rows []summaryRow) error {
	if err := b.sheet(name, summaryHeader); err != nil {
		return err
	}
	for i, r := range rows {
		if err := b.row(name, i+2, r.label, amount(r.amount)); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) ledgers(l *ledger.Ledger) error {
	namer := NewSheetNamer(FixedSheets...)
	for _, account := range l.Accounts() {
		name := namer.Name(account)
		if err := b.sheet(name, ledgerHeader); err != nil {
			return err
		}
		for i, e := range l.Entries(account) {
			if err := b.row(name, i+2,
				e.DateString(), e.EntryID, e.Account, amount(e.Debit), amount(e.Credit), e.Memo,
				amount(e.NetMovement), amount(e.RunningBalance),
			); err != nil {
				return err
			}
		}
	}
	return nil
}

// amount converts to the float cells spreadsheets store.
func amount(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}
