package journal

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/siklus/internal/model"
)

// Header is the CSV header for journal.csv and adjustments.csv.
const Header = "entry_id,date,account,debit,credit,memo"

const (
	numFields  = 6
	colEntryID = 0
	colDate    = 1
	colAccount = 2
	colDebit   = 3
	colCredit  = 4
	colMemo    = 5
)

// ReadLines reads all lines from a journal CSV reader.
func ReadLines(r io.Reader) (model.Journal, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading journal CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	// Skip header row.
	var lines model.Journal
	for i, rec := range records[1:] {
		line, err := UnmarshalLine(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// WriteLines writes lines to a journal CSV writer (including header).
func WriteLines(w io.Writer, lines model.Journal) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, line := range lines {
		if err := cw.Write(MarshalLine(line)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalLine converts a Line to a CSV row.
func MarshalLine(line model.Line) []string {
	row := make([]string, numFields)
	row[colEntryID] = line.EntryID
	row[colDate] = line.DateString()
	row[colAccount] = line.Account
	if !line.Debit.IsZero() {
		row[colDebit] = line.Debit.StringFixed(2)
	}
	if !line.Credit.IsZero() {
		row[colCredit] = line.Credit.StringFixed(2)
	}
	row[colMemo] = line.Memo
	return row
}

// UnmarshalLine converts a CSV row to a Line. An empty date yields a
// dateless line.
func UnmarshalLine(record []string) (model.Line, error) {
	if len(record) != numFields {
		return model.Line{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	var date time.Time
	if record[colDate] != "" {
		var err error
		date, err = time.Parse(model.DateFormat, record[colDate])
		if err != nil {
			return model.Line{}, fmt.Errorf("parsing date %q: %w", record[colDate], err)
		}
	}

	debit, err := parseAmount(record[colDebit])
	if err != nil {
		return model.Line{}, fmt.Errorf("parsing debit %q: %w", record[colDebit], err)
	}
	credit, err := parseAmount(record[colCredit])
	if err != nil {
		return model.Line{}, fmt.Errorf("parsing credit %q: %w", record[colCredit], err)
	}

	return model.Line{
		EntryID: record[colEntryID],
		Date:    date,
		Account: record[colAccount],
		Debit:   debit,
		Credit:  credit,
		Memo:    record[colMemo],
	}, nil
}

func parseAmount(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}
