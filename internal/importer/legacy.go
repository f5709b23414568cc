package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/siklus/internal/model"
)

// LegacyParser reads journals exported as CSV by the spreadsheet-era tool:
// columns Tanggal, Akun, Debit, Kredit, Keterangan in any order, with an
// optional unnamed index column.
type LegacyParser struct{}

var legacyColumns = []string{"tanggal", "akun", "debit", "kredit", "keterangan"}

func (p *LegacyParser) Format() string { return "legacy" }

func (p *LegacyParser) Match(header []string) bool {
	_, err := legacyIndex(header)
	return err == nil
}

func (p *LegacyParser) Parse(r io.Reader) ([]model.Line, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading legacy CSV: %w", err)
	}
	if len(records) <= 1 {
		return nil, nil
	}

	idx, err := legacyIndex(records[0])
	if err != nil {
		return nil, err
	}

	var lines []model.Line
	for i, rec := range records[1:] {
		line, err := parseLegacyRow(rec, idx)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// legacyIndex maps each legacy column name to its position in header.
// Keterangan is optional.
func legacyIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int)
	for i, h := range trimAll(header) {
		idx[strings.ToLower(h)] = i
	}
	for _, col := range legacyColumns[:4] {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("missing column %q", col)
		}
	}
	return idx, nil
}

func parseLegacyRow(rec []string, idx map[string]int) (model.Line, error) {
	field := func(col string) string {
		i, ok := idx[col]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	var date time.Time
	if s := field("tanggal"); s != "" {
		if len(s) > len(model.DateFormat) {
			s = s[:len(model.DateFormat)]
		}
		var err error
		if date, err = time.Parse(model.DateFormat, s); err != nil {
			return model.Line{}, fmt.Errorf("parsing date %q: %w", field("tanggal"), err)
		}
	}

	debit, err := parseLegacyAmount(field("debit"))
	if err != nil {
		return model.Line{}, fmt.Errorf("parsing debit %q: %w", field("debit"), err)
	}
	credit, err := parseLegacyAmount(field("kredit"))
	if err != nil {
		return model.Line{}, fmt.Errorf("parsing credit %q: %w", field("kredit"), err)
	}

	return model.Line{
		Date:    date,
		Account: field("akun"),
		Debit:   debit,
		Credit:  credit,
		Memo:    field("keterangan"),
	}, nil
}

// parseLegacyAmount accepts "", "nan" and plain decimals such as "1000.0".
func parseLegacyAmount(s string) (decimal.Decimal, error) {
	if s == "" || strings.EqualFold(s, "nan") {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}
