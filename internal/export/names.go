package export

import (
	"strconv"
	"strings"
)

// Fixed sheet names, in workbook order.
const (
	SheetJournal         = "Jurnal Umum"
	SheetAdjustments     = "Jurnal Penyesuaian"
	SheetUnadjustedTB    = "Neraca Awal"
	SheetAdjustedTB      = "Neraca Disesuaikan"
	SheetClosing         = "Jurnal Penutup"
	SheetClosedTB        = "Neraca Akhir"
	SheetIncomeStatement = "Laba Rugi"
	SheetEquityStatement = "Perubahan Modal"
	SheetBalanceSheet    = "Neraca"
)

// LedgerSheetPrefix starts every per-account ledger sheet name.
const LedgerSheetPrefix = "Buku - "

const (
	maxSheetNameLen  = 31
	maxLedgerStemLen = maxSheetNameLen - len(LedgerSheetPrefix)
	collisionKeepLen = 22
)

// FixedSheets lists the non-ledger sheets in workbook order.
var FixedSheets = []string{
	SheetJournal,
	SheetAdjustments,
	SheetUnadjustedTB,
	SheetAdjustedTB,
	SheetClosing,
	SheetClosedTB,
	SheetIncomeStatement,
	SheetEquityStatement,
	SheetBalanceSheet,
}

// SheetNamer hands out unique per-account ledger sheet names. Names are
// compared case-insensitively, as spreadsheet applications do.
type SheetNamer struct {
	used map[string]struct{}
}

// NewSheetNamer returns a namer that will never return any of reserved.
func NewSheetNamer(reserved ...string) *SheetNamer {
	n := &SheetNamer{used: make(map[string]struct{}, len(reserved))}
	for _, r := range reserved {
		n.used[strings.ToLower(r)] = struct{}{}
	}
	return n
}

// Name returns the ledger sheet name for account. Every rune outside
// [A-Za-z0-9] becomes '_' and the result is cut to fit the 31-rune sheet
// name limit. A name already handed out is cut to 22 runes and given a
// numeric suffix, counting up from 1 until it is free.
func (n *SheetNamer) Name(account string) string {
	base := LedgerSheetPrefix + truncate(sanitize(account), maxLedgerStemLen)
	name := base
	for i := 1; n.taken(name); i++ {
		name = truncate(base, collisionKeepLen) + "_" + strconv.Itoa(i)
	}
	n.used[strings.ToLower(name)] = struct{}{}
	return name
}

func (n *SheetNamer) taken(name string) bool {
	_, ok := n.used[strings.ToLower(name)]
	return ok
}

func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' || r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			return r
		}
		return '_'
	}, s)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
