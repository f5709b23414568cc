package importer

import (
	"io"
	"strings"

	"github.com/cleared-dev/siklus/internal/journal"
	"github.com/cleared-dev/siklus/internal/model"
)

// JournalParser reads files in the journal.csv format written by the
// directory store.
type JournalParser struct{}

func (p *JournalParser) Format() string { return "journal" }

func (p *JournalParser) Match(header []string) bool {
	return strings.EqualFold(strings.Join(trimAll(header), ","), journal.Header)
}

func (p *JournalParser) Parse(r io.Reader) ([]model.Line, error) {
	return journal.ReadLines(r)
}

func trimAll(ss []string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = strings.TrimSpace(strings.TrimPrefix(s, "\ufeff"))
	}
	return out
}
