package accounts

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cleared-dev/siklus/internal/model"
)

// chartColumns is the header written to chart-of-accounts.csv. Reading
// matches columns by name, so hand-edited charts may reorder them and may
// drop description.
var chartColumns = []string{"account_id", "account_name", "account_type", "description"}

// ReadAccounts parses a chart of accounts. Names must be unique ignoring
// case, since lookups are case-insensitive.
func ReadAccounts(r io.Reader) ([]model.Account, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	head, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading accounts CSV: %w", err)
	}
	cols, err := chartIndexOf(head)
	if err != nil {
		return nil, err
	}

	var accts []model.Account
	seen := make(map[string]int)
	for row := 2; ; row++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading accounts CSV: %w", err)
		}

		acct, err := cols.account(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		key := normalize(acct.Name)
		if first, dup := seen[key]; dup {
			return nil, fmt.Errorf("row %d: account %q already defined on row %d", row, acct.Name, first)
		}
		seen[key] = row
		accts = append(accts, acct)
	}
	return accts, nil
}

// WriteAccounts writes a chart of accounts with the standard header.
func WriteAccounts(w io.Writer, accts []model.Account) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(chartColumns); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, a := range accts {
		rec := []string{strconv.Itoa(a.ID), a.Name, string(a.Type), a.Description}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("writing account %q: %w", a.Name, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// chartIndex maps column names to positions; desc is -1 when absent.
type chartIndex struct {
	id, name, typ, desc int
}

func chartIndexOf(head []string) (chartIndex, error) {
	pos := make(map[string]int, len(head))
	for i, h := range head {
		pos[strings.ToLower(strings.TrimSpace(h))] = i
	}
	idx := chartIndex{desc: -1}
	for _, c := range []struct {
		name string
		dst  *int
	}{{"account_id", &idx.id}, {"account_name", &idx.name}, {"account_type", &idx.typ}} {
		i, ok := pos[c.name]
		if !ok {
			return chartIndex{}, fmt.Errorf("chart of accounts: missing column %q", c.name)
		}
		*c.dst = i
	}
	if i, ok := pos["description"]; ok {
		idx.desc = i
	}
	return idx, nil
}

func (c chartIndex) account(rec []string) (model.Account, error) {
	field := func(i int) string {
		if i < 0 || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	id, err := strconv.Atoi(field(c.id))
	if err != nil {
		return model.Account{}, fmt.Errorf("account_id %q is not a number", field(c.id))
	}
	name := field(c.name)
	if name == "" {
		return model.Account{}, errors.New("account_name is empty")
	}
	typ := model.AccountType(strings.ToLower(field(c.typ)))
	if !typ.Valid() {
		return model.Account{}, fmt.Errorf("unknown account_type %q for %s", field(c.typ), name)
	}
	return model.Account{ID: id, Name: name, Type: typ, Description: field(c.desc)}, nil
}
