package store

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/siklus/internal/model"
)

// userRecord is the JSON form of a user, keyed by username. The field
// names match data_user.json files written by earlier versions.
type userRecord struct {
	Password    string       `json:"password"`
	Journal     []lineRecord `json:"jurnal"`
	Adjustments []lineRecord `json:"jurnal_penyesuaian"`
}

type lineRecord struct {
	ID      string `json:"ID,omitempty"`
	Tanggal string `json:"Tanggal"`
	Akun    string `json:"Akun"`
	Debit   amount `json:"Debit"`
	Kredit  amount `json:"Kredit"`
	Memo    string `json:"Keterangan"`
}

// amount is written as a plain JSON number and read from either a number
// or a quoted string.
type amount decimal.Decimal

func (a amount) MarshalJSON() ([]byte, error) {
	return []byte(decimal.Decimal(a).StringFixed(2)), nil
}

func (a *amount) UnmarshalJSON(b []byte) error {
	var d decimal.Decimal
	if string(b) == "null" {
		*a = amount(decimal.Zero)
		return nil
	}
	if err := d.UnmarshalJSON(b); err != nil {
		return err
	}
	*a = amount(d)
	return nil
}

func toRecord(u model.User) userRecord {
	return userRecord{
		Password:    u.Password,
		Journal:     toLineRecords(u.Journal),
		Adjustments: toLineRecords(u.Adjustments),
	}
}

func toLineRecords(j model.Journal) []lineRecord {
	out := make([]lineRecord, 0, len(j))
	for _, l := range j {
		out = append(out, lineRecord{
			ID:      l.EntryID,
			Tanggal: l.DateString(),
			Akun:    l.Account,
			Debit:   amount(l.Debit),
			Kredit:  amount(l.Credit),
			Memo:    l.Memo,
		})
	}
	return out
}

func fromRecord(username string, rec userRecord) (model.User, error) {
	j, err := fromLineRecords(rec.Journal)
	if err != nil {
		return model.User{}, fmt.Errorf("user %q journal: %w", username, err)
	}
	adj, err := fromLineRecords(rec.Adjustments)
	if err != nil {
		return model.User{}, fmt.Errorf("user %q adjustments: %w", username, err)
	}
	return model.User{
		Username:    username,
		Password:    rec.Password,
		Journal:     j,
		Adjustments: adj,
	}, nil
}

func fromLineRecords(recs []lineRecord) (model.Journal, error) {
	if len(recs) == 0 {
		return nil, nil
	}
	out := make(model.Journal, 0, len(recs))
	for i, r := range recs {
		var date time.Time
		if r.Tanggal != "" {
			var err error
			// Older files may carry a time part ("2024-01-05 00:00:00").
			s := r.Tanggal
			if len(s) > len(model.DateFormat) {
				s = s[:len(model.DateFormat)]
			}
			date, err = time.Parse(model.DateFormat, s)
			if err != nil {
				return nil, fmt.Errorf("row %d: parsing date %q: %w", i, r.Tanggal, err)
			}
		}
		out = append(out, model.Line{
			EntryID: r.ID,
			Date:    date,
			Account: r.Akun,
			Debit:   decimal.Decimal(r.Debit),
			Credit:  decimal.Decimal(r.Kredit),
			Memo:    r.Memo,
		})
	}
	return out, nil
}
