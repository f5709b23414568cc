// Package auditlog records every mutating command in logs/audit-log.csv.
package auditlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Actions written by the CLI.
const (
	ActionRegister         = "register"
	ActionLogin            = "login"
	ActionLogout           = "logout"
	ActionAddTransaction   = "tx_add"
	ActionDeleteRow        = "tx_delete_row"
	ActionDeleteEntry      = "tx_delete_entry"
	ActionImport           = "tx_import"
	ActionAddAdjustment    = "adjust_add"
	ActionDeleteAdjustment = "adjust_delete"
	ActionExport           = "export"
)

// Entry is one row in the audit log.
type Entry struct {
	Timestamp  time.Time
	User       string
	Action     string
	Details    string
	EntryID    string
	CommitHash string
}

// Header is the CSV header for audit-log.csv.
const Header = "timestamp,user,action,details,entry_id,commit_hash"

// Path is the log location relative to a workspace root.
var Path = filepath.Join("logs", "audit-log.csv")

const (
	numFields     = 6
	colTimestamp  = 0
	colUser       = 1
	colAction     = 2
	colDetails    = 3
	colEntryID    = 4
	colCommitHash = 5
)

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.UTC().Format(time.RFC3339)
	row[colUser] = e.User
	row[colAction] = e.Action
	row[colDetails] = e.Details
	row[colEntryID] = e.EntryID
	row[colCommitHash] = e.CommitHash
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}

	return Entry{
		Timestamp:  ts,
		User:       record[colUser],
		Action:     record[colAction],
		Details:    record[colDetails],
		EntryID:    record[colEntryID],
		CommitHash: record[colCommitHash],
	}, nil
}

// Append writes entries to <root>/logs/audit-log.csv, creating the file
// and header if needed. A zero Timestamp is stamped with the current time.
func Append(root string, entries ...Entry) error {
	path := filepath.Join(root, Path)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}

	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening audit log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	now := time.Now()
	for i, e := range entries {
		if e.Timestamp.IsZero() {
			e.Timestamp = now
		}
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// Read returns all entries from <root>/logs/audit-log.csv, or nil if the
// file does not exist.
func Read(root string) ([]Entry, error) {
	f, err := os.Open(filepath.Join(root, Path))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening audit log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

// ForUser filters entries by user.
func ForUser(entries []Entry, user string) []Entry {
	var out []Entry
	for _, e := range entries {
		if e.User == user {
			out = append(out, e)
		}
	}
	return out
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading audit log CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
