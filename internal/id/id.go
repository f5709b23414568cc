package id

import (
	"fmt"
	"strconv"
	"strings"
)

// Leg positions within a double entry.
const (
	DebitLeg  = 0
	CreditLeg = 1
)

// FormatEntryID returns an entry ID like "2025-01-001".
func FormatEntryID(year, month, seq int) string {
	return fmt.Sprintf("%04d-%02d-%03d", year, month, seq)
}

// FormatLegID returns a leg ID like "2025-01-001a". Legs count a..z, then
// aa, ab, ... so any number of legs stays within EntryGroup's suffix.
func FormatLegID(entryID string, leg int) string {
	return entryID + legSuffix(leg)
}

func legSuffix(leg int) string {
	var buf [8]byte
	i := len(buf)
	for n := leg + 1; n > 0; n = (n - 1) / 26 {
		i--
		buf[i] = byte('a' + (n-1)%26)
	}
	return string(buf[i:])
}

// ParseEntryID parses "2025-01-001" (or a leg ID) into year, month, seq.
func ParseEntryID(id string) (year, month, seq int, err error) {
	parts := strings.SplitN(EntryGroup(id), "-", 3)
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("invalid entry ID format: %q", id)
	}

	year, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid year in entry ID %q: %w", id, err)
	}
	month, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid month in entry ID %q: %w", id, err)
	}
	seq, err = strconv.Atoi(parts[2])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid sequence in entry ID %q: %w", id, err)
	}
	return year, month, seq, nil
}

// EntryGroup strips the leg suffix from a leg ID.
// "2025-01-001a" -> "2025-01-001"
func EntryGroup(legID string) string {
	i := len(legID)
	for i > 0 && legID[i-1] >= 'a' && legID[i-1] <= 'z' {
		i--
	}
	return legID[:i]
}

// NextEntryID returns the next free entry ID for year/month given the IDs
// already in use. IDs from other months and unparseable IDs are ignored.
func NextEntryID(existing []string, year, month int) string {
	maxSeq := 0
	for _, e := range existing {
		y, m, seq, err := ParseEntryID(e)
		if err != nil || y != year || m != month {
			continue
		}
		if seq > maxSeq {
			maxSeq = seq
		}
	}
	return FormatEntryID(year, month, maxSeq+1)
}
