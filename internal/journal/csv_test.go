package journal

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/siklus/internal/model"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func TestRoundTrip(t *testing.T) {
	lines := model.Journal{
		{EntryID: "2024-01-001a", Date: date(2024, 1, 1), Account: "Kas", Debit: dec("1000.00"), Memo: "Modal awal"},
		{EntryID: "2024-01-001b", Date: date(2024, 1, 1), Account: "Modal", Credit: dec("1000.00"), Memo: "Modal awal"},
		{Account: "Ikhtisar Laba Rugi", Credit: dec("12.5"), Memo: "Tutup laba, akhir"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteLines(&buf, lines))
	assert.True(t, strings.HasPrefix(buf.String(), "entry_id,"))

	got, err := ReadLines(&buf)
	require.NoError(t, err)
	require.Len(t, got, 3)

	for i := range lines {
		assert.Equal(t, lines[i].EntryID, got[i].EntryID)
		assert.True(t, lines[i].Date.Equal(got[i].Date), "date row %d", i)
		assert.Equal(t, lines[i].Account, got[i].Account)
		assert.True(t, lines[i].Debit.Equal(got[i].Debit), "debit mismatch row %d", i)
		assert.True(t, lines[i].Credit.Equal(got[i].Credit), "credit mismatch row %d", i)
		assert.Equal(t, lines[i].Memo, got[i].Memo)
	}
	assert.False(t, got[2].Dated())
}

func TestMarshalLine_FixedDecimals(t *testing.T) {
	row := MarshalLine(model.Line{Date: date(2024, 1, 5), Account: "Beban Air", Debit: dec("127.5")})
	assert.Equal(t, "127.50", row[colDebit])
	assert.Empty(t, row[colCredit])
	assert.Equal(t, "2024-01-05", row[colDate])
}

func TestUnmarshalLine_Errors(t *testing.T) {
	tests := []struct {
		name   string
		record []string
		want   string
	}{
		{"short", []string{"a", "b"}, "expected 6 fields"},
		{"bad date", []string{"", "01/05/2024", "Kas", "1", "", ""}, "parsing date"},
		{"bad debit", []string{"", "2024-01-05", "Kas", "x", "", ""}, "parsing debit"},
		{"bad credit", []string{"", "2024-01-05", "Kas", "", "y", ""}, "parsing credit"},
	}
	for _, tt := range tests {
		_, err := UnmarshalLine(tt.record)
		require.Error(t, err, tt.name)
		assert.Contains(t, err.Error(), tt.want, tt.name)
	}
}

func TestReadLines_Empty(t *testing.T) {
	got, err := ReadLines(strings.NewReader(""))
	require.NoError(t, err)
	assert.Nil(t, got)
}
