package accounts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/siklus/internal/model"
)

func TestGetExists(t *testing.T) {
	svc := NewService(DefaultChart())

	acct, ok := svc.Get("kas")
	assert.True(t, ok, "lookups are case-insensitive")
	assert.Equal(t, 1010, acct.ID)

	assert.True(t, svc.Exists(" Beban Listrik "))
	assert.False(t, svc.Exists("Ikhtisar Laba Rugi"))

	typ, ok := svc.TypeOf("Utang Bank")
	assert.True(t, ok)
	assert.Equal(t, model.AccountTypeLiability, typ)
}

func TestByType(t *testing.T) {
	svc := NewService(DefaultChart())

	expenses := svc.ByType(model.AccountTypeExpense)
	assert.Len(t, expenses, 6)
	for _, a := range expenses {
		assert.Equal(t, model.AccountTypeExpense, a.Type)
	}
}

func TestNames(t *testing.T) {
	svc := NewService(DefaultChart())
	names := svc.Names()
	require.Len(t, names, 13)
	assert.Equal(t, "Kas", names[0])
	assert.Equal(t, "Beban Pengiriman", names[12])
}

func TestLoad_MissingChartFallsBackToDefault(t *testing.T) {
	svc, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Len(t, svc.All(), 13)
}

func TestSaveRoundTrip(t *testing.T) {
	chart := []model.Account{
		{ID: 1, Name: "Cash", Type: model.AccountTypeAsset},
		{ID: 2, Name: "Sales Revenue", Type: model.AccountTypeRevenue},
	}
	dir := t.TempDir()
	require.NoError(t, NewService(chart).Save(dir))

	_, err := os.Stat(filepath.Join(dir, "accounts", "chart-of-accounts.csv"))
	require.NoError(t, err)

	svc, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, chart, svc.All())
}

func TestLoad_Malformed(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "accounts"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ChartPath), []byte("a,b\n1\n"), 0o644))

	_, err := Load(dir)
	require.Error(t, err)
}
