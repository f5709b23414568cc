package commands_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/siklus/internal/auditlog"
	"github.com/cleared-dev/siklus/internal/export"
)

// tokoMaju records a month of a small shop: capital, a sale, an expense
// and one adjusting entry.
func tokoMaju(t *testing.T) string {
	t.Helper()
	dir := newWorkspace(t)
	addTx(t, dir, "2024-01-01", "Kas", "Modal", "1000", "Modal awal")
	addTx(t, dir, "2024-01-10", "Kas", "Pendapatan", "500", "Penjualan")
	addTx(t, dir, "2024-01-20", "Beban Listrik", "Kas", "150", "Bayar listrik")

	out, err := runIn(t, dir, "adjust", "add", "--date", "2024-01-31",
		"--debit-account", "Beban Gaji", "--credit-account", "Utang Gaji",
		"--amount", "25", "--memo", "Gaji terutang")
	require.NoError(t, err, out)
	return dir
}

func TestLedger(t *testing.T) {
	dir := tokoMaju(t)

	out, err := runIn(t, dir, "ledger")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Buku Besar Setelah Penyesuaian")
	assert.Contains(t, out, "## Kas")
	assert.Contains(t, out, "$1,350.00")
	assert.Contains(t, out, "## Utang Gaji")

	out, err = runIn(t, dir, "ledger", "--stage", "unadjusted")
	require.NoError(t, err, out)
	assert.NotContains(t, out, "## Utang Gaji")

	out, err = runIn(t, dir, "ledger", "--stage", "closed")
	require.NoError(t, err, out)
	assert.Contains(t, out, "## Ikhtisar Laba Rugi")

	out, err = runIn(t, dir, "ledger", "--stage", "final")
	require.Error(t, err)
	assert.Contains(t, out, "unknown stage")
}

func TestTrialBalance(t *testing.T) {
	dir := tokoMaju(t)

	out, err := runIn(t, dir, "trial-balance", "--stage", "adjusted")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Neraca Saldo Setelah Penyesuaian")
	assert.Contains(t, out, "$1,525.00")
	assert.NotContains(t, out, "Tidak seimbang")
}

func TestReport(t *testing.T) {
	dir := tokoMaju(t)

	out, err := runIn(t, dir, "report", "--beginning-equity", "1000")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Laporan Keuangan Toko Maju")
	assert.Contains(t, out, "Laba Rugi")
	assert.Contains(t, out, "$325.00", "net income is 500 - 150 - 25")
	assert.Contains(t, out, "Neraca seimbang.")
}

func TestReport_UnrecordedWithdrawal(t *testing.T) {
	dir := tokoMaju(t)

	out, err := runIn(t, dir, "report", "--beginning-equity", "1000", "--withdrawals", "100")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Neraca tidak seimbang: selisih $100.00.")
}

func TestReport_BadInput(t *testing.T) {
	dir := tokoMaju(t)

	out, err := runIn(t, dir, "report", "--withdrawals", "banyak")
	require.Error(t, err)
	assert.Contains(t, out, "invalid --withdrawals")
}

func TestExport(t *testing.T) {
	dir := tokoMaju(t)

	out, err := runIn(t, dir, "export", "--beginning-equity", "1000")
	require.NoError(t, err, out)

	path := filepath.Join(dir, "laporan_keuangan.xlsx")
	assert.Contains(t, out, "Wrote "+path)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	names, err := export.ReadSheetNames(f)
	require.NoError(t, err)
	assert.Equal(t, export.FixedSheets, names[:len(export.FixedSheets)])
	assert.Contains(t, names, "Buku - Kas")
	assert.Contains(t, names, "Buku - Beban_Listrik")
	assert.Contains(t, names, "Buku - Utang_Gaji")

	entries, err := auditlog.Read(dir)
	require.NoError(t, err)
	last := entries[len(entries)-1]
	assert.Equal(t, auditlog.ActionExport, last.Action)
	assert.Equal(t, "budi", last.User)
}

func TestExport_OutFlag(t *testing.T) {
	dir := tokoMaju(t)
	path := filepath.Join(t.TempDir(), "januari.xlsx")

	out, err := runIn(t, dir, "export", "--out", path)
	require.NoError(t, err, out)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestAccountsList(t *testing.T) {
	dir := t.TempDir()
	_, err := runSiklus(t, "init", dir, "--name", "Biz")
	require.NoError(t, err)

	out, err := runIn(t, dir, "accounts", "list")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Daftar Akun")
	assert.Contains(t, out, "Beban Pengiriman")
	assert.Contains(t, out, "liability")
}

func TestDirBackend(t *testing.T) {
	dir := newWorkspace(t, "--store-backend", "dir")
	addTx(t, dir, "2024-01-01", "Kas", "Modal", "1000", "Modal awal")

	_, err := os.Stat(filepath.Join(dir, "users", "budi", "journal.csv"))
	require.NoError(t, err)

	out, err := runIn(t, dir, "tx", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Modal awal")
}

func TestLogLevelFlag(t *testing.T) {
	dir := newWorkspace(t)

	out, err := runIn(t, dir, "--log-level", "debug", "tx", "add", "--date", "2024-01-01",
		"--debit-account", "Kas", "--credit-account", "Modal", "--debit-amount", "5")
	require.NoError(t, err, out)
	assert.Contains(t, out, "entry added")

	_, err = runIn(t, dir, "--log-level", "loud", "whoami")
	require.Error(t, err)
}
