package store

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirStore_Contract(t *testing.T) {
	runStoreContract(t, NewDirStore(filepath.Join(t.TempDir(), "users"), nil))
}

func TestDirStore_Layout(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "users")
	s := NewDirStore(dir, nil)
	require.NoError(t, s.Put(context.Background(), sampleUser("budi")))

	for _, f := range []string{"user.yaml", "journal.csv", "adjustments.csv"} {
		_, err := os.Stat(filepath.Join(dir, "budi", f))
		assert.NoError(t, err, f)
	}

	data, err := os.ReadFile(filepath.Join(dir, "budi", "journal.csv"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "entry_id,date,account,debit,credit,memo\n"))
	assert.Contains(t, string(data), "2024-01-001a,2024-01-01,Kas,1000.00,,Modal awal")
}

func TestDirStore_IgnoresStrayDirs(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "users")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "not-a-user"), 0o755))

	users, err := NewDirStore(dir, nil).Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, users)
}
