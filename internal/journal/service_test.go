package journal

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/siklus/internal/model"
)

func newTestService() *Service {
	return NewService(nil, nil)
}

func kasModal(amount string) TransactionInput {
	return TransactionInput{
		Date:          date(2024, 1, 1),
		DebitAccount:  "Kas",
		DebitAmount:   dec(amount),
		CreditAccount: "Modal",
		CreditAmount:  dec(amount),
		Memo:          "Modal awal",
	}
}

func TestAddTransaction(t *testing.T) {
	svc := newTestService()
	u := model.User{Username: "budi"}

	out, entryID, err := svc.AddTransaction(u, kasModal("1000"))
	require.NoError(t, err)
	assert.Equal(t, "2024-01-001", entryID)
	require.Len(t, out.Journal, 2)

	assert.Equal(t, "2024-01-001a", out.Journal[0].EntryID)
	assert.Equal(t, "Kas", out.Journal[0].Account)
	assert.True(t, out.Journal[0].Debit.Equal(dec("1000")))
	assert.True(t, out.Journal[0].Credit.IsZero())

	assert.Equal(t, "2024-01-001b", out.Journal[1].EntryID)
	assert.Equal(t, "Modal", out.Journal[1].Account)
	assert.True(t, out.Journal[1].Credit.Equal(dec("1000")))

	assert.Empty(t, u.Journal, "input user is not mutated")
	assert.Empty(t, out.Adjustments)
}

func TestAddTransaction_SequentialIDs(t *testing.T) {
	svc := newTestService()
	u, _, err := svc.AddTransaction(model.User{}, kasModal("10"))
	require.NoError(t, err)
	u, id2, err := svc.AddTransaction(u, kasModal("20"))
	require.NoError(t, err)
	assert.Equal(t, "2024-01-002", id2)

	in := kasModal("5")
	in.Date = date(2024, 2, 3)
	_, id3, err := svc.AddTransaction(u, in)
	require.NoError(t, err)
	assert.Equal(t, "2024-02-001", id3)
}

func TestAddTransaction_RejectsUnequalAmounts(t *testing.T) {
	svc := newTestService()
	u := model.User{Username: "budi"}

	in := kasModal("1000")
	in.CreditAmount = dec("999")
	out, _, err := svc.AddTransaction(u, in)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnbalanced))
	assert.Empty(t, out.Journal, "no partial save")
}

func TestAddTransaction_RestrictedAccounts(t *testing.T) {
	svc := NewService(newMockAccounts("Kas"), nil)
	_, _, err := svc.AddTransaction(model.User{}, kasModal("10"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidLine))
	assert.Contains(t, err.Error(), `unknown account "Modal"`)
}

func TestAddAdjustment(t *testing.T) {
	svc := newTestService()
	out, entryID, err := svc.AddAdjustment(model.User{}, AdjustmentInput{
		Date:          date(2024, 1, 31),
		DebitAccount:  "Beban Gaji",
		CreditAccount: "Utang Gaji",
		Amount:        dec("250"),
		Memo:          "Gaji terutang",
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-01-001", entryID)
	assert.Empty(t, out.Journal)
	require.Len(t, out.Adjustments, 2)
	assert.True(t, out.Adjustments[0].Debit.Equal(dec("250")))
	assert.True(t, out.Adjustments[1].Credit.Equal(dec("250")))
}

func TestAddAdjustment_RequiresPositiveAmount(t *testing.T) {
	svc := newTestService()
	_, _, err := svc.AddAdjustment(model.User{}, AdjustmentInput{
		Date: date(2024, 1, 31), DebitAccount: "Beban Gaji", CreditAccount: "Utang Gaji", Amount: dec("0"),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidLine))
}

func TestDeleteRow(t *testing.T) {
	svc := newTestService()
	u, _, err := svc.AddTransaction(model.User{}, kasModal("10"))
	require.NoError(t, err)

	out, removed, err := svc.DeleteRow(u, Primary, 0)
	require.NoError(t, err)
	assert.Equal(t, "Kas", removed.Account)
	require.Len(t, out.Journal, 1)
	assert.Equal(t, "Modal", out.Journal[0].Account)
	assert.Len(t, u.Journal, 2, "input user is not mutated")
}

func TestDeleteRow_OutOfRange(t *testing.T) {
	svc := newTestService()
	for _, idx := range []int{-1, 0, 5} {
		_, _, err := svc.DeleteRow(model.User{}, Primary, idx)
		assert.ErrorIs(t, err, ErrRowOutOfRange, "idx %d", idx)
	}
}

func TestDeleteEntry(t *testing.T) {
	svc := newTestService()
	u, id1, err := svc.AddTransaction(model.User{}, kasModal("10"))
	require.NoError(t, err)
	u, _, err = svc.AddTransaction(u, kasModal("20"))
	require.NoError(t, err)

	out, removed, err := svc.DeleteEntry(u, Primary, id1)
	require.NoError(t, err)
	assert.Len(t, removed, 2)
	require.Len(t, out.Journal, 2)
	assert.Equal(t, "2024-01-002a", out.Journal[0].EntryID)

	// Leg IDs resolve to their entry.
	out, removed, err = svc.DeleteEntry(out, Primary, "2024-01-002b")
	require.NoError(t, err)
	assert.Len(t, removed, 2)
	assert.Empty(t, out.Journal)
}

func TestDeleteEntry_NotFound(t *testing.T) {
	svc := newTestService()
	_, _, err := svc.DeleteEntry(model.User{}, Adjusting, "2024-01-001")
	assert.ErrorIs(t, err, ErrEntryNotFound)
}

func TestImport(t *testing.T) {
	svc := newTestService()
	lines := []model.Line{
		{Date: date(2024, 1, 1), Account: "Kas", Debit: dec("1000"), Memo: "Modal awal"},
		{Date: date(2024, 1, 1), Account: "Modal", Credit: dec("1000"), Memo: "Modal awal"},
		{Date: date(2024, 1, 3), Account: "Persediaan", Debit: dec("300")},
		{Date: date(2024, 1, 3), Account: "Kas", Credit: dec("100")},
		{Date: date(2024, 1, 3), Account: "Utang Bank", Credit: dec("200")},
	}

	out, ids, err := svc.Import(model.User{}, Primary, lines)
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-01-001", "2024-01-002"}, ids)
	require.Len(t, out.Journal, 5)
	assert.Equal(t, "2024-01-002c", out.Journal[4].EntryID)
}

func TestImport_ManyLegs(t *testing.T) {
	svc := newTestService()
	var lines []model.Line
	for i := 0; i < 27; i++ {
		lines = append(lines, model.Line{Date: date(2024, 1, 5), Account: "Persediaan", Debit: dec("1")})
	}
	lines = append(lines, model.Line{Date: date(2024, 1, 5), Account: "Kas", Credit: dec("27")})

	out, ids, err := svc.Import(model.User{}, Primary, lines)
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-01-001"}, ids)
	require.Len(t, out.Journal, 28)
	assert.Equal(t, "2024-01-001aa", out.Journal[26].EntryID)
	assert.Equal(t, "2024-01-001ab", out.Journal[27].EntryID)

	out, removed, err := svc.DeleteEntry(out, Primary, "2024-01-001")
	require.NoError(t, err)
	assert.Len(t, removed, 28)
	assert.Empty(t, out.Journal)
}

func TestImport_TrailingImbalance(t *testing.T) {
	svc := newTestService()
	lines := []model.Line{
		{Date: date(2024, 1, 1), Account: "Kas", Debit: dec("1000")},
		{Date: date(2024, 1, 1), Account: "Modal", Credit: dec("1000")},
		{Date: date(2024, 1, 2), Account: "Kas", Debit: dec("5")},
	}
	out, _, err := svc.Import(model.User{}, Primary, lines)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnbalanced)
	assert.Contains(t, err.Error(), "rows 3..3")
	assert.Empty(t, out.Journal)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "primary", Primary.String())
	assert.Equal(t, "adjusting", Adjusting.String())
}
