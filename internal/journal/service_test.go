package journal

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallybook/tally/internal/id"
	"github.com/tallybook/tally/internal/model"
)

func TestNewTransaction(t *testing.T) {
	tx := NewTransaction(Params{
		Date:      date(2025, 3, 1),
		Kind:      model.KindExpense,
		Amount:    dec("42.10"),
		AccountID: "exp_rent",
		Note:      "March",
	})

	assert.Len(t, tx.ID, 26)
	at, err := id.TransactionTime(tx.ID)
	require.NoError(t, err)
	assert.True(t, at.Equal(date(2025, 3, 1)), "ID carries the transaction date")
	assert.True(t, dec("42.10").Equal(tx.OriginalAmount), "original amount defaults to amount")
	assert.Equal(t, model.SourcePersonal, tx.Source)
	assert.Equal(t, model.KindExpense, tx.Kind)
}

func TestNewTransaction_PreEpochDateIsRejectedNotPanicking(t *testing.T) {
	var tx model.Transaction
	require.NotPanics(t, func() {
		tx = NewTransaction(Params{
			Date: date(1969, 12, 31), Kind: model.KindExpense, Amount: dec("5"),
			AccountID: "exp_rent", PaymentAccountID: "asset_bank_main",
		})
	})
	err := NewService(nil).Add(tx, defaultAccounts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "before 1970-01-01")
}

func TestService_AddReplaceRemove(t *testing.T) {
	svc := NewService(nil)
	tx := validTx()

	require.NoError(t, svc.Add(tx, defaultAccounts))
	assert.True(t, svc.UsesAccount("exp_rent"))
	assert.False(t, svc.UsesAccount("inc_salary"))

	err := svc.Add(tx, defaultAccounts)
	assert.ErrorContains(t, err, "duplicate transaction ID")

	bad := validTx()
	bad.ID = "t2"
	bad.Amount = dec("-5")
	assert.ErrorContains(t, svc.Add(bad, defaultAccounts), "is negative")
	assert.Len(t, svc.All(), 1)

	tx.Amount = dec("250")
	require.NoError(t, svc.Replace(tx, defaultAccounts))
	got, ok := svc.Get("t1")
	require.True(t, ok)
	assert.True(t, dec("250").Equal(got.Amount))

	missing := validTx()
	missing.ID = "t9"
	assert.True(t, errors.Is(svc.Replace(missing, defaultAccounts), ErrTransactionNotFound))

	require.NoError(t, svc.Remove("t1"))
	assert.Empty(t, svc.All())
	assert.True(t, errors.Is(svc.Remove("t1"), ErrTransactionNotFound))
}

func TestService_Find(t *testing.T) {
	a, b := validTx(), validTx()
	a.ID, b.ID = "01JH6Y3S9QAAAA", "01JH6Y3S9QBBBB"
	svc := NewService([]model.Transaction{a, b})

	got, err := svc.Find("01jh6y3s9qa")
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)

	_, err = svc.Find("01JH6Y3S")
	assert.True(t, errors.Is(err, ErrAmbiguousID))

	_, err = svc.Find("ZZZ")
	assert.True(t, errors.Is(err, ErrTransactionNotFound))

	_, err = svc.Find("")
	assert.True(t, errors.Is(err, ErrTransactionNotFound))
}

func TestService_SaveLoad(t *testing.T) {
	root := t.TempDir()

	later, earlier := validTx(), validTx()
	later.ID, later.Date = "later", date(2025, 2, 1)
	earlier.ID, earlier.Date = "earlier", date(2025, 1, 1)
	require.NoError(t, NewService([]model.Transaction{later, earlier}).Save(root))

	_, err := os.Stat(filepath.Join(root, "journal", "transactions.csv"))
	require.NoError(t, err)

	loaded, err := Load(root)
	require.NoError(t, err)
	require.Len(t, loaded.All(), 2)
	assert.Equal(t, "earlier", loaded.All()[0].ID, "saved in date order")
}

func TestLoad_NoJournalYet(t *testing.T) {
	svc, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, svc.All())
}
