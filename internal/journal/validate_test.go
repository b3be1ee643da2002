package journal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallybook/tally/internal/model"
)

// mockAccounts implements AccountChecker for testing. The value marks
// posting accounts; false entries are groups.
type mockAccounts map[string]bool

func (m mockAccounts) Get(id string) (model.Account, bool) {
	posting, ok := m[id]
	return model.Account{ID: id, IsPosting: posting}, ok
}

var defaultAccounts = mockAccounts{"asset_bank_main": true, "exp_rent": true, "inc_salary": true, "11100": false}

func validTx() model.Transaction {
	return model.Transaction{
		ID:               "t1",
		Date:             date(2025, 1, 15),
		Kind:             model.KindExpense,
		Amount:           dec("100.00"),
		AccountID:        "exp_rent",
		PaymentAccountID: "asset_bank_main",
	}
}

func TestValidateTransaction_Valid(t *testing.T) {
	assert.Empty(t, ValidateTransaction(validTx(), defaultAccounts))

	oneSided := validTx()
	oneSided.PaymentAccountID = ""
	assert.Empty(t, ValidateTransaction(oneSided, defaultAccounts))

	zero := validTx()
	zero.Amount = dec("0")
	assert.Empty(t, ValidateTransaction(zero, defaultAccounts), "zero amounts are allowed")
}

func TestValidateTransaction_Rules(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*model.Transaction)
		rule   int
	}{
		{"missing id", func(tx *model.Transaction) { tx.ID = "" }, 1},
		{"missing date", func(tx *model.Transaction) { tx.Date = date(1, 1, 1) }, 1},
		{"before epoch", func(tx *model.Transaction) { tx.Date = date(1969, 12, 31) }, 1},
		{"unknown kind", func(tx *model.Transaction) { tx.Kind = "refund" }, 2},
		{"negative amount", func(tx *model.Transaction) { tx.Amount = dec("-1") }, 3},
		{"too precise", func(tx *model.Transaction) { tx.Amount = dec("1.005") }, 3},
		{"missing account", func(tx *model.Transaction) { tx.AccountID = "" }, 4},
		{"unknown account", func(tx *model.Transaction) { tx.AccountID = "nope" }, 4},
		{"unknown payment account", func(tx *model.Transaction) { tx.PaymentAccountID = "nope" }, 4},
		{"same account", func(tx *model.Transaction) { tx.PaymentAccountID = tx.AccountID }, 5},
		{"group account", func(tx *model.Transaction) { tx.AccountID = "11100" }, 7},
		{"group payment account", func(tx *model.Transaction) { tx.PaymentAccountID = "11100" }, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := validTx()
			tt.mutate(&tx)
			errs := ValidateTransaction(tx, defaultAccounts)
			require.Len(t, errs, 1, "errors: %v", errs)
			assert.Equal(t, tt.rule, errs[0].Rule)
		})
	}
}

func TestValidateTransaction_EpochIsValid(t *testing.T) {
	tx := validTx()
	tx.Date = date(1970, 1, 1)
	assert.Empty(t, ValidateTransaction(tx, defaultAccounts))
}

func TestValidateJournal_DuplicateIDs(t *testing.T) {
	errs := ValidateJournal([]model.Transaction{validTx(), validTx()}, defaultAccounts)
	require.Len(t, errs, 1)
	assert.Equal(t, 6, errs[0].Rule)
	assert.Equal(t, "rule 6 [t1]: duplicate transaction ID", errs[0].Error())
}

func TestJoin(t *testing.T) {
	assert.NoError(t, Join(nil))

	err := Join([]ValidationError{{Rule: 3, TransactionID: "t1", Description: "amount -1 is negative"}})
	assert.EqualError(t, err, "validation failed: rule 3 [t1]: amount -1 is negative")

	var ve ValidationError
	assert.ErrorAs(t, err, &ve)
	assert.Equal(t, 3, ve.Rule)
}
