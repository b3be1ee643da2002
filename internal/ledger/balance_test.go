package ledger_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/tallybook/tally/internal/accounts"
	"github.com/tallybook/tally/internal/ledger"
	"github.com/tallybook/tally/internal/model"
)

func TestDirectBalance_SeedScenario(t *testing.T) {
	txs := seedTransactions()

	got := ledger.DirectBalance("asset_bank_main", txs)
	assert.True(t, got.Equal(dec("14549.50")), "got %s", got)

	natural := ledger.NaturalBalance("asset_bank_main", txs, model.Debit)
	assert.True(t, natural.Equal(dec("14549.50")), "got %s", natural)
}

func TestNaturalBalance_CreditNormal(t *testing.T) {
	txs := seedTransactions()

	assert.True(t, ledger.DirectBalance("inc_salary", txs).Equal(dec("-15000")))
	assert.True(t, ledger.NaturalBalance("inc_salary", txs, model.Credit).Equal(dec("15000")))
}

func TestDirectBalance_NoActivity(t *testing.T) {
	assert.True(t, ledger.DirectBalance("exp_rent", seedTransactions()).IsZero())
	assert.True(t, ledger.DirectBalance("exp_rent", nil).IsZero())
}

func TestDirectBalance_OneSided(t *testing.T) {
	txs := []model.Transaction{tx("100", "exp_rent", "", date(2025, 1, 1))}
	assert.True(t, ledger.DirectBalance("exp_rent", txs).Equal(dec("100")))
	assert.True(t, ledger.DirectBalance("", txs).IsZero(), "an empty contra side is not an account")
}

func TestDirectBalance_ZeroAmount(t *testing.T) {
	txs := []model.Transaction{tx("0", "exp_rent", "asset_cash", date(2025, 1, 1))}
	assert.True(t, ledger.DirectBalance("exp_rent", txs).IsZero())
	dr, cr := ledger.Sides("asset_cash", txs)
	assert.True(t, dr.IsZero())
	assert.True(t, cr.IsZero())
}

func TestDoubleEntryIdentity(t *testing.T) {
	txs := append(seedTransactions(),
		tx("1200", "exp_rent", "asset_bank_main", date(2025, 2, 1)),
		tx("300", "asset_cash", "asset_bank_main", date(2025, 2, 2)),
		tx("5000", "asset_ar_general", "rev_consulting", date(2025, 2, 3)),
		tx("5000", "asset_bank_main", "asset_ar_general", date(2025, 2, 20)),
		tx("83.33", "exp_depreciation", "12900", date(2025, 2, 28)),
	)

	total := decimal.Zero
	for _, a := range accounts.DefaultChart() {
		total = total.Add(ledger.DirectBalance(a.ID, txs))
	}
	assert.True(t, total.IsZero(), "sum of direct balances = %s", total)
}

func TestNaturalAndImpact(t *testing.T) {
	tests := []struct {
		debit, credit string
		normal        model.NormalBalance
		want          string
	}{
		{"100", "0", model.Debit, "100"},
		{"100", "0", model.Credit, "-100"},
		{"0", "40", model.Debit, "-40"},
		{"0", "40", model.Credit, "40"},
		{"25", "25", model.Debit, "0"},
	}
	for _, tt := range tests {
		got := ledger.Impact(dec(tt.debit), dec(tt.credit), tt.normal)
		assert.True(t, got.Equal(dec(tt.want)), "Impact(%s, %s, %s) = %s", tt.debit, tt.credit, tt.normal, got)
	}
	assert.True(t, ledger.Natural(dec("-7"), model.Credit).Equal(dec("7")))
	assert.True(t, ledger.Natural(dec("-7"), model.Debit).Equal(dec("-7")))
}

func TestSplit(t *testing.T) {
	dr, cr := ledger.Split(dec("12.5"))
	assert.True(t, dr.Equal(dec("12.5")))
	assert.True(t, cr.IsZero())

	dr, cr = ledger.Split(dec("-3"))
	assert.True(t, dr.IsZero())
	assert.True(t, cr.Equal(dec("3")))

	dr, cr = ledger.Split(decimal.Zero)
	assert.True(t, dr.IsZero())
	assert.True(t, cr.IsZero())
}

func TestCountOrphanedPostings(t *testing.T) {
	txs := []model.Transaction{
		tx("10", "asset_bank_main", "deleted_account", date(2025, 1, 1)),
		tx("10", "gone", "", date(2025, 1, 2)),
		tx("10", "asset_bank_main", "asset_cash", date(2025, 1, 3)),
	}
	assert.Equal(t, 2, ledger.CountOrphanedPostings(accounts.DefaultChart(), txs))
}
