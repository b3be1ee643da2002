package reports_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallybook/tally/internal/accounts"
	"github.com/tallybook/tally/internal/model"
	"github.com/tallybook/tally/internal/reports"
)

func TestBuildDashboard(t *testing.T) {
	now := time.Date(2025, 1, 28, 9, 0, 0, 0, time.UTC)

	d, err := reports.BuildDashboard(accounts.DefaultChart(), january(), now,
		reports.DashboardOptions{CashGroupID: accounts.CashGroupID})
	require.NoError(t, err)

	require.Len(t, d.Cash, 3)
	assert.Equal(t, accounts.MainBankID, d.Cash[0].Account.ID)
	assert.True(t, dec("14000").Equal(d.Cash[0].Balance))
	assert.True(t, d.Cash[1].Balance.IsZero(), "petty cash is listed even when empty")
	assert.True(t, dec("350").Equal(d.Cash[2].Balance), "same-day postings count")
	assert.True(t, dec("14350").Equal(d.TotalCash))

	assert.True(t, dec("5000").Equal(d.Revenue))
	assert.True(t, dec("300").Equal(d.DirectCosts))
	assert.True(t, dec("1350").Equal(d.OperatingExpenses))
	assert.True(t, dec("4700").Equal(d.GrossProfit))
	assert.True(t, dec("3350").Equal(d.NetProfit))

	require.Len(t, d.TopExpenses, 2)
	assert.Equal(t, "exp_rent", d.TopExpenses[0].AccountID)
	assert.Equal(t, accounts.GroceriesID, d.TopExpenses[1].AccountID)

	require.Len(t, d.Recent, 5)
	assert.Equal(t, "groceries", d.Recent[0].ID)
	assert.Equal(t, "rent", d.Recent[4].ID)
}

func TestBuildDashboard_FutureTransactionsIgnored(t *testing.T) {
	now := time.Date(2025, 1, 12, 9, 0, 0, 0, time.UTC)

	d, err := reports.BuildDashboard(accounts.DefaultChart(), january(), now,
		reports.DashboardOptions{CashGroupID: accounts.CashGroupID})
	require.NoError(t, err)

	assert.True(t, dec("14700").Equal(d.TotalCash))
	assert.True(t, d.OperatingExpenses.IsZero())
	assert.Empty(t, d.TopExpenses)
	assert.Len(t, d.Recent, 3)
	assert.Contains(t, d.Markdown("USD"), "**Net profit** | **$4,700.00**")
}

func TestBuildDashboard_NetRefundsShowNegativeRevenue(t *testing.T) {
	bank := accounts.MainBankID
	txs := []model.Transaction{
		post(model.KindIncome, "100", bank, accounts.ConsultingRevenueID, date(2025, 2, 2), "small job"),
		post(model.KindAdjustment, "300", accounts.ConsultingRevenueID, bank, date(2025, 2, 3), "refund"),
	}
	now := time.Date(2025, 2, 10, 9, 0, 0, 0, time.UTC)

	d, err := reports.BuildDashboard(accounts.DefaultChart(), txs, now,
		reports.DashboardOptions{CashGroupID: accounts.CashGroupID})
	require.NoError(t, err)

	assert.True(t, dec("-200").Equal(d.Revenue), "revenue %s", d.Revenue)
	assert.True(t, dec("-200").Equal(d.NetProfit))
	assert.True(t, dec("-200").Equal(d.TotalCash))
}
