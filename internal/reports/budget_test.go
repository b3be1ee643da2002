package reports_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallybook/tally/internal/accounts"
	"github.com/tallybook/tally/internal/model"
	"github.com/tallybook/tally/internal/reports"
)

func januaryBudget() model.Budget {
	b := model.Budget{
		PeriodKey: "2025-01",
		AccountLimits: map[string]decimal.Decimal{
			"exp_rent":           dec("1000"),
			accounts.GroceriesID: dec("200"),
			"exp_transport":      dec("50"),
		},
		VisibleAccountIDs: []string{"exp_rent", accounts.GroceriesID},
	}
	b.Limit = reports.TotalLimit(b)
	return b
}

func TestTotalLimit(t *testing.T) {
	assert.True(t, dec("1200").Equal(januaryBudget().Limit), "hidden accounts do not count")
}

func TestBuildBudget(t *testing.T) {
	r, err := reports.BuildBudget(accounts.DefaultChart(), january(), januaryBudget())
	require.NoError(t, err)

	require.Len(t, r.Lines, 2)
	rent := r.Lines[0]
	assert.Equal(t, "exp_rent", rent.Account.ID)
	assert.True(t, dec("1200").Equal(rent.Spent))
	assert.True(t, dec("-200").Equal(rent.Remaining))
	assert.True(t, dec("120").Equal(rent.Percent))
	assert.True(t, rent.Over())

	groceries := r.Lines[1]
	assert.True(t, dec("150").Equal(groceries.Spent))
	assert.True(t, dec("75").Equal(groceries.Percent))
	assert.False(t, groceries.Over())

	assert.True(t, dec("1350").Equal(r.Spent))
	assert.True(t, dec("-150").Equal(r.Remaining))
	assert.True(t, dec("112.5").Equal(r.Percent))
	assert.True(t, r.Over())
}

func TestBuildBudget_YearWithoutVisibleList(t *testing.T) {
	r, err := reports.BuildBudget(accounts.DefaultChart(), january(), model.Budget{PeriodKey: "2025"})
	require.NoError(t, err)

	assert.Len(t, r.Lines, 7, "every posting expense account")
	assert.True(t, dec("2850").Equal(r.Spent))
	assert.True(t, r.Percent.IsZero(), "no limit, no percentage")
	assert.False(t, r.Over())
}

func TestBuildBudget_InvalidPeriod(t *testing.T) {
	_, err := reports.BuildBudget(accounts.DefaultChart(), january(), model.Budget{PeriodKey: "Jan"})
	assert.ErrorContains(t, err, "invalid budget period")
}

func TestPeriodWindow(t *testing.T) {
	w, err := reports.PeriodWindow("2024-02")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-01..2024-02-29", w.String())

	w, err = reports.PeriodWindow("2025")
	require.NoError(t, err)
	assert.Equal(t, "2025-01-01..2025-12-31", w.String())
}
