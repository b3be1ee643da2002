package reports

import (
	"github.com/shopspring/decimal"

	"github.com/tallybook/tally/internal/ledger"
	"github.com/tallybook/tally/internal/model"
)

// IncomeStatement is the profit and loss of a period.
type IncomeStatement struct {
	Window                 ledger.Window
	Revenue                []Line
	DirectCosts            []Line
	OperatingExpenses      []Line
	TotalRevenue           decimal.Decimal
	TotalDirectCosts       decimal.Decimal
	GrossProfit            decimal.Decimal
	TotalOperatingExpenses decimal.Decimal
	NetIncome              decimal.Decimal
}

// BuildIncomeStatement reports the period activity of posting revenue and
// expense accounts. Expense accounts flagged as direct costs form the cost of
// sales above gross profit. Accounts with no net activity are left out.
func BuildIncomeStatement(accts []model.Account, txs []model.Transaction, w ledger.Window) *IncomeStatement {
	balances := signedBalances(ledger.Within(txs, w))

	is := &IncomeStatement{Window: w}
	seen := make(map[string]bool)
	for _, a := range sortAccountsByCode(accts) {
		if !a.IsPosting || seen[a.ID] {
			continue
		}
		seen[a.ID] = true
		amount := classAmount(balances[a.ID], a.Class)
		if amount.IsZero() {
			continue
		}
		switch {
		case a.Class == model.ClassRevenue:
			is.Revenue = append(is.Revenue, lineFor(a, amount))
		case a.Class == model.ClassExpenses && a.IsDirectCost:
			is.DirectCosts = append(is.DirectCosts, lineFor(a, amount))
		case a.Class == model.ClassExpenses:
			is.OperatingExpenses = append(is.OperatingExpenses, lineFor(a, amount))
		}
	}

	is.TotalRevenue = sumLines(is.Revenue)
	is.TotalDirectCosts = sumLines(is.DirectCosts)
	is.GrossProfit = is.TotalRevenue.Sub(is.TotalDirectCosts)
	is.TotalOperatingExpenses = sumLines(is.OperatingExpenses)
	is.NetIncome = is.GrossProfit.Sub(is.TotalOperatingExpenses)
	return is
}
