package reports

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/tallybook/tally/internal/ledger"
	"github.com/tallybook/tally/internal/model"
)

var hundred = decimal.NewFromInt(100)

// BudgetLine compares one expense account's spending with its limit.
type BudgetLine struct {
	Account   model.Account
	Limit     decimal.Decimal
	Spent     decimal.Decimal
	Remaining decimal.Decimal
	Percent   decimal.Decimal // of Limit; zero when there is no limit
}

// Over reports whether spending exceeded the limit.
func (l BudgetLine) Over() bool {
	return l.Limit.IsPositive() && l.Spent.GreaterThan(l.Limit)
}

// BudgetReport compares a period's expense transactions with its budget.
type BudgetReport struct {
	PeriodKey string
	Window    ledger.Window
	Lines     []BudgetLine
	Limit     decimal.Decimal
	Spent     decimal.Decimal
	Remaining decimal.Decimal
	Percent   decimal.Decimal
}

// Over reports whether total spending exceeded the budget.
func (r *BudgetReport) Over() bool {
	return r.Limit.IsPositive() && r.Spent.GreaterThan(r.Limit)
}

// BuildBudget totals the expense-kind transactions of the budget's period by
// debited account. Only the budget's visible posting expense accounts are
// reported; a budget with no visible list shows every one of them.
func BuildBudget(accts []model.Account, txs []model.Transaction, budget model.Budget) (*BudgetReport, error) {
	w, err := PeriodWindow(budget.PeriodKey)
	if err != nil {
		return nil, err
	}

	spent := make(map[string]decimal.Decimal)
	for _, t := range ledger.Within(txs, w) {
		if t.Kind == model.KindExpense {
			spent[t.AccountID] = spent[t.AccountID].Add(t.Amount)
		}
	}

	r := &BudgetReport{PeriodKey: budget.PeriodKey, Window: w, Limit: budget.Limit}
	seen := make(map[string]bool)
	for _, a := range sortAccountsByCode(accts) {
		if a.Class != model.ClassExpenses || !a.IsPosting || seen[a.ID] {
			continue
		}
		seen[a.ID] = true
		if len(budget.VisibleAccountIDs) > 0 && !slices.Contains(budget.VisibleAccountIDs, a.ID) {
			continue
		}
		line := BudgetLine{Account: a, Limit: budget.AccountLimits[a.ID], Spent: spent[a.ID]}
		line.Remaining = line.Limit.Sub(line.Spent)
		line.Percent = percentOf(line.Spent, line.Limit)
		r.Lines = append(r.Lines, line)
		r.Spent = r.Spent.Add(line.Spent)
	}
	r.Remaining = r.Limit.Sub(r.Spent)
	r.Percent = percentOf(r.Spent, r.Limit)
	return r, nil
}

// TotalLimit is the sum of the account limits of the budget's visible accounts.
func TotalLimit(budget model.Budget) decimal.Decimal {
	total := decimal.Zero
	for accountID, limit := range budget.AccountLimits {
		if len(budget.VisibleAccountIDs) == 0 || slices.Contains(budget.VisibleAccountIDs, accountID) {
			total = total.Add(limit)
		}
	}
	return total
}

func percentOf(part, whole decimal.Decimal) decimal.Decimal {
	if !whole.IsPositive() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred)
}
