// Package reports builds financial statements from a chart of accounts and a
// journal. Builders are pure: they read their inputs and never modify them.
package reports

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tallybook/tally/internal/accounts"
	"github.com/tallybook/tally/internal/ledger"
	"github.com/tallybook/tally/internal/model"
)

// Line is one account row of a report.
type Line struct {
	AccountID string
	Code      string
	Name      string
	Amount    decimal.Decimal
}

func lineFor(a model.Account, amount decimal.Decimal) Line {
	return Line{AccountID: a.ID, Code: a.Code, Name: a.Name, Amount: amount}
}

func sumLines(lines []Line) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Amount)
	}
	return total
}

// classAmount converts a Dr-positive amount to the sign its class is read in:
// revenue grows with credits, expenses with debits.
func classAmount(signed decimal.Decimal, class model.AccountClass) decimal.Decimal {
	return ledger.Natural(signed, accounts.DefaultNormalBalance(class))
}

// signedBalances returns the Dr-positive balance of every account touched by txs.
func signedBalances(txs []model.Transaction) map[string]decimal.Decimal {
	balances := make(map[string]decimal.Decimal)
	for _, t := range txs {
		balances[t.AccountID] = balances[t.AccountID].Add(t.Amount)
		if t.PaymentAccountID != "" {
			balances[t.PaymentAccountID] = balances[t.PaymentAccountID].Sub(t.Amount)
		}
	}
	return balances
}

func sortAccountsByCode(accts []model.Account) []model.Account {
	sorted := slices.Clone(accts)
	slices.SortStableFunc(sorted, func(a, b model.Account) int {
		return cmp.Compare(a.Code, b.Code)
	})
	return sorted
}

// PeriodWindow returns the window of a budget period key: "2025-01" is
// January 2025 and "2025" is the whole year.
func PeriodWindow(key string) (ledger.Window, error) {
	if t, err := time.Parse("2006-01", key); err == nil {
		return ledger.MonthWindow(t), nil
	}
	if t, err := time.Parse("2006", key); err == nil {
		return ledger.YearWindow(t), nil
	}
	return ledger.Window{}, fmt.Errorf("invalid budget period %q: want YYYY-MM or YYYY", key)
}
