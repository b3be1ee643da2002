package reports

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tallybook/tally/internal/ledger"
	"github.com/tallybook/tally/internal/model"
)

const (
	dashboardTopExpenses = 5
	dashboardRecent      = 5
)

// CashPosition is the balance of one cash account.
type CashPosition struct {
	Account model.Account
	Balance decimal.Decimal
}

// DashboardOptions locate the cash accounts in the chart.
type DashboardOptions struct {
	CashGroupID string
}

// Dashboard is the at-a-glance view of the books on a given day. Future-dated
// transactions are never counted.
type Dashboard struct {
	AsOf              time.Time
	Month             ledger.Window
	Cash              []CashPosition
	TotalCash         decimal.Decimal
	Revenue           decimal.Decimal // month to date
	DirectCosts       decimal.Decimal
	OperatingExpenses decimal.Decimal
	GrossProfit       decimal.Decimal
	NetProfit         decimal.Decimal
	TopExpenses       []Line // largest operating expense accounts this month
	Recent            []model.Transaction
}

// BuildDashboard summarizes cash on hand up to the end of now's day and the
// business results of now's month to date.
func BuildDashboard(accts []model.Account, txs []model.Transaction, now time.Time, opts DashboardOptions) (*Dashboard, error) {
	byID := make(map[string]model.Account, len(accts))
	for _, a := range accts {
		if _, dup := byID[a.ID]; !dup {
			byID[a.ID] = a
		}
	}
	if _, ok := byID[opts.CashGroupID]; !ok {
		return nil, fmt.Errorf("cash group %q: %w", opts.CashGroupID, ledger.ErrAccountNotFound)
	}
	cash, err := ledger.DescendantIDs(opts.CashGroupID, accts)
	if err != nil {
		return nil, fmt.Errorf("resolving cash accounts: %w", err)
	}

	past := ledger.Through(txs, now)
	month := ledger.MonthWindow(now)
	d := &Dashboard{AsOf: now, Month: month}

	balances := signedBalances(past)
	for _, a := range sortAccountsByCode(accts) {
		if !a.IsPosting || !cash.Has(a.ID) {
			continue
		}
		bal := ledger.Natural(balances[a.ID], a.NormalBalance)
		d.Cash = append(d.Cash, CashPosition{Account: a, Balance: bal})
		d.TotalCash = d.TotalCash.Add(bal)
	}

	var revenue, cogs, opex decimal.Decimal
	spend := make(map[string]decimal.Decimal)
	for _, t := range ledger.Within(past, month) {
		debit, debitOK := byID[t.AccountID]
		credit, creditOK := byID[t.PaymentAccountID]
		if creditOK && credit.Class == model.ClassRevenue {
			revenue = revenue.Add(t.Amount)
		}
		if debitOK && debit.Class == model.ClassRevenue {
			revenue = revenue.Sub(t.Amount)
		}
		if debitOK && debit.Class == model.ClassExpenses {
			if debit.IsDirectCost {
				cogs = cogs.Add(t.Amount)
			} else {
				opex = opex.Add(t.Amount)
			}
		}
		if creditOK && credit.Class == model.ClassExpenses {
			if credit.IsDirectCost {
				cogs = cogs.Sub(t.Amount)
			} else {
				opex = opex.Sub(t.Amount)
			}
		}
		if t.Kind == model.KindExpense && debitOK && debit.Class == model.ClassExpenses && !debit.IsDirectCost {
			spend[debit.ID] = spend[debit.ID].Add(t.Amount)
		}
	}
	// Figures keep their natural sign: a month of net refunds shows negative revenue.
	d.Revenue, d.DirectCosts, d.OperatingExpenses = revenue, cogs, opex
	d.GrossProfit = d.Revenue.Sub(d.DirectCosts)
	d.NetProfit = d.GrossProfit.Sub(d.OperatingExpenses)

	for accountID, amount := range spend {
		d.TopExpenses = append(d.TopExpenses, lineFor(byID[accountID], amount))
	}
	slices.SortFunc(d.TopExpenses, func(a, b Line) int {
		if c := b.Amount.Cmp(a.Amount); c != 0 {
			return c
		}
		return cmp.Compare(a.Code, b.Code)
	})
	if len(d.TopExpenses) > dashboardTopExpenses {
		d.TopExpenses = d.TopExpenses[:dashboardTopExpenses]
	}

	d.Recent = slices.Clone(past)
	slices.SortStableFunc(d.Recent, func(a, b model.Transaction) int {
		return b.Date.Compare(a.Date)
	})
	if len(d.Recent) > dashboardRecent {
		d.Recent = d.Recent[:dashboardRecent]
	}
	return d, nil
}
