package reports

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tallybook/tally/internal/ledger"
	"github.com/tallybook/tally/internal/model"
)

// TrialBalanceRow is a posting account with a non-zero balance.
type TrialBalanceRow struct {
	Account model.Account
	Balance decimal.Decimal // Dr-positive
	Debit   decimal.Decimal
	Credit  decimal.Decimal
}

// TrialBalanceGroup holds the rows of one account class.
type TrialBalanceGroup struct {
	Class model.AccountClass
	Rows  []TrialBalanceRow
}

// TrialBalance lists every posting account's cumulative balance in the debit
// or credit column.
type TrialBalance struct {
	AsOf        time.Time
	Groups      []TrialBalanceGroup // in statement class order
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
}

// Difference is TotalDebit minus TotalCredit.
func (tb *TrialBalance) Difference() decimal.Decimal {
	return tb.TotalDebit.Sub(tb.TotalCredit)
}

// Balanced reports whether the debit and credit columns agree.
func (tb *TrialBalance) Balanced() bool {
	return tb.Difference().IsZero()
}

// BuildTrialBalance totals every transaction dated up to the end of asOf's
// day. Positive balances go to the debit column and negative balances to the
// credit column. Zero balances are left out.
func BuildTrialBalance(accts []model.Account, txs []model.Transaction, asOf time.Time) *TrialBalance {
	balances := signedBalances(ledger.Through(txs, asOf))

	tb := &TrialBalance{AsOf: asOf}
	byClass := make(map[model.AccountClass][]TrialBalanceRow)
	seen := make(map[string]bool)
	for _, a := range sortAccountsByCode(accts) {
		if !a.IsPosting || seen[a.ID] {
			continue
		}
		seen[a.ID] = true
		bal := balances[a.ID]
		if bal.IsZero() {
			continue
		}
		debit, credit := ledger.Split(bal)
		byClass[a.Class] = append(byClass[a.Class], TrialBalanceRow{Account: a, Balance: bal, Debit: debit, Credit: credit})
		tb.TotalDebit = tb.TotalDebit.Add(debit)
		tb.TotalCredit = tb.TotalCredit.Add(credit)
	}
	for _, class := range model.Classes {
		tb.Groups = append(tb.Groups, TrialBalanceGroup{Class: class, Rows: byClass[class]})
	}
	return tb
}
