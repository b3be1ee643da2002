package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/tallybook/tally/internal/model"
)

// DirectBalance returns debits minus credits posted exactly to accountID.
// The result is Dr-positive whatever the account's normal balance.
func DirectBalance(accountID string, txs []model.Transaction) decimal.Decimal {
	dr, cr := Sides(accountID, txs)
	return dr.Sub(cr)
}

// NaturalBalance is DirectBalance seen from the account's normal side: positive
// cash, positive revenue earned, positive payable owed.
func NaturalBalance(accountID string, txs []model.Transaction, normal model.NormalBalance) decimal.Decimal {
	return Natural(DirectBalance(accountID, txs), normal)
}

// Sides sums the debit and credit amounts posted to accountID.
func Sides(accountID string, txs []model.Transaction) (debit, credit decimal.Decimal) {
	for _, t := range txs {
		if t.AccountID == accountID {
			debit = debit.Add(t.Amount)
		}
		if t.PaymentAccountID != "" && t.PaymentAccountID == accountID {
			credit = credit.Add(t.Amount)
		}
	}
	return debit, credit
}

// Natural converts a Dr-positive balance to the sign a reader expects for an
// account with the given normal balance. Every report crosses from the internal
// convention to display values through this function and nowhere else.
func Natural(signed decimal.Decimal, normal model.NormalBalance) decimal.Decimal {
	if normal == model.Credit {
		return signed.Neg()
	}
	return signed
}

// Impact is the change in natural balance caused by a debit and a credit of the
// given amounts.
func Impact(debit, credit decimal.Decimal, normal model.NormalBalance) decimal.Decimal {
	return Natural(debit.Sub(credit), normal)
}

// Split places a Dr-positive balance in a debit or credit column. Both columns
// are non-negative.
func Split(signed decimal.Decimal) (debit, credit decimal.Decimal) {
	if signed.IsPositive() {
		return signed, decimal.Zero
	}
	if signed.IsNegative() {
		return decimal.Zero, signed.Neg()
	}
	return decimal.Zero, decimal.Zero
}

// CountOrphanedPostings counts transaction sides that reference an account not
// present in accounts. Those sides contribute nothing to any balance.
func CountOrphanedPostings(accounts []model.Account, txs []model.Transaction) int {
	known := make(map[string]struct{}, len(accounts))
	for _, a := range accounts {
		known[a.ID] = struct{}{}
	}
	return countOrphans(known, txs)
}

func countOrphans[V any](known map[string]V, txs []model.Transaction) int {
	n := 0
	for _, t := range txs {
		if _, ok := known[t.AccountID]; !ok {
			n++
		}
		if t.PaymentAccountID == "" {
			continue
		}
		if _, ok := known[t.PaymentAccountID]; !ok {
			n++
		}
	}
	return n
}
