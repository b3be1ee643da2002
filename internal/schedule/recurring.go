// Package schedule generates the postings that fall due for recurring rules
// and fixed-asset depreciation.
package schedule

import (
	"time"

	"github.com/tallybook/tally/internal/ledger"
	"github.com/tallybook/tally/internal/model"
)

// IDFunc returns the ID of a new transaction dated at.
type IDFunc func(at time.Time) string

// maxCatchUp bounds the postings one rule can generate in a single run.
const maxCatchUp = 1000

// Recurring posts every occurrence of the active rules that is due by now.
// Postings are dated now. It returns the new transactions and the updated
// copies of the rules that fired; rules that did not fire are not returned.
func Recurring(rules []model.RecurringRule, now time.Time, newID IDFunc) ([]model.Transaction, []model.RecurringRule) {
	var (
		txs     []model.Transaction
		updated []model.RecurringRule
	)
	for _, rule := range rules {
		if !rule.Active || rule.NextDueDate.IsZero() || !rule.Frequency.Valid() {
			continue
		}
		due := ledger.StartOfDay(rule.NextDueDate)
		fired := false
		for n := 0; !due.After(now) && n < maxCatchUp; n++ {
			txs = append(txs, recurringPosting(rule, now, newID))
			due, _ = Advance(due, rule.Frequency)
			fired = true
		}
		if !fired {
			continue
		}
		rule.NextDueDate = due
		rule.LastRunDate = now
		updated = append(updated, rule)
	}
	return txs, updated
}

func recurringPosting(rule model.RecurringRule, now time.Time, newID IDFunc) model.Transaction {
	note := rule.Note
	if note == "" {
		note = "Auto Transaction"
	}
	return model.Transaction{
		ID:               newID(now),
		Date:             now,
		Kind:             rule.Kind,
		Amount:           rule.Amount,
		AccountID:        rule.AccountID,
		PaymentAccountID: rule.PaymentAccountID,
		OriginalAmount:   rule.Amount,
		Currency:         rule.Currency,
		Source:           rule.Source,
		PartyID:          rule.PartyID,
		Note:             "Recurring: " + note,
	}
}
