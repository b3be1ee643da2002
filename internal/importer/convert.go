package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/tallybook/tally/internal/journal"
	"github.com/tallybook/tally/internal/model"
)

// Accounts names the ledger side of an import: the bank account the export
// belongs to and where unclassified money in and out lands.
type Accounts struct {
	BankID    string
	IncomeID  string
	ExpenseID string
}

// ToTransactions turns bank rows into journal transactions. Money in debits
// the bank and credits IncomeID; money out debits ExpenseID and credits the
// bank. Zero rows are skipped.
func ToTransactions(rows []model.BankTransaction, accts Accounts) ([]model.Transaction, error) {
	if accts.BankID == "" || accts.IncomeID == "" || accts.ExpenseID == "" {
		return nil, fmt.Errorf("import needs bank, income and expense accounts")
	}

	var txs []model.Transaction
	for _, row := range rows {
		if row.Amount.IsZero() {
			continue
		}
		p := journal.Params{
			Date:   row.Date,
			Amount: row.Amount.Abs(),
			Note:   row.Description,
		}
		if row.Amount.IsPositive() {
			p.Kind = model.KindIncome
			p.AccountID = accts.BankID
			p.PaymentAccountID = accts.IncomeID
		} else {
			p.Kind = model.KindExpense
			p.AccountID = accts.ExpenseID
			p.PaymentAccountID = accts.BankID
		}
		txs = append(txs, journal.NewTransaction(p))
	}
	return txs, nil
}

// Dedupe drops rows that already appear in the journal against bankID: same
// day, same absolute amount and the description as note.
func Dedupe(rows []model.BankTransaction, existing []model.Transaction, bankID string) []model.BankTransaction {
	seen := make(map[string]bool)
	for _, tx := range existing {
		if tx.AccountID != bankID && tx.PaymentAccountID != bankID {
			continue
		}
		seen[fingerprint(tx.Date, tx.Amount.StringFixed(2), tx.Note)] = true
	}

	var fresh []model.BankTransaction
	for _, row := range rows {
		if seen[fingerprint(row.Date, row.Amount.Abs().StringFixed(2), row.Description)] {
			continue
		}
		fresh = append(fresh, row)
	}
	return fresh
}

func fingerprint(date time.Time, amount, note string) string {
	return date.Format(time.DateOnly) + "|" + amount + "|" + strings.ToUpper(strings.TrimSpace(note))
}
