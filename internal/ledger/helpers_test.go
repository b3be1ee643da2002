package ledger_test

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tallybook/tally/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func tx(amount, debit, credit string, at time.Time) model.Transaction {
	return model.Transaction{
		ID:               debit + ">" + credit + "@" + at.Format(time.RFC3339Nano),
		Date:             at,
		Kind:             model.KindTransfer,
		Amount:           dec(amount),
		AccountID:        debit,
		PaymentAccountID: credit,
	}
}

// seedTransactions mirrors the two seed postings of a new book.
func seedTransactions() []model.Transaction {
	return []model.Transaction{
		tx("15000", "asset_bank_main", "inc_salary", date(2025, 1, 28)),
		tx("450.50", "exp_groceries", "asset_bank_main", date(2025, 1, 26)),
	}
}
