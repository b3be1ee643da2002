package reports_test

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tallybook/tally/internal/accounts"
	"github.com/tallybook/tally/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func post(kind model.TransactionKind, amount, debit, credit string, at time.Time, note string) model.Transaction {
	return model.Transaction{
		ID:               note,
		Date:             at,
		Kind:             kind,
		Amount:           dec(amount),
		AccountID:        debit,
		PaymentAccountID: credit,
		Note:             note,
	}
}

// january is a month of small-business activity on the default chart.
func january() []model.Transaction {
	bank := accounts.MainBankID
	return []model.Transaction{
		post(model.KindTransfer, "10000", bank, accounts.OpeningBalanceEquityID, date(2025, 1, 1), "opening"),
		post(model.KindIncome, "5000", bank, accounts.ConsultingRevenueID, date(2025, 1, 10), "consulting"),
		post(model.KindExpense, "300", "cogs_hosting", bank, date(2025, 1, 12), "hosting"),
		post(model.KindExpense, "1200", "exp_rent", bank, date(2025, 1, 15), "rent"),
		post(model.KindTransfer, "2000", "12100", bank, date(2025, 1, 20), "computer"),
		post(model.KindTransfer, "3000", bank, accounts.GeneralPayablesID, date(2025, 1, 22), "loan"),
		post(model.KindTransfer, "500", "asset_wallet", bank, date(2025, 1, 25), "top up"),
		post(model.KindExpense, "150", accounts.GroceriesID, "asset_wallet", date(2025, 1, 28), "groceries"),
		post(model.KindExpense, "1200", "exp_rent", bank, date(2025, 2, 5), "rent feb"),
	}
}
