package reports

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tallybook/tally/internal/ledger"
	"github.com/tallybook/tally/internal/model"
)

// NetIncomeAdjustmentID identifies the synthetic transaction that closes the
// period's net income into retained earnings.
const NetIncomeAdjustmentID = "virtual_ni_adjustment"

// netIncomeContraID is the unattached side of the closing transaction.
const netIncomeContraID = "virtual_contra"

// Section is one class of the balance sheet.
type Section struct {
	Class model.AccountClass
	Roots []*ledger.Node
	Total decimal.Decimal // natural sign
}

// BalanceSheet is the cumulative position of assets, liabilities and equity.
type BalanceSheet struct {
	AsOf             time.Time
	Tree             *ledger.Tree
	Assets           Section
	Liabilities      Section
	Equity           Section
	NetIncome        decimal.Decimal // closed into retained earnings
	OrphanedPostings int
}

// TotalLiabilitiesAndEquity is the right-hand side of the accounting equation.
func (bs *BalanceSheet) TotalLiabilitiesAndEquity() decimal.Decimal {
	return bs.Liabilities.Total.Add(bs.Equity.Total)
}

// Balanced reports whether assets equal liabilities plus equity.
func (bs *BalanceSheet) Balanced() bool {
	return bs.Assets.Total.Equal(bs.TotalLiabilitiesAndEquity())
}

// BuildBalanceSheet builds the account tree of every transaction up to the end
// of asOf's day. Revenue and expenses are closed into retainedEarningsID with a
// synthetic transaction, crediting it for a profit and debiting it for a loss,
// so the equity section carries the result of operations.
func BuildBalanceSheet(accts []model.Account, txs []model.Transaction, asOf time.Time, retainedEarningsID string) (*BalanceSheet, error) {
	if !hasAccount(accts, retainedEarningsID) {
		return nil, fmt.Errorf("retained earnings account %q: %w", retainedEarningsID, ledger.ErrAccountNotFound)
	}

	through := ledger.Through(txs, asOf)
	tree, err := ledger.BuildTree(accts, through)
	if err != nil {
		return nil, fmt.Errorf("building account tree: %w", err)
	}
	netIncome := tree.ClassTotal(model.ClassRevenue).Add(tree.ClassTotal(model.ClassExpenses)).Neg()

	if !netIncome.IsZero() {
		closing := model.Transaction{
			ID:     NetIncomeAdjustmentID,
			Date:   ledger.EndOfDay(asOf),
			Kind:   model.KindAdjustment,
			Amount: netIncome.Abs(),
			Note:   "Net income",
		}
		if netIncome.IsPositive() {
			closing.AccountID, closing.PaymentAccountID = netIncomeContraID, retainedEarningsID
		} else {
			closing.AccountID, closing.PaymentAccountID = retainedEarningsID, netIncomeContraID
		}
		tree, err = ledger.BuildTree(accts, append(through, closing))
		if err != nil {
			return nil, fmt.Errorf("building account tree: %w", err)
		}
	}

	return &BalanceSheet{
		AsOf:             asOf,
		Tree:             tree,
		Assets:           section(tree, model.ClassAssets),
		Liabilities:      section(tree, model.ClassLiabilities),
		Equity:           section(tree, model.ClassEquity),
		NetIncome:        netIncome,
		OrphanedPostings: ledger.CountOrphanedPostings(accts, through),
	}, nil
}

func section(tree *ledger.Tree, class model.AccountClass) Section {
	return Section{
		Class: class,
		Roots: tree.Roots(class),
		Total: classAmount(tree.ClassTotal(class), class),
	}
}

func hasAccount(accts []model.Account, id string) bool {
	if id == "" {
		return false
	}
	for _, a := range accts {
		if a.ID == id {
			return true
		}
	}
	return false
}
