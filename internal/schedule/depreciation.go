package schedule

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tallybook/tally/internal/ledger"
	"github.com/tallybook/tally/internal/model"
)

// FullyDepreciated is the book value at or below which an asset is not charged.
var FullyDepreciated = decimal.RequireFromString("0.01")

// DepreciationOptions names the accounts depreciation postings use.
type DepreciationOptions struct {
	ExpenseAccountID     string // debited
	AccumulatedAccountID string // credited when the asset has no linked account
}

// Depreciation posts the monthly straight-line charges that have fallen due
// for each asset since its last run (or its purchase). Book value comes from
// the asset's linked accumulated depreciation account when it has one, and
// from its stored value otherwise. It returns the new transactions and the
// updated copies of the assets that were charged.
func Depreciation(assets []model.Asset, accounts []model.Account, txs []model.Transaction, now time.Time,
	opts DepreciationOptions, newID IDFunc,
) ([]model.Transaction, []model.Asset, error) {
	if len(assets) == 0 {
		return nil, nil, nil
	}
	if !hasAccount(accounts, opts.ExpenseAccountID) {
		return nil, nil, fmt.Errorf("depreciation expense account %q: %w", opts.ExpenseAccountID, ledger.ErrAccountNotFound)
	}

	var (
		out     []model.Transaction
		updated []model.Asset
	)
	for _, asset := range assets {
		target, book, ok := bookValue(asset, accounts, txs, opts)
		if !ok || book.LessThanOrEqual(FullyDepreciated) {
			continue
		}
		monthly := asset.MonthlyDepreciation()
		if !monthly.IsPositive() {
			continue
		}

		next := NextRun(asset)
		var last time.Time
		for next.Before(now) && book.GreaterThan(FullyDepreciated) {
			amount := decimal.Min(monthly, book)
			out = append(out, model.Transaction{
				ID:               newID(next),
				Date:             next,
				Kind:             model.KindExpense,
				Amount:           amount,
				AccountID:        opts.ExpenseAccountID,
				PaymentAccountID: target,
				OriginalAmount:   amount,
				Currency:         asset.Currency,
				Source:           model.SourcePersonal,
				Note:             fmt.Sprintf("Auto Depreciation: %s (%s)", asset.Name, next.Format("Jan 2006")),
			})
			book = book.Sub(amount)
			last = next
			next = AddMonths(next, 1)
		}
		if last.IsZero() {
			continue
		}
		asset.Value = decimal.Max(decimal.Zero, book)
		asset.LastDepreciationDate = last
		updated = append(updated, asset)
	}
	return out, updated, nil
}

// NextRun is the date of the asset's next monthly charge.
func NextRun(asset model.Asset) time.Time {
	if !asset.LastDepreciationDate.IsZero() {
		return AddMonths(asset.LastDepreciationDate, 1)
	}
	return AddMonths(asset.PurchaseDate, 1)
}

// LinkedAccount returns the accumulated depreciation account dedicated to asset.
func LinkedAccount(asset model.Asset, accounts []model.Account) (model.Account, bool) {
	for _, a := range accounts {
		if a.LinkedAssetID != "" && a.LinkedAssetID == asset.ID {
			return a, true
		}
	}
	return model.Account{}, false
}

// bookValue returns the account to credit and the asset's current book value.
func bookValue(asset model.Asset, accounts []model.Account, txs []model.Transaction, opts DepreciationOptions) (string, decimal.Decimal, bool) {
	if linked, ok := LinkedAccount(asset, accounts); ok {
		accumulated := ledger.NaturalBalance(linked.ID, txs, model.Credit)
		return linked.ID, asset.OriginalValue.Sub(accumulated), true
	}
	if !hasAccount(accounts, opts.AccumulatedAccountID) {
		return "", decimal.Zero, false
	}
	return opts.AccumulatedAccountID, asset.Value, true
}

func hasAccount(accounts []model.Account, id string) bool {
	if id == "" {
		return false
	}
	for _, a := range accounts {
		if a.ID == id {
			return true
		}
	}
	return false
}
