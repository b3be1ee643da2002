package reports

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tallybook/tally/internal/ledger"
	"github.com/tallybook/tally/internal/model"
)

// Flow is the cash received and paid for one activity.
type Flow struct {
	In  decimal.Decimal
	Out decimal.Decimal
}

// Net is In minus Out.
func (f Flow) Net() decimal.Decimal {
	return f.In.Sub(f.Out)
}

// CashFlowOptions locate the cash and fixed asset accounts in the chart.
type CashFlowOptions struct {
	CashGroupID       string // every descendant is a cash account
	FixedAssetGroupID string // contra accounts under it are investing activity
}

// CashFlow is a direct-method statement of cash flows.
type CashFlow struct {
	Window    ledger.Window
	Operating Flow
	Investing Flow
	Financing Flow
	StartCash decimal.Decimal
	NetChange decimal.Decimal
	EndCash   decimal.Decimal
}

// BuildCashFlow classifies every cash movement inside w by its contra account:
// revenue and expenses are operating, fixed assets are investing, other assets
// are operating and everything else, including movements without a known
// contra account, is financing. Transfers between two cash accounts are not
// cash flows and are skipped.
func BuildCashFlow(accts []model.Account, txs []model.Transaction, w ledger.Window, opts CashFlowOptions) (*CashFlow, error) {
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
	fixed := ledger.NewIDSet()
	if opts.FixedAssetGroupID != "" {
		if fixed, err = ledger.DescendantIDs(opts.FixedAssetGroupID, accts); err != nil {
			return nil, fmt.Errorf("resolving fixed asset accounts: %w", err)
		}
	}

	cf := &CashFlow{Window: w}
	for _, t := range txs {
		if !w.Before(t.Date) {
			continue
		}
		if cash.Has(t.AccountID) {
			cf.StartCash = cf.StartCash.Add(t.Amount)
		}
		if cash.Has(t.PaymentAccountID) {
			cf.StartCash = cf.StartCash.Sub(t.Amount)
		}
	}

	for _, t := range ledger.Within(txs, w) {
		in, out := cash.Has(t.AccountID), cash.Has(t.PaymentAccountID)
		switch {
		case in && out:
			continue
		case in:
			flow := cf.activity(byID, t.PaymentAccountID, fixed)
			flow.In = flow.In.Add(t.Amount)
		case out:
			flow := cf.activity(byID, t.AccountID, fixed)
			flow.Out = flow.Out.Add(t.Amount)
		}
	}

	cf.NetChange = cf.Operating.Net().Add(cf.Investing.Net()).Add(cf.Financing.Net())
	cf.EndCash = cf.StartCash.Add(cf.NetChange)
	return cf, nil
}

// activity returns the flow a movement against contraID belongs to.
func (cf *CashFlow) activity(byID map[string]model.Account, contraID string, fixed ledger.IDSet) *Flow {
	contra, ok := byID[contraID]
	if !ok {
		return &cf.Financing
	}
	switch contra.Class {
	case model.ClassRevenue, model.ClassExpenses:
		return &cf.Operating
	case model.ClassAssets:
		if fixed.Has(contra.ID) {
			return &cf.Investing
		}
		return &cf.Operating
	}
	return &cf.Financing
}
