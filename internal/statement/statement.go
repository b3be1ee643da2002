// Package statement reconstructs the running balance of an account, or of an
// account group, over a date window.
package statement

import (
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/tallybook/tally/internal/ledger"
	"github.com/tallybook/tally/internal/model"
)

// PartyDirectory resolves party IDs to display names.
type PartyDirectory interface {
	PartyName(id string) (string, bool)
}

// Parties is a PartyDirectory over a slice of parties.
type Parties []model.Party

// PartyName implements PartyDirectory.
func (ps Parties) PartyName(id string) (string, bool) {
	if id == "" {
		return "", false
	}
	for _, p := range ps {
		if p.ID == id {
			return p.Name, true
		}
	}
	return "", false
}

// Row is one in-window transaction with its effect on the statement.
type Row struct {
	Transaction    model.Transaction
	Debit          decimal.Decimal
	Credit         decimal.Decimal
	Balance        decimal.Decimal // running balance after this row
	PartyName      string
	SubAccountName string // set when a group statement row hit a child account
	Description    string
}

// Statement is the ledger of one account or group over a window. Balances are
// natural: they grow with debits for debit-normal accounts and with credits
// for credit-normal ones.
type Statement struct {
	Account        model.Account
	Window         ledger.Window
	OpeningBalance decimal.Decimal
	Rows           []Row
	ClosingBalance decimal.Decimal
	TotalDebits    decimal.Decimal
	TotalCredits   decimal.Decimal
}

// Build assembles the statement of targetID over w. Postings to any descendant
// of targetID count as postings to the target. Transactions before the window
// fold into the opening balance; transactions after it are ignored.
func Build(accounts []model.Account, txs []model.Transaction, targetID string, w ledger.Window, parties PartyDirectory) (*Statement, error) {
	byID := make(map[string]model.Account, len(accounts))
	for _, a := range accounts {
		if _, dup := byID[a.ID]; !dup {
			byID[a.ID] = a
		}
	}
	target, ok := byID[targetID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ledger.ErrAccountNotFound, targetID)
	}

	relevant, err := ledger.DescendantIDs(targetID, accounts)
	if err != nil {
		return nil, fmt.Errorf("resolving accounts under %s: %w", targetID, err)
	}

	sorted := slices.Clone(txs)
	slices.SortStableFunc(sorted, func(a, b model.Transaction) int {
		return a.Date.Compare(b.Date)
	})

	st := &Statement{Account: target, Window: w}
	running := decimal.Zero
	for _, t := range sorted {
		debit, credit := decimal.Zero, decimal.Zero
		if relevant.Has(t.AccountID) {
			debit = t.Amount
		}
		if relevant.Has(t.PaymentAccountID) {
			credit = t.Amount
		}
		if !relevant.Has(t.AccountID) && !relevant.Has(t.PaymentAccountID) {
			continue
		}

		impact := ledger.Impact(debit, credit, target.NormalBalance)
		switch {
		case w.Before(t.Date):
			st.OpeningBalance = st.OpeningBalance.Add(impact)
			running = running.Add(impact)
		case w.After(t.Date):
			continue
		default:
			running = running.Add(impact)
			st.TotalDebits = st.TotalDebits.Add(debit)
			st.TotalCredits = st.TotalCredits.Add(credit)
			st.Rows = append(st.Rows, newRow(t, debit, credit, running, target, relevant, byID, parties))
		}
	}
	st.ClosingBalance = running
	return st, nil
}

func newRow(t model.Transaction, debit, credit, balance decimal.Decimal, target model.Account,
	relevant ledger.IDSet, byID map[string]model.Account, parties PartyDirectory,
) Row {
	row := Row{Transaction: t, Debit: debit, Credit: credit, Balance: balance}
	if parties != nil {
		row.PartyName, _ = parties.PartyName(t.PartyID)
	}

	if len(relevant) > 1 && t.AccountID != target.ID && t.PaymentAccountID != target.ID {
		switch {
		case relevant.Has(t.AccountID):
			row.SubAccountName = byID[t.AccountID].Name
		case relevant.Has(t.PaymentAccountID):
			row.SubAccountName = byID[t.PaymentAccountID].Name
		}
	}

	row.Description = describe(t, row.PartyName, row.SubAccountName)
	return row
}

// describe renders "Party - note - [Sub Account] (Jan 2025)".
func describe(t model.Transaction, party, subAccount string) string {
	var parts []string
	if party != "" {
		parts = append(parts, party)
	}
	note := t.Note
	if note == "" {
		note = strings.ToUpper(string(t.Kind))
	}
	parts = append(parts, note)
	if subAccount != "" {
		parts = append(parts, "["+subAccount+"]")
	}
	return fmt.Sprintf("%s (%s)", strings.Join(parts, " - "), t.Date.Format("Jan 2006"))
}

// Net is the change in natural balance over the window.
func (s *Statement) Net() decimal.Decimal {
	return ledger.Impact(s.TotalDebits, s.TotalCredits, s.Account.NormalBalance)
}
