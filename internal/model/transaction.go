package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind is decided when a transaction is created and never re-derived
// from the classes of the accounts it touches.
type TransactionKind string

const (
	KindIncome     TransactionKind = "income"
	KindExpense    TransactionKind = "expense"
	KindTransfer   TransactionKind = "transfer"
	KindAdjustment TransactionKind = "adjustment"
)

// Valid reports whether k is a known kind.
func (k TransactionKind) Valid() bool {
	switch k {
	case KindIncome, KindExpense, KindTransfer, KindAdjustment:
		return true
	}
	return false
}

// Source scopes a transaction to a part of the user's finances.
type Source string

const (
	SourcePersonal   Source = "personal"
	SourceStableJob  Source = "stable_job"
	SourceSideHustle Source = "side_hustle"
)

// Transaction debits AccountID and, when set, credits PaymentAccountID by Amount.
// Amount is in the base unit of account; OriginalAmount and Currency are kept
// for reference only and never converted.
type Transaction struct {
	ID               string
	Date             time.Time
	Kind             TransactionKind
	Amount           decimal.Decimal
	AccountID        string
	PaymentAccountID string // "" for one-sided entries
	OriginalAmount   decimal.Decimal
	Currency         string
	Source           Source
	Note             string
	PartyID          string
}

// TwoSided reports whether the transaction has a contra account.
func (t Transaction) TwoSided() bool {
	return t.PaymentAccountID != ""
}

// BankTransaction represents a parsed bank CSV row.
type BankTransaction struct {
	Date        time.Time
	Description string
	Amount      decimal.Decimal // negative = money out, positive = money in
	Reference   string
	Type        string // bank transaction type (ACH_DEBIT, etc.)
}
