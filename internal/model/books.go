package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PartyType classifies a counterparty.
type PartyType string

const (
	PartyCustomer PartyType = "customer"
	PartyVendor   PartyType = "vendor"
	PartyEmployee PartyType = "employee"
	PartyOther    PartyType = "other"
)

// Party is a customer, vendor or other counterparty.
type Party struct {
	ID              string    `yaml:"id"`
	Name            string    `yaml:"name"`
	Type            PartyType `yaml:"type"`
	Email           string    `yaml:"email,omitempty"`
	Phone           string    `yaml:"phone,omitempty"`
	LinkedAccountID string    `yaml:"linked_account_id,omitempty"`
}

// Asset is a fixed asset depreciated on a straight line.
type Asset struct {
	ID                   string          `yaml:"id"`
	Name                 string          `yaml:"name"`
	OriginalValue        decimal.Decimal `yaml:"original_value"`
	Value                decimal.Decimal `yaml:"value"` // book value in base currency
	Currency             string          `yaml:"currency,omitempty"`
	PurchaseDate         time.Time       `yaml:"purchase_date"`
	UsefulLifeYears      int             `yaml:"useful_life_years"`
	LastDepreciationDate time.Time       `yaml:"last_depreciation_date,omitempty"`
	Note                 string          `yaml:"note,omitempty"`
}

// Frequency is how often a recurring rule fires.
type Frequency string

const (
	Daily   Frequency = "daily"
	Weekly  Frequency = "weekly"
	Monthly Frequency = "monthly"
	Yearly  Frequency = "yearly"
)

// RecurringRule posts the same transaction on a fixed schedule.
type RecurringRule struct {
	ID               string          `yaml:"id"`
	Kind             TransactionKind `yaml:"kind"`
	AccountID        string          `yaml:"account_id"`
	PaymentAccountID string          `yaml:"payment_account_id,omitempty"`
	Amount           decimal.Decimal `yaml:"amount"`
	Currency         string          `yaml:"currency,omitempty"`
	Source           Source          `yaml:"source,omitempty"`
	PartyID          string          `yaml:"party_id,omitempty"`
	Note             string          `yaml:"note,omitempty"`
	Frequency        Frequency       `yaml:"frequency"`
	NextDueDate      time.Time       `yaml:"next_due_date"`
	Active           bool            `yaml:"active"`
	LastRunDate      time.Time       `yaml:"last_run_date,omitempty"`
}

// Budget holds spending limits for a month ("2025-01") or a year ("2025").
type Budget struct {
	PeriodKey         string                     `yaml:"period"`
	Limit             decimal.Decimal            `yaml:"limit"`
	AccountLimits     map[string]decimal.Decimal `yaml:"account_limits,omitempty"`
	VisibleAccountIDs []string                   `yaml:"visible_account_ids,omitempty"`
}

// MonthlyDepreciation is the straight-line monthly charge, rounded to cents.
// It is zero when the asset has no useful life.
func (a Asset) MonthlyDepreciation() decimal.Decimal {
	if a.UsefulLifeYears <= 0 {
		return decimal.Zero
	}
	months := decimal.NewFromInt(int64(a.UsefulLifeYears) * 12)
	return a.OriginalValue.Div(months).Round(2)
}

// Valid reports whether f is a known frequency.
func (f Frequency) Valid() bool {
	switch f {
	case Daily, Weekly, Monthly, Yearly:
		return true
	}
	return false
}
