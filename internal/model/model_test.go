package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAccountClassValid(t *testing.T) {
	for _, c := range Classes {
		assert.True(t, c.Valid(), "class %q", c)
	}
	assert.False(t, AccountClass("Income").Valid())
	assert.False(t, AccountClass("").Valid())
}

func TestTransactionKindValid(t *testing.T) {
	tests := []struct {
		kind TransactionKind
		want bool
	}{
		{KindIncome, true},
		{KindExpense, true},
		{KindTransfer, true},
		{KindAdjustment, true},
		{"refund", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.kind.Valid(), "Valid(%q)", tt.kind)
	}
}

func TestTwoSided(t *testing.T) {
	assert.True(t, Transaction{AccountID: "a", PaymentAccountID: "b"}.TwoSided())
	assert.False(t, Transaction{AccountID: "a"}.TwoSided())
}

func TestIsRoot(t *testing.T) {
	assert.True(t, Account{ID: "10000"}.IsRoot())
	assert.False(t, Account{ID: "11000", ParentID: "10000"}.IsRoot())
}

func TestMonthlyDepreciation(t *testing.T) {
	tests := []struct {
		name  string
		asset Asset
		want  string
	}{
		{"even", Asset{OriginalValue: decimal.NewFromInt(12000), UsefulLifeYears: 5}, "200"},
		{"rounded", Asset{OriginalValue: decimal.NewFromInt(1000), UsefulLifeYears: 1}, "83.33"},
		{"no life", Asset{OriginalValue: decimal.NewFromInt(1000)}, "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, decimal.RequireFromString(tt.want).Equal(tt.asset.MonthlyDepreciation()),
				"got %s", tt.asset.MonthlyDepreciation())
		})
	}
}

func TestFrequencyValid(t *testing.T) {
	assert.True(t, Monthly.Valid())
	assert.False(t, Frequency("fortnightly").Valid())
}
