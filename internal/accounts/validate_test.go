package accounts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallybook/tally/internal/model"
)

func TestValidateAccount(t *testing.T) {
	chart := NewService(DefaultChart())
	valid := model.Account{
		ID: "exp_internet", Code: "60500", Name: "Internet", Class: model.ClassExpenses,
		ParentID: "60000", NormalBalance: model.Debit, IsPosting: true,
	}
	require.NoError(t, ValidateAccount(valid, chart))

	tests := []struct {
		name   string
		mutate func(a *model.Account)
		want   string
	}{
		{"missing id", func(a *model.Account) { a.ID = "" }, "account ID is required"},
		{"duplicate", func(a *model.Account) { a.ID = MainBankID }, "already exists"},
		{"missing code", func(a *model.Account) { a.Code = "" }, "code is required"},
		{"missing name", func(a *model.Account) { a.Name = "" }, "name is required"},
		{"bad class", func(a *model.Account) { a.Class = "Income" }, "unknown class"},
		{"bad normal", func(a *model.Account) { a.NormalBalance = "" }, "normal balance"},
		{"self parent", func(a *model.Account) { a.ParentID = a.ID }, "its own parent"},
		{"unknown parent", func(a *model.Account) { a.ParentID = "99999" }, "does not exist"},
		{"class mismatch", func(a *model.Account) { a.ParentID = CashGroupID }, "differs from parent class"},
		{"direct cost outside expenses", func(a *model.Account) {
			a.Class, a.ParentID, a.IsDirectCost = model.ClassRevenue, "41000", true
		}, "only expense accounts"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acct := valid
			tt.mutate(&acct)
			err := ValidateAccount(acct, chart)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
