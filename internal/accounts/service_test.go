package accounts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallybook/tally/internal/model"
)

func TestDefaultChart(t *testing.T) {
	chart := DefaultChart()
	require.Len(t, chart, 35)

	svc := NewService(chart)
	for _, id := range []string{CashGroupID, FixedAssetsGroupID, AccumulatedDepreciationID, RetainedEarningsID, DepreciationExpenseID, MainBankID} {
		assert.True(t, svc.Exists(id), "expected %s", id)
	}

	for _, acct := range chart {
		assert.NotEmpty(t, acct.Name, "account %s missing name", acct.ID)
		assert.True(t, acct.Class.Valid(), "account %s has class %q", acct.ID, acct.Class)
		if acct.ParentID != "" {
			parent, ok := svc.Get(acct.ParentID)
			require.True(t, ok, "account %s has unknown parent %s", acct.ID, acct.ParentID)
			assert.Equal(t, parent.Class, acct.Class, "account %s", acct.ID)
		}
	}

	accum, _ := svc.Get(AccumulatedDepreciationID)
	assert.Equal(t, model.Credit, accum.NormalBalance, "accumulated depreciation is a contra asset")
}

func TestDefaultChart_DirectCosts(t *testing.T) {
	for _, acct := range DefaultChart() {
		if acct.IsDirectCost {
			assert.Equal(t, model.ClassExpenses, acct.Class, "account %s", acct.ID)
			assert.Equal(t, "5", acct.Code[:1], "direct costs live in the 5xxxx range of the seed chart")
		}
	}
}

func TestGetExists(t *testing.T) {
	svc := NewService(DefaultChart())

	acct, ok := svc.Get(MainBankID)
	assert.True(t, ok)
	assert.Equal(t, "Main Bank Account", acct.Name)

	_, ok = svc.Get("nope")
	assert.False(t, ok)
	assert.False(t, svc.Exists("nope"))
}

func TestByClassAndChildren(t *testing.T) {
	svc := NewService(DefaultChart())

	equity := svc.ByClass(model.ClassEquity)
	assert.Len(t, equity, 3)

	cash := svc.Children(CashGroupID)
	ids := make([]string, 0, len(cash))
	for _, a := range cash {
		ids = append(ids, a.ID)
	}
	assert.ElementsMatch(t, []string{MainBankID, "asset_cash", "asset_wallet"}, ids)
}

func TestLinkedToAsset(t *testing.T) {
	chart := append(DefaultChart(), model.Account{
		ID: "accum_laptop", Code: "12910", Name: "Accum Dep - Laptop", Class: model.ClassAssets,
		ParentID: FixedAssetsGroupID, NormalBalance: model.Credit, IsPosting: true, LinkedAssetID: "laptop",
	})
	svc := NewService(chart)

	acct, ok := svc.LinkedToAsset("laptop")
	require.True(t, ok)
	assert.Equal(t, "accum_laptop", acct.ID)

	_, ok = svc.LinkedToAsset("")
	assert.False(t, ok)
}

func TestAddAndRemove(t *testing.T) {
	svc := NewService(DefaultChart())

	err := svc.Add(model.Account{
		ID: "exp_internet", Code: "60500", Name: "Internet", Class: model.ClassExpenses,
		Level: model.LevelGL, ParentID: "60000", NormalBalance: model.Debit, IsPosting: true,
	})
	require.NoError(t, err)
	assert.True(t, svc.Exists("exp_internet"))

	require.NoError(t, svc.Remove("exp_internet"))
	assert.False(t, svc.Exists("exp_internet"))
	assert.Len(t, svc.All(), 35)
}

func TestRemove_Protected(t *testing.T) {
	svc := NewService(DefaultChart())

	err := svc.Remove(RetainedEarningsID)
	assert.ErrorIs(t, err, ErrProtectedAccount)

	require.NoError(t, svc.Add(model.Account{
		ID: "exp_parent", Code: "61000", Name: "Parent", Class: model.ClassExpenses, NormalBalance: model.Debit,
	}))
	require.NoError(t, svc.Add(model.Account{
		ID: "exp_child", Code: "61100", Name: "Child", Class: model.ClassExpenses, ParentID: "exp_parent", NormalBalance: model.Debit, IsPosting: true,
	}))
	err = svc.Remove("exp_parent")
	assert.ErrorIs(t, err, ErrProtectedAccount)

	err = svc.Remove("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	svc := NewService(DefaultChart())

	dir := t.TempDir()
	require.NoError(t, svc.Save(dir))

	_, err := os.Stat(filepath.Join(dir, "accounts", "chart-of-accounts.csv"))
	require.NoError(t, err)

	svc2, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, svc.All(), svc2.All())
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(t.TempDir())
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
