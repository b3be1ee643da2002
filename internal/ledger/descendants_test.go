package ledger_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallybook/tally/internal/accounts"
	"github.com/tallybook/tally/internal/ledger"
	"github.com/tallybook/tally/internal/model"
)

func TestDescendantIDs_Group(t *testing.T) {
	set, err := ledger.DescendantIDs("11000", accounts.DefaultChart())
	require.NoError(t, err)

	assert.Equal(t, []string{
		"11000", accounts.CashGroupID, "11200",
		"asset_ar_general", "asset_bank_main", "asset_cash", "asset_parties", "asset_wallet",
	}, set.Sorted())
	assert.False(t, set.Has(accounts.FixedAssetsGroupID), "sibling group is excluded")
	assert.False(t, set.Has("10000"), "ancestors are excluded")
}

func TestDescendantIDs_Leaf(t *testing.T) {
	set, err := ledger.DescendantIDs("asset_cash", accounts.DefaultChart())
	require.NoError(t, err)
	assert.Equal(t, []string{"asset_cash"}, set.Sorted())
}

func TestDescendantIDs_Completeness(t *testing.T) {
	chart := accounts.DefaultChart()
	set, err := ledger.DescendantIDs("10000", chart)
	require.NoError(t, err)

	parents := make(map[string]string)
	for _, a := range chart {
		parents[a.ID] = a.ParentID
	}
	reaches := func(id string) bool {
		for cur := id; cur != ""; cur = parents[cur] {
			if cur == "10000" {
				return true
			}
		}
		return false
	}
	for _, a := range chart {
		assert.Equal(t, reaches(a.ID), set.Has(a.ID), "account %s", a.ID)
	}
}

func TestDescendantIDs_Cycle(t *testing.T) {
	chart := []model.Account{
		{ID: "a", ParentID: "b"},
		{ID: "b", ParentID: "a"},
	}
	_, err := ledger.DescendantIDs("a", chart)
	require.Error(t, err)

	var cycle *ledger.CycleError
	require.True(t, errors.As(err, &cycle))
	assert.Equal(t, cycle.Path[0], cycle.Path[len(cycle.Path)-1])
}

func TestIDSet(t *testing.T) {
	s := ledger.NewIDSet("a", "b")
	assert.True(t, s.Has("a"))
	assert.False(t, s.Has("c"))
	assert.False(t, ledger.NewIDSet("").Has(""), "empty ID never matches")
}
