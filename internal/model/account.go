package model

// AccountClass is the top-level accounting category of an account.
type AccountClass string

const (
	ClassAssets      AccountClass = "Assets"
	ClassLiabilities AccountClass = "Liabilities"
	ClassEquity      AccountClass = "Equity"
	ClassRevenue     AccountClass = "Revenue"
	ClassExpenses    AccountClass = "Expenses"
)

// Classes lists the five account classes in statement order.
var Classes = []AccountClass{ClassAssets, ClassLiabilities, ClassEquity, ClassRevenue, ClassExpenses}

// Valid reports whether c is one of the five known classes.
func (c AccountClass) Valid() bool {
	switch c {
	case ClassAssets, ClassLiabilities, ClassEquity, ClassRevenue, ClassExpenses:
		return true
	}
	return false
}

// AccountLevel marks the depth of an account in the chart. It is organizational only.
type AccountLevel string

const (
	LevelClass     AccountLevel = "class"
	LevelGroup     AccountLevel = "group"
	LevelGL        AccountLevel = "gl"
	LevelSubLedger AccountLevel = "sub_ledger"
)

// NormalBalance is the side on which an account's balance is naturally positive.
type NormalBalance string

const (
	Debit  NormalBalance = "debit"
	Credit NormalBalance = "credit"
)

// Account is a node in the chart of accounts.
type Account struct {
	ID            string
	Code          string
	Name          string
	Class         AccountClass
	Level         AccountLevel
	ParentID      string // "" = root
	NormalBalance NormalBalance
	IsPosting     bool
	IsSystem      bool
	IsDirectCost  bool   // expense activity reported as cost of goods sold
	LinkedAssetID string // asset whose accumulated depreciation this account carries
}

// IsRoot reports whether the account declares no parent.
func (a Account) IsRoot() bool {
	return a.ParentID == ""
}
