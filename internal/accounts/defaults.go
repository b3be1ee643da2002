package accounts

import "github.com/tallybook/tally/internal/model"

// Well-known account IDs in the default chart.
const (
	CashGroupID               = "11100"
	FixedAssetsGroupID        = "12000"
	AccumulatedDepreciationID = "12900"
	RetainedEarningsID        = "equity_retained"
	OpeningBalanceEquityID    = "equity_opening"
	DepreciationExpenseID     = "exp_depreciation"
	GeneralReceivablesID      = "asset_ar_general"
	GeneralPayablesID         = "liab_ap_general"
	MainBankID                = "asset_bank_main"
	ConsultingRevenueID       = "rev_consulting"
	SalaryID                  = "inc_salary"
	GroceriesID               = "exp_groceries"
)

// DefaultChart returns the hierarchical chart of accounts a new book starts with.
func DefaultChart() []model.Account {
	return []model.Account{
		// Assets
		group("10000", "10000", "ASSETS", model.ClassAssets, model.LevelClass, "", model.Debit),
		group("11000", "11000", "Current Assets", model.ClassAssets, model.LevelGroup, "10000", model.Debit),
		group(CashGroupID, "11100", "Cash & Cash Equivalents", model.ClassAssets, model.LevelGroup, "11000", model.Debit),
		posting(MainBankID, "11110", "Main Bank Account", model.ClassAssets, model.LevelGL, CashGroupID, model.Debit),
		posting("asset_cash", "11120", "Petty Cash", model.ClassAssets, model.LevelGL, CashGroupID, model.Debit),
		posting("asset_wallet", "11130", "Digital Wallet", model.ClassAssets, model.LevelGL, CashGroupID, model.Debit),
		group("11200", "11200", "Accounts Receivable", model.ClassAssets, model.LevelGL, "11000", model.Debit),
		posting(GeneralReceivablesID, "11201", "General Receivables", model.ClassAssets, model.LevelSubLedger, "11200", model.Debit),
		group("asset_parties", "11900", "Parties", model.ClassAssets, model.LevelGL, "11000", model.Debit),
		group(FixedAssetsGroupID, "12000", "Fixed Assets", model.ClassAssets, model.LevelGroup, "10000", model.Debit),
		posting("12100", "12100", "Computer Equipment", model.ClassAssets, model.LevelGL, FixedAssetsGroupID, model.Debit),
		system(posting(AccumulatedDepreciationID, "12900", "Accumulated Depreciation", model.ClassAssets, model.LevelGL, FixedAssetsGroupID, model.Credit)),

		// Liabilities
		group("20000", "20000", "LIABILITIES", model.ClassLiabilities, model.LevelClass, "", model.Credit),
		group("21000", "21000", "Current Liabilities", model.ClassLiabilities, model.LevelGroup, "20000", model.Credit),
		group("liab_ap", "21100", "Accounts Payable", model.ClassLiabilities, model.LevelGL, "21000", model.Credit),
		posting(GeneralPayablesID, "21101", "General Payables", model.ClassLiabilities, model.LevelSubLedger, "liab_ap", model.Credit),

		// Equity
		group("30000", "30000", "EQUITY", model.ClassEquity, model.LevelClass, "", model.Credit),
		system(posting(OpeningBalanceEquityID, "31000", "Opening Balance Equity", model.ClassEquity, model.LevelGL, "30000", model.Credit)),
		system(posting(RetainedEarningsID, "32000", "Retained Earnings", model.ClassEquity, model.LevelGL, "30000", model.Credit)),

		// Revenue
		group("40000", "40000", "REVENUE", model.ClassRevenue, model.LevelClass, "", model.Credit),
		group("41000", "41000", "Operating Revenue", model.ClassRevenue, model.LevelGroup, "40000", model.Credit),
		posting(ConsultingRevenueID, "41100", "Consulting Services", model.ClassRevenue, model.LevelGL, "41000", model.Credit),
		posting("rev_rental", "41200", "Rental Income", model.ClassRevenue, model.LevelGL, "41000", model.Credit),
		group("42000", "42000", "Professional Income", model.ClassRevenue, model.LevelGroup, "40000", model.Credit),
		posting(SalaryID, "42100", "Salary (Stable Job)", model.ClassRevenue, model.LevelGL, "42000", model.Credit),

		// Expenses
		group("50000", "50000", "EXPENSES", model.ClassExpenses, model.LevelClass, "", model.Debit),
		directCost(group("51000", "51000", "Direct Costs (COGS)", model.ClassExpenses, model.LevelGroup, "50000", model.Debit)),
		directCost(posting("cogs_hosting", "51100", "Web Hosting & Server", model.ClassExpenses, model.LevelGL, "51000", model.Debit)),
		directCost(posting("cogs_maintenance", "51200", "Property Maintenance", model.ClassExpenses, model.LevelGL, "51000", model.Debit)),
		group("60000", "60000", "Operating Expenses", model.ClassExpenses, model.LevelGroup, "50000", model.Debit),
		posting("exp_rent", "60100", "Rent Expense", model.ClassExpenses, model.LevelGL, "60000", model.Debit),
		posting(GroceriesID, "60200", "Groceries & Supplies", model.ClassExpenses, model.LevelGL, "60000", model.Debit),
		posting("exp_transport", "60300", "Transport & Fuel", model.ClassExpenses, model.LevelGL, "60000", model.Debit),
		posting("exp_utilities", "60400", "Utilities", model.ClassExpenses, model.LevelGL, "60000", model.Debit),
		system(posting(DepreciationExpenseID, "60900", "Depreciation Expense", model.ClassExpenses, model.LevelGL, "60000", model.Debit)),
	}
}

// group builds a non-posting system account.
func group(id, code, name string, class model.AccountClass, level model.AccountLevel, parent string, normal model.NormalBalance) model.Account {
	return model.Account{ID: id, Code: code, Name: name, Class: class, Level: level, ParentID: parent, NormalBalance: normal, IsSystem: true}
}

func posting(id, code, name string, class model.AccountClass, level model.AccountLevel, parent string, normal model.NormalBalance) model.Account {
	return model.Account{ID: id, Code: code, Name: name, Class: class, Level: level, ParentID: parent, NormalBalance: normal, IsPosting: true}
}

func system(a model.Account) model.Account {
	a.IsSystem = true
	return a
}

func directCost(a model.Account) model.Account {
	a.IsDirectCost = true
	return a
}

// DefaultNormalBalance returns the normal balance accounts of a class usually carry.
func DefaultNormalBalance(class model.AccountClass) model.NormalBalance {
	switch class {
	case model.ClassAssets, model.ClassExpenses:
		return model.Debit
	default:
		return model.Credit
	}
}
