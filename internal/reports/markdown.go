package reports

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tallybook/tally/internal/format"
	"github.com/tallybook/tally/internal/ledger"
)

func amountOrBlank(d decimal.Decimal, currency string) string {
	if d.IsZero() {
		return ""
	}
	return format.Money(d, currency)
}

func dateOnly(t time.Time) string {
	return t.Format(time.DateOnly)
}

// Markdown renders the trial balance.
func (tb *TrialBalance) Markdown(currency string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Trial Balance\n\nAs of %s\n\n", dateOnly(tb.AsOf))
	var rows [][]string
	for _, g := range tb.Groups {
		if len(g.Rows) == 0 {
			continue
		}
		rows = append(rows, []string{"**" + string(g.Class) + "**", "", "", ""})
		for _, r := range g.Rows {
			rows = append(rows, []string{r.Account.Code, r.Account.Name,
				amountOrBlank(r.Debit, currency), amountOrBlank(r.Credit, currency)})
		}
	}
	rows = append(rows, []string{"", "**Total**",
		"**" + format.Money(tb.TotalDebit, currency) + "**",
		"**" + format.Money(tb.TotalCredit, currency) + "**"})
	format.WriteTable(&b, []string{"Code", "Account", "Debit", "Credit"}, rows, 2, 3)
	if !tb.Balanced() {
		fmt.Fprintf(&b, "> Out of balance by %s\n", format.Money(tb.Difference(), currency))
	}
	return b.String()
}

// Markdown renders the income statement.
func (is *IncomeStatement) Markdown(currency string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Income Statement\n\n%s\n\n", is.Window)
	var rows [][]string
	add := func(title string, lines []Line, total decimal.Decimal) {
		rows = append(rows, []string{"**" + title + "**", ""})
		for _, l := range lines {
			rows = append(rows, []string{l.Name, format.Money(l.Amount, currency)})
		}
		rows = append(rows, []string{"Total " + strings.ToLower(title), format.Money(total, currency)})
	}
	add("Revenue", is.Revenue, is.TotalRevenue)
	add("Direct costs", is.DirectCosts, is.TotalDirectCosts)
	rows = append(rows, []string{"**Gross profit**", "**" + format.Money(is.GrossProfit, currency) + "**"})
	add("Operating expenses", is.OperatingExpenses, is.TotalOperatingExpenses)
	rows = append(rows, []string{"**Net income**", "**" + format.Money(is.NetIncome, currency) + "**"})
	format.WriteTable(&b, []string{"", "Amount"}, rows, 1)
	return b.String()
}

// Markdown renders the balance sheet as an indented account list per section.
func (bs *BalanceSheet) Markdown(currency string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Balance Sheet\n\nAs of %s\n\n", dateOnly(bs.AsOf))
	for _, s := range []Section{bs.Assets, bs.Liabilities, bs.Equity} {
		fmt.Fprintf(&b, "## %s\n\n", s.Class)
		for _, n := range ledger.Flatten(s.Roots) {
			if n.TotalBalance.IsZero() {
				continue
			}
			indent := strings.Repeat("  ", bs.Tree.Depth(n))
			fmt.Fprintf(&b, "%s- %s %s: %s\n", indent, n.Code, n.Name,
				format.Money(ledger.Natural(n.TotalBalance, n.NormalBalance), currency))
		}
		fmt.Fprintf(&b, "\n**Total %s: %s**\n\n", strings.ToLower(string(s.Class)), format.Money(s.Total, currency))
	}
	fmt.Fprintf(&b, "**Total liabilities and equity: %s**\n", format.Money(bs.TotalLiabilitiesAndEquity(), currency))
	if !bs.NetIncome.IsZero() {
		fmt.Fprintf(&b, "\nIncludes net income of %s closed to retained earnings.\n", format.Money(bs.NetIncome, currency))
	}
	if bs.OrphanedPostings > 0 {
		fmt.Fprintf(&b, "\n> %d posting(s) reference unknown accounts and are excluded.\n", bs.OrphanedPostings)
	}
	return b.String()
}

// Markdown renders the cash flow statement.
func (cf *CashFlow) Markdown(currency string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Cash Flow\n\n%s\n\n", cf.Window)
	var rows [][]string
	for _, a := range []struct {
		name string
		flow Flow
	}{
		{"Operating", cf.Operating},
		{"Investing", cf.Investing},
		{"Financing", cf.Financing},
	} {
		rows = append(rows,
			[]string{"**" + a.name + " activities**", ""},
			[]string{"Cash in", format.Money(a.flow.In, currency)},
			[]string{"Cash out", format.Money(a.flow.Out.Neg(), currency)},
			[]string{"Net " + strings.ToLower(a.name), format.Signed(a.flow.Net(), currency)},
		)
	}
	rows = append(rows,
		[]string{"**Net change in cash**", "**" + format.Signed(cf.NetChange, currency) + "**"},
		[]string{"Beginning cash", format.Money(cf.StartCash, currency)},
		[]string{"**Ending cash**", "**" + format.Money(cf.EndCash, currency) + "**"},
	)
	format.WriteTable(&b, []string{"", "Amount"}, rows, 1)
	return b.String()
}

// Markdown renders the dashboard.
func (d *Dashboard) Markdown(currency string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Dashboard\n\n%s\n\n## Cash\n\n", d.AsOf.Format("January 2006"))
	var rows [][]string
	for _, c := range d.Cash {
		rows = append(rows, []string{c.Account.Name, format.Money(c.Balance, currency)})
	}
	rows = append(rows, []string{"**Total**", "**" + format.Money(d.TotalCash, currency) + "**"})
	format.WriteTable(&b, []string{"Account", "Balance"}, rows, 1)

	b.WriteString("## Month to date\n\n")
	format.WriteTable(&b, []string{"", "Amount"}, [][]string{
		{"Revenue", format.Money(d.Revenue, currency)},
		{"Direct costs", format.Money(d.DirectCosts, currency)},
		{"Gross profit", format.Money(d.GrossProfit, currency)},
		{"Operating expenses", format.Money(d.OperatingExpenses, currency)},
		{"**Net profit**", "**" + format.Money(d.NetProfit, currency) + "**"},
	}, 1)

	if len(d.TopExpenses) > 0 {
		b.WriteString("## Top expenses\n\n")
		rows = rows[:0]
		for _, l := range d.TopExpenses {
			rows = append(rows, []string{l.Name, format.Money(l.Amount, currency)})
		}
		format.WriteTable(&b, []string{"Account", "Spent"}, rows, 1)
	}
	if len(d.Recent) > 0 {
		b.WriteString("## Recent transactions\n\n")
		rows = rows[:0]
		for _, t := range d.Recent {
			rows = append(rows, []string{dateOnly(t.Date), string(t.Kind), t.Note, format.Money(t.Amount, currency)})
		}
		format.WriteTable(&b, []string{"Date", "Kind", "Note", "Amount"}, rows, 3)
	}
	return b.String()
}

// Markdown renders the budget report.
func (r *BudgetReport) Markdown(currency string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Budget %s\n\n", r.PeriodKey)
	var rows [][]string
	for _, l := range r.Lines {
		status := format.Percent(l.Percent)
		if l.Over() {
			status += " over"
		}
		rows = append(rows, []string{l.Account.Name, format.Money(l.Limit, currency),
			format.Money(l.Spent, currency), format.Money(l.Remaining, currency), status})
	}
	rows = append(rows, []string{"**Total**", format.Money(r.Limit, currency),
		format.Money(r.Spent, currency), format.Money(r.Remaining, currency), format.Percent(r.Percent)})
	format.WriteTable(&b, []string{"Account", "Limit", "Spent", "Remaining", "Used"}, rows, 1, 2, 3, 4)
	return b.String()
}

// Markdown renders the depreciation schedule.
func (s *DepreciationSchedule) Markdown(currency string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Depreciation: %s\n\n", s.Asset.Name)
	fmt.Fprintf(&b, "Original value %s, monthly charge %s, book value %s\n\n",
		format.Money(s.Asset.OriginalValue, currency), format.Money(s.Monthly, currency), format.Money(s.BookValue, currency))
	if len(s.Rows) == 0 {
		b.WriteString("Fully depreciated.\n")
		return b.String()
	}
	rows := make([][]string, 0, len(s.Rows))
	for _, r := range s.Rows {
		rows = append(rows, []string{dateOnly(r.Date), format.Money(r.Amount, currency),
			format.Money(r.Accumulated, currency), format.Money(r.BookValue, currency)})
	}
	format.WriteTable(&b, []string{"Date", "Charge", "Accumulated", "Book value"}, rows, 1, 2, 3)
	return b.String()
}
