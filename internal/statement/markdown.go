package statement

import (
	"fmt"
	"strings"
	"time"

	"github.com/tallybook/tally/internal/format"
)

// Markdown renders the statement as a table with opening and closing lines.
func (s *Statement) Markdown(currency string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Statement: %s %s\n\n%s\n\n", s.Account.Code, s.Account.Name, s.Window)
	b.WriteString("| Date | Description | Debit | Credit | Balance |\n|---|---|---:|---:|---:|\n")
	fmt.Fprintf(&b, "| | Opening balance | | | %s |\n", format.Money(s.OpeningBalance, currency))
	for _, r := range s.Rows {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
			r.Transaction.Date.Format(time.DateOnly),
			strings.ReplaceAll(r.Description, "|", `\|`),
			blank(r.Debit.IsZero(), format.Money(r.Debit, currency)),
			blank(r.Credit.IsZero(), format.Money(r.Credit, currency)),
			format.Money(r.Balance, currency))
	}
	fmt.Fprintf(&b, "| | **Closing balance** | %s | %s | **%s** |\n\n",
		format.Money(s.TotalDebits, currency), format.Money(s.TotalCredits, currency), format.Money(s.ClosingBalance, currency))
	return b.String()
}

func blank(empty bool, s string) string {
	if empty {
		return ""
	}
	return s
}
