package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tallybook/tally/internal/model"
)

// columns maps the CSV layout of one bank's export onto BankTransaction
// fields. Every layout has a single header row.
type columns struct {
	bank       string
	dateLayout string
	width      int // exact fields per record, or -1 for ragged rows
	date       int
	desc       int
	amount     int
	kind       int // -1 when the export carries no transaction type
}

func (c columns) minWidth() int {
	return max(c.date, c.desc, c.amount, c.kind) + 1
}

func (c columns) parse(r io.Reader) ([]model.BankTransaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = c.width

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading %s CSV: %w", c.bank, err)
	}
	if len(records) <= 1 {
		return nil, nil
	}

	rows := make([]model.BankTransaction, 0, len(records)-1)
	for i, rec := range records[1:] {
		row, err := c.row(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (c columns) row(rec []string) (model.BankTransaction, error) {
	if len(rec) < c.minWidth() {
		return model.BankTransaction{}, fmt.Errorf("expected at least %d fields, got %d", c.minWidth(), len(rec))
	}
	field := func(i int) string { return strings.TrimSpace(rec[i]) }

	date, err := time.Parse(c.dateLayout, field(c.date))
	if err != nil {
		return model.BankTransaction{}, fmt.Errorf("parsing date %q: %w", rec[c.date], err)
	}
	amount, err := decimal.NewFromString(field(c.amount))
	if err != nil {
		return model.BankTransaction{}, fmt.Errorf("parsing amount %q: %w", rec[c.amount], err)
	}

	row := model.BankTransaction{
		Date:        date,
		Description: field(c.desc),
		Amount:      amount,
		Reference:   reference(c.bank, date, field(c.desc)),
	}
	if c.kind >= 0 {
		row.Type = field(c.kind)
	}
	return row, nil
}

// reference builds a stable row key like chase_20250103_GITHUBPROS from the
// date and the first ten alphanumerics of the description.
func reference(bank string, date time.Time, desc string) string {
	prefix := strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' || r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, desc)
	if len(prefix) > 10 {
		prefix = prefix[:10]
	}
	return fmt.Sprintf("%s_%s_%s", bank, date.Format("20060102"), prefix)
}
