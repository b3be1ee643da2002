package journal

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tallybook/tally/internal/model"
)

// Header is the CSV header for transactions.csv.
var Header = []string{
	"tx_id", "date", "kind", "amount", "account_id", "payment_account_id",
	"original_amount", "currency", "source", "party_id", "note",
}

const (
	numFields     = 11
	colID         = 0
	colDate       = 1
	colKind       = 2
	colAmount     = 3
	colAccount    = 4
	colPayment    = 5
	colOrigAmount = 6
	colCurrency   = 7
	colSource     = 8
	colParty      = 9
	colNote       = 10
)

// ReadTransactions reads all transactions from a transactions.csv reader.
func ReadTransactions(r io.Reader) ([]model.Transaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading journal CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	// Skip header row.
	var txs []model.Transaction
	for i, rec := range records[1:] {
		tx, err := UnmarshalTransaction(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

// WriteTransactions writes txs to a transactions.csv writer (including header).
func WriteTransactions(w io.Writer, txs []model.Transaction) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, tx := range txs {
		if err := cw.Write(MarshalTransaction(tx)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalTransaction converts a Transaction to a CSV row.
func MarshalTransaction(tx model.Transaction) []string {
	row := make([]string, numFields)
	row[colID] = tx.ID
	row[colDate] = formatDate(tx.Date)
	row[colKind] = string(tx.Kind)
	row[colAmount] = tx.Amount.String()
	row[colAccount] = tx.AccountID
	row[colPayment] = tx.PaymentAccountID

	if !tx.OriginalAmount.IsZero() {
		row[colOrigAmount] = tx.OriginalAmount.String()
	}

	row[colCurrency] = tx.Currency
	row[colSource] = string(tx.Source)
	row[colParty] = tx.PartyID
	row[colNote] = tx.Note

	return row
}

// UnmarshalTransaction converts a CSV row to a Transaction.
func UnmarshalTransaction(record []string) (model.Transaction, error) {
	if len(record) != numFields {
		return model.Transaction{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	date, err := parseDate(record[colDate])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing date %q: %w", record[colDate], err)
	}

	amount, err := decimal.NewFromString(record[colAmount])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing amount %q: %w", record[colAmount], err)
	}

	var original decimal.Decimal
	if record[colOrigAmount] != "" {
		original, err = decimal.NewFromString(record[colOrigAmount])
		if err != nil {
			return model.Transaction{}, fmt.Errorf("parsing original_amount %q: %w", record[colOrigAmount], err)
		}
	}

	return model.Transaction{
		ID:               record[colID],
		Date:             date,
		Kind:             model.TransactionKind(record[colKind]),
		Amount:           amount,
		AccountID:        record[colAccount],
		PaymentAccountID: record[colPayment],
		OriginalAmount:   original,
		Currency:         record[colCurrency],
		Source:           model.Source(record[colSource]),
		PartyID:          record[colParty],
		Note:             record[colNote],
	}, nil
}

// formatDate writes midnight UTC as a plain date and anything else as RFC 3339.
func formatDate(t time.Time) string {
	if t.Location() == time.UTC && t.Equal(t.Truncate(24*time.Hour)) {
		return t.Format(time.DateOnly)
	}
	return t.Format(time.RFC3339Nano)
}

func parseDate(s string) (time.Time, error) {
	if len(s) == len(time.DateOnly) {
		return time.Parse(time.DateOnly, s)
	}
	return time.Parse(time.RFC3339Nano, s)
}
