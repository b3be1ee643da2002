package accounts

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/tallybook/tally/internal/model"
)

// Header is the CSV header for chart-of-accounts.csv.
var Header = []string{
	"account_id", "code", "account_name", "class", "level", "parent_id",
	"normal_balance", "posting", "system", "direct_cost", "linked_asset_id",
}

const (
	numFields      = 11
	colID          = 0
	colCode        = 1
	colName        = 2
	colClass       = 3
	colLevel       = 4
	colParent      = 5
	colNormal      = 6
	colPosting     = 7
	colSystem      = 8
	colDirectCost  = 9
	colLinkedAsset = 10
)

// ReadAccounts reads chart-of-accounts.csv.
func ReadAccounts(r io.Reader) ([]model.Account, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading accounts CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	var accounts []model.Account
	for i, rec := range records[1:] {
		acct, err := UnmarshalAccount(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		accounts = append(accounts, acct)
	}
	return accounts, nil
}

// WriteAccounts writes chart-of-accounts.csv.
func WriteAccounts(w io.Writer, accounts []model.Account) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, acct := range accounts {
		if err := cw.Write(MarshalAccount(acct)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalAccount converts an Account to a CSV row.
func MarshalAccount(acct model.Account) []string {
	row := make([]string, numFields)
	row[colID] = acct.ID
	row[colCode] = acct.Code
	row[colName] = acct.Name
	row[colClass] = string(acct.Class)
	row[colLevel] = string(acct.Level)
	row[colParent] = acct.ParentID
	row[colNormal] = string(acct.NormalBalance)
	row[colPosting] = strconv.FormatBool(acct.IsPosting)
	row[colSystem] = strconv.FormatBool(acct.IsSystem)
	row[colDirectCost] = strconv.FormatBool(acct.IsDirectCost)
	row[colLinkedAsset] = acct.LinkedAssetID
	return row
}

// UnmarshalAccount converts a CSV row to an Account.
func UnmarshalAccount(record []string) (model.Account, error) {
	if len(record) != numFields {
		return model.Account{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	if record[colID] == "" {
		return model.Account{}, fmt.Errorf("empty account_id")
	}

	flags := make([]bool, 0, 3)
	for _, col := range []int{colPosting, colSystem, colDirectCost} {
		b, err := parseFlag(record[col])
		if err != nil {
			return model.Account{}, fmt.Errorf("parsing %s %q: %w", Header[col], record[col], err)
		}
		flags = append(flags, b)
	}

	normal := model.NormalBalance(record[colNormal])
	switch normal {
	case model.Debit, model.Credit:
	default:
		return model.Account{}, fmt.Errorf("invalid normal_balance %q", record[colNormal])
	}

	return model.Account{
		ID:            record[colID],
		Code:          record[colCode],
		Name:          record[colName],
		Class:         model.AccountClass(record[colClass]),
		Level:         model.AccountLevel(record[colLevel]),
		ParentID:      record[colParent],
		NormalBalance: normal,
		IsPosting:     flags[0],
		IsSystem:      flags[1],
		IsDirectCost:  flags[2],
		LinkedAssetID: record[colLinkedAsset],
	}, nil
}

// parseFlag accepts an empty cell as false.
func parseFlag(s string) (bool, error) {
	if s == "" {
		return false, nil
	}
	return strconv.ParseBool(s)
}
