package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallybook/tally/internal/model"
)

const chaseFixture = "../../testdata/chase_checking.csv"

const chaseHeader = "Details,Posting Date,Description,Amount,Type,Balance,Check or Slip #\n"

func TestChaseParser_Parse(t *testing.T) {
	data, err := os.ReadFile(chaseFixture)
	require.NoError(t, err)

	rows, err := (&ChaseParser{}).Parse(strings.NewReader(string(data)))
	require.NoError(t, err)
	require.Len(t, rows, 6)

	first := rows[0]
	assert.Equal(t, "GITHUB *PRO SUBSCRIPTION", first.Description)
	assert.Equal(t, "-4.00", first.Amount.StringFixed(2))
	assert.Equal(t, "ACH_DEBIT", first.Type)
	assert.Equal(t, time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC), first.Date)
	assert.Equal(t, "chase_20250103_GITHUBPROS", first.Reference)

	assert.Equal(t, "CARREFOUR CITY CENTER, DOHA", rows[2].Description, "quoted commas stay in the description")
	assert.Equal(t, time.Date(2025, 1, 22, 0, 0, 0, 0, time.UTC), rows[5].Date)

	for i, row := range rows {
		if i == 3 {
			assert.Equal(t, "3500.00", row.Amount.StringFixed(2), "the only money in")
			continue
		}
		assert.True(t, row.Amount.IsNegative(), "expected money out for %s", row.Description)
	}
}

func TestChaseParser_TrimsFields(t *testing.T) {
	in := chaseHeader + "DEBIT, 01/03/2025 ,  RENT  , -10.00 , ACH_DEBIT ,1,\n"
	rows, err := (&ChaseParser{}).Parse(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "RENT", rows[0].Description)
	assert.Equal(t, "ACH_DEBIT", rows[0].Type)
	assert.True(t, decimal.NewFromInt(-10).Equal(rows[0].Amount))
}

func TestParsers_Errors(t *testing.T) {
	tests := []struct {
		name    string
		parser  Parser
		in      string
		wantErr string
	}{
		{"chase bad date", &ChaseParser{}, chaseHeader + "DEBIT,NOTADATE,desc,-4.00,ACH_DEBIT,100.00,\n", "row 2: parsing date"},
		{"chase bad amount", &ChaseParser{}, chaseHeader + "DEBIT,01/03/2025,desc,NOTANUMBER,ACH_DEBIT,100.00,\n", "parsing amount"},
		{"chase wrong width", &ChaseParser{}, chaseHeader + "DEBIT,01/03/2025,desc,-4.00\n", "reading chase CSV"},
		{"simple short row", &SimpleParser{}, "date,description,amount\n2025-02-01,Salary\n", "expected at least 3 fields"},
		{"simple bad date", &SimpleParser{}, "date,description,amount\n02/01/2025,Salary,1\n", "parsing date"},
		{"simple bad amount", &SimpleParser{}, "date,description,amount\n2025-02-01,Salary,lots\n", "row 2: parsing amount"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.parser.Parse(strings.NewReader(tt.in))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParsers_HeaderOnly(t *testing.T) {
	tests := []struct {
		parser Parser
		in     string
	}{
		{&ChaseParser{}, chaseHeader},
		{&SimpleParser{}, "date,description,amount\n"},
		{&SimpleParser{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.parser.Format(), func(t *testing.T) {
			rows, err := tt.parser.Parse(strings.NewReader(tt.in))
			require.NoError(t, err)
			assert.Empty(t, rows)
		})
	}
}

func TestRegistry_Get(t *testing.T) {
	r := NewRegistry()
	r.Register(&ChaseParser{})

	for _, name := range []string{"chase", "Chase", "CHASE"} {
		p := r.Get(name)
		require.NotNil(t, p, name)
		assert.Equal(t, "chase", p.Format())
	}
	assert.Nil(t, r.Get("simple"), "only registered formats resolve")
}

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()
	assert.NotNil(t, r.Get("chase"))
	assert.NotNil(t, r.Get("simple"))
	assert.Equal(t, []string{"chase", "simple"}, r.Formats())
}

func TestRegistry_DuplicatePanics(t *testing.T) {
	r := NewRegistry()
	r.Register(&ChaseParser{})
	assert.Panics(t, func() { r.Register(&ChaseParser{}) })
}

func TestSimpleParser_Parse(t *testing.T) {
	in := "date,description,amount,memo\n2025-02-01,Salary,15000,feb\n2025-02-03,Coffee,-12.50,\n"
	p := &SimpleParser{}
	rows, err := p.Parse(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Salary", rows[0].Description)
	assert.Equal(t, "15000.00", rows[0].Amount.StringFixed(2))
	assert.Equal(t, "simple_20250201_Salary", rows[0].Reference)
	assert.True(t, rows[1].Amount.IsNegative())
}

func TestParseFile(t *testing.T) {
	rows, err := ParseFile(&ChaseParser{}, chaseFixture)
	require.NoError(t, err)
	assert.Len(t, rows, 6)

	_, err = ParseFile(&ChaseParser{}, filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

var importAccounts = Accounts{BankID: "asset_bank_main", IncomeID: "rev_consulting", ExpenseID: "exp_groceries"}

func TestToTransactions(t *testing.T) {
	rows, err := ParseFile(&ChaseParser{}, chaseFixture)
	require.NoError(t, err)
	rows = append(rows, model.BankTransaction{Description: "zero", Amount: decimal.Zero})

	txs, err := ToTransactions(rows, importAccounts)
	require.NoError(t, err)
	require.Len(t, txs, 6, "zero rows are skipped")

	out := txs[0]
	assert.Equal(t, model.KindExpense, out.Kind)
	assert.Equal(t, "exp_groceries", out.AccountID)
	assert.Equal(t, "asset_bank_main", out.PaymentAccountID)
	assert.Equal(t, "4.00", out.Amount.StringFixed(2))
	assert.Equal(t, "GITHUB *PRO SUBSCRIPTION", out.Note)
	assert.NotEmpty(t, out.ID)

	in := txs[3]
	assert.Equal(t, model.KindIncome, in.Kind)
	assert.Equal(t, "asset_bank_main", in.AccountID)
	assert.Equal(t, "rev_consulting", in.PaymentAccountID)
	assert.Equal(t, "3500.00", in.Amount.StringFixed(2))
}

func TestToTransactions_MissingAccounts(t *testing.T) {
	_, err := ToTransactions(nil, Accounts{BankID: "asset_bank_main"})
	assert.Error(t, err)
}

func TestDedupe(t *testing.T) {
	rows, err := ParseFile(&ChaseParser{}, chaseFixture)
	require.NoError(t, err)

	txs, err := ToTransactions(rows[:2], importAccounts)
	require.NoError(t, err)

	fresh := Dedupe(rows, txs, "asset_bank_main")
	assert.Len(t, fresh, 4)
	assert.Equal(t, "CARREFOUR CITY CENTER, DOHA", fresh[0].Description)

	// Postings against another bank do not count.
	assert.Len(t, Dedupe(rows, txs, "asset_bank_other"), 6)
}

func TestScan_FindsCSVs(t *testing.T) {
	dir := t.TempDir()
	importDir := filepath.Join(dir, "import")
	require.NoError(t, os.MkdirAll(importDir, 0o755))

	require.NoError(t, os.WriteFile(filepath.Join(importDir, "bank.csv"), []byte("data"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(importDir, "other.txt"), []byte("data"), 0o644))

	files, err := Scan(dir)
	require.NoError(t, err)
	assert.Len(t, files, 1)
	assert.Equal(t, "bank.csv", files[0].Name)
}

func TestScan_IgnoresProcessedDir(t *testing.T) {
	dir := t.TempDir()
	importDir := filepath.Join(dir, "import")
	processedDir := filepath.Join(importDir, "processed")
	require.NoError(t, os.MkdirAll(processedDir, 0o755))

	require.NoError(t, os.WriteFile(filepath.Join(importDir, "new.csv"), []byte("data"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(processedDir, "old.csv"), []byte("data"), 0o644))

	files, err := Scan(dir)
	require.NoError(t, err)
	assert.Len(t, files, 1)
	assert.Equal(t, "new.csv", files[0].Name)
}

func TestScan_EmptyDir(t *testing.T) {
	dir := t.TempDir()
	files, err := Scan(dir)
	require.NoError(t, err)
	assert.Nil(t, files)
}

func TestMarkProcessed(t *testing.T) {
	dir := t.TempDir()
	importDir := filepath.Join(dir, "import")
	require.NoError(t, os.MkdirAll(importDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(importDir, "bank.csv"), []byte("data"), 0o644))

	err := MarkProcessed(dir, "bank.csv")
	require.NoError(t, err)

	// Source gone.
	_, err = os.Stat(filepath.Join(importDir, "bank.csv"))
	assert.True(t, os.IsNotExist(err))

	// Destination exists.
	_, err = os.Stat(filepath.Join(dir, "import", "processed", "bank.csv"))
	assert.NoError(t, err)
}

func TestMarkProcessed_CreatesDir(t *testing.T) {
	dir := t.TempDir()
	importDir := filepath.Join(dir, "import")
	require.NoError(t, os.MkdirAll(importDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(importDir, "a.csv"), []byte("data"), 0o644))

	err := MarkProcessed(dir, "a.csv")
	require.NoError(t, err)

	info, err := os.Stat(filepath.Join(dir, "import", "processed"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
