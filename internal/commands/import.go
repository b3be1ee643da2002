package commands

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tallybook/tally/internal/config"
	"github.com/tallybook/tally/internal/importer"
)

func newImportCommand() *cobra.Command {
	var (
		bankName  string
		accountID string
		formatArg string
	)
	cmd := &cobra.Command{
		Use:   "import [file.csv...]",
		Short: "Import bank CSV exports (default: every file in import/)",
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := openBook(cmd)
			if err != nil {
				return err
			}
			defer b.close()

			bank, err := pickBank(b.cfg, bankName)
			if err != nil {
				return err
			}
			if accountID != "" {
				bank.AccountID = accountID
			}
			if formatArg != "" {
				bank.Type = formatArg
			}
			if bank.AccountID == "" || bank.Type == "" {
				return fmt.Errorf("import needs a bank account: configure bank_accounts in %s or pass --account and --format", config.FileName)
			}

			registry := importer.DefaultRegistry()
			parser := registry.Get(bank.Type)
			if parser == nil {
				return fmt.Errorf("unknown bank format %q (known: %s)", bank.Type, strings.Join(registry.Formats(), ", "))
			}

			scanned := len(args) == 0
			paths := args
			if scanned {
				files, err := importer.Scan(b.root)
				if err != nil {
					return err
				}
				for _, f := range files {
					paths = append(paths, f.Path)
				}
			}
			if len(paths) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing to import")
				return nil
			}

			accts := importer.Accounts{
				BankID:    bank.AccountID,
				IncomeID:  b.cfg.Ledger.UncategorizedIncome,
				ExpenseID: b.cfg.Ledger.UncategorizedExpense,
			}
			total := 0
			for _, path := range paths {
				n, err := importFile(b, parser, accts, path)
				if err != nil {
					return err
				}
				total += n
				if scanned {
					if err := importer.MarkProcessed(b.root, filepath.Base(path)); err != nil {
						return err
					}
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %d new transactions\n", filepath.Base(path), n)
			}

			details := fmt.Sprintf("%d transactions from %d files into %s", total, len(paths), bank.AccountID)
			return b.commit("import", "import_bank_csv", bank.AccountID, details)
		},
	}
	cmd.Flags().StringVar(&bankName, "bank", "", "configured bank account name or last four digits")
	cmd.Flags().StringVar(&accountID, "account", "", "bank account ID in the chart (overrides the configured one)")
	cmd.Flags().StringVar(&formatArg, "format", "", "export format (overrides the configured one)")
	return cmd
}

// importFile adds the rows of one export that are not in the journal yet.
func importFile(b *book, parser importer.Parser, accts importer.Accounts, path string) (int, error) {
	rows, err := importer.ParseFile(parser, path)
	if err != nil {
		return 0, err
	}
	fresh := importer.Dedupe(rows, b.store.Snapshot().Transactions, accts.BankID)
	txs, err := importer.ToTransactions(fresh, accts)
	if err != nil {
		return 0, err
	}
	for _, tx := range txs {
		tx.Currency = b.cfg.Business.BaseCurrency
		if err := b.store.AddTransaction(tx); err != nil {
			return 0, fmt.Errorf("%s: %w", filepath.Base(path), err)
		}
	}
	b.log.Info("bank export imported",
		zap.String("file", filepath.Base(path)),
		zap.Int("rows", len(rows)),
		zap.Int("duplicates", len(rows)-len(fresh)),
		zap.Int("added", len(txs)))
	return len(txs), nil
}

// pickBank finds the configured bank account by name or last four digits.
// With a single bank configured the name may be omitted.
func pickBank(cfg *config.Config, name string) (config.BankAccount, error) {
	if name == "" {
		if len(cfg.BankAccounts) == 1 {
			return cfg.BankAccounts[0], nil
		}
		return config.BankAccount{}, nil
	}
	for _, ba := range cfg.BankAccounts {
		if strings.EqualFold(ba.Name, name) || ba.LastFour == name {
			return ba, nil
		}
	}
	return config.BankAccount{}, fmt.Errorf("no bank account %q in %s", name, config.FileName)
}
