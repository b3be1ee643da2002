package commands

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/tallybook/tally/internal/format"
	"github.com/tallybook/tally/internal/id"
	"github.com/tallybook/tally/internal/journal"
	"github.com/tallybook/tally/internal/ledger"
	"github.com/tallybook/tally/internal/model"
)

func newTxCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tx",
		Aliases: []string{"transaction"},
		Short:   "Record and manage transactions",
	}
	cmd.AddCommand(
		newTxAddCommand(),
		newTxEditCommand(),
		newTxDeleteCommand(),
		newTxListCommand(),
	)
	return cmd
}

// txFlags are the fields a transaction can be created or edited with.
type txFlags struct {
	date           string
	kind           string
	amount         string
	account        string
	payment        string
	originalAmount string
	currency       string
	source         string
	party          string
	note           string
}

func (f *txFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.date, "date", "", "transaction date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&f.kind, "kind", "", "income, expense, transfer or adjustment")
	cmd.Flags().StringVar(&f.amount, "amount", "", "amount in the base currency")
	cmd.Flags().StringVar(&f.account, "account", "", "account debited")
	cmd.Flags().StringVar(&f.payment, "from", "", "account credited (omit for a one-sided entry)")
	cmd.Flags().StringVar(&f.originalAmount, "original-amount", "", "amount in the original currency")
	cmd.Flags().StringVar(&f.currency, "currency", "", "original currency code")
	cmd.Flags().StringVar(&f.source, "source", "", "personal, stable_job or side_hustle")
	cmd.Flags().StringVar(&f.party, "party", "", "party ID")
	cmd.Flags().StringVar(&f.note, "note", "", "free-text note")
}

func parseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", s)
	}
	return d, nil
}

// apply copies every flag the user set onto tx.
func (f *txFlags) apply(cmd *cobra.Command, tx *model.Transaction) error {
	changed := cmd.Flags().Changed
	if changed("date") {
		d, err := parseDate(f.date)
		if err != nil {
			return err
		}
		tx.Date = d
	}
	if changed("kind") {
		tx.Kind = model.TransactionKind(strings.ToLower(f.kind))
	}
	if changed("amount") {
		amt, err := parseAmount(f.amount)
		if err != nil {
			return err
		}
		tx.Amount = amt
	}
	if changed("original-amount") {
		amt, err := parseAmount(f.originalAmount)
		if err != nil {
			return err
		}
		tx.OriginalAmount = amt
	}
	if changed("account") {
		tx.AccountID = f.account
	}
	if changed("from") {
		tx.PaymentAccountID = f.payment
	}
	if changed("currency") {
		tx.Currency = strings.ToUpper(f.currency)
	}
	if changed("source") {
		tx.Source = model.Source(f.source)
	}
	if changed("party") {
		tx.PartyID = f.party
	}
	if changed("note") {
		tx.Note = f.note
	}
	return nil
}

func newTxAddCommand() *cobra.Command {
	var f txFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a transaction",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := openBook(cmd)
			if err != nil {
				return err
			}
			defer b.close()

			var draft model.Transaction
			if err := f.apply(cmd, &draft); err != nil {
				return err
			}
			if draft.Date.IsZero() {
				draft.Date = today()
			}
			currency := draft.Currency
			if currency == "" {
				currency = b.cfg.Business.BaseCurrency
			}
			tx := journal.NewTransaction(journal.Params{
				Date:             draft.Date,
				Kind:             draft.Kind,
				Amount:           draft.Amount,
				AccountID:        draft.AccountID,
				PaymentAccountID: draft.PaymentAccountID,
				OriginalAmount:   draft.OriginalAmount,
				Currency:         currency,
				Source:           draft.Source,
				PartyID:          draft.PartyID,
				Note:             draft.Note,
			})

			if err := b.store.AddTransaction(tx); err != nil {
				return err
			}
			if err := b.commit("tx add", "add_transaction", tx.ID, describeTx(tx)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Recorded %s %s\n", id.Short(tx.ID), describeTx(tx))
			return nil
		},
	}
	f.register(cmd)
	_ = cmd.MarkFlagRequired("kind")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("account")
	return cmd
}

func newTxEditCommand() *cobra.Command {
	var f txFlags
	cmd := &cobra.Command{
		Use:   "edit <tx-id>",
		Short: "Change fields of a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := openBook(cmd)
			if err != nil {
				return err
			}
			defer b.close()

			tx, err := b.store.FindTransaction(args[0])
			if err != nil {
				return err
			}
			if err := f.apply(cmd, &tx); err != nil {
				return err
			}
			if err := b.store.UpdateTransaction(tx); err != nil {
				return err
			}
			if err := b.commit("tx edit", "update_transaction", tx.ID, describeTx(tx)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s %s\n", id.Short(tx.ID), describeTx(tx))
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func newTxDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <tx-id>",
		Short: "Delete a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := openBook(cmd)
			if err != nil {
				return err
			}
			defer b.close()

			tx, err := b.store.FindTransaction(args[0])
			if err != nil {
				return err
			}
			if err := b.store.DeleteTransaction(tx.ID); err != nil {
				return err
			}
			if err := b.commit("tx delete", "delete_transaction", tx.ID, describeTx(tx)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", id.Short(tx.ID))
			return nil
		},
	}
}

func newTxListCommand() *cobra.Command {
	var (
		account string
		wf      windowFlags
		limit   int
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := openBook(cmd)
			if err != nil {
				return err
			}
			defer b.close()

			snap := b.store.Snapshot()
			txs := snap.Transactions
			slices.SortStableFunc(txs, func(a, b model.Transaction) int { return a.Date.Compare(b.Date) })
			if wf.set(cmd) {
				w, err := wf.window()
				if err != nil {
					return err
				}
				txs = ledger.Within(txs, w)
			}
			if account != "" {
				ids, err := ledger.DescendantIDs(account, snap.Accounts)
				if err != nil {
					return err
				}
				var touching []model.Transaction
				for _, tx := range txs {
					if ids.Has(tx.AccountID) || ids.Has(tx.PaymentAccountID) {
						touching = append(touching, tx)
					}
				}
				txs = touching
			}

			var rows [][]string
			for i := len(txs) - 1; i >= 0 && (limit <= 0 || len(rows) < limit); i-- {
				tx := txs[i]
				rows = append(rows, []string{
					id.Short(tx.ID), tx.Date.Format(time.DateOnly), string(tx.Kind),
					tx.AccountID, tx.PaymentAccountID,
					format.Money(tx.Amount, b.cfg.Business.BaseCurrency), tx.Note,
				})
			}
			var md strings.Builder
			md.WriteString("# Transactions\n\n")
			format.WriteTable(&md, []string{"ID", "Date", "Kind", "Debit", "Credit", "Amount", "Note"}, rows, 5)
			return render(cmd, md.String())
		},
	}
	cmd.Flags().StringVar(&account, "account", "", "only transactions touching this account or its descendants")
	cmd.Flags().IntVar(&limit, "limit", 50, "maximum rows (0 for all)")
	wf.register(cmd)
	return cmd
}

// describeTx is the one-line summary used in output, commit messages and the activity log.
func describeTx(tx model.Transaction) string {
	s := fmt.Sprintf("%s %s %s", tx.Kind, tx.Amount.StringFixed(2), tx.AccountID)
	if tx.TwoSided() {
		s += " <- " + tx.PaymentAccountID
	}
	if tx.Note != "" {
		s += " (" + tx.Note + ")"
	}
	return s
}
