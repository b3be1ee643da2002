package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tallybook/tally/internal/format"
	"github.com/tallybook/tally/internal/model"
)

func newRecurringCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recurring",
		Short: "Manage transactions posted on a schedule",
	}
	cmd.AddCommand(newRecurringAddCommand(), newRecurringListCommand())
	return cmd
}

func newRecurringAddCommand() *cobra.Command {
	var (
		r         model.RecurringRule
		kind      string
		amount    string
		frequency string
		next      string
		paused    bool
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a recurring rule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := openBook(cmd)
			if err != nil {
				return err
			}
			defer b.close()

			if r.Amount, err = parseAmount(amount); err != nil {
				return err
			}
			if r.NextDueDate, err = parseDate(next); err != nil {
				return err
			}
			r.Kind = model.TransactionKind(strings.ToLower(kind))
			r.Frequency = model.Frequency(strings.ToLower(frequency))
			r.Active = !paused
			if r.Currency == "" {
				r.Currency = b.cfg.Business.BaseCurrency
			}

			added, err := b.store.AddRecurring(r)
			if err != nil {
				return err
			}
			details := fmt.Sprintf("%s %s %s from %s", added.Frequency, added.Kind, added.Amount.StringFixed(2),
				added.NextDueDate.Format(time.DateOnly))
			if err := b.commit("recurring add", "add_recurring", added.ID, details); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added recurring rule %s: %s\n", added.ID, details)
			return nil
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "", "income, expense, transfer or adjustment (required)")
	cmd.Flags().StringVar(&amount, "amount", "", "amount in the base currency (required)")
	cmd.Flags().StringVar(&r.AccountID, "account", "", "account debited (required)")
	cmd.Flags().StringVar(&r.PaymentAccountID, "from", "", "account credited")
	cmd.Flags().StringVar(&frequency, "every", string(model.Monthly), "daily, weekly, monthly or yearly")
	cmd.Flags().StringVar(&next, "next", "", "first due date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&r.Currency, "currency", "", "original currency code")
	cmd.Flags().StringVar(&r.PartyID, "party", "", "party ID")
	cmd.Flags().StringVar(&r.Note, "note", "", "note posted with each transaction")
	cmd.Flags().BoolVar(&paused, "paused", false, "store the rule without activating it")
	_ = cmd.MarkFlagRequired("kind")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("account")
	return cmd
}

func newRecurringListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List recurring rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := openBook(cmd)
			if err != nil {
				return err
			}
			defer b.close()

			var rows [][]string
			for _, r := range b.store.Snapshot().Recurring {
				status := "active"
				if !r.Active {
					status = "paused"
				}
				rows = append(rows, []string{
					r.ID, string(r.Frequency), string(r.Kind), r.AccountID, r.PaymentAccountID,
					format.Money(r.Amount, b.cfg.Business.BaseCurrency), r.NextDueDate.Format(time.DateOnly), status,
				})
			}
			var md strings.Builder
			md.WriteString("# Recurring\n\n")
			format.WriteTable(&md, []string{"ID", "Every", "Kind", "Debit", "Credit", "Amount", "Next due", "Status"}, rows, 5)
			return render(cmd, md.String())
		},
	}
}
