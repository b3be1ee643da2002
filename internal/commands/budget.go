package commands

import (
	"fmt"
	"maps"
	"slices"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/tallybook/tally/internal/model"
)

func newBudgetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Manage spending limits",
	}
	cmd.AddCommand(newBudgetSetCommand())
	return cmd
}

func newBudgetSetCommand() *cobra.Command {
	var (
		limits  map[string]string
		visible []string
	)
	cmd := &cobra.Command{
		Use:     "set <period>",
		Short:   "Set the account limits of a month (YYYY-MM) or year (YYYY)",
		Example: "  tally budget set 2025-01 --limit exp_rent=1200 --limit exp_groceries=600",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := openBook(cmd)
			if err != nil {
				return err
			}
			defer b.close()

			budget := model.Budget{
				PeriodKey:         args[0],
				AccountLimits:     make(map[string]decimal.Decimal, len(limits)),
				VisibleAccountIDs: visible,
			}
			for _, accountID := range slices.Sorted(maps.Keys(limits)) {
				amt, err := parseAmount(limits[accountID])
				if err != nil {
					return fmt.Errorf("limit for %s: %w", accountID, err)
				}
				budget.AccountLimits[accountID] = amt
			}

			saved, err := b.store.SetBudget(budget)
			if err != nil {
				return err
			}
			details := fmt.Sprintf("%s limit %s across %d accounts", saved.PeriodKey, saved.Limit.StringFixed(2), len(saved.AccountLimits))
			if err := b.commit("budget set", "set_budget", saved.PeriodKey, details); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Budget %s\n", details)
			return nil
		},
	}
	cmd.Flags().StringToStringVar(&limits, "limit", nil, "account limit as ACCOUNT=AMOUNT (repeatable)")
	cmd.Flags().StringSliceVar(&visible, "show", nil, "only show these accounts in the budget report")
	return cmd
}
