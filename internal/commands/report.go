package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tallybook/tally/internal/ledger"
	"github.com/tallybook/tally/internal/model"
	"github.com/tallybook/tally/internal/reports"
	"github.com/tallybook/tally/internal/schedule"
	"github.com/tallybook/tally/internal/statement"
)

// windowFlags select a reporting window: --period, or --from/--to. With no
// flags the window is the current month.
type windowFlags struct {
	period string
	from   string
	to     string
}

func (f *windowFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.period, "period", "", "month (YYYY-MM) or year (YYYY)")
	cmd.Flags().StringVar(&f.from, "from", "", "first day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.to, "to", "", "last day (YYYY-MM-DD, default today)")
	cmd.MarkFlagsMutuallyExclusive("period", "from")
	cmd.MarkFlagsMutuallyExclusive("period", "to")
}

func (f *windowFlags) set(cmd *cobra.Command) bool {
	return cmd.Flags().Changed("period") || cmd.Flags().Changed("from") || cmd.Flags().Changed("to")
}

func (f *windowFlags) window() (ledger.Window, error) {
	if f.period != "" {
		return reports.PeriodWindow(f.period)
	}
	if f.from == "" && f.to == "" {
		return ledger.MonthWindow(today()), nil
	}
	end, err := parseDate(f.to)
	if err != nil {
		return ledger.Window{}, err
	}
	start := ledger.MonthWindow(end).Start
	if f.from != "" {
		if start, err = parseDate(f.from); err != nil {
			return ledger.Window{}, err
		}
	}
	if start.After(end) {
		return ledger.Window{}, fmt.Errorf("--from %s is after --to %s", start.Format(time.DateOnly), end.Format(time.DateOnly))
	}
	return ledger.NewWindow(start, end), nil
}

func newReportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Financial statements and summaries",
	}
	cmd.AddCommand(
		newTrialBalanceCommand(),
		newIncomeCommand(),
		newBalanceSheetCommand(),
		newCashFlowCommand(),
		newStatementCommand(),
		newDashboardCommand(),
		newBudgetReportCommand(),
		newDepreciationReportCommand(),
	)
	return cmd
}

// asOfCommand builds a report taking a single --as-of date.
func asOfCommand(use, short string, build func(b *book, asOf time.Time) (string, error)) *cobra.Command {
	var asOf string
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			at, err := parseDate(asOf)
			if err != nil {
				return err
			}
			b, err := openBook(cmd)
			if err != nil {
				return err
			}
			defer b.close()

			md, err := build(b, at)
			if err != nil {
				return err
			}
			return render(cmd, md)
		},
	}
	cmd.Flags().StringVar(&asOf, "as-of", "", "report date (YYYY-MM-DD, default today)")
	return cmd
}

// windowCommand builds a report over a window chosen with windowFlags.
func windowCommand(use, short string, args cobra.PositionalArgs,
	build func(b *book, w ledger.Window, args []string) (string, error),
) *cobra.Command {
	var wf windowFlags
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := wf.window()
			if err != nil {
				return err
			}
			b, err := openBook(cmd)
			if err != nil {
				return err
			}
			defer b.close()

			md, err := build(b, w, args)
			if err != nil {
				return err
			}
			return render(cmd, md)
		},
	}
	wf.register(cmd)
	return cmd
}

func newTrialBalanceCommand() *cobra.Command {
	return asOfCommand("trial-balance", "Debit and credit balances of every posting account",
		func(b *book, asOf time.Time) (string, error) {
			snap := b.store.Snapshot()
			tb := reports.BuildTrialBalance(snap.Accounts, snap.Transactions, asOf)
			return tb.Markdown(b.cfg.Business.BaseCurrency), nil
		})
}

func newIncomeCommand() *cobra.Command {
	return windowCommand("income", "Income statement for a period", cobra.NoArgs,
		func(b *book, w ledger.Window, _ []string) (string, error) {
			snap := b.store.Snapshot()
			is := reports.BuildIncomeStatement(snap.Accounts, snap.Transactions, w)
			return is.Markdown(b.cfg.Business.BaseCurrency), nil
		})
}

func newBalanceSheetCommand() *cobra.Command {
	return asOfCommand("balance-sheet", "Assets, liabilities and equity on a date",
		func(b *book, asOf time.Time) (string, error) {
			snap := b.store.Snapshot()
			bs, err := reports.BuildBalanceSheet(snap.Accounts, snap.Transactions, asOf, b.cfg.Ledger.RetainedEarnings)
			if err != nil {
				return "", err
			}
			return bs.Markdown(b.cfg.Business.BaseCurrency), nil
		})
}

func newCashFlowCommand() *cobra.Command {
	return windowCommand("cash-flow", "Cash in and out by activity for a period", cobra.NoArgs,
		func(b *book, w ledger.Window, _ []string) (string, error) {
			snap := b.store.Snapshot()
			cf, err := reports.BuildCashFlow(snap.Accounts, snap.Transactions, w, reports.CashFlowOptions{
				CashGroupID:       b.cfg.Ledger.CashGroup,
				FixedAssetGroupID: b.cfg.Ledger.FixedAssetGroup,
			})
			if err != nil {
				return "", err
			}
			return cf.Markdown(b.cfg.Business.BaseCurrency), nil
		})
}

func newStatementCommand() *cobra.Command {
	return windowCommand("statement <account-id>", "Running-balance statement of an account or group", cobra.ExactArgs(1),
		func(b *book, w ledger.Window, args []string) (string, error) {
			snap := b.store.Snapshot()
			st, err := statement.Build(snap.Accounts, snap.Transactions, args[0], w, statement.Parties(snap.Parties))
			if err != nil {
				return "", err
			}
			return st.Markdown(b.cfg.Business.BaseCurrency), nil
		})
}

func newDashboardCommand() *cobra.Command {
	return asOfCommand("dashboard", "Cash on hand and month-to-date results",
		func(b *book, asOf time.Time) (string, error) {
			snap := b.store.Snapshot()
			d, err := reports.BuildDashboard(snap.Accounts, snap.Transactions, asOf, reports.DashboardOptions{
				CashGroupID: b.cfg.Ledger.CashGroup,
			})
			if err != nil {
				return "", err
			}
			return d.Markdown(b.cfg.Business.BaseCurrency), nil
		})
}

func newBudgetReportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "budget <period>",
		Short: "Spending against the budget of a month (YYYY-MM) or year (YYYY)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := openBook(cmd)
			if err != nil {
				return err
			}
			defer b.close()

			budget, ok := b.store.Budget(args[0])
			if !ok {
				return fmt.Errorf("no budget for %s (set one with `tally budget set`)", args[0])
			}
			snap := b.store.Snapshot()
			r, err := reports.BuildBudget(snap.Accounts, snap.Transactions, budget)
			if err != nil {
				return err
			}
			return render(cmd, r.Markdown(b.cfg.Business.BaseCurrency))
		},
	}
}

func newDepreciationReportCommand() *cobra.Command {
	var from string
	cmd := &cobra.Command{
		Use:   "depreciation <asset-id>",
		Short: "Projected monthly depreciation of a fixed asset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := openBook(cmd)
			if err != nil {
				return err
			}
			defer b.close()

			asset, ok := b.store.Asset(args[0])
			if !ok {
				return fmt.Errorf("asset %s not found", args[0])
			}
			start, err := depreciationStart(asset, from)
			if err != nil {
				return err
			}
			snap := b.store.Snapshot()
			accumulated := asset.OriginalValue.Sub(asset.Value)
			if linked, ok := schedule.LinkedAccount(asset, snap.Accounts); ok {
				accumulated = ledger.NaturalBalance(linked.ID, snap.Transactions, model.Credit)
			}
			s := reports.BuildDepreciationSchedule(asset, accumulated, start)
			return render(cmd, s.Markdown(b.cfg.Business.BaseCurrency))
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "first projected month (YYYY-MM-DD, default the next scheduled run)")
	return cmd
}
