package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tallybook/tally/internal/format"
	"github.com/tallybook/tally/internal/model"
	"github.com/tallybook/tally/internal/schedule"
)

func newAssetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "asset",
		Short: "Manage depreciating fixed assets",
	}
	cmd.AddCommand(newAssetAddCommand(), newAssetListCommand())
	return cmd
}

func newAssetAddCommand() *cobra.Command {
	var (
		a        model.Asset
		value    string
		purchase string
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a fixed asset for straight-line depreciation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := openBook(cmd)
			if err != nil {
				return err
			}
			defer b.close()

			if a.OriginalValue, err = parseAmount(value); err != nil {
				return err
			}
			if a.PurchaseDate, err = parseDate(purchase); err != nil {
				return err
			}
			if a.Currency == "" {
				a.Currency = b.cfg.Business.BaseCurrency
			}
			a.Currency = strings.ToUpper(a.Currency)

			added, err := b.store.AddAsset(a)
			if err != nil {
				return err
			}
			details := fmt.Sprintf("%s %s over %d years", added.Name, added.OriginalValue.StringFixed(2), added.UsefulLifeYears)
			if err := b.commit("asset add", "add_asset", added.ID, details); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added asset %s (%s), %s a month\n", added.Name, added.ID,
				format.Money(added.MonthlyDepreciation(), b.cfg.Business.BaseCurrency))
			return nil
		},
	}
	cmd.Flags().StringVar(&a.ID, "id", "", "asset ID (default generated)")
	cmd.Flags().StringVar(&a.Name, "name", "", "asset name (required)")
	cmd.Flags().StringVar(&value, "value", "", "original value in the base currency (required)")
	cmd.Flags().StringVar(&a.Currency, "currency", "", "purchase currency code")
	cmd.Flags().StringVar(&purchase, "purchased", "", "purchase date (YYYY-MM-DD, default today)")
	cmd.Flags().IntVar(&a.UsefulLifeYears, "years", 0, "useful life in years (required)")
	cmd.Flags().StringVar(&a.Note, "note", "", "free-text note")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("value")
	_ = cmd.MarkFlagRequired("years")
	return cmd
}

func newAssetListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List fixed assets with their book values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := openBook(cmd)
			if err != nil {
				return err
			}
			defer b.close()

			cur := b.cfg.Business.BaseCurrency
			var rows [][]string
			for _, a := range b.store.Snapshot().Assets {
				rows = append(rows, []string{
					a.ID, a.Name, a.PurchaseDate.Format(time.DateOnly),
					format.Money(a.OriginalValue, cur), format.Money(a.Value, cur),
					format.Money(a.MonthlyDepreciation(), cur), schedule.NextRun(a).Format(time.DateOnly),
				})
			}
			var md strings.Builder
			md.WriteString("# Fixed Assets\n\n")
			format.WriteTable(&md, []string{"ID", "Name", "Purchased", "Original", "Book value", "Monthly", "Next run"}, rows, 3, 4, 5)
			return render(cmd, md.String())
		},
	}
}

// depreciationStart is the first month of a projection: from when given,
// otherwise the asset's next scheduled run.
func depreciationStart(a model.Asset, from string) (time.Time, error) {
	if from == "" {
		return schedule.NextRun(a), nil
	}
	return parseDate(from)
}
