package reports

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tallybook/tally/internal/model"
	"github.com/tallybook/tally/internal/schedule"
)

// maxScheduleRows bounds a projection for assets with tiny monthly charges.
const maxScheduleRows = 1200

// DepreciationRow is one projected monthly charge.
type DepreciationRow struct {
	Date        time.Time
	Amount      decimal.Decimal
	Accumulated decimal.Decimal
	BookValue   decimal.Decimal
}

// DepreciationSchedule projects the remaining straight-line charges of an asset.
type DepreciationSchedule struct {
	Asset       model.Asset
	Monthly     decimal.Decimal
	Accumulated decimal.Decimal // before the first projected row
	BookValue   decimal.Decimal
	Rows        []DepreciationRow
}

// BuildDepreciationSchedule projects monthly charges starting at from until the
// asset's book value, its original value less accumulated, is used up.
// Residual book values of a cent or less are not projected.
func BuildDepreciationSchedule(asset model.Asset, accumulated decimal.Decimal, from time.Time) *DepreciationSchedule {
	s := &DepreciationSchedule{
		Asset:       asset,
		Monthly:     asset.MonthlyDepreciation(),
		Accumulated: accumulated,
		BookValue:   asset.OriginalValue.Sub(accumulated),
	}
	if !s.Monthly.IsPositive() {
		return s
	}

	book, total, at := s.BookValue, accumulated, from
	for book.GreaterThan(schedule.FullyDepreciated) && len(s.Rows) < maxScheduleRows {
		amount := decimal.Min(s.Monthly, book)
		book = book.Sub(amount)
		total = total.Add(amount)
		s.Rows = append(s.Rows, DepreciationRow{Date: at, Amount: amount, Accumulated: total, BookValue: book})
		at = schedule.AddMonths(at, 1)
	}
	return s
}
