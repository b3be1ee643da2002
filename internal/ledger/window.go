package ledger

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tallybook/tally/internal/model"
)

// Window is an inclusive date range. End is treated as the end of its day.
type Window struct {
	Start time.Time
	End   time.Time
}

// NewWindow returns the window from the start of start's day to the end of end's day.
func NewWindow(start, end time.Time) Window {
	return Window{Start: StartOfDay(start), End: EndOfDay(end)}
}

// MonthWindow returns the calendar month containing t.
func MonthWindow(t time.Time) Window {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return NewWindow(first, first.AddDate(0, 1, -1))
}

// YearWindow returns the calendar year containing t.
func YearWindow(t time.Time) Window {
	first := time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
	return NewWindow(first, first.AddDate(1, 0, -1))
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last representable instant of t's day.
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// Before reports whether t falls before the window.
func (w Window) Before(t time.Time) bool {
	return t.Before(w.Start)
}

// After reports whether t falls after the end of the window's last day.
func (w Window) After(t time.Time) bool {
	return t.After(EndOfDay(w.End))
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	return !w.Before(t) && !w.After(t)
}

func (w Window) String() string {
	return fmt.Sprintf("%s..%s", w.Start.Format(time.DateOnly), w.End.Format(time.DateOnly))
}

// Through returns the transactions dated on or before the end of asOf's day.
func Through(txs []model.Transaction, asOf time.Time) []model.Transaction {
	cutoff := EndOfDay(asOf)
	var out []model.Transaction
	for _, t := range txs {
		if !t.Date.After(cutoff) {
			out = append(out, t)
		}
	}
	return out
}

// Within returns the transactions dated inside w.
func Within(txs []model.Transaction, w Window) []model.Transaction {
	var out []model.Transaction
	for _, t := range txs {
		if w.Contains(t.Date) {
			out = append(out, t)
		}
	}
	return out
}

// Sum adds up the amounts of txs.
func Sum(txs []model.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, t := range txs {
		total = total.Add(t.Amount)
	}
	return total
}
