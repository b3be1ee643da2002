package ledger_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tallybook/tally/internal/ledger"
	"github.com/tallybook/tally/internal/model"
)

func TestWindow_EndOfDayInclusive(t *testing.T) {
	w := ledger.NewWindow(date(2025, 1, 1), date(2025, 1, 31))

	lastInstant := time.Date(2025, 1, 31, 23, 59, 59, 999_000_000, time.UTC)
	assert.True(t, w.Contains(lastInstant))
	assert.False(t, w.Contains(lastInstant.Add(time.Millisecond)))
	assert.True(t, w.After(lastInstant.Add(time.Millisecond)))

	assert.True(t, w.Contains(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, w.Before(time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC)))
}

func TestWindow_RawEndIsEndOfDay(t *testing.T) {
	w := ledger.Window{Start: date(2025, 1, 1), End: time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)}
	assert.True(t, w.Contains(time.Date(2025, 1, 31, 18, 0, 0, 0, time.UTC)))
}

func TestMonthAndYearWindow(t *testing.T) {
	m := ledger.MonthWindow(date(2024, 2, 10))
	assert.Equal(t, "2024-02-01..2024-02-29", m.String())

	y := ledger.YearWindow(date(2025, 6, 1))
	assert.Equal(t, "2025-01-01..2025-12-31", y.String())
}

func TestThroughAndWithin(t *testing.T) {
	txs := []model.Transaction{
		tx("1", "a", "b", date(2025, 1, 1)),
		tx("2", "a", "b", date(2025, 1, 15)),
		tx("4", "a", "b", date(2025, 2, 1)),
	}
	assert.True(t, ledger.Sum(ledger.Through(txs, date(2025, 1, 15))).Equal(dec("3")))
	assert.True(t, ledger.Sum(ledger.Within(txs, ledger.NewWindow(date(2025, 1, 2), date(2025, 2, 1)))).Equal(dec("6")))
	assert.True(t, ledger.Sum(txs).Equal(dec("7")))
}
