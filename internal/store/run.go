package store

import (
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/tallybook/tally/internal/id"
	"github.com/tallybook/tally/internal/journal"
	"github.com/tallybook/tally/internal/model"
	"github.com/tallybook/tally/internal/schedule"
)

// RunResult lists what one scheduler run posted.
type RunResult struct {
	Recurring    []model.Transaction
	Depreciation []model.Transaction
}

// Posted is the number of transactions the run added.
func (r RunResult) Posted() int {
	return len(r.Recurring) + len(r.Depreciation)
}

// RunSchedulers posts everything that is due by now: recurring rules first,
// then depreciation. Either all postings of a run are applied or none are.
func (s *Store) RunSchedulers(now time.Time) (RunResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	recurring, rules := schedule.Recurring(s.books.Recurring, now, id.NewTransactionID)

	var (
		depreciation []model.Transaction
		assets       []model.Asset
	)
	if len(s.books.Assets) > 0 {
		var err error
		depreciation, assets, err = schedule.Depreciation(s.books.Assets, s.accounts.All(), s.journal.All(), now,
			s.opts.Depreciation, id.NewTransactionID)
		if err != nil {
			return RunResult{}, fmt.Errorf("running depreciation: %w", err)
		}
	}

	before := s.journal.All()
	for _, tx := range slices.Concat(recurring, depreciation) {
		if err := s.journal.Add(tx, s.accounts); err != nil {
			s.journal = journal.NewService(before)
			return RunResult{}, fmt.Errorf("posting %q: %w", tx.Note, err)
		}
	}

	s.books.Recurring = replaceByID(s.books.Recurring, rules, func(r model.RecurringRule) string { return r.ID })
	s.books.Assets = replaceByID(s.books.Assets, assets, func(a model.Asset) string { return a.ID })

	res := RunResult{Recurring: recurring, Depreciation: depreciation}
	s.log.Info("schedulers ran",
		zap.Time("now", now),
		zap.Int("recurring", len(recurring)),
		zap.Int("depreciation", len(depreciation)))
	return res, nil
}

// replaceByID returns a copy of items with every element of updated swapped in
// by ID.
func replaceByID[T any](items, updated []T, key func(T) string) []T {
	if len(updated) == 0 {
		return items
	}
	byID := make(map[string]T, len(updated))
	for _, u := range updated {
		byID[key(u)] = u
	}
	out := slices.Clone(items)
	for i, item := range out {
		if u, ok := byID[key(item)]; ok {
			out[i] = u
		}
	}
	return out
}
