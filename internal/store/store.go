// Package store holds a book in memory behind a lock and persists it to the
// book's data directory. Engine and report calls work on snapshots.
package store

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/tallybook/tally/internal/accounts"
	"github.com/tallybook/tally/internal/journal"
	"github.com/tallybook/tally/internal/model"
	"github.com/tallybook/tally/internal/schedule"
)

// ErrInvalid is wrapped by errors for rejected parties, assets, rules and budgets.
var ErrInvalid = errors.New("invalid input")

// State is a point-in-time copy of a book.
type State struct {
	Accounts     []model.Account
	Transactions []model.Transaction
	Parties      []model.Party
	Assets       []model.Asset
	Recurring    []model.RecurringRule
	Budgets      []model.Budget
}

// Options configures a Store.
type Options struct {
	Depreciation schedule.DepreciationOptions
	Logger       *zap.Logger
}

// Store owns the mutable state of one book.
type Store struct {
	mu       sync.RWMutex
	accounts *accounts.Service
	journal  *journal.Service
	books    Books
	opts     Options
	log      *zap.Logger
}

// New creates a Store over a chart of accounts with an empty journal.
func New(chart []model.Account, opts Options) *Store {
	return newStore(accounts.NewService(chart), journal.NewService(nil), Books{}, opts)
}

func newStore(acc *accounts.Service, jnl *journal.Service, books Books, opts Options) *Store {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{accounts: acc, journal: jnl, books: books, opts: opts, log: log}
}

// Load reads the chart, the journal and books.yaml from root. The journal is
// checked as a whole; a book that fails validation does not load.
func Load(root string, opts Options) (*Store, error) {
	acc, err := accounts.Load(root)
	if err != nil {
		return nil, err
	}
	jnl, err := journal.Load(root)
	if err != nil {
		return nil, err
	}
	if err := journal.Join(journal.ValidateJournal(jnl.All(), acc)); err != nil {
		return nil, fmt.Errorf("loading journal: %w", err)
	}
	books, err := LoadBooks(root)
	if err != nil {
		return nil, err
	}

	s := newStore(acc, jnl, books, opts)
	s.log.Debug("book loaded",
		zap.String("root", root),
		zap.Int("accounts", len(acc.All())),
		zap.Int("transactions", len(jnl.All())))
	return s, nil
}

// Save writes every part of the book under root.
func (s *Store) Save(root string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.accounts.Save(root); err != nil {
		return err
	}
	if err := s.journal.Save(root); err != nil {
		return err
	}
	if err := SaveBooks(root, s.books); err != nil {
		return err
	}
	s.log.Debug("book saved", zap.String("root", root))
	return nil
}

// Snapshot returns a copy of the current state. Later mutations of the store
// do not show through it.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	budgets := slices.Clone(s.books.Budgets)
	for i := range budgets {
		budgets[i].AccountLimits = maps.Clone(budgets[i].AccountLimits)
		budgets[i].VisibleAccountIDs = slices.Clone(budgets[i].VisibleAccountIDs)
	}
	return State{
		Accounts:     slices.Clone(s.accounts.All()),
		Transactions: slices.Clone(s.journal.All()),
		Parties:      slices.Clone(s.books.Parties),
		Assets:       slices.Clone(s.books.Assets),
		Recurring:    slices.Clone(s.books.Recurring),
		Budgets:      budgets,
	}
}

// Account returns an account by ID.
func (s *Store) Account(accountID string) (model.Account, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accounts.Get(accountID)
}

// FindTransaction resolves a full transaction ID or a unique prefix.
func (s *Store) FindTransaction(prefix string) (model.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.journal.Find(prefix)
}

// Asset returns an asset by ID.
func (s *Store) Asset(assetID string) (model.Asset, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := slices.IndexFunc(s.books.Assets, func(a model.Asset) bool { return a.ID == assetID })
	if i < 0 {
		return model.Asset{}, false
	}
	return s.books.Assets[i], true
}

// Budget returns the budget for a period key.
func (s *Store) Budget(periodKey string) (model.Budget, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := slices.IndexFunc(s.books.Budgets, func(b model.Budget) bool { return b.PeriodKey == periodKey })
	if i < 0 {
		return model.Budget{}, false
	}
	return s.books.Budgets[i], true
}
