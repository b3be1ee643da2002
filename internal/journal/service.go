package journal

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tallybook/tally/internal/id"
	"github.com/tallybook/tally/internal/model"
)

var (
	// ErrTransactionNotFound is returned for an unknown transaction ID.
	ErrTransactionNotFound = errors.New("transaction not found")
	// ErrAmbiguousID is returned when an ID prefix matches several transactions.
	ErrAmbiguousID = errors.New("ambiguous transaction ID")
)

// journalPath is the journal location relative to a book's root directory.
var journalPath = filepath.Join("journal", "transactions.csv")

// Params holds the fields of a new transaction.
type Params struct {
	Date             time.Time
	Kind             model.TransactionKind
	Amount           decimal.Decimal
	AccountID        string
	PaymentAccountID string
	OriginalAmount   decimal.Decimal // defaults to Amount
	Currency         string
	Source           model.Source
	PartyID          string
	Note             string
}

// NewTransaction builds a transaction with a fresh time-ordered ID. The kind
// is fixed here and never re-derived later.
func NewTransaction(p Params) model.Transaction {
	original := p.OriginalAmount
	if original.IsZero() {
		original = p.Amount
	}
	source := p.Source
	if source == "" {
		source = model.SourcePersonal
	}
	return model.Transaction{
		ID:               id.NewTransactionID(p.Date),
		Date:             p.Date,
		Kind:             p.Kind,
		Amount:           p.Amount,
		AccountID:        p.AccountID,
		PaymentAccountID: p.PaymentAccountID,
		OriginalAmount:   original,
		Currency:         p.Currency,
		Source:           source,
		PartyID:          p.PartyID,
		Note:             p.Note,
	}
}

// Service holds the journal in memory.
type Service struct {
	txs []model.Transaction
}

// NewService creates a Service over txs.
func NewService(txs []model.Transaction) *Service {
	return &Service{txs: txs}
}

// Load reads journal/transactions.csv from a book root. A book without a
// journal yet loads as empty.
func Load(root string) (*Service, error) {
	f, err := os.Open(filepath.Join(root, journalPath))
	if errors.Is(err, fs.ErrNotExist) {
		return NewService(nil), nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening journal: %w", err)
	}
	defer f.Close()

	txs, err := ReadTransactions(f)
	if err != nil {
		return nil, fmt.Errorf("reading journal: %w", err)
	}
	return NewService(txs), nil
}

// All returns all transactions.
func (s *Service) All() []model.Transaction {
	return s.txs
}

// Get returns a transaction by exact ID.
func (s *Service) Get(txID string) (model.Transaction, bool) {
	i := s.index(txID)
	if i < 0 {
		return model.Transaction{}, false
	}
	return s.txs[i], true
}

// Find resolves a full ID or a unique ID prefix.
func (s *Service) Find(prefix string) (model.Transaction, error) {
	if tx, ok := s.Get(prefix); ok {
		return tx, nil
	}
	var found []model.Transaction
	for _, tx := range s.txs {
		if id.Match(tx.ID, prefix) {
			found = append(found, tx)
		}
	}
	switch len(found) {
	case 0:
		return model.Transaction{}, fmt.Errorf("%w: %s", ErrTransactionNotFound, prefix)
	case 1:
		return found[0], nil
	}
	return model.Transaction{}, fmt.Errorf("%w: %s matches %d transactions", ErrAmbiguousID, prefix, len(found))
}

// Add validates tx and appends it.
func (s *Service) Add(tx model.Transaction, accounts AccountChecker) error {
	verrs := ValidateTransaction(tx, accounts)
	if s.index(tx.ID) >= 0 {
		verrs = append(verrs, ValidationError{Rule: 6, TransactionID: tx.ID, Description: "duplicate transaction ID"})
	}
	if err := Join(verrs); err != nil {
		return err
	}
	s.txs = append(s.txs, tx)
	return nil
}

// Replace swaps the transaction with tx.ID for tx as a whole.
func (s *Service) Replace(tx model.Transaction, accounts AccountChecker) error {
	i := s.index(tx.ID)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrTransactionNotFound, tx.ID)
	}
	if err := Join(ValidateTransaction(tx, accounts)); err != nil {
		return err
	}
	s.txs = slices.Clone(s.txs)
	s.txs[i] = tx
	return nil
}

// Remove deletes the transaction with the given ID.
func (s *Service) Remove(txID string) error {
	i := s.index(txID)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrTransactionNotFound, txID)
	}
	s.txs = slices.Delete(slices.Clone(s.txs), i, i+1)
	return nil
}

// UsesAccount reports whether any transaction posts to accountID.
func (s *Service) UsesAccount(accountID string) bool {
	return slices.ContainsFunc(s.txs, func(tx model.Transaction) bool {
		return tx.AccountID == accountID || tx.PaymentAccountID == accountID
	})
}

// Save writes the journal, in date order, to journal/transactions.csv.
func (s *Service) Save(root string) error {
	path := filepath.Join(root, journalPath)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating journal dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating journal file: %w", err)
	}
	defer f.Close()

	sorted := slices.Clone(s.txs)
	slices.SortStableFunc(sorted, func(a, b model.Transaction) int {
		return a.Date.Compare(b.Date)
	})
	if err := WriteTransactions(f, sorted); err != nil {
		return fmt.Errorf("writing journal: %w", err)
	}
	return nil
}

func (s *Service) index(txID string) int {
	if txID == "" {
		return -1
	}
	return slices.IndexFunc(s.txs, func(tx model.Transaction) bool { return tx.ID == txID })
}
