package accounts

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/tallybook/tally/internal/ledger"
	"github.com/tallybook/tally/internal/model"
)

var (
	// ErrProtectedAccount is returned when deleting a system account or a parent.
	ErrProtectedAccount = errors.New("account is protected")
	// ErrNotFound is returned for an unknown account ID.
	ErrNotFound = ledger.ErrAccountNotFound
)

// chartPath is the chart location relative to a book's root directory.
var chartPath = filepath.Join("accounts", "chart-of-accounts.csv")

// Service provides in-memory lookup over the chart of accounts.
type Service struct {
	accounts []model.Account
	byID     map[string]model.Account
}

// NewService creates a Service from a slice of accounts.
func NewService(accounts []model.Account) *Service {
	byID := make(map[string]model.Account, len(accounts))
	for _, a := range accounts {
		if _, dup := byID[a.ID]; dup {
			continue
		}
		byID[a.ID] = a
	}
	return &Service{accounts: accounts, byID: byID}
}

// Load reads chart-of-accounts.csv from a book root and returns a Service.
func Load(root string) (*Service, error) {
	f, err := os.Open(filepath.Join(root, chartPath))
	if err != nil {
		return nil, fmt.Errorf("opening chart of accounts: %w", err)
	}
	defer f.Close()

	accts, err := ReadAccounts(f)
	if err != nil {
		return nil, fmt.Errorf("reading chart of accounts: %w", err)
	}
	return NewService(accts), nil
}

// All returns all accounts.
func (s *Service) All() []model.Account {
	return s.accounts
}

// Get returns an account by ID.
func (s *Service) Get(id string) (model.Account, bool) {
	a, ok := s.byID[id]
	return a, ok
}

// Exists reports whether an account ID exists.
func (s *Service) Exists(id string) bool {
	_, ok := s.byID[id]
	return ok
}

// ByClass returns all accounts of the given class.
func (s *Service) ByClass(class model.AccountClass) []model.Account {
	var result []model.Account
	for _, a := range s.accounts {
		if a.Class == class {
			result = append(result, a)
		}
	}
	return result
}

// Children returns the direct children of an account.
func (s *Service) Children(id string) []model.Account {
	var result []model.Account
	for _, a := range s.accounts {
		if a.ParentID == id {
			result = append(result, a)
		}
	}
	return result
}

// LinkedToAsset returns the account carrying an asset's accumulated depreciation.
func (s *Service) LinkedToAsset(assetID string) (model.Account, bool) {
	for _, a := range s.accounts {
		if assetID != "" && a.LinkedAssetID == assetID {
			return a, true
		}
	}
	return model.Account{}, false
}

// Add validates acct against the chart and appends it.
func (s *Service) Add(acct model.Account) error {
	if err := ValidateAccount(acct, s); err != nil {
		return err
	}
	s.accounts = append(s.accounts, acct)
	s.byID[acct.ID] = acct
	return nil
}

// Remove deletes an account that is neither a system account nor a parent.
func (s *Service) Remove(id string) error {
	acct, ok := s.byID[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if acct.IsSystem {
		return fmt.Errorf("%w: %s is a system account", ErrProtectedAccount, id)
	}
	if len(s.Children(id)) > 0 {
		return fmt.Errorf("%w: %s has child accounts", ErrProtectedAccount, id)
	}
	s.accounts = slices.DeleteFunc(slices.Clone(s.accounts), func(a model.Account) bool { return a.ID == id })
	delete(s.byID, id)
	return nil
}

// Save writes the chart of accounts to accounts/chart-of-accounts.csv.
func (s *Service) Save(root string) error {
	path := filepath.Join(root, chartPath)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating accounts dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating chart of accounts file: %w", err)
	}
	defer f.Close()

	if err := WriteAccounts(f, s.accounts); err != nil {
		return fmt.Errorf("writing chart of accounts: %w", err)
	}
	return nil
}
