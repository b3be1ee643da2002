package store

import (
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/tallybook/tally/internal/accounts"
	"github.com/tallybook/tally/internal/id"
	"github.com/tallybook/tally/internal/model"
	"github.com/tallybook/tally/internal/reports"
)

// AddTransaction validates tx against the chart and appends it to the journal.
func (s *Store) AddTransaction(tx model.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.journal.Add(tx, s.accounts); err != nil {
		return err
	}
	s.log.Info("transaction added", zap.String("tx_id", tx.ID), zap.String("kind", string(tx.Kind)),
		zap.String("amount", tx.Amount.StringFixed(2)))
	return nil
}

// UpdateTransaction replaces the stored transaction with the same ID.
func (s *Store) UpdateTransaction(tx model.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.journal.Replace(tx, s.accounts); err != nil {
		return err
	}
	s.log.Info("transaction updated", zap.String("tx_id", tx.ID))
	return nil
}

// DeleteTransaction removes a transaction by exact ID.
func (s *Store) DeleteTransaction(txID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.journal.Remove(txID); err != nil {
		return err
	}
	s.log.Info("transaction deleted", zap.String("tx_id", txID))
	return nil
}

// AddAccount validates acct and adds it to the chart.
func (s *Store) AddAccount(acct model.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.accounts.Add(acct); err != nil {
		return fmt.Errorf("adding account: %w", err)
	}
	s.log.Info("account added", zap.String("account_id", acct.ID), zap.String("code", acct.Code))
	return nil
}

// DeleteAccount removes an account. System accounts, parents and accounts
// with postings are protected.
func (s *Store) DeleteAccount(accountID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.journal.UsesAccount(accountID) {
		return fmt.Errorf("%w: %s has postings", accounts.ErrProtectedAccount, accountID)
	}
	if err := s.accounts.Remove(accountID); err != nil {
		return err
	}
	s.log.Info("account deleted", zap.String("account_id", accountID))
	return nil
}

// AddParty stores a party, assigning an ID when it has none.
func (s *Store) AddParty(p model.Party) (model.Party, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID == "" {
		p.ID = id.New()
	}
	if p.Type == "" {
		p.Type = model.PartyOther
	}
	switch {
	case p.Name == "":
		return model.Party{}, fmt.Errorf("%w: party name is required", ErrInvalid)
	case slices.ContainsFunc(s.books.Parties, func(o model.Party) bool { return o.ID == p.ID }):
		return model.Party{}, fmt.Errorf("%w: party %s already exists", ErrInvalid, p.ID)
	case p.LinkedAccountID != "" && !s.accounts.Exists(p.LinkedAccountID):
		return model.Party{}, fmt.Errorf("%w: linked account %s does not exist", ErrInvalid, p.LinkedAccountID)
	}

	s.books.Parties = append(slices.Clip(s.books.Parties), p)
	s.log.Info("party added", zap.String("party_id", p.ID), zap.String("name", p.Name))
	return p, nil
}

// AddAsset stores a fixed asset. Its book value starts at the original value.
func (s *Store) AddAsset(a model.Asset) (model.Asset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if a.ID == "" {
		a.ID = id.New()
	}
	switch {
	case a.Name == "":
		return model.Asset{}, fmt.Errorf("%w: asset name is required", ErrInvalid)
	case !a.OriginalValue.IsPositive():
		return model.Asset{}, fmt.Errorf("%w: asset %s: original value must be positive", ErrInvalid, a.Name)
	case a.UsefulLifeYears <= 0:
		return model.Asset{}, fmt.Errorf("%w: asset %s: useful life must be at least one year", ErrInvalid, a.Name)
	case a.PurchaseDate.IsZero():
		return model.Asset{}, fmt.Errorf("%w: asset %s: purchase date is required", ErrInvalid, a.Name)
	case slices.ContainsFunc(s.books.Assets, func(o model.Asset) bool { return o.ID == a.ID }):
		return model.Asset{}, fmt.Errorf("%w: asset %s already exists", ErrInvalid, a.ID)
	}
	if a.Value.IsZero() {
		a.Value = a.OriginalValue
	}

	s.books.Assets = append(slices.Clip(s.books.Assets), a)
	s.log.Info("asset added", zap.String("asset_id", a.ID), zap.String("name", a.Name))
	return a, nil
}

// AddRecurring stores a recurring rule.
func (s *Store) AddRecurring(r model.RecurringRule) (model.RecurringRule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r.ID == "" {
		r.ID = id.New()
	}
	if r.Source == "" {
		r.Source = model.SourcePersonal
	}
	switch {
	case !r.Kind.Valid():
		return model.RecurringRule{}, fmt.Errorf("%w: unknown kind %q", ErrInvalid, r.Kind)
	case !r.Frequency.Valid():
		return model.RecurringRule{}, fmt.Errorf("%w: unknown frequency %q", ErrInvalid, r.Frequency)
	case !r.Amount.IsPositive():
		return model.RecurringRule{}, fmt.Errorf("%w: amount must be positive", ErrInvalid)
	case r.NextDueDate.IsZero():
		return model.RecurringRule{}, fmt.Errorf("%w: next due date is required", ErrInvalid)
	case !s.isPosting(r.AccountID):
		return model.RecurringRule{}, fmt.Errorf("%w: account %s is not a posting account", ErrInvalid, r.AccountID)
	case r.PaymentAccountID != "" && !s.isPosting(r.PaymentAccountID):
		return model.RecurringRule{}, fmt.Errorf("%w: payment account %s is not a posting account", ErrInvalid, r.PaymentAccountID)
	case r.AccountID == r.PaymentAccountID:
		return model.RecurringRule{}, fmt.Errorf("%w: debit and credit accounts are the same", ErrInvalid)
	}

	s.books.Recurring = append(slices.Clip(s.books.Recurring), r)
	s.log.Info("recurring rule added", zap.String("rule_id", r.ID), zap.String("frequency", string(r.Frequency)))
	return r, nil
}

// SetBudget creates or replaces the budget for b.PeriodKey. The overall limit
// is always the sum of the account limits.
func (s *Store) SetBudget(b model.Budget) (model.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := reports.PeriodWindow(b.PeriodKey); err != nil {
		return model.Budget{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	for accountID, limit := range b.AccountLimits {
		if !s.isPosting(accountID) {
			return model.Budget{}, fmt.Errorf("%w: budget account %s is not a posting account", ErrInvalid, accountID)
		}
		if limit.IsNegative() {
			return model.Budget{}, fmt.Errorf("%w: budget limit for %s is negative", ErrInvalid, accountID)
		}
	}
	b.Limit = reports.TotalLimit(b)

	i := slices.IndexFunc(s.books.Budgets, func(o model.Budget) bool { return o.PeriodKey == b.PeriodKey })
	if i >= 0 {
		s.books.Budgets = slices.Clone(s.books.Budgets)
		s.books.Budgets[i] = b
	} else {
		s.books.Budgets = append(slices.Clip(s.books.Budgets), b)
	}
	s.log.Info("budget set", zap.String("period", b.PeriodKey), zap.String("limit", b.Limit.StringFixed(2)))
	return b, nil
}

// isPosting reports whether accountID names an account that takes postings.
func (s *Store) isPosting(accountID string) bool {
	a, ok := s.accounts.Get(accountID)
	return ok && a.IsPosting
}
