package journal

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tallybook/tally/internal/model"
)

// ValidationError describes a single rule violation.
type ValidationError struct {
	Rule          int
	TransactionID string
	Description   string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("rule %d [%s]: %s", e.Rule, e.TransactionID, e.Description)
}

// AccountChecker looks up accounts in the chart of accounts.
type AccountChecker interface {
	Get(id string) (model.Account, bool)
}

var hundred = decimal.NewFromInt(100)

// epoch is the earliest date a transaction ID can encode.
var epoch = time.Unix(0, 0).UTC()

// ValidateTransaction enforces the rules a single transaction must satisfy
// before it enters the journal.
func ValidateTransaction(tx model.Transaction, accounts AccountChecker) []ValidationError {
	var errs []ValidationError
	fail := func(rule int, format string, args ...any) {
		errs = append(errs, ValidationError{Rule: rule, TransactionID: tx.ID, Description: fmt.Sprintf(format, args...)})
	}

	// Rule 1: Every transaction has an ID and a date.
	if tx.ID == "" {
		fail(1, "transaction ID is required")
	}
	if tx.Date.IsZero() {
		fail(1, "date is required")
	} else if tx.Date.Before(epoch) {
		fail(1, "date %s is before %s", tx.Date.Format(time.DateOnly), epoch.Format(time.DateOnly))
	}

	// Rule 2: Known kind.
	if !tx.Kind.Valid() {
		fail(2, "unknown kind %q", tx.Kind)
	}

	// Rule 3: Amount is non-negative with at most 2 decimal places.
	if tx.Amount.IsNegative() {
		fail(3, "amount %s is negative", tx.Amount)
	}
	if !tx.Amount.Mul(hundred).Equal(tx.Amount.Mul(hundred).Floor()) {
		fail(3, "amount %s has more than 2 decimal places", tx.Amount)
	}

	// Rule 4: Valid account references.
	// Rule 7: Only posting accounts take postings; groups carry their children's totals.
	if tx.AccountID == "" {
		fail(4, "account is required")
	} else if acct, ok := accounts.Get(tx.AccountID); !ok {
		fail(4, "unknown account %s", tx.AccountID)
	} else if !acct.IsPosting {
		fail(7, "account %s is a group and cannot take postings", tx.AccountID)
	}
	if tx.PaymentAccountID != "" {
		if acct, ok := accounts.Get(tx.PaymentAccountID); !ok {
			fail(4, "unknown payment account %s", tx.PaymentAccountID)
		} else if !acct.IsPosting {
			fail(7, "payment account %s is a group and cannot take postings", tx.PaymentAccountID)
		}
	}

	// Rule 5: A transaction cannot move money from an account to itself.
	if tx.AccountID != "" && tx.AccountID == tx.PaymentAccountID {
		fail(5, "account and payment account are both %s", tx.AccountID)
	}

	return errs
}

// ValidateJournal checks every transaction and, as rule 6, that IDs are unique.
func ValidateJournal(txs []model.Transaction, accounts AccountChecker) []ValidationError {
	var errs []ValidationError
	seen := make(map[string]bool, len(txs))
	for _, tx := range txs {
		errs = append(errs, ValidateTransaction(tx, accounts)...)
		if tx.ID == "" {
			continue
		}
		if seen[tx.ID] {
			errs = append(errs, ValidationError{Rule: 6, TransactionID: tx.ID, Description: "duplicate transaction ID"})
		}
		seen[tx.ID] = true
	}
	return errs
}

// Join combines validation errors into one error, or nil when there are none.
func Join(verrs []ValidationError) error {
	if len(verrs) == 0 {
		return nil
	}
	errs := make([]error, len(verrs))
	for i, ve := range verrs {
		errs[i] = ve
	}
	return fmt.Errorf("validation failed: %w", errors.Join(errs...))
}
