package accounts

import (
	"errors"
	"fmt"

	"github.com/tallybook/tally/internal/model"
)

// Lookup is the read side of the chart needed for validation.
type Lookup interface {
	Get(id string) (model.Account, bool)
}

// ValidateAccount checks a new account against the existing chart. All
// problems are reported together.
func ValidateAccount(acct model.Account, chart Lookup) error {
	var errs []error
	if acct.ID == "" {
		errs = append(errs, errors.New("account ID is required"))
	} else if _, dup := chart.Get(acct.ID); dup {
		errs = append(errs, fmt.Errorf("account %s already exists", acct.ID))
	}
	if acct.Code == "" {
		errs = append(errs, fmt.Errorf("account %s: code is required", acct.ID))
	}
	if acct.Name == "" {
		errs = append(errs, fmt.Errorf("account %s: name is required", acct.ID))
	}
	if !acct.Class.Valid() {
		errs = append(errs, fmt.Errorf("account %s: unknown class %q", acct.ID, acct.Class))
	}
	if acct.NormalBalance != model.Debit && acct.NormalBalance != model.Credit {
		errs = append(errs, fmt.Errorf("account %s: normal balance must be debit or credit", acct.ID))
	}
	if acct.ParentID != "" {
		switch parent, ok := chart.Get(acct.ParentID); {
		case acct.ParentID == acct.ID:
			errs = append(errs, fmt.Errorf("account %s cannot be its own parent", acct.ID))
		case !ok:
			errs = append(errs, fmt.Errorf("account %s: parent %s does not exist", acct.ID, acct.ParentID))
		case parent.Class != acct.Class:
			errs = append(errs, fmt.Errorf("account %s: class %s differs from parent class %s", acct.ID, acct.Class, parent.Class))
		}
	}
	if acct.IsDirectCost && acct.Class != model.ClassExpenses {
		errs = append(errs, fmt.Errorf("account %s: only expense accounts can be direct costs", acct.ID))
	}
	return errors.Join(errs...)
}
