package ledger

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrCyclicHierarchy is wrapped by every CycleError.
	ErrCyclicHierarchy = errors.New("cyclic account hierarchy")
	// ErrAccountNotFound is returned when a requested account does not exist.
	ErrAccountNotFound = errors.New("account not found")
)

// CycleError names the accounts whose parent links form a loop.
// Path starts and ends with the same account ID.
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("%s: %s", ErrCyclicHierarchy, strings.Join(e.Path, " -> "))
}

// Unwrap lets errors.Is match ErrCyclicHierarchy.
func (e *CycleError) Unwrap() error {
	return ErrCyclicHierarchy
}
