package id

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// shortLen is the number of characters shown for an ID in listings.
const shortLen = 8

// NewTransactionID returns a ULID stamped with the transaction date, so IDs of
// transactions sort in date order. Dates outside the range a ULID can encode
// are clamped to its bounds; validation rejects such dates separately.
func NewTransactionID(at time.Time) string {
	var ms uint64
	switch {
	case at.Before(time.UnixMilli(0)):
		ms = 0
	case at.After(ulid.Time(ulid.MaxTime())):
		ms = ulid.MaxTime()
	default:
		ms = ulid.Timestamp(at)
	}
	return ulid.MustNew(ms, ulid.DefaultEntropy()).String()
}

// TransactionTime extracts the timestamp encoded in a transaction ID.
func TransactionTime(txID string) (time.Time, error) {
	u, err := ulid.ParseStrict(txID)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid transaction ID %q: %w", txID, err)
	}
	return ulid.Time(u.Time()), nil
}

// New returns a random ID for parties, assets and recurring rules.
func New() string {
	return uuid.NewString()
}

// Short returns the display prefix of an ID.
// "01JH6Y3S9QKQ8W4D4P6J1N2B7C" -> "01JH6Y3S"
func Short(v string) string {
	if len(v) <= shortLen {
		return v
	}
	return v[:shortLen]
}

// Match reports whether prefix identifies v. Matching is case-insensitive
// because ULIDs are often typed in lower case.
func Match(v, prefix string) bool {
	if prefix == "" {
		return false
	}
	return strings.HasPrefix(strings.ToUpper(v), strings.ToUpper(prefix))
}
