package ledger

import (
	"slices"

	"github.com/tallybook/tally/internal/model"
)

// IDSet is a set of account IDs.
type IDSet map[string]struct{}

// NewIDSet returns a set holding ids.
func NewIDSet(ids ...string) IDSet {
	s := make(IDSet, len(ids))
	for _, v := range ids {
		s[v] = struct{}{}
	}
	return s
}

// Has reports whether v is in the set. The empty ID is never a member.
func (s IDSet) Has(v string) bool {
	if v == "" {
		return false
	}
	_, ok := s[v]
	return ok
}

// Sorted returns the members in ascending order.
func (s IDSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}

// DescendantIDs returns rootID together with every account whose parent chain
// reaches rootID. A root with no children yields a singleton set.
func DescendantIDs(rootID string, accounts []model.Account) (IDSet, error) {
	children := make(map[string][]string)
	parents := make(map[string]string, len(accounts))
	seen := make(map[string]bool, len(accounts))
	for _, a := range accounts {
		if seen[a.ID] {
			continue
		}
		seen[a.ID] = true
		if a.ParentID == "" {
			continue
		}
		children[a.ParentID] = append(children[a.ParentID], a.ID)
		parents[a.ID] = a.ParentID
	}

	set := NewIDSet(rootID)
	queue := []string{rootID}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, child := range children[cur] {
			if set.Has(child) {
				return nil, &CycleError{Path: cyclePath(child, func(id string) string { return parents[id] })}
			}
			set[child] = struct{}{}
			queue = append(queue, child)
		}
	}
	return set, nil
}
