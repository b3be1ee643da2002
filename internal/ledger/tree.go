package ledger

import (
	"cmp"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/tallybook/tally/internal/model"
)

// Node is the ledger view of an account. DirectBalance covers postings made
// exactly to the account; TotalBalance adds every descendant. Both are Dr-positive.
type Node struct {
	model.Account
	Children      []*Node
	DirectBalance decimal.Decimal
	TotalBalance  decimal.Decimal
}

// Tree is the chart of accounts arranged as one forest per class.
type Tree struct {
	roots map[model.AccountClass][]*Node
	index map[string]*Node

	// Unclassified holds roots whose class is not one of the five known classes.
	Unclassified []*Node
	// OrphanedPostings counts transaction sides that referenced an unknown account.
	OrphanedPostings int
}

// BuildTree attributes every transaction to the accounts it touches, links
// accounts to their parents and rolls balances up to the roots. An account whose
// parent is missing becomes a root of its class. Parent links that loop back on
// themselves are reported as a *CycleError.
func BuildTree(accounts []model.Account, txs []model.Transaction) (*Tree, error) {
	tree := &Tree{
		roots: make(map[model.AccountClass][]*Node, len(model.Classes)),
		index: make(map[string]*Node, len(accounts)),
	}

	nodes := make([]*Node, 0, len(accounts))
	for _, a := range accounts {
		if _, dup := tree.index[a.ID]; dup {
			continue
		}
		n := &Node{Account: a}
		tree.index[a.ID] = n
		nodes = append(nodes, n)
	}

	for _, t := range txs {
		if n, ok := tree.index[t.AccountID]; ok {
			n.DirectBalance = n.DirectBalance.Add(t.Amount)
		} else {
			tree.OrphanedPostings++
		}
		if t.PaymentAccountID == "" {
			continue
		}
		if n, ok := tree.index[t.PaymentAccountID]; ok {
			n.DirectBalance = n.DirectBalance.Sub(t.Amount)
		} else {
			tree.OrphanedPostings++
		}
	}

	if err := tree.checkCycles(nodes); err != nil {
		return nil, err
	}

	for _, n := range nodes {
		if parent, ok := tree.parent(n); ok {
			parent.Children = append(parent.Children, n)
			continue
		}
		if n.Class.Valid() {
			tree.roots[n.Class] = append(tree.roots[n.Class], n)
		} else {
			tree.Unclassified = append(tree.Unclassified, n)
		}
	}

	for _, class := range model.Classes {
		sortByCode(tree.roots[class])
		for _, root := range tree.roots[class] {
			aggregate(root)
		}
	}
	sortByCode(tree.Unclassified)
	for _, root := range tree.Unclassified {
		aggregate(root)
	}
	return tree, nil
}

func (t *Tree) parent(n *Node) (*Node, bool) {
	if n.ParentID == "" {
		return nil, false
	}
	p, ok := t.index[n.ParentID]
	return p, ok
}

func (t *Tree) parentID(id string) string {
	n, ok := t.index[id]
	if !ok {
		return ""
	}
	if p, ok := t.parent(n); ok {
		return p.ID
	}
	return ""
}

// checkCycles walks every parent chain once.
func (t *Tree) checkCycles(nodes []*Node) error {
	const (
		walking = 1
		done    = 2
	)
	state := make(map[string]int, len(nodes))
	for _, n := range nodes {
		var path []string
		for cur := n.ID; cur != ""; cur = t.parentID(cur) {
			if state[cur] == done {
				break
			}
			if state[cur] == walking {
				return &CycleError{Path: cyclePath(cur, t.parentID)}
			}
			state[cur] = walking
			path = append(path, cur)
		}
		for _, id := range path {
			state[id] = done
		}
	}
	return nil
}

// cyclePath follows parent links from an account known to sit on a loop and
// returns the loop, closed with its first element.
func cyclePath(start string, parentOf func(string) string) []string {
	path := []string{start}
	for cur := parentOf(start); cur != start && cur != ""; cur = parentOf(cur) {
		path = append(path, cur)
	}
	return append(path, start)
}

func aggregate(n *Node) decimal.Decimal {
	sortByCode(n.Children)
	total := n.DirectBalance
	for _, child := range n.Children {
		total = total.Add(aggregate(child))
	}
	n.TotalBalance = total
	return total
}

// sortByCode orders nodes by code as plain strings, so "100" sorts before "20".
func sortByCode(nodes []*Node) {
	slices.SortStableFunc(nodes, func(a, b *Node) int {
		return cmp.Compare(a.Code, b.Code)
	})
}

// Roots returns the top-level nodes of a class, sorted by code.
func (t *Tree) Roots(class model.AccountClass) []*Node {
	return t.roots[class]
}

// Node looks up any node by account ID.
func (t *Tree) Node(id string) (*Node, bool) {
	n, ok := t.index[id]
	return n, ok
}

// ClassTotal is the Dr-positive sum of a class's root totals.
func (t *Tree) ClassTotal(class model.AccountClass) decimal.Decimal {
	total := decimal.Zero
	for _, root := range t.roots[class] {
		total = total.Add(root.TotalBalance)
	}
	return total
}

// All returns every node in pre-order, classes in statement order and
// unclassified roots last.
func (t *Tree) All() []*Node {
	var out []*Node
	for _, class := range model.Classes {
		out = append(out, Flatten(t.roots[class])...)
	}
	return append(out, Flatten(t.Unclassified)...)
}

// Flatten lists nodes and their descendants in pre-order.
func Flatten(nodes []*Node) []*Node {
	var out []*Node
	for _, n := range nodes {
		out = append(out, n)
		out = append(out, Flatten(n.Children)...)
	}
	return out
}

// Depth returns how many ancestors n has inside the tree.
func (t *Tree) Depth(n *Node) int {
	d := 0
	for p, ok := t.parent(n); ok; p, ok = t.parent(p) {
		d++
	}
	return d
}
