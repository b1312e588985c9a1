// Package wbs is the pure WBS engine: it turns a project's flat node
// collection into a coded, rolled-up forest and applies structural edits to
// that collection. Nothing here touches storage.
package wbs

import (
	"sort"
	"strconv"

	"github.com/alexanderramin/wbs/internal/domain"
)

// Assemble converts the flat collection into an ordered forest, deriving each
// node's positional code from the current sibling order. Nodes whose parent
// is missing are unreachable and silently left out. The input is not modified.
func Assemble(nodes []domain.Node) []*domain.TreeNode {
	groups := make(map[string][]*domain.TreeNode)
	for i := range nodes {
		tn := &domain.TreeNode{Node: nodes[i].Clone()}
		key := tn.ParentKey()
		groups[key] = append(groups[key], tn)
	}
	return attach(groups, "", "", 0)
}

// attach only ever descends from root-level nodes, so a node that sits on a
// parent cycle can never be reached and recursion always terminates.
func attach(groups map[string][]*domain.TreeNode, parentKey, prefix string, depth int) []*domain.TreeNode {
	siblings := groups[parentKey]
	if len(siblings) == 0 {
		return nil
	}
	sort.SliceStable(siblings, func(i, j int) bool {
		return lessSibling(&siblings[i].Node, &siblings[j].Node)
	})

	for i, tn := range siblings {
		code := strconv.Itoa(i + 1)
		if prefix != "" {
			code = prefix + "." + code
		}
		tn.Code = code
		tn.Depth = depth
		tn.Children = attach(groups, tn.ID, code, depth+1)
	}
	return siblings
}

// lessSibling orders by Order, breaking duplicates by creation time and then
// id so that ties are stable across reads.
func lessSibling(a, b *domain.Node) bool {
	if a.Order != b.Order {
		return a.Order < b.Order
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.ID < b.ID
}

// FindByID returns the tree node with the given id, or nil.
func FindByID(forest []*domain.TreeNode, id string) *domain.TreeNode {
	var found *domain.TreeNode
	Walk(forest, func(tn *domain.TreeNode) bool {
		if tn.ID == id {
			found = tn
			return false
		}
		return true
	})
	return found
}

// FindByCode returns the tree node whose derived code equals code, or nil.
func FindByCode(forest []*domain.TreeNode, code string) *domain.TreeNode {
	var found *domain.TreeNode
	Walk(forest, func(tn *domain.TreeNode) bool {
		if tn.Code == code {
			found = tn
			return false
		}
		return true
	})
	return found
}

// Walk visits the forest pre-order until fn returns false.
func Walk(forest []*domain.TreeNode, fn func(*domain.TreeNode) bool) {
	var visit func(nodes []*domain.TreeNode) bool
	visit = func(nodes []*domain.TreeNode) bool {
		for _, tn := range nodes {
			if !fn(tn) {
				return false
			}
			if !visit(tn.Children) {
				return false
			}
		}
		return true
	}
	visit(forest)
}
