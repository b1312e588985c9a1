package wbs

import (
	"fmt"
	"sort"
	"time"

	"github.com/alexanderramin/wbs/internal/domain"
)

// The operators below never modify their input. Each returns a fresh slice
// holding the whole collection so the caller can store it as one value, and
// structural operators report whether anything changed so a boundary no-op
// can skip the write entirely.

// Create builds a new node from patch and appends it to the end of its
// sibling group. Unset fields take the zero defaults (type task, status
// not_started).
func Create(nodes []domain.Node, projectID string, patch domain.NodePatch, id string, now time.Time) ([]domain.Node, domain.Node, error) {
	parentKey, _ := patch.TargetParent()
	if parentKey != "" && indexOf(nodes, parentKey) < 0 {
		return nil, domain.Node{}, fmt.Errorf("parent %s: %w", parentKey, domain.ErrDanglingParent)
	}

	n := domain.Node{
		ID:        id,
		ProjectID: projectID,
		ParentID:  domain.StrPtrOrNil(parentKey),
		Order:     maxOrder(nodes, parentKey) + 1,
		Type:      domain.NodeTask,
		Status:    domain.StatusNotStarted,
		CreatedAt: now,
		UpdatedAt: now,
	}
	patch.ApplyTo(&n)
	if err := n.Validate(); err != nil {
		return nil, domain.Node{}, err
	}

	out := append(cloneAll(nodes), n)
	return out, n.Clone(), nil
}

// Update merges patch onto an existing node. A parent change moves the node
// to the end of its new sibling group and closes the gap it left behind.
func Update(nodes []domain.Node, id string, patch domain.NodePatch, now time.Time) ([]domain.Node, domain.Node, error) {
	idx := indexOf(nodes, id)
	if idx < 0 {
		return nil, domain.Node{}, fmt.Errorf("node %s: %w", id, domain.ErrNotFound)
	}

	out := cloneAll(nodes)
	n := &out[idx]
	oldKey := n.ParentKey()

	newKey, set := patch.TargetParent()
	reparent := set && newKey != oldKey
	if reparent {
		if err := checkParent(out, id, newKey); err != nil {
			return nil, domain.Node{}, err
		}
		n.Order = maxOrder(out, newKey) + 1
		n.ParentID = domain.StrPtrOrNil(newKey)
	}

	patch.ApplyTo(n)
	n.UpdatedAt = now
	if err := n.Validate(); err != nil {
		return nil, domain.Node{}, err
	}

	if reparent {
		renumber(out, oldKey, now)
	}
	return out, out[idx].Clone(), nil
}

// Delete removes the node and every transitive descendant. A missing id is
// not an error: the collection comes back unchanged with removed == 0.
func Delete(nodes []domain.Node, id string, now time.Time) ([]domain.Node, int) {
	idx := indexOf(nodes, id)
	if idx < 0 {
		return cloneAll(nodes), 0
	}
	parentKey := nodes[idx].ParentKey()

	children := make(map[string][]string)
	for i := range nodes {
		if key := nodes[i].ParentKey(); key != "" {
			children[key] = append(children[key], nodes[i].ID)
		}
	}

	doomed := make(map[string]struct{})
	stack := []string{id}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, seen := doomed[cur]; seen {
			continue
		}
		doomed[cur] = struct{}{}
		stack = append(stack, children[cur]...)
	}

	out := make([]domain.Node, 0, len(nodes)-len(doomed))
	for i := range nodes {
		if _, gone := doomed[nodes[i].ID]; !gone {
			out = append(out, nodes[i].Clone())
		}
	}
	renumber(out, parentKey, now)
	return out, len(doomed)
}

// Move shifts a node one position up or down among its siblings. At either
// end of the group it is a no-op and changed is false.
func Move(nodes []domain.Node, id string, dir domain.Direction, now time.Time) ([]domain.Node, bool, error) {
	var step int
	switch dir {
	case domain.DirectionUp:
		step = -1
	case domain.DirectionDown:
		step = 1
	default:
		return nil, false, fmt.Errorf("%w: direction must be up or down, got %q", domain.ErrInvalidNode, dir)
	}

	idx := indexOf(nodes, id)
	if idx < 0 {
		return nil, false, fmt.Errorf("node %s: %w", id, domain.ErrNotFound)
	}

	group := siblingIndexes(nodes, nodes[idx].ParentKey())
	pos := position(group, idx)
	target := pos + step
	if target < 0 || target >= len(group) {
		return nodes, false, nil
	}

	out := cloneAll(nodes)
	group[pos], group[target] = group[target], group[pos]
	assignDense(out, group, now)
	// Both swapped nodes changed position even if duplicate orders hid it.
	out[group[pos]].UpdatedAt = now
	out[group[target]].UpdatedAt = now
	return out, true, nil
}

// Indent makes a node the last child of its preceding sibling. The first
// sibling of a group cannot be indented and is left alone.
func Indent(nodes []domain.Node, id string, now time.Time) ([]domain.Node, bool, error) {
	idx := indexOf(nodes, id)
	if idx < 0 {
		return nil, false, fmt.Errorf("node %s: %w", id, domain.ErrNotFound)
	}

	oldKey := nodes[idx].ParentKey()
	group := siblingIndexes(nodes, oldKey)
	pos := position(group, idx)
	if pos <= 0 {
		return nodes, false, nil
	}
	newParent := nodes[group[pos-1]].ID

	out := cloneAll(nodes)
	n := &out[idx]
	n.Order = maxOrder(out, newParent) + 1
	n.ParentID = domain.StrPtrOrNil(newParent)
	n.UpdatedAt = now
	renumber(out, oldKey, now)
	return out, true, nil
}

// Outdent lifts a node to its grandparent's group, directly after its former
// parent, so Indent followed by Outdent restores the original position.
// Root-level nodes and orphans are left alone.
func Outdent(nodes []domain.Node, id string, now time.Time) ([]domain.Node, bool, error) {
	idx := indexOf(nodes, id)
	if idx < 0 {
		return nil, false, fmt.Errorf("node %s: %w", id, domain.ErrNotFound)
	}
	oldKey := nodes[idx].ParentKey()
	if oldKey == "" {
		return nodes, false, nil
	}
	parentIdx := indexOf(nodes, oldKey)
	if parentIdx < 0 {
		return nodes, false, nil
	}
	grandKey := nodes[parentIdx].ParentKey()

	out := cloneAll(nodes)
	group := siblingIndexes(out, grandKey)
	at := position(group, parentIdx) + 1
	group = append(group[:at], append([]int{idx}, group[at:]...)...)

	out[idx].ParentID = domain.StrPtrOrNil(grandKey)
	out[idx].UpdatedAt = now
	assignDense(out, group, now)
	renumber(out, oldKey, now)
	return out, true, nil
}

// checkParent rejects a parent that does not exist or that would make the
// node its own ancestor.
func checkParent(nodes []domain.Node, id, parentKey string) error {
	if parentKey == "" {
		return nil
	}
	if parentKey == id {
		return fmt.Errorf("node %s under itself: %w", id, domain.ErrCycle)
	}
	if indexOf(nodes, parentKey) < 0 {
		return fmt.Errorf("parent %s: %w", parentKey, domain.ErrDanglingParent)
	}

	seen := make(map[string]struct{})
	for cur := parentKey; cur != ""; {
		if cur == id {
			return fmt.Errorf("node %s under its descendant %s: %w", id, parentKey, domain.ErrCycle)
		}
		if _, ok := seen[cur]; ok {
			break
		}
		seen[cur] = struct{}{}
		i := indexOf(nodes, cur)
		if i < 0 {
			break
		}
		cur = nodes[i].ParentKey()
	}
	return nil
}

// renumber rewrites one sibling group to a dense 1..N sequence in its
// current order.
func renumber(nodes []domain.Node, parentKey string, now time.Time) {
	assignDense(nodes, siblingIndexes(nodes, parentKey), now)
}

// assignDense gives the nodes at idxs the orders 1..N in slice order,
// stamping UpdatedAt only where the order actually changes.
func assignDense(nodes []domain.Node, idxs []int, now time.Time) {
	for i, idx := range idxs {
		if nodes[idx].Order != i+1 {
			nodes[idx].Order = i + 1
			nodes[idx].UpdatedAt = now
		}
	}
}

// siblingIndexes returns the slice positions of every node in the group,
// sorted the same way the assembler sorts siblings.
func siblingIndexes(nodes []domain.Node, parentKey string) []int {
	var idxs []int
	for i := range nodes {
		if nodes[i].ParentKey() == parentKey {
			idxs = append(idxs, i)
		}
	}
	sort.SliceStable(idxs, func(a, b int) bool {
		return lessSibling(&nodes[idxs[a]], &nodes[idxs[b]])
	})
	return idxs
}

func maxOrder(nodes []domain.Node, parentKey string) int {
	highest := 0
	for i := range nodes {
		if nodes[i].ParentKey() == parentKey && nodes[i].Order > highest {
			highest = nodes[i].Order
		}
	}
	return highest
}

func position(idxs []int, idx int) int {
	for i, v := range idxs {
		if v == idx {
			return i
		}
	}
	return -1
}

func indexOf(nodes []domain.Node, id string) int {
	for i := range nodes {
		if nodes[i].ID == id {
			return i
		}
	}
	return -1
}

func cloneAll(nodes []domain.Node) []domain.Node {
	out := make([]domain.Node, len(nodes), len(nodes)+1)
	for i := range nodes {
		out[i] = nodes[i].Clone()
	}
	return out
}
