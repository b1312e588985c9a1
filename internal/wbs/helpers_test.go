package wbs

import (
	"time"

	"github.com/alexanderramin/wbs/internal/domain"
)

var (
	t0    = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	later = time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
)

type nodeOpt func(*domain.Node)

func withEffort(h float64, pct int) nodeOpt {
	return func(n *domain.Node) {
		n.EffortHours = h
		n.PercentComplete = pct
	}
}

func withCost(c float64) nodeOpt {
	return func(n *domain.Node) { n.Cost = c }
}

func withDates(start, finish string) nodeOpt {
	return func(n *domain.Node) {
		n.StartDate = mustDate(start)
		n.FinishDate = mustDate(finish)
	}
}

func mk(id, parent string, order int, opts ...nodeOpt) domain.Node {
	n := domain.Node{
		ID:        id,
		ProjectID: "p-1",
		ParentID:  domain.StrPtrOrNil(parent),
		Order:     order,
		Name:      "Node " + id,
		Type:      domain.NodeTask,
		Status:    domain.StatusNotStarted,
		CreatedAt: t0,
		UpdatedAt: t0,
	}
	for _, o := range opts {
		o(&n)
	}
	return n
}

func mustDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	d, err := domain.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return &d
}

// codes maps node id to derived code for the whole forest.
func codes(nodes []domain.Node) map[string]string {
	out := make(map[string]string)
	Walk(Assemble(nodes), func(tn *domain.TreeNode) bool {
		out[tn.ID] = tn.Code
		return true
	})
	return out
}

func byID(nodes []domain.Node, id string) domain.Node {
	return nodes[indexOf(nodes, id)]
}

// sampleTree:
//
//	1   A
//	1.1   A1
//	1.2   A2
//	1.2.1   A2x
//	1.3   A3
//	2   B
func sampleTree() []domain.Node {
	return []domain.Node{
		mk("B", "", 2),
		mk("A2x", "A2", 1),
		mk("A", "", 1),
		mk("A3", "A", 3),
		mk("A1", "A", 1),
		mk("A2", "A", 2),
	}
}
