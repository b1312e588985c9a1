package wbs

import (
	"fmt"
	"math/rand"
	"sort"
	"testing"

	"github.com/alexanderramin/wbs/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMutations_Invariants_RandomEditSequences applies random operator
// sequences and checks that every node stays reachable, no cycle appears,
// and every sibling group remains densely numbered 1..N.
func TestMutations_Invariants_RandomEditSequences(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 100; trial++ {
		var nodes []domain.Node
		nextID := 0

		for step := 0; step < 60; step++ {
			var err error
			pick := func() string {
				if len(nodes) == 0 {
					return "none"
				}
				return nodes[rng.Intn(len(nodes))].ID
			}

			switch op := rng.Intn(7); {
			case op == 0 || len(nodes) == 0:
				parent := ""
				if len(nodes) > 0 && rng.Intn(3) > 0 {
					parent = pick()
				}
				nextID++
				nodes, _, err = Create(nodes, "p-1", domain.NodePatch{
					ParentID: strPtr(parent),
					Name:     strPtr("n"),
				}, fmt.Sprintf("n%d", nextID), later)
			case op == 1:
				before := len(nodes)
				var removed int
				nodes, removed = Delete(nodes, pick(), later)
				assert.Equal(t, before-removed, len(nodes))
			case op == 2:
				nodes, _, err = Move(nodes, pick(), domain.DirectionUp, later)
			case op == 3:
				nodes, _, err = Move(nodes, pick(), domain.DirectionDown, later)
			case op == 4:
				nodes, _, err = Indent(nodes, pick(), later)
			case op == 5:
				nodes, _, err = Outdent(nodes, pick(), later)
			case op == 6:
				var out []domain.Node
				out, _, err = Update(nodes, pick(), domain.NodePatch{ParentID: strPtr(pick())}, later)
				if err == nil {
					nodes = out
				} else {
					err = nil
				}
			}
			require.NoError(t, err, "trial %d step %d", trial, step)

			assert.Len(t, codes(nodes), len(nodes),
				"trial %d step %d: every node must be reachable from a root", trial, step)
			assertDenseGroups(t, nodes, trial, step)
		}
	}
}

func assertDenseGroups(t *testing.T, nodes []domain.Node, trial, step int) {
	t.Helper()
	groups := make(map[string][]int)
	for _, n := range nodes {
		groups[n.ParentKey()] = append(groups[n.ParentKey()], n.Order)
	}
	for key, orders := range groups {
		sort.Ints(orders)
		for i, o := range orders {
			assert.Equal(t, i+1, o, "trial %d step %d: group %q orders %v", trial, step, key, orders)
		}
	}
}
