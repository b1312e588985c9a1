package wbs

import (
	"testing"

	"github.com/alexanderramin/wbs/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssemble_DerivesCodesFromSiblingOrder(t *testing.T) {
	got := codes(sampleTree())
	assert.Equal(t, map[string]string{
		"A": "1", "A1": "1.1", "A2": "1.2", "A2x": "1.2.1", "A3": "1.3", "B": "2",
	}, got)
}

func TestAssemble_SetsDepthAndChildren(t *testing.T) {
	forest := Assemble(sampleTree())
	require.Len(t, forest, 2)
	assert.Equal(t, 0, forest[0].Depth)
	require.Len(t, forest[0].Children, 3)
	assert.Equal(t, 1, forest[0].Children[1].Depth)
	require.Len(t, forest[0].Children[1].Children, 1)
	assert.Equal(t, 2, forest[0].Children[1].Children[0].Depth)
	assert.Empty(t, forest[1].Children)
}

func TestAssemble_EmptyInput(t *testing.T) {
	assert.Empty(t, Assemble(nil))
}

func TestAssemble_ExcludesOrphans(t *testing.T) {
	nodes := append(sampleTree(), mk("lost", "ghost", 1), mk("lost-child", "lost", 1))
	got := codes(nodes)
	assert.NotContains(t, got, "lost")
	assert.NotContains(t, got, "lost-child")
	assert.Len(t, got, 6)
}

func TestAssemble_TerminatesOnParentCycle(t *testing.T) {
	nodes := []domain.Node{mk("root", "", 1), mk("x", "y", 1), mk("y", "x", 1)}
	got := codes(nodes)
	assert.Equal(t, map[string]string{"root": "1"}, got)
}

func TestAssemble_DoesNotModifyInput(t *testing.T) {
	nodes := sampleTree()
	before := cloneAll(nodes)
	forest := Assemble(nodes)
	forest[0].Name = "changed"
	assert.Equal(t, before, nodes)
}

func TestAssemble_DuplicateOrdersBreakTiesByCreationThenID(t *testing.T) {
	first := mk("zz", "", 1)
	second := mk("aa", "", 1)
	second.CreatedAt = later
	third := mk("bb", "", 1)
	third.CreatedAt = later

	got := codes([]domain.Node{third, second, first})
	assert.Equal(t, "1", got["zz"])
	assert.Equal(t, "2", got["aa"])
	assert.Equal(t, "3", got["bb"])
}

func TestAssemble_CodesAreDeterministic(t *testing.T) {
	nodes := sampleTree()
	assert.Equal(t, codes(nodes), codes(nodes))
}

func TestAssemble_ReorderUpdatesDescendantCodes(t *testing.T) {
	nodes, changed, err := Move(sampleTree(), "A2", domain.DirectionUp, later)
	require.NoError(t, err)
	require.True(t, changed)

	got := codes(nodes)
	assert.Equal(t, "1.1", got["A2"])
	assert.Equal(t, "1.1.1", got["A2x"])
	assert.Equal(t, "1.2", got["A1"])
}

func TestFindByCodeAndID(t *testing.T) {
	forest := Assemble(sampleTree())

	tn := FindByCode(forest, "1.2.1")
	require.NotNil(t, tn)
	assert.Equal(t, "A2x", tn.ID)

	tn = FindByID(forest, "A3")
	require.NotNil(t, tn)
	assert.Equal(t, "1.3", tn.Code)

	assert.Nil(t, FindByCode(forest, "9"))
	assert.Nil(t, FindByID(forest, "missing"))
}

func TestFlatten_PreOrderWithDepthAndCode(t *testing.T) {
	rows := Flatten(Assemble(sampleTree()))
	var got []string
	for _, r := range rows {
		got = append(got, r.Code)
	}
	assert.Equal(t, []string{"1", "1.1", "1.2", "1.2.1", "1.3", "2"}, got)
	assert.Equal(t, 2, rows[3].Depth)
	assert.Equal(t, "A2x", rows[3].Node.ID)
}
