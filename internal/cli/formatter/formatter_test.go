package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/wbs/internal/domain"
	"github.com/alexanderramin/wbs/internal/wbs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func usePlain(t *testing.T) {
	t.Helper()
	SetPlain(true)
	t.Cleanup(func() { SetPlain(false) })
}

func date(s string) *time.Time {
	d, err := domain.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return &d
}

func sampleForest() []*domain.TreeNode {
	parent := "a"
	nodes := []domain.Node{
		{ID: "a", Order: 1, Name: "Design", Type: domain.NodePhase, Status: domain.StatusInProgress},
		{ID: "a1", ParentID: &parent, Order: 1, Name: "Wireframes", Type: domain.NodeTask, Status: domain.StatusDone,
			EffortHours: 10, PercentComplete: 100, StartDate: date("2025-01-05")},
		{ID: "a2", ParentID: &parent, Order: 2, Name: "Review", Type: domain.NodeMilestone, Status: domain.StatusNotStarted,
			EffortHours: 30, PercentComplete: 60, FinishDate: date("2025-01-20"), Cost: 1234.5},
		{ID: "b", Order: 2, Name: "Build", Type: domain.NodePhase, Status: domain.StatusNotStarted},
	}
	return wbs.Build(nodes)
}

func TestRenderTree_ConnectorsAndBadges(t *testing.T) {
	usePlain(t)

	out := RenderTree(sampleForest())
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "1 ▶ Design"))
	assert.True(t, strings.HasPrefix(lines[1], "├─ 1.1 ✔ Wireframes"))
	assert.True(t, strings.HasPrefix(lines[2], "└─ 1.2 Review"))
	assert.True(t, strings.HasPrefix(lines[3], "2 Build"))
	assert.Contains(t, lines[0], "[ 40h · 70% ]")

	badgeCol := strings.Index(lines[0], "[")
	for _, l := range lines[1:] {
		assert.Equal(t, len([]rune(lines[0][:badgeCol])), len([]rune(l[:strings.Index(l, "[")])), "badges are aligned")
	}
}

func TestRenderTree_Empty(t *testing.T) {
	assert.Empty(t, RenderTree(nil))
}

func TestFormatTree_Footer(t *testing.T) {
	usePlain(t)
	forest := sampleForest()

	out := FormatTree("ERP", forest, wbs.Totals(forest))
	assert.Contains(t, out, "ERP")
	assert.Contains(t, out, "effort 40h")
	assert.Contains(t, out, "cost 1,234.5")
	assert.Contains(t, out, "2025-01-05–2025-01-20")
	assert.Contains(t, out, " 70%")

	assert.Contains(t, FormatTree("ERP", nil, domain.Rollup{}), "No nodes yet.")
}

func TestFormatTimeline_IndentsByDepth(t *testing.T) {
	usePlain(t)

	out := FormatTimeline(wbs.Flatten(sampleForest()))
	assert.Contains(t, out, "CODE")
	assert.Contains(t, out, "  ✔ Wireframes")
	assert.Contains(t, out, "2025-01-20")
	assert.Contains(t, out, "milestone")
}

func TestRenderTable_RightAlign(t *testing.T) {
	usePlain(t)

	out := RenderTable([]string{"NAME", "HOURS"}, [][]string{{"a", "5h"}, {"bbbb", "120h"}}, 1)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "a        5h", lines[2])
	assert.Equal(t, "bbbb   120h", lines[3])
}

func TestRenderProgress_Clamps(t *testing.T) {
	usePlain(t)

	assert.Equal(t, "[░░░░]   0%", RenderProgress(-5, 4))
	assert.Equal(t, "[██░░]  50%", RenderProgress(50, 4))
	assert.Equal(t, "[████] 100%", RenderProgress(150, 4))
}

func TestFormatCost(t *testing.T) {
	tests := map[float64]string{
		0:          "0",
		999:        "999",
		1000:       "1,000",
		1234.5:     "1,234.5",
		1234567.89: "1,234,567.89",
		-2500:      "-2,500",
	}
	for in, want := range tests {
		assert.Equal(t, want, FormatCost(in), "%v", in)
	}
}

func TestFormatDirectoryLists(t *testing.T) {
	usePlain(t)

	projects := FormatProjectList([]*domain.Project{{ID: "12345678-aaaa", ShortID: "ERP", Name: "Rollout"}})
	assert.Contains(t, projects, "ERP")
	assert.Contains(t, projects, "12345678")
	assert.NotContains(t, projects, "aaaa")

	people := FormatPersonList([]*domain.Person{{ID: "p-1", DisplayName: "Dana Reyes"}})
	assert.Contains(t, people, "Dana Reyes")
	assert.Contains(t, people, "--")
}
