package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/wbs/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
	treePipe   = "│  "
	treeBlank  = "   "
)

type treeLine struct {
	content string
	badge   string
}

// RenderTree draws the forest with box-drawing connectors, one line per
// node: code, status mark, name, and a right-aligned badge with the node's
// rolled-up effort and percent complete.
func RenderTree(roots []*domain.TreeNode) string {
	if len(roots) == 0 {
		return ""
	}

	var lines []treeLine
	var walk func(nodes []*domain.TreeNode, prefix string, top bool)
	walk = func(nodes []*domain.TreeNode, prefix string, top bool) {
		for i, tn := range nodes {
			last := i == len(nodes)-1
			connector, childPrefix := "", ""
			if !top {
				connector, childPrefix = treeBranch, treePipe
				if last {
					connector, childPrefix = treeCorner, treeBlank
				}
			}
			lines = append(lines, treeLine{
				content: Dim(prefix+connector) + nodeLabel(tn),
				badge:   nodeBadge(tn),
			})
			walk(tn.Children, prefix+childPrefix, false)
		}
	}
	walk(roots, "", true)

	width := 0
	for _, l := range lines {
		width = max(width, lipgloss.Width(l.content))
	}

	var b strings.Builder
	for _, l := range lines {
		pad := width - lipgloss.Width(l.content)
		b.WriteString(l.content + strings.Repeat(" ", pad) + "  " + l.badge + "\n")
	}
	return b.String()
}

func nodeLabel(tn *domain.TreeNode) string {
	name := tn.Name
	switch tn.Status {
	case domain.StatusDone:
		name = Dim(name)
	case domain.StatusInProgress:
		name = render(StyleYellowBold, name)
	}
	return render(StyleBlue, tn.Code) + " " + StatusMark(tn.Status) + name
}

func nodeBadge(tn *domain.TreeNode) string {
	effort, pct := tn.EffortHours, tn.PercentComplete
	if tn.Rollup != nil {
		effort, pct = tn.Rollup.EffortHours, tn.Rollup.PercentComplete
	}
	return Dim(fmt.Sprintf("[ %s · %d%% ]", FormatHours(effort), pct))
}
