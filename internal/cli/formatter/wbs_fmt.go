package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/wbs/internal/domain"
	"github.com/alexanderramin/wbs/internal/wbs"
)

// FormatTree renders a project's WBS with a totals footer.
func FormatTree(title string, roots []*domain.TreeNode, totals domain.Rollup) string {
	if len(roots) == 0 {
		return RenderBox(title, Dim("No nodes yet."))
	}
	footer := fmt.Sprintf("%s %s   %s %s   %s %s–%s   %s",
		Dim("effort"), FormatHours(totals.EffortHours),
		Dim("cost"), FormatCost(totals.Cost),
		Dim("dates"), FormatDate(totals.StartDate), FormatDate(totals.FinishDate),
		RenderProgress(totals.PercentComplete, 12),
	)
	return RenderBox(title, RenderTree(roots)+"\n"+footer)
}

// FormatTimeline lists the flattened forest with rolled-up dates and
// progress, indenting names by depth.
func FormatTimeline(rows []wbs.Row) string {
	if len(rows) == 0 {
		return Dim("No nodes yet.")
	}
	headers := []string{"CODE", "NAME", "TYPE", "START", "FINISH", "EFFORT", "PROGRESS"}
	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		n := row.Node
		f := domain.Rollup{
			EffortHours:     n.EffortHours,
			PercentComplete: n.PercentComplete,
			StartDate:       n.StartDate,
			FinishDate:      n.FinishDate,
		}
		if n.Rollup != nil {
			f = *n.Rollup
		}
		out = append(out, []string{
			row.Code,
			strings.Repeat("  ", row.Depth) + StatusMark(n.Status) + n.Name,
			TypeBadge(n.Type),
			FormatDate(f.StartDate),
			FormatDate(f.FinishDate),
			FormatHours(f.EffortHours),
			RenderProgress(f.PercentComplete, 10),
		})
	}
	return RenderTable(headers, out, 5)
}
