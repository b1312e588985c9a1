// Package export renders an assembled, rolled-up forest as downloadable
// documents.
package export

import (
	"strconv"

	"github.com/alexanderramin/wbs/internal/domain"
)

const (
	ContentTypeCSV  = "text/csv; charset=utf-8"
	ContentTypeJSON = "application/json"
)

// Document is a rendered export ready to be written to a file or response.
type Document struct {
	Filename    string
	ContentType string
	Body        []byte
}

// OwnerNames maps an owner id to the name shown in exports. Returning ""
// falls back to the raw id.
type OwnerNames func(id string) string

func ownerLabel(n *domain.TreeNode, names OwnerNames) string {
	if n.OwnerID == nil {
		return ""
	}
	var name string
	if names != nil {
		name = names(*n.OwnerID)
	}
	return domain.CoalesceStr(name, *n.OwnerID)
}

// figures returns the rolled-up values for n, or its own values when rollups
// were not computed.
func figures(n *domain.TreeNode) domain.Rollup {
	if n.Rollup != nil {
		return *n.Rollup
	}
	return domain.Rollup{
		EffortHours:     n.EffortHours,
		Cost:            n.Cost,
		PercentComplete: n.PercentComplete,
		StartDate:       n.StartDate,
		FinishDate:      n.FinishDate,
	}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
