package export

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/alexanderramin/wbs/internal/domain"
)

// jsonNode is the nested export shape. Storage details such as ids, parent
// links and audit timestamps are left out.
type jsonNode struct {
	Code            string     `json:"code"`
	Name            string     `json:"name"`
	Type            string     `json:"type"`
	Owner           string     `json:"owner"`
	StartDate       *string    `json:"start_date"`
	FinishDate      *string    `json:"finish_date"`
	EffortHours     float64    `json:"effort_hours"`
	Cost            float64    `json:"cost"`
	PercentComplete int        `json:"percent_complete"`
	Status          string     `json:"status"`
	Predecessors    []string   `json:"predecessors"`
	Children        []jsonNode `json:"children"`
}

// JSON renders the forest as an indented array of nested nodes.
func JSON(forest []*domain.TreeNode, owners OwnerNames) ([]byte, error) {
	out, err := json.MarshalIndent(toJSONNodes(forest, owners), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding json export: %w", err)
	}
	return append(out, '\n'), nil
}

func toJSONNodes(nodes []*domain.TreeNode, owners OwnerNames) []jsonNode {
	out := make([]jsonNode, 0, len(nodes))
	for _, n := range nodes {
		f := figures(n)
		preds := n.Predecessors
		if preds == nil {
			preds = []string{}
		}
		out = append(out, jsonNode{
			Code:            n.Code,
			Name:            n.Name,
			Type:            string(n.Type),
			Owner:           ownerLabel(n, owners),
			StartDate:       datePtr(f.StartDate),
			FinishDate:      datePtr(f.FinishDate),
			EffortHours:     f.EffortHours,
			Cost:            f.Cost,
			PercentComplete: f.PercentComplete,
			Status:          string(n.Status),
			Predecessors:    preds,
			Children:        toJSONNodes(n.Children, owners),
		})
	}
	return out
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(domain.DateLayout)
}

func datePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(domain.DateLayout)
	return &s
}
