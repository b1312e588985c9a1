package httpapi

import (
	"fmt"
	"time"

	"github.com/alexanderramin/wbs/internal/domain"
	"github.com/alexanderramin/wbs/internal/service"
	"github.com/alexanderramin/wbs/internal/wbs"
)

// NodeRequest is the body of POST and PATCH node calls. Absent fields are
// left unchanged; an empty string clears parent_id, owner_id and dates.
type NodeRequest struct {
	ParentID        *string   `json:"parent_id"`
	Name            *string   `json:"name"`
	Type            *string   `json:"type"`
	OwnerID         *string   `json:"owner_id"`
	StartDate       *string   `json:"start_date"`
	FinishDate      *string   `json:"finish_date"`
	EffortHours     *float64  `json:"effort_hours"`
	Cost            *float64  `json:"cost"`
	PercentComplete *int      `json:"percent_complete"`
	Status          *string   `json:"status"`
	Predecessors    *[]string `json:"predecessors"`
}

func (r NodeRequest) toPatch() (domain.NodePatch, error) {
	p := domain.NodePatch{
		ParentID:        r.ParentID,
		Name:            r.Name,
		OwnerID:         r.OwnerID,
		EffortHours:     r.EffortHours,
		Cost:            r.Cost,
		PercentComplete: r.PercentComplete,
		Predecessors:    r.Predecessors,
	}
	if r.Type != nil {
		t := domain.NodeType(*r.Type)
		p.Type = &t
	}
	if r.Status != nil {
		s := domain.NodeStatus(*r.Status)
		p.Status = &s
	}
	var err error
	if p.StartDate, err = patchDate("start_date", r.StartDate); err != nil {
		return p, err
	}
	if p.FinishDate, err = patchDate("finish_date", r.FinishDate); err != nil {
		return p, err
	}
	return p, nil
}

func patchDate(field string, s *string) (*time.Time, error) {
	if s == nil {
		return nil, nil
	}
	if *s == "" {
		return &time.Time{}, nil
	}
	d, err := domain.ParseDate(*s)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrInvalidNode, field, err)
	}
	return &d, nil
}

type RollupResponse struct {
	EffortHours     float64 `json:"effort_hours"`
	Cost            float64 `json:"cost"`
	PercentComplete int     `json:"percent_complete"`
	StartDate       *string `json:"start_date"`
	FinishDate      *string `json:"finish_date"`
}

type NodeResponse struct {
	ID              string          `json:"id"`
	ParentID        *string         `json:"parent_id"`
	Order           int             `json:"order"`
	Code            string          `json:"code,omitempty"`
	Depth           int             `json:"depth"`
	Name            string          `json:"name"`
	Type            string          `json:"type"`
	OwnerID         *string         `json:"owner_id"`
	StartDate       *string         `json:"start_date"`
	FinishDate      *string         `json:"finish_date"`
	EffortHours     float64         `json:"effort_hours"`
	Cost            float64         `json:"cost"`
	PercentComplete int             `json:"percent_complete"`
	Status          string          `json:"status"`
	Predecessors    []string        `json:"predecessors"`
	UpdatedAt       time.Time       `json:"updated_at"`
	Rollup          *RollupResponse `json:"rollup,omitempty"`
	Children        []NodeResponse  `json:"children,omitempty"`
}

type TreeResponse struct {
	ProjectID string         `json:"project_id"`
	Revision  int64          `json:"revision"`
	Totals    RollupResponse `json:"totals"`
	Roots     []NodeResponse `json:"roots"`
}

type TimelineRow struct {
	Code            string  `json:"code"`
	Depth           int     `json:"depth"`
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	StartDate       *string `json:"start_date"`
	FinishDate      *string `json:"finish_date"`
	EffortHours     float64 `json:"effort_hours"`
	PercentComplete int     `json:"percent_complete"`
}

type ProjectResponse struct {
	ID      string `json:"id"`
	ShortID string `json:"short_id"`
	Name    string `json:"name"`
}

type StructuralResponse struct {
	Changed bool `json:"changed"`
}

type DeleteResponse struct {
	Removed int `json:"removed"`
}

type ImportResponse struct {
	Imported int `json:"imported"`
}

func nodeResponse(n domain.Node) NodeResponse {
	preds := n.Predecessors
	if preds == nil {
		preds = []string{}
	}
	return NodeResponse{
		ID:              n.ID,
		ParentID:        n.ParentID,
		Order:           n.Order,
		Name:            n.Name,
		Type:            string(n.Type),
		OwnerID:         n.OwnerID,
		StartDate:       dateString(n.StartDate),
		FinishDate:      dateString(n.FinishDate),
		EffortHours:     n.EffortHours,
		Cost:            n.Cost,
		PercentComplete: n.PercentComplete,
		Status:          string(n.Status),
		Predecessors:    preds,
		UpdatedAt:       n.UpdatedAt,
	}
}

func treeNodeResponse(tn *domain.TreeNode) NodeResponse {
	r := nodeResponse(tn.Node)
	r.Code = tn.Code
	r.Depth = tn.Depth
	if tn.Rollup != nil {
		ru := rollupResponse(*tn.Rollup)
		r.Rollup = &ru
	}
	for _, child := range tn.Children {
		r.Children = append(r.Children, treeNodeResponse(child))
	}
	return r
}

func rollupResponse(r domain.Rollup) RollupResponse {
	return RollupResponse{
		EffortHours:     r.EffortHours,
		Cost:            r.Cost,
		PercentComplete: r.PercentComplete,
		StartDate:       dateString(r.StartDate),
		FinishDate:      dateString(r.FinishDate),
	}
}

func treeResponse(t *service.WbsTree) TreeResponse {
	roots := make([]NodeResponse, 0, len(t.Roots))
	for _, tn := range t.Roots {
		roots = append(roots, treeNodeResponse(tn))
	}
	return TreeResponse{
		ProjectID: t.ProjectID,
		Revision:  t.Revision,
		Totals:    rollupResponse(t.Totals),
		Roots:     roots,
	}
}

func timelineRows(rows []wbs.Row) []TimelineRow {
	out := make([]TimelineRow, 0, len(rows))
	for _, row := range rows {
		n := row.Node
		f := n.Node
		r := TimelineRow{
			Code:            row.Code,
			Depth:           row.Depth,
			ID:              f.ID,
			Name:            f.Name,
			StartDate:       dateString(f.StartDate),
			FinishDate:      dateString(f.FinishDate),
			EffortHours:     f.EffortHours,
			PercentComplete: f.PercentComplete,
		}
		if n.Rollup != nil {
			r.StartDate = dateString(n.Rollup.StartDate)
			r.FinishDate = dateString(n.Rollup.FinishDate)
			r.EffortHours = n.Rollup.EffortHours
			r.PercentComplete = n.Rollup.PercentComplete
		}
		out = append(out, r)
	}
	return out
}

func dateString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(domain.DateLayout)
	return &s
}
