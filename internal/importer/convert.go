package importer

import (
	"fmt"
	"sort"
	"time"

	"github.com/alexanderramin/wbs/internal/domain"
	"github.com/google/uuid"
)

// Convert maps a validated task list onto WBS nodes for projectID. Every task
// gets a fresh id; parent references are carried over through a ref map and
// parents missing from the list make the task root-level. Source orders are
// kept relative and then renumbered densely. Call ValidateTaskList first.
func Convert(list *TaskList, projectID string, now time.Time) ([]domain.Node, error) {
	return ConvertWithIDs(list, projectID, now, func() string { return uuid.New().String() })
}

// ConvertWithIDs is Convert with a caller-supplied id generator.
func ConvertWithIDs(list *TaskList, projectID string, now time.Time, newID func() string) ([]domain.Node, error) {
	refMap := make(map[string]string, len(list.Tasks)) // source id -> node id
	for _, t := range list.Tasks {
		refMap[t.ID] = newID()
	}

	nodes := make([]domain.Node, 0, len(list.Tasks))
	for _, t := range list.Tasks {
		n := domain.Node{
			ID:          refMap[t.ID],
			ProjectID:   projectID,
			Order:       t.Order,
			Name:        t.Title,
			Type:        domain.NodeTask,
			OwnerID:     domain.StrPtrOrNil(domain.DerefStr(t.AssigneeID)),
			EffortHours: domain.Float64FromPtrWithDefault(0, t.EstimateHours),
			Status:      domain.StatusNotStarted,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if t.ParentID != nil {
			if pid, ok := refMap[*t.ParentID]; ok {
				n.ParentID = &pid
			}
		}
		if t.Done {
			n.Status = domain.StatusDone
			n.PercentComplete = 100
		}
		if t.DueDate != nil {
			due, err := domain.ParseDate(*t.DueDate)
			if err != nil {
				return nil, fmt.Errorf("task %q due_date: %w", t.ID, err)
			}
			n.StartDate = domain.DatePtrOrNil(due)
			n.FinishDate = domain.DatePtrOrNil(due)
		}

		if err := n.Validate(); err != nil {
			return nil, fmt.Errorf("task %q: %w", t.ID, err)
		}
		nodes = append(nodes, n)
	}

	densify(nodes)
	return nodes, nil
}

// densify renumbers each sibling group 1..N by source order, keeping list
// position for ties.
func densify(nodes []domain.Node) {
	groups := make(map[string][]int)
	for i := range nodes {
		key := nodes[i].ParentKey()
		groups[key] = append(groups[key], i)
	}
	for _, idxs := range groups {
		sort.SliceStable(idxs, func(a, b int) bool {
			return nodes[idxs[a]].Order < nodes[idxs[b]].Order
		})
		for rank, i := range idxs {
			nodes[i].Order = rank + 1
		}
	}
}
