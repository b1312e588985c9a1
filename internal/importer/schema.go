// Package importer turns an external flat task list into WBS nodes.
package importer

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/alexanderramin/wbs/internal/domain"
)

// TaskList is the JSON structure of a task list file.
type TaskList struct {
	Tasks []TaskImport `json:"tasks"`
}

// TaskImport is one record of the external task list. ID and ParentID are
// references local to the list; they are remapped to fresh node ids.
type TaskImport struct {
	ID            string   `json:"id"`
	ParentID      *string  `json:"parent_id,omitempty"`
	Order         int      `json:"order"`
	Title         string   `json:"title"`
	AssigneeID    *string  `json:"assignee_id,omitempty"`
	DueDate       *string  `json:"due_date,omitempty"`
	EstimateHours *float64 `json:"estimate_hours,omitempty"`
	Done          bool     `json:"done"`
}

// LoadTaskList reads and parses a task list JSON file.
func LoadTaskList(path string) (*TaskList, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var list TaskList
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("parsing task list: %w", err)
	}
	return &list, nil
}

// FromExternal adapts stored external tasks to the import shape.
func FromExternal(tasks []*domain.ExternalTask) *TaskList {
	list := &TaskList{Tasks: make([]TaskImport, 0, len(tasks))}
	for _, t := range tasks {
		ti := TaskImport{
			ID:         t.ID,
			ParentID:   t.ParentID,
			Order:      t.Order,
			Title:      t.Title,
			AssigneeID: t.AssigneeID,
			Done:       t.Done,
		}
		if t.DueDate != nil {
			s := t.DueDate.Format(domain.DateLayout)
			ti.DueDate = &s
		}
		if t.EstimateHours != 0 {
			h := t.EstimateHours
			ti.EstimateHours = &h
		}
		list.Tasks = append(list.Tasks, ti)
	}
	return list
}
