package importer

import (
	"fmt"

	"github.com/alexanderramin/wbs/internal/domain"
)

// ValidateTaskList checks the list before conversion and returns every
// problem found, not just the first.
func ValidateTaskList(list *TaskList) []error {
	var errs []error
	ids := make(map[string]bool, len(list.Tasks))

	for i, t := range list.Tasks {
		label := fmt.Sprintf("tasks[%d]", i)
		if t.ID != "" {
			label = fmt.Sprintf("task %q", t.ID)
		}

		if t.ID == "" {
			errs = append(errs, fmt.Errorf("%s: id is required", label))
		} else if ids[t.ID] {
			errs = append(errs, fmt.Errorf("%s: duplicate id", label))
		}
		ids[t.ID] = true

		if t.Title == "" {
			errs = append(errs, fmt.Errorf("%s: title is required", label))
		}
		if t.ParentID != nil && t.ID != "" && *t.ParentID == t.ID {
			errs = append(errs, fmt.Errorf("%s: parent_id references itself", label))
		}
		if t.DueDate != nil {
			if _, err := domain.ParseDate(*t.DueDate); err != nil {
				errs = append(errs, fmt.Errorf("%s: due_date: %v", label, err))
			}
		}
		if t.EstimateHours != nil && *t.EstimateHours < 0 {
			errs = append(errs, fmt.Errorf("%s: estimate_hours must be >= 0", label))
		}
	}

	errs = append(errs, validateParentChains(list.Tasks)...)
	return errs
}

// validateParentChains reports tasks whose parent chain loops back on
// itself. Such tasks would be unreachable once imported.
func validateParentChains(tasks []TaskImport) []error {
	parent := make(map[string]string, len(tasks))
	for _, t := range tasks {
		if t.ID != "" && t.ParentID != nil && *t.ParentID != t.ID {
			parent[t.ID] = *t.ParentID
		}
	}

	var errs []error
	for _, t := range tasks {
		seen := map[string]bool{t.ID: true}
		for cur, ok := parent[t.ID]; ok; cur, ok = parent[cur] {
			if cur == t.ID {
				errs = append(errs, fmt.Errorf("task %q: parent chain forms a cycle", t.ID))
				break
			}
			if seen[cur] {
				break
			}
			seen[cur] = true
		}
	}
	return errs
}
