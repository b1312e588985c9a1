package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptrStr(s string) *string     { return &s }
func ptrFloat(f float64) *float64 { return &f }

func validList() *TaskList {
	return &TaskList{Tasks: []TaskImport{
		{ID: "t1", Title: "Discovery", Order: 1},
		{ID: "t2", ParentID: ptrStr("t1"), Title: "Interviews", Order: 1, DueDate: ptrStr("2025-03-01"), EstimateHours: ptrFloat(8)},
		{ID: "t3", ParentID: ptrStr("t1"), Title: "Report", Order: 2, Done: true},
	}}
}

func TestValidateTaskList_Valid(t *testing.T) {
	assert.Empty(t, ValidateTaskList(validList()))
}

func TestValidateTaskList_Empty(t *testing.T) {
	assert.Empty(t, ValidateTaskList(&TaskList{}))
}

func TestValidateTaskList_CollectsAllErrors(t *testing.T) {
	list := &TaskList{Tasks: []TaskImport{
		{ID: "", Title: "No id"},
		{ID: "a", Title: ""},
		{ID: "a", Title: "Dup"},
		{ID: "b", Title: "Bad date", DueDate: ptrStr("03/01/2025")},
		{ID: "c", Title: "Negative", EstimateHours: ptrFloat(-1)},
		{ID: "d", Title: "Self", ParentID: ptrStr("d")},
	}}
	errs := ValidateTaskList(list)
	assert.Len(t, errs, 6)

	joined := ""
	for _, e := range errs {
		joined += e.Error() + "\n"
	}
	assert.Contains(t, joined, "tasks[0]: id is required")
	assert.Contains(t, joined, `task "a": title is required`)
	assert.Contains(t, joined, `task "a": duplicate id`)
	assert.Contains(t, joined, "expected YYYY-MM-DD")
	assert.Contains(t, joined, "estimate_hours must be >= 0")
	assert.Contains(t, joined, "parent_id references itself")
}

func TestValidateTaskList_ParentCycle(t *testing.T) {
	list := &TaskList{Tasks: []TaskImport{
		{ID: "x", Title: "X", ParentID: ptrStr("y")},
		{ID: "y", Title: "Y", ParentID: ptrStr("x")},
		{ID: "z", Title: "Z", ParentID: ptrStr("x")},
	}}
	errs := ValidateTaskList(list)
	assert.Len(t, errs, 2, "x and y are on the cycle, z only hangs off it")
}

func TestValidateTaskList_UnknownParentIsAllowed(t *testing.T) {
	list := &TaskList{Tasks: []TaskImport{
		{ID: "x", Title: "X", ParentID: ptrStr("elsewhere")},
	}}
	assert.Empty(t, ValidateTaskList(list))
}
