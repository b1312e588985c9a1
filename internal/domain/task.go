package domain

import "time"

// ExternalTask is a record of the flat task list that can seed an empty WBS.
type ExternalTask struct {
	ID            string
	ProjectID     string
	ParentID      *string
	Order         int
	Title         string
	AssigneeID    *string
	DueDate       *time.Time
	EstimateHours float64
	Done          bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
