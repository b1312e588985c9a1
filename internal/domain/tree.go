package domain

import "time"

// TreeNode is a Node placed in its assembled tree. Code and Rollup are
// recomputed from the flat collection on every read and are never stored.
type TreeNode struct {
	Node
	Code     string
	Depth    int
	Children []*TreeNode
	Rollup   *Rollup
}

// Rollup is a node's own values merged with its entire subtree.
type Rollup struct {
	EffortHours     float64
	Cost            float64
	PercentComplete int
	StartDate       *time.Time
	FinishDate      *time.Time
}
