package wbs

import "github.com/alexanderramin/wbs/internal/domain"

// Row is one line of the flattened forest as the timeline renderer consumes it.
type Row struct {
	Depth int
	Code  string
	Node  *domain.TreeNode
}

// Flatten lists the forest pre-order, annotating each node with its depth
// and code.
func Flatten(forest []*domain.TreeNode) []Row {
	var rows []Row
	Walk(forest, func(tn *domain.TreeNode) bool {
		rows = append(rows, Row{Depth: tn.Depth, Code: tn.Code, Node: tn})
		return true
	})
	return rows
}
