package service

import (
	"context"

	"github.com/alexanderramin/wbs/internal/domain"
	"github.com/alexanderramin/wbs/internal/export"
	"github.com/alexanderramin/wbs/internal/wbs"
)

// WbsTree is one read of a project's WBS: the assembled forest with codes
// and rollups filled in, plus the totals of the virtual project root.
type WbsTree struct {
	ProjectID string
	Revision  int64
	Roots     []*domain.TreeNode
	Totals    domain.Rollup
}

// Len counts every node in the forest.
func (t *WbsTree) Len() int {
	n := 0
	wbs.Walk(t.Roots, func(*domain.TreeNode) bool {
		n++
		return true
	})
	return n
}

type WbsService interface {
	Tree(ctx context.Context, projectID string) (*WbsTree, error)
	Timeline(ctx context.Context, projectID string) ([]wbs.Row, error)
	// ResolveNode finds a node by id, falling back to its WBS code.
	ResolveNode(ctx context.Context, projectID, ref string) (*domain.TreeNode, error)

	// Upsert creates a node when id is empty and patches it otherwise.
	Upsert(ctx context.Context, projectID, id string, patch domain.NodePatch) (*domain.Node, error)
	// Delete removes the node and all its descendants and returns how many
	// were removed. An unknown id removes nothing.
	Delete(ctx context.Context, projectID, id string) (int, error)
	// Reorder, Indent and Outdent report false for a boundary no-op, in
	// which case nothing is written.
	Reorder(ctx context.Context, projectID, id string, dir domain.Direction) (bool, error)
	Indent(ctx context.Context, projectID, id string) (bool, error)
	Outdent(ctx context.Context, projectID, id string) (bool, error)
}

type ExportService interface {
	ExportCSV(ctx context.Context, projectID string) (*export.Document, error)
	ExportJSON(ctx context.Context, projectID string) (*export.Document, error)
}

// ImportService seeds an empty WBS from a flat task list. Both entry points
// return the number of nodes written, 0 when the project already has a WBS.
type ImportService interface {
	ImportFromSource(ctx context.Context, projectID string) (int, error)
	ImportFromFile(ctx context.Context, projectID, path string) (int, error)
}

type ProjectService interface {
	Create(ctx context.Context, p *domain.Project) error
	// Resolve accepts a short id (case-insensitive) or a full id.
	Resolve(ctx context.Context, ref string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
}

type PersonService interface {
	Create(ctx context.Context, p *domain.Person) error
	List(ctx context.Context) ([]*domain.Person, error)
}
