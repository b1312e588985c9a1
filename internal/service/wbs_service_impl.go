package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/wbs/internal/db"
	"github.com/alexanderramin/wbs/internal/domain"
	"github.com/alexanderramin/wbs/internal/repository"
	"github.com/alexanderramin/wbs/internal/wbs"
)

type wbsService struct {
	projects    repository.ProjectRepo
	collections repository.CollectionRepo
	writer      *writer
	options
}

func NewWbsService(
	uow db.UnitOfWork,
	projects repository.ProjectRepo,
	collections repository.CollectionRepo,
	opts ...Option,
) WbsService {
	o := buildOptions(opts)
	return &wbsService{
		projects:    projects,
		collections: collections,
		writer:      &writer{uow: uow, options: o},
		options:     o,
	}
}

// load fetches the stored collection. Concurrent readers of the same project
// share one query; the result is treated as read-only by every caller. The
// shared query outlives any single caller's cancellation, and each caller
// stops waiting when its own ctx is done.
func (s *wbsService) load(ctx context.Context, projectID string) (*domain.Collection, error) {
	shared := context.WithoutCancel(ctx)
	ch := s.coord.reads.DoChan(projectID, func() (interface{}, error) {
		if _, err := s.projects.GetByID(shared, projectID); err != nil {
			return nil, err
		}
		return s.collections.Load(shared, projectID)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*domain.Collection), nil
	}
}

func (s *wbsService) Tree(ctx context.Context, projectID string) (tree *WbsTree, err error) {
	startedAt := time.Now()
	fields := map[string]any{"project_id": projectID}
	defer s.observe(ctx, "wbs-tree", startedAt, fields, &err)

	c, err := s.load(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("loading wbs: %w", err)
	}

	// Build clones every node, so the shared collection stays untouched.
	roots := wbs.Build(c.Nodes)
	fields["node_count"] = len(c.Nodes)
	return &WbsTree{
		ProjectID: projectID,
		Revision:  c.Revision,
		Roots:     roots,
		Totals:    wbs.Totals(roots),
	}, nil
}

func (s *wbsService) Timeline(ctx context.Context, projectID string) ([]wbs.Row, error) {
	tree, err := s.Tree(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return wbs.Flatten(tree.Roots), nil
}

func (s *wbsService) ResolveNode(ctx context.Context, projectID, ref string) (*domain.TreeNode, error) {
	tree, err := s.Tree(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if tn := wbs.FindByID(tree.Roots, ref); tn != nil {
		return tn, nil
	}
	if tn := wbs.FindByCode(tree.Roots, ref); tn != nil {
		return tn, nil
	}
	return nil, fmt.Errorf("node %q: %w", ref, domain.ErrNotFound)
}

func (s *wbsService) Upsert(ctx context.Context, projectID, id string, patch domain.NodePatch) (node *domain.Node, err error) {
	startedAt := time.Now()
	fields := map[string]any{"project_id": projectID, "node_id": id, "create": id == ""}
	defer s.observe(ctx, "wbs-upsert", startedAt, fields, &err)

	var result domain.Node
	var revision int64
	if id == "" {
		newID := s.newID()
		revision, _, err = s.writer.apply(ctx, projectID, func(nodes []domain.Node, now time.Time) ([]domain.Node, bool, error) {
			out, n, err := wbs.Create(nodes, projectID, patch, newID, now)
			result = n
			return out, err == nil, err
		})
	} else {
		revision, _, err = s.writer.apply(ctx, projectID, func(nodes []domain.Node, now time.Time) ([]domain.Node, bool, error) {
			out, n, err := wbs.Update(nodes, id, patch, now)
			result = n
			return out, err == nil, err
		})
	}
	if err != nil {
		return nil, err
	}
	fields["node_id"] = result.ID
	fields["revision"] = revision
	return &result, nil
}

func (s *wbsService) Delete(ctx context.Context, projectID, id string) (removed int, err error) {
	startedAt := time.Now()
	fields := map[string]any{"project_id": projectID, "node_id": id}
	defer s.observe(ctx, "wbs-delete", startedAt, fields, &err)

	_, _, err = s.writer.apply(ctx, projectID, func(nodes []domain.Node, now time.Time) ([]domain.Node, bool, error) {
		out, n := wbs.Delete(nodes, id, now)
		removed = n
		return out, n > 0, nil
	})
	if err != nil {
		return 0, err
	}
	fields["removed"] = removed
	return removed, nil
}

func (s *wbsService) Reorder(ctx context.Context, projectID, id string, dir domain.Direction) (bool, error) {
	return s.structural(ctx, "wbs-reorder", projectID, id, func(nodes []domain.Node, now time.Time) ([]domain.Node, bool, error) {
		return wbs.Move(nodes, id, dir, now)
	})
}

func (s *wbsService) Indent(ctx context.Context, projectID, id string) (bool, error) {
	return s.structural(ctx, "wbs-indent", projectID, id, func(nodes []domain.Node, now time.Time) ([]domain.Node, bool, error) {
		return wbs.Indent(nodes, id, now)
	})
}

func (s *wbsService) Outdent(ctx context.Context, projectID, id string) (bool, error) {
	return s.structural(ctx, "wbs-outdent", projectID, id, func(nodes []domain.Node, now time.Time) ([]domain.Node, bool, error) {
		return wbs.Outdent(nodes, id, now)
	})
}

func (s *wbsService) structural(ctx context.Context, name, projectID, id string, op mutation) (changed bool, err error) {
	startedAt := time.Now()
	fields := map[string]any{"project_id": projectID, "node_id": id}
	defer s.observe(ctx, name, startedAt, fields, &err)

	_, changed, err = s.writer.apply(ctx, projectID, op)
	fields["changed"] = changed
	return changed, err
}
