package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/wbs/internal/domain"
	"github.com/alexanderramin/wbs/internal/export"
	"github.com/alexanderramin/wbs/internal/repository"
)

type exportService struct {
	trees    WbsService
	projects repository.ProjectRepo
	people   repository.PersonRepo
	options
}

func NewExportService(
	trees WbsService,
	projects repository.ProjectRepo,
	people repository.PersonRepo,
	opts ...Option,
) ExportService {
	return &exportService{
		trees:    trees,
		projects: projects,
		people:   people,
		options:  buildOptions(opts),
	}
}

func (s *exportService) ExportCSV(ctx context.Context, projectID string) (*export.Document, error) {
	return s.render(ctx, "export-csv", projectID, "csv", export.ContentTypeCSV, export.CSV)
}

func (s *exportService) ExportJSON(ctx context.Context, projectID string) (*export.Document, error) {
	return s.render(ctx, "export-json", projectID, "json", export.ContentTypeJSON, export.JSON)
}

type renderFunc func(forest []*domain.TreeNode, owners export.OwnerNames) ([]byte, error)

func (s *exportService) render(ctx context.Context, name, projectID, ext, contentType string, fn renderFunc) (doc *export.Document, err error) {
	startedAt := time.Now()
	fields := map[string]any{"project_id": projectID}
	defer s.observe(ctx, name, startedAt, fields, &err)

	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	tree, err := s.trees.Tree(ctx, projectID)
	if err != nil {
		return nil, err
	}
	owners, err := s.ownerNames(ctx)
	if err != nil {
		return nil, err
	}

	body, err := fn(tree.Roots, owners)
	if err != nil {
		return nil, fmt.Errorf("rendering %s export: %w", ext, err)
	}
	fields["bytes"] = len(body)
	return &export.Document{
		Filename:    fmt.Sprintf("wbs-%s.%s", project.DisplayID(), ext),
		ContentType: contentType,
		Body:        body,
	}, nil
}

func (s *exportService) ownerNames(ctx context.Context) (export.OwnerNames, error) {
	people, err := s.people.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing people: %w", err)
	}
	names := make(map[string]string, len(people))
	for _, p := range people {
		names[p.ID] = p.DisplayName
	}
	return func(id string) string { return names[id] }, nil
}
