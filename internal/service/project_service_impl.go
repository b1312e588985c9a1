package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/wbs/internal/domain"
	"github.com/alexanderramin/wbs/internal/repository"
)

type projectService struct {
	projects repository.ProjectRepo
	options
}

func NewProjectService(projects repository.ProjectRepo, opts ...Option) ProjectService {
	return &projectService{projects: projects, options: buildOptions(opts)}
}

func (s *projectService) Create(ctx context.Context, p *domain.Project) (err error) {
	startedAt := time.Now()
	fields := map[string]any{"short_id": p.ShortID}
	defer s.observe(ctx, "project-create", startedAt, fields, &err)

	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return fmt.Errorf("project name is required")
	}
	p.ShortID = strings.ToUpper(strings.TrimSpace(p.ShortID))
	if err := p.ValidateShortID(); err != nil {
		return err
	}
	if p.ID == "" {
		p.ID = s.newID()
	}
	now := s.now()
	p.CreatedAt = now
	p.UpdatedAt = now
	if err := s.projects.Create(ctx, p); err != nil {
		return fmt.Errorf("creating project %s: %w", p.ShortID, err)
	}
	fields["project_id"] = p.ID
	return nil
}

func (s *projectService) Resolve(ctx context.Context, ref string) (*domain.Project, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, fmt.Errorf("project reference is required")
	}
	p, err := s.projects.GetByShortID(ctx, ref)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	p, err = s.projects.GetByID(ctx, ref)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("project %q: %w", ref, domain.ErrNotFound)
		}
		return nil, err
	}
	return p, nil
}

func (s *projectService) List(ctx context.Context) ([]*domain.Project, error) {
	return s.projects.List(ctx)
}
