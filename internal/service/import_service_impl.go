package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/wbs/internal/db"
	"github.com/alexanderramin/wbs/internal/domain"
	"github.com/alexanderramin/wbs/internal/importer"
	"github.com/alexanderramin/wbs/internal/repository"
)

type importService struct {
	tasks  repository.TaskRepo
	writer *writer
	options
}

func NewImportService(uow db.UnitOfWork, tasks repository.TaskRepo, opts ...Option) ImportService {
	o := buildOptions(opts)
	return &importService{
		tasks:   tasks,
		writer:  &writer{uow: uow, options: o},
		options: o,
	}
}

func (s *importService) ImportFromSource(ctx context.Context, projectID string) (int, error) {
	tasks, err := s.tasks.ListByProject(ctx, projectID)
	if err != nil {
		return 0, fmt.Errorf("listing source tasks: %w", err)
	}
	return s.importList(ctx, "import-source", projectID, importer.FromExternal(tasks))
}

func (s *importService) ImportFromFile(ctx context.Context, projectID, path string) (int, error) {
	list, err := importer.LoadTaskList(path)
	if err != nil {
		return 0, fmt.Errorf("loading import file: %w", err)
	}
	return s.importList(ctx, "import-file", projectID, list)
}

// importList writes the converted list only when the project has no nodes
// yet. An existing WBS is left as is and 0 is returned, whatever the source
// holds; only a list that would actually be written is validated.
func (s *importService) importList(ctx context.Context, name, projectID string, list *importer.TaskList) (count int, err error) {
	startedAt := time.Now()
	fields := map[string]any{"project_id": projectID, "source_tasks": len(list.Tasks)}
	defer s.observe(ctx, name, startedAt, fields, &err)

	_, _, err = s.writer.apply(ctx, projectID, func(nodes []domain.Node, now time.Time) ([]domain.Node, bool, error) {
		if len(nodes) > 0 || len(list.Tasks) == 0 {
			return nodes, false, nil
		}
		if errs := importer.ValidateTaskList(list); len(errs) > 0 {
			return nil, false, formatValidationErrors(errs)
		}
		converted, err := importer.ConvertWithIDs(list, projectID, now, s.newID)
		if err != nil {
			return nil, false, fmt.Errorf("converting task list: %w", err)
		}
		count = len(converted)
		return converted, true, nil
	})
	if err != nil {
		return 0, err
	}
	fields["imported"] = count
	return count, nil
}
