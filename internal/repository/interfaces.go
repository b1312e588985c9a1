package repository

import (
	"context"

	"github.com/alexanderramin/wbs/internal/domain"
)

// CollectionRepo stores each project's WBS as one value keyed by project id.
type CollectionRepo interface {
	// Load returns the stored collection. A project that has never been
	// written yields an empty collection with Revision 0.
	Load(ctx context.Context, projectID string) (*domain.Collection, error)
	// Save replaces the whole node array if the stored revision still equals
	// c.Revision, then bumps c.Revision. A stale revision is ErrConflict.
	Save(ctx context.Context, c *domain.Collection) error
	ListProjectIDs(ctx context.Context) ([]string, error)
}

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	GetByShortID(ctx context.Context, shortID string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
}

type PersonRepo interface {
	Create(ctx context.Context, p *domain.Person) error
	GetByID(ctx context.Context, id string) (*domain.Person, error)
	List(ctx context.Context) ([]*domain.Person, error)
}

// TaskRepo is the external flat task list an empty WBS can be seeded from.
type TaskRepo interface {
	Create(ctx context.Context, t *domain.ExternalTask) error
	ListByProject(ctx context.Context, projectID string) ([]*domain.ExternalTask, error)
}
