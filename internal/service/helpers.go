package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/wbs/internal/db"
	"github.com/alexanderramin/wbs/internal/domain"
	"github.com/alexanderramin/wbs/internal/repository"
)

// mutation is a pure operator over a project's node array. It returns the
// full replacement array and whether anything changed.
type mutation func(nodes []domain.Node, now time.Time) ([]domain.Node, bool, error)

// writer serializes read-modify-write cycles on collections. Every write
// holds the project's lock for its whole duration and saves with a revision
// check, so two writers can never both apply on top of the same snapshot.
type writer struct {
	uow db.UnitOfWork
	options
}

// apply runs op against the stored collection and saves the result. It
// returns the revision after the call and whether a write happened.
func (w *writer) apply(ctx context.Context, projectID string, op mutation) (int64, bool, error) {
	unlock, err := w.coord.locks.Lock(ctx, projectID)
	if err != nil {
		return 0, false, fmt.Errorf("waiting for project %s: %w", projectID, err)
	}
	defer unlock()

	if err := sleep(ctx, w.latency); err != nil {
		return 0, false, err
	}

	var revision int64
	var changed bool
	// Once the write phase starts it runs to completion.
	err = w.uow.WithinTx(context.WithoutCancel(ctx), func(ctx context.Context, tx db.DBTX) error {
		if _, err := repository.NewSQLiteProjectRepo(tx).GetByID(ctx, projectID); err != nil {
			return err
		}
		collections := repository.NewSQLiteCollectionRepo(tx)
		c, err := collections.Load(ctx, projectID)
		if err != nil {
			return err
		}
		revision = c.Revision

		out, ok, err := op(c.Nodes, w.now())
		if err != nil || !ok {
			return err
		}
		c.Nodes = out
		if err := collections.Save(ctx, c); err != nil {
			return fmt.Errorf("saving wbs of project %s: %w", projectID, err)
		}
		revision, changed = c.Revision, true
		return nil
	})
	if err != nil {
		return 0, false, err
	}
	if changed {
		w.coord.invalidate(projectID)
	}
	return revision, changed, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("import validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%w: %s", domain.ErrInvalidNode, msg)
}
