package service

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alexanderramin/wbs/internal/db"
	"github.com/alexanderramin/wbs/internal/domain"
	"github.com/alexanderramin/wbs/internal/repository"
	"github.com/alexanderramin/wbs/internal/testutil"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

type env struct {
	db          *sql.DB
	uow         db.UnitOfWork
	projects    *repository.SQLiteProjectRepo
	people      *repository.SQLitePersonRepo
	tasks       *repository.SQLiteTaskRepo
	collections *repository.SQLiteCollectionRepo
	project     *domain.Project
}

func newEnv(t *testing.T, database *sql.DB) *env {
	t.Helper()
	e := &env{
		db:          database,
		uow:         testutil.NewTestUoW(database),
		projects:    repository.NewSQLiteProjectRepo(database),
		people:      repository.NewSQLitePersonRepo(database),
		tasks:       repository.NewSQLiteTaskRepo(database),
		collections: repository.NewSQLiteCollectionRepo(database),
		project:     testutil.NewTestProject("Rollout", testutil.WithShortID("ERP")),
	}
	require.NoError(t, e.projects.Create(context.Background(), e.project))
	return e
}

func (e *env) wbsService(opts ...Option) WbsService {
	base := []Option{WithClock(func() time.Time { return testNow }), WithIDGenerator(sequentialIDs("n"))}
	return NewWbsService(e.uow, e.projects, e.collections, append(base, opts...)...)
}

func (e *env) revision(t *testing.T) int64 {
	t.Helper()
	c, err := e.collections.Load(context.Background(), e.project.ID)
	require.NoError(t, err)
	return c.Revision
}

func sequentialIDs(prefix string) func() string {
	var n atomic.Int64
	return func() string {
		return fmt.Sprintf("%s-%d", prefix, n.Add(1))
	}
}

func ptr[T any](v T) *T { return &v }

func create(t *testing.T, svc WbsService, projectID, name string, parentID string) *domain.Node {
	t.Helper()
	patch := domain.NodePatch{Name: ptr(name)}
	if parentID != "" {
		patch.ParentID = ptr(parentID)
	}
	n, err := svc.Upsert(context.Background(), projectID, "", patch)
	require.NoError(t, err)
	return n
}

func codesOf(t *testing.T, svc WbsService, projectID string) map[string]string {
	t.Helper()
	rows, err := svc.Timeline(context.Background(), projectID)
	require.NoError(t, err)
	out := make(map[string]string, len(rows))
	for _, r := range rows {
		out[r.Node.Name] = r.Code
	}
	return out
}

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (r *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recordingObserver) names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	for i, e := range r.events {
		out[i] = e.Name
	}
	return out
}

// gatedCollections holds the first Load open until release is called; later
// loads pass straight through.
type gatedCollections struct {
	repository.CollectionRepo
	entered chan struct{}
	gate    chan struct{}
	once    sync.Once
	calls   atomic.Int32
}

func newGatedCollections(t *testing.T, inner repository.CollectionRepo) *gatedCollections {
	g := &gatedCollections{
		CollectionRepo: inner,
		entered:        make(chan struct{}),
		gate:           make(chan struct{}),
	}
	t.Cleanup(g.release)
	return g
}

func (g *gatedCollections) Load(ctx context.Context, projectID string) (*domain.Collection, error) {
	if g.calls.Add(1) == 1 {
		close(g.entered)
		<-g.gate
	}
	return g.CollectionRepo.Load(ctx, projectID)
}

func (g *gatedCollections) release() {
	g.once.Do(func() { close(g.gate) })
}

type treeResult struct {
	tree *WbsTree
	err  error
}

func treeAsync(ctx context.Context, svc WbsService, projectID string) <-chan treeResult {
	out := make(chan treeResult, 1)
	go func() {
		tree, err := svc.Tree(ctx, projectID)
		out <- treeResult{tree: tree, err: err}
	}()
	return out
}

func awaitTree(t *testing.T, ch <-chan treeResult) *WbsTree {
	t.Helper()
	select {
	case res := <-ch:
		require.NoError(t, res.err)
		return res.tree
	case <-time.After(2 * time.Second):
		t.Fatal("read did not complete in time")
		return nil
	}
}
