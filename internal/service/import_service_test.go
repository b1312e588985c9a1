package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/wbs/internal/domain"
	"github.com/alexanderramin/wbs/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (e *env) importService(opts ...Option) ImportService {
	return NewImportService(e.uow, e.tasks, opts...)
}

func TestImportService_FromSourceSeedsEmptyWbs(t *testing.T) {
	e := newEnv(t, testutil.NewTestDB(t))
	ctx := context.Background()

	parent := testutil.NewTestTask(e.project.ID, "Migrate data", testutil.WithTaskOrder(1))
	child := testutil.NewTestTask(e.project.ID, "Export legacy",
		testutil.WithTaskParent(parent.ID),
		testutil.WithTaskOrder(7),
		testutil.WithDueDate("2025-04-01"),
		testutil.WithEstimate(12),
		testutil.WithDone(),
	)
	for _, task := range []*domain.ExternalTask{parent, child} {
		require.NoError(t, e.tasks.Create(ctx, task))
	}

	n, err := e.importService().ImportFromSource(ctx, e.project.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	tree, err := e.wbsService().Tree(ctx, e.project.ID)
	require.NoError(t, err)
	require.Len(t, tree.Roots, 1)
	root := tree.Roots[0]
	assert.Equal(t, "Migrate data", root.Name)
	require.Len(t, root.Children, 1)
	imported := root.Children[0]
	assert.Equal(t, "1.1", imported.Code)
	assert.Equal(t, 1, imported.Order)
	assert.Equal(t, domain.StatusDone, imported.Status)
	assert.Equal(t, 100, imported.PercentComplete)
	assert.Equal(t, 12.0, imported.EffortHours)
	assert.Equal(t, "2025-04-01", imported.FinishDate.Format(domain.DateLayout))
	assert.NotEqual(t, child.ID, imported.ID, "imported nodes get fresh ids")
}

func TestImportService_SkipsProjectWithExistingNodes(t *testing.T) {
	e := newEnv(t, testutil.NewTestDB(t))
	ctx := context.Background()
	create(t, e.wbsService(), e.project.ID, "Existing", "")
	require.NoError(t, e.tasks.Create(ctx, testutil.NewTestTask(e.project.ID, "Would duplicate")))
	before := e.revision(t)

	n, err := e.importService().ImportFromSource(ctx, e.project.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, before, e.revision(t))
}

func TestImportService_SkipsExistingWbsEvenWithInvalidSource(t *testing.T) {
	e := newEnv(t, testutil.NewTestDB(t))
	create(t, e.wbsService(), e.project.ID, "Existing", "")
	before := e.revision(t)
	path := filepath.Join(t.TempDir(), "tasks.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"tasks": [{"id": "a", "title": ""}]}`), 0o644))

	n, err := e.importService().ImportFromFile(context.Background(), e.project.ID, path)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, before, e.revision(t))
}

func TestImportService_CommittedImportIsVisibleToSharedReads(t *testing.T) {
	e := newEnv(t, testutil.NewTestDB(t))
	ctx := context.Background()
	coord := NewCoordinator()
	gated := newGatedCollections(t, e.collections)
	trees := NewWbsService(e.uow, e.projects, gated, WithCoordinator(coord))
	require.NoError(t, e.tasks.Create(ctx, testutil.NewTestTask(e.project.ID, "Seeded")))

	stale := treeAsync(ctx, trees, e.project.ID)
	<-gated.entered

	n, err := e.importService(WithCoordinator(coord)).ImportFromSource(ctx, e.project.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	tree := awaitTree(t, treeAsync(ctx, trees, e.project.ID))
	assert.Equal(t, 1, tree.Len())

	gated.release()
	awaitTree(t, stale)
}

func TestImportService_EmptySourceWritesNothing(t *testing.T) {
	e := newEnv(t, testutil.NewTestDB(t))

	n, err := e.importService().ImportFromSource(context.Background(), e.project.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Zero(t, e.revision(t))
}

func TestImportService_FromFile(t *testing.T) {
	e := newEnv(t, testutil.NewTestDB(t))
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "tasks.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"tasks": [
		{"id": "b", "parent_id": "a", "order": 2, "title": "Child"},
		{"id": "a", "order": 1, "title": "Parent", "estimate_hours": 3}
	]}`), 0o644))

	n, err := e.importService().ImportFromFile(ctx, e.project.ID, path)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, map[string]string{"Parent": "1", "Child": "1.1"}, codesOf(t, e.wbsService(), e.project.ID))
}

func TestImportService_ParentOutsideListBecomesRoot(t *testing.T) {
	e := newEnv(t, testutil.NewTestDB(t))
	path := filepath.Join(t.TempDir(), "tasks.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"tasks": [
		{"id": "a", "order": 1, "title": "Anchored"},
		{"id": "b", "parent_id": "other-list", "order": 2, "title": "Stray"}
	]}`), 0o644))

	n, err := e.importService().ImportFromFile(context.Background(), e.project.ID, path)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, map[string]string{"Anchored": "1", "Stray": "2"}, codesOf(t, e.wbsService(), e.project.ID))
}

func TestImportService_ReportsEveryValidationError(t *testing.T) {
	e := newEnv(t, testutil.NewTestDB(t))
	path := filepath.Join(t.TempDir(), "tasks.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"tasks": [
		{"id": "a", "title": ""},
		{"id": "a", "title": "Dup", "due_date": "next week"}
	]}`), 0o644))

	n, err := e.importService().ImportFromFile(context.Background(), e.project.ID, path)
	require.Error(t, err)
	assert.Zero(t, n)
	assert.ErrorIs(t, err, domain.ErrInvalidNode)
	assert.Contains(t, err.Error(), "import validation failed (3 errors)")
	assert.Zero(t, e.revision(t))
}

func TestImportService_UnknownProjectIsNotFound(t *testing.T) {
	e := newEnv(t, testutil.NewTestDB(t))
	list := filepath.Join(t.TempDir(), "tasks.json")
	require.NoError(t, os.WriteFile(list, []byte(`{"tasks": [{"id": "a", "title": "A"}]}`), 0o644))

	_, err := e.importService().ImportFromFile(context.Background(), "missing", list)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
