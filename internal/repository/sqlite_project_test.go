package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/wbs/internal/domain"
	"github.com/alexanderramin/wbs/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectRepo_CreateAndGetByID(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(database)
	ctx := context.Background()

	proj := testutil.NewTestProject("Warehouse", testutil.WithShortID("WMS01"))
	require.NoError(t, repo.Create(ctx, proj))

	fetched, err := repo.GetByID(ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, proj.ID, fetched.ID)
	assert.Equal(t, "Warehouse", fetched.Name)
	assert.Equal(t, "WMS01", fetched.ShortID)
}

func TestProjectRepo_GetByShortID(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(database)
	ctx := context.Background()

	proj := testutil.NewTestProject("Billing", testutil.WithShortID("BIL01"))
	require.NoError(t, repo.Create(ctx, proj))

	// Case-insensitive lookup.
	fetched, err := repo.GetByShortID(ctx, "bil01")
	require.NoError(t, err)
	assert.Equal(t, proj.ID, fetched.ID)
}

func TestProjectRepo_NotFound(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(database)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, "nonexistent")
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	_, err = repo.GetByShortID(ctx, "NOPE")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestProjectRepo_DuplicateShortIDRejected(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(database)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestProject("One", testutil.WithShortID("DUP01"))))
	err := repo.Create(ctx, testutil.NewTestProject("Two", testutil.WithShortID("dup01")))
	assert.Error(t, err)
}

func TestProjectRepo_ListOrdersByShortID(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(database)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestProject("Zeta", testutil.WithShortID("ZZZ"))))
	require.NoError(t, repo.Create(ctx, testutil.NewTestProject("Alpha", testutil.WithShortID("AAA"))))

	projects, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, "AAA", projects[0].ShortID)
	assert.Equal(t, "ZZZ", projects[1].ShortID)
}
