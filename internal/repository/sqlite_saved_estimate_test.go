package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/buildcost/internal/domain"
	"github.com/alexanderramin/buildcost/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSavedEstimateRepo_UpsertAndGetByName(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteSavedEstimateRepo(db)
	ctx := context.Background()

	s := testutil.NewTestSavedEstimate("hillside")
	s.CatalogVersion = "builtin-2025.1"
	require.NoError(t, repo.Upsert(ctx, s))

	fetched, err := repo.GetByName(ctx, "hillside")
	require.NoError(t, err)
	assert.Equal(t, s.ID, fetched.ID)
	assert.Equal(t, "Test Project", fetched.ProjectName)
	assert.Equal(t, domain.TierLuxury, fetched.GlobalTier)
	assert.Equal(t, 2500000.0, fetched.TotalCost)
	assert.Equal(t, "builtin-2025.1", fetched.CatalogVersion)
	assert.JSONEq(t, string(s.Document), string(fetched.Document))
	assert.JSONEq(t, string(s.Result), string(fetched.Result))
	assert.True(t, s.CreatedAt.Equal(fetched.CreatedAt))
	assert.Nil(t, fetched.Categories, "categories are owned by the category repo")
}

func TestSavedEstimateRepo_UpsertReplacesByName(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteSavedEstimateRepo(db)
	ctx := context.Background()

	first := testutil.NewTestSavedEstimate("same")
	require.NoError(t, repo.Upsert(ctx, first))

	second := testutil.NewTestSavedEstimate("same")
	second.TotalCost = 10
	second.CreatedAt = first.CreatedAt.Add(time.Hour)
	second.UpdatedAt = second.CreatedAt
	require.NoError(t, repo.Upsert(ctx, second))

	assert.Equal(t, first.ID, second.ID, "upsert keeps the original id")
	assert.True(t, first.CreatedAt.Equal(second.CreatedAt), "upsert keeps the original creation time")

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 10.0, list[0].TotalCost)
}

func TestSavedEstimateRepo_GetByName_NotFound(t *testing.T) {
	repo := NewSQLiteSavedEstimateRepo(testutil.NewTestDB(t))

	_, err := repo.GetByName(context.Background(), "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), `"missing"`)
}

func TestSavedEstimateRepo_ListOrdersByMostRecent(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteSavedEstimateRepo(db)
	ctx := context.Background()

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, name := range []string{"old", "newest", "middle"} {
		s := testutil.NewTestSavedEstimate(name)
		s.UpdatedAt = base.Add(time.Duration([]int{0, 2, 1}[i]) * time.Hour)
		require.NoError(t, repo.Upsert(ctx, s))
	}

	list, err := repo.List(ctx)
	require.NoError(t, err)
	var names []string
	for _, s := range list {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"newest", "middle", "old"}, names)
}

func TestSavedEstimateRepo_ListEmpty(t *testing.T) {
	list, err := NewSQLiteSavedEstimateRepo(testutil.NewTestDB(t)).List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestSavedEstimateRepo_Delete(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteSavedEstimateRepo(db)
	cats := NewSQLiteEstimateCategoryRepo(db)
	ctx := context.Background()

	s := testutil.NewTestSavedEstimate("gone")
	require.NoError(t, repo.Upsert(ctx, s))
	require.NoError(t, cats.Replace(ctx, s.ID, map[domain.Trade]float64{"tile": 5}))

	require.NoError(t, repo.Delete(ctx, "gone"))

	_, err := repo.GetByName(ctx, "gone")
	assert.ErrorIs(t, err, ErrNotFound)
	remaining, err := cats.ListByEstimate(ctx, s.ID)
	require.NoError(t, err)
	assert.Empty(t, remaining, "categories cascade with the estimate")

	assert.ErrorIs(t, repo.Delete(ctx, "gone"), ErrNotFound)
}

func TestSavedEstimateRepo_RejectsNegativeTotal(t *testing.T) {
	repo := NewSQLiteSavedEstimateRepo(testutil.NewTestDB(t))
	s := testutil.NewTestSavedEstimate("neg")
	s.TotalCost = -1

	err := repo.Upsert(context.Background(), s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CHECK constraint failed")
}

func TestSavedEstimateRepo_ConcurrentUpserts(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteSavedEstimateRepo(db)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make([]error, 20)
	for i := range errs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s := testutil.NewTestSavedEstimate(fmt.Sprintf("c-%02d", i))
			s.ID = uuid.New().String()
			errs[i] = repo.Upsert(ctx, s)
		}()
	}
	wg.Wait()

	for i, err := range errs {
		assert.NoError(t, err, "upsert %d", i)
	}
	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 20)
}
