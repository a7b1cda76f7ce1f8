package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/keeper/internal/game/sheet"
	"github.com/cory-johannsen/keeper/internal/storage/postgres"
	"github.com/cory-johannsen/keeper/internal/testutil"
)

func setupSheetRepo(t *testing.T) *postgres.SheetRepository {
	t.Helper()
	return postgres.NewSheetRepository(testutil.NewPool(t))
}

func TestSheetRepository(t *testing.T) {
	repo := setupSheetRepo(t)
	ctx := context.Background()

	t.Run("load missing", func(t *testing.T) {
		_, err := repo.Load(ctx, 999)
		assert.ErrorIs(t, err, sheet.ErrNotFound)
	})

	t.Run("save preserves order", func(t *testing.T) {
		entries := []sheet.Entry{{Name: "str", Value: 50}, {Name: "san", Value: 60}, {Name: "current_san", Value: 60}}
		require.NoError(t, repo.Save(ctx, 1, sheet.FromEntries(entries)))

		got, err := repo.Load(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, entries, got.Entries())
	})

	t.Run("save replaces attributes", func(t *testing.T) {
		require.NoError(t, repo.Save(ctx, 2, sheet.FromEntries([]sheet.Entry{{Name: "dex", Value: 40}})))
		require.NoError(t, repo.Save(ctx, 2, sheet.FromEntries([]sheet.Entry{{Name: "luck", Value: 70}})))

		got, err := repo.Load(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, []sheet.Entry{{Name: "luck", Value: 70}}, got.Entries())
	})

	t.Run("empty sheet exists", func(t *testing.T) {
		require.NoError(t, repo.Save(ctx, 3, sheet.New()))
		got, err := repo.Load(ctx, 3)
		require.NoError(t, err)
		assert.Zero(t, got.Len())
	})

	t.Run("merge", func(t *testing.T) {
		_, err := sheet.Merge(ctx, repo, 1, []sheet.Entry{{Name: "san", Value: 55}, {Name: "pow", Value: 65}}, false)
		require.NoError(t, err)
		got, err := repo.Load(ctx, 1)
		require.NoError(t, err)
		v, _ := got.Get("san")
		assert.Equal(t, 55, v)
		assert.Equal(t, 4, got.Len())
	})

	t.Run("list and delete", func(t *testing.T) {
		ids, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []int{1, 2, 3}, ids)

		require.NoError(t, repo.Delete(ctx, 2))
		require.NoError(t, repo.Delete(ctx, 2))
		ids, err = repo.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []int{1, 3}, ids)
	})

	t.Run("purge", func(t *testing.T) {
		require.NoError(t, repo.Touch(ctx, 3, time.Now().Add(-31*24*time.Hour)))
		n, err := repo.Purge(ctx, 30*24*time.Hour)
		require.NoError(t, err)
		assert.Equal(t, 1, n)

		_, err = repo.Load(ctx, 3)
		assert.ErrorIs(t, err, sheet.ErrNotFound)
	})

	t.Run("touch missing", func(t *testing.T) {
		assert.ErrorIs(t, repo.Touch(ctx, 500, time.Now()), sheet.ErrNotFound)
	})
}

func TestPoolReady(t *testing.T) {
	pc := testutil.NewPostgresContainer(t)
	ctx := context.Background()

	assert.ErrorContains(t, pc.Pool.Ready(ctx, 5*time.Second), "character_sheets")

	pc.ApplyMigrations(t)
	require.NoError(t, pc.Pool.Ready(ctx, 5*time.Second))

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	assert.Error(t, pc.Pool.Ready(cancelled, time.Second))
}
