package sheet_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/keeper/internal/game/sheet"
)

func TestMemoryStore_LoadMissing(t *testing.T) {
	st := sheet.NewMemoryStore()
	_, err := st.Load(context.Background(), 1)
	assert.ErrorIs(t, err, sheet.ErrNotFound)
}

func TestMemoryStore_SaveLoadCopies(t *testing.T) {
	ctx := context.Background()
	st := sheet.NewMemoryStore()
	s := sheet.FromEntries([]sheet.Entry{{Name: "hp", Value: 12}})
	require.NoError(t, st.Save(ctx, 3, s))

	s.Set("hp", 1)
	got, err := st.Load(ctx, 3)
	require.NoError(t, err)
	v, _ := got.Get("hp")
	assert.Equal(t, 12, v)
}

func TestMemoryStore_ListDeletePurge(t *testing.T) {
	ctx := context.Background()
	st := sheet.NewMemoryStore()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	now := base
	st.SetClock(func() time.Time { return now })

	require.NoError(t, st.Save(ctx, 7, sheet.New()))
	now = base.Add(40 * 24 * time.Hour)
	require.NoError(t, st.Save(ctx, 2, sheet.New()))
	require.NoError(t, st.Save(ctx, 5, sheet.New()))

	ids, err := st.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 5, 7}, ids)

	n, err := st.Purge(ctx, 30*24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, st.Delete(ctx, 5))
	require.NoError(t, st.Delete(ctx, 99))
	ids, err = st.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{2}, ids)
}

func TestMerge_UpdatesExisting(t *testing.T) {
	ctx := context.Background()
	st := sheet.NewMemoryStore()
	require.NoError(t, st.Save(ctx, 1, sheet.FromEntries([]sheet.Entry{
		{Name: "str", Value: 50}, {Name: "dex", Value: 60},
	})))

	s, err := sheet.Merge(ctx, st, 1, []sheet.Entry{{Name: "STR", Value: 70}, {Name: "pow", Value: 40}}, false)
	require.NoError(t, err)
	assert.Equal(t, []sheet.Entry{
		{Name: "str", Value: 70}, {Name: "dex", Value: 60}, {Name: "pow", Value: 40},
	}, s.Entries())
}

func TestMerge_Replace(t *testing.T) {
	ctx := context.Background()
	st := sheet.NewMemoryStore()
	require.NoError(t, st.Save(ctx, 1, sheet.FromEntries([]sheet.Entry{{Name: "str", Value: 50}})))

	_, err := sheet.Merge(ctx, st, 1, []sheet.Entry{{Name: "pow", Value: 40}}, true)
	require.NoError(t, err)
	got, err := st.Load(ctx, 1)
	require.NoError(t, err)
	assert.False(t, got.Has("str"))
	assert.True(t, got.Has("pow"))
}

func TestMerge_CreatesMissing(t *testing.T) {
	ctx := context.Background()
	st := sheet.NewMemoryStore()
	_, err := sheet.Merge(ctx, st, 9, []sheet.Entry{{Name: "hp", Value: 11}}, false)
	require.NoError(t, err)
	got, err := st.Load(ctx, 9)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Len())
}
