package engine_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/cory-johannsen/keeper/internal/game/dice"
	"github.com/cory-johannsen/keeper/internal/game/engine"
	"github.com/cory-johannsen/keeper/internal/game/sheet"
)

// sheets maps character ids to their initial attributes.
type sheets map[int][]sheet.Entry

func newEngine(t *testing.T, src dice.Source, initial sheets) (*engine.Engine, *sheet.MemoryStore) {
	t.Helper()
	store := sheet.NewMemoryStore()
	for id, entries := range initial {
		require.NoError(t, store.Save(context.Background(), id, sheet.FromEntries(entries)))
	}
	logger := zaptest.NewLogger(t)
	return engine.New(store, dice.NewLoggedRoller(src, logger), logger), store
}

func stored(t *testing.T, store sheet.Store, id int, name string) int {
	t.Helper()
	s, err := store.Load(context.Background(), id)
	require.NoError(t, err)
	v, ok := s.Get(name)
	require.True(t, ok, "attribute %q missing", name)
	return v
}

var errDisk = errors.New("disk on fire")

// brokenStore fails every operation with errDisk.
type brokenStore struct{}

func (brokenStore) Load(context.Context, int) (*sheet.Sheet, error)   { return nil, errDisk }
func (brokenStore) Save(context.Context, int, *sheet.Sheet) error     { return errDisk }
func (brokenStore) List(context.Context) ([]int, error)               { return nil, errDisk }
func (brokenStore) Delete(context.Context, int) error                 { return errDisk }
func (brokenStore) Purge(context.Context, time.Duration) (int, error) { return 0, errDisk }
