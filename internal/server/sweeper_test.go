package server

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/cory-johannsen/keeper/internal/game/sheet"
)

func TestSweeper_Sweep(t *testing.T) {
	ctx := context.Background()
	store := sheet.NewMemoryStore()
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	store.SetClock(func() time.Time { return now })

	require.NoError(t, store.Save(ctx, 1, sheet.New()))
	now = now.Add(31 * 24 * time.Hour)
	require.NoError(t, store.Save(ctx, 2, sheet.New()))

	sw := NewSweeper(store, 30*24*time.Hour, time.Hour, zaptest.NewLogger(t))
	assert.Equal(t, 1, sw.Sweep(ctx))

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{2}, ids)
}

type countingPurger struct {
	calls atomic.Int32
	err   error
}

func (c *countingPurger) Purge(context.Context, time.Duration) (int, error) {
	c.calls.Add(1)
	return 0, c.err
}

func TestSweeper_RunsUntilStopped(t *testing.T) {
	p := &countingPurger{err: errors.New("connection reset")}
	sw := NewSweeper(p, time.Hour, 5*time.Millisecond, zaptest.NewLogger(t))

	done := make(chan error, 1)
	go func() { done <- sw.Start() }()

	require.Eventually(t, func() bool { return p.calls.Load() >= 3 }, 2*time.Second, 5*time.Millisecond)
	sw.Stop()
	sw.Stop()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("sweeper did not stop")
	}
}
