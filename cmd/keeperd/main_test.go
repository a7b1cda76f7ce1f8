package main

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cory-johannsen/keeper/internal/config"
	"github.com/cory-johannsen/keeper/internal/game/sheet"
	"github.com/cory-johannsen/keeper/internal/storage"
)

func memoryBackend(closed *int) func(context.Context, config.Config) (*storage.Backend, error) {
	return func(context.Context, config.Config) (*storage.Backend, error) {
		return &storage.Backend{
			Store: sheet.NewMemoryStore(),
			Ready: func(context.Context) error { return nil },
			Close: func() { *closed++ },
		}, nil
	}
}

func testConfig(port int) config.Config {
	return config.Config{
		Server: config.ServerConfig{Host: "127.0.0.1", Port: port, ShutdownTimeout: time.Second},
		Storage: config.StorageConfig{
			Backend:   config.BackendMemory,
			Retention: time.Hour,
		},
	}
}

func TestRun_ServiceFailureClosesStore(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	var closed int
	port := ln.Addr().(*net.TCPAddr).Port
	err = run(context.Background(), testConfig(port), memoryBackend(&closed), zap.NewNop())

	require.Error(t, err)
	assert.ErrorContains(t, err, "service http")
	assert.Equal(t, 1, closed)
}

func TestRun_CancelledContextClosesStore(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var closed int
	require.NoError(t, run(ctx, testConfig(0), memoryBackend(&closed), zap.NewNop()))
	assert.Equal(t, 1, closed)
}

func TestRun_OpenFailure(t *testing.T) {
	errDown := errors.New("database down")
	open := func(context.Context, config.Config) (*storage.Backend, error) { return nil, errDown }

	err := run(context.Background(), testConfig(0), open, zap.NewNop())
	assert.ErrorIs(t, err, errDown)
}
