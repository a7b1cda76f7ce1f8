package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/keeper/internal/config"
	"github.com/cory-johannsen/keeper/internal/game/sheet"
	"github.com/cory-johannsen/keeper/internal/storage"
	"github.com/cory-johannsen/keeper/internal/storage/flatfile"
)

func TestOpen_File(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "pcstats")
	cfg := config.Config{Storage: config.StorageConfig{Backend: config.BackendFile, Dir: dir}}

	b, err := storage.Open(context.Background(), cfg)
	require.NoError(t, err)
	defer b.Close()

	fs, ok := b.Store.(*flatfile.Store)
	require.True(t, ok)
	assert.Equal(t, dir, fs.Dir())
	assert.DirExists(t, dir)
	assert.NoError(t, b.Ready(context.Background()))
}

func TestOpen_FileNotReadyOnceDirectoryRemoved(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "pcstats")
	cfg := config.Config{Storage: config.StorageConfig{Backend: config.BackendFile, Dir: dir}}

	b, err := storage.Open(context.Background(), cfg)
	require.NoError(t, err)
	defer b.Close()

	require.NoError(t, os.RemoveAll(dir))
	assert.Error(t, b.Ready(context.Background()))

	require.NoError(t, os.WriteFile(dir, nil, 0o644))
	assert.ErrorContains(t, b.Ready(context.Background()), "not a directory")
}

func TestOpen_Memory(t *testing.T) {
	cfg := config.Config{Storage: config.StorageConfig{Backend: config.BackendMemory}}
	b, err := storage.Open(context.Background(), cfg)
	require.NoError(t, err)
	defer b.Close()
	assert.IsType(t, &sheet.MemoryStore{}, b.Store)
	assert.NoError(t, b.Ready(context.Background()))
}

func TestOpen_UnknownBackend(t *testing.T) {
	cfg := config.Config{Storage: config.StorageConfig{Backend: "s3"}}
	_, err := storage.Open(context.Background(), cfg)
	assert.ErrorContains(t, err, "s3")
}
