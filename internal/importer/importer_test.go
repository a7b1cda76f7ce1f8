package importer_test

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/keeper/internal/game/sheet"
	"github.com/cory-johannsen/keeper/internal/importer"
)

func writeFile(t *testing.T, path, s string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(s), 0644))
}

func TestImporter_Run_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "party.yaml")
	writeFile(t, path, `
sheets:
  - id: 1
    stats: ".st str50san60"
  - id: 2
    stats: "dex70hp11"
    replace: true
`)
	store := sheet.NewMemoryStore()
	var out bytes.Buffer

	n, err := importer.New(importer.NewYAMLSource(), store, &out).Run(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	s, err := store.Load(context.Background(), 2)
	require.NoError(t, err)
	v, ok := s.Get("current_hp")
	require.True(t, ok)
	assert.Equal(t, 11, v)
	assert.Contains(t, out.String(), "wrote   sheet 1")
}

func TestImporter_Run_MergesUnlessReplace(t *testing.T) {
	ctx := context.Background()
	store := sheet.NewMemoryStore()
	require.NoError(t, store.Save(ctx, 1, sheet.FromEntries([]sheet.Entry{{Name: "luck", Value: 45}})))
	require.NoError(t, store.Save(ctx, 2, sheet.FromEntries([]sheet.Entry{{Name: "luck", Value: 45}})))

	path := filepath.Join(t.TempDir(), "party.yaml")
	writeFile(t, path, `
sheets:
  - id: 1
    stats: str50
  - id: 2
    stats: str50
    replace: true
`)
	_, err := importer.New(importer.NewYAMLSource(), store, &bytes.Buffer{}).Run(ctx, path)
	require.NoError(t, err)

	merged, err := store.Load(ctx, 1)
	require.NoError(t, err)
	assert.True(t, merged.Has("luck"))

	replaced, err := store.Load(ctx, 2)
	require.NoError(t, err)
	assert.False(t, replaced.Has("luck"))
}

func TestImporter_Run_InvalidSpecWritesNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "party.yaml")
	writeFile(t, path, `
sheets:
  - id: 1
    stats: str50
  - id: 5000
    stats: str50
`)
	store := sheet.NewMemoryStore()
	_, err := importer.New(importer.NewYAMLSource(), store, &bytes.Buffer{}).Run(context.Background(), path)
	require.Error(t, err)

	ids, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestImporter_Run_InvalidSource(t *testing.T) {
	imp := importer.New(importer.NewYAMLSource(), sheet.NewMemoryStore(), &bytes.Buffer{})

	_, err := imp.Run(context.Background(), "/nonexistent/party.yaml")
	require.Error(t, err)

	empty := filepath.Join(t.TempDir(), "empty.yaml")
	writeFile(t, empty, "sheets: []\n")
	_, err = imp.Run(context.Background(), empty)
	assert.ErrorContains(t, err, "no sheets found")

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	writeFile(t, bad, "sheets: [\n")
	_, err = imp.Run(context.Background(), bad)
	assert.ErrorContains(t, err, "parsing")
}

// TestImporter_Run_DirectoryOfNFiles checks that a directory holding N
// single-sheet files yields exactly N stored sheets.
func TestImporter_Run_DirectoryOfNFiles(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 5).Draw(rt, "numFiles")
		dir := t.TempDir()
		var want []int
		for i := 0; i < n; i++ {
			id := i * 10
			want = append(want, id)
			doc := fmt.Sprintf("sheets:\n  - id: %d\n    stats: str%d\n", id, 30+i)
			ext := ".yaml"
			if i%2 == 1 {
				ext = ".yml"
			}
			if err := os.WriteFile(filepath.Join(dir, fmt.Sprintf("sheet_%d%s", i, ext)), []byte(doc), 0644); err != nil {
				rt.Fatal(err)
			}
		}
		if err := os.WriteFile(filepath.Join(dir, "README.txt"), []byte(strings.Repeat("x", 8)), 0644); err != nil {
			rt.Fatal(err)
		}

		store := sheet.NewMemoryStore()
		got, err := importer.New(importer.NewYAMLSource(), store, &bytes.Buffer{}).Run(context.Background(), dir)
		if err != nil {
			rt.Fatal(err)
		}
		assert.Equal(rt, n, got)
		ids, err := store.List(context.Background())
		if err != nil {
			rt.Fatal(err)
		}
		assert.Equal(rt, want, ids)
	})
}
