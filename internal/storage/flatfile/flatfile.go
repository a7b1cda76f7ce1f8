// Package flatfile stores character sheets as pc_file{id}.txt files of
// "name|value" lines in a single directory.
package flatfile

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/cory-johannsen/keeper/internal/game/sheet"
)

const (
	filePrefix = "pc_file"
	fileSuffix = ".txt"
)

// FileName returns the sheet file name for a character id.
func FileName(id int) string {
	return filePrefix + strconv.Itoa(id) + fileSuffix
}

// Store is a sheet.Store backed by a directory. Writes go through a temporary
// file and a rename, so readers never observe a half-written sheet.
type Store struct {
	dir string
	now func() time.Time
}

// New returns a Store rooted at dir, creating the directory if needed.
//
// Postcondition: Returns a usable Store or a non-nil error.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating sheet directory: %w", err)
	}
	return &Store{dir: dir, now: time.Now}, nil
}

// Dir returns the directory holding the sheet files.
func (s *Store) Dir() string { return s.dir }

func (s *Store) path(id int) string {
	return filepath.Join(s.dir, FileName(id))
}

// Load reads and decodes the sheet for id.
func (s *Store) Load(_ context.Context, id int) (*sheet.Sheet, error) {
	data, err := os.ReadFile(s.path(id))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, sheet.ErrNotFound
		}
		return nil, fmt.Errorf("reading %s: %w", FileName(id), err)
	}
	sh, err := sheet.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", FileName(id), err)
	}
	return sh, nil
}

// Save encodes sh and replaces the file for id.
func (s *Store) Save(_ context.Context, id int, sh *sheet.Sheet) error {
	var buf bytes.Buffer
	if err := sheet.Encode(&buf, sh); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(s.dir, FileName(id)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", FileName(id), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", FileName(id), err)
	}
	if err := os.Rename(tmp.Name(), s.path(id)); err != nil {
		return fmt.Errorf("replacing %s: %w", FileName(id), err)
	}
	return nil
}

// List returns the ids of every sheet file, ascending. Files that do not
// follow the pc_file{id}.txt pattern are ignored.
func (s *Store) List(_ context.Context) ([]int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("listing sheets: %w", err)
	}
	ids := make([]int, 0, len(entries))
	for _, e := range entries {
		if id, ok := parseFileName(e.Name()); ok && !e.IsDir() {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids, nil
}

// Delete removes the file for id.
func (s *Store) Delete(_ context.Context, id int) error {
	if err := os.Remove(s.path(id)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("deleting %s: %w", FileName(id), err)
	}
	return nil
}

// Purge removes sheet files whose modification time is older than maxAge.
func (s *Store) Purge(ctx context.Context, maxAge time.Duration) (int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, fmt.Errorf("listing sheets: %w", err)
	}
	cutoff := s.now().Add(-maxAge)
	n := 0
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return n, err
		}
		if _, ok := parseFileName(e.Name()); !ok || e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return n, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(filepath.Join(s.dir, e.Name())); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return n, fmt.Errorf("purging %s: %w", e.Name(), err)
			}
			n++
		}
	}
	return n, nil
}

func parseFileName(name string) (int, bool) {
	rest, ok := strings.CutPrefix(name, filePrefix)
	if !ok {
		return 0, false
	}
	digits, ok := strings.CutSuffix(rest, fileSuffix)
	if !ok || digits == "" {
		return 0, false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	id, err := strconv.Atoi(digits)
	return id, err == nil
}
