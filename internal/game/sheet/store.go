package sheet

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"
)

// ErrNotFound is returned when no sheet exists for a character id.
var ErrNotFound = errors.New("sheet not found")

// Store persists sheets keyed by character id. Every Save is a full overwrite;
// there is no locking across the read-modify-write cycle, so concurrent writers
// to the same id race and the last writer wins.
type Store interface {
	// Load returns the sheet for id, or ErrNotFound.
	Load(ctx context.Context, id int) (*Sheet, error)
	// Save overwrites the sheet for id, creating it if absent.
	Save(ctx context.Context, id int, s *Sheet) error
	// List returns every stored id in ascending order.
	List(ctx context.Context) ([]int, error)
	// Delete removes the sheet for id; deleting a missing id is not an error.
	Delete(ctx context.Context, id int) error
	// Purge removes sheets not written within maxAge and reports how many.
	Purge(ctx context.Context, maxAge time.Duration) (int, error)
}

// Merge applies entries to the sheet for id and saves it. With replace set, or
// when no sheet exists yet, the entries start a fresh sheet.
//
// Postcondition: the stored sheet contains every entry; other attributes of an
// existing sheet keep their values and order unless replace is set.
func Merge(ctx context.Context, store Store, id int, entries []Entry, replace bool) (*Sheet, error) {
	s := New()
	if !replace {
		existing, err := store.Load(ctx, id)
		switch {
		case err == nil:
			s = existing
		case !errors.Is(err, ErrNotFound):
			return nil, err
		}
	}
	for _, e := range entries {
		s.Set(e.Name, e.Value)
	}
	if err := store.Save(ctx, id, s); err != nil {
		return nil, err
	}
	return s, nil
}

// MemoryStore is an in-process Store. It is safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	sheets  map[int]*Sheet
	written map[int]time.Time
	now     func() time.Time
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sheets:  make(map[int]*Sheet),
		written: make(map[int]time.Time),
		now:     time.Now,
	}
}

// SetClock replaces the clock used to stamp writes. Intended for tests.
func (m *MemoryStore) SetClock(now func() time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = now
}

// Load returns a copy of the stored sheet.
func (m *MemoryStore) Load(_ context.Context, id int) (*Sheet, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sheets[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s.Clone(), nil
}

// Save stores a copy of s.
func (m *MemoryStore) Save(_ context.Context, id int, s *Sheet) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sheets[id] = s.Clone()
	m.written[id] = m.now()
	return nil
}

// List returns stored ids in ascending order.
func (m *MemoryStore) List(_ context.Context) ([]int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]int, 0, len(m.sheets))
	for id := range m.sheets {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids, nil
}

// Delete removes id.
func (m *MemoryStore) Delete(_ context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sheets, id)
	delete(m.written, id)
	return nil
}

// Purge removes sheets written before now-maxAge.
func (m *MemoryStore) Purge(_ context.Context, maxAge time.Duration) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cutoff := m.now().Add(-maxAge)
	n := 0
	for id, at := range m.written {
		if at.Before(cutoff) {
			delete(m.sheets, id)
			delete(m.written, id)
			n++
		}
	}
	return n, nil
}
