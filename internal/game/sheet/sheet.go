// Package sheet models persisted character sheets: an ordered mapping from
// lower-cased attribute name to integer value, plus the storage contract and the
// line-oriented "name|value" codec used by the flat-file store.
package sheet

import "strings"

// Derived attribute names track the current value of a base attribute.
const (
	CurrentPrefix = "current_"

	SAN = "san"
	HP  = "hp"
	MP  = "mp"
	INT = "int"
)

// Entry is one attribute of a Sheet.
type Entry struct {
	Name  string
	Value int
}

// Sheet is an insertion-ordered set of attributes.
//
// Invariant: names are lower-case and unique; Entries preserves first-insertion
// order across updates.
type Sheet struct {
	entries []Entry
	index   map[string]int
}

// New creates an empty Sheet.
func New() *Sheet {
	return &Sheet{index: make(map[string]int)}
}

// FromEntries builds a Sheet from entries, later duplicates overwriting earlier
// values in place.
func FromEntries(entries []Entry) *Sheet {
	s := New()
	for _, e := range entries {
		s.Set(e.Name, e.Value)
	}
	return s
}

// Key normalizes an attribute name.
func Key(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Get returns the value of name.
//
// Postcondition: Returns (value, true) if present, or (0, false).
func (s *Sheet) Get(name string) (int, bool) {
	i, ok := s.index[Key(name)]
	if !ok {
		return 0, false
	}
	return s.entries[i].Value, true
}

// Has reports whether name is present.
func (s *Sheet) Has(name string) bool {
	_, ok := s.index[Key(name)]
	return ok
}

// Set stores value under name, appending new names and updating existing ones
// without moving them.
func (s *Sheet) Set(name string, value int) {
	k := Key(name)
	if i, ok := s.index[k]; ok {
		s.entries[i].Value = value
		return
	}
	s.index[k] = len(s.entries)
	s.entries = append(s.entries, Entry{Name: k, Value: value})
}

// Current returns current_<base>, falling back to base, then to 0.
func (s *Sheet) Current(base string) int {
	if v, ok := s.Get(CurrentPrefix + base); ok {
		return v
	}
	v, _ := s.Get(base)
	return v
}

// SetCurrent stores current_<base>.
func (s *Sheet) SetCurrent(base string, value int) {
	s.Set(CurrentPrefix+base, value)
}

// Entries returns a copy of all attributes in order.
func (s *Sheet) Entries() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Len returns the number of attributes.
func (s *Sheet) Len() int { return len(s.entries) }

// Clone returns an independent copy of s.
func (s *Sheet) Clone() *Sheet {
	return FromEntries(s.entries)
}
