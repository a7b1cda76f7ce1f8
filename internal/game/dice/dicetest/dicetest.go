// Package dicetest provides deterministic dice sources for tests.
package dicetest

import "sync"

// Sequence is a dice.Source that replays scripted values in order, cycling when
// exhausted. Each value is reduced modulo n so a script never escapes [0, n).
type Sequence struct {
	mu   sync.Mutex
	vals []int
	pos  int
}

// NewSequence returns a Sequence replaying vals.
//
// Precondition: len(vals) > 0.
func NewSequence(vals ...int) *Sequence {
	if len(vals) == 0 {
		panic("dicetest: NewSequence requires at least one value")
	}
	return &Sequence{vals: vals}
}

// Intn returns the next scripted value modulo n.
func (s *Sequence) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := s.vals[s.pos%len(s.vals)]
	s.pos++
	return ((v % n) + n) % n
}

// Calls reports how many values have been drawn.
func (s *Sequence) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pos
}

// Fixed is a dice.Source that always returns the same value, capped at n-1.
type Fixed int

// Intn returns min(f, n-1).
func (f Fixed) Intn(n int) int {
	if int(f) >= n {
		return n - 1
	}
	return int(f)
}
