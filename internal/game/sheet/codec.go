package sheet

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Encode writes s as one "name|value" line per entry, in order.
//
// Postcondition: Decode of the written bytes yields an equal Sheet.
func Encode(w io.Writer, s *Sheet) error {
	bw := bufio.NewWriter(w)
	for _, e := range s.entries {
		if _, err := fmt.Fprintf(bw, "%s|%d\n", e.Name, e.Value); err != nil {
			return fmt.Errorf("writing attribute %q: %w", e.Name, err)
		}
	}
	return bw.Flush()
}

// Decode reads "name|value" lines. Names are lower-cased; blank lines are
// skipped; a repeated name keeps its first position and its last value.
//
// Postcondition: Returns the decoded Sheet or an error naming the bad line.
func Decode(r io.Reader) (*Sheet, error) {
	s := New()
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		name, raw, ok := strings.Cut(text, "|")
		if !ok {
			return nil, fmt.Errorf("line %d: missing '|' separator in %q", line, text)
		}
		v, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid value for %q: %w", line, name, err)
		}
		s.Set(name, v)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading sheet: %w", err)
	}
	return s, nil
}
