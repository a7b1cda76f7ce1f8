// Package check classifies percentile rolls into Call of Cthulhu success levels.
package check

import (
	"encoding/json"
	"fmt"
)

// Level is a success tier. Lower values are better outcomes.
type Level int

// Success levels in order from best to worst.
const (
	Critical Level = iota
	Extreme
	Hard
	Regular
	Failure
	Fumble
)

var labels = [...]string{
	Critical: "大成功",
	Extreme:  "极限成功",
	Hard:     "困难成功",
	Regular:  "成功",
	Failure:  "失败",
	Fumble:   "大失败",
}

// Levels returns every level from best to worst.
func Levels() []Level {
	return []Level{Critical, Extreme, Hard, Regular, Failure, Fumble}
}

// String returns the label shown at the table.
func (l Level) String() string {
	if l < Critical || l > Fumble {
		return fmt.Sprintf("Level(%d)", int(l))
	}
	return labels[l]
}

// IsSuccess reports whether l is any of the four passing tiers.
func (l Level) IsSuccess() bool {
	return l >= Critical && l <= Regular
}

// Better reports whether l is a strictly better outcome than other.
func (l Level) Better(other Level) bool {
	return l < other
}

// MarshalJSON encodes the level as its table label.
func (l Level) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}

// ParseLevel maps a table label back to its Level.
//
// Postcondition: Returns (level, true) for a known label, or (0, false).
func ParseLevel(label string) (Level, bool) {
	for i, s := range labels {
		if s == label {
			return Level(i), true
		}
	}
	return 0, false
}
