package dice

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/cory-johannsen/keeper/internal/game/gameerr"
)

// ErrInvalidModifier is returned when a bonus/penalty modifier is not an integer.
var ErrInvalidModifier = errors.New("invalid modifier")

// MaxModifier bounds the absolute bonus/penalty dice count.
const MaxModifier = 10

// PercentileExpression is the nominal expression reported for every d100 check.
const PercentileExpression = "1d100"

// PercentileRoll is the outcome of a d100 roll with bonus or penalty dice.
//
// Invariant: 1 <= Total <= 100; len(Tens) == 1+|Modifier|.
type PercentileRoll struct {
	Modifier int   // clamped bonus-minus-penalty count
	Unit     int   // the single unit digit, 0-9
	Tens     []int // every tens digit rolled, in roll order
	Total    int   // selected reading, 100 when both digits are zero
}

// Candidates describes each tens reading as "{t}0 + {unit}".
func (p PercentileRoll) Candidates() []string {
	out := make([]string, len(p.Tens))
	for i, t := range p.Tens {
		out[i] = fmt.Sprintf("%d0 + %d", t, p.Unit)
	}
	return out
}

// MarshalJSON encodes the roll as ["1d100", total, candidates].
func (p PercentileRoll) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{PercentileExpression, p.Total, p.Candidates()})
}

// ParseModifier converts a player-supplied bonus/penalty count.
//
// Postcondition: Returns the integer value, or an ErrInvalidModifier error.
func ParseModifier(s string) (int, error) {
	m, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, gameerr.New(ErrInvalidModifier, "不合法的修正数值，修正数值为奖励骰的数量减去惩罚骰的数量")
	}
	return m, nil
}

// ClampModifier limits m to [-MaxModifier, MaxModifier].
func ClampModifier(m int) int {
	return max(-MaxModifier, min(MaxModifier, m))
}

// RollPercentile rolls a d100 with modifier bonus (positive) or penalty
// (negative) dice. The unit digit is rolled once, then 1+|m| tens digits; bonus
// dice keep the lowest tens digit, penalty or no dice keep the highest.
//
// Precondition: src must be non-nil.
// Postcondition: 1 <= result.Total <= 100.
func RollPercentile(modifier int, src Source) PercentileRoll {
	m := ClampModifier(modifier)
	n := m
	if n < 0 {
		n = -n
	}

	unit := src.Intn(10)
	tens := make([]int, 1+n)
	for i := range tens {
		tens[i] = src.Intn(10)
	}

	selected := slices.Max(tens)
	if m > 0 {
		selected = slices.Min(tens)
	}
	total := readPercentile(selected, unit)

	// A double zero under bonus dice is re-read with the lowest tens digit.
	if m > 0 && unit == 0 && selected == 0 {
		total = readPercentile(slices.Min(tens), unit)
	}

	return PercentileRoll{
		Modifier: m,
		Unit:     unit,
		Tens:     tens,
		Total:    total,
	}
}

func readPercentile(tens, unit int) int {
	v := 10*tens + unit
	if v == 0 {
		return 100
	}
	return v
}
