// Package dice provides the randomness abstraction, the dice-expression
// evaluator and the percentile roller used by the Call of Cthulhu rules engine.
package dice

import (
	"encoding/json"
	"fmt"
)

// RollResult holds the full audit trail for a single dice expression evaluation.
//
// Invariant: Total equals the signed sum of every term in Expression. Faces rolled
// for subtracted dice terms appear in Dice as rolled (positive); subtracted static
// terms appear negated.
type RollResult struct {
	Expression string // original expression string, e.g. "3d6+2d4-1"
	Total      int    // signed sum of all terms
	Dice       []int  // per-term values in roll order
}

// String returns a human-readable audit string in the format:
//
//	"2d6+3 → [4 5 3] = 12"
//
// Precondition: r.Expression is non-empty.
func (r RollResult) String() string {
	if r.Expression == "" {
		panic("dice: RollResult.String() precondition violated: Expression must be non-empty")
	}
	return fmt.Sprintf("%s → %v = %d", r.Expression, r.Dice, r.Total)
}

// MarshalJSON encodes the result as the positional triple
// [expression, total, dice] consumed by the table client.
func (r RollResult) MarshalJSON() ([]byte, error) {
	faces := r.Dice
	if faces == nil {
		faces = []int{}
	}
	return json.Marshal([]any{r.Expression, r.Total, faces})
}

// Source is the randomness provider for dice rolls.
//
// Implementations MUST be safe for concurrent use.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}
