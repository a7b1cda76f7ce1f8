package rival

import "github.com/cory-johannsen/keeper/internal/game/check"

// Outcome is an evaluated side of a contest.
type Outcome struct {
	Skill int         // skill value or keeper ceiling checked against
	Roll  int         // d100 reading
	Level check.Level // classified success level
}

// Winner identifies the winning side.
type Winner int

const (
	SideA Winner = iota
	SideB
)

// Arbitrate picks the winner of a contest.
//
// In strict mode side A wins only with a strictly better success level; every
// tie goes to side B. In lenient mode a tie on level is broken by the higher
// skill, then by the lower roll, and a complete tie still goes to side B.
func Arbitrate(strict bool, a, b Outcome) Winner {
	if a.Level.Better(b.Level) {
		return SideA
	}
	if strict || b.Level.Better(a.Level) {
		return SideB
	}
	switch {
	case a.Skill > b.Skill:
		return SideA
	case a.Skill < b.Skill:
		return SideB
	case a.Roll < b.Roll:
		return SideA
	default:
		return SideB
	}
}
