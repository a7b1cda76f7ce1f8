package engine

import (
	"context"
	"encoding/json"
	"strconv"

	"go.uber.org/zap"

	"github.com/cory-johannsen/keeper/internal/game/check"
	"github.com/cory-johannsen/keeper/internal/game/rival"
)

// Identifiers reported for keeper-controlled sides of a contest.
const (
	KeeperSideA = "NPC1"
	KeeperSideB = "NPC2"
)

// Contestant is one evaluated side of a rival roll.
type Contestant struct {
	Side    rival.Side
	Outcome rival.Outcome
}

// ID returns the character id, or the keeper placeholder for fallback.
func (c Contestant) ID(fallback string) any {
	if c.Side.Character {
		return c.Side.CharacterID
	}
	return fallback
}

// RivalResult is the outcome of a contested roll.
type RivalResult struct {
	Shape  rival.Shape
	Strict bool
	A, B   Contestant
	Winner rival.Winner
}

// WinnerID returns the id of the winning side: a character id or NPC1/NPC2.
func (r RivalResult) WinnerID() any {
	if r.Winner == rival.SideA {
		return r.A.ID(KeeperSideA)
	}
	return r.B.ID(KeeperSideB)
}

// MarshalJSON encodes the result positionally. The arity depends on the shape:
//
//	characters:          [idA, idB, skillA, skillB, valueA, valueB, rollA, rollB, levelA, levelB, winner]
//	keeper vs character: [idB, skillB, valueA, valueB, rollA, rollB, levelA, levelB, winner]
//	ceilings:            [valueA, valueB, rollA, rollB, levelA, levelB, winner]
func (r RivalResult) MarshalJSON() ([]byte, error) {
	tail := []any{
		r.A.Outcome.Skill, r.B.Outcome.Skill,
		r.A.Outcome.Roll, r.B.Outcome.Roll,
		r.A.Outcome.Level, r.B.Outcome.Level,
		r.WinnerID(),
	}
	var head []any
	switch r.Shape {
	case rival.ShapeCharacters:
		head = []any{r.A.Side.CharacterID, r.B.Side.CharacterID, r.A.Side.Skill, r.B.Side.Skill}
	case rival.ShapeKeeperVsCharacter:
		head = []any{r.B.Side.CharacterID, r.B.Side.Skill}
	}
	return json.Marshal(append(head, tail...))
}

// ResolveRival infers the contest shape from args, evaluates side A then side
// B, and arbitrates the winner under strict or lenient tie-breaking.
//
// Postcondition: Returns the result, or an error matching
// rival.ErrInvalidParameter, ErrCharacterNotFound or ErrSkillNotFound.
func (e *Engine) ResolveRival(ctx context.Context, strict bool, args []string) (RivalResult, error) {
	shape, err := rival.DetermineShape(args)
	if err != nil {
		return RivalResult{}, err
	}
	sideA, sideB, err := rival.Plan(shape, args)
	if err != nil {
		return RivalResult{}, err
	}

	a, err := e.evaluate(ctx, sideA)
	if err != nil {
		return RivalResult{}, err
	}
	b, err := e.evaluate(ctx, sideB)
	if err != nil {
		return RivalResult{}, err
	}

	result := RivalResult{
		Shape:  shape,
		Strict: strict,
		A:      a,
		B:      b,
		Winner: rival.Arbitrate(strict, a.Outcome, b.Outcome),
	}
	e.logger.Debug("rival roll",
		zap.Stringer("shape", shape),
		zap.Bool("strict", strict),
		zap.Any("winner", result.WinnerID()),
	)
	return result, nil
}

func (e *Engine) evaluate(ctx context.Context, side rival.Side) (Contestant, error) {
	if !side.Character {
		roll := e.roller.RollPercentile(side.Modifier).Total
		return Contestant{
			Side:    side,
			Outcome: rival.Outcome{Skill: side.Ceiling, Roll: roll, Level: check.Classify(side.Ceiling, roll)},
		}, nil
	}
	sc, err := e.RollSkill(ctx, strconv.Itoa(side.CharacterID), side.Skill, side.Modifier)
	if err != nil {
		return Contestant{}, err
	}
	return Contestant{
		Side:    side,
		Outcome: rival.Outcome{Skill: sc.Value, Roll: sc.Roll, Level: sc.Level},
	}, nil
}
