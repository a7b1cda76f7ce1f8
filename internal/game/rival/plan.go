package rival

import (
	"strconv"
	"strings"

	"github.com/cory-johannsen/keeper/internal/game/gameerr"
)

// Side describes how one participant of a contest is evaluated.
type Side struct {
	// Character is true when the side checks a stored character's skill.
	Character bool
	// CharacterID identifies the character sheet when Character is true.
	CharacterID int
	// Skill is the skill name checked when Character is true.
	Skill string
	// Ceiling is the keeper-supplied skill value when Character is false.
	Ceiling int
	// Modifier is the bonus-minus-penalty dice count for the side.
	Modifier int
}

// Plan maps args onto the two sides of a contest of the given shape.
//
// For ShapeKeeperVsCharacter the layout is read from args[2]: when it is a
// plain digit run the args are (id, skill, ceiling, characterModifier,
// keeperModifier), otherwise (ceiling, id, skill, keeperModifier,
// characterModifier). The keeper is always side A.
//
// Precondition: shape must come from DetermineShape(args).
// Postcondition: Returns both sides, or an ErrInvalidParameter error when an
// argument that must be an integer is not.
func Plan(shape Shape, args []string) (Side, Side, error) {
	p := &parser{args: args}
	var a, b Side

	switch shape {
	case ShapeCharacters:
		a = Side{Character: true, CharacterID: p.atoi(0), Skill: args[1], Modifier: p.optAtoi(4)}
		b = Side{Character: true, CharacterID: p.atoi(2), Skill: args[3], Modifier: p.optAtoi(5)}

	case ShapeKeeperVsCharacter:
		if isDigits(args[2]) {
			a = Side{Ceiling: p.atoi(2)}
			b = Side{Character: true, CharacterID: p.atoi(0), Skill: args[1]}
			if len(args) > 3 {
				a.Modifier = p.atoi(4)
				b.Modifier = p.atoi(3)
			}
		} else {
			a = Side{Ceiling: p.atoi(0)}
			b = Side{Character: true, CharacterID: p.atoi(1), Skill: args[2]}
			if len(args) > 3 {
				a.Modifier = p.atoi(3)
				b.Modifier = p.atoi(4)
			}
		}

	case ShapeCeilings:
		a = Side{Ceiling: p.atoi(0), Modifier: p.optAtoi(2)}
		b = Side{Ceiling: p.atoi(1), Modifier: p.optAtoi(3)}

	default:
		return Side{}, Side{}, gameerr.New(ErrInvalidParameter, "未识别的对抗类型。")
	}

	if p.err != nil {
		return Side{}, Side{}, p.err
	}
	return a, b, nil
}

// parser converts positional arguments, remembering the first failure.
type parser struct {
	args []string
	err  error
}

func (p *parser) atoi(i int) int {
	if i >= len(p.args) {
		p.fail(i)
		return 0
	}
	v, err := strconv.Atoi(strings.TrimSpace(p.args[i]))
	if err != nil {
		p.fail(i)
		return 0
	}
	return v
}

func (p *parser) optAtoi(i int) int {
	if i >= len(p.args) {
		return 0
	}
	return p.atoi(i)
}

func (p *parser) fail(i int) {
	if p.err != nil {
		return
	}
	val := ""
	if i < len(p.args) {
		val = p.args[i]
	}
	p.err = gameerr.New(ErrInvalidParameter, "对抗参数“%s”不是有效的整数。", val)
}
