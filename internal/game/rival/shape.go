// Package rival infers the shape of a contested roll from its positional
// arguments and arbitrates the winner between two evaluated sides.
package rival

import (
	"errors"
	"strconv"
	"strings"

	"github.com/cory-johannsen/keeper/internal/game/gameerr"
)

// ErrInvalidParameter is returned for argument lists that match no contest shape.
var ErrInvalidParameter = errors.New("invalid rival parameter")

// Argument count bounds for a rival roll.
const (
	MinArgs = 2
	MaxArgs = 6
)

// Shape identifies which kind of contest an argument list describes.
type Shape int

const (
	// ShapeCharacters pits two characters' named skills against each other:
	// id, skill, id, skill [, modifier, modifier].
	ShapeCharacters Shape = 1
	// ShapeKeeperVsCharacter pits a keeper-supplied ceiling against one
	// character's skill: ceiling, id, skill or id, skill, ceiling [, modifier, modifier].
	ShapeKeeperVsCharacter Shape = 2
	// ShapeCeilings pits two keeper-supplied ceilings: ceiling, ceiling
	// [, modifier, modifier].
	ShapeCeilings Shape = 3
)

func (s Shape) String() string {
	switch s {
	case ShapeCharacters:
		return "characters"
	case ShapeKeeperVsCharacter:
		return "keeper_vs_character"
	case ShapeCeilings:
		return "ceilings"
	default:
		return "unknown"
	}
}

// DetermineShape infers the contest shape from args. The predicates are tested
// in a fixed order and the first match wins:
//
//  1. at least four args with args[0], args[2] integral and args[1], args[3]
//     not: two characters;
//  2. args[0] and args[1] integral, or args[0] integral, args[1] not and
//     args[2] integral: two ceilings for 2 or 4 args, keeper against a
//     character for 3 or 5 args;
//  3. anything else is rejected.
//
// Postcondition: Returns a Shape, or an ErrInvalidParameter error.
func DetermineShape(args []string) (Shape, error) {
	n := len(args)
	if n < MinArgs || n > MaxArgs {
		return 0, gameerr.New(ErrInvalidParameter, "Invalid number of parameters for rival roll.")
	}

	if n >= 4 && isInt(args[0]) && isInt(args[2]) && !isInt(args[1]) && !isInt(args[3]) {
		return ShapeCharacters, nil
	}

	leadingCeiling := isInt(args[0]) && isInt(args[1])
	trailingCeiling := n > 2 && isInt(args[0]) && !isInt(args[1]) && isInt(args[2])
	if leadingCeiling || trailingCeiling {
		switch n {
		case 2, 4:
			return ShapeCeilings, nil
		case 3, 5:
			return ShapeKeeperVsCharacter, nil
		default:
			return 0, gameerr.New(ErrInvalidParameter, "Invalid parameters for Type 2 or 3 rival roll.")
		}
	}

	return 0, gameerr.New(ErrInvalidParameter, "Could not determine the type of rival roll.")
}

// isInt reports whether s parses as a signed decimal integer, ignoring
// surrounding whitespace.
func isInt(s string) bool {
	_, err := strconv.Atoi(strings.TrimSpace(s))
	return err == nil
}

// isDigits reports whether s is a non-empty run of ASCII digits. Unlike isInt
// it rejects signs, which is what distinguishes the two keeper-side layouts.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
