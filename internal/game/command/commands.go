// Package command routes keeper commands to the resolution engine and
// broadcasts their results.
package command

// Categories for organizing commands.
const (
	CategoryDice  = "dice"
	CategoryCheck = "check"
	CategorySheet = "sheet"
)

// CategoryOrder is the order categories appear in help listings.
var CategoryOrder = []string{CategoryDice, CategoryCheck, CategorySheet}

// Handler identifiers mapping commands to engine operations.
const (
	HandlerRoll        = "roll"
	HandlerPercentile  = "percentile"
	HandlerSkill       = "skill"
	HandlerSecret      = "secret"
	HandlerRival       = "rival"
	HandlerStrictRival = "strict_rival"
	HandlerSanity      = "sanity"
	HandlerHP          = "hp"
	HandlerStat        = "stat"
)

// Command defines a keeper-invocable command.
type Command struct {
	// Name is the command token.
	Name string
	// Help is the short usage text.
	Help string
	// Category groups the command (dice, check, sheet).
	Category string
	// Handler maps to the engine operation.
	Handler string
	// MinArgs is the number of leading arguments that must be non-empty.
	MinArgs int
}

// BuiltinCommands returns every command the keeper understands.
func BuiltinCommands() []Command {
	return []Command{
		// Dice commands
		{Name: "r", Help: "Roll a dice expression (r 2d6+3)", Category: CategoryDice, Handler: HandlerRoll, MinArgs: 1},
		{Name: "rm", Help: "Roll d100 with bonus/penalty dice (rm <modifier>)", Category: CategoryDice, Handler: HandlerPercentile, MinArgs: 1},
		{Name: "rh", Help: "Secret roll, result hidden in 12 digits (rh 1d100)", Category: CategoryDice, Handler: HandlerSecret, MinArgs: 1},

		// Check commands
		{Name: "rd", Help: "Skill check (rd <id> <skill> [modifier])", Category: CategoryCheck, Handler: HandlerSkill, MinArgs: 2},
		{Name: "rav", Help: "Contested roll, ties broken by skill then roll (rav <args...>)", Category: CategoryCheck, Handler: HandlerRival, MinArgs: 2},
		{Name: "ravs", Help: "Contested roll, ties go to the second side (ravs <args...>)", Category: CategoryCheck, Handler: HandlerStrictRival, MinArgs: 2},

		// Sheet commands
		{Name: "sc", Help: "Sanity check (sc <id> <success> <failure>) or adjust (sc <id> <delta>)", Category: CategorySheet, Handler: HandlerSanity, MinArgs: 2},
		{Name: "hp", Help: "Adjust hit points (hp <id> <-1d6|+2>)", Category: CategorySheet, Handler: HandlerHP, MinArgs: 2},
		{Name: "st", Help: "Read a stat (st <id> <name>)", Category: CategorySheet, Handler: HandlerStat, MinArgs: 2},
	}
}
