package check

// Classify maps a skill value and a d100 reading to a success level. Checks run
// in a fixed order and the first match wins: a roll of 1 is always critical, a
// fumble needs 96+ below skill 50 or exactly 100 otherwise, then extreme
// (roll <= skill/5), hard (roll <= skill/2), regular (roll <= skill).
//
// The fifth and half thresholds compare multiplied forms, which gives the same
// answer as dividing the skill exactly or with truncation for integral rolls.
func Classify(skill, roll int) Level {
	switch {
	case roll == 1:
		return Critical
	case (skill < 50 && roll >= 96) || (skill >= 50 && roll == 100):
		return Fumble
	case 5*roll <= skill:
		return Extreme
	case 2*roll <= skill:
		return Hard
	case roll <= skill:
		return Regular
	default:
		return Failure
	}
}
