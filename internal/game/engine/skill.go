package engine

import (
	"context"
	"encoding/json"
	"errors"

	"go.uber.org/zap"

	"github.com/cory-johannsen/keeper/internal/game/check"
	"github.com/cory-johannsen/keeper/internal/game/gameerr"
	"github.com/cory-johannsen/keeper/internal/game/sheet"
)

// SkillCheck is the outcome of a percentile check against a stored skill.
type SkillCheck struct {
	Skill string      // skill name as requested
	Value int         // stored skill value
	Roll  int         // d100 reading
	Level check.Level // classified outcome
}

// MarshalJSON encodes the check as [skill, value, roll, level].
func (c SkillCheck) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{c.Skill, c.Value, c.Roll, c.Level})
}

// RollSkill runs a percentile check with modifier bonus/penalty dice against the
// named skill of character id. The sheet is not modified.
//
// Postcondition: Returns the check, or an error matching ErrCharacterNotFound or
// ErrSkillNotFound.
func (e *Engine) RollSkill(ctx context.Context, id, skill string, modifier int) (SkillCheck, error) {
	_, s, err := e.load(ctx, id)
	if err != nil {
		if errors.Is(err, sheet.ErrNotFound) {
			return SkillCheck{}, characterNotFound(id)
		}
		return SkillCheck{}, err
	}
	return e.checkSheet(s, id, skill, modifier)
}

func (e *Engine) checkSheet(s *sheet.Sheet, id, skill string, modifier int) (SkillCheck, error) {
	value, ok := s.Get(skill)
	if !ok {
		return SkillCheck{}, gameerr.New(ErrSkillNotFound, "技能“%s”未找到。", skill)
	}
	roll := e.roller.RollPercentile(modifier).Total
	level := check.Classify(value, roll)
	e.logger.Debug("skill check",
		zap.String("character", id),
		zap.String("skill", skill),
		zap.Int("value", value),
		zap.Int("modifier", modifier),
		zap.Int("roll", roll),
		zap.Stringer("level", level),
	)
	return SkillCheck{Skill: skill, Value: value, Roll: roll, Level: level}, nil
}
