package engine

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/cory-johannsen/keeper/internal/game/gameerr"
	"github.com/cory-johannsen/keeper/internal/game/sheet"
)

// HPAdjustment is the outcome of a hit point change.
type HPAdjustment struct {
	Expression string // adjustment as supplied
	Delta      int    // evaluated signed change
	Remaining  int    // current hit points after the change
}

// MarshalJSON encodes the adjustment as [expression, delta, remaining].
func (a HPAdjustment) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{a.Expression, a.Delta, a.Remaining})
}

// AdjustHP applies a signed dice expression ("-1d6", "+2d4") or a signed
// integer to current hit points, clamped to [0, hp]. A character without a
// sheet is a silent no-op: both returns are nil.
//
// Postcondition: 0 <= Remaining <= hp and the sheet is saved, or an error
// matching ErrSkillNotFound when the sheet has no hp attribute.
func (e *Engine) AdjustHP(ctx context.Context, id, expr string) (*HPAdjustment, error) {
	n, s, err := e.load(ctx, id)
	if err != nil {
		if errors.Is(err, sheet.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	limit, ok := s.Get(sheet.HP)
	if !ok {
		return nil, gameerr.New(ErrSkillNotFound, "HP属性未找到。")
	}

	delta, err := e.hpDelta(expr)
	if err != nil {
		return nil, err
	}

	remaining := clampAdd(s.Current(sheet.HP), delta, limit)
	s.SetCurrent(sheet.HP, remaining)
	if err := e.save(ctx, n, s); err != nil {
		return nil, err
	}

	e.logger.Info("hit points adjusted",
		zap.Int("character", n),
		zap.String("expression", expr),
		zap.Int("delta", delta),
		zap.Int("remaining", remaining),
	)
	return &HPAdjustment{Expression: expr, Delta: delta, Remaining: remaining}, nil
}

// hpDelta evaluates a signed adjustment. Dice expressions carry their sign as
// a prefix that is stripped before rolling and reapplied to the total.
func (e *Engine) hpDelta(expr string) (int, error) {
	s := strings.TrimSpace(expr)
	if !strings.ContainsAny(s, "dD") {
		return e.evalAmount(s)
	}
	sign := 1
	if strings.HasPrefix(s, "-") {
		sign = -1
	}
	v, err := e.evalAmount(strings.TrimLeft(s, "+-"))
	if err != nil {
		return 0, err
	}
	return sign * v, nil
}
