package engine

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/cory-johannsen/keeper/internal/game/check"
	"github.com/cory-johannsen/keeper/internal/game/gameerr"
	"github.com/cory-johannsen/keeper/internal/game/sheet"
)

// SanityAdjustment is the outcome of a direct sanity change.
type SanityAdjustment struct {
	Delta     string // delta as supplied
	Remaining int    // current sanity after the change
}

// MarshalJSON encodes the adjustment as [delta, remaining].
func (a SanityAdjustment) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{a.Delta, a.Remaining})
}

// SanityCheck is the outcome of an INT-driven sanity loss.
type SanityCheck struct {
	SuccessLoss string      // loss expression applied on success
	FailureLoss string      // loss expression applied on failure
	INT         int         // INT value checked against
	Level       check.Level // INT check outcome
	Roll        int         // INT check reading
	Loss        int         // sanity lost
	Remaining   int         // current sanity after the loss
}

// MarshalJSON encodes the check as
// [successLoss, failureLoss, int, level, roll, loss, remaining].
func (c SanityCheck) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{c.SuccessLoss, c.FailureLoss, c.INT, c.Level, c.Roll, c.Loss, c.Remaining})
}

// AdjustSanity adds a signed integer delta to current sanity, clamped to
// [0, san]. A character without a sheet is a silent no-op: both returns are nil.
//
// Postcondition: 0 <= Remaining <= san, and the sheet is saved.
func (e *Engine) AdjustSanity(ctx context.Context, id, delta string) (*SanityAdjustment, error) {
	n, s, err := e.load(ctx, id)
	if err != nil {
		if errors.Is(err, sheet.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	v, err := parseDelta(delta)
	if err != nil {
		return nil, err
	}

	limit, _ := s.Get(sheet.SAN)
	remaining := clampAdd(s.Current(sheet.SAN), v, limit)
	s.SetCurrent(sheet.SAN, remaining)
	if err := e.save(ctx, n, s); err != nil {
		return nil, err
	}

	e.logger.Info("sanity adjusted",
		zap.Int("character", n),
		zap.Int("delta", v),
		zap.Int("remaining", remaining),
	)
	return &SanityAdjustment{Delta: delta, Remaining: remaining}, nil
}

// SanCheck runs an INT check and deducts the loss it selects: on a critical,
// the smallest of the '+'-separated terms of successLoss, each rolled
// separately; on any other success, successLoss; otherwise failureLoss.
// A character without a sheet is a silent no-op: both returns are nil.
//
// Postcondition: Returns the check, or an error matching ErrSkillNotFound when
// the sheet has no INT, or dice.ErrInvalidExpression / ErrInvalidAdjustment for
// a malformed loss.
func (e *Engine) SanCheck(ctx context.Context, id, successLoss, failureLoss string) (*SanityCheck, error) {
	n, s, err := e.load(ctx, id)
	if err != nil {
		if errors.Is(err, sheet.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if !s.Has(sheet.INT) {
		return nil, gameerr.New(ErrSkillNotFound, "INT属性未找到。")
	}

	sc, err := e.checkSheet(s, id, sheet.INT, 0)
	if err != nil {
		return nil, err
	}

	var loss int
	switch sc.Level {
	case check.Critical:
		loss, err = e.minimumLoss(successLoss)
	case check.Extreme, check.Hard, check.Regular:
		loss, err = e.evalAmount(successLoss)
	default:
		loss, err = e.evalAmount(failureLoss)
	}
	if err != nil {
		return nil, err
	}

	remaining := max(s.Current(sheet.SAN)-loss, 0)
	if loss < 0 {
		limit, _ := s.Get(sheet.SAN)
		remaining = min(remaining, limit)
	}
	s.SetCurrent(sheet.SAN, remaining)
	if err := e.save(ctx, n, s); err != nil {
		return nil, err
	}

	e.logger.Info("sanity check",
		zap.Int("character", n),
		zap.Stringer("level", sc.Level),
		zap.Int("roll", sc.Roll),
		zap.Int("loss", loss),
		zap.Int("remaining", remaining),
	)
	return &SanityCheck{
		SuccessLoss: successLoss,
		FailureLoss: failureLoss,
		INT:         sc.Value,
		Level:       sc.Level,
		Roll:        sc.Roll,
		Loss:        loss,
		Remaining:   remaining,
	}, nil
}

func (e *Engine) minimumLoss(expr string) (int, error) {
	var lowest int
	for i, part := range strings.Split(expr, "+") {
		v, err := e.evalAmount(part)
		if err != nil {
			return 0, err
		}
		if i == 0 || v < lowest {
			lowest = v
		}
	}
	return lowest, nil
}
