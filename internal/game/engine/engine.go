// Package engine applies the Call of Cthulhu resolution rules to stored
// character sheets: skill checks, contested rolls, sanity and hit point
// adjustments, and stat lookups.
//
// The engine holds no mutable state of its own. Every call loads the sheet it
// needs from the Store and, for adjustments, writes the whole sheet back, so
// concurrent adjustments to one character can lose updates.
package engine

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/cory-johannsen/keeper/internal/game/dice"
	"github.com/cory-johannsen/keeper/internal/game/gameerr"
	"github.com/cory-johannsen/keeper/internal/game/sheet"
)

var (
	// ErrCharacterNotFound is returned when no sheet exists for a character id.
	ErrCharacterNotFound = errors.New("character not found")
	// ErrSkillNotFound is returned when a sheet lacks the requested attribute.
	ErrSkillNotFound = errors.New("skill not found")
	// ErrInvalidAdjustment is returned for sanity or hit point deltas that are
	// neither dice expressions nor integers.
	ErrInvalidAdjustment = errors.New("invalid adjustment")
)

// Engine resolves checks and adjustments against a sheet Store.
type Engine struct {
	store  sheet.Store
	roller *dice.Roller
	logger *zap.Logger
}

// New creates an Engine.
//
// Precondition: store, roller and logger must be non-nil.
func New(store sheet.Store, roller *dice.Roller, logger *zap.Logger) *Engine {
	return &Engine{store: store, roller: roller, logger: logger}
}

// load fetches the sheet for a player-supplied id. An id that is not an
// integer can never name a sheet and is reported as sheet.ErrNotFound.
func (e *Engine) load(ctx context.Context, id string) (int, *sheet.Sheet, error) {
	n, err := strconv.Atoi(strings.TrimSpace(id))
	if err != nil {
		return 0, nil, sheet.ErrNotFound
	}
	s, err := e.store.Load(ctx, n)
	if err != nil {
		return 0, nil, err
	}
	return n, s, nil
}

func (e *Engine) save(ctx context.Context, id int, s *sheet.Sheet) error {
	if err := e.store.Save(ctx, id, s); err != nil {
		return fmt.Errorf("saving sheet %d: %w", id, err)
	}
	return nil
}

func characterNotFound(id string) error {
	return gameerr.New(ErrCharacterNotFound, "PC属性文件“./pcstats/pc_file%s.txt”未找到。", strings.TrimSpace(id))
}

// evalAmount evaluates a loss or delta term: anything containing a die is
// rolled, anything else must be a signed integer literal.
func (e *Engine) evalAmount(expr string) (int, error) {
	s := strings.TrimSpace(expr)
	if strings.ContainsAny(s, "dD") {
		r, err := e.roller.RollExpr(s)
		if err != nil {
			return 0, err
		}
		return r.Total, nil
	}
	return parseDelta(expr)
}

// parseDelta reads a signed integer literal no larger in magnitude than
// dice.MaxStatic.
func parseDelta(expr string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(expr))
	if err != nil || v > dice.MaxStatic || v < -dice.MaxStatic {
		return 0, gameerr.New(ErrInvalidAdjustment, "调整值“%s”无效，应为整数或骰子表达式。", expr)
	}
	return v, nil
}

// clampAdd returns cur+delta limited to [0, limit], saturating instead of
// wrapping when a stored value sits near the edge of int.
func clampAdd(cur, delta, limit int) int {
	switch {
	case delta > 0 && cur > math.MaxInt-delta:
		return max(0, limit)
	case delta < 0 && cur < math.MinInt-delta:
		return 0
	}
	return max(0, min(cur+delta, limit))
}
