package engine_test

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/keeper/internal/game/dice"
	"github.com/cory-johannsen/keeper/internal/game/dice/dicetest"
	"github.com/cory-johannsen/keeper/internal/game/engine"
	"github.com/cory-johannsen/keeper/internal/game/sheet"
)

func wounded() sheets {
	return sheets{4: {
		{Name: "hp", Value: 12},
		{Name: "current_hp", Value: 10},
	}}
}

func TestAdjustHP(t *testing.T) {
	tests := []struct {
		name  string
		expr  string
		delta int
		want  int
	}{
		{"dice damage", "-1d6", -4, 6},
		{"dice healing capped", "+1d6", 4, 12},
		{"unsigned dice heal", "1d6", 4, 12},
		{"integer damage floored", "-20", -20, 0},
		{"integer healing", "+1", 1, 11},
		{"unsigned integer", "2", 2, 12},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// every d6 shows 4
			eng, store := newEngine(t, dicetest.Fixed(3), wounded())
			adj, err := eng.AdjustHP(context.Background(), "4", tc.expr)
			require.NoError(t, err)
			require.NotNil(t, adj)
			assert.Equal(t, tc.delta, adj.Delta)
			assert.Equal(t, tc.want, adj.Remaining)
			assert.Equal(t, tc.want, stored(t, store, 4, "current_hp"))
			assert.Equal(t, 12, stored(t, store, 4, "hp"))
		})
	}
}

func TestAdjustHP_JSON(t *testing.T) {
	eng, _ := newEngine(t, dicetest.Fixed(3), wounded())
	adj, err := eng.AdjustHP(context.Background(), "4", "-1d6")
	require.NoError(t, err)
	b, err := json.Marshal(adj)
	require.NoError(t, err)
	assert.JSONEq(t, `["-1d6", -4, 6]`, string(b))
}

func TestAdjustHP_FallsBackToBase(t *testing.T) {
	eng, store := newEngine(t, dicetest.Fixed(0), sheets{4: {{Name: "HP", Value: 12}}})
	adj, err := eng.AdjustHP(context.Background(), "4", "-2")
	require.NoError(t, err)
	assert.Equal(t, 10, adj.Remaining)
	assert.Equal(t, 10, stored(t, store, 4, "current_hp"))
}

func TestAdjustHP_MissingHP(t *testing.T) {
	eng, _ := newEngine(t, dicetest.Fixed(0), sheets{4: {{Name: "san", Value: 50}}})
	_, err := eng.AdjustHP(context.Background(), "4", "-1")
	require.ErrorIs(t, err, engine.ErrSkillNotFound)
	assert.Equal(t, "HP属性未找到。", err.Error())
}

func TestAdjustHP_MissingSheet(t *testing.T) {
	eng, _ := newEngine(t, dicetest.Fixed(0), nil)
	adj, err := eng.AdjustHP(context.Background(), "4", "-1d6")
	assert.NoError(t, err)
	assert.Nil(t, adj)
}

func TestAdjustHP_InvalidExpression(t *testing.T) {
	eng, store := newEngine(t, dicetest.Fixed(0), wounded())

	_, err := eng.AdjustHP(context.Background(), "4", "-1d7")
	assert.ErrorIs(t, err, dice.ErrInvalidExpression)

	_, err = eng.AdjustHP(context.Background(), "4", "ouch")
	assert.ErrorIs(t, err, engine.ErrInvalidAdjustment)

	assert.Equal(t, 10, stored(t, store, 4, "current_hp"))
}

func TestAdjustHP_LiteralOutOfRange(t *testing.T) {
	eng, store := newEngine(t, dicetest.Fixed(0), wounded())

	for _, expr := range []string{"+9223372036854775807", "-1000001", "99999999999999999999"} {
		_, err := eng.AdjustHP(context.Background(), "4", expr)
		assert.ErrorIs(t, err, engine.ErrInvalidAdjustment, expr)
	}
	assert.Equal(t, 10, stored(t, store, 4, "current_hp"))

	adj, err := eng.AdjustHP(context.Background(), "4", "+1000000")
	require.NoError(t, err)
	assert.Equal(t, 12, adj.Remaining)
}

func TestAdjustHP_SaturatesStoredExtremes(t *testing.T) {
	tests := []struct {
		name    string
		current int
		expr    string
		want    int
	}{
		{"heal at max int", math.MaxInt, "+5", 12},
		{"damage at min int", math.MinInt, "-5", 0},
		{"heal at min int", math.MinInt, "+5", 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			eng, store := newEngine(t, dicetest.Fixed(0), sheets{4: {
				{Name: "hp", Value: 12},
				{Name: "current_hp", Value: tc.current},
			}})
			adj, err := eng.AdjustHP(context.Background(), "4", tc.expr)
			require.NoError(t, err)
			assert.Equal(t, tc.want, adj.Remaining)
			assert.Equal(t, tc.want, stored(t, store, 4, "current_hp"))
		})
	}
}

func TestProperty_HitPointsStayInRange(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		limit := rapid.IntRange(1, 30).Draw(rt, "hp")
		current := rapid.IntRange(0, limit).Draw(rt, "current")
		count := rapid.IntRange(1, 5).Draw(rt, "count")
		sign := rapid.SampledFrom([]string{"", "+", "-"}).Draw(rt, "sign")
		face := rapid.IntRange(0, 5).Draw(rt, "face")

		store := sheet.NewMemoryStore()
		s := sheet.FromEntries([]sheet.Entry{{Name: "hp", Value: limit}, {Name: "current_hp", Value: current}})
		require.NoError(rt, store.Save(context.Background(), 1, s))
		eng := engine.New(store, dice.NewLoggedRoller(dicetest.Fixed(face), zap.NewNop()), zap.NewNop())

		adj, err := eng.AdjustHP(context.Background(), "1", fmt.Sprintf("%s%dd6", sign, count))
		require.NoError(rt, err)
		assert.GreaterOrEqual(rt, adj.Remaining, 0)
		assert.LessOrEqual(rt, adj.Remaining, limit)
	})
}
