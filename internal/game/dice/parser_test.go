package dice_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/keeper/internal/game/dice"
	"github.com/cory-johannsen/keeper/internal/game/gameerr"
)

func TestParse_Valid(t *testing.T) {
	tests := []struct {
		expr  string
		terms []dice.Term
	}{
		{"d20", []dice.Term{{Sign: 1, Count: 1, Sides: 20}}},
		{"3d6", []dice.Term{{Sign: 1, Count: 3, Sides: 6}}},
		{"3D6+2d4-1", []dice.Term{
			{Sign: 1, Count: 3, Sides: 6},
			{Sign: 1, Count: 2, Sides: 4},
			{Sign: -1, Static: 1},
		}},
		{"1d100-1d10", []dice.Term{
			{Sign: 1, Count: 1, Sides: 100},
			{Sign: -1, Count: 1, Sides: 10},
		}},
		{"5", []dice.Term{{Sign: 1, Static: 5}}},
		{"1d3+0", []dice.Term{{Sign: 1, Count: 1, Sides: 3}, {Sign: 1, Static: 0}}},
		{"0d6+1000000", []dice.Term{{Sign: 1, Count: 0, Sides: 6}, {Sign: 1, Static: dice.MaxStatic}}},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			e, err := dice.Parse(tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.expr, e.Raw)
			assert.Equal(t, tt.terms, e.Terms)
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	for _, expr := range []string{"", "d", "3d", "abc", "1d6+", "+1d6", "1d6++2", "2x6", "101d6", "1d6 +2", "-3", "1000001", "1d6+9000000000000000000", "99999999999999999999"} {
		t.Run(expr, func(t *testing.T) {
			_, err := dice.Parse(expr)
			require.Error(t, err)
			assert.ErrorIs(t, err, dice.ErrInvalidExpression)
			msg, ok := gameerr.Message(err)
			require.True(t, ok)
			assert.Equal(t, "输入指令无效，请点击“操作指引”获取帮助。", msg)
		})
	}
}

func TestParse_InvalidSides(t *testing.T) {
	_, err := dice.Parse("2d7+1")
	require.Error(t, err)
	assert.ErrorIs(t, err, dice.ErrInvalidExpression)
	assert.Equal(t,
		"不存在这样的骰子哦：d7。在这个维度中只存在以下这些骰子：{2, 3, 100, 4, 6, 8, 10, 20}",
		err.Error())
}

func TestParse_EveryValidSide(t *testing.T) {
	for _, sides := range dice.ValidSides {
		e := dice.MustParse("1d" + strconv.Itoa(sides))
		assert.Equal(t, sides, e.Terms[0].Sides)
	}
}

func TestMustParse_Panics(t *testing.T) {
	assert.Panics(t, func() { dice.MustParse("1d5") })
}
