package gameerr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cory-johannsen/keeper/internal/game/gameerr"
)

var errKind = errors.New("kind")

func TestNew_MatchesKind(t *testing.T) {
	err := gameerr.New(errKind, "技能“%s”未找到。", "spot")
	assert.ErrorIs(t, err, errKind)
	assert.Equal(t, "技能“spot”未找到。", err.Error())
}

func TestMessage_ThroughWrapping(t *testing.T) {
	err := fmt.Errorf("rolling: %w", gameerr.New(errKind, "boom"))
	msg, ok := gameerr.Message(err)
	assert.True(t, ok)
	assert.Equal(t, "boom", msg)
}

func TestMessage_PlainError(t *testing.T) {
	_, ok := gameerr.Message(errors.New("plain"))
	assert.False(t, ok)
}
