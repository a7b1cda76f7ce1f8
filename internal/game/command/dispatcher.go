package command

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/keeper/internal/game/dice"
	"github.com/cory-johannsen/keeper/internal/game/engine"
	"github.com/cory-johannsen/keeper/internal/game/gameerr"
)

// MaxArgs is the number of positional arguments a request carries.
const MaxArgs = 6

// UnknownCommandMessage is reported for unrecognized commands, missing
// arguments and any failure that has no message of its own.
const UnknownCommandMessage = "无法识别命令，点击“操作指引”获取指令帮助。"

// ErrUnknownCommand is returned for an unrecognized token or missing required arguments.
var ErrUnknownCommand = errors.New("unknown command")

// Request is one command as received from a transport.
type Request struct {
	Command string
	Args    [MaxArgs]string
	IP      string
	Time    string
}

// Arg returns the i-th argument, counting from 1, with surrounding whitespace
// removed. Out-of-range positions read as empty.
func (r Request) Arg(i int) string {
	if i < 1 || i > MaxArgs {
		return ""
	}
	return strings.TrimSpace(r.Args[i-1])
}

// leading returns the arguments up to the first empty one.
func (r Request) leading() []string {
	var args []string
	for i := 1; i <= MaxArgs; i++ {
		a := r.Arg(i)
		if a == "" {
			break
		}
		args = append(args, a)
	}
	return args
}

// Response is the broadcast envelope for a resolved command.
type Response struct {
	ID      uuid.UUID `json:"id"`
	Command string    `json:"command"`
	Result  any       `json:"result"`
	IP      string    `json:"ip"`
	Time    string    `json:"time"`
}

// Broadcaster fans an encoded message out to every observer.
type Broadcaster interface {
	Broadcast(msg []byte)
}

// Dispatcher resolves commands against the engine and broadcasts each result.
type Dispatcher struct {
	registry    *Registry
	engine      *engine.Engine
	roller      *dice.Roller
	broadcaster Broadcaster
	logger      *zap.Logger
}

// NewDispatcher creates a Dispatcher.
//
// Precondition: registry, eng, roller and logger must be non-nil. broadcaster
// may be nil, in which case results are only returned.
func NewDispatcher(registry *Registry, eng *engine.Engine, roller *dice.Roller, broadcaster Broadcaster, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		registry:    registry,
		engine:      eng,
		roller:      roller,
		broadcaster: broadcaster,
		logger:      logger,
	}
}

// Dispatch routes req to its engine operation, broadcasts the encoded
// Response, and returns it. The command token is echoed as received.
//
// Postcondition: On error nothing is broadcast; Message(err) is the text to
// show the caller.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) (Response, error) {
	result, err := d.execute(ctx, req)
	if err != nil {
		d.logger.Error("command failed",
			zap.String("command", req.Command),
			zap.Strings("args", req.leading()),
			zap.String("message", Message(err)),
			zap.Error(err),
		)
		return Response{}, err
	}

	resp := Response{
		ID:      uuid.New(),
		Command: req.Command,
		Result:  result,
		IP:      req.IP,
		Time:    req.Time,
	}
	msg, err := json.Marshal(resp)
	if err != nil {
		return Response{}, fmt.Errorf("encoding response: %w", err)
	}
	if d.broadcaster != nil {
		d.broadcaster.Broadcast(msg)
	}
	d.logger.Debug("command resolved",
		zap.Stringer("id", resp.ID),
		zap.String("command", req.Command),
		zap.ByteString("response", msg),
	)
	return resp, nil
}

func (d *Dispatcher) execute(ctx context.Context, req Request) (any, error) {
	cmd, ok := d.registry.Resolve(req.Command)
	if !ok || len(req.leading()) < cmd.MinArgs {
		return nil, gameerr.New(ErrUnknownCommand, UnknownCommandMessage)
	}
	a1, a2, a3 := req.Arg(1), req.Arg(2), req.Arg(3)

	switch cmd.Handler {
	case HandlerRoll:
		return d.roller.RollExpr(a1)

	case HandlerPercentile:
		m, err := dice.ParseModifier(a1)
		if err != nil {
			return nil, err
		}
		return d.roller.RollPercentile(m), nil

	case HandlerSkill:
		m := 0
		if a3 != "" {
			var err error
			if m, err = strconv.Atoi(a3); err != nil {
				return nil, gameerr.New(dice.ErrInvalidModifier, "不合法的修正数值，修正数值为奖励骰的数量减去惩罚骰的数量。")
			}
		}
		return d.engine.RollSkill(ctx, a1, a2, m)

	case HandlerSecret:
		return d.roller.Secret(a1)

	case HandlerRival, HandlerStrictRival:
		return d.engine.ResolveRival(ctx, cmd.Handler == HandlerStrictRival, req.leading())

	case HandlerSanity:
		if a3 != "" {
			return deref(d.engine.SanCheck(ctx, a1, a2, a3))
		}
		return deref(d.engine.AdjustSanity(ctx, a1, a2))

	case HandlerHP:
		return deref(d.engine.AdjustHP(ctx, a1, a2))

	case HandlerStat:
		return d.engine.GetStat(ctx, a1, a2), nil
	}
	return nil, fmt.Errorf("command %q has no handler %q", cmd.Name, cmd.Handler)
}

// deref turns the engine's (nil, nil) silent no-op into an untyped nil result.
func deref[T any](v *T, err error) (any, error) {
	if err != nil || v == nil {
		return nil, err
	}
	return *v, nil
}

// Message returns the caller-facing text for a Dispatch error: the rule
// failure's own message, or UnknownCommandMessage for anything else.
func Message(err error) string {
	if msg, ok := gameerr.Message(err); ok {
		return msg
	}
	return UnknownCommandMessage
}
