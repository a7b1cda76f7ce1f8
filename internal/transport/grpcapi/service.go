// Package grpcapi serves the dice dispatcher over gRPC. The service has a
// single unary method whose request and response are google.protobuf.Struct
// values carrying the same fields as the HTTP API.
package grpcapi

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/cory-johannsen/keeper/internal/game/command"
)

// ServiceName is the fully-qualified gRPC service name.
const ServiceName = "keeper.v1.Dice"

// RollMethod is the full method path of Roll.
const RollMethod = "/" + ServiceName + "/Roll"

// DiceServer resolves commands received over gRPC.
type DiceServer interface {
	Roll(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

// Dispatcher resolves a command request.
type Dispatcher interface {
	Dispatch(ctx context.Context, req command.Request) (command.Response, error)
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*DiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Roll", Handler: rollHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "keeper/v1/dice.proto",
}

func rollHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DiceServer).Roll(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: RollMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(DiceServer).Roll(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// Register adds srv to s under ServiceName.
func Register(s grpc.ServiceRegistrar, srv DiceServer) {
	s.RegisterService(&serviceDesc, srv)
}

// Service implements DiceServer on top of a Dispatcher.
type Service struct {
	dispatcher Dispatcher
	logger     *zap.Logger
}

// NewService creates a Service.
//
// Precondition: dispatcher and logger must be non-nil.
func NewService(dispatcher Dispatcher, logger *zap.Logger) *Service {
	return &Service{dispatcher: dispatcher, logger: logger}
}

// Roll dispatches one command. The request either names the command and its
// a1..a6 arguments, or carries the whole typed text in "line". Rule failures
// come back as InvalidArgument with the player-facing message.
func (s *Service) Roll(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	req := requestFromStruct(in)
	resp, err := s.dispatcher.Dispatch(ctx, req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, command.Message(err))
	}

	raw, err := json.Marshal(resp)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encoding response: %v", err)
	}
	out := &structpb.Struct{}
	if err := protojson.Unmarshal(raw, out); err != nil {
		return nil, status.Errorf(codes.Internal, "converting response: %v", err)
	}
	s.logger.Debug("grpc command resolved",
		zap.String("command", req.Command),
		zap.Stringer("id", resp.ID),
	)
	return out, nil
}

func requestFromStruct(in *structpb.Struct) command.Request {
	field := func(name string) string {
		return in.GetFields()[name].GetStringValue()
	}

	var req command.Request
	if line := field("line"); line != "" {
		req = command.ParseRequest(line)
	} else {
		req.Command = field("command")
		for i := range req.Args {
			req.Args[i] = field(fmt.Sprintf("a%d", i+1))
		}
	}
	req.IP = field("ip")
	req.Time = field("time")
	return req
}
