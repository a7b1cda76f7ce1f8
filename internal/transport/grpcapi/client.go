package grpcapi

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// Client calls the Dice service.
type Client struct {
	cc grpc.ClientConnInterface
}

// NewClient wraps an established connection.
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// Roll sends a raw request struct.
func (c *Client) Roll(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, RollMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// RollLine sends a typed command line, such as "rd 1 spot" or "3d6+2".
func (c *Client) RollLine(ctx context.Context, line, ip, at string) (*structpb.Struct, error) {
	in, err := structpb.NewStruct(map[string]any{"line": line, "ip": ip, "time": at})
	if err != nil {
		return nil, err
	}
	return c.Roll(ctx, in)
}
