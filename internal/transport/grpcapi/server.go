package grpcapi

import (
	"fmt"
	"net"

	"go.uber.org/zap"
	"google.golang.org/grpc"
)

// Server runs the Dice service as a lifecycle service.
type Server struct {
	addr   string
	grpc   *grpc.Server
	logger *zap.Logger
}

// NewServer creates a Server for svc listening on addr.
func NewServer(addr string, svc DiceServer, logger *zap.Logger) *Server {
	s := grpc.NewServer()
	Register(s, svc)
	return &Server{addr: addr, grpc: s, logger: logger}
}

// Start listens on the configured address and serves until Stop.
func (s *Server) Start() error {
	lis, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.addr, err)
	}
	return s.Serve(lis)
}

// Serve accepts connections on lis until Stop.
func (s *Server) Serve(lis net.Listener) error {
	s.logger.Info("gRPC server listening", zap.String("addr", lis.Addr().String()))
	return s.grpc.Serve(lis)
}

// Stop drains in-flight calls and stops the server.
func (s *Server) Stop() {
	s.grpc.GracefulStop()
}
