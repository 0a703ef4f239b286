package server

import (
	"context"
	"net"
	"sync"

	"google.golang.org/grpc"

	"github.com/printzz/printzz/internal/config"
	grpcHandler "github.com/printzz/printzz/internal/handler/grpc"
	"github.com/printzz/printzz/internal/logger"
)

type grpcServer struct {
	handler *grpcHandler.Handler
	address string

	server *grpc.Server

	mu       sync.Mutex
	listener net.Listener

	logger *logger.Logger
}

func newGRPCServer(handler *grpcHandler.Handler, cfg config.Server, logger *logger.Logger) *grpcServer {
	srv := grpc.NewServer(grpc.UnaryInterceptor(handler.UnaryLogger))
	handler.Register(srv)

	return &grpcServer{
		handler: handler,
		address: cfg.GRPCAddress,
		server:  srv,
		logger:  logger,
	}
}

func (g *grpcServer) serve() error {
	ln, err := net.Listen("tcp", g.address)
	if err != nil {
		return err
	}
	g.mu.Lock()
	g.listener = ln
	g.mu.Unlock()

	g.logger.Info().Str("address", ln.Addr().String()).Msg("gRPC server listening")
	return g.server.Serve(ln)
}

// shutdown drains in-flight calls and falls back to a hard stop when ctx
// expires first.
func (g *grpcServer) shutdown(ctx context.Context) error {
	g.logger.Info().Msg("gRPC server Shutdown")
	g.handler.Shutdown()

	stopped := make(chan struct{})
	go func() {
		g.server.GracefulStop()
		close(stopped)
	}()

	select {
	case <-stopped:
		return nil
	case <-ctx.Done():
		g.server.Stop()
		<-stopped
		return ctx.Err()
	}
}

func (g *grpcServer) name() string {
	return "grpc"
}

func (g *grpcServer) addr() net.Addr {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.listener == nil {
		return nil
	}
	return g.listener.Addr()
}
