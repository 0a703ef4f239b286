package server

import (
	"context"
	"fmt"
	"time"

	"github.com/printzz/printzz/internal/config"
	"github.com/printzz/printzz/internal/handler"
	"github.com/printzz/printzz/internal/logger"
	"github.com/printzz/printzz/internal/workers"
)

// shutdownTimeout bounds the graceful stop of each transport.
const shutdownTimeout = 15 * time.Second

type server struct {
	httpServer *httpServer
	gRPCServer *grpcServer

	// background runs next to the transports, e.g. the blob janitor.
	background []workers.Worker

	logger *logger.Logger
}

func NewServer(handlers *handler.Handlers, cfg config.Server, logger *logger.Logger, background ...workers.Worker) (Server, error) {
	logger.Info().Msg("creating new server...")
	servers := &server{background: background, logger: logger}

	if cfg.HTTPAddress != "" && handlers.HTTP != nil {
		servers.httpServer = newHTTPServer(handlers.HTTP.Init(), cfg, logger)
	}
	if cfg.GRPCAddress != "" && handlers.GRPC != nil {
		servers.gRPCServer = newGRPCServer(handlers.GRPC, cfg, logger)
	}

	if servers.httpServer == nil && servers.gRPCServer == nil {
		return nil, errNoTransports
	}

	return servers, nil
}

// Run serves until ctx is cancelled or a transport fails. Either way every
// transport is shut down before Run returns.
func (s *server) Run(ctx context.Context) error {
	ws := workers.NewWorkers(s.background...)
	for _, t := range s.transports() {
		ws.Add(s.transportWorker(t))
	}

	if err := ws.Run(ctx); err != nil {
		s.logger.Err(err).Str("func", "*server.Run").Msg("server stopped with error")
		return err
	}

	s.logger.Info().Msg("server Shutdown gracefully")
	return nil
}

func (s *server) transports() []transport {
	var ts []transport
	if s.httpServer != nil {
		ts = append(ts, s.httpServer)
	}
	if s.gRPCServer != nil {
		ts = append(ts, s.gRPCServer)
	}
	return ts
}

// transportWorker serves t until ctx is done and then shuts it down.
func (s *server) transportWorker(t transport) workers.Worker {
	return workers.Func(func(ctx context.Context) error {
		s.logger.Info().Str("transport", t.name()).Msg("launching server")

		served := make(chan error, 1)
		go func() { served <- t.serve() }()

		select {
		case err := <-served:
			if err != nil {
				return fmt.Errorf("%s server: %w", t.name(), err)
			}
			return nil
		case <-ctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()

		err := t.shutdown(shutdownCtx)
		if serveErr := <-served; serveErr != nil {
			s.logger.Err(serveErr).Str("transport", t.name()).Msg("error while serving")
		}
		if err != nil {
			return fmt.Errorf("%s server shutdown: %w", t.name(), err)
		}
		return nil
	})
}
