package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/printzz/printzz/internal/logger"
	"github.com/printzz/printzz/internal/service"
)

// QueueServiceName is the health service name reported for the print queue.
// The empty name reports the server as a whole.
const QueueServiceName = "printzz.Queue"

// Handler is the root gRPC transport handler. It serves the standard
// grpc.health.v1 service.
type Handler struct {
	services *service.Services
	health   *health.Server

	logger *logger.Logger
}

// NewHandler returns a handler reporting SERVING for the server and the queue.
func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	logger.Debug().Msg("gRPC handler created")

	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	hs.SetServingStatus(QueueServiceName, healthpb.HealthCheckResponse_SERVING)

	return &Handler{
		services: services,
		health:   hs,
		logger:   logger,
	}
}

// Register installs every service of the handler on srv.
func (h *Handler) Register(srv *grpc.Server) {
	healthpb.RegisterHealthServer(srv, h.health)
}

// Shutdown flips every status to NOT_SERVING so probes fail while the server
// drains.
func (h *Handler) Shutdown() {
	h.logger.Info().Msg("gRPC health set to NOT_SERVING")
	h.health.Shutdown()
}

// UnaryLogger logs every unary call with its method, duration and code.
func (h *Handler) UnaryLogger(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	log := h.logger.GetChildLogger()
	ctx = log.WithContext(ctx)

	resp, err := handler(ctx, req)
	if err != nil {
		log.Debug().Err(err).Str("method", info.FullMethod).Msg("gRPC call failed")
		return resp, err
	}
	log.Debug().Str("method", info.FullMethod).Msg("gRPC call")
	return resp, nil
}
