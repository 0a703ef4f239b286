package handler

import (
	"github.com/printzz/printzz/internal/config"
	"github.com/printzz/printzz/internal/handler/grpc"
	"github.com/printzz/printzz/internal/handler/http"
	"github.com/printzz/printzz/internal/logger"
	"github.com/printzz/printzz/internal/metrics"
	"github.com/printzz/printzz/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
	GRPC *grpc.Handler
}

func NewHandlers(services *service.Services, m *metrics.Metrics, cfg *config.StructuredConfig, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{}

	if cfg.Server.HTTPAddress != "" {
		handlers.HTTP = http.NewHandler(services, m, cfg, logger)
	}
	if cfg.Server.GRPCAddress != "" {
		handlers.GRPC = grpc.NewHandler(services, logger)
	}

	if handlers.HTTP == nil && handlers.GRPC == nil {
		return nil, errNoHandlersAreCreated
	}

	return handlers, nil
}
