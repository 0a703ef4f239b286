package http

import (
	"github.com/printzz/printzz/internal/config"
	"github.com/printzz/printzz/internal/logger"
	"github.com/printzz/printzz/internal/metrics"
	"github.com/printzz/printzz/internal/service"
)

const defaultMaxUploadSize = 32 << 20

type Handler struct {
	services *service.Services
	metrics  *metrics.Metrics

	// printerKey enables X-Printer-Signature checks on printer routes.
	printerKey    string
	maxUploadSize int64

	logger *logger.Logger
}

func NewHandler(services *service.Services, m *metrics.Metrics, cfg *config.StructuredConfig, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")

	maxUploadSize := cfg.Server.MaxUploadSize
	if maxUploadSize <= 0 {
		maxUploadSize = defaultMaxUploadSize
	}

	return &Handler{
		services:      services,
		metrics:       m,
		printerKey:    cfg.App.PrinterKey,
		maxUploadSize: maxUploadSize,
		logger:        logger,
	}
}
