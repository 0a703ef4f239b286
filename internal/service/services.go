package service

import (
	"github.com/printzz/printzz/internal/config"
	"github.com/printzz/printzz/internal/locker"
	"github.com/printzz/printzz/internal/logger"
	"github.com/printzz/printzz/internal/metrics"
	"github.com/printzz/printzz/internal/store"
	"github.com/printzz/printzz/internal/utils"
	"github.com/printzz/printzz/models"
)

type Services struct {
	AuthService    AuthService
	QueueService   QueueService
	AppInfoService AppInfoService
}

// NewServices wires the services of the server. The queue is wrapped so
// metrics observe every call and validation runs before storage is touched.
func NewServices(storages *store.Storages, lock locker.Locker, m *metrics.Metrics, cfg *config.StructuredConfig, buildInfo models.AppBuildInfo, logger *logger.Logger) (*Services, error) {
	idGenerator := utils.NewUUIDGenerator()

	appInfoService, err := NewAppInfoService(cfg.App, buildInfo, logger)
	if err != nil {
		return nil, err
	}

	var queueService QueueService
	queueService = NewQueueService(storages.SlotRepository, storages.BlobStorage, lock, idGenerator, logger)
	queueService = NewQueueValidationService().Wrap(queueService)
	queueService = NewQueueMetricsService(m).Wrap(queueService)

	return &Services{
		AuthService:    NewAuthService(storages.UserRepository, idGenerator, cfg.App, logger),
		QueueService:   queueService,
		AppInfoService: appInfoService,
	}, nil
}
