package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/printzz/printzz/internal/config"
	"github.com/printzz/printzz/internal/handler"
	"github.com/printzz/printzz/internal/locker"
	"github.com/printzz/printzz/internal/logger"
	"github.com/printzz/printzz/internal/metrics"
	"github.com/printzz/printzz/internal/server"
	"github.com/printzz/printzz/internal/service"
	"github.com/printzz/printzz/internal/store"
	"github.com/printzz/printzz/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("printzz-server")
	cfg, err := config.GetServerConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer storages.Close()

	lock, err := newLocker(ctx, cfg.Storage.Lock, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating locker")
	}

	m := metrics.New()
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)

	services, err := service.NewServices(storages, lock, m, cfg, buildInfo, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, m, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	janitor := service.NewJanitor(services.QueueService, cfg.Workers.JanitorInterval.Std(), cfg.Workers.JanitorGrace.Std(), log)

	srv, err := server.NewServer(handlers, cfg.Server, log, janitor)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	if err = srv.Run(ctx); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
	}
}

// newLocker picks the Redis locker when a URL is configured so several
// server replicas can share one queue.
func newLocker(ctx context.Context, cfg config.Lock, log *logger.Logger) (locker.Locker, error) {
	if cfg.RedisURL == "" {
		log.Info().Msg("using in-process locker")
		return locker.NewLocalLocker(), nil
	}
	return locker.NewRedisLocker(ctx, cfg.RedisURL, cfg.TTL.Std(), log)
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
