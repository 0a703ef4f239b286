package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/printzz/printzz/internal/adapter"
	"github.com/printzz/printzz/internal/agent"
	"github.com/printzz/printzz/internal/config"
	"github.com/printzz/printzz/internal/logger"
	"github.com/printzz/printzz/internal/metrics"
	"github.com/printzz/printzz/internal/printer"
	"github.com/printzz/printzz/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	cfg, err := config.GetAgentConfig()
	if err != nil {
		logger.NewLogger("printzz-agent").Fatal().Err(err).Msg("error getting configs")
	}

	log := logger.NewFileLogger("printzz-agent", cfg.Agent.LogFile)

	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server adapter")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	if version, err := serverAdapter.Version(ctx); err != nil {
		log.Warn().Err(err).Msg("server is not reachable yet")
	} else {
		log.Info().Str("server_version", version.Version).Msg("connected to server")
	}

	m := metrics.New()
	poller := agent.NewPoller(serverAdapter, printer.NewLPPrinter(cfg.Agent.PrintCommand, log), cfg.Agent, m, log)

	ws := workers.NewWorkers(poller)
	if cfg.Agent.MetricsAddress != "" {
		ws.Add(metricsWorker(cfg.Agent.MetricsAddress, m, log))
	}

	if err = ws.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("agent stopped with error")
	}
	log.Info().Msg("agent stopped")
}

// metricsWorker serves /metrics until ctx is cancelled.
func metricsWorker(address string, m *metrics.Metrics, log *logger.Logger) workers.Worker {
	return workers.Func(func(ctx context.Context) error {
		mux := http.NewServeMux()
		mux.Handle("/metrics", m.Handler())
		srv := &http.Server{Addr: address, Handler: mux, ReadHeaderTimeout: 10 * time.Second}

		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()

		log.Info().Str("address", address).Msg("serving agent metrics")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
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
