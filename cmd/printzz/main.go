package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/printzz/printzz/internal/adapter"
	"github.com/printzz/printzz/internal/client"
	"github.com/printzz/printzz/internal/config"
	"github.com/printzz/printzz/internal/logger"
	"github.com/printzz/printzz/internal/tui"
	"github.com/printzz/printzz/models"
)

const watchInterval = time.Second

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.GetCLIConfig()
	if err != nil {
		fmt.Fprint(os.Stderr, tui.RenderError(fmt.Errorf("error getting configs: %w", err)))
		return 2
	}

	appDir, err := client.AppDir()
	if err != nil {
		fmt.Fprint(os.Stderr, tui.RenderError(err))
		return 1
	}

	// stdout belongs to command output, so the CLI only logs to a file.
	log := logger.NewFileLogger("printzz-cli", client.LogPath(appDir))

	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, log)
	if err != nil {
		fmt.Fprint(os.Stderr, tui.RenderError(err))
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	app := client.NewApp(
		serverAdapter,
		tui.New(os.Stdin, os.Stdout, watchInterval),
		client.NewFileTokenStore(client.TokenPath(appDir)),
		client.SystemClipboard{},
		os.Stdout,
		buildInfo(),
		log,
	)

	if err = app.Run(ctx, cfg.Args); err != nil {
		fmt.Fprint(os.Stderr, tui.RenderError(err))
		return 1
	}
	return 0
}

func buildInfo() models.AppBuildInfo {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}
	return models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
}
