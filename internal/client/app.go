package client

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/printzz/printzz/internal/adapter"
	"github.com/printzz/printzz/internal/logger"
	"github.com/printzz/printzz/models"
)

const usage = `usage: printzz [global flags] <command> [flags] [args]

commands:
  register [-u username] [-p password]     create an account and log in
  login [-u username] [-p password]        log in and store the session token
  logout                                   forget the stored token
  me                                       show the logged in user
  token [-copy]                            print or copy the session token
  submit [flags] <printer_id> <file>       queue a document
      -copies N  -double-sided none|long_edge|short_edge  -color=false
      -name display_name  -watch
  list                                     show your pending documents
  cancel [-printer printer_id] <doc_id>    cancel a pending document
  watch <doc_id>                           follow a document until printed
  version                                  show client and server versions
`

type command func(ctx context.Context, args []string) error

// App is the printzz command-line application.
type App struct {
	adapter adapter.ServerAdapter
	ui      UI
	tokens  TokenStore
	clip    Clipboard

	out       io.Writer
	buildInfo models.AppBuildInfo
	logger    *logger.Logger

	commands map[string]command
}

// NewApp wires the application. out receives command output.
func NewApp(serverAdapter adapter.ServerAdapter, ui UI, tokens TokenStore, clip Clipboard,
	out io.Writer, buildInfo models.AppBuildInfo, logger *logger.Logger) *App {
	a := &App{
		adapter:   serverAdapter,
		ui:        ui,
		tokens:    tokens,
		clip:      clip,
		out:       out,
		buildInfo: buildInfo,
		logger:    logger,
	}

	a.commands = map[string]command{
		"register": a.register,
		"login":    a.login,
		"logout":   a.logout,
		"me":       a.withSession(a.me),
		"token":    a.withSession(a.token),
		"submit":   a.withSession(a.submit),
		"list":     a.withSession(a.list),
		"ls":       a.withSession(a.list),
		"cancel":   a.withSession(a.cancel),
		"watch":    a.withSession(a.watch),
		"version":  a.version,
	}
	return a
}

// Run executes the sub-command named by args[0].
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		fmt.Fprint(a.out, usage)
		return nil
	}

	cmd, ok := a.commands[args[0]]
	if !ok {
		return fmt.Errorf("%w %q\n\n%s", ErrUnknownCommand, args[0], usage)
	}

	a.restoreSession()

	log := a.logger.With().Str("command", args[0]).Logger()
	log.Debug().Strs("args", args[1:]).Msg("running command")

	if err := cmd(ctx, args[1:]); err != nil {
		log.Error().Err(err).Msg("command failed")
		return err
	}
	return nil
}

func (a *App) restoreSession() {
	token, err := a.tokens.Load()
	if err != nil {
		if !errors.Is(err, ErrNoToken) {
			a.logger.Warn().Err(err).Msg("could not load stored token")
		}
		return
	}
	a.adapter.SetToken(token)
}

// withSession rejects the command when no token is stored and turns a
// rejected token into ErrNotLoggedIn.
func (a *App) withSession(next command) command {
	return func(ctx context.Context, args []string) error {
		if a.adapter.Token() == "" {
			return ErrNotLoggedIn
		}

		err := next(ctx, args)
		if errors.Is(err, adapter.ErrUnauthorized) {
			return fmt.Errorf("%w: %w", ErrNotLoggedIn, err)
		}
		return err
	}
}
