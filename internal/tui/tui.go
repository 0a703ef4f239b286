package tui

import (
	"context"
	"errors"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/printzz/printzz/models"
)

// TUI runs the interactive views on a terminal.
type TUI struct {
	in  io.Reader
	out io.Writer

	pollInterval time.Duration
}

// New returns a TUI bound to in and out. pollInterval paces the watcher.
func New(in io.Reader, out io.Writer, pollInterval time.Duration) *TUI {
	if pollInterval <= 0 {
		pollInterval = time.Second
	}
	return &TUI{in: in, out: out, pollInterval: pollInterval}
}

// PromptCredentials asks for a username and a password. A non-empty
// username is pre-filled and focus starts on the password.
func (t *TUI) PromptCredentials(ctx context.Context, title, username string) (models.User, error) {
	finalModel, err := t.run(ctx, newCredentialsModel(title, username))
	if err != nil {
		return models.User{}, err
	}

	result, ok := finalModel.(credentialsModel)
	if !ok {
		return models.User{}, tea.ErrProgramKilled
	}
	if result.quitByUser || !result.done {
		return models.User{}, ErrUserQuit
	}
	return result.user(), nil
}

// WatchDocument shows the progress of docID until it leaves the queue.
func (t *TUI) WatchDocument(ctx context.Context, docID string, fetch FetchFunc) error {
	finalModel, err := t.run(ctx, newWatchModel(ctx, docID, fetch, t.pollInterval))
	if err != nil {
		return err
	}

	result, ok := finalModel.(watchModel)
	if !ok {
		return tea.ErrProgramKilled
	}
	if result.quitByUser {
		return ErrUserQuit
	}
	return result.err
}

func (t *TUI) run(ctx context.Context, model tea.Model) (tea.Model, error) {
	finalModel, err := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithInput(t.in),
		tea.WithOutput(t.out),
	).Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil, ctx.Err()
	}
	return finalModel, err
}
