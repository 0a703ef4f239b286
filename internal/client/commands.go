package client

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/printzz/printzz/internal/adapter"
	"github.com/printzz/printzz/internal/tui"
	"github.com/printzz/printzz/models"
)

func (a *App) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.out)
	return fs
}

// parse parses args and checks the number of positional arguments.
func parse(fs *flag.FlagSet, args []string, positional int) error {
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}
	if fs.NArg() != positional {
		return fmt.Errorf("%w: %s expects %d argument(s), got %d", ErrUsage, fs.Name(), positional, fs.NArg())
	}
	return nil
}

// ── auth ──

func (a *App) register(ctx context.Context, args []string) error {
	user, err := a.credentials(ctx, "register", "Create a printzz account", args)
	if err != nil {
		return err
	}

	registered, err := a.adapter.Register(ctx, user)
	if errors.Is(err, adapter.ErrConflict) {
		return fmt.Errorf("%w: %s", ErrUsernameTaken, user.Username)
	}
	if err != nil {
		return fmt.Errorf("register: %w", err)
	}
	return a.startSession(registered)
}

func (a *App) login(ctx context.Context, args []string) error {
	user, err := a.credentials(ctx, "login", "Log in to printzz", args)
	if err != nil {
		return err
	}

	loggedIn, err := a.adapter.Login(ctx, user)
	if errors.Is(err, adapter.ErrUnauthorized) {
		return ErrInvalidCredentials
	}
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	return a.startSession(loggedIn)
}

// credentials takes -u and -p from args and prompts for whatever is missing.
func (a *App) credentials(ctx context.Context, name, title string, args []string) (models.User, error) {
	fs := a.newFlagSet(name)
	username := fs.String("u", "", "username")
	password := fs.String("p", "", "password")
	if err := parse(fs, args, 0); err != nil {
		return models.User{}, err
	}

	if *username != "" && *password != "" {
		return models.User{Username: *username, Password: *password}, nil
	}
	return a.ui.PromptCredentials(ctx, title, *username)
}

func (a *App) startSession(user models.User) error {
	token := a.adapter.Token()
	if token == "" {
		return fmt.Errorf("server returned no token for %s", user.Username)
	}
	if err := a.tokens.Save(token); err != nil {
		return err
	}

	a.logger.Info().Str("user_id", user.UserID).Msg("session started")
	fmt.Fprint(a.out, tui.RenderUser(user))
	return nil
}

func (a *App) logout(_ context.Context, args []string) error {
	if err := parse(a.newFlagSet("logout"), args, 0); err != nil {
		return err
	}
	if err := a.tokens.Clear(); err != nil {
		return err
	}
	a.adapter.SetToken("")
	fmt.Fprint(a.out, tui.RenderOK("logged out"))
	return nil
}

func (a *App) me(ctx context.Context, args []string) error {
	if err := parse(a.newFlagSet("me"), args, 0); err != nil {
		return err
	}

	user, err := a.adapter.Me(ctx)
	if err != nil {
		return fmt.Errorf("me: %w", err)
	}
	fmt.Fprint(a.out, tui.RenderUser(user))
	return nil
}

func (a *App) token(_ context.Context, args []string) error {
	fs := a.newFlagSet("token")
	copyToClipboard := fs.Bool("copy", false, "copy the token to the clipboard instead of printing it")
	if err := parse(fs, args, 0); err != nil {
		return err
	}

	if !*copyToClipboard {
		fmt.Fprintln(a.out, a.adapter.Token())
		return nil
	}
	if err := a.clip.WriteAll(a.adapter.Token()); err != nil {
		return fmt.Errorf("copy token: %w", err)
	}
	fmt.Fprint(a.out, tui.RenderOK("token copied to clipboard"))
	return nil
}

// ── documents ──

func (a *App) submit(ctx context.Context, args []string) error {
	fs := a.newFlagSet("submit")
	copies := fs.Int("copies", 1, "number of copies")
	doubleSided := fs.String("double-sided", "none", "none, long_edge or short_edge")
	color := fs.Bool("color", true, "print in color")
	name := fs.String("name", "", "document name shown in the queue (default: file name)")
	watch := fs.Bool("watch", false, "follow the document until it is printed")
	if err := parse(fs, args, 2); err != nil {
		return err
	}

	mode, err := models.ParseDoubleSided(*doubleSided)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}

	printerID, path := fs.Arg(0), fs.Arg(1)
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open document: %w", err)
	}
	defer file.Close()

	fileName := *name
	if fileName == "" {
		fileName = filepath.Base(path)
	}

	req := models.SubmitRequest{
		PrinterID: printerID,
		FileName:  fileName,
		Settings:  models.PrintSettings{Copies: *copies, DoubleSided: mode, Color: *color},
	}
	docID, err := a.adapter.Submit(ctx, req, file)
	if errors.Is(err, adapter.ErrConflict) {
		return fmt.Errorf("%w: %s already has a pending document, try again later", ErrPrinterBusy, printerID)
	}
	if err != nil {
		return fmt.Errorf("submit: %w", err)
	}

	a.logger.Info().Str("doc_id", docID).Str("printer_id", printerID).Msg("document queued")
	fmt.Fprint(a.out, tui.RenderOK(fmt.Sprintf("queued %s on %s", docID, printerID)))

	if *watch {
		return a.ui.WatchDocument(ctx, docID, a.adapter.ListDocuments)
	}
	return nil
}

func (a *App) list(ctx context.Context, args []string) error {
	if err := parse(a.newFlagSet("list"), args, 0); err != nil {
		return err
	}

	docs, err := a.adapter.ListDocuments(ctx)
	if err != nil {
		return fmt.Errorf("list documents: %w", err)
	}
	fmt.Fprint(a.out, tui.RenderDocuments(docs))
	return nil
}

func (a *App) cancel(ctx context.Context, args []string) error {
	fs := a.newFlagSet("cancel")
	printerID := fs.String("printer", "", "printer the document is queued on")
	if err := parse(fs, args, 1); err != nil {
		return err
	}

	docID := fs.Arg(0)
	if err := a.adapter.Cancel(ctx, *printerID, docID); err != nil {
		return fmt.Errorf("cancel %s: %w", docID, err)
	}
	fmt.Fprint(a.out, tui.RenderOK("cancelled "+docID))
	return nil
}

func (a *App) watch(ctx context.Context, args []string) error {
	fs := a.newFlagSet("watch")
	if err := parse(fs, args, 1); err != nil {
		return err
	}
	return a.ui.WatchDocument(ctx, fs.Arg(0), a.adapter.ListDocuments)
}

// ── misc ──

func (a *App) version(ctx context.Context, args []string) error {
	if err := parse(a.newFlagSet("version"), args, 0); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "client %s\n", a.buildInfo)

	v, err := a.adapter.Version(ctx)
	if err != nil {
		return fmt.Errorf("server version: %w", err)
	}
	fmt.Fprint(a.out, tui.RenderVersion(v))
	return nil
}
