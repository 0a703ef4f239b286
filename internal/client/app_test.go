package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/printzz/printzz/internal/adapter"
	"github.com/printzz/printzz/internal/logger"
	"github.com/printzz/printzz/internal/mock"
	"github.com/printzz/printzz/internal/tui"
	"github.com/printzz/printzz/models"
)

// ── fakes ──

type fakeUI struct {
	user      models.User
	promptErr error
	titles    []string
	prefill   []string

	watched  []string
	watchErr error
	fetched  []models.Document
}

func (f *fakeUI) PromptCredentials(_ context.Context, title, username string) (models.User, error) {
	f.titles = append(f.titles, title)
	f.prefill = append(f.prefill, username)
	return f.user, f.promptErr
}

func (f *fakeUI) WatchDocument(ctx context.Context, docID string, fetch tui.FetchFunc) error {
	f.watched = append(f.watched, docID)
	docs, err := fetch(ctx)
	if err != nil {
		return err
	}
	f.fetched = docs
	return f.watchErr
}

type memTokens struct {
	token   string
	loadErr error
	saveErr error
	cleared bool
}

func (m *memTokens) Load() (string, error) {
	if m.loadErr != nil {
		return "", m.loadErr
	}
	if m.token == "" {
		return "", ErrNoToken
	}
	return m.token, nil
}

func (m *memTokens) Save(token string) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.token = token
	return nil
}

func (m *memTokens) Clear() error {
	m.token, m.cleared = "", true
	return nil
}

type memClipboard struct {
	text string
	err  error
}

func (m *memClipboard) WriteAll(text string) error {
	m.text = text
	return m.err
}

type testEnv struct {
	app     *App
	adapter *mock.MockServerAdapter
	ui      *fakeUI
	tokens  *memTokens
	clip    *memClipboard
	out     *bytes.Buffer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctrl := gomock.NewController(t)

	env := &testEnv{
		adapter: mock.NewMockServerAdapter(ctrl),
		ui:      &fakeUI{},
		tokens:  &memTokens{},
		clip:    &memClipboard{},
		out:     &bytes.Buffer{},
	}
	env.app = NewApp(env.adapter, env.ui, env.tokens, env.clip, env.out,
		models.NewAppBuildInfo("1.0.0", "2026-10-01", "c0ffee"), logger.Nop())
	return env
}

// withSession stores a token so Run restores it into the adapter.
func (e *testEnv) withSession() *testEnv {
	e.tokens.token = "tok"
	e.adapter.EXPECT().SetToken("tok")
	e.adapter.EXPECT().Token().Return("tok").AnyTimes()
	return e
}

func writeDocument(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "report.pdf")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// ── dispatch ──

func TestApp_Usage(t *testing.T) {
	for _, args := range [][]string{nil, {"help"}, {"-h"}} {
		env := newTestEnv(t)
		require.NoError(t, env.app.Run(context.Background(), args))
		assert.Contains(t, env.out.String(), "usage: printzz")
	}
}

func TestApp_UnknownCommand(t *testing.T) {
	env := newTestEnv(t)
	err := env.app.Run(context.Background(), []string{"print-everything"})
	assert.ErrorIs(t, err, ErrUnknownCommand)
}

func TestApp_SessionCommandsNeedToken(t *testing.T) {
	for _, cmd := range []string{"me", "token", "list", "cancel", "watch", "submit"} {
		t.Run(cmd, func(t *testing.T) {
			env := newTestEnv(t)
			env.adapter.EXPECT().Token().Return("")

			err := env.app.Run(context.Background(), []string{cmd})
			assert.ErrorIs(t, err, ErrNotLoggedIn)
		})
	}
}

func TestApp_RejectedTokenMeansNotLoggedIn(t *testing.T) {
	env := newTestEnv(t).withSession()
	env.adapter.EXPECT().Me(gomock.Any()).Return(models.User{}, fmt.Errorf("%w: token is expired", adapter.ErrUnauthorized))

	err := env.app.Run(context.Background(), []string{"me"})
	assert.ErrorIs(t, err, ErrNotLoggedIn)
	assert.ErrorIs(t, err, adapter.ErrUnauthorized)
}

// ── auth ──

func TestApp_LoginWithFlags(t *testing.T) {
	env := newTestEnv(t)
	env.adapter.EXPECT().
		Login(gomock.Any(), models.User{Username: "alice", Password: "pw"}).
		Return(models.User{UserID: "u-1", Username: "alice"}, nil)
	env.adapter.EXPECT().Token().Return("fresh")

	require.NoError(t, env.app.Run(context.Background(), []string{"login", "-u", "alice", "-p", "pw"}))

	assert.Equal(t, "fresh", env.tokens.token)
	assert.Contains(t, env.out.String(), "alice")
	assert.Contains(t, env.out.String(), "u-1")
	assert.Empty(t, env.ui.titles, "no prompt when both flags are set")
}

func TestApp_LoginPromptsForMissingPassword(t *testing.T) {
	env := newTestEnv(t)
	env.ui.user = models.User{Username: "alice", Password: "pw"}
	env.adapter.EXPECT().Login(gomock.Any(), env.ui.user).Return(models.User{UserID: "u-1", Username: "alice"}, nil)
	env.adapter.EXPECT().Token().Return("fresh")

	require.NoError(t, env.app.Run(context.Background(), []string{"login", "-u", "alice"}))

	assert.Equal(t, []string{"alice"}, env.ui.prefill)
	assert.Equal(t, "fresh", env.tokens.token)
}

func TestApp_LoginPromptCancelled(t *testing.T) {
	env := newTestEnv(t)
	env.ui.promptErr = tui.ErrUserQuit

	err := env.app.Run(context.Background(), []string{"login"})
	assert.ErrorIs(t, err, tui.ErrUserQuit)
	assert.Empty(t, env.tokens.token)
}

func TestApp_LoginInvalidCredentials(t *testing.T) {
	env := newTestEnv(t)
	env.adapter.EXPECT().Login(gomock.Any(), gomock.Any()).Return(models.User{}, fmt.Errorf("%w: invalid", adapter.ErrUnauthorized))

	err := env.app.Run(context.Background(), []string{"login", "-u", "alice", "-p", "bad"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestApp_RegisterUsernameTaken(t *testing.T) {
	env := newTestEnv(t)
	env.adapter.EXPECT().Register(gomock.Any(), gomock.Any()).Return(models.User{}, fmt.Errorf("%w: exists", adapter.ErrConflict))

	err := env.app.Run(context.Background(), []string{"register", "-u", "alice", "-p", "pw"})
	assert.ErrorIs(t, err, ErrUsernameTaken)
	assert.NotErrorIs(t, err, ErrPrinterBusy)
}

func TestApp_RegisterStoresToken(t *testing.T) {
	env := newTestEnv(t)
	env.adapter.EXPECT().Register(gomock.Any(), models.User{Username: "bob", Password: "pw"}).Return(models.User{UserID: "u-2", Username: "bob"}, nil)
	env.adapter.EXPECT().Token().Return("t-2")

	require.NoError(t, env.app.Run(context.Background(), []string{"register", "-u", "bob", "-p", "pw"}))
	assert.Equal(t, "t-2", env.tokens.token)
}

func TestApp_RegisterWithoutTokenFails(t *testing.T) {
	env := newTestEnv(t)
	env.adapter.EXPECT().Register(gomock.Any(), gomock.Any()).Return(models.User{Username: "bob"}, nil)
	env.adapter.EXPECT().Token().Return("")

	err := env.app.Run(context.Background(), []string{"register", "-u", "bob", "-p", "pw"})
	require.Error(t, err)
	assert.Empty(t, env.tokens.token)
}

func TestApp_Logout(t *testing.T) {
	env := newTestEnv(t)
	env.tokens.token = "tok"
	env.adapter.EXPECT().SetToken("tok")
	env.adapter.EXPECT().SetToken("")

	require.NoError(t, env.app.Run(context.Background(), []string{"logout"}))
	assert.True(t, env.tokens.cleared)
	assert.Contains(t, env.out.String(), "logged out")
}

func TestApp_Me(t *testing.T) {
	env := newTestEnv(t).withSession()
	env.adapter.EXPECT().Me(gomock.Any()).Return(models.User{UserID: "u-1", Username: "alice"}, nil)

	require.NoError(t, env.app.Run(context.Background(), []string{"me"}))
	assert.Contains(t, env.out.String(), "alice")
}

func TestApp_Token(t *testing.T) {
	env := newTestEnv(t).withSession()
	require.NoError(t, env.app.Run(context.Background(), []string{"token"}))
	assert.Equal(t, "tok\n", env.out.String())

	env = newTestEnv(t).withSession()
	require.NoError(t, env.app.Run(context.Background(), []string{"token", "-copy"}))
	assert.Equal(t, "tok", env.clip.text)
	assert.NotContains(t, env.out.String(), "tok\n")

	env = newTestEnv(t).withSession()
	env.clip.err = errors.New("no clipboard utility")
	assert.Error(t, env.app.Run(context.Background(), []string{"token", "-copy"}))
}

// ── documents ──

func TestApp_Submit(t *testing.T) {
	env := newTestEnv(t).withSession()
	path := writeDocument(t, "%PDF-1.7")

	env.adapter.EXPECT().
		Submit(gomock.Any(), models.SubmitRequest{
			PrinterID: "lab-1",
			FileName:  "report.pdf",
			Settings:  models.PrintSettings{Copies: 2, DoubleSided: models.DoubleSidedShortEdge, Color: false},
		}, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ models.SubmitRequest, content io.Reader) (string, error) {
			body, err := io.ReadAll(content)
			require.NoError(t, err)
			assert.Equal(t, "%PDF-1.7", string(body))
			return "doc-9", nil
		})

	err := env.app.Run(context.Background(), []string{
		"submit", "-copies", "2", "-double-sided", "short_edge", "-color=false", "lab-1", path,
	})
	require.NoError(t, err)
	assert.Contains(t, env.out.String(), "queued doc-9 on lab-1")
	assert.Empty(t, env.ui.watched)
}

func TestApp_SubmitDefaultsAndWatch(t *testing.T) {
	env := newTestEnv(t).withSession()
	path := writeDocument(t, "x")

	env.adapter.EXPECT().
		Submit(gomock.Any(), models.SubmitRequest{
			PrinterID: "lab-1",
			FileName:  "Quarterly",
			Settings:  models.DefaultPrintSettings(),
		}, gomock.Any()).
		Return("doc-1", nil)
	env.adapter.EXPECT().ListDocuments(gomock.Any()).Return([]models.Document{{DocID: "doc-1"}}, nil)

	require.NoError(t, env.app.Run(context.Background(), []string{"submit", "-name", "Quarterly", "-watch", "lab-1", path}))
	assert.Equal(t, []string{"doc-1"}, env.ui.watched)
	assert.Len(t, env.ui.fetched, 1)
}

func TestApp_SubmitPrinterBusy(t *testing.T) {
	env := newTestEnv(t).withSession()
	path := writeDocument(t, "x")
	env.adapter.EXPECT().Submit(gomock.Any(), gomock.Any(), gomock.Any()).Return("", fmt.Errorf("%w: queue busy", adapter.ErrConflict))

	err := env.app.Run(context.Background(), []string{"submit", "lab-1", path})
	assert.ErrorIs(t, err, ErrPrinterBusy)
	assert.Contains(t, err.Error(), "lab-1")
}

func TestApp_SubmitUsageErrors(t *testing.T) {
	path := writeDocument(t, "x")

	cases := map[string][]string{
		"missing file":     {"submit", "lab-1"},
		"bad duplex":       {"submit", "-double-sided", "diagonal", "lab-1", path},
		"unknown flag":     {"submit", "-staple", "lab-1", path},
		"extra positional": {"submit", "lab-1", path, "more"},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			env := newTestEnv(t).withSession()
			err := env.app.Run(context.Background(), args)
			assert.ErrorIs(t, err, ErrUsage)
		})
	}
}

func TestApp_SubmitMissingFile(t *testing.T) {
	env := newTestEnv(t).withSession()
	err := env.app.Run(context.Background(), []string{"submit", "lab-1", filepath.Join(t.TempDir(), "nope.pdf")})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestApp_List(t *testing.T) {
	env := newTestEnv(t).withSession()
	env.adapter.EXPECT().ListDocuments(gomock.Any()).Return([]models.Document{
		{DocID: "doc-1", PrinterID: "lab-1", Name: "a.pdf", Settings: models.DefaultPrintSettings()},
	}, nil)

	require.NoError(t, env.app.Run(context.Background(), []string{"list"}))
	assert.Contains(t, env.out.String(), "doc-1")
	assert.Contains(t, env.out.String(), "a.pdf")
}

func TestApp_Cancel(t *testing.T) {
	env := newTestEnv(t).withSession()
	env.adapter.EXPECT().Cancel(gomock.Any(), "lab-1", "doc-1").Return(nil)

	require.NoError(t, env.app.Run(context.Background(), []string{"cancel", "-printer", "lab-1", "doc-1"}))
	assert.Contains(t, env.out.String(), "cancelled doc-1")
}

func TestApp_CancelNotFound(t *testing.T) {
	env := newTestEnv(t).withSession()
	env.adapter.EXPECT().Cancel(gomock.Any(), "", "doc-1").Return(fmt.Errorf("%w: document not found", adapter.ErrNotFound))

	err := env.app.Run(context.Background(), []string{"cancel", "doc-1"})
	assert.ErrorIs(t, err, adapter.ErrNotFound)
}

func TestApp_Watch(t *testing.T) {
	env := newTestEnv(t).withSession()
	env.ui.watchErr = tui.ErrDocumentNotQueued
	env.adapter.EXPECT().ListDocuments(gomock.Any()).Return(nil, nil)

	err := env.app.Run(context.Background(), []string{"watch", "doc-7"})
	assert.ErrorIs(t, err, tui.ErrDocumentNotQueued)
	assert.Equal(t, []string{"doc-7"}, env.ui.watched)
}

// ── misc ──

func TestApp_Version(t *testing.T) {
	env := newTestEnv(t)
	env.adapter.EXPECT().Version(gomock.Any()).Return(models.VersionResponse{Version: "2.0.0", BuildCommit: "beef"}, nil)

	require.NoError(t, env.app.Run(context.Background(), []string{"version"}))
	out := env.out.String()
	assert.Contains(t, out, "client 1.0.0")
	assert.Contains(t, out, "c0ffee")
	assert.Contains(t, out, "2.0.0")
}

func TestApp_StoredTokenLoadError(t *testing.T) {
	env := newTestEnv(t)
	env.tokens.loadErr = errors.New("permission denied")
	env.adapter.EXPECT().Version(gomock.Any()).Return(models.VersionResponse{}, errors.New("offline"))

	err := env.app.Run(context.Background(), []string{"version"})
	assert.ErrorContains(t, err, "offline")
}
