package tui

import "errors"

var (
	// ErrUserQuit is returned when the user leaves a view with esc or ctrl+c.
	ErrUserQuit = errors.New("cancelled by user")

	ErrEmptyCredentials = errors.New("username and password are required")
)

// ErrDocumentNotQueued is returned by the watcher when the document is not
// among the caller's pending documents on the first poll.
var ErrDocumentNotQueued = errors.New("document is not queued")
