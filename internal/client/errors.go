package client

import "errors"

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrUsage          = errors.New("invalid usage")

	// ErrNotLoggedIn is returned when a command needs a session and no token
	// is stored, or the server rejected the stored one.
	ErrNotLoggedIn = errors.New("not logged in, run `printzz login`")

	ErrNoToken = errors.New("no stored token")

	// ErrPrinterBusy is returned by submit when the printer already holds a
	// pending document.
	ErrPrinterBusy = errors.New("printer is busy")
)

var (
	ErrUsernameTaken      = errors.New("username is already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
)
