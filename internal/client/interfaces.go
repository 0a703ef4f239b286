// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"

	"github.com/printzz/printzz/internal/tui"
	"github.com/printzz/printzz/models"
)

// Client defines the lifecycle contract of the command-line application.
type Client interface {
	// Run executes one sub-command and returns when it is done.
	Run(ctx context.Context, args []string) error
}

// UI is the interactive part of the terminal.
type UI interface {
	// PromptCredentials asks the user for a username and a password.
	PromptCredentials(ctx context.Context, title, username string) (models.User, error)

	// WatchDocument follows a pending document until it leaves the queue.
	WatchDocument(ctx context.Context, docID string, fetch tui.FetchFunc) error
}

// TokenStore persists the bearer token between invocations.
type TokenStore interface {
	// Load returns the stored token or ErrNoToken.
	Load() (string, error)
	Save(token string) error
	// Clear removes the stored token. Clearing an empty store is not an error.
	Clear() error
}

// Clipboard writes text to the system clipboard.
type Clipboard interface {
	WriteAll(text string) error
}
