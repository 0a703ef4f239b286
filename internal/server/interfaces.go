package server

import "context"

// Server runs every configured transport until ctx is cancelled and then
// shuts them down gracefully.
type Server interface {
	Run(ctx context.Context) error
}

// transport is a single listener managed by the server.
type transport interface {
	// serve blocks until the transport stops. A stop caused by shutdown
	// returns nil.
	serve() error

	// shutdown stops accepting connections and waits for in-flight requests
	// until ctx is done.
	shutdown(ctx context.Context) error

	name() string
}
