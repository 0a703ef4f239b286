// Package workers runs the long-lived background loops of a process: the
// blob janitor on the server and the printer poller in the agent.
package workers

import "context"

// Worker is a background loop. Run blocks until ctx is cancelled or the
// worker fails; a nil error after cancellation is a clean stop.
type Worker interface {
	Run(ctx context.Context) error
}

// Func adapts a plain function to [Worker].
type Func func(ctx context.Context) error

func (f Func) Run(ctx context.Context) error {
	return f(ctx)
}
