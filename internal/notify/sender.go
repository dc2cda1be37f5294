package notify

import "context"

// Sender delivers a formatted text message to the configured destination.
type Sender interface {
	Send(ctx context.Context, text string) error
}

// Noop discards every message. Used when no push endpoint is configured
// and for dry runs.
type Noop struct{}

func (Noop) Send(ctx context.Context, text string) error { return nil }
