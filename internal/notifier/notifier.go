package notifier

import "context"

// Notifier delivers analysis reports to a chat channel.
type Notifier interface {
	Send(text string) error
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// Noop discards all messages; used when Telegram is not configured.
type Noop struct{}

func (Noop) Send(string) error                                { return nil }
func (Noop) SendWithRetry(context.Context, string, int) error { return nil }
