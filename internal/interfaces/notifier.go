package interfaces

import "context"

// Notifier pushes unsolicited text, such as the scheduled daily summary, to
// the chat transport.
type Notifier interface {
	Notify(ctx context.Context, text string) error
}
