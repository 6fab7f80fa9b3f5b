package interfaces

import "context"

// Journal is the entry point the chat transport calls: one method per
// command or message type, each returning the reply text.
type Journal interface {
	Start(ctx context.Context) string
	HandleMessage(ctx context.Context, text string) string
	Stats(ctx context.Context) string
	Daily(ctx context.Context) string
}
