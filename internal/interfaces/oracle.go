package interfaces

import (
	"context"

	"llm-trade-journal/internal/types"
)

// Oracle is the text-completion service that turns a prompt into free text.
type Oracle interface {
	Generate(ctx context.Context, prompt string, opts types.GenerateOptions) (string, error)
}
