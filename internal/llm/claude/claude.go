package claude

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"llm-trade-journal/internal/interfaces"
	"llm-trade-journal/internal/store"
	"llm-trade-journal/internal/trace"
	"llm-trade-journal/internal/types"
)

// ClaudeOracle answers extraction prompts with the Anthropic Messages API.
type ClaudeOracle struct {
	client anthropic.Client
	model  string
	system string
}

var _ interfaces.Oracle = (*ClaudeOracle)(nil)

// NewClaudeOracle creates a Claude-backed oracle. llm.endpoint overrides the
// public API base URL for proxies.
func NewClaudeOracle(cfg *store.Config) (*ClaudeOracle, error) {
	if cfg.Secrets.ClaudeAPIKey == "" {
		return nil, errors.New("CLAUDE_API_KEY missing")
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.Secrets.ClaudeAPIKey),
		option.WithMaxRetries(0),
	}
	if cfg.LLM.Endpoint != "" {
		opts = append(opts, option.WithBaseURL(cfg.LLM.Endpoint))
	}
	if cfg.LLM.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.LLM.Timeout))
	}

	return &ClaudeOracle{
		client: anthropic.NewClient(opts...),
		model:  cfg.LLMModel(),
		system: cfg.LLM.System,
	}, nil
}

func (o *ClaudeOracle) Generate(ctx context.Context, prompt string, opts types.GenerateOptions) (string, error) {
	ctx, span := trace.StartSpan(ctx, "claude-api-call")
	defer span.End()

	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(o.model),
		MaxTokens:   int64(opts.MaxOutputTokens),
		Temperature: anthropic.Float(opts.Temperature),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	}
	if o.system != "" {
		params.System = []anthropic.TextBlockParam{{Text: o.system}}
	}

	msg, err := o.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("claude messages: %w", err)
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	if sb.Len() == 0 {
		return "", errors.New("claude returned no text content")
	}
	return sb.String(), nil
}
