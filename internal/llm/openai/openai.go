package openai

import (
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"llm-trade-journal/internal/interfaces"
	"llm-trade-journal/internal/store"
	"llm-trade-journal/internal/trace"
	"llm-trade-journal/internal/types"
)

type OpenAIOracle struct {
	client openai.Client
	model  string
	system string
}

var _ interfaces.Oracle = (*OpenAIOracle)(nil)

func NewOpenAIOracle(cfg *store.Config) (*OpenAIOracle, error) {
	if cfg.Secrets.OpenAIAPIKey == "" {
		return nil, errors.New("OPENAI_API_KEY missing")
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.Secrets.OpenAIAPIKey),
		option.WithMaxRetries(0),
	}
	if cfg.LLM.Endpoint != "" {
		opts = append(opts, option.WithBaseURL(cfg.LLM.Endpoint))
	}
	if cfg.LLM.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.LLM.Timeout))
	}

	return &OpenAIOracle{
		client: openai.NewClient(opts...),
		model:  cfg.LLMModel(),
		system: cfg.LLM.System,
	}, nil
}

func (o *OpenAIOracle) Generate(ctx context.Context, prompt string, opts types.GenerateOptions) (string, error) {
	ctx, span := trace.StartSpan(ctx, "openai-api-call")
	defer span.End()

	var messages []openai.ChatCompletionMessageParamUnion
	if o.system != "" {
		messages = append(messages, openai.SystemMessage(o.system))
	}
	messages = append(messages, openai.UserMessage(prompt))

	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:               openai.ChatModel(o.model),
		Messages:            messages,
		Temperature:         openai.Float(opts.Temperature),
		MaxCompletionTokens: openai.Int(int64(opts.MaxOutputTokens)),
	})
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai: empty choices")
	}
	return resp.Choices[0].Message.Content, nil
}
