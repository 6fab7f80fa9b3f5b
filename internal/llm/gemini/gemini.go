package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"llm-trade-journal/internal/api"
	"llm-trade-journal/internal/interfaces"
	"llm-trade-journal/internal/logger"
	"llm-trade-journal/internal/store"
	"llm-trade-journal/internal/trace"
	"llm-trade-journal/internal/types"
)

const defaultEndpoint = "https://generativelanguage.googleapis.com/v1beta"

// GeminiOracle calls the generateContent REST endpoint.
type GeminiOracle struct {
	client *api.Client
	model  string
	system string
}

var _ interfaces.Oracle = (*GeminiOracle)(nil)

func NewGeminiOracle(cfg *store.Config) (*GeminiOracle, error) {
	if cfg.Secrets.GeminiAPIKey == "" {
		return nil, errors.New("GEMINI_API_KEY missing")
	}

	endpoint := defaultEndpoint
	if cfg.LLM.Endpoint != "" {
		endpoint = strings.TrimRight(cfg.LLM.Endpoint, "/")
	}

	opts := []api.ClientOption{
		api.WithBaseURL(endpoint),
		api.WithHeader("x-goog-api-key", cfg.Secrets.GeminiAPIKey),
		api.WithLogging(logger.IsDebugEnabled()),
	}
	if cfg.LLM.Timeout > 0 {
		opts = append(opts, api.WithTimeout(cfg.LLM.Timeout))
	}

	return &GeminiOracle{
		client: api.NewClient(opts...),
		model:  cfg.LLMModel(),
		system: cfg.LLM.System,
	}, nil
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

type generateRequest struct {
	SystemInstruction *content         `json:"systemInstruction,omitempty"`
	Contents          []content        `json:"contents"`
	GenerationConfig  generationConfig `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content      content `json:"content"`
		FinishReason string  `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback"`
}

func (o *GeminiOracle) Generate(ctx context.Context, prompt string, opts types.GenerateOptions) (string, error) {
	ctx, span := trace.StartSpan(ctx, "gemini-api-call")
	defer span.End()

	req := generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			Temperature:     opts.Temperature,
			MaxOutputTokens: opts.MaxOutputTokens,
		},
	}
	if o.system != "" {
		req.SystemInstruction = &content{Parts: []part{{Text: o.system}}}
	}

	path := "/models/" + url.PathEscape(o.model) + ":generateContent"
	resp, err := o.client.POST(ctx, path, req)
	if err != nil {
		return "", fmt.Errorf("gemini generateContent: %w", err)
	}

	var out generateResponse
	if err := resp.ParseJSON(&out); err != nil {
		return "", err
	}
	if out.PromptFeedback.BlockReason != "" {
		return "", fmt.Errorf("gemini blocked prompt: %s", out.PromptFeedback.BlockReason)
	}
	if len(out.Candidates) == 0 {
		return "", errors.New("gemini: no candidates")
	}

	var sb strings.Builder
	for _, p := range out.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return sb.String(), nil
}
