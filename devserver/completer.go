package devserver

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	anthropicoption "github.com/anthropics/anthropic-sdk-go/option"
	openai "github.com/openai/openai-go/v3"
	oaioption "github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"

	"github.com/linanwx/supportchat/logger"
)

const (
	// GroqAPIBase is Groq's OpenAI-compatible endpoint.
	GroqAPIBase          = "https://api.groq.com/openai/v1"
	DefaultGroqModel     = "llama-3.1-8b-instant"
	DefaultClaudeModel   = "claude-3-5-haiku-latest"
	completionMaxTokens  = 1024
	completionMaxRetries = 2
)

// Completer runs one single-turn completion.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// LLMOptions configures a Completer.
type LLMOptions struct {
	Provider    string // "groq" or "anthropic"
	APIKey      string
	APIBase     string
	Model       string
	Temperature float64
}

// NewCompleter builds the completer for opts.Provider.
func NewCompleter(opts LLMOptions) (Completer, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, fmt.Errorf("llm: api key is required")
	}
	switch opts.Provider {
	case "", "groq":
		return newOpenAICompleter(opts), nil
	case "anthropic":
		return newAnthropicCompleter(opts), nil
	default:
		return nil, fmt.Errorf("llm: unknown provider %q", opts.Provider)
	}
}

// openAICompleter talks to any OpenAI-compatible chat completions API.
type openAICompleter struct {
	model       string
	temperature float64
	client      openai.Client
}

func newOpenAICompleter(opts LLMOptions) *openAICompleter {
	base := strings.TrimRight(strings.TrimSpace(opts.APIBase), "/")
	if base == "" {
		base = GroqAPIBase
	}
	model := opts.Model
	if model == "" {
		model = DefaultGroqModel
	}
	return &openAICompleter{
		model:       model,
		temperature: opts.Temperature,
		client: openai.NewClient(
			oaioption.WithAPIKey(opts.APIKey),
			oaioption.WithBaseURL(base),
			oaioption.WithMaxRetries(completionMaxRetries),
		),
	}
}

func (c *openAICompleter) Complete(ctx context.Context, system, user string) (string, error) {
	start := time.Now()
	req := openai.ChatCompletionNewParams{
		Model: shared.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
		MaxTokens: openai.Int(completionMaxTokens),
	}
	if c.temperature != 0 {
		req.Temperature = openai.Float(c.temperature)
	}

	resp, err := c.client.Chat.Completions.New(ctx, req)
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}

	logger.Debug(
		"llm response",
		"provider", "openai",
		"model", c.model,
		"finishReason", resp.Choices[0].FinishReason,
		"totalTokens", resp.Usage.TotalTokens,
		"latencyMs", time.Since(start).Milliseconds(),
	)
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// anthropicCompleter talks to the Anthropic Messages API.
type anthropicCompleter struct {
	model       string
	temperature float64
	client      anthropic.Client
}

func newAnthropicCompleter(opts LLMOptions) *anthropicCompleter {
	model := opts.Model
	if model == "" {
		model = DefaultClaudeModel
	}
	reqOpts := []anthropicoption.RequestOption{
		anthropicoption.WithAPIKey(opts.APIKey),
		anthropicoption.WithMaxRetries(completionMaxRetries),
	}
	if base := strings.TrimSpace(opts.APIBase); base != "" {
		reqOpts = append(reqOpts, anthropicoption.WithBaseURL(base))
	}
	return &anthropicCompleter{
		model:       model,
		temperature: opts.Temperature,
		client:      anthropic.NewClient(reqOpts...),
	}
}

func (c *anthropicCompleter) Complete(ctx context.Context, system, user string) (string, error) {
	start := time.Now()
	req := anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: completionMaxTokens,
		System:    []anthropic.TextBlockParam{{Text: system}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(user)),
		},
	}
	if c.temperature != 0 {
		req.Temperature = anthropic.Float(c.temperature)
	}

	msg, err := c.client.Messages.New(ctx, req)
	if err != nil {
		return "", fmt.Errorf("message request failed: %w", err)
	}

	var parts []string
	for _, block := range msg.Content {
		if block.Type == "text" && strings.TrimSpace(block.Text) != "" {
			parts = append(parts, strings.TrimSpace(block.Text))
		}
	}

	logger.Debug(
		"llm response",
		"provider", "anthropic",
		"model", c.model,
		"stopReason", msg.StopReason,
		"outputTokens", msg.Usage.OutputTokens,
		"latencyMs", time.Since(start).Milliseconds(),
	)
	return strings.Join(parts, "\n"), nil
}
