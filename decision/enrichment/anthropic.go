package enrichment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const (
	defaultModel     = "claude-sonnet-4-5"
	defaultMaxTokens = 1024
	defaultTimeout   = 20 * time.Second
)

// AnthropicConfig configures the Messages API enricher.
type AnthropicConfig struct {
	APIKey    string
	BaseURL   string
	Model     string
	MaxTokens int64
	Timeout   time.Duration
	// MaxRetries caps SDK retries. Zero keeps the SDK default and a negative
	// value disables retries.
	MaxRetries int
}

// AnthropicEnricher asks a Claude model to refine the stack suggestion and
// explain the complexity rating.
type AnthropicEnricher struct {
	client    anthropic.Client
	model     string
	maxTokens int64
	timeout   time.Duration
	fallback  TemplateEnricher
}

// NewAnthropicEnricher creates the enricher. An empty API key is an error;
// callers should use TemplateEnricher instead.
func NewAnthropicEnricher(cfg AnthropicConfig) (*AnthropicEnricher, error) {
	key := strings.TrimSpace(cfg.APIKey)
	if key == "" {
		return nil, errors.New("anthropic api key is required")
	}
	opts := []option.RequestOption{option.WithAPIKey(key)}
	if strings.TrimSpace(cfg.BaseURL) != "" {
		opts = append(opts, option.WithBaseURL(strings.TrimSpace(cfg.BaseURL)))
	}
	switch {
	case cfg.MaxRetries < 0:
		opts = append(opts, option.WithMaxRetries(0))
	case cfg.MaxRetries > 0:
		opts = append(opts, option.WithMaxRetries(cfg.MaxRetries))
	}

	e := &AnthropicEnricher{
		client:    anthropic.NewClient(opts...),
		model:     strings.TrimSpace(cfg.Model),
		maxTokens: cfg.MaxTokens,
		timeout:   cfg.Timeout,
	}
	if e.model == "" {
		e.model = defaultModel
	}
	if e.maxTokens <= 0 {
		e.maxTokens = defaultMaxTokens
	}
	if e.timeout <= 0 {
		e.timeout = defaultTimeout
	}
	return e, nil
}

const systemPrompt = `You are a senior technical advisor helping non-technical founders plan their first build.
You receive a deterministic assessment as JSON. Do not change the route, complexity, budget or timeline.
Reply with a single JSON object and nothing else:
{"tech_stack": "...", "narrative": "...", "complexity_reasoning": "..."}
tech_stack: one line naming concrete tools for the given route.
narrative: two to four sentences of practical guidance.
complexity_reasoning: one or two sentences explaining the complexity rating.`

// Enrich calls the Messages API.
func (e *AnthropicEnricher) Enrich(ctx context.Context, in Input) (Result, error) {
	payload, err := json.Marshal(in)
	if err != nil {
		return Result{}, fmt.Errorf("failed to encode enrichment input: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	msg, err := e.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(e.model),
		MaxTokens: e.maxTokens,
		System:    []anthropic.TextBlockParam{{Text: systemPrompt}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(string(payload))),
		},
	})
	if err != nil {
		return Result{}, fmt.Errorf("anthropic request failed: %w", err)
	}

	var text strings.Builder
	for _, block := range msg.Content {
		if tb, ok := block.AsAny().(anthropic.TextBlock); ok {
			text.WriteString(tb.Text)
		}
	}
	return parseReply(text.String())
}

// Fallback returns the template text.
func (e *AnthropicEnricher) Fallback(in Input) Result {
	return e.fallback.Fallback(in)
}

// parseReply reads the JSON object from a model reply. Prose around the
// object and code fences are tolerated.
func parseReply(text string) (Result, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Result{}, errors.New("empty model reply")
	}
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return Result{}, errors.New("model reply has no JSON object")
	}

	var res Result
	if err := json.Unmarshal([]byte(text[start:end+1]), &res); err != nil {
		return Result{}, fmt.Errorf("failed to parse model reply: %w", err)
	}
	if strings.TrimSpace(res.Narrative) == "" && strings.TrimSpace(res.TechStack) == "" {
		return Result{}, errors.New("model reply is missing narrative and tech_stack")
	}
	res.Source = SourceAnthropic
	return res, nil
}
