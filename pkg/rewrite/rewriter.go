package rewrite

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"paraphrase-be/pkg/llm"
)

// Request is what the rewrite backend receives. Fields are sent trimmed.
type Request struct {
	Content         string `json:"content" validate:"required"`
	Prompt          string `json:"prompt"`
	Name            string `json:"name"`
	Context         string `json:"context"`
	SystemSettings  string `json:"systemSettings"`
	MustHaveContent string `json:"mustHaveContent"`
}

func (r Request) trimmed() Request {
	return Request{
		Content:         strings.TrimSpace(r.Content),
		Prompt:          strings.TrimSpace(r.Prompt),
		Name:            strings.TrimSpace(r.Name),
		Context:         strings.TrimSpace(r.Context),
		SystemSettings:  strings.TrimSpace(r.SystemSettings),
		MustHaveContent: strings.TrimSpace(r.MustHaveContent),
	}
}

type DeviceRequest struct {
	SystemSettings string `json:"systemSettings" validate:"required"`
	Name           string `json:"name"`
	Context        string `json:"context"`
	Prompt         string `json:"prompt"`
}

// Rewriter returns the raw rewritten text for a request.
type Rewriter interface {
	Rewrite(ctx context.Context, req Request) (string, error)
}

type RewriterFunc func(ctx context.Context, req Request) (string, error)

func (f RewriterFunc) Rewrite(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}

// LLMRewriter sends a system prompt plus the content to an LLM provider.
// A nil provider reports ErrNotConfigured on every call.
type LLMRewriter struct {
	provider    llm.LLMProvider
	maxTokens   int
	temperature float64
}

var _ Rewriter = &LLMRewriter{}

func NewLLMRewriter(provider llm.LLMProvider, maxTokens int, temperature float64) *LLMRewriter {
	if maxTokens <= 0 {
		maxTokens = 2000
	}
	return &LLMRewriter{provider: provider, maxTokens: maxTokens, temperature: temperature}
}

func (r *LLMRewriter) Configured() bool {
	return r != nil && r.provider != nil
}

func (r *LLMRewriter) Rewrite(ctx context.Context, req Request) (string, error) {
	req = req.trimmed()
	if req.Content == "" {
		return "", ErrContentMissing
	}
	if !r.Configured() {
		return "", ErrNotConfigured
	}

	text, err := r.chat(ctx, BuildSystemPrompt(req), req.Content, r.maxTokens)
	if err != nil {
		return "", r.wrap(ErrUpstream, err)
	}
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

// DescribeDevice turns raw system settings into a short prose paragraph
// suitable for the system section.
func (r *LLMRewriter) DescribeDevice(ctx context.Context, req DeviceRequest) (string, error) {
	if strings.TrimSpace(req.SystemSettings) == "" {
		return "", ErrSettingsMissing
	}
	if !r.Configured() {
		return "", ErrNotConfigured
	}

	user := "Generate a natural language paragraph about the current device information based on these system settings: " + req.SystemSettings
	text, err := r.chat(ctx, buildDevicePrompt(req), user, 500)
	if err != nil {
		return "", r.wrap(ErrDeviceUpstream, err)
	}
	if strings.TrimSpace(text) == "" {
		return "", ErrDeviceEmpty
	}
	return strings.TrimSpace(text), nil
}

func (r *LLMRewriter) chat(ctx context.Context, system, user string, maxTokens int) (string, error) {
	return r.provider.Chat(ctx, []llm.Message{
		{Role: llm.RoleSystem, Content: system},
		{Role: llm.RoleUser, Content: user},
	}, llm.WithMaxTokens(maxTokens), llm.WithTemperature(r.temperature))
}

func (r *LLMRewriter) wrap(kind, err error) error {
	if errors.Is(err, llm.ErrNotConfigured) {
		return fmt.Errorf("%w: %v", ErrNotConfigured, err)
	}
	return fmt.Errorf("%w: %v", kind, err)
}
