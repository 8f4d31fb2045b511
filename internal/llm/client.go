// Package llm abstracts LLM evaluator/generator invocation behind one
// narrow operation: (system_prompt, user_content, max_output_tokens,
// temperature) -> text expected to contain parseable structured output.
// Genkit provides the ai.Message/generation plumbing; openai-go is the
// concrete OpenAI-compatible transport underneath it.
package llm

import (
	"context"
	"fmt"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	"github.com/firebase/genkit/go/plugins/compat_oai/openai"
)

// Client is the narrow interface the Dual Evaluator depends on. Two independent instances (with distinct
// ModelName or distinct underlying API keys) give the Dual Evaluator
// its "logically independent" evaluators.
type Client interface {
	Generate(ctx context.Context, systemPrompt, userContent string, maxOutputTokens int, temperature float64) (string, error)
	ModelName() string
}

// genkitClient is the concrete Client backed by genkit's OpenAI-compatible
// plugin.
type genkitClient struct {
	g         *genkit.Genkit
	modelName string
}

// Config selects which provider/model this Client talks to. APIKey
// presence-only semantics match credential model.
type Config struct {
	Provider string // "openai" is the only provider wired today.
	APIKey   string
	Model    string
}

// New builds a Client for cfg. Only the OpenAI-compatible path is wired
// today; additional providers would need their own genkit plugin, same
// shape as this one.
func New(ctx context.Context, cfg Config) (Client, error) {
	switch cfg.Provider {
	case "", "openai":
		plugin := &openai.OpenAI{APIKey: cfg.APIKey}
		g := genkit.Init(ctx, genkit.WithPlugins(plugin), genkit.WithDefaultModel("openai/"+modelOrDefault(cfg.Model)))
		return &genkitClient{g: g, modelName: modelOrDefault(cfg.Model)}, nil
	default:
		return nil, fmt.Errorf("llm: unsupported provider %q", cfg.Provider)
	}
}

func modelOrDefault(model string) string {
	if model == "" {
		return "gpt-4o-mini"
	}
	return model
}

func (c *genkitClient) ModelName() string { return c.modelName }

func (c *genkitClient) Generate(ctx context.Context, systemPrompt, userContent string, maxOutputTokens int, temperature float64) (string, error) {
	resp, err := genkit.Generate(ctx, c.g,
		ai.WithSystem(systemPrompt),
		ai.WithPrompt(userContent),
		ai.WithConfig(map[string]any{
			"maxOutputTokens": maxOutputTokens,
			"temperature":     temperature,
		}),
	)
	if err != nil {
		return "", fmt.Errorf("llm: generate: %w", err)
	}
	return resp.Text(), nil
}
