// Package ai wraps the external LLM provider used by the optional analysis
// paths: thought embeddings for the embedding-clustering strategy and chat
// completions for narrative generation. Everything here is fail-soft; the
// templated local pipeline never depends on it.
package ai

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"
)

// Config holds the provider configuration.
type Config struct {
	BaseURL        string
	APIKey         string
	EmbeddingModel string
	ChatModel      string
	MaxRetries     int
	Timeout        time.Duration
	// RequestsPerSecond bounds outbound calls so a large batch of thought
	// embeddings cannot trip provider rate limits.
	RequestsPerSecond float64
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:           "https://api.openai.com/v1",
		EmbeddingModel:    "text-embedding-3-small",
		ChatModel:         "gpt-4o-mini",
		MaxRetries:        3,
		Timeout:           30 * time.Second,
		RequestsPerSecond: 5,
	}
}

// Provider provides embedding and chat capabilities.
type Provider struct {
	client  *openai.Client
	config  *Config
	limiter *rate.Limiter
}

// NewProvider creates a provider. Returns an error only on a missing API
// key so callers can disable the optional paths up front.
func NewProvider(cfg *Config) (*Provider, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("AI provider API key is required")
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 3
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.EmbeddingModel == "" {
		cfg.EmbeddingModel = "text-embedding-3-small"
	}
	if cfg.ChatModel == "" {
		cfg.ChatModel = "gpt-4o-mini"
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = 5
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &Provider{
		client:  openai.NewClientWithConfig(clientConfig),
		config:  cfg,
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), int(cfg.RequestsPerSecond)*2),
	}, nil
}

// Embedding generates an embedding vector for the given text.
func (p *Provider) Embedding(ctx context.Context, text string) ([]float32, error) {
	var result []float32
	err := p.doWithRetry(ctx, func() error {
		resp, err := p.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
			Input: []string{text},
			Model: openai.EmbeddingModel(p.config.EmbeddingModel),
		})
		if err != nil {
			return err
		}
		if len(resp.Data) == 0 {
			return fmt.Errorf("empty embedding response")
		}
		result = resp.Data[0].Embedding
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate embedding: %w", err)
	}
	return result, nil
}

// Chat performs a chat completion and returns the raw response text.
func (p *Provider) Chat(ctx context.Context, system, user string) (string, error) {
	var result string
	err := p.doWithRetry(ctx, func() error {
		resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model: p.config.ChatModel,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: system},
				{Role: openai.ChatMessageRoleUser, Content: user},
			},
		})
		if err != nil {
			return err
		}
		if len(resp.Choices) == 0 {
			return fmt.Errorf("empty chat response")
		}
		result = resp.Choices[0].Message.Content
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to complete chat: %w", err)
	}
	return result, nil
}

// doWithRetry executes a request with rate limiting and exponential backoff.
func (p *Provider) doWithRetry(ctx context.Context, fn func() error) error {
	var lastErr error
	for attempt := 0; attempt < p.config.MaxRetries; attempt++ {
		if err := p.limiter.Wait(ctx); err != nil {
			return err
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			if attempt < p.config.MaxRetries-1 {
				waitTime := time.Duration(math.Pow(2, float64(attempt))) * time.Second
				slog.Debug("AI request failed, retrying",
					"attempt", attempt+1,
					"wait_time", waitTime,
					"error", err)
				select {
				case <-time.After(waitTime):
				case <-ctx.Done():
					return ctx.Err()
				}
			}
		}
	}
	return lastErr
}
