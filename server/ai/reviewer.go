// Package ai wraps the external AI collaborator that turns source code into
// review prose. A single request in, a single markdown review out.
package ai

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/hrygo/coderev/internal/profile"
)

// Config holds the AI provider configuration.
type Config struct {
	BaseURL    string
	APIKey     string
	Model      string
	MaxRetries int
	Timeout    time.Duration
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:    "https://api.openai.com/v1",
		APIKey:     "",
		Model:      "gpt-4o-mini",
		MaxRetries: 3,
		Timeout:    60 * time.Second,
	}
}

const reviewSystemPrompt = `You are a senior software engineer performing a code review.
Review the submitted code for correctness, readability, naming, error handling
and obvious performance issues. Respond in markdown: a short summary first,
then concrete findings with suggested fixes. Be direct and specific; do not
restate the code back.`

// Reviewer produces natural-language reviews of code snippets.
type Reviewer struct {
	client *openai.Client
	config *Config
}

// NewReviewer creates a new reviewer client.
func NewReviewer(cfg *Config) (*Reviewer, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	// Apply defaults for unset values
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 3
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 60 * time.Second
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &Reviewer{
		client: openai.NewClientWithConfig(clientConfig),
		config: cfg,
	}, nil
}

// NewReviewerFromProfile creates a reviewer from the server profile.
func NewReviewerFromProfile(p *profile.Profile) (*Reviewer, error) {
	return NewReviewer(&Config{
		BaseURL:    p.AIBaseURL,
		APIKey:     p.AIAPIKey,
		Model:      p.AIModel,
		MaxRetries: p.AIMaxRetries,
		Timeout:    p.AITimeout,
	})
}

// Review asks the model to review the given code and returns the review text.
// Each call is bounded by the configured timeout so a stuck upstream cannot
// hold the request open indefinitely.
func (r *Reviewer) Review(ctx context.Context, code string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.config.Timeout)
	defer cancel()

	var result string
	err := r.doWithRetry(ctx, func() error {
		req := openai.ChatCompletionRequest{
			Model: r.config.Model,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: reviewSystemPrompt},
				{Role: openai.ChatMessageRoleUser, Content: code},
			},
		}

		resp, err := r.client.CreateChatCompletion(ctx, req)
		if err != nil {
			return err
		}
		if len(resp.Choices) == 0 {
			return fmt.Errorf("empty completion response")
		}
		review := strings.TrimSpace(resp.Choices[0].Message.Content)
		if review == "" {
			return fmt.Errorf("blank review in completion response")
		}
		result = review
		return nil
	})

	if err != nil {
		return "", fmt.Errorf("failed to generate review: %w", err)
	}

	return result, nil
}

// doWithRetry executes a function with exponential backoff retry.
func (r *Reviewer) doWithRetry(ctx context.Context, fn func() error) error {
	var lastErr error
	for attempt := 0; attempt < r.config.MaxRetries; attempt++ {
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			if attempt < r.config.MaxRetries-1 {
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
