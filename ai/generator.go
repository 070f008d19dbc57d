// Package ai wraps the external narrative generator. The response is opaque
// markdown: it is displayed as-is and never parsed or validated beyond
// success/failure.
package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/fx"
	"google.golang.org/api/option"
)

var (
	// ErrUnavailable means no generator is configured at all.
	ErrUnavailable = errors.New("narrative generator is not configured")
	// ErrRequestFailed means the configured generator errored. A single
	// attempt is made; retries are the caller's decision, and none is taken.
	ErrRequestFailed = errors.New("narrative generator request failed")
)

type Config struct {
	ApiKey         string        `envconfig:"GEMINI_API_KEY"`
	Model          string        `envconfig:"REHAB_AI_MODEL" default:"gemini-2.5-flash"`
	RequestTimeout time.Duration `envconfig:"REHAB_AI_REQUEST_TIMEOUT" default:"60s"`
}

func NewConfig() (*Config, error) {
	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

//go:generate mockgen --build_flags=--mod=mod -source=./generator.go -destination=./test/mock_generator.go -package test MockGenerator

type Generator interface {
	GenerateReport(ctx context.Context, prompt string) (string, error)
}

// NewGenerator returns a Gemini-backed generator, or a stub that reports
// ErrUnavailable when no API key is configured. The dashboard must keep
// working without a key; only the narrative panel degrades.
func NewGenerator(cfg *Config, lifecycle fx.Lifecycle) (Generator, error) {
	if cfg.ApiKey == "" {
		return &unavailableGenerator{}, nil
	}

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(cfg.ApiKey))
	if err != nil {
		return nil, fmt.Errorf("unable to create gemini client: %w", err)
	}

	lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})

	return &geminiGenerator{
		client:  client,
		model:   cfg.Model,
		timeout: cfg.RequestTimeout,
	}, nil
}

type geminiGenerator struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

var _ Generator = &geminiGenerator{}

func (g *geminiGenerator) GenerateReport(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	model := g.client.GenerativeModel(g.model)
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}

	var result strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content != nil {
			for _, part := range cand.Content.Parts {
				if txt, ok := part.(genai.Text); ok {
					result.WriteString(string(txt))
				}
			}
		}
	}

	if result.Len() == 0 {
		return "", fmt.Errorf("%w: empty response", ErrRequestFailed)
	}
	return result.String(), nil
}

type unavailableGenerator struct{}

var _ Generator = &unavailableGenerator{}

func (g *unavailableGenerator) GenerateReport(context.Context, string) (string, error) {
	return "", ErrUnavailable
}
