package translation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"codeberg.org/snonux/tranx/internal/failure"
)

// Provider defines the interface for translation backends
type Provider interface {
	// Translate returns text rendered in targetLanguage. Every error wraps
	// failure.ErrTranslationFailed.
	Translate(ctx context.Context, text, targetLanguage string) (string, error)

	// Name returns the provider name
	Name() string
}

// Config holds configuration for translation providers
type Config struct {
	Provider string // "openai" or "gemini"
	APIKey   string
	BaseURL  string // Optional API endpoint override
	Model    string // Empty selects the provider default

	// Sampling parameters, sent unchanged with every request
	MaxTokens   int
	Temperature float32
	TopP        float32
	Stop        string

	// Circuit breaker; zero BreakerMaxFailures disables it
	BreakerMaxFailures uint32
	BreakerTimeout     time.Duration
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Provider:           "openai",
		MaxTokens:          200,
		Temperature:        0.7,
		TopP:               1.0,
		Stop:               "\n",
		BreakerMaxFailures: 5,
		BreakerTimeout:     30 * time.Second,
	}
}

// NewProvider creates the translation provider named by config, wrapped in
// a circuit breaker when one is configured.
func NewProvider(config *Config) (Provider, error) {
	if config == nil {
		config = DefaultConfig()
	}

	var (
		p   Provider
		err error
	)
	switch config.Provider {
	case "", "openai":
		p, err = NewOpenAITranslator(config)
	case "gemini":
		p, err = NewGeminiTranslator(config)
	default:
		return nil, fmt.Errorf("unknown translation provider: %s", config.Provider)
	}
	if err != nil {
		return nil, err
	}

	if config.BreakerMaxFailures > 0 {
		p = NewBreaker(p, config.BreakerMaxFailures, config.BreakerTimeout)
	}
	return p, nil
}

func validateText(text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("%w: text cannot be empty", failure.ErrTranslationFailed)
	}
	return nil
}
