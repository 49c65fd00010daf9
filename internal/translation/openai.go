package translation

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"codeberg.org/snonux/tranx/internal/failure"
)

// DefaultOpenAIModel is a model served by the legacy completions endpoint.
const DefaultOpenAIModel = openai.GPT3Dot5TurboInstruct

// OpenAITranslator translates through the OpenAI completions endpoint
type OpenAITranslator struct {
	client *openai.Client
	config *Config
}

// NewOpenAITranslator creates a new OpenAI-backed translator
func NewOpenAITranslator(config *Config) (*OpenAITranslator, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key not found")
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}

	return &OpenAITranslator{
		client: openai.NewClientWithConfig(clientConfig),
		config: config,
	}, nil
}

// Translate issues a single completion request and returns the trimmed
// text of the first choice.
func (t *OpenAITranslator) Translate(ctx context.Context, text, targetLanguage string) (string, error) {
	if err := validateText(text); err != nil {
		return "", err
	}

	model := t.config.Model
	if model == "" {
		model = DefaultOpenAIModel
	}

	req := openai.CompletionRequest{
		Model:       model,
		Prompt:      BuildPrompt(text, targetLanguage),
		MaxTokens:   t.config.MaxTokens,
		Temperature: t.config.Temperature,
		TopP:        t.config.TopP,
		N:           1,
	}
	if t.config.Stop != "" {
		req.Stop = []string{t.config.Stop}
	}

	resp, err := t.client.CreateCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("%w: OpenAI API error: %w", failure.ErrTranslationFailed, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no translation returned", failure.ErrTranslationFailed)
	}

	translation := strings.TrimSpace(resp.Choices[0].Text)
	if translation == "" {
		return "", fmt.Errorf("%w: empty translation returned", failure.ErrTranslationFailed)
	}
	return translation, nil
}

// Name returns the provider name
func (t *OpenAITranslator) Name() string {
	return "openai"
}
