package translation

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"codeberg.org/snonux/tranx/internal/failure"
)

// DefaultGeminiModel is used when no model is configured for gemini.
const DefaultGeminiModel = "gemini-2.0-flash"

// GeminiTranslator translates through the Gemini generateContent API
type GeminiTranslator struct {
	client *genai.Client
	config *Config
	model  string
}

// NewGeminiTranslator creates a new Gemini-backed translator
func NewGeminiTranslator(config *Config) (*GeminiTranslator, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("Gemini API key not found")
	}

	clientConfig := &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if config.BaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: config.BaseURL}
	}

	client, err := genai.NewClient(context.Background(), clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := config.Model
	if model == "" {
		model = DefaultGeminiModel
	}

	return &GeminiTranslator{client: client, config: config, model: model}, nil
}

// Translate sends the completion prompt as a single user turn and returns
// the trimmed text of the first candidate.
func (g *GeminiTranslator) Translate(ctx context.Context, text, targetLanguage string) (string, error) {
	if err := validateText(text); err != nil {
		return "", err
	}

	genConfig := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(g.config.Temperature),
		TopP:            genai.Ptr(g.config.TopP),
		MaxOutputTokens: int32(g.config.MaxTokens),
		CandidateCount:  1,
	}
	if g.config.Stop != "" {
		genConfig.StopSequences = []string{g.config.Stop}
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(BuildPrompt(text, targetLanguage)), genConfig)
	if err != nil {
		return "", fmt.Errorf("%w: Gemini API error: %w", failure.ErrTranslationFailed, err)
	}

	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no translation returned", failure.ErrTranslationFailed)
	}

	translation := strings.TrimSpace(resp.Text())
	if translation == "" {
		return "", fmt.Errorf("%w: empty translation returned", failure.ErrTranslationFailed)
	}
	return translation, nil
}

// Name returns the provider name
func (g *GeminiTranslator) Name() string {
	return "gemini"
}
