package ocr

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"github.com/sashabaranov/go-openai"

	"codeberg.org/snonux/tranx/internal/camera"
	"codeberg.org/snonux/tranx/internal/failure"
)

const (
	visionPrompt = "Perform OCR on this image. Return ONLY the raw extracted text with:\n" +
		"- No formatting\n" +
		"- No markdown\n" +
		"- No explanations\n" +
		"- Preserve line breaks accurately from the visual layout.\n" +
		"If no text found, return 'NO_TEXT_FOUND'"
	noTextFound = "NO_TEXT_FOUND"
)

// VisionConfig holds configuration for the vision engine
type VisionConfig struct {
	APIKey  string
	BaseURL string
	Model   string // Defaults to gpt-4o-mini
}

// VisionEngine performs OCR with an OpenAI vision-capable chat model
type VisionEngine struct {
	client *openai.Client
	model  string
}

// NewVisionEngine creates a new vision OCR engine
func NewVisionEngine(config VisionConfig) (*VisionEngine, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}

	model := config.Model
	if model == "" {
		model = openai.GPT4oMini
	}

	return &VisionEngine{
		client: openai.NewClientWithConfig(clientConfig),
		model:  model,
	}, nil
}

// Name returns the engine name
func (v *VisionEngine) Name() string {
	return "vision"
}

// Recognize sends the picture inline as a data URL and splits the reply
// into line fragments.
func (v *VisionEngine) Recognize(ctx context.Context, pic camera.Picture) ([]string, error) {
	path, err := pic.Path()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read picture: %w", err)
	}

	mime := pic.MIME
	if mime == "" {
		mime = "image/png"
	}
	dataURL := fmt.Sprintf("data:%s;base64,%s", mime, base64.StdEncoding.EncodeToString(data))

	req := openai.ChatCompletionRequest{
		Model: v.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{Type: openai.ChatMessagePartTypeText, Text: visionPrompt},
					{
						Type:     openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{URL: dataURL, Detail: openai.ImageURLDetailAuto},
					},
				},
			},
		},
		Temperature: 0.1,
		MaxTokens:   2000,
	}

	resp, err := v.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no choices in API response")
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" || text == noTextFound {
		return nil, failure.Empty("ocr")
	}
	return SplitLines(text), nil
}
