package models

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// Lister handles listing available OpenAI models
type Lister struct {
	apiKey string
	client *openai.Client
}

// NewLister creates a new model lister. baseURL may be empty.
func NewLister(apiKey, baseURL string) *Lister {
	clientConfig := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		clientConfig.BaseURL = baseURL
	}

	return &Lister{
		apiKey: apiKey,
		client: openai.NewClientWithConfig(clientConfig),
	}
}

// Categories groups model IDs by the tranx component that can use them
type Categories struct {
	Completion    []string // translation
	Chat          []string // vision OCR
	Transcription []string // speech
}

// Categorize sorts model IDs into categories; unrelated models are dropped
func Categorize(ids []string) Categories {
	var c Categories
	for _, id := range ids {
		switch {
		case strings.Contains(id, "whisper") || strings.Contains(id, "transcribe"):
			c.Transcription = append(c.Transcription, id)
		case strings.Contains(id, "instruct") || strings.HasPrefix(id, "davinci") || strings.HasPrefix(id, "babbage"):
			c.Completion = append(c.Completion, id)
		case strings.HasPrefix(id, "gpt-4o") || strings.HasPrefix(id, "gpt-4.1"):
			c.Chat = append(c.Chat, id)
		}
	}

	sort.Strings(c.Completion)
	sort.Strings(c.Chat)
	sort.Strings(c.Transcription)
	return c
}

// ListAvailableModels writes the available OpenAI models categorized by use
func (l *Lister) ListAvailableModels(ctx context.Context, w io.Writer) error {
	if l.apiKey == "" {
		return fmt.Errorf("OpenAI API key not found. Set OPENAI_API_KEY environment variable or configure in .tranx.yaml")
	}

	models, err := l.client.ListModels(ctx)
	if err != nil {
		return fmt.Errorf("failed to list models: %w", err)
	}

	ids := make([]string, 0, len(models.Models))
	for _, model := range models.Models {
		ids = append(ids, model.ID)
	}
	c := Categorize(ids)

	fmt.Fprintln(w, "Available OpenAI Models:")
	printSection(w, "Completion Models (translation, --model):", "No completion models found", c.Completion)
	printSection(w, "Vision Chat Models (ocr.model):", "No vision models found", c.Chat)
	printSection(w, "Transcription Models (speech.model):", "No transcription models found", c.Transcription)
	return nil
}

func printSection(w io.Writer, title, empty string, ids []string) {
	fmt.Fprintf(w, "\n%s\n", title)
	if len(ids) == 0 {
		fmt.Fprintf(w, "  %s\n", empty)
		return
	}
	for _, id := range ids {
		fmt.Fprintf(w, "  %s\n", id)
	}
}
