// Package handler provides the Lambda handler exposing the translation
// invoker as a serverless function.
package handler

import (
	"context"
	"fmt"
	"log"
	"strings"
	"unicode/utf8"

	"codeberg.org/snonux/tranx/internal/failure"
)

// MaxTextLength bounds the sentence accepted per request, in runes
const MaxTextLength = 2000

// Translator is the translation invoker used by the handler
type Translator interface {
	Translate(ctx context.Context, text, targetLanguage string) (string, error)
}

// Request is the input to the translation function.
type Request struct {
	Text           string `json:"text"`
	TargetLanguage string `json:"targetLanguage,omitempty"`
}

// Response is the output of the translation function.
type Response struct {
	Translation    string `json:"translation,omitempty"`
	TargetLanguage string `json:"targetLanguage,omitempty"`
	Error          string `json:"error,omitempty"`
	Kind           string `json:"kind,omitempty"`
}

// Handler translates one sentence per invocation
type Handler struct {
	translator    Translator
	defaultTarget string
}

// New creates a handler; defaultTarget applies when a request names none
func New(translator Translator, defaultTarget string) *Handler {
	return &Handler{translator: translator, defaultTarget: defaultTarget}
}

// Handle processes a translation request. Failures are reported in the
// response, never as a function error.
func (h *Handler) Handle(ctx context.Context, req Request) (*Response, error) {
	// Validate request
	if err := validateRequest(req); err != nil {
		return &Response{Error: err.Error()}, nil
	}

	target := strings.TrimSpace(req.TargetLanguage)
	if target == "" {
		target = h.defaultTarget
	}

	translation, err := h.translator.Translate(ctx, req.Text, target)
	if err != nil {
		log.Printf("handler: translate failed (%s): %v", failure.Kind(err), err)
		return &Response{
			TargetLanguage: target,
			Error:          fmt.Sprintf("translation failed: %v", err),
			Kind:           failure.Kind(err),
		}, nil
	}

	return &Response{Translation: translation, TargetLanguage: target}, nil
}

// validateRequest checks the request is valid.
func validateRequest(req Request) error {
	if strings.TrimSpace(req.Text) == "" {
		return fmt.Errorf("text is required")
	}
	if n := utf8.RuneCountInString(req.Text); n > MaxTextLength {
		return fmt.Errorf("text is too long: %d characters, maximum is %d", n, MaxTextLength)
	}
	return nil
}
