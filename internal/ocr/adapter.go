package ocr

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"codeberg.org/snonux/tranx/internal/camera"
	"codeberg.org/snonux/tranx/internal/failure"
)

// Engine is an external OCR service
type Engine interface {
	Name() string
	Recognize(ctx context.Context, pic camera.Picture) ([]string, error)
}

// Recognition is the outcome of one OCR pass
type Recognition struct {
	Fragments []string
	Text      string
}

// Adapter normalizes engine output into a single string
type Adapter struct {
	engine Engine
}

// NewAdapter creates a recognition adapter over engine
func NewAdapter(engine Engine) *Adapter {
	return &Adapter{engine: engine}
}

// Recognize runs the engine once over pic. No fragments is reported as
// failure.ErrRecognitionEmpty; other engine errors as ErrChannelUnavailable
// unless already classified.
func (a *Adapter) Recognize(ctx context.Context, pic camera.Picture) (Recognition, error) {
	fragments, err := a.engine.Recognize(ctx, pic)
	if err != nil {
		if errors.Is(err, failure.ErrRecognitionEmpty) || errors.Is(err, failure.ErrChannelUnavailable) {
			return Recognition{}, err
		}
		return Recognition{}, failure.Unavailable("ocr", fmt.Errorf("%s: %w", a.engine.Name(), err))
	}
	if len(fragments) == 0 {
		return Recognition{}, failure.Empty("ocr")
	}

	return Recognition{
		Fragments: append([]string(nil), fragments...),
		Text:      Join(fragments),
	}, nil
}

// Join concatenates fragments with single spaces
func Join(fragments []string) string {
	return strings.Join(fragments, " ")
}

// SplitLines breaks engine text into trimmed, non-empty line fragments
func SplitLines(text string) []string {
	var fragments []string
	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			fragments = append(fragments, line)
		}
	}
	return fragments
}
