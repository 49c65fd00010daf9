// Package tesseract provides a local OCR engine backed by libtesseract.
package tesseract

import (
	"context"
	"fmt"

	"github.com/otiai10/gosseract/v2"

	"codeberg.org/snonux/tranx/internal/camera"
	"codeberg.org/snonux/tranx/internal/ocr"
)

// Engine implements ocr.Engine using a fresh gosseract client per picture
type Engine struct {
	languages     []string
	clientFactory func() *gosseract.Client
}

// New creates a Tesseract engine. Language hints may be BCP-47 or ISO 639
// codes and default to English.
func New(languages []string) (*Engine, error) {
	langs, err := ocr.TesseractLanguages(languages)
	if err != nil {
		return nil, err
	}
	return &Engine{languages: langs, clientFactory: gosseract.NewClient}, nil
}

// Name returns the engine name
func (e *Engine) Name() string { return "tesseract" }

// Recognize returns the text lines Tesseract finds in pic
func (e *Engine) Recognize(ctx context.Context, pic camera.Picture) ([]string, error) {
	path, err := pic.Path()
	if err != nil {
		return nil, err
	}

	c := e.clientFactory()
	defer c.Close()

	if err := c.SetLanguage(e.languages...); err != nil {
		return nil, fmt.Errorf("set languages: %w", err)
	}
	if err := c.SetImage(path); err != nil {
		return nil, fmt.Errorf("set image: %w", err)
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	text, err := c.Text()
	if err != nil {
		return nil, fmt.Errorf("recognize text: %w", err)
	}
	return ocr.SplitLines(text), nil
}
