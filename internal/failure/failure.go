package failure

import (
	"errors"
	"fmt"
)

var (
	// ErrChannelUnavailable reports a permission, hardware or service denial
	// on an input channel.
	ErrChannelUnavailable = errors.New("channel unavailable")

	// ErrRecognitionEmpty reports that a speech session or an OCR pass
	// produced no text.
	ErrRecognitionEmpty = errors.New("recognition empty")

	// ErrTranslationFailed reports a network, status or parse error from
	// the completion service.
	ErrTranslationFailed = errors.New("translation failed")
)

// Kind names the taxonomy class of err for logging.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrChannelUnavailable):
		return "ChannelUnavailable"
	case errors.Is(err, ErrRecognitionEmpty):
		return "RecognitionEmpty"
	case errors.Is(err, ErrTranslationFailed):
		return "TranslationFailed"
	default:
		return "Unclassified"
	}
}

// Unavailable wraps err as a channel denial.
func Unavailable(channel string, err error) error {
	return fmt.Errorf("%s: %w: %v", channel, ErrChannelUnavailable, err)
}

// Empty reports that channel produced no text.
func Empty(channel string) error {
	return fmt.Errorf("%s: %w", channel, ErrRecognitionEmpty)
}
