package speech

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"

	"github.com/sashabaranov/go-openai"
	"golang.org/x/text/language"
)

// Microphone records an utterance to an audio file.
type Microphone interface {
	// Ready reports whether the device can be used at all.
	Ready() error
	// Record blocks until an utterance is captured and returns its path.
	Record(ctx context.Context) (string, error)
}

// FileMicrophone replays a prerecorded audio file.
type FileMicrophone struct {
	Path string
}

// Ready checks that the audio file exists
func (m FileMicrophone) Ready() error {
	if m.Path == "" {
		return fmt.Errorf("no audio input configured")
	}
	if _, err := os.Stat(m.Path); err != nil {
		return fmt.Errorf("audio input not accessible: %w", err)
	}
	return nil
}

// Record returns the configured file
func (m FileMicrophone) Record(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return m.Path, nil
}

// WhisperConfig holds configuration for the Whisper service
type WhisperConfig struct {
	APIKey  string
	BaseURL string
	Model   string // Defaults to whisper-1
}

// WhisperService implements Service with OpenAI audio transcription.
// Each session records one utterance and reports a single hypothesis.
type WhisperService struct {
	client *openai.Client
	model  string
	mic    Microphone

	mu     sync.Mutex
	cancel context.CancelFunc
}

// NewWhisperService creates a new Whisper-backed recognition service
func NewWhisperService(config WhisperConfig, mic Microphone) (*WhisperService, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}
	if mic == nil {
		return nil, fmt.Errorf("microphone is required")
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}

	model := config.Model
	if model == "" {
		model = openai.Whisper1
	}

	return &WhisperService{
		client: openai.NewClientWithConfig(clientConfig),
		model:  model,
		mic:    mic,
	}, nil
}

// Start records and transcribes in the background. Recording and API
// failures reach listener as an empty result.
func (w *WhisperService) Start(ctx context.Context, locale string, listener Listener) error {
	return w.StartReporting(ctx, locale, listener, nil)
}

// StartReporting is Start with recording and API failures passed to report.
func (w *WhisperService) StartReporting(ctx context.Context, locale string, listener Listener, report func(error)) error {
	if err := w.mic.Ready(); err != nil {
		return err
	}

	w.mu.Lock()
	if w.cancel != nil {
		w.cancel()
	}
	sessionCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.mu.Unlock()

	lang := ""
	if tag, err := language.Parse(locale); err == nil {
		base, _ := tag.Base()
		lang = base.String()
	}

	fail := func(err error) {
		if report != nil {
			report(err)
			return
		}
		listener(nil)
	}

	go w.run(sessionCtx, lang, listener, fail)
	return nil
}

func (w *WhisperService) run(ctx context.Context, lang string, listener Listener, fail func(error)) {
	path, err := w.mic.Record(ctx)
	if err != nil {
		if ctx.Err() == nil {
			log.Printf("speech: recording failed: %v", err)
			fail(fmt.Errorf("recording failed: %w", err))
		}
		return
	}

	resp, err := w.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    w.model,
		FilePath: path,
		Language: lang,
	})
	if ctx.Err() != nil {
		return
	}
	if err != nil {
		log.Printf("speech: transcription failed: %v", err)
		fail(fmt.Errorf("transcription failed: %w", err))
		return
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		listener(nil)
		return
	}
	listener([]string{text})
}

// Stop cancels the running session, if any
func (w *WhisperService) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.cancel != nil {
		w.cancel()
		w.cancel = nil
	}
	return nil
}

// Name returns the service name
func (w *WhisperService) Name() string {
	return "whisper"
}
