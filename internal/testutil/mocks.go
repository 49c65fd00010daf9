package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"codeberg.org/snonux/tranx/internal/camera"
	"codeberg.org/snonux/tranx/internal/speech"
)

// Reply is a value or error released through a Gate
type Reply[T any] struct {
	Value T
	Err   error
}

// Gate holds asynchronous calls until the test releases them by key.
// Resolve may be called before or after the call arrives.
type Gate[T any] struct {
	mu    sync.Mutex
	chans map[string]chan Reply[T]
}

func (g *Gate[T]) ch(key string) chan Reply[T] {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.chans == nil {
		g.chans = make(map[string]chan Reply[T])
	}
	c, ok := g.chans[key]
	if !ok {
		c = make(chan Reply[T], 1)
		g.chans[key] = c
	}
	return c
}

// Resolve releases the call waiting on key
func (g *Gate[T]) Resolve(key string, value T, err error) {
	g.ch(key) <- Reply[T]{Value: value, Err: err}
}

// Wait blocks until key is resolved or ctx is done
func (g *Gate[T]) Wait(ctx context.Context, key string) (T, error) {
	select {
	case r := <-g.ch(key):
		return r.Value, r.Err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// calls records invocations for later assertions
type calls struct {
	mu  sync.Mutex
	log []string
}

func (c *calls) add(call string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.log = append(c.log, call)
}

// Calls returns a copy of the recorded invocations
func (c *calls) Calls() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.log...)
}

// CallCount returns the number of recorded invocations
func (c *calls) CallCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.log)
}

// MockTranslator mocks the translation invoker. With Hold set every call
// waits for Resolve(text, ...); otherwise it answers from Translations or
// with a default rendering.
type MockTranslator struct {
	calls
	Gate[string]

	Hold         bool
	Translations map[string]string
	Errors       map[string]error
}

// Translate mocks translating text
func (m *MockTranslator) Translate(ctx context.Context, text, targetLanguage string) (string, error) {
	m.add(fmt.Sprintf("%s -> %s", text, targetLanguage))

	if m.Hold {
		return m.Wait(ctx, text)
	}
	if err, ok := m.Errors[text]; ok {
		return "", err
	}
	if translation, ok := m.Translations[text]; ok {
		return translation, nil
	}
	return fmt.Sprintf("mock translation of %s", text), nil
}

// Name returns the provider name
func (m *MockTranslator) Name() string { return "mock" }

// MockOCREngine mocks an OCR engine keyed by picture URI
type MockOCREngine struct {
	calls
	Gate[[]string]

	Hold      bool
	Fragments map[string][]string
	Errors    map[string]error
}

// Name returns the engine name
func (m *MockOCREngine) Name() string { return "mock" }

// Recognize mocks text recognition
func (m *MockOCREngine) Recognize(ctx context.Context, pic camera.Picture) ([]string, error) {
	m.add(pic.URI)

	if m.Hold {
		return m.Wait(ctx, pic.URI)
	}
	if err, ok := m.Errors[pic.URI]; ok {
		return nil, err
	}
	return m.Fragments[pic.URI], nil
}

// MockCamera mocks the capture facility. An empty path cancels; the
// picture URI is "file://" + path.
type MockCamera struct {
	calls

	Errors map[string]error
}

// Capture mocks a capture request
func (m *MockCamera) Capture(ctx context.Context, opts camera.Options) (camera.Response, error) {
	m.add(opts.Path)

	if opts.Path == "" {
		return camera.Response{Cancelled: true}, nil
	}
	if err, ok := m.Errors[opts.Path]; ok {
		return camera.Response{}, err
	}
	uri := "file://" + opts.Path
	return camera.Response{Picture: &camera.Picture{ID: opts.Path, URI: uri, MIME: "image/png"}}, nil
}

// MockSpeechService mocks a microphone recognition service
type MockSpeechService struct {
	calls

	StartErr error
	// Reply, when set, is delivered asynchronously to every new session
	Reply []string

	mu       sync.Mutex
	listener speech.Listener
}

// Start mocks starting a session
func (m *MockSpeechService) Start(ctx context.Context, locale string, listener speech.Listener) error {
	m.add("start " + locale)
	if m.StartErr != nil {
		return m.StartErr
	}
	m.mu.Lock()
	m.listener = listener
	m.mu.Unlock()

	if m.Reply != nil {
		go listener(m.Reply)
	}
	return nil
}

// Stop mocks stopping a session
func (m *MockSpeechService) Stop() error {
	m.add("stop")
	return nil
}

// Name returns the service name
func (m *MockSpeechService) Name() string { return "mock" }

// Hypotheses delivers a result to the listener of the latest session.
// It reports false when no session was ever started.
func (m *MockSpeechService) Hypotheses(hypotheses ...string) bool {
	m.mu.Lock()
	listener := m.listener
	m.mu.Unlock()
	if listener == nil {
		return false
	}
	listener(hypotheses)
	return true
}

// Count returns how many recorded calls start with prefix
func (m *MockSpeechService) Count(prefix string) int {
	n := 0
	for _, call := range m.Calls() {
		if strings.HasPrefix(call, prefix) {
			n++
		}
	}
	return n
}
