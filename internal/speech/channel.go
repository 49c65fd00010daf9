package speech

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"golang.org/x/text/language"

	"codeberg.org/snonux/tranx/internal/failure"
)

// DefaultLocale is used when no locale is configured.
const DefaultLocale = "en-US"

// Listener receives the ordered hypotheses of one recognition result.
type Listener func(hypotheses []string)

// Service is an external speech-recognition service bound to a microphone.
type Service interface {
	// Start begins a session; results are delivered to listener from any
	// goroutine until Stop is called.
	Start(ctx context.Context, locale string, listener Listener) error

	// Stop ends the current session. It must tolerate having no session.
	Stop() error

	// Name returns the service name
	Name() string
}

// ErrorReporter is implemented by services that can tell why a session
// ended without a result. Channel reports such causes as
// failure.ErrChannelUnavailable instead of an empty recognition.
type ErrorReporter interface {
	StartReporting(ctx context.Context, locale string, listener Listener, report func(error)) error
}

// Emit receives the single outcome of a session: a text or an error.
type Emit func(text string, err error)

// Channel turns a Service into an input channel yielding at most one text
// per session.
type Channel struct {
	service Service
	locale  string
	dismiss func()

	mu     sync.Mutex
	active bool
}

// NewChannel validates locale and binds the channel to service. dismiss is
// invoked on every Stop to release pending text-entry focus; it may be nil.
func NewChannel(service Service, locale string, dismiss func()) (*Channel, error) {
	if locale == "" {
		locale = DefaultLocale
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid speech locale %q: %w", locale, err)
	}

	return &Channel{
		service: service,
		locale:  tag.String(),
		dismiss: dismiss,
	}, nil
}

// Locale returns the canonical BCP-47 locale of the channel.
func (c *Channel) Locale() string {
	return c.locale
}

// Start begins a new session, ending any session still running. emit is
// called with the first hypothesis of the first non-empty result; results
// without hypotheses are reported as failure.ErrRecognitionEmpty.
func (c *Channel) Start(ctx context.Context, emit Emit) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.active {
		if err := c.service.Stop(); err != nil {
			log.Printf("speech: stopping previous session: %v", err)
		}
		c.active = false
	}

	var once sync.Once
	listener := func(hypotheses []string) {
		if len(hypotheses) == 0 || strings.TrimSpace(hypotheses[0]) == "" {
			emit("", failure.Empty("speech"))
			return
		}
		once.Do(func() {
			emit(hypotheses[0], nil)
		})
	}

	var err error
	if r, ok := c.service.(ErrorReporter); ok {
		err = r.StartReporting(ctx, c.locale, listener, func(cause error) {
			emit("", failure.Unavailable("speech", cause))
		})
	} else {
		err = c.service.Start(ctx, c.locale, listener)
	}
	if err != nil {
		return failure.Unavailable("speech", err)
	}
	c.active = true
	return nil
}

// Stop ends the session if one is running and dismisses text-entry focus.
// It is safe to call at any time.
func (c *Channel) Stop() {
	c.mu.Lock()
	if c.active {
		if err := c.service.Stop(); err != nil {
			log.Printf("speech: stop: %v", err)
		}
		c.active = false
	}
	c.mu.Unlock()

	if c.dismiss != nil {
		c.dismiss()
	}
}

// Active reports whether a session is running.
func (c *Channel) Active() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}
