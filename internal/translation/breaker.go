package translation

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/sony/gobreaker"

	"codeberg.org/snonux/tranx/internal/failure"
)

// Breaker guards a Provider with a circuit breaker. While open, calls fail
// immediately without reaching the service.
type Breaker struct {
	next Provider
	cb   *gobreaker.CircuitBreaker
}

// NewBreaker trips after maxFailures consecutive failures and probes again
// after timeout.
func NewBreaker(next Provider, maxFailures uint32, timeout time.Duration) *Breaker {
	settings := gobreaker.Settings{
		Name:        next.Name(),
		MaxRequests: 1,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		IsSuccessful: func(err error) bool {
			// Cancelled requests say nothing about service health.
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Printf("translation: breaker %s %s -> %s", name, from, to)
		},
	}
	return &Breaker{next: next, cb: gobreaker.NewCircuitBreaker(settings)}
}

// Translate forwards to the wrapped provider unless the breaker is open.
func (b *Breaker) Translate(ctx context.Context, text, targetLanguage string) (string, error) {
	out, err := b.cb.Execute(func() (interface{}, error) {
		return b.next.Translate(ctx, text, targetLanguage)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return "", fmt.Errorf("%w: %s: %w", failure.ErrTranslationFailed, b.next.Name(), err)
		}
		return "", err
	}
	return out.(string), nil
}

// Name returns the wrapped provider name
func (b *Breaker) Name() string {
	return b.next.Name()
}

// State reports the breaker state.
func (b *Breaker) State() gobreaker.State {
	return b.cb.State()
}
