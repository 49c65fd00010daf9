package speech

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/snonux/tranx/internal/failure"
)

type fakeService struct {
	mu       sync.Mutex
	starts   int
	stops    int
	locale   string
	listener Listener
	startErr error
}

func (f *fakeService) Start(ctx context.Context, locale string, listener Listener) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.startErr != nil {
		return f.startErr
	}
	f.starts++
	f.locale = locale
	f.listener = listener
	return nil
}

func (f *fakeService) Stop() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stops++
	return nil
}

func (f *fakeService) Name() string { return "fake" }

type emitted struct {
	text string
	err  error
}

func collect() (Emit, *[]emitted) {
	var out []emitted
	return func(text string, err error) {
		out = append(out, emitted{text, err})
	}, &out
}

func TestNewChannel_Locale(t *testing.T) {
	c, err := NewChannel(&fakeService{}, "", nil)
	require.NoError(t, err)
	assert.Equal(t, "en-US", c.Locale())

	c, err = NewChannel(&fakeService{}, "de-de", nil)
	require.NoError(t, err)
	assert.Equal(t, "de-DE", c.Locale())

	_, err = NewChannel(&fakeService{}, "not a locale!", nil)
	assert.Error(t, err)
}

func TestChannel_TakesFirstHypothesis(t *testing.T) {
	svc := &fakeService{}
	c, err := NewChannel(svc, "en-US", nil)
	require.NoError(t, err)

	emit, out := collect()
	require.NoError(t, c.Start(context.Background(), emit))
	assert.Equal(t, "en-US", svc.locale)

	svc.listener([]string{"Good morning", "Good mourning"})
	svc.listener([]string{"Something later"})

	require.Len(t, *out, 1)
	assert.Equal(t, "Good morning", (*out)[0].text)
	assert.NoError(t, (*out)[0].err)
}

func TestChannel_EmptyHypotheses(t *testing.T) {
	svc := &fakeService{}
	c, err := NewChannel(svc, "en-US", nil)
	require.NoError(t, err)

	emit, out := collect()
	require.NoError(t, c.Start(context.Background(), emit))

	svc.listener(nil)
	svc.listener([]string{"Hello"})

	require.Len(t, *out, 2)
	assert.True(t, errors.Is((*out)[0].err, failure.ErrRecognitionEmpty))
	assert.Equal(t, "Hello", (*out)[1].text)
}

func TestChannel_StartFailureIsUnavailable(t *testing.T) {
	svc := &fakeService{startErr: errors.New("microphone permission denied")}
	c, err := NewChannel(svc, "en-US", nil)
	require.NoError(t, err)

	emit, _ := collect()
	err = c.Start(context.Background(), emit)
	assert.True(t, errors.Is(err, failure.ErrChannelUnavailable))
	assert.False(t, c.Active())
}

func TestChannel_StopIsIdempotent(t *testing.T) {
	svc := &fakeService{}
	dismissed := 0
	c, err := NewChannel(svc, "en-US", func() { dismissed++ })
	require.NoError(t, err)

	c.Stop()
	assert.Equal(t, 0, svc.stops, "no session, nothing to stop")
	assert.Equal(t, 1, dismissed)

	emit, _ := collect()
	require.NoError(t, c.Start(context.Background(), emit))
	assert.True(t, c.Active())

	c.Stop()
	c.Stop()
	assert.Equal(t, 1, svc.stops)
	assert.Equal(t, 3, dismissed)
	assert.False(t, c.Active())
}

func TestChannel_RestartStopsPreviousSession(t *testing.T) {
	svc := &fakeService{}
	c, err := NewChannel(svc, "en-US", nil)
	require.NoError(t, err)

	emit, _ := collect()
	require.NoError(t, c.Start(context.Background(), emit))
	require.NoError(t, c.Start(context.Background(), emit))

	assert.Equal(t, 2, svc.starts)
	assert.Equal(t, 1, svc.stops)
}

func TestChannel_UnavailableService(t *testing.T) {
	ch, err := NewChannel(UnavailableService{Reason: errors.New("no OpenAI API key")}, "", nil)
	require.NoError(t, err)

	err = ch.Start(context.Background(), func(string, error) {})
	require.ErrorIs(t, err, failure.ErrChannelUnavailable)
	assert.Contains(t, err.Error(), "no OpenAI API key")
	assert.False(t, ch.Active())
}
