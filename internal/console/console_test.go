package console

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/snonux/tranx/internal/camera"
	"codeberg.org/snonux/tranx/internal/ocr"
	"codeberg.org/snonux/tranx/internal/pipeline"
	"codeberg.org/snonux/tranx/internal/speech"
	"codeberg.org/snonux/tranx/internal/testutil"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type fixture struct {
	ctrl       *pipeline.Controller
	speech     *testutil.MockSpeechService
	engine     *testutil.MockOCREngine
	translator *testutil.MockTranslator
	out        *syncBuffer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		speech:     &testutil.MockSpeechService{},
		engine:     &testutil.MockOCREngine{Fragments: map[string][]string{}},
		translator: &testutil.MockTranslator{},
		out:        &syncBuffer{},
	}
	speechCh, err := speech.NewChannel(f.speech, "", nil)
	require.NoError(t, err)
	f.ctrl = pipeline.New(speechCh, camera.NewChannel(&testutil.MockCamera{}), ocr.NewAdapter(f.engine), f.translator, pipeline.Options{})

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go f.ctrl.Run(ctx)
	return f
}

func TestConsole_TypeAndTranslate(t *testing.T) {
	f := newFixture(t)
	f.translator.Translations = map[string]string{"Hello world": "你好，世界"}
	c := New(f.ctrl, strings.NewReader(""), f.out)

	assert.False(t, c.Execute("Hello world"))
	assert.False(t, c.Execute(":translate"))

	require.Eventually(t, func() bool {
		return strings.Contains(f.out.String(), "result: 你好，世界")
	}, 5*time.Second, 5*time.Millisecond)
	assert.Contains(t, f.out.String(), "[Editing]")
	assert.Contains(t, f.out.String(), "[Translated]")
}

func TestConsole_Capture(t *testing.T) {
	f := newFixture(t)
	f.engine.Fragments["file:///sign.png"] = []string{"No", "parking"}
	c := New(f.ctrl, strings.NewReader(""), f.out)

	c.Execute(":capture /sign.png")

	require.Eventually(t, func() bool {
		return f.ctrl.Snapshot().Phase == pipeline.PhaseRecognized
	}, 5*time.Second, 5*time.Millisecond)
	assert.Equal(t, "No parking", f.ctrl.Snapshot().Input)
	assert.Contains(t, f.out.String(), "image:  file:///sign.png")
}

func TestConsole_ListenAndStop(t *testing.T) {
	f := newFixture(t)
	c := New(f.ctrl, strings.NewReader(""), f.out)

	c.Execute(":listen")
	assert.True(t, f.ctrl.Snapshot().Listening)
	require.True(t, f.speech.Hypotheses("Good morning"))
	require.Eventually(t, func() bool {
		return f.ctrl.Snapshot().Input == "Good morning"
	}, 5*time.Second, 5*time.Millisecond)

	c.Execute(":stop")
	assert.False(t, f.ctrl.Snapshot().Listening)
}

func TestConsole_ClearAndShow(t *testing.T) {
	f := newFixture(t)
	c := New(f.ctrl, strings.NewReader(""), f.out)

	c.Execute("something")
	c.Execute(":clear")
	assert.Equal(t, pipeline.PhaseIdle, f.ctrl.Snapshot().Phase)

	c.Execute(":show")
	assert.True(t, strings.HasSuffix(f.out.String(), "[Idle]\n  input:  \n"))
}

func TestConsole_UnknownCommand(t *testing.T) {
	f := newFixture(t)
	c := New(f.ctrl, strings.NewReader(""), f.out)

	assert.False(t, c.Execute(":fly"))
	assert.Contains(t, f.out.String(), `unknown command "fly"`)
	assert.Empty(t, f.ctrl.Snapshot().Input)
}

func TestConsole_ReportFailure(t *testing.T) {
	f := newFixture(t)
	c := New(f.ctrl, strings.NewReader(""), f.out)

	c.ReportFailure("translate", errors.New("boom"))
	assert.Contains(t, f.out.String(), "! translate failed: boom")
}

func TestConsole_Run(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"quit", "Hello\n:quit\nignored\n", "Hello"},
		{"end of input", "Hello there\n", "Hello there"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			c := New(f.ctrl, strings.NewReader(tt.input), f.out)

			require.NoError(t, c.Run(context.Background()))
			assert.Equal(t, tt.want, f.ctrl.Snapshot().Input)
			assert.Contains(t, f.out.String(), "Commands:")
		})
	}
}

func TestConsole_RunCancelled(t *testing.T) {
	f := newFixture(t)
	c := New(f.ctrl, blockingReader{}, f.out)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, c.Run(ctx), context.Canceled)
}

type blockingReader struct{}

func (blockingReader) Read(p []byte) (int, error) {
	select {}
}
