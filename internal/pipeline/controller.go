package pipeline

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"codeberg.org/snonux/tranx/internal/camera"
	"codeberg.org/snonux/tranx/internal/failure"
	"codeberg.org/snonux/tranx/internal/ocr"
	"codeberg.org/snonux/tranx/internal/speech"
)

// DefaultTargetLanguage is the fixed translation target
const DefaultTargetLanguage = "Chinese"

// SpeechChannel is the dictation input
type SpeechChannel interface {
	Start(ctx context.Context, emit speech.Emit) error
	Stop()
}

// ImageChannel acquires pictures. (nil, nil) means the user cancelled.
type ImageChannel interface {
	Capture(ctx context.Context, opts camera.Options) (*camera.Picture, error)
}

// Recognizer extracts text from a picture
type Recognizer interface {
	Recognize(ctx context.Context, pic camera.Picture) (ocr.Recognition, error)
}

// Translator is the translation invoker
type Translator interface {
	Translate(ctx context.Context, text, targetLanguage string) (string, error)
}

// Options tunes controller behaviour
type Options struct {
	TargetLanguage string

	// ClearResultOnCapture drops the displayed translation as soon as a new
	// picture is captured instead of leaving it until the next translate.
	ClearResultOnCapture bool

	// OnFailure is called from the loop for every failure that left the
	// state unchanged. It must not call controller actions.
	OnFailure func(op string, err error)
}

// Controller is the input-unification and translation state machine.
// Run must be running for actions to take effect; every action returns
// once its transition has been applied.
type Controller struct {
	speech     SpeechChannel
	camera     ImageChannel
	recognizer Recognizer
	translator Translator
	opts       Options

	events  chan event
	stopped chan struct{}
	runCtx  context.Context

	// st is only touched from the loop goroutine
	st state

	mu          sync.RWMutex
	snap        Snapshot
	subscribers []func(Snapshot)
}

type event struct {
	apply func() bool
	done  chan struct{}
}

// New creates a controller wired to its channels and services
func New(speechCh SpeechChannel, imageCh ImageChannel, recognizer Recognizer, translator Translator, opts Options) *Controller {
	if opts.TargetLanguage == "" {
		opts.TargetLanguage = DefaultTargetLanguage
	}

	return &Controller{
		speech:     speechCh,
		camera:     imageCh,
		recognizer: recognizer,
		translator: translator,
		opts:       opts,
		events:     make(chan event, 64),
		stopped:    make(chan struct{}),
		runCtx:     context.Background(),
	}
}

// Run processes actions and completions until ctx is cancelled.
// It must be called exactly once.
func (c *Controller) Run(ctx context.Context) error {
	c.runCtx = ctx
	defer close(c.stopped)

	for {
		select {
		case <-ctx.Done():
			if c.st.listening {
				c.speech.Stop()
			}
			return ctx.Err()
		case ev := <-c.events:
			if ev.apply() {
				c.publish()
			}
			if ev.done != nil {
				close(ev.done)
			}
		}
	}
}

// Snapshot returns the state as of the last applied transition
func (c *Controller) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snap
}

// Subscribe registers fn to be called from the loop after every state change.
// fn must not call controller actions; they would wait on the loop it runs on.
func (c *Controller) Subscribe(fn func(Snapshot)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subscribers = append(c.subscribers, fn)
}

// SetInput replaces the canonical input with typed text
func (c *Controller) SetInput(text string) {
	c.post(func() bool {
		c.st.setInput(text, false)
		return true
	}, true)
}

// StartListening opens a dictation session
func (c *Controller) StartListening() {
	c.post(func() bool {
		c.st.gen.speech++
		gen := c.st.gen.speech

		err := c.speech.Start(c.runCtx, func(text string, err error) {
			c.post(func() bool { return c.applySpeech(gen, text, err) }, false)
		})
		if err != nil {
			c.logFailure("listen", err)
			c.st.listening = false
			return true
		}
		c.st.listening = true
		return true
	}, true)
}

// StopListening ends dictation; hypotheses arriving afterwards are ignored
func (c *Controller) StopListening() {
	c.post(func() bool {
		c.speech.Stop()
		c.st.gen.speech++
		was := c.st.listening
		c.st.listening = false
		return was
	}, true)
}

// Capture requests a picture; its recognized text becomes the input
func (c *Controller) Capture(opts camera.Options) {
	c.post(func() bool {
		c.st.gen.capture++
		gen := c.st.gen.capture

		go func(ctx context.Context) {
			pic, err := c.camera.Capture(ctx, opts)
			c.post(func() bool { return c.applyCapture(gen, pic, err) }, false)
		}(c.runCtx)
		return false
	}, true)
}

// Translate requests a translation of the current input. It is a no-op
// when the input is empty.
func (c *Controller) Translate() {
	c.post(func() bool {
		text := c.st.input
		if strings.TrimSpace(text) == "" {
			log.Printf("pipeline: translate ignored, input is empty")
			return false
		}

		c.st.gen.translate++
		gen := c.st.gen.translate
		c.st.translating = true
		target := c.opts.TargetLanguage

		go func(ctx context.Context) {
			result, err := c.translator.Translate(ctx, text, target)
			c.post(func() bool { return c.applyTranslation(gen, text, result, err) }, false)
		}(c.runCtx)
		return true
	}, true)
}

// Clear resets input, picture, fragments and result and abandons every
// pending operation. It is legal in any state.
func (c *Controller) Clear() {
	c.post(func() bool {
		if c.st.listening {
			c.speech.Stop()
		}
		c.st.reset()
		return true
	}, true)
}

func (c *Controller) applySpeech(gen uint64, text string, err error) bool {
	if gen != c.st.gen.speech {
		log.Printf("pipeline: discarding stale speech result")
		return false
	}
	if err != nil {
		c.logFailure("speech", err)
		return false
	}
	c.st.setInput(text, false)
	return true
}

func (c *Controller) applyCapture(gen uint64, pic *camera.Picture, err error) bool {
	if gen != c.st.gen.capture {
		log.Printf("pipeline: discarding stale capture")
		return false
	}
	if err != nil {
		c.logFailure("capture", err)
		return false
	}
	if pic == nil {
		log.Printf("pipeline: capture cancelled")
		return false
	}

	c.st.gen.picture++
	pictureGen := c.st.gen.picture
	c.st.picture = pic
	c.st.fragments = nil
	c.st.ocrPending = true
	c.st.inputFromPicture = false
	c.st.resultCurrent = false
	if c.opts.ClearResultOnCapture {
		c.st.result = ""
		c.st.hasResult = false
	}

	picture := *pic
	go func(ctx context.Context) {
		rec, err := c.recognizer.Recognize(ctx, picture)
		c.post(func() bool { return c.applyRecognition(pictureGen, rec, err) }, false)
	}(c.runCtx)
	return true
}

func (c *Controller) applyRecognition(gen uint64, rec ocr.Recognition, err error) bool {
	if gen != c.st.gen.picture {
		log.Printf("pipeline: discarding stale recognition")
		return false
	}
	c.st.ocrPending = false
	if err != nil {
		c.logFailure("recognize", err)
		return true
	}

	c.st.fragments = rec.Fragments
	c.st.setInput(rec.Text, true)
	return true
}

// applyTranslation stores result. It is current only while the input still
// equals the translated text.
func (c *Controller) applyTranslation(gen uint64, text, result string, err error) bool {
	if gen != c.st.gen.translate {
		log.Printf("pipeline: discarding stale translation")
		return false
	}
	c.st.translating = false
	if err != nil {
		c.logFailure("translate", err)
		return true
	}

	c.st.result = result
	c.st.hasResult = true
	c.st.resultCurrent = c.st.input == text
	return true
}

func (c *Controller) logFailure(op string, err error) {
	log.Printf("pipeline: %s failed (%s): %v", op, failure.Kind(err), err)
	if c.opts.OnFailure != nil {
		c.opts.OnFailure(op, err)
	}
}

// post hands apply to the loop. With wait set it returns after apply ran.
func (c *Controller) post(apply func() bool, wait bool) {
	ev := event{apply: apply}
	if wait {
		ev.done = make(chan struct{})
	}

	select {
	case c.events <- ev:
	case <-c.stopped:
		return
	}

	if wait {
		select {
		case <-ev.done:
		case <-c.stopped:
		}
	}
}

func (c *Controller) publish() {
	snap := c.st.snapshot()

	c.mu.Lock()
	c.snap = snap
	subscribers := make([]func(Snapshot), len(c.subscribers))
	copy(subscribers, c.subscribers)
	c.mu.Unlock()

	for _, fn := range subscribers {
		fn(snap)
	}
}

// String renders a one-line summary, mainly for logs
func (s Snapshot) String() string {
	pic := "none"
	if s.Picture != nil {
		pic = s.Picture.ID
	}
	return fmt.Sprintf("phase=%s input=%q picture=%s result=%q", s.Phase, s.Input, pic, s.Result)
}
