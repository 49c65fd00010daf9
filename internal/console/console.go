// Package console is a line-oriented front end for the pipeline
// controller. Plain lines replace the input; lines starting with ':' are
// commands.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"codeberg.org/snonux/tranx/internal/camera"
	"codeberg.org/snonux/tranx/internal/pipeline"
)

// Controller is the subset of the pipeline controller driven by the console
type Controller interface {
	SetInput(text string)
	StartListening()
	StopListening()
	Capture(opts camera.Options)
	Translate()
	Clear()
	Snapshot() pipeline.Snapshot
	Subscribe(fn func(pipeline.Snapshot))
}

const help = `Commands:
  :listen          start dictation
  :stop            stop dictation
  :capture <path>  recognize text in a picture
  :translate       translate the current input
  :clear           reset everything
  :show            print the current state
  :help            show this help
  :quit            leave
Any other line replaces the input.`

// Console reads commands from in and reports state changes to out
type Console struct {
	ctrl Controller
	in   io.Reader

	mu  sync.Mutex
	out io.Writer
}

// New creates a console and subscribes it to state changes of ctrl
func New(ctrl Controller, in io.Reader, out io.Writer) *Console {
	c := &Console{ctrl: ctrl, in: in, out: out}
	ctrl.Subscribe(c.render)
	return c
}

// Run processes lines until :quit, end of input or ctx cancellation
func (c *Console) Run(ctx context.Context) error {
	c.println(help)

	lines := make(chan string)
	errs := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(c.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		errs <- scanner.Err()
		close(lines)
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				if err := <-errs; err != nil {
					return fmt.Errorf("failed to read input: %w", err)
				}
				return nil
			}
			if quit := c.Execute(line); quit {
				return nil
			}
		}
	}
}

// Execute runs one console line and reports whether the console should exit
func (c *Console) Execute(line string) bool {
	if !strings.HasPrefix(line, ":") {
		c.ctrl.SetInput(line)
		return false
	}

	cmd, arg, _ := strings.Cut(strings.TrimPrefix(line, ":"), " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(cmd) {
	case "listen":
		c.ctrl.StartListening()
	case "stop":
		c.ctrl.StopListening()
	case "capture":
		// An empty path is a cancelled capture
		c.ctrl.Capture(camera.Options{Path: arg})
	case "translate":
		c.ctrl.Translate()
	case "clear":
		c.ctrl.Clear()
	case "show":
		c.render(c.ctrl.Snapshot())
	case "help":
		c.println(help)
	case "quit", "q":
		return true
	default:
		c.println(fmt.Sprintf("unknown command %q, try :help", cmd))
	}
	return false
}

// ReportFailure prints a failure that left the state unchanged
func (c *Console) ReportFailure(op string, err error) {
	c.println(fmt.Sprintf("! %s failed: %v", op, err))
}

// render prints a snapshot; it is called from the controller loop as well
func (c *Console) render(s pipeline.Snapshot) {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s]", s.Phase)
	if s.Listening {
		b.WriteString(" (listening)")
	}
	fmt.Fprintf(&b, "\n  input:  %s", s.Input)
	if s.Picture != nil {
		fmt.Fprintf(&b, "\n  image:  %s (%s)", s.Picture.URI, s.Picture.ID)
	}
	if len(s.Fragments) > 0 {
		fmt.Fprintf(&b, "\n  lines:  %d", len(s.Fragments))
	}
	if s.HasResult {
		fmt.Fprintf(&b, "\n  result: %s", s.Result)
	}
	c.println(b.String())
}

func (c *Console) println(s string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.out, s)
}
