package processor

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"codeberg.org/snonux/tranx/internal/batch"
	"codeberg.org/snonux/tranx/internal/camera"
	"codeberg.org/snonux/tranx/internal/cli"
	"codeberg.org/snonux/tranx/internal/config"
	"codeberg.org/snonux/tranx/internal/console"
	"codeberg.org/snonux/tranx/internal/ocr"
	"codeberg.org/snonux/tranx/internal/pipeline"
	"codeberg.org/snonux/tranx/internal/speech"
	"codeberg.org/snonux/tranx/internal/translation"
)

// OneShotTimeout bounds a single non-interactive pipeline pass
const OneShotTimeout = 2 * time.Minute

// Components are the external services the pipeline runs on
type Components struct {
	Translator translation.Provider
	Speech     speech.Service
	Camera     camera.Facility
	OCR        ocr.Engine

	// Dismiss releases text-entry focus when dictation stops; may be nil
	Dismiss func()
}

// Processor handles the main translation logic
type Processor struct {
	cfg   *config.Config
	flags *cli.Flags
	comps Components
	out   io.Writer
}

// NewProcessor creates a new processor writing results to out
func NewProcessor(cfg *config.Config, flags *cli.Flags, comps Components, out io.Writer) (*Processor, error) {
	if comps.Translator == nil {
		return nil, fmt.Errorf("no translator configured")
	}
	if comps.Speech == nil || comps.Camera == nil || comps.OCR == nil {
		return nil, fmt.Errorf("incomplete components: speech, camera and OCR are required")
	}

	return &Processor{cfg: cfg, flags: flags, comps: comps, out: out}, nil
}

// newController builds a controller over the components. Run is started by
// the caller.
func (p *Processor) newController(onFailure func(op string, err error)) (*pipeline.Controller, error) {
	speechCh, err := speech.NewChannel(p.comps.Speech, p.cfg.SpeechLocale, p.comps.Dismiss)
	if err != nil {
		return nil, err
	}

	return pipeline.New(
		speechCh,
		camera.NewChannel(p.comps.Camera),
		ocr.NewAdapter(p.comps.OCR),
		p.comps.Translator,
		pipeline.Options{
			TargetLanguage:       p.cfg.TargetLanguage,
			ClearResultOnCapture: p.cfg.ClearResultOnCapture,
			OnFailure:            onFailure,
		},
	), nil
}

// ProcessOnce runs one pipeline pass: dictation from --audio, then
// recognition of --image, then the sentence argument. The last resolved
// input is translated and the translation returned.
func (p *Processor) ProcessOnce(ctx context.Context, args []string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, OneShotTimeout)
	defer cancel()

	w := newWatcher()
	ctrl, err := p.newController(w.fail)
	if err != nil {
		return "", err
	}
	ctrl.Subscribe(w.notify)

	done := make(chan struct{})
	go func() {
		ctrl.Run(ctx)
		close(done)
	}()
	defer func() {
		cancel()
		<-done
	}()

	if p.flags.AudioPath != "" {
		fmt.Fprintf(p.out, "Listening to %s...\n", p.flags.AudioPath)
		ctrl.StartListening()
		err := w.wait(ctx, ctrl, func(s pipeline.Snapshot) bool { return s.Input != "" })
		ctrl.StopListening()
		if err != nil {
			return "", fmt.Errorf("speech input failed: %w", err)
		}
		fmt.Fprintf(p.out, "Heard: %s\n", ctrl.Snapshot().Input)
	}

	if p.flags.ImagePath != "" {
		fmt.Fprintf(p.out, "Recognizing %s...\n", p.flags.ImagePath)
		ctrl.Capture(camera.Options{Path: p.flags.ImagePath})
		err := w.wait(ctx, ctrl, func(s pipeline.Snapshot) bool { return s.Phase == pipeline.PhaseRecognized })
		if err != nil {
			return "", fmt.Errorf("image input failed: %w", err)
		}
		fmt.Fprintf(p.out, "Recognized: %s\n", ctrl.Snapshot().Input)
	}

	if len(args) > 0 {
		ctrl.SetInput(args[0])
	}

	input := ctrl.Snapshot().Input
	if strings.TrimSpace(input) == "" {
		return "", fmt.Errorf("nothing to translate")
	}

	ctrl.Translate()
	err = w.wait(ctx, ctrl, func(s pipeline.Snapshot) bool { return s.Phase == pipeline.PhaseTranslated })
	if err != nil {
		return "", err
	}
	return ctrl.Snapshot().Result, nil
}

// ProcessBatch translates every sentence of the batch file. Failed
// sentences are reported and skipped.
func (p *Processor) ProcessBatch(ctx context.Context) error {
	entries, err := batch.ReadBatchFile(p.flags.BatchFile)
	if err != nil {
		return err
	}

	// Track statistics
	translated := 0
	failed := 0

	for i, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}

		target := p.cfg.TargetLanguage
		fmt.Fprintf(p.out, "\n%d/%d: %s\n", i+1, len(entries), entry.Sentence)
		result, err := p.comps.Translator.Translate(ctx, entry.Sentence, target)
		if err != nil {
			log.Printf("batch: line %d: %v", entry.Line, err)
			fmt.Fprintf(p.out, "  error (line %d): %v\n", entry.Line, err)
			failed++
			continue
		}
		fmt.Fprintf(p.out, "  %s: %s\n", target, result)
		translated++
	}

	// Print summary
	fmt.Fprintf(p.out, "\n=== Batch Summary ===\n")
	fmt.Fprintf(p.out, "Total sentences: %d\n", len(entries))
	fmt.Fprintf(p.out, "Translated: %d\n", translated)
	if failed > 0 {
		fmt.Fprintf(p.out, "Errors: %d\n", failed)
		return fmt.Errorf("%d of %d sentences failed", failed, len(entries))
	}
	return nil
}

// RunConsole runs the interactive console on in until it quits
func (p *Processor) RunConsole(ctx context.Context, in io.Reader) error {
	var con *console.Console
	ctrl, err := p.newController(func(op string, err error) {
		con.ReportFailure(op, err)
	})
	if err != nil {
		return err
	}
	con = console.New(ctrl, in, p.out)

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		ctrl.Run(ctx)
		close(done)
	}()
	defer func() {
		cancel()
		<-done
	}()

	fmt.Fprintf(p.out, "tranx: English to %s using %s, OCR by %s\n",
		p.cfg.TargetLanguage, p.comps.Translator.Name(), p.comps.OCR.Name())
	return con.Run(ctx)
}
