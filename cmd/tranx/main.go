package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"codeberg.org/snonux/tranx/internal/camera"
	"codeberg.org/snonux/tranx/internal/cli"
	"codeberg.org/snonux/tranx/internal/config"
	"codeberg.org/snonux/tranx/internal/logutil"
	"codeberg.org/snonux/tranx/internal/models"
	"codeberg.org/snonux/tranx/internal/ocr"
	"codeberg.org/snonux/tranx/internal/ocr/tesseract"
	"codeberg.org/snonux/tranx/internal/processor"
	"codeberg.org/snonux/tranx/internal/speech"
	"codeberg.org/snonux/tranx/internal/translation"
)

func main() {
	// Create flags instance
	flags := cli.NewFlags()

	// Create root command
	rootCmd := cli.CreateRootCommand(flags)

	// Set up command initialization
	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	// Set the run function
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd, args, flags)
	}

	// Execute command
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCommand(cmd *cobra.Command, args []string, flags *cli.Flags) error {
	cfg, err := cli.LoadConfig()
	if err != nil {
		return err
	}

	closer, err := logutil.Setup(cfg.LogEnable, cfg.LogFile)
	if err != nil {
		return err
	}
	defer closer.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Handle --list-models flag
	if flags.ListModels {
		lister := models.NewLister(cfg.OpenAIKey, "")
		return lister.ListAvailableModels(ctx, os.Stdout)
	}

	comps, err := buildComponents(cfg, flags)
	if err != nil {
		return err
	}

	proc, err := processor.NewProcessor(cfg, flags, comps, os.Stdout)
	if err != nil {
		return err
	}

	switch {
	case flags.BatchFile != "":
		return proc.ProcessBatch(ctx)
	case flags.OneShot(args):
		result, err := proc.ProcessOnce(ctx, args)
		if err != nil {
			return err
		}
		fmt.Println(result)
		return nil
	default:
		// No input provided - run the interactive console by default
		return proc.RunConsole(ctx, os.Stdin)
	}
}

// buildComponents creates the external services selected by cfg
func buildComponents(cfg *config.Config, flags *cli.Flags) (processor.Components, error) {
	var comps processor.Components

	translator, err := translation.NewProvider(cfg.TranslationConfig())
	if err != nil {
		return comps, fmt.Errorf("translation: %w", err)
	}
	comps.Translator = translator
	log.Printf("translation: %s, key %s", translator.Name(), logutil.RedactKey(cfg.TranslationConfig().APIKey))

	whisper, err := speech.NewWhisperService(cfg.WhisperConfig(), speech.FileMicrophone{Path: flags.AudioPath})
	if err != nil {
		// Dictation is optional; sessions report ChannelUnavailable instead
		log.Printf("speech: %v", err)
		comps.Speech = speech.UnavailableService{Reason: err}
	} else {
		comps.Speech = whisper
	}

	comps.Camera = camera.NewFileFacility()

	switch cfg.OCREngine {
	case config.EngineVision:
		comps.OCR, err = ocr.NewVisionEngine(cfg.VisionConfig())
	default:
		comps.OCR, err = tesseract.New(cfg.OCRLanguages)
	}
	if err != nil {
		return comps, fmt.Errorf("ocr: %w", err)
	}

	return comps, nil
}
