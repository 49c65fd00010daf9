package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/tranx/internal"
	"codeberg.org/snonux/tranx/internal/config"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tranx [sentence]",
		Short: "English sentence translator",
		Long: `tranx translates English sentences typed, spoken or photographed.

Text from the keyboard, a recorded utterance or a picture of printed text
becomes the current input, which is translated by a language model.

Examples:
  tranx                              # Interactive console (default)
  tranx "Hello world"                # Translate a sentence
  tranx --image sign.png             # Recognize and translate a picture
  tranx --audio hello.wav --target German
  tranx --batch sentences.txt        # Translate a file of sentences`,
		Args:    cobra.MaximumNArgs(1),
		Version: internal.Version,
	}

	// Set up flags
	setupFlags(rootCmd, flags)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.tranx.yaml)")

	// Local flags
	cmd.Flags().StringVarP(&flags.TargetLanguage, "target", "t", flags.TargetLanguage, "Target language name used in the prompt")
	cmd.Flags().StringVar(&flags.Provider, "provider", flags.Provider, "Translation provider: openai or gemini")
	cmd.Flags().StringVar(&flags.Model, "model", "", "Translation model (default: provider specific)")
	cmd.Flags().StringVarP(&flags.ImagePath, "image", "i", "", "Picture of printed text to recognize and translate")
	cmd.Flags().StringVarP(&flags.AudioPath, "audio", "a", "", "Recorded utterance to transcribe and translate")
	cmd.Flags().StringVar(&flags.BatchFile, "batch", "", "Translate sentences from file (one per line)")
	cmd.Flags().StringVar(&flags.OCREngine, "ocr-engine", flags.OCREngine, "OCR engine: tesseract or vision")
	cmd.Flags().BoolVar(&flags.ClearOnCapture, "clear-on-capture", false, "Drop the shown translation as soon as a new picture is captured")
	cmd.Flags().BoolVar(&flags.ListModels, "list-models", false, "List available OpenAI completion models for the current API key")
	cmd.Flags().StringVar(&flags.LogFile, "log-file", "", "Write logs to this file instead of stderr")

	// Bind flags to viper
	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	viper.BindPFlag("translation.target_language", cmd.Flags().Lookup("target"))
	viper.BindPFlag("translation.provider", cmd.Flags().Lookup("provider"))
	viper.BindPFlag("translation.model", cmd.Flags().Lookup("model"))
	viper.BindPFlag("ocr.engine", cmd.Flags().Lookup("ocr-engine"))
	viper.BindPFlag("pipeline.clear_result_on_capture", cmd.Flags().Lookup("clear-on-capture"))
	viper.BindPFlag("log.file", cmd.Flags().Lookup("log-file"))
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	if err := config.Init(viper.GetViper(), cfgFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading config: %v\n", err)
		return
	}

	if used := viper.ConfigFileUsed(); used != "" {
		fmt.Fprintln(os.Stderr, "Using config file:", used)
	}
}

// LoadConfig resolves the configuration from flags, environment and file
func LoadConfig() (*config.Config, error) {
	return config.Load(viper.GetViper())
}
