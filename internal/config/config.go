package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"codeberg.org/snonux/tranx/internal/ocr"
	"codeberg.org/snonux/tranx/internal/speech"
	"codeberg.org/snonux/tranx/internal/translation"
)

const (
	// EnvPrefix prefixes every environment override, e.g. TRANX_OCR_ENGINE
	EnvPrefix = "TRANX"

	// ConfigName is the config file name searched in $HOME and the working directory
	ConfigName = ".tranx"

	EngineTesseract = "tesseract"
	EngineVision    = "vision"
)

// Config is the resolved application configuration
type Config struct {
	Provider       string
	Model          string
	TargetLanguage string
	MaxTokens      int
	Temperature    float32
	TopP           float32
	Stop           string
	BaseURL        string

	BreakerMaxFailures uint32
	BreakerTimeout     time.Duration

	SpeechLocale string
	SpeechModel  string

	OCREngine    string
	OCRLanguages []string
	OCRModel     string

	ClearResultOnCapture bool

	LogEnable bool
	LogFile   string

	OpenAIKey string
	GeminiKey string
}

// SetDefaults registers the default of every key on v
func SetDefaults(v *viper.Viper) {
	d := translation.DefaultConfig()

	v.SetDefault("translation.provider", d.Provider)
	v.SetDefault("translation.model", "")
	v.SetDefault("translation.target_language", "Chinese")
	v.SetDefault("translation.max_tokens", d.MaxTokens)
	v.SetDefault("translation.temperature", d.Temperature)
	v.SetDefault("translation.top_p", d.TopP)
	v.SetDefault("translation.stop", d.Stop)
	v.SetDefault("translation.base_url", "")
	v.SetDefault("breaker.max_failures", d.BreakerMaxFailures)
	v.SetDefault("breaker.timeout", d.BreakerTimeout)
	v.SetDefault("speech.locale", speech.DefaultLocale)
	v.SetDefault("speech.model", "whisper-1")
	v.SetDefault("ocr.engine", EngineTesseract)
	v.SetDefault("ocr.languages", []string{"eng"})
	v.SetDefault("ocr.model", "")
	v.SetDefault("pipeline.clear_result_on_capture", false)
	v.SetDefault("log.enable", true)
	v.SetDefault("log.file", "")
}

// Init prepares v to read cfgFile, or .tranx.yaml from $HOME or the working
// directory, with TRANX_ environment overrides. A .env file in the working
// directory is loaded into the environment first; variables already set win.
func Init(v *viper.Viper, cfgFile string) error {
	_ = godotenv.Load() // Ignore error if .env doesn't exist

	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(ConfigName)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

// Load resolves the configuration from v and validates it
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Provider:             strings.ToLower(v.GetString("translation.provider")),
		Model:                v.GetString("translation.model"),
		TargetLanguage:       strings.TrimSpace(v.GetString("translation.target_language")),
		MaxTokens:            v.GetInt("translation.max_tokens"),
		Temperature:          float32(v.GetFloat64("translation.temperature")),
		TopP:                 float32(v.GetFloat64("translation.top_p")),
		Stop:                 v.GetString("translation.stop"),
		BaseURL:              v.GetString("translation.base_url"),
		BreakerMaxFailures:   v.GetUint32("breaker.max_failures"),
		BreakerTimeout:       v.GetDuration("breaker.timeout"),
		SpeechLocale:         v.GetString("speech.locale"),
		SpeechModel:          v.GetString("speech.model"),
		OCREngine:            strings.ToLower(v.GetString("ocr.engine")),
		OCRLanguages:         v.GetStringSlice("ocr.languages"),
		OCRModel:             v.GetString("ocr.model"),
		ClearResultOnCapture: v.GetBool("pipeline.clear_result_on_capture"),
		LogEnable:            v.GetBool("log.enable"),
		LogFile:              v.GetString("log.file"),
		OpenAIKey:            credential(v, "OPENAI_API_KEY", "openai.key"),
		GeminiKey:            credential(v, "GEMINI_API_KEY", "gemini.key"),
	}

	if cfg.TargetLanguage == "" {
		cfg.TargetLanguage = "Chinese"
	}

	switch cfg.Provider {
	case "openai", "gemini":
	default:
		return nil, fmt.Errorf("unknown translation provider: %s", cfg.Provider)
	}
	switch cfg.OCREngine {
	case EngineTesseract, EngineVision:
	default:
		return nil, fmt.Errorf("unknown OCR engine: %s", cfg.OCREngine)
	}
	if cfg.MaxTokens <= 0 {
		return nil, fmt.Errorf("translation.max_tokens must be positive, got %d", cfg.MaxTokens)
	}

	return cfg, nil
}

// credential reads an API key from the environment first, then the config file
func credential(v *viper.Viper, envVar, key string) string {
	if value := os.Getenv(envVar); value != "" {
		return value
	}
	return v.GetString(key)
}

// TranslationConfig returns the settings of the selected translation provider
func (c *Config) TranslationConfig() *translation.Config {
	apiKey := c.OpenAIKey
	if c.Provider == "gemini" {
		apiKey = c.GeminiKey
	}

	return &translation.Config{
		Provider:           c.Provider,
		APIKey:             apiKey,
		BaseURL:            c.BaseURL,
		Model:              c.Model,
		MaxTokens:          c.MaxTokens,
		Temperature:        c.Temperature,
		TopP:               c.TopP,
		Stop:               c.Stop,
		BreakerMaxFailures: c.BreakerMaxFailures,
		BreakerTimeout:     c.BreakerTimeout,
	}
}

// WhisperConfig returns the settings of the speech transcription service
func (c *Config) WhisperConfig() speech.WhisperConfig {
	return speech.WhisperConfig{
		APIKey: c.OpenAIKey,
		Model:  c.SpeechModel,
	}
}

// VisionConfig returns the settings of the vision OCR engine
func (c *Config) VisionConfig() ocr.VisionConfig {
	return ocr.VisionConfig{
		APIKey: c.OpenAIKey,
		Model:  c.OCRModel,
	}
}
