package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func newViper(t *testing.T) *viper.Viper {
	t.Helper()
	v := viper.New()
	SetDefaults(v)
	return v
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")

	cfg, err := Load(newViper(t))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Provider != "openai" {
		t.Errorf("Provider = %q, want openai", cfg.Provider)
	}
	if cfg.TargetLanguage != "Chinese" {
		t.Errorf("TargetLanguage = %q, want Chinese", cfg.TargetLanguage)
	}
	if cfg.MaxTokens != 200 {
		t.Errorf("MaxTokens = %d, want 200", cfg.MaxTokens)
	}
	if cfg.Temperature != 0.7 {
		t.Errorf("Temperature = %v, want 0.7", cfg.Temperature)
	}
	if cfg.TopP != 1.0 {
		t.Errorf("TopP = %v, want 1.0", cfg.TopP)
	}
	if cfg.Stop != "\n" {
		t.Errorf("Stop = %q, want newline", cfg.Stop)
	}
	if cfg.BreakerMaxFailures != 5 || cfg.BreakerTimeout != 30*time.Second {
		t.Errorf("breaker = %d/%v, want 5/30s", cfg.BreakerMaxFailures, cfg.BreakerTimeout)
	}
	if cfg.SpeechLocale != "en-US" {
		t.Errorf("SpeechLocale = %q, want en-US", cfg.SpeechLocale)
	}
	if cfg.OCREngine != EngineTesseract {
		t.Errorf("OCREngine = %q, want tesseract", cfg.OCREngine)
	}
	if len(cfg.OCRLanguages) != 1 || cfg.OCRLanguages[0] != "eng" {
		t.Errorf("OCRLanguages = %v, want [eng]", cfg.OCRLanguages)
	}
	if cfg.ClearResultOnCapture {
		t.Error("ClearResultOnCapture should default to false")
	}
	if cfg.OpenAIKey != "" {
		t.Error("no credential may be present by default")
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	path := filepath.Join(t.TempDir(), "tranx.yaml")
	content := `translation:
  provider: gemini
  target_language: German
  max_tokens: 120
breaker:
  timeout: 1m
ocr:
  engine: vision
  languages: [de, en]
pipeline:
  clear_result_on_capture: true
gemini:
  key: file-gemini-key
openai:
  key: file-openai-key
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	v := viper.New()
	if err := Init(v, path); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	cfg, err := Load(v)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Provider != "gemini" || cfg.TargetLanguage != "German" || cfg.MaxTokens != 120 {
		t.Errorf("unexpected translation settings: %+v", cfg)
	}
	if cfg.BreakerTimeout != time.Minute {
		t.Errorf("BreakerTimeout = %v, want 1m", cfg.BreakerTimeout)
	}
	if cfg.OCREngine != EngineVision || len(cfg.OCRLanguages) != 2 {
		t.Errorf("unexpected OCR settings: %s %v", cfg.OCREngine, cfg.OCRLanguages)
	}
	if !cfg.ClearResultOnCapture {
		t.Error("ClearResultOnCapture should be true")
	}

	tc := cfg.TranslationConfig()
	if tc.APIKey != "file-gemini-key" {
		t.Errorf("gemini provider must use the gemini key, got %q", tc.APIKey)
	}
	if cfg.VisionConfig().APIKey != "file-openai-key" {
		t.Error("vision engine must use the openai key")
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "env-key")
	t.Setenv("TRANX_TRANSLATION_TARGET_LANGUAGE", "French")
	t.Setenv("TRANX_OCR_ENGINE", "VISION")

	v := viper.New()
	if err := Init(v, ""); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	cfg, err := Load(v)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.TargetLanguage != "French" {
		t.Errorf("TargetLanguage = %q, want French", cfg.TargetLanguage)
	}
	if cfg.OCREngine != EngineVision {
		t.Errorf("OCREngine = %q, want vision", cfg.OCREngine)
	}
	if cfg.OpenAIKey != "env-key" || cfg.TranslationConfig().APIKey != "env-key" {
		t.Error("environment credential not applied")
	}
	if cfg.WhisperConfig().Model != "whisper-1" {
		t.Errorf("WhisperConfig().Model = %q", cfg.WhisperConfig().Model)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  any
	}{
		{"unknown provider", "translation.provider", "deepl"},
		{"unknown engine", "ocr.engine", "abbyy"},
		{"zero max tokens", "translation.max_tokens", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newViper(t)
			v.Set(tt.key, tt.val)
			if _, err := Load(v); err == nil {
				t.Errorf("expected error for %s=%v", tt.key, tt.val)
			}
		})
	}
}

func TestInit_MissingExplicitFile(t *testing.T) {
	v := viper.New()
	if err := Init(v, filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing explicit config file")
	}
}
