package logutil

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRedactKey(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"", "********"},
		{"short", "********"},
		{"12345678", "********"},
		{"sk-abcdefghijklmnop", "sk-a...mnop"},
	}

	for _, tt := range tests {
		if got := RedactKey(tt.key); got != tt.want {
			t.Errorf("RedactKey(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestSetup_File(t *testing.T) {
	defer log.SetOutput(os.Stderr)

	path := filepath.Join(t.TempDir(), "tranx.log")
	closer, err := Setup(true, path)
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}

	log.Printf("pipeline: translate failed (TranslationFailed): boom")
	closer.Close()
	log.SetOutput(os.Stderr)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log: %v", err)
	}
	if !strings.Contains(string(data), "translate failed (TranslationFailed)") {
		t.Errorf("log file missing entry, got %q", data)
	}
}

func TestSetup_Disabled(t *testing.T) {
	defer log.SetOutput(os.Stderr)

	closer, err := Setup(false, "")
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	if err := closer.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
}

func TestRotatingWriter_Rotates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tranx.log")

	w, err := newRotatingWriter(path, 16)
	if err != nil {
		t.Fatalf("newRotatingWriter failed: %v", err)
	}
	defer w.Close()

	for i := 0; i < 5; i++ {
		if _, err := w.Write([]byte("0123456789\n")); err != nil {
			t.Fatalf("write %d failed: %v", i, err)
		}
	}

	for n := 1; n <= maxArchives; n++ {
		if _, err := os.Stat(archiveName(path, n)); err != nil {
			t.Errorf("expected archive %d: %v", n, err)
		}
	}
	if _, err := os.Stat(archiveName(path, maxArchives+1)); !os.IsNotExist(err) {
		t.Errorf("archive beyond %d must not exist", maxArchives)
	}
}
