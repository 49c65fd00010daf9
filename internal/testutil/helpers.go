package testutil

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// CreateTestImage writes a small PNG and returns its path
func CreateTestImage(t *testing.T, dir, name string) string {
	t.Helper()

	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("Failed to create directory for test image: %v", err)
	}

	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for x := 0; x < 8; x++ {
		img.Set(x, x, color.Black)
	}

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create test image %s: %v", path, err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		t.Fatalf("Failed to encode test image: %v", err)
	}
	return path
}

// CreateTestAudio writes a stub WAV file and returns its path
func CreateTestAudio(t *testing.T, dir, name string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("RIFF\x24\x00\x00\x00WAVEfmt "), 0644); err != nil {
		t.Fatalf("Failed to create test audio %s: %v", path, err)
	}
	return path
}
