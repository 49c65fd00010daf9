package ocr

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"codeberg.org/snonux/tranx/internal/camera"
	"codeberg.org/snonux/tranx/internal/failure"
	"codeberg.org/snonux/tranx/internal/testutil"
)

func newVisionTest(t *testing.T, reply string) (*VisionEngine, camera.Picture, *string) {
	t.Helper()

	var imageURL string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var body struct {
			Messages []struct {
				Content []struct {
					Type     string `json:"type"`
					ImageURL struct {
						URL string `json:"url"`
					} `json:"image_url"`
				} `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err == nil && len(body.Messages) > 0 {
			for _, part := range body.Messages[0].Content {
				if part.Type == "image_url" {
					imageURL = part.ImageURL.URL
				}
			}
		}
		payload, _ := json.Marshal(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": reply}},
			},
		})
		w.Header().Set("Content-Type", "application/json")
		w.Write(payload)
	}))
	t.Cleanup(server.Close)

	engine, err := NewVisionEngine(VisionConfig{APIKey: "test-key", BaseURL: server.URL + "/v1"})
	if err != nil {
		t.Fatalf("NewVisionEngine failed: %v", err)
	}

	path := testutil.CreateTestImage(t, t.TempDir(), "doc.png")
	return engine, camera.Picture{URI: "file://" + filepath.ToSlash(path), MIME: "image/png"}, &imageURL
}

func TestVisionEngine_Recognize(t *testing.T) {
	engine, pic, imageURL := newVisionTest(t, "Hello\nworld\n")

	got, err := engine.Recognize(context.Background(), pic)
	if err != nil {
		t.Fatalf("Recognize failed: %v", err)
	}
	if want := []string{"Hello", "world"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Recognize() = %v, want %v", got, want)
	}
	if !strings.HasPrefix(*imageURL, "data:image/png;base64,") {
		t.Errorf("unexpected image url %q", *imageURL)
	}
}

func TestVisionEngine_NoText(t *testing.T) {
	engine, pic, _ := newVisionTest(t, "NO_TEXT_FOUND")

	_, err := engine.Recognize(context.Background(), pic)
	if !errors.Is(err, failure.ErrRecognitionEmpty) {
		t.Errorf("expected ErrRecognitionEmpty, got %v", err)
	}
}

func TestVisionEngine_MissingPicture(t *testing.T) {
	engine, _, _ := newVisionTest(t, "unused")

	_, err := engine.Recognize(context.Background(), camera.Picture{URI: "file:///nonexistent/doc.png"})
	if err == nil {
		t.Error("expected error for missing picture")
	}
}

func TestNewVisionEngine_NoAPIKey(t *testing.T) {
	if _, err := NewVisionEngine(VisionConfig{}); err == nil {
		t.Error("expected error for missing API key")
	}
}
