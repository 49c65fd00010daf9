// Package logutil routes the standard logger to stderr, a size-rotated
// file, or nowhere.
package logutil

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
)

const (
	maxSizeBytes = 10 * 1024 * 1024 // 10 MB
	maxArchives  = 3
)

// Setup configures the standard logger. Disabled logging is discarded; an
// empty path logs to stderr; otherwise logs go to path with basic size
// rotation (10MB, max 3 archives). The returned closer releases the file.
func Setup(enable bool, path string) (io.Closer, error) {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	if !enable {
		log.SetOutput(io.Discard)
		return nopCloser{}, nil
	}
	if path == "" {
		log.SetOutput(os.Stderr)
		return nopCloser{}, nil
	}

	w, err := newRotatingWriter(path, maxSizeBytes)
	if err != nil {
		return nil, err
	}
	log.SetOutput(w)
	return w, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

type rotatingWriter struct {
	mu      sync.Mutex
	path    string
	maxSize int64
	f       *os.File
}

func newRotatingWriter(path string, maxSize int64) (*rotatingWriter, error) {
	rotateIfNeeded(path, maxSize)
	f, err := openLog(path)
	if err != nil {
		return nil, err
	}
	return &rotatingWriter{path: path, maxSize: maxSize, f: f}, nil
}

func openLog(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}

func (w *rotatingWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	// naive rotation check per write
	if st, err := w.f.Stat(); err == nil && st.Size()+int64(len(p)) > w.maxSize {
		_ = w.f.Close()
		rotate(w.path)
		nf, err := openLog(w.path)
		if err != nil {
			return 0, err
		}
		w.f = nf
	}
	return w.f.Write(p)
}

func (w *rotatingWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.f.Close()
}

func rotateIfNeeded(path string, maxSize int64) {
	if st, err := os.Stat(path); err == nil && st.Size() > maxSize {
		rotate(path)
	}
}

// rotate shifts path to .1, .1 to .2 and so on; the oldest is discarded
func rotate(path string) {
	_ = os.Remove(archiveName(path, maxArchives))
	for i := maxArchives - 1; i >= 1; i-- {
		_ = os.Rename(archiveName(path, i), archiveName(path, i+1))
	}
	_ = os.Rename(path, archiveName(path, 1))
}

func archiveName(path string, n int) string { return fmt.Sprintf("%s.%d", path, n) }

// RedactKey masks an API key, leaving first/last 4 chars: xxxx...yyyy
func RedactKey(k string) string {
	if len(k) <= 8 {
		return "********"
	}
	return fmt.Sprintf("%s...%s", k[:4], k[len(k)-4:])
}
