package camera

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"net/url"
	"path/filepath"
	"time"
)

// Picture references an acquired image
type Picture struct {
	ID         string
	URI        string
	MIME       string
	Width      int
	Height     int
	Size       int64
	CapturedAt time.Time
}

// NewPictureID creates an ID from the capture time and the image URI.
// Format: epochMillis_md5(uri)[:8]
func NewPictureID(uri string, at time.Time) string {
	hash := md5.Sum([]byte(uri))
	return fmt.Sprintf("%d_%s", at.UnixMilli(), hex.EncodeToString(hash[:])[:8])
}

// Path returns the local filesystem path of a file:// picture.
func (p Picture) Path() (string, error) {
	u, err := url.Parse(p.URI)
	if err != nil {
		return "", fmt.Errorf("invalid picture URI %q: %w", p.URI, err)
	}
	if u.Scheme != "" && u.Scheme != "file" {
		return "", fmt.Errorf("unsupported picture URI scheme: %s", u.Scheme)
	}
	if u.Scheme == "" {
		return p.URI, nil
	}
	return filepath.FromSlash(u.Path), nil
}
