package camera

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"time"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Options configures a single capture request
type Options struct {
	MediaType string // Only "photo" is supported
	Path      string // Source for file-backed facilities
}

// Response is the outcome of a capture request. Picture is nil when
// Cancelled is set.
type Response struct {
	Cancelled bool
	Picture   *Picture
}

// Facility is an external camera capture facility.
type Facility interface {
	Capture(ctx context.Context, opts Options) (Response, error)
}

// FileFacility "captures" an image already stored on disk. An empty path
// is treated as the user cancelling the capture.
type FileFacility struct {
	now func() time.Time
}

// NewFileFacility creates a file-backed capture facility
func NewFileFacility() *FileFacility {
	return &FileFacility{now: time.Now}
}

// Capture reads the image header at opts.Path
func (f *FileFacility) Capture(ctx context.Context, opts Options) (Response, error) {
	if err := ctx.Err(); err != nil {
		return Response{}, err
	}
	if opts.MediaType != "" && opts.MediaType != "photo" {
		return Response{}, fmt.Errorf("unsupported media type: %s", opts.MediaType)
	}
	if opts.Path == "" {
		return Response{Cancelled: true}, nil
	}

	abs, err := filepath.Abs(opts.Path)
	if err != nil {
		return Response{}, fmt.Errorf("failed to resolve image path: %w", err)
	}

	file, err := os.Open(abs)
	if err != nil {
		return Response{}, fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return Response{}, fmt.Errorf("failed to stat image: %w", err)
	}

	cfg, format, err := image.DecodeConfig(file)
	if err != nil {
		return Response{}, fmt.Errorf("failed to decode image header: %w", err)
	}

	uri := "file://" + filepath.ToSlash(abs)
	capturedAt := f.now()
	return Response{
		Picture: &Picture{
			ID:         NewPictureID(uri, capturedAt),
			URI:        uri,
			MIME:       "image/" + format,
			Width:      cfg.Width,
			Height:     cfg.Height,
			Size:       info.Size(),
			CapturedAt: capturedAt,
		},
	}, nil
}
