package camera

import (
	"context"
	"fmt"

	"codeberg.org/snonux/tranx/internal/failure"
)

// Channel is the image input channel
type Channel struct {
	facility Facility
}

// NewChannel binds the channel to a capture facility
func NewChannel(facility Facility) *Channel {
	return &Channel{facility: facility}
}

// Capture requests one photo. A cancelled capture returns (nil, nil);
// facility errors are reported as failure.ErrChannelUnavailable.
func (c *Channel) Capture(ctx context.Context, opts Options) (*Picture, error) {
	if opts.MediaType == "" {
		opts.MediaType = "photo"
	}

	resp, err := c.facility.Capture(ctx, opts)
	if err != nil {
		return nil, failure.Unavailable("camera", err)
	}
	if resp.Cancelled {
		return nil, nil
	}
	if resp.Picture == nil {
		return nil, failure.Unavailable("camera", fmt.Errorf("capture returned no picture"))
	}
	return resp.Picture, nil
}
