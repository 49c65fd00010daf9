package speech

import "context"

// UnavailableService stands in when no recognition service could be set
// up; every session fails with Reason.
type UnavailableService struct {
	Reason error
}

// Start always fails
func (u UnavailableService) Start(ctx context.Context, locale string, listener Listener) error {
	return u.Reason
}

// Stop is a no-op
func (u UnavailableService) Stop() error { return nil }

// Name returns the service name
func (u UnavailableService) Name() string { return "unavailable" }
