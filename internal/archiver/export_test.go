package archiver

import "time"

// MockTimeProvider is a time provider returning a fixed time.
type MockTimeProvider struct {
	CurrentTime time.Time
}

// Now returns the fixed time.
func (m MockTimeProvider) Now() time.Time {
	return m.CurrentTime
}

// WithTimeProvider overrides the default time provider.
func WithTimeProvider(tp timeProvider) Options {
	return func(o *options) {
		o.timeProvider = tp
	}
}
