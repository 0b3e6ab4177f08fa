package publisher

// Publisher represents a service for publishing alert events to a stream
// for downstream consumers.
type Publisher interface {
	// Publish publishes one serialized alert event
	Publish(message []byte) error

	// TrimStream trims the stream to the configured maximum length
	TrimStream() error

	// Close closes the publisher connection
	Close() error
}

// Noop is used when no stream backend is configured; alert publishing is
// an optional side channel and its absence is not an error.
type Noop struct{}

// Publish discards the message
func (Noop) Publish([]byte) error { return nil }

// TrimStream does nothing
func (Noop) TrimStream() error { return nil }

// Close does nothing
func (Noop) Close() error { return nil }
