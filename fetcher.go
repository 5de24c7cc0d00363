package docagent

import "context"

// Fetcher retrieves raw page content from URLs.
// Implementations may use plain HTTP or browser automation.
type Fetcher interface {
	// Fetch retrieves the body at url. Non-success responses are errors.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (body string, err error)

	// Close releases fetcher resources.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}
