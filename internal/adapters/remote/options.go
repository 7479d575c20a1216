package remote

import (
	"net/http"
	"time"
)

// Option applies a configuration option to the Gateway.
type Option func(*Gateway)

// WithHTTPClient sets a custom HTTP client. The client's timeout is the only
// timeout enforced for remote calls.
func WithHTTPClient(client *http.Client) Option {
	return func(g *Gateway) {
		if client != nil {
			g.client = client
		}
	}
}

// WithTimeout sets the per-call transport timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(g *Gateway) {
		if timeout > 0 {
			g.client.Timeout = timeout
		}
	}
}

// WithUserAgent sets the User-Agent header on every call.
func WithUserAgent(ua string) Option {
	return func(g *Gateway) {
		if ua != "" {
			g.userAgent = ua
		}
	}
}
