package utils

import (
	"github.com/go-resty/resty/v2"
)

// UserAgent is sent by every client created with NewHTTPClient.
const UserAgent = "securedata"

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly,
// while allowing extension with additional application-specific behavior.
//
// Example usage:
//
//	client := utils.NewHTTPClient()
//	resp, err := client.R().Get("https://example.com")
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient creates and returns a new HTTPClient instance with the
// securedata User-Agent. resty's own retries are disabled; callers that
// retry do so with an explicit backoff policy.
//
// Each call returns an independent client instance with its own
// configuration, connection pool, and state.
func NewHTTPClient() *HTTPClient {
	client := resty.New().
		SetHeader("User-Agent", UserAgent).
		SetRetryCount(0)

	return &HTTPClient{Client: client}
}
