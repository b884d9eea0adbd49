// Package upstream talks to the external emoticon image service.
package upstream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrUnavailable is returned when the image service could not be reached at all.
var ErrUnavailable = errors.New("emoticon service unavailable")

// StatusError captures a non-2xx response from the image service.
type StatusError struct {
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code: %d, body: %s", e.StatusCode, string(e.Body))
}

// Fetcher returns the raw PNG bytes for a username.
type Fetcher interface {
	Fetch(ctx context.Context, username string) ([]byte, error)
}

// userAgentRoundTripper adds a User-Agent header to every request.
type userAgentRoundTripper struct {
	Wrapped   http.RoundTripper
	UserAgent string
}

func (rt *userAgentRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	clone.Header.Set("User-Agent", rt.UserAgent)
	return rt.Wrapped.RoundTrip(clone)
}

// HTTPFetcher fetches emoticons with GET {baseURL}/{username}. One attempt per call.
type HTTPFetcher struct {
	baseURL string
	client  *http.Client
}

// NewHTTPFetcher creates a fetcher. A zero timeout leaves the client without one.
func NewHTTPFetcher(baseURL, userAgent string, timeout time.Duration) *HTTPFetcher {
	var transport http.RoundTripper = http.DefaultTransport
	if userAgent != "" {
		transport = &userAgentRoundTripper{Wrapped: transport, UserAgent: userAgent}
	}

	return &HTTPFetcher{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Transport: transport,
			Timeout:   timeout,
		},
	}
}

// Fetch downloads the emoticon for username.
// Transport failures wrap ErrUnavailable; non-2xx responses return *StatusError.
func (f *HTTPFetcher) Fetch(ctx context.Context, username string) ([]byte, error) {
	endpoint := f.baseURL + "/" + url.PathEscape(username)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read emoticon body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: body}
	}

	return body, nil
}

var _ Fetcher = (*HTTPFetcher)(nil)
