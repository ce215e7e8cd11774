package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// Status classifies a transport response for retry decisions.
type Status int

const (
	StatusOK Status = iota
	StatusNoContent
	StatusNotFound
	StatusClientError
	StatusTransient
)

// Transport fetches raw bytes for one resolved location. Implementations
// must honor context cancellation and classify the response.
type Transport interface {
	Fetch(ctx context.Context, location string) ([]byte, Status, error)
}

// HTTPTransport fetches tiles over plain HTTP.
type HTTPTransport struct {
	client    *http.Client
	userAgent string
}

// NewHTTPTransport returns a transport using the default http.Client.
// Per-attempt timeouts come from the caller's context, not the client.
func NewHTTPTransport(userAgent string) *HTTPTransport {
	return &HTTPTransport{
		client:    &http.Client{},
		userAgent: userAgent,
	}
}

func (t *HTTPTransport) Fetch(ctx context.Context, location string) ([]byte, Status, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, StatusClientError, fmt.Errorf("failed to create request: %w", err)
	}

	// Tile caching happens above the transport: force the request past
	// any intermediate HTTP cache.
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")
	if t.userAgent != "" {
		req.Header.Set("User-Agent", t.userAgent)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, StatusTransient, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNoContent:
		return nil, StatusNoContent, nil
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		return nil, StatusNotFound, fmt.Errorf("tile not found: status %d", resp.StatusCode)
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return nil, StatusClientError, fmt.Errorf("upstream rejected request: status %d", resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, StatusTransient, fmt.Errorf("upstream returned status %d", resp.StatusCode)
	}

	// Any remaining 2xx carries the tile body.

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, StatusTransient, fmt.Errorf("failed to read tile data: %w", err)
	}

	return data, StatusOK, nil
}
