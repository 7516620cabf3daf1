// Package media fetches food images and renders them as terminal previews.
package media

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"net/url"
	"time"

	"foodies/internal/log"
)

// MaxImageBytes caps how much of a response body is read.
const MaxImageBytes = 8 << 20

var (
	// ErrPreviewDisabled is returned when previews are switched off.
	ErrPreviewDisabled = errors.New("image preview disabled")
	// ErrUnsupportedURL is returned for empty or non-http(s) URLs.
	ErrUnsupportedURL = errors.New("unsupported image url")
)

// Client downloads images over HTTP.
type Client struct {
	httpClient *http.Client
	enabled    bool
	logger     *log.Logger
}

// NewClient creates a client. When enabled is false every fetch fails with
// ErrPreviewDisabled without touching the network.
func NewClient(timeout time.Duration, enabled bool, logger *log.Logger) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if logger == nil {
		logger = log.Discard()
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		enabled:    enabled,
		logger:     logger.WithComponent(log.ComponentMedia),
	}
}

// Fetch downloads and decodes a JPEG, PNG or GIF image.
func (c *Client) Fetch(ctx context.Context, rawURL string) (image.Image, error) {
	if !c.enabled {
		return nil, ErrPreviewDisabled
	}
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedURL, rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("request creation failed: %w", err)
	}
	req.Header.Set("Accept", "image/jpeg, image/png, image/gif")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("network error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("image fetch failed: status %d", resp.StatusCode)
	}

	img, format, err := image.Decode(io.LimitReader(resp.Body, MaxImageBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	c.logger.Debug("image fetched",
		log.FieldOperation, log.OpFetch,
		"format", format,
		log.FieldDuration, time.Since(start).Milliseconds(),
	)
	return img, nil
}
