// Package source loads the listing document from a URL or a local file.
package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"finitefield.org/listing-web/internal/listing"
)

// DocumentName is the file fetched when the location names a directory.
const DocumentName = "object.json"

const (
	defaultTimeout = 8 * time.Second
	maxDocument    = 8 << 20
)

var (
	// ErrFetch covers transport errors and non-2xx responses.
	ErrFetch = errors.New("source: fetch failed")
	// ErrParse is returned when the document is not valid JSON.
	ErrParse = errors.New("source: invalid document")
	// ErrNoLocation is returned when the client has nowhere to read from.
	ErrNoLocation = errors.New("source: missing document location")
)

// Client reads the listing document.
type Client struct {
	location string
	http     *http.Client
}

// NewClient constructs a client for location, which is an http(s) URL, a
// file:// URL or a plain path. A URL ending in "/" resolves to object.json
// below it. A zero timeout uses the default.
func NewClient(location string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		location: resolve(strings.TrimSpace(location)),
		http: &http.Client{
			Timeout: timeout,
		},
	}
}

// Location returns the resolved document location.
func (c *Client) Location() string {
	if c == nil {
		return ""
	}
	return c.location
}

// Raw returns the document bytes without parsing them.
func (c *Client) Raw(ctx context.Context) ([]byte, error) {
	if c == nil || c.location == "" {
		return nil, ErrNoLocation
	}
	if isHTTP(c.location) {
		return c.fetchHTTP(ctx)
	}
	return c.readFile()
}

// Fetch returns the parsed document.
func (c *Client) Fetch(ctx context.Context) (listing.Node, error) {
	raw, err := c.Raw(ctx)
	if err != nil {
		return listing.Node{}, err
	}
	return Parse(raw)
}

// Parse decodes raw document bytes, wrapping failures in ErrParse.
func Parse(raw []byte) (listing.Node, error) {
	root, err := listing.Parse(bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf")))
	if err != nil {
		return listing.Node{}, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return root, nil
}

func (c *Client) fetchHTTP(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.location, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d: %s", ErrFetch, resp.StatusCode, drainError(resp.Body))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDocument))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", ErrFetch, err)
	}
	return body, nil
}

func (c *Client) readFile() ([]byte, error) {
	path := c.location
	if strings.HasPrefix(path, "file://") {
		u, err := url.Parse(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrFetch, err)
		}
		path = u.Path
	}
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	return body, nil
}

func resolve(location string) string {
	if location == "" {
		return ""
	}
	if strings.HasSuffix(location, "/") {
		return location + DocumentName
	}
	if !isHTTP(location) && !strings.HasPrefix(location, "file://") {
		if info, err := os.Stat(location); err == nil && info.IsDir() {
			return strings.TrimRight(location, string(os.PathSeparator)) + string(os.PathSeparator) + DocumentName
		}
	}
	return location
}

func isHTTP(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}

func drainError(r io.Reader) string {
	b, _ := io.ReadAll(io.LimitReader(r, 256))
	return strings.TrimSpace(string(b))
}
