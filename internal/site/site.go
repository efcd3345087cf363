// Package site provides the static page skeleton the listing is rendered into.
package site

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"finitefield.org/listing-web/internal/dom"
)

//go:embed listing.html
var listingHTML []byte

// Skeleton is an immutable page template; each render parses a fresh copy.
type Skeleton struct {
	markup []byte
}

// Default returns the skeleton compiled into the binary.
func Default() Skeleton {
	return Skeleton{markup: listingHTML}
}

// Load reads a skeleton from path, or returns the default when path is empty.
func Load(path string) (Skeleton, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Skeleton{}, fmt.Errorf("site: read skeleton %s: %w", path, err)
	}
	return Skeleton{markup: b}, nil
}

// New parses a fresh document from the skeleton.
func (s Skeleton) New() (*dom.Document, error) {
	if len(s.markup) == 0 {
		return dom.ParseBytes(listingHTML)
	}
	return dom.ParseBytes(s.markup)
}
