// Package handlers serves the listing page and its document.
package handlers

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/render"
	"go.uber.org/zap"

	"finitefield.org/listing-web/internal/listing"
	mw "finitefield.org/listing-web/internal/middleware"
	"finitefield.org/listing-web/internal/observability"
	renderer "finitefield.org/listing-web/internal/render"
	"finitefield.org/listing-web/internal/site"
	"finitefield.org/listing-web/internal/source"
)

// Fetcher loads the listing document.
type Fetcher interface {
	Fetch(ctx context.Context) (listing.Node, error)
}

// Listing renders the page for one listing document.
type Listing struct {
	Source   Fetcher
	Skeleton site.Skeleton
	Pipeline *renderer.Pipeline
	// BaseURL overrides the page URL published in structured data.
	BaseURL string
}

// Page renders the skeleton filled from the document. A document that cannot
// be fetched or parsed still yields a 200 page carrying the failure message.
func (h *Listing) Page(w http.ResponseWriter, r *http.Request) {
	logger := observability.FromContext(r.Context())
	locale := mw.Lang(r)

	page, err := h.Skeleton.New()
	if err != nil {
		logger.Error("parse page skeleton", zap.Error(err))
		http.Error(w, "page unavailable", http.StatusInternalServerError)
		return
	}

	root, err := h.Source.Fetch(r.Context())
	if err != nil {
		logger.Error("load listing document",
			zap.Error(err),
			zap.Bool("parse_error", errors.Is(err, source.ErrParse)),
		)
		h.Pipeline.Fail(page, locale)
	} else {
		h.Pipeline.Run(page, root, locale, h.pageURL(r))
	}

	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		logger.Error("render page", zap.Error(err))
		http.Error(w, "page unavailable", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// Document serves the listing document as JSON, keeping its key order.
func (h *Listing) Document(w http.ResponseWriter, r *http.Request) {
	root, err := h.Source.Fetch(r.Context())
	if err != nil {
		observability.FromContext(r.Context()).Error("load listing document", zap.Error(err))
		mw.WriteError(w, r, http.StatusBadGateway, "listing document unavailable")
		return
	}
	render.JSON(w, r, root)
}

func (h *Listing) pageURL(r *http.Request) string {
	if h.BaseURL != "" {
		return strings.TrimRight(h.BaseURL, "/")
	}
	return strings.TrimRight(r.URL.Path, "/")
}
