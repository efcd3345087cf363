package render

import (
	"fmt"

	"go.uber.org/zap"

	"finitefield.org/listing-web/internal/format"
	"finitefield.org/listing-web/internal/i18n"
	"finitefield.org/listing-web/internal/listing"
)

// Pipeline runs every renderer against one page.
type Pipeline struct {
	Labels *i18n.Bundle
	Logger *zap.Logger
}

// NewPipeline returns a pipeline using the given labels. A nil logger discards output.
func NewPipeline(labels *i18n.Bundle, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{Labels: labels, Logger: logger}
}

// Run renders doc for locale into s. The text layer is selected once and
// shared by the body and head renderers. A renderer that panics is logged
// and skipped; the others still run.
func (p *Pipeline) Run(s Surface, root listing.Node, locale, pageURL string) {
	doc := listing.FromNode(root)
	layer := listing.SelectTextLayer(doc, locale)
	labels := p.Labels.For(locale)
	f := format.New(locale)

	p.step("facts", func() { Facts(s, doc, layer, f, labels) })
	p.step("media", func() { Media(s, doc.Media, labels) })
	p.step("provenance", func() { Provenance(s, doc.Provenance, f, labels) })
	p.step("extensions", func() { Extensions(s, doc.Extensions) })
	p.step("metadata", func() { Metadata(s, doc, layer, locale, pageURL, labels) })
}

// Fail renders the load failure state.
func (p *Pipeline) Fail(s Surface, locale string) {
	Failure(s, p.Labels.For(locale))
}

func (p *Pipeline) step(name string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			p.logger().Error("render step failed",
				zap.String("step", name),
				zap.Error(fmt.Errorf("render: %s: %v", name, r)),
			)
		}
	}()
	fn()
}

func (p *Pipeline) logger() *zap.Logger {
	if p.Logger == nil {
		return zap.NewNop()
	}
	return p.Logger
}
