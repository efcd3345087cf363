package render

import (
	"golang.org/x/net/html"

	"finitefield.org/listing-web/internal/dom"
	"finitefield.org/listing-web/internal/i18n"
	"finitefield.org/listing-web/internal/listing"
)

// Media replaces the media area with the hero image and the floorplan and
// document links, or with the empty-state message when there is no media.
func Media(p Page, media []listing.MediaItem, l i18n.Labels) {
	p.Clear(SlotMediaContent)

	hero, ok := listing.HeroImage(media)
	if !ok {
		p.SetText(SlotMediaContent, l.T("media.empty"))
		return
	}

	alt := hero.Caption()
	if alt == "" {
		alt = l.T("media.hero_alt")
	}
	grid := dom.Element("div", dom.Attr("class", "media-grid"))
	grid.AppendChild(dom.Wrap(
		dom.Element("div", dom.Attr("class", "media-item hero")),
		dom.Element("img", dom.Attr("src", hero.URI), dom.Attr("alt", alt)),
	))

	var links []*html.Node
	for _, item := range listing.ByRole(media, listing.RoleFloorplan) {
		links = append(links, externalLink(item.URI, l.T("media.floorplan")))
	}
	for _, item := range listing.ByRole(media, listing.RoleDocument) {
		links = append(links, externalLink(item.URI, l.T("media.document")))
	}
	if len(links) > 0 {
		grid.AppendChild(dom.Wrap(dom.Element("div", dom.Attr("class", "media-links")), links...))
	}

	p.Append(SlotMediaContent, grid)
}

// Failure replaces the media area with the load failure message.
func Failure(p Page, l i18n.Labels) {
	p.SetText(SlotMediaContent, l.T("media.load_failed"))
}

func externalLink(href, label string) *html.Node {
	return dom.TextElement("a", label, dom.Attr("href", href), dom.Attr("target", "_blank"))
}
