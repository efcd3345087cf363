// Package render fills a listing page from a normalized listing document.
package render

import "golang.org/x/net/html"

// Slot ids present in the page skeleton.
const (
	SlotTitle             = "title"
	SlotShortDescription  = "short-description"
	SlotTransactionType   = "transaction-type"
	SlotPrice             = "price"
	SlotRoomCount         = "room-count"
	SlotLivingArea        = "living-area"
	SlotYearBuilt         = "year-built"
	SlotAddress           = "address"
	SlotRoomBreakdownList = "room-breakdown-list"
	SlotRoomBreakdown     = "room-breakdown-section"
	SlotFeaturesContent   = "features-content"
	SlotFeatures          = "features-section"
	SlotMediaContent      = "media-content"
	SlotProvenanceList    = "provenance-list"
	SlotProvenance        = "provenance-section"
	SlotExtensionsContent = "extensions-content"
	SlotExtensions        = "extensions-section"
)

// Page is the body surface renderers write to. Missing slots are ignored.
type Page interface {
	SetText(id, text string)
	Clear(id string)
	Show(id string)
	SetClass(id, class string)
	Append(id string, nodes ...*html.Node)
}

// Head is the metadata surface of the page.
type Head interface {
	SetLang(lang string)
	SetTitle(title string)
	// SetMeta updates an existing meta tag and reports whether it was found.
	SetMeta(attr, key, content string) bool
	// EnsureMeta updates a meta tag, creating it when missing.
	EnsureMeta(attr, key, content string)
	// SetJSONLD overwrites an existing JSON-LD script; it never creates one.
	SetJSONLD(payload string) bool
}

// Surface is a whole page.
type Surface interface {
	Page
	Head
}
