package listing

import (
	"finitefield.org/listing-web/internal/i18n"
)

// Media roles with special meaning on the page.
const (
	RoleHero      = "hero"
	RoleExterior  = "exterior"
	RoleInterior  = "interior"
	RoleFloorplan = "floorplan"
	RoleDocument  = "document"
)

// Document is the normalized view of a fetched listing. Every field is
// optional; absent or mistyped values arrive here as zero values.
type Document struct {
	TextLayers Node
	Usage      Usage
	Structure  Structure
	Media      []MediaItem
	Provenance Provenance
	Extensions Node
}

// TextLayer holds localized copy for one language layer.
type TextLayer struct {
	Title            string
	ShortDescription string
}

type Usage struct {
	TransactionType    string
	Price              Node
	Currency           string
	AvailabilityStatus string
}

type Structure struct {
	Address    Address
	Attributes Attributes
}

type Address struct {
	Street     string
	PostalCode string
	Locality   string
	Region     string
	Country    string
}

// Parts returns the present address parts in display order.
func (a Address) Parts() []string {
	parts := make([]string, 0, 5)
	for _, p := range []string{a.Street, a.PostalCode, a.Locality, a.Region, a.Country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

type Attributes struct {
	RoomCount     string
	LivingAreaSqm string
	YearBuilt     string
	YearRenovated string
	PropertyType  string
	RoomBreakdown []Room
	Features      *Features
}

// Room is one entry of the room breakdown. Count and AreaSqm are display text.
type Room struct {
	Type    string
	Count   string
	AreaSqm string
}

// Features is nil when the listing carries no features object.
type Features struct {
	Amenities []string
	Parking   string
	Outdoor   string
	Storage   string
}

type MediaItem struct {
	URI      string
	Role     string
	TextRefs []string
}

// Caption returns the first present text reference.
func (m MediaItem) Caption() string {
	if len(m.TextRefs) == 0 {
		return ""
	}
	return m.TextRefs[0]
}

type Provenance struct {
	UpdatedAt      string
	DataConfidence string
}

// FromNode extracts a Document from the decoded payload. Sub-objects of the
// wrong shape degrade to empty values instead of failing.
func FromNode(root Node) Document {
	usage := root.Get("usage")
	pricing := usage.Get("pricing")
	structure := root.Get("structure")
	address := structure.Get("address")
	attrs := structure.Get("attributes")
	provenance := root.Get("provenance")

	doc := Document{
		TextLayers: root.Get("text_layers"),
		Usage: Usage{
			TransactionType:    usage.Get("transaction_type").Text(),
			Price:              pricing.Get("price"),
			Currency:           pricing.Get("currency").Text(),
			AvailabilityStatus: usage.Get("availability").Get("status").Str(),
		},
		Structure: Structure{
			Address: Address{
				Street:     address.Get("street").Text(),
				PostalCode: address.Get("postal_code").Text(),
				Locality:   address.Get("locality").Text(),
				Region:     address.Get("region").Text(),
				Country:    address.Get("country").Text(),
			},
			Attributes: Attributes{
				RoomCount:     attrs.Get("room_count").Text(),
				LivingAreaSqm: attrs.Get("living_area_sqm").Text(),
				YearBuilt:     attrs.Get("year_built").Text(),
				YearRenovated: attrs.Get("year_renovated").Text(),
				PropertyType:  attrs.Get("property_type").Text(),
				RoomBreakdown: roomsFrom(attrs.Get("room_breakdown")),
				Features:      featuresFrom(attrs.Get("features")),
			},
		},
		Media: mediaFrom(root.Get("media")),
		Provenance: Provenance{
			UpdatedAt:      provenance.Get("updated_at").Text(),
			DataConfidence: provenance.Get("data_confidence").Text(),
		},
		Extensions: root.Get("extensions"),
	}
	if doc.Extensions.Kind() != Object {
		doc.Extensions = Node{}
	}
	return doc
}

func roomsFrom(n Node) []Room {
	items := n.Items()
	if len(items) == 0 {
		return nil
	}
	rooms := make([]Room, 0, len(items))
	for _, item := range items {
		room := Room{
			Type:    item.Get("type").Text(),
			AreaSqm: item.Get("area_sqm").Text(),
		}
		if count := item.Get("count"); !count.IsNull() {
			room.Count = count.String()
		}
		rooms = append(rooms, room)
	}
	return rooms
}

func featuresFrom(n Node) *Features {
	if !n.Truthy() {
		return nil
	}
	f := &Features{
		Parking: n.Get("parking").Text(),
		Outdoor: n.Get("outdoor").Text(),
		Storage: n.Get("storage").Text(),
	}
	for _, item := range n.Get("amenities").Items() {
		if item.IsNull() {
			f.Amenities = append(f.Amenities, "")
			continue
		}
		f.Amenities = append(f.Amenities, item.String())
	}
	return f
}

func mediaFrom(n Node) []MediaItem {
	items := n.Items()
	if len(items) == 0 {
		return nil
	}
	media := make([]MediaItem, 0, len(items))
	for _, item := range items {
		m := MediaItem{
			URI:  item.Get("uri").Text(),
			Role: item.Get("role").Str(),
		}
		refs := item.Get("text_refs").Items()
		for _, ref := range refs {
			m.TextRefs = append(m.TextRefs, ref.Text())
		}
		media = append(media, m)
	}
	return media
}

// ByRole returns the items whose role matches exactly.
func ByRole(media []MediaItem, role string) []MediaItem {
	var out []MediaItem
	for _, m := range media {
		if m.Role == role {
			out = append(out, m)
		}
	}
	return out
}

// HeroImage picks the first hero item, falling back to the first item.
func HeroImage(media []MediaItem) (MediaItem, bool) {
	if hero := ByRole(media, RoleHero); len(hero) > 0 {
		return hero[0], true
	}
	if len(media) > 0 {
		return media[0], true
	}
	return MediaItem{}, false
}

// SelectTextLayer returns the first non-empty text layer along the locale's
// fallback chain, or an empty layer when none matches.
func SelectTextLayer(doc Document, locale string) TextLayer {
	if doc.TextLayers.Kind() != Object {
		return TextLayer{}
	}
	for _, key := range i18n.FallbackChain(locale) {
		layer := doc.TextLayers.Get(key)
		if layer.Kind() != Object || layer.Len() == 0 {
			continue
		}
		return TextLayer{
			Title:            layer.Get("title").Text(),
			ShortDescription: layer.Get("short_description").Text(),
		}
	}
	return TextLayer{}
}
