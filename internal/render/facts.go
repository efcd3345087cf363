package render

import (
	"strings"

	"golang.org/x/net/html"

	"finitefield.org/listing-web/internal/dom"
	"finitefield.org/listing-web/internal/format"
	"finitefield.org/listing-web/internal/i18n"
	"finitefield.org/listing-web/internal/listing"
)

// Facts writes the key facts, the room breakdown and the features of a listing.
func Facts(p Page, doc listing.Document, layer listing.TextLayer, f format.Formatter, l i18n.Labels) {
	attrs := doc.Structure.Attributes

	p.SetText(SlotTitle, Title(layer, l))
	p.SetText(SlotShortDescription, Description(layer, l))
	p.SetText(SlotTransactionType, TransactionType(doc.Usage.TransactionType, l))
	p.SetText(SlotPrice, f.Price(doc.Usage.Price, doc.Usage.Currency))
	p.SetText(SlotRoomCount, withUnit(attrs.RoomCount, l, "facts.room_count"))
	p.SetText(SlotLivingArea, withUnit(attrs.LivingAreaSqm, l, "facts.living_area"))
	p.SetText(SlotYearBuilt, YearBuilt(attrs.YearBuilt, attrs.YearRenovated, l))
	p.SetText(SlotAddress, AddressLine(doc.Structure.Address))

	roomBreakdown(p, attrs.RoomBreakdown, l)
	features(p, attrs.Features, l)
}

// Title returns the layer title or the generic default.
func Title(layer listing.TextLayer, l i18n.Labels) string {
	if layer.Title != "" {
		return layer.Title
	}
	return l.T("facts.title_default")
}

// Description returns the layer short description or the generic default.
func Description(layer listing.TextLayer, l i18n.Labels) string {
	if layer.ShortDescription != "" {
		return layer.ShortDescription
	}
	return l.T("facts.description_default")
}

// TransactionType labels sale and rent; other values pass through.
func TransactionType(raw string, l i18n.Labels) string {
	switch raw {
	case "":
		return format.Placeholder
	case "sale", "rent":
		return l.T("transaction." + raw)
	}
	return raw
}

// YearBuilt renders the construction year, with the renovation year when both are known.
func YearBuilt(built, renovated string, l i18n.Labels) string {
	switch {
	case built != "" && renovated != "":
		return l.Sprintf("facts.year_renovated", built, renovated)
	case built != "":
		return built
	}
	return format.Placeholder
}

// AddressLine joins the present address parts with ", ".
func AddressLine(a listing.Address) string {
	parts := a.Parts()
	if len(parts) == 0 {
		return format.Placeholder
	}
	return strings.Join(parts, ", ")
}

// RoomLabel renders one breakdown entry, e.g. "Schlafzimmer (2) - 14 m²".
func RoomLabel(room listing.Room, l i18n.Labels) string {
	label := format.Placeholder
	if room.Type != "" {
		label = l.Vocabulary("room.", room.Type)
	}
	count := room.Count
	if count == "" {
		count = format.Placeholder
	}
	text := label + " (" + count + ")"
	if room.AreaSqm != "" {
		text += " - " + l.Sprintf("facts.room_area", room.AreaSqm)
	}
	return text
}

func withUnit(value string, l i18n.Labels, key string) string {
	if value == "" {
		return format.Placeholder
	}
	return l.Sprintf(key, value)
}

func roomBreakdown(p Page, rooms []listing.Room, l i18n.Labels) {
	if len(rooms) == 0 {
		return
	}
	p.Clear(SlotRoomBreakdownList)
	items := make([]*html.Node, 0, len(rooms))
	for _, room := range rooms {
		items = append(items, dom.TextElement("li", RoomLabel(room, l)))
	}
	p.Append(SlotRoomBreakdownList, items...)
	p.Show(SlotRoomBreakdown)
}

func features(p Page, f *listing.Features, l i18n.Labels) {
	if f == nil {
		return
	}
	p.Clear(SlotFeaturesContent)

	var rendered []*html.Node
	if len(f.Amenities) > 0 {
		list := dom.Element("ul")
		for _, item := range f.Amenities {
			list.AppendChild(dom.TextElement("li", item))
		}
		rendered = append(rendered, featureCategory(l.T("features.amenities"), list))
	}
	for _, c := range []struct {
		key   string
		value string
	}{
		{"features.parking", f.Parking},
		{"features.outdoor", f.Outdoor},
		{"features.storage", f.Storage},
	} {
		if c.value == "" {
			continue
		}
		body := dom.Wrap(dom.Element("p"), dom.Markup(c.value)...)
		rendered = append(rendered, featureCategory(l.T(c.key), body))
	}

	if len(rendered) == 0 {
		return
	}
	p.Append(SlotFeaturesContent, rendered...)
	p.SetClass(SlotFeaturesContent, "features-grid")
	p.Show(SlotFeatures)
}

func featureCategory(heading string, body *html.Node) *html.Node {
	return dom.Wrap(
		dom.Element("div", dom.Attr("class", "feature-category")),
		dom.TextElement("h3", heading),
		body,
	)
}
