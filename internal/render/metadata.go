package render

import (
	"finitefield.org/listing-web/internal/i18n"
	"finitefield.org/listing-web/internal/listing"
	"finitefield.org/listing-web/internal/seo"
)

// Metadata synchronizes the head with the rendered listing: language, title,
// description, Open Graph tags and the JSON-LD block.
func Metadata(h Head, doc listing.Document, layer listing.TextLayer, locale, pageURL string, l i18n.Labels) {
	hero, hasHero := listing.HeroImage(doc.Media)
	image := ""
	if hasHero {
		image = hero.URI
	}
	meta := seo.PageMeta(Title(layer, l), Description(layer, l), image)

	h.SetLang(locale)
	h.SetTitle(meta.Title)
	h.SetMeta("name", "description", meta.Description)
	h.SetMeta("property", "og:title", meta.OG.Title)
	h.SetMeta("property", "og:description", meta.OG.Description)
	if hasHero {
		h.EnsureMeta("property", "og:image", meta.OG.Image)
	}

	h.SetJSONLD(seo.IndentJSON(seo.Listing(Residence(doc, layer, locale, pageURL, l))))
}

// Residence collects the structured-data view of a listing.
func Residence(doc listing.Document, layer listing.TextLayer, locale, pageURL string, l i18n.Labels) seo.Residence {
	addr := doc.Structure.Address
	r := seo.Residence{
		Name:         Title(layer, l),
		Description:  layer.ShortDescription,
		Locale:       locale,
		URL:          pageURL,
		PropertyType: doc.Structure.Attributes.PropertyType,
		Address: seo.Address{
			Street:     addr.Street,
			Locality:   addr.Locality,
			PostalCode: addr.PostalCode,
			Region:     addr.Region,
			Country:    addr.Country,
		},
		Currency:           doc.Usage.Currency,
		AvailabilityStatus: doc.Usage.AvailabilityStatus,
	}
	if doc.Usage.Price.Truthy() {
		r.Price = doc.Usage.Price.Interface()
	}
	for _, m := range doc.Media {
		switch m.Role {
		case listing.RoleHero, listing.RoleExterior, listing.RoleInterior:
			r.Images = append(r.Images, m.URI)
		}
	}
	return r
}
