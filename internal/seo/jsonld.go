package seo

import (
	"bytes"
	"encoding/json"
)

const (
	schemaContext = "https://schema.org"

	// AvailabilityInStock marks a listing whose property is occupied.
	AvailabilityInStock = "https://schema.org/InStock"
	// AvailabilityPreOrder marks every other availability state.
	AvailabilityPreOrder = "https://schema.org/PreOrder"

	defaultPropertyType = "apartment"
	defaultCurrency     = "CHF"
)

// IndentJSON marshals v with two-space indentation for embedding in a script tag.
// It returns an empty string on error.
func IndentJSON(v any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return ""
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n"))
}

// Address mirrors schema.org PostalAddress.
type Address struct {
	Street     string
	Locality   string
	PostalCode string
	Region     string
	Country    string
}

// Residence carries the listing facts published as structured data.
type Residence struct {
	Name               string
	Description        string
	Locale             string
	URL                string
	PropertyType       string
	Address            Address
	Price              any
	Currency           string
	AvailabilityStatus string
	Images             []string
}

// SchemaType maps a property type to its schema.org type. Listings without a
// property type are apartments.
func SchemaType(propertyType string) string {
	if propertyType == "" {
		propertyType = defaultPropertyType
	}
	if propertyType == "apartment" {
		return "Apartment"
	}
	return "Residence"
}

// Availability maps an occupancy status to a schema.org availability URL.
func Availability(status string) string {
	if status == "occupied" {
		return AvailabilityInStock
	}
	return AvailabilityPreOrder
}

// PostalAddressLD is a schema.org PostalAddress. Missing parts stay empty strings.
type PostalAddressLD struct {
	Type            string `json:"@type"`
	StreetAddress   string `json:"streetAddress"`
	AddressLocality string `json:"addressLocality"`
	PostalCode      string `json:"postalCode"`
	AddressRegion   string `json:"addressRegion"`
	AddressCountry  string `json:"addressCountry"`
}

// OfferLD is a schema.org Offer.
type OfferLD struct {
	Type          string `json:"@type"`
	Price         any    `json:"price"`
	PriceCurrency string `json:"priceCurrency"`
	Availability  string `json:"availability"`
	URL           string `json:"url"`
}

// ListingLD is the structured data of a listing page, in publishing order.
type ListingLD struct {
	Context     string          `json:"@context"`
	Type        string          `json:"@type"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	InLanguage  string          `json:"inLanguage"`
	URL         string          `json:"url"`
	Address     PostalAddressLD `json:"address"`
	Offers      OfferLD         `json:"offers"`
	Image       []string        `json:"image,omitempty"`
}

// PostalAddress returns the schema.org address of a.
func PostalAddress(a Address) PostalAddressLD {
	return PostalAddressLD{
		Type:            "PostalAddress",
		StreetAddress:   a.Street,
		AddressLocality: a.Locality,
		PostalCode:      a.PostalCode,
		AddressRegion:   a.Region,
		AddressCountry:  a.Country,
	}
}

// Offer returns a schema.org Offer. A nil price is published as an empty string.
func Offer(price any, currency, availability, url string) OfferLD {
	if price == nil {
		price = ""
	}
	if currency == "" {
		currency = defaultCurrency
	}
	return OfferLD{
		Type:          "Offer",
		Price:         price,
		PriceCurrency: currency,
		Availability:  availability,
		URL:           url,
	}
}

// Listing builds the structured data for a listing page.
func Listing(r Residence) ListingLD {
	return ListingLD{
		Context:     schemaContext,
		Type:        SchemaType(r.PropertyType),
		Name:        r.Name,
		Description: r.Description,
		InLanguage:  r.Locale,
		URL:         r.URL,
		Address:     PostalAddress(r.Address),
		Offers:      Offer(r.Price, r.Currency, Availability(r.AvailabilityStatus), r.URL),
		Image:       r.Images,
	}
}
