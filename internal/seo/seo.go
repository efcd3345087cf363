package seo

type OpenGraph struct {
	Title       string
	Description string
	Image       string
}

// Meta holds the head metadata of a page.
type Meta struct {
	Title       string
	Description string
	OG          OpenGraph
}

// PageMeta derives head metadata from a title, description and optional image.
// Open Graph fields mirror the document title and description.
func PageMeta(title, description, image string) Meta {
	return Meta{
		Title:       title,
		Description: description,
		OG: OpenGraph{
			Title:       title,
			Description: description,
			Image:       image,
		},
	}
}
