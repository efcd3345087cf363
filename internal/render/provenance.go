package render

import (
	"golang.org/x/net/html"

	"finitefield.org/listing-web/internal/dom"
	"finitefield.org/listing-web/internal/format"
	"finitefield.org/listing-web/internal/i18n"
	"finitefield.org/listing-web/internal/listing"
)

// Provenance writes the update date and data confidence as dt/dd pairs.
func Provenance(p Page, prov listing.Provenance, f format.Formatter, l i18n.Labels) {
	p.Clear(SlotProvenanceList)

	var pairs []*html.Node
	if prov.UpdatedAt != "" {
		pairs = append(pairs,
			dom.TextElement("dt", l.T("provenance.updated_at")),
			dom.TextElement("dd", f.Date(prov.UpdatedAt)),
		)
	}
	if prov.DataConfidence != "" {
		pairs = append(pairs,
			dom.TextElement("dt", l.T("provenance.data_confidence")),
			dom.TextElement("dd", l.Vocabulary("confidence.", prov.DataConfidence)),
		)
	}
	if len(pairs) == 0 {
		return
	}
	p.Append(SlotProvenanceList, pairs...)
	p.Show(SlotProvenance)
}
