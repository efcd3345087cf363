package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"finitefield.org/listing-web/internal/listing"
)

func TestPriceAbsentOrZero(t *testing.T) {
	f := New("de-CH")
	assert.Equal(t, Placeholder, f.Price(listing.NullNode(), "CHF"))
	assert.Equal(t, Placeholder, f.Price(listing.NumberNode(0), "EUR"))
	assert.Equal(t, Placeholder, f.Price(listing.StringNode(""), ""))
}

func TestPriceGroupsPerLocale(t *testing.T) {
	got := New("de-CH").Price(listing.NumberNode(100000), "CHF")
	assert.Regexp(t, `^CHF\x{00a0}100\D000\D00$`, got)

	got = New("en").Price(listing.NumberNode(1250000), "")
	assert.Equal(t, "CHF\u00a01,250,000.00", got)
}

func TestPriceSymbolPlacement(t *testing.T) {
	got := New("fr-CH").Price(listing.NumberNode(2500), "chf")
	assert.Equal(t, "2\u202f500.00\u00a0CHF", got)
}

func TestPriceSwissFrenchSeparators(t *testing.T) {
	f := New("fr-CH")
	assert.Equal(t, "100\u202f000.00\u00a0CHF", f.Price(listing.NumberNode(100000), "CHF"))
	assert.Equal(t, "1\u202f250\u202f000.50\u00a0EUR", f.Price(listing.NumberNode(1250000.5), "EUR"))
	assert.Equal(t, "950.00\u00a0CHF", f.Price(listing.NumberNode(950), ""))
}

func TestPriceCurrencyFractionDigits(t *testing.T) {
	got := New("en").Price(listing.NumberNode(98000), "JPY")
	assert.Equal(t, "JPY\u00a098,000", got)
}

func TestPriceNumericString(t *testing.T) {
	got := New("en").Price(listing.StringNode("1500"), "USD")
	assert.Equal(t, "USD\u00a01,500.00", got)
}

func TestDate(t *testing.T) {
	assert.Equal(t, Placeholder, New("de-CH").Date(""))
	assert.Equal(t, "16. Oktober 2026", New("de-CH").Date("2026-10-16"))
	assert.Equal(t, "October 16, 2026", New("en").Date("2026-10-16T08:30:00Z"))
	assert.Equal(t, "3 mars 2024", New("fr-CH").Date("2024-03-03T23:00:00+01:00"))
	assert.Equal(t, "1 de enero de 2025", New("es").Date("2025-01-01"))
}

func TestDateUnparseablePassesThrough(t *testing.T) {
	assert.Equal(t, "soon", New("de-CH").Date("soon"))
}

func TestUnsupportedLocaleFormatsAsDefault(t *testing.T) {
	f := New("nl-NL")
	assert.Equal(t, "de-CH", f.Locale())
	assert.Equal(t, "2. Mai 2024", FmtDate(time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC), "xx"))
}
