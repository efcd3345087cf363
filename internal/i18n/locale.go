package i18n

import (
	"net/url"

	"golang.org/x/text/language"
)

const (
	// DefaultLocale is used when the request names no supported locale.
	DefaultLocale = "de-CH"
	// DefaultLayerKey indexes text layers for locales without a mapping.
	DefaultLayerKey = "de"
	// QueryParam carries the requested locale.
	QueryParam = "lang"
)

// supportedLocales lists the BCP-47 tags the page can be rendered in, in
// display order, with the text-layer key each one reads from.
var supportedLocales = []struct {
	locale   string
	layerKey string
}{
	{"de-CH", "de"},
	{"fr-CH", "fr"},
	{"it-CH", "it"},
	{"en", "en"},
	{"es", "es"},
	{"pt", "pt"},
}

var supportedTags = func() map[string]language.Tag {
	tags := make(map[string]language.Tag, len(supportedLocales))
	for _, s := range supportedLocales {
		tags[s.locale] = language.MustParse(s.locale)
	}
	return tags
}()

// SupportedLocales returns the supported locale tags in display order.
func SupportedLocales() []string {
	out := make([]string, 0, len(supportedLocales))
	for _, s := range supportedLocales {
		out = append(out, s.locale)
	}
	return out
}

// IsSupported reports whether locale is one of the supported tags, compared verbatim.
func IsSupported(locale string) bool {
	_, ok := supportedTags[locale]
	return ok
}

// ResolveLocale returns the `lang` query value when it names a supported
// locale and DefaultLocale otherwise.
func ResolveLocale(q url.Values) string {
	if lang := q.Get(QueryParam); lang != "" && IsSupported(lang) {
		return lang
	}
	return DefaultLocale
}

// Tag returns the language tag for a locale, falling back to the default locale.
func Tag(locale string) language.Tag {
	if t, ok := supportedTags[locale]; ok {
		return t
	}
	return supportedTags[DefaultLocale]
}

// LayerKey maps a locale to the key of its text layer.
func LayerKey(locale string) string {
	for _, s := range supportedLocales {
		if s.locale == locale {
			return s.layerKey
		}
	}
	return DefaultLayerKey
}

// FallbackChain lists the layer keys tried for locale: its own key, then
// "de", then "en". Keys already covered are not repeated.
func FallbackChain(locale string) []string {
	key := LayerKey(locale)
	chain := make([]string, 0, 3)
	chain = append(chain, key)
	if key != "de" {
		chain = append(chain, "de")
	}
	if key != "en" && key != "de" {
		chain = append(chain, "en")
	}
	return chain
}
