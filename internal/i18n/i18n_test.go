package i18n

import (
	"net/url"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveLocale(t *testing.T) {
	cases := []struct {
		query string
		want  string
	}{
		{"", DefaultLocale},
		{"lang=fr-CH", "fr-CH"},
		{"lang=en", "en"},
		{"lang=fr", DefaultLocale},
		{"lang=FR-ch", DefaultLocale},
		{"lang=xx", DefaultLocale},
		{"other=1", DefaultLocale},
	}
	for _, tc := range cases {
		q, err := url.ParseQuery(tc.query)
		require.NoError(t, err)
		assert.Equal(t, tc.want, ResolveLocale(q), "query %q", tc.query)
	}
}

func TestLayerKey(t *testing.T) {
	assert.Equal(t, "de", LayerKey("de-CH"))
	assert.Equal(t, "fr", LayerKey("fr-CH"))
	assert.Equal(t, "it", LayerKey("it-CH"))
	assert.Equal(t, "pt", LayerKey("pt"))
	assert.Equal(t, "de", LayerKey("nl-NL"))
}

func TestFallbackChain(t *testing.T) {
	assert.Equal(t, []string{"de"}, FallbackChain("de-CH"))
	assert.Equal(t, []string{"en", "de"}, FallbackChain("en"))
	assert.Equal(t, []string{"fr", "de", "en"}, FallbackChain("fr-CH"))
	assert.Equal(t, []string{"de"}, FallbackChain("unknown"))
}

func TestFallbackChainShapeForSupportedLocales(t *testing.T) {
	for _, locale := range SupportedLocales() {
		chain := FallbackChain(locale)
		require.LessOrEqual(t, len(chain), 3, locale)

		seen := map[string]bool{}
		for _, k := range chain {
			require.False(t, seen[k], "duplicate %s in chain for %s", k, locale)
			seen[k] = true
		}
		assert.True(t, seen["de"], "chain for %s must reach de", locale)
		if chain[0] != "de" {
			assert.True(t, seen["en"], "chain for %s must reach en", locale)
		}
	}
}

func TestTagFallsBackToDefault(t *testing.T) {
	assert.Equal(t, "fr-CH", Tag("fr-CH").String())
	assert.Equal(t, "de-CH", Tag("xx").String())
}

func TestDefaultBundleIsGermanForEveryLocale(t *testing.T) {
	b := MustDefault()

	assert.Equal(t, []string{"de"}, b.Keys())
	for _, locale := range SupportedLocales() {
		assert.Equal(t, "Kauf", b.T(locale, "transaction.sale"), locale)
		assert.Equal(t, "3 Zimmer", b.For(locale).Sprintf("facts.room_count", "3"), locale)
	}
	assert.Equal(t, "missing.key", b.T("en", "missing.key"))
}

func TestBundleWalksLoadedLayers(t *testing.T) {
	fsys := fstest.MapFS{
		"l/de.json": {Data: []byte(`{"a":"A-de","b":"B-de"}`)},
		"l/fr.json": {Data: []byte(`{"a":"A-fr"}`)},
	}
	b, err := Load(fsys, "l", "de", []string{"de", "fr"})
	require.NoError(t, err)
	assert.Equal(t, "A-fr", b.T("fr-CH", "a"))
	assert.Equal(t, "B-de", b.T("fr-CH", "b"))
}

func TestLoadRequiresFallback(t *testing.T) {
	fsys := fstest.MapFS{
		"l/en.json": {Data: []byte(`{"a":"A"}`)},
	}
	_, err := Load(fsys, "l", "de", []string{"de", "en"})
	require.Error(t, err)

	b, err := Load(fsys, "l", "en", []string{"de", "en"})
	require.NoError(t, err)
	assert.Equal(t, []string{"en"}, b.Keys())
}

func TestLabelsVocabulary(t *testing.T) {
	l := MustDefault().For(DefaultLocale)

	assert.Equal(t, "Schlafzimmer", l.Vocabulary("room.", "bedroom"))
	assert.Equal(t, "attic", l.Vocabulary("room.", "attic"))
	assert.Equal(t, "3 Zimmer", l.Sprintf("facts.room_count", "3"))
}
