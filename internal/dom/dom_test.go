package dom

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const page = `<!DOCTYPE html>
<html lang="de">
<head>
<title>x</title>
<meta name="description" content="">
<script type="application/ld+json">{}</script>
</head>
<body>
<h1 id="title">-</h1>
<section id="sec" style="display: none; margin: 0"><ul id="list"><li>old</li></ul></section>
</body>
</html>`

func parse(t *testing.T, markup string) *Document {
	t.Helper()
	d, err := Parse(strings.NewReader(markup))
	require.NoError(t, err)
	return d
}

func TestSetTextEscapes(t *testing.T) {
	d := parse(t, page)
	d.SetText("title", "<b>A & B</b>")

	assert.Equal(t, "<b>A & B</b>", d.Find("#title").Text())
	out, err := d.HTML()
	require.NoError(t, err)
	assert.Contains(t, out, "&lt;b&gt;A &amp; B&lt;/b&gt;")
}

func TestShowKeepsOtherDeclarations(t *testing.T) {
	d := parse(t, page)
	require.False(t, d.Visible("sec"))

	d.Show("sec")
	style, _ := d.Find("#sec").Attr("style")
	assert.Equal(t, "margin: 0; display: block", style)
	assert.True(t, d.Visible("sec"))
	assert.False(t, d.Visible("missing"))
}

func TestClearAndAppend(t *testing.T) {
	d := parse(t, page)
	d.Clear("list")
	d.Append("list", TextElement("li", "one"), TextElement("li", "two"))

	assert.Equal(t, 2, d.ChildCount("list"))
	assert.Equal(t, "onetwo", d.Find("#list").Text())

	// appending to a missing slot is a no-op
	d.Append("nope", TextElement("li", "x"))
}

func TestHeadHelpers(t *testing.T) {
	d := parse(t, page)
	d.SetLang("fr-CH")
	d.SetTitle("Titre")
	assert.True(t, d.SetMeta("name", "description", "Desc"))
	assert.False(t, d.SetMeta("property", "og:title", "Titre"))

	d.EnsureMeta("property", "og:image", "a.jpg")
	d.EnsureMeta("property", "og:image", "b.jpg")
	assert.True(t, d.SetJSONLD(`{"@type":"Apartment"}`))

	lang, _ := d.Find("html").Attr("lang")
	assert.Equal(t, "fr-CH", lang)
	assert.Equal(t, "Titre", d.Find("title").Text())
	desc, _ := d.Find(`meta[name="description"]`).Attr("content")
	assert.Equal(t, "Desc", desc)

	og := d.Find(`meta[property="og:image"]`)
	require.Equal(t, 1, og.Length())
	img, _ := og.Attr("content")
	assert.Equal(t, "b.jpg", img)

	assert.Equal(t, `{"@type":"Apartment"}`, d.Find(`script[type="application/ld+json"]`).Text())
}

func TestSetJSONLDNeverCreates(t *testing.T) {
	d := parse(t, `<html><head></head><body></body></html>`)
	assert.False(t, d.SetJSONLD(`{}`))
	assert.Equal(t, 0, d.Find("script").Length())
}

func TestSetTitleCreatesMissingElement(t *testing.T) {
	d := parse(t, `<html><head></head><body></body></html>`)
	d.SetTitle("Objekt")
	assert.Equal(t, "Objekt", d.Find("head > title").Text())
}

func TestMarkupSanitises(t *testing.T) {
	nodes := Markup(`Garage <em>2 Plätze</em><script>alert(1)</script>`)
	d := parse(t, page)
	d.Clear("title")
	d.Append("title", nodes...)

	out, err := d.Find("#title").Html()
	require.NoError(t, err)
	assert.Equal(t, "Garage <em>2 Plätze</em>", out)
}
