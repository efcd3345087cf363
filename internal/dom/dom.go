// Package dom is the output surface of the renderer: a parsed HTML page whose
// elements are addressed by id, plus helpers to build new nodes.
package dom

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Document wraps a parsed page.
type Document struct {
	doc *goquery.Document
}

// Parse reads an HTML page.
func Parse(r io.Reader) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("dom: parse: %w", err)
	}
	return &Document{doc: doc}, nil
}

// ParseBytes reads an HTML page from memory.
func ParseBytes(b []byte) (*Document, error) {
	return Parse(bytes.NewReader(b))
}

// Selection exposes the underlying goquery document for queries.
func (d *Document) Selection() *goquery.Selection { return d.doc.Selection }

// Find runs a CSS selector against the whole page.
func (d *Document) Find(selector string) *goquery.Selection { return d.doc.Find(selector) }

func (d *Document) byID(id string) *goquery.Selection {
	return d.doc.Find("#" + id)
}

// SetText replaces the content of element id with escaped text.
func (d *Document) SetText(id, text string) {
	d.byID(id).SetText(text)
}

// Clear removes all children of element id.
func (d *Document) Clear(id string) {
	d.byID(id).Empty()
}

// Show makes element id visible by setting its inline display style.
func (d *Document) Show(id string) {
	sel := d.byID(id)
	style, _ := sel.Attr("style")
	sel.SetAttr("style", setDisplay(style, "block"))
}

// Visible reports whether element id exists and is not display:none.
func (d *Document) Visible(id string) bool {
	sel := d.byID(id)
	if sel.Length() == 0 {
		return false
	}
	style, _ := sel.Attr("style")
	return !strings.Contains(strings.ReplaceAll(style, " ", ""), "display:none")
}

// SetClass replaces the class attribute of element id.
func (d *Document) SetClass(id, class string) {
	d.byID(id).SetAttr("class", class)
}

// Append adds nodes as the last children of element id.
func (d *Document) Append(id string, nodes ...*html.Node) {
	sel := d.byID(id)
	if sel.Length() == 0 {
		return
	}
	sel.First().AppendNodes(nodes...)
}

// ChildCount returns the number of element children of id.
func (d *Document) ChildCount(id string) int {
	return d.byID(id).Children().Length()
}

// SetLang sets the lang attribute of the root element.
func (d *Document) SetLang(lang string) {
	d.doc.Find("html").SetAttr("lang", lang)
}

// SetTitle sets the document title, creating the element when missing.
func (d *Document) SetTitle(title string) {
	sel := d.doc.Find("head > title")
	if sel.Length() == 0 {
		d.doc.Find("head").AppendNodes(Element("title"))
		sel = d.doc.Find("head > title")
	}
	sel.First().SetText(title)
}

// SetMeta sets the content of an existing meta tag matched by attr=key
// (name="description", property="og:title"). It reports whether one existed.
func (d *Document) SetMeta(attr, key, content string) bool {
	sel := d.doc.Find(metaSelector(attr, key))
	if sel.Length() == 0 {
		return false
	}
	sel.First().SetAttr("content", content)
	return true
}

// EnsureMeta sets a meta tag like SetMeta, appending it to <head> when absent.
func (d *Document) EnsureMeta(attr, key, content string) {
	if d.SetMeta(attr, key, content) {
		return
	}
	d.doc.Find("head").First().AppendNodes(Element("meta", Attr(attr, key), Attr("content", content)))
}

// SetJSONLD replaces the content of an existing JSON-LD script. It never
// creates one and reports whether a script was found.
func (d *Document) SetJSONLD(payload string) bool {
	sel := d.doc.Find(`script[type="application/ld+json"]`)
	if sel.Length() == 0 {
		return false
	}
	script := sel.First()
	script.Empty()
	script.AppendNodes(Text(payload))
	return true
}

// Render writes the page as HTML.
func (d *Document) Render(w io.Writer) error {
	for _, n := range d.doc.Nodes {
		if err := html.Render(w, n); err != nil {
			return fmt.Errorf("dom: render: %w", err)
		}
	}
	return nil
}

// HTML returns the rendered page.
func (d *Document) HTML() (string, error) {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func metaSelector(attr, key string) string {
	return fmt.Sprintf(`meta[%s=%q]`, attr, key)
}

// setDisplay rewrites the display declaration of an inline style.
func setDisplay(style, display string) string {
	decls := strings.Split(style, ";")
	out := make([]string, 0, len(decls)+1)
	for _, decl := range decls {
		decl = strings.TrimSpace(decl)
		if decl == "" {
			continue
		}
		if name, _, ok := strings.Cut(decl, ":"); ok && strings.TrimSpace(name) == "display" {
			continue
		}
		out = append(out, decl)
	}
	out = append(out, "display: "+display)
	return strings.Join(out, "; ")
}

// Element builds a detached element node.
func Element(tag string, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
		Attr:     attrs,
	}
}

// Attr builds an attribute.
func Attr(key, val string) html.Attribute {
	return html.Attribute{Key: key, Val: val}
}

// Text builds a text node.
func Text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

// TextElement builds an element holding a single text node.
func TextElement(tag, text string, attrs ...html.Attribute) *html.Node {
	return Wrap(Element(tag, attrs...), Text(text))
}

// Wrap appends children to parent and returns parent.
func Wrap(parent *html.Node, children ...*html.Node) *html.Node {
	for _, c := range children {
		if c != nil {
			parent.AppendChild(c)
		}
	}
	return parent
}

var ugc = bluemonday.UGCPolicy()

// Markup sanitises user-supplied HTML and parses it into nodes suitable for
// placement inside a block element.
func Markup(markup string) []*html.Node {
	safe := ugc.Sanitize(markup)
	nodes, err := html.ParseFragment(strings.NewReader(safe), Element("div"))
	if err != nil {
		return []*html.Node{Text(markup)}
	}
	return nodes
}
