package render

import (
	"fmt"

	"golang.org/x/net/html"

	"finitefield.org/listing-web/internal/dom"
	"finitefield.org/listing-web/internal/listing"
)

// MaxExtensionDepth is the deepest nesting level rendered; deeper levels are dropped.
const MaxExtensionDepth = 3

// indentPerLevel is the left margin in pixels added per nesting level.
const indentPerLevel = 20

// Extensions renders the schema-free extensions object as nested labelled
// blocks. The section stays hidden for an empty object.
func Extensions(p Page, ext listing.Node) {
	if ext.Kind() != listing.Object || ext.Len() == 0 {
		return
	}
	p.Clear(SlotExtensionsContent)
	p.Append(SlotExtensionsContent, ExtensionNodes(ext, 0)...)
	p.Show(SlotExtensions)
}

// ExtensionNodes renders the fields of obj at the given depth.
func ExtensionNodes(obj listing.Node, level int) []*html.Node {
	if level > MaxExtensionDepth {
		return nil
	}
	var out []*html.Node
	for _, field := range obj.Fields() {
		value := field.Value
		block := dom.Element("div", dom.Attr("style",
			fmt.Sprintf("margin-left: %dpx; margin-top: 0.5rem;", level*indentPerLevel)))

		switch value.Kind() {
		case listing.Null:
			continue
		case listing.Array:
			list := dom.Element("ul")
			for _, item := range value.Items() {
				list.AppendChild(dom.TextElement("li", arrayItemText(item)))
			}
			dom.Wrap(block, dom.TextElement("strong", field.Key+": "), list)
		case listing.Object:
			dom.Wrap(block, dom.TextElement("strong", field.Key+":"))
			dom.Wrap(block, ExtensionNodes(value, level+1)...)
		default:
			dom.Wrap(block, dom.TextElement("strong", field.Key+": "), dom.Text(value.String()))
		}
		out = append(out, block)
	}
	return out
}

func arrayItemText(item listing.Node) string {
	switch item.Kind() {
	case listing.Array, listing.Object:
		return item.Indent()
	}
	return item.String()
}
