package dom

import (
	"sort"
	"strings"
)

// voidElements have no closing tag.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"source": true, "track": true, "wbr": true,
}

// RenderHTML serializes a node and its subtree to HTML. Adopted nodes carry
// their id as a data-fid attribute so a client can address them in patches.
func RenderHTML(n *Node) string {
	var b strings.Builder
	renderNode(&b, n)
	return b.String()
}

func renderNode(b *strings.Builder, n *Node) {
	if n == nil {
		return
	}
	switch n.Kind {
	case KindText:
		b.WriteString(escapeHTML(n.text))
	case KindComment:
		b.WriteString("<!--")
		b.WriteString(n.text)
		b.WriteString("-->")
	case KindFragment:
		for _, c := range n.children {
			renderNode(b, c)
		}
	case KindElement:
		b.WriteByte('<')
		b.WriteString(n.Tag)
		renderAttrs(b, n)
		b.WriteByte('>')
		if voidElements[n.Tag] {
			return
		}
		if n.IsTemplate() && n.Content != nil {
			for _, c := range n.Content.children {
				renderNode(b, c)
			}
		}
		for _, c := range n.children {
			renderNode(b, c)
		}
		b.WriteString("</")
		b.WriteString(n.Tag)
		b.WriteByte('>')
	}
}

// renderAttrs writes id, class, and attributes in deterministic order.
func renderAttrs(b *strings.Builder, n *Node) {
	if n.id != "" {
		b.WriteString(` data-fid="`)
		b.WriteString(escapeAttr(n.id))
		b.WriteByte('"')
	}
	if len(n.classes) > 0 {
		b.WriteString(` class="`)
		b.WriteString(escapeAttr(n.ClassAttr()))
		b.WriteByte('"')
	}
	if len(n.attrs) == 0 {
		return
	}
	keys := make([]string, 0, len(n.attrs))
	for k := range n.attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteByte(' ')
		b.WriteString(k)
		b.WriteString(`="`)
		b.WriteString(escapeAttr(n.attrs[k]))
		b.WriteByte('"')
	}
}

// escapeHTML escapes text for safe inclusion in HTML content.
func escapeHTML(s string) string {
	var buf strings.Builder
	buf.Grow(len(s))
	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '"':
			buf.WriteString("&quot;")
		case '\'':
			buf.WriteString("&#39;")
		default:
			buf.WriteRune(r)
		}
	}
	return buf.String()
}

// escapeAttr escapes text for safe inclusion in HTML attribute values.
// Whitespace characters that could break attribute parsing are escaped too.
func escapeAttr(s string) string {
	var buf strings.Builder
	buf.Grow(len(s))
	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '"':
			buf.WriteString("&quot;")
		case '\'':
			buf.WriteString("&#39;")
		case '\n':
			buf.WriteString("&#10;")
		case '\r':
			buf.WriteString("&#13;")
		case '\t':
			buf.WriteString("&#9;")
		default:
			buf.WriteRune(r)
		}
	}
	return buf.String()
}
