package render

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/csheth/akesi/internal/settings"
)

// HTML renders the tree as an HTML fragment: a div in the container font
// holding one element per block.
func HTML(t Tree) string {
	var buf bytes.Buffer
	// Writes to a bytes.Buffer do not fail.
	_ = WriteHTML(&buf, t)
	return buf.String()
}

// WriteHTML writes the HTML form of t to w.
func WriteHTML(w io.Writer, t Tree) error {
	whiteSpace := "pre-wrap"
	if t.Compact {
		whiteSpace = "normal"
	}
	root := element("div", html.Attribute{
		Key: "style",
		Val: fmt.Sprintf("font-family: %s; white-space: %s", cssFamily(t.Font), whiteSpace),
	})
	for _, block := range t.Blocks {
		root.AppendChild(htmlNode(block))
	}
	if err := html.Render(w, root); err != nil {
		return fmt.Errorf("render: html: %w", err)
	}
	return nil
}

// cssFamily quotes family names that contain spaces.
func cssFamily(family string) string {
	if strings.ContainsRune(family, ' ') {
		return "'" + family + "'"
	}
	return family
}

// safeElements are written under their own name. Stored markup can name any
// element, so everything else becomes a span and its text stays escaped.
var safeElements = map[string]bool{
	"p": true, "div": true, "span": true, "br": true, "hr": true, "img": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"strong": true, "b": true, "em": true, "i": true, "u": true, "del": true, "s": true,
	"sub": true, "sup": true, "small": true, "mark": true, "code": true, "pre": true,
	"ul": true, "ol": true, "li": true, "blockquote": true, "a": true,
	"table": true, "thead": true, "tbody": true, "tr": true, "td": true, "th": true,
}

func element(tag string, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
		Attr:     attrs,
	}
}

func htmlNode(n Node) *html.Node {
	switch n.Kind {
	case BreakNode:
		return element("br")
	case ImageNode:
		return element("img", html.Attribute{Key: "src", Val: n.Src})
	case ElementNode:
		tag := n.Tag
		if !safeElements[tag] {
			tag = "span"
		}
		el := element(tag)
		for _, c := range n.Children {
			el.AppendChild(htmlNode(c))
		}
		return el
	default:
		text := &html.Node{Type: html.TextNode, Data: n.Text}
		if !n.Latin {
			return text
		}
		span := element("span", html.Attribute{
			Key: "style",
			Val: "font-family: " + settings.SansSerif,
		})
		span.AppendChild(text)
		return span
	}
}
