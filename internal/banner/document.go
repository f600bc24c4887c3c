package banner

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Document is a parsed HTML page the engine mutates in place.
type Document struct {
	root *html.Node
}

// Parse reads a full HTML document. The parser always synthesizes <html>,
// <head> and <body>, so fragments are accepted too.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return &Document{root: root}, nil
}

// ParseString is Parse over a string.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// NewDocument wraps an already parsed node tree.
func NewDocument(root *html.Node) *Document {
	return &Document{root: root}
}

// Root returns the underlying node tree.
func (d *Document) Root() *html.Node {
	return d.root
}

// Render serializes the document.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

// String returns the serialized document.
func (d *Document) String() string {
	var b strings.Builder
	if err := d.Render(&b); err != nil {
		return ""
	}
	return b.String()
}

// Body returns the <body> element, or nil.
func (d *Document) Body() *html.Node {
	return d.first(func(n *html.Node) bool { return n.Type == html.ElementNode && n.DataAtom == atom.Body })
}

// Head returns the <head> element, or nil.
func (d *Document) Head() *html.Node {
	return d.first(func(n *html.Node) bool { return n.Type == html.ElementNode && n.DataAtom == atom.Head })
}

// Banners returns every marker-tagged node in document order.
func (d *Document) Banners() []*html.Node {
	return d.all(func(n *html.Node) bool { return n.Type == html.ElementNode && HasClass(n, MarkerClass) })
}

// FindAttr returns the first element carrying attribute key, or nil.
func (d *Document) FindAttr(key string) *html.Node {
	return d.first(func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return false
		}
		_, ok := Attr(n, key)
		return ok
	})
}

// LinkStylesheet adds <link rel="stylesheet" href=href> to <head> unless an
// identical link is already present.
func (d *Document) LinkStylesheet(href string) {
	head := d.Head()
	if head == nil || href == "" {
		return
	}
	exists := d.first(func(n *html.Node) bool {
		if n.Type != html.ElementNode || n.DataAtom != atom.Link {
			return false
		}
		h, _ := Attr(n, "href")
		return h == href
	})
	if exists != nil {
		return
	}
	head.AppendChild(&html.Node{
		Type:     html.ElementNode,
		Data:     "link",
		DataAtom: atom.Link,
		Attr: []html.Attribute{
			{Key: "rel", Val: "stylesheet"},
			{Key: "href", Val: href},
		},
	})
}

func (d *Document) first(match func(*html.Node) bool) *html.Node {
	var found *html.Node
	walk(d.root, func(n *html.Node) bool {
		if match(n) {
			found = n
			return false
		}
		return true
	})
	return found
}

func (d *Document) all(match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	walk(d.root, func(n *html.Node) bool {
		if match(n) {
			out = append(out, n)
		}
		return true
	})
	return out
}

// walk visits n and its descendants depth first until visit returns false.
func walk(n *html.Node, visit func(*html.Node) bool) bool {
	if n == nil {
		return true
	}
	if !visit(n) {
		return false
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !walk(c, visit) {
			return false
		}
	}
	return true
}

// Attr returns the value of attribute key on n.
func Attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr sets attribute key on n, replacing any existing value.
func SetAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// RemoveAttr deletes attribute key from n.
func RemoveAttr(n *html.Node, key string) {
	attrs := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			continue
		}
		attrs = append(attrs, a)
	}
	n.Attr = attrs
}

// HasClass reports whether n's class attribute contains class.
func HasClass(n *html.Node, class string) bool {
	v, ok := Attr(n, "class")
	if !ok {
		return false
	}
	for _, c := range strings.Fields(v) {
		if c == class {
			return true
		}
	}
	return false
}

// TextContent returns the concatenated text of n's descendants.
func TextContent(n *html.Node) string {
	var b strings.Builder
	walk(n, func(c *html.Node) bool {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
		return true
	})
	return b.String()
}
