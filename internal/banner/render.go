package banner

import (
	"log/slog"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const hiddenStyle = "display: none"

// Renderer draws banners for a Settings value.
type Renderer struct {
	logger *slog.Logger
}

// NewRenderer returns a Renderer logging to logger, or to slog.Default when
// logger is nil.
func NewRenderer(logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{logger: logger}
}

// Render replaces all banners in doc with those described by s. Calling it
// again with the same settings leaves the document unchanged.
func (r *Renderer) Render(doc *Document, s Settings) {
	Clear(doc)

	body := doc.Body()
	if body == nil {
		r.logger.Warn("banner: document has no body, nothing rendered")
		return
	}

	label, ok := s.Level.Label()
	if !ok && s.Level.Family() != FamilyUnknown {
		r.logger.Warn("banner: unrecognized classification level, label left blank", "level", s.Level)
	}

	text := label
	if s.Dynamic && !s.DynamicBanner {
		text = DynamicText + " " + label
	}

	var head, foot *html.Node
	if v, ok := VariantFor(s.Level.Family(), s.TSOrange); ok {
		head = newBanner(v, text)
		foot = newBanner(v, text)
		body.InsertBefore(head, body.FirstChild)
		body.AppendChild(foot)
	} else {
		r.logger.Warn("banner: no style variant for classification level, banner omitted", "level", s.Level)
	}

	if s.Dynamic && s.DynamicBanner {
		body.InsertBefore(newBanner(VariantDynamic, DynamicText), body.FirstChild)
		body.AppendChild(newBanner(VariantDynamic, DynamicText))
	}

	r.logger.Debug("banner: rendered", "level", s.Level, "dynamic", s.Dynamic, "dynamic_banner", s.DynamicBanner)
}

// Clear removes every marker-tagged node from doc.
func Clear(doc *Document) {
	for _, n := range doc.Banners() {
		if n.Parent != nil {
			n.Parent.RemoveChild(n)
		}
	}
}

// SetHidden hides or reveals every banner in doc without touching content.
func SetHidden(doc *Document, hidden bool) {
	for _, n := range doc.Banners() {
		if hidden {
			SetAttr(n, "style", hiddenStyle)
		} else {
			RemoveAttr(n, "style")
		}
	}
}

// IsHidden reports whether n was hidden by SetHidden.
func IsHidden(n *html.Node) bool {
	v, _ := Attr(n, "style")
	return v == hiddenStyle
}

func newBanner(v Variant, text string) *html.Node {
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     "div",
		DataAtom: atom.Div,
		Attr:     []html.Attribute{{Key: "class", Val: MarkerClass + " " + string(v)}},
	}
	if text != "" {
		n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	}
	return n
}

// VariantOf returns the style class of a banner node.
func VariantOf(n *html.Node) Variant {
	for _, v := range Variants() {
		if HasClass(n, string(v)) {
			return v
		}
	}
	return ""
}
