package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/classbanner/internal/banner"
)

type renderRequest struct {
	HTML  string        `json:"html"`
	Calls []banner.Call `json:"calls"`
}

type renderResponse struct {
	HTML     string          `json:"html"`
	Settings banner.Settings `json:"settings"`
	Banners  int             `json:"banners"`
}

// RenderHandler applies a chain of engine calls to a submitted page.
type RenderHandler struct {
	BaseHandler
	maxBytes int64
}

func NewRenderHandler(logger *slog.Logger, maxBytes int64) *RenderHandler {
	return &RenderHandler{BaseHandler: BaseHandler{Logger: logger}, maxBytes: maxBytes}
}

// Render parses the submitted HTML, runs the calls in order against a fresh
// engine and returns the rewritten page. An empty call list behaves like a
// single init with default options.
func (h *RenderHandler) Render(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	if err := h.readJSON(w, r, &req, h.maxBytes); err != nil {
		h.badRequestResponse(w, r, err)
		return
	}

	doc, err := banner.ParseString(req.HTML)
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}

	calls := req.Calls
	if len(calls) == 0 {
		calls = []banner.Call{{Method: banner.MethodInit}}
	}

	e := banner.NewEngine(doc, h.Logger)
	if err := e.CallAll(calls); err != nil {
		if errors.Is(err, banner.ErrInvalidMethod) {
			h.badRequestResponse(w, r, err)
			return
		}
		h.serverErrorResponse(w, r, err)
		return
	}

	resp := renderResponse{
		HTML:     doc.String(),
		Settings: e.Settings(),
		Banners:  len(doc.Banners()),
	}
	if err := h.writeJSON(w, http.StatusOK, resp, nil); err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

type levelInfo struct {
	Code    banner.Level   `json:"code"`
	Label   string         `json:"label"`
	Family  string         `json:"family"`
	Variant banner.Variant `json:"variant"`
}

// Levels lists the classification table with each code's style class.
func (h *RenderHandler) Levels(w http.ResponseWriter, r *http.Request) {
	levels := make([]levelInfo, 0, len(banner.Levels()))
	for _, l := range banner.Levels() {
		label, _ := l.Label()
		v, _ := banner.VariantFor(l.Family(), false)
		levels = append(levels, levelInfo{Code: l, Label: label, Family: l.Family().String(), Variant: v})
	}

	err := h.writeJSON(w, http.StatusOK, envelope{
		"levels":   levels,
		"variants": banner.Variants(),
		"dynamic":  banner.DynamicText,
	}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}
