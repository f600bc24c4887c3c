package handler

import (
	"html/template"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/classbanner/internal/banner"
)

type levelRow struct {
	Code  banner.Level
	Label string
}

type demoPageData struct {
	Level         banner.Level
	Label         string
	Dynamic       bool
	DynamicBanner bool
	TSOrange      bool
	Method        string
}

// PagesHandler serves the demo pages. Banners are drawn by the Banners
// middleware from the data-classification attributes the templates emit.
type PagesHandler struct {
	logger    *slog.Logger
	templates *template.Template
}

func NewPagesHandler(logger *slog.Logger, tmpl *template.Template) *PagesHandler {
	return &PagesHandler{logger: logger, templates: tmpl}
}

// Index renders the list of classification levels.
func (h *PagesHandler) Index(w http.ResponseWriter, r *http.Request) {
	rows := make([]levelRow, 0, len(banner.Levels()))
	for _, l := range banner.Levels() {
		label, _ := l.Label()
		rows = append(rows, levelRow{Code: l, Label: label})
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.ExecuteTemplate(w, "index.html", rows); err != nil {
		h.logger.Error("pages: template error", "err", err, "template", "index.html")
	}
}

// Demo renders a sample page marked with the level in the URL. The query
// flags dynamic, dynamicBanner and tsOrange and the method parameter are
// forwarded as directive attributes.
func (h *PagesHandler) Demo(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	data := demoPageData{
		Level:         banner.Level(chi.URLParam(r, "level")),
		Dynamic:       queryBool(q.Get("dynamic")),
		DynamicBanner: queryBool(q.Get("dynamicBanner")),
		TSOrange:      queryBool(q.Get("tsOrange")),
		Method:        q.Get("method"),
	}
	data.Label, _ = data.Level.Label()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.ExecuteTemplate(w, "demo.html", data); err != nil {
		h.logger.Error("pages: template error", "err", err, "template", "demo.html")
	}
}

func queryBool(v string) bool {
	b, _ := strconv.ParseBool(v)
	return b
}
