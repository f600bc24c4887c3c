package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/classbanner/internal/handler"
	"github.com/classbanner/internal/middleware"
	"github.com/classbanner/internal/web"
)

func (app *App) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	banners := middleware.Banners(app.config.BannerDefaults(),
		middleware.WithLogger(app.logger),
		middleware.WithStylesheet(app.config.StylesheetHref),
		middleware.WithMaxBytes(app.config.MaxRenderBytes),
	)

	// Static files
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServerFS(web.StaticFS)))

	// Health check. A nil *Proxy must not reach the interface.
	if app.proxy != nil {
		r.Get("/api/health", handler.Health(app.proxy))
	} else {
		r.Get("/api/health", handler.Health(nil))
	}

	renderHandler := handler.NewRenderHandler(app.logger, app.config.MaxRenderBytes)
	r.Get("/api/levels", renderHandler.Levels)
	r.With(middleware.RateLimit(app.config.RateLimitPerMinute)).Post("/api/render", renderHandler.Render)

	// Demo pages
	pagesHandler := handler.NewPagesHandler(app.logger, web.Templates)
	r.Group(func(r chi.Router) {
		r.Use(middleware.SecurityHeaders)
		r.Use(banners)

		r.Get("/", pagesHandler.Index)
		r.Get("/demo/{level}", pagesHandler.Demo)
	})

	// Everything else goes upstream when a proxy is configured.
	if app.proxy != nil {
		r.NotFound(banners(app.proxy).ServeHTTP)
	}

	return r
}
