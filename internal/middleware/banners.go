package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/classbanner/internal/banner"
	"github.com/classbanner/internal/directive"
)

// BannerOption configures the Banners middleware.
type BannerOption func(*bannerConfig)

type bannerConfig struct {
	logger     *slog.Logger
	stylesheet string
	maxBytes   int64
}

// WithLogger sets the logger used for rewrite failures.
func WithLogger(l *slog.Logger) BannerOption {
	return func(c *bannerConfig) { c.logger = l }
}

// WithStylesheet links href into the <head> of every rewritten page.
func WithStylesheet(href string) BannerOption {
	return func(c *bannerConfig) { c.stylesheet = href }
}

// WithMaxBytes bounds the size of a page the middleware will buffer.
// Larger responses are passed through without banners.
func WithMaxBytes(n int64) BannerOption {
	return func(c *bannerConfig) { c.maxBytes = n }
}

// Banners returns a middleware that draws classification banners into every
// successful text/html response. Each response gets its own engine,
// initialised from the page's data-classification attributes layered over
// defaults. Pages that fail to bind are served unmodified.
func Banners(defaults banner.Options, opts ...BannerOption) func(http.Handler) http.Handler {
	cfg := bannerConfig{logger: slog.Default(), maxBytes: 8 << 20}
	for _, o := range opts {
		o(&cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodHead {
				next.ServeHTTP(w, r)
				return
			}

			bw := &bufferedWriter{ResponseWriter: w, limit: cfg.maxBytes}
			next.ServeHTTP(bw, r)
			if bw.passthrough {
				return
			}

			body := bw.buf.Bytes()
			if bw.rewritable() {
				if out, ok := rewrite(body, defaults, cfg, r); ok {
					body = out
				}
			}

			w.Header().Set("Content-Length", strconv.Itoa(len(body)))
			w.WriteHeader(bw.status())
			_, _ = w.Write(body)
		})
	}
}

func rewrite(body []byte, defaults banner.Options, cfg bannerConfig, r *http.Request) ([]byte, bool) {
	doc, err := banner.Parse(bytes.NewReader(body))
	if err != nil {
		cfg.logger.Error("banners: parse failed", "err", err, "uri", r.URL.RequestURI())
		return nil, false
	}

	e := banner.NewEngine(doc, cfg.logger)
	if err := directive.Bind(e, defaults); err != nil {
		cfg.logger.Error("banners: bind failed", "err", err, "uri", r.URL.RequestURI())
		return nil, false
	}
	doc.LinkStylesheet(cfg.stylesheet)

	var out bytes.Buffer
	if err := doc.Render(&out); err != nil {
		cfg.logger.Error("banners: render failed", "err", err, "uri", r.URL.RequestURI())
		return nil, false
	}
	return out.Bytes(), true
}

// bufferedWriter holds an HTML response until the handler finishes. Once
// the response turns out not to be rewritable it switches to writing
// straight through.
type bufferedWriter struct {
	http.ResponseWriter
	buf         bytes.Buffer
	code        int
	wroteHeader bool
	passthrough bool
	limit       int64
}

func (bw *bufferedWriter) WriteHeader(code int) {
	if bw.wroteHeader {
		return
	}
	bw.wroteHeader = true
	bw.code = code
	if !bw.rewritable() {
		bw.passthrough = true
		bw.ResponseWriter.WriteHeader(code)
		return
	}
	bw.Header().Del("Content-Length")
}

func (bw *bufferedWriter) Write(p []byte) (int, error) {
	if !bw.wroteHeader {
		if bw.Header().Get("Content-Type") == "" {
			bw.Header().Set("Content-Type", http.DetectContentType(p))
		}
		bw.WriteHeader(http.StatusOK)
	}
	if bw.passthrough {
		return bw.ResponseWriter.Write(p)
	}
	if bw.limit > 0 && int64(bw.buf.Len()+len(p)) > bw.limit {
		// Too big to rewrite: flush what we have and stream the rest.
		bw.passthrough = true
		bw.ResponseWriter.WriteHeader(bw.code)
		if _, err := bw.ResponseWriter.Write(bw.buf.Bytes()); err != nil {
			return 0, err
		}
		bw.buf.Reset()
		return bw.ResponseWriter.Write(p)
	}
	return bw.buf.Write(p)
}

func (bw *bufferedWriter) status() int {
	if bw.code == 0 {
		return http.StatusOK
	}
	return bw.code
}

func (bw *bufferedWriter) rewritable() bool {
	code := bw.status()
	if code < 200 || code >= 300 || code == http.StatusNoContent {
		return false
	}
	if bw.Header().Get("Content-Encoding") != "" {
		return false
	}
	return strings.HasPrefix(strings.ToLower(bw.Header().Get("Content-Type")), "text/html")
}

// Flush is a no-op while the page is buffered, so a flushing handler such
// as httputil.ReverseProxy cannot commit headers before the rewrite.
func (bw *bufferedWriter) Flush() {
	if !bw.passthrough {
		return
	}
	_ = http.NewResponseController(bw.ResponseWriter).Flush()
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (bw *bufferedWriter) Unwrap() http.ResponseWriter {
	return bw.ResponseWriter
}
