package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httputil"
	"net/url"
	"time"
)

// Proxy forwards requests to an upstream site so its pages can be served
// with banners.
type Proxy struct {
	target *url.URL
	rp     *httputil.ReverseProxy
	client *http.Client
}

func NewProxy(target *url.URL, logger *slog.Logger) *Proxy {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DisableCompression = true

	rp := &httputil.ReverseProxy{
		Transport: transport,
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.SetURL(target)
			pr.SetXForwarded()
			// Banners can only be drawn into uncompressed markup.
			pr.Out.Header.Del("Accept-Encoding")
		},
		ErrorLog: slog.NewLogLogger(logger.Handler(), slog.LevelError),
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			logger.Error("proxy: upstream request failed", "err", err, "uri", r.URL.RequestURI())
			http.Error(w, "Bad Gateway", http.StatusBadGateway)
		},
	}
	return &Proxy{
		target: target,
		rp:     rp,
		client: &http.Client{Timeout: 5 * time.Second},
	}
}

func (p *Proxy) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p.rp.ServeHTTP(w, r)
}

// Ping issues a HEAD request against the upstream root.
func (p *Proxy) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, p.target.String(), nil)
	if err != nil {
		return err
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	if resp.StatusCode >= 500 {
		return fmt.Errorf("upstream returned %s", resp.Status)
	}
	return nil
}
