package config

import (
	"flag"
	"fmt"
	"net/url"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/classbanner/internal/banner"
)

type Config struct {
	// Server
	Port string
	Env  string // development, production

	// Upstream site to proxy with banners. Empty disables the proxy.
	UpstreamURL string

	// Banners
	StylesheetHref      string
	BannerLevel         string
	BannerDynamic       bool
	BannerDynamicBanner bool
	BannerTSOrange      bool

	// Limits
	RateLimitPerMinute int
	MaxRenderBytes     int64
}

// Load reads configuration from flags, falling back to environment variables
// (and a .env file, if one exists) for anything not given on the command line.
func Load(args []string) (*Config, error) {
	// Load .env file if it exists (don't error if missing)
	_ = godotenv.Load()

	cfg := &Config{}
	fs := flag.NewFlagSet("classbanner", flag.ContinueOnError)

	fs.StringVar(&cfg.Port, "port", getEnv("PORT", "8080"), "Server port")
	fs.StringVar(&cfg.Env, "env", getEnv("ENV", "development"), "Environment (development, production)")
	fs.StringVar(&cfg.UpstreamURL, "upstream", getEnv("UPSTREAM_URL", ""), "Upstream site to proxy with banners")
	fs.StringVar(&cfg.StylesheetHref, "stylesheet", getEnv("STYLESHEET_HREF", "/static/classification.css"), "Stylesheet linked into rewritten pages")
	fs.StringVar(&cfg.BannerLevel, "level", getEnv("BANNER_LEVEL", string(banner.Defaults().Level)), "Default classification level")
	fs.BoolVar(&cfg.BannerDynamic, "dynamic", getEnvBool("BANNER_DYNAMIC", false), "Mark pages as dynamic by default")
	fs.BoolVar(&cfg.BannerDynamicBanner, "dynamic-banner", getEnvBool("BANNER_DYNAMIC_BANNER", false), "Draw the dynamic warning as its own banner")
	fs.BoolVar(&cfg.BannerTSOrange, "ts-orange", getEnvBool("BANNER_TS_ORANGE", false), "Color Top Secret banners orange instead of yellow")
	fs.IntVar(&cfg.RateLimitPerMinute, "rate-limit", getEnvInt("RATE_LIMIT_PER_MINUTE", 60), "Render API requests per minute per client")
	fs.Int64Var(&cfg.MaxRenderBytes, "max-render-bytes", int64(getEnvInt("MAX_RENDER_BYTES", 8<<20)), "Largest page that will be rewritten")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if p, err := strconv.Atoi(c.Port); err != nil || p < 1 || p > 65535 {
		return fmt.Errorf("PORT must be a number between 1 and 65535, got %q", c.Port)
	}

	if c.RateLimitPerMinute <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive")
	}

	if c.MaxRenderBytes <= 0 {
		return fmt.Errorf("MAX_RENDER_BYTES must be positive")
	}

	if c.UpstreamURL != "" {
		u, err := url.Parse(c.UpstreamURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("UPSTREAM_URL must be an absolute URL, got %q", c.UpstreamURL)
		}
	}
	return nil
}

// BannerDefaults returns the options every page starts from before its own
// data-classification attributes are applied.
func (c *Config) BannerDefaults() banner.Options {
	opts := banner.Options{
		Dynamic:       &c.BannerDynamic,
		DynamicBanner: &c.BannerDynamicBanner,
		TSOrange:      &c.BannerTSOrange,
	}
	return opts.WithLevel(banner.Level(c.BannerLevel))
}

func (c *Config) Upstream() *url.URL {
	if c.UpstreamURL == "" {
		return nil
	}
	u, _ := url.Parse(c.UpstreamURL)
	return u
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}
