package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/utafrali/storefront-listing/internal/domain"
	pkgconfig "github.com/utafrali/storefront-listing/pkg/config"
	"github.com/utafrali/storefront-listing/pkg/tracing"
)

// Config holds all configuration for the listing service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort     int      `env:"LISTING_HTTP_PORT" envDefault:"8012"`
	CacheMaxAge  int      `env:"LISTING_CACHE_MAX_AGE" envDefault:"60"`
	AllowOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`

	// Markup sources
	MarkupDir    string `env:"MARKUP_DIR" envDefault:"./web"`
	ListingsFile string `env:"LISTINGS_FILE"`

	Tracing tracing.Config

	// Listings is filled from ListingsFile, or from the built-in defaults
	// when no file is configured.
	Listings []Listing
}

// Listing declares one listing page served by the service.
type Listing struct {
	Key      string      `toml:"key"`
	Kind     domain.Kind `toml:"kind"`
	Markup   string      `toml:"markup"`
	Pages    int         `toml:"pages"`
	Language string      `toml:"language"`
}

type listingsFile struct {
	Listings []Listing `toml:"listing"`
}

// DefaultListings returns the arrivals and offers pages read from dir.
func DefaultListings(dir string) []Listing {
	return []Listing{
		{Key: "novedades", Kind: domain.KindArrivals, Markup: filepath.Join(dir, "novedades.html"), Language: "es"},
		{Key: "ofertas", Kind: domain.KindOffers, Markup: filepath.Join(dir, "ofertas.html"), Pages: domain.DefaultPagerPages, Language: "es"},
	}
}

// Load reads configuration from environment variables and, when
// LISTINGS_FILE is set, the listing definitions from that TOML file.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load listing config: %w", err)
	}
	cfg.Tracing.ServiceName = "listing-service"
	cfg.Tracing.Environment = cfg.Environment

	if cfg.ListingsFile != "" {
		var f listingsFile
		if err := pkgconfig.LoadFile(cfg.ListingsFile, &f); err != nil {
			return nil, fmt.Errorf("load listings: %w", err)
		}
		cfg.Listings = f.Listings
	} else {
		cfg.Listings = DefaultListings(cfg.MarkupDir)
	}

	for i := range cfg.Listings {
		l := &cfg.Listings[i]
		if l.Markup != "" && !filepath.IsAbs(l.Markup) && cfg.ListingsFile != "" {
			l.Markup = filepath.Join(cfg.MarkupDir, l.Markup)
		}
		if l.Kind == domain.KindOffers && l.Pages == 0 {
			l.Pages = domain.DefaultPagerPages
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if err := c.Tracing.Validate(); err != nil {
		return err
	}
	if len(c.Listings) == 0 {
		return fmt.Errorf("at least one listing is required")
	}

	seen := make(map[string]struct{}, len(c.Listings))
	for _, l := range c.Listings {
		if strings.TrimSpace(l.Key) == "" {
			return fmt.Errorf("listing key is required")
		}
		if _, dup := seen[l.Key]; dup {
			return fmt.Errorf("duplicate listing %q", l.Key)
		}
		seen[l.Key] = struct{}{}

		if !l.Kind.IsValid() {
			return fmt.Errorf("listing %s: unknown kind %q", l.Key, l.Kind)
		}
		if l.Markup == "" {
			return fmt.Errorf("listing %s: markup path is required", l.Key)
		}
		if l.Pages < 0 {
			return fmt.Errorf("listing %s: pages must not be negative", l.Key)
		}
	}
	return nil
}
