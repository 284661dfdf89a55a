// Package config loads the ingestion workload from a YAML file: feed URLs,
// scraper selections, and batch knobs. Absent file means absent config; the
// command line falls back to the built-in defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dwillis/statement"
	"github.com/dwillis/statement/batch"
	"github.com/dwillis/statement/scrape"
	"github.com/dwillis/statement/urls"
)

// ScraperConfig selects one adapter's listing. Page values below the
// adapter's first page select the first page. URL, when set, replaces the
// adapter's page templates with a single explicit listing URL.
type ScraperConfig struct {
	Adapter string `yaml:"adapter"`
	Page    int    `yaml:"page"`
	URL     string `yaml:"url"`
}

// Config is the structure of a workload file.
type Config struct {
	Feeds       []string        `yaml:"feeds"`
	Scrapers    []ScraperConfig `yaml:"scrapers"`
	Concurrency int             `yaml:"concurrency"`
	// Timeout is a Go duration string, e.g. "30s".
	Timeout string `yaml:"timeout"`
}

// DefaultPath returns the conventional config location,
// ~/.statement/config.yaml.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".statement", "config.yaml"), nil
}

// Load reads a workload file. Returns nil if the file doesn't exist (not an
// error). Returns error if the file exists but cannot be parsed.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// ScrapeSources expands the configured scrapers into source descriptors.
// Naming an unregistered adapter is a configuration error.
func (c *Config) ScrapeSources() ([]statement.Source, error) {
	var sources []statement.Source
	for _, sc := range c.Scrapers {
		entry, ok := scrape.Lookup(sc.Adapter)
		if !ok {
			return nil, fmt.Errorf("unknown adapter %q in config", sc.Adapter)
		}

		if sc.URL != "" {
			sources = append(sources,
				statement.ScrapeSource(sc.Adapter, sc.URL, urls.Domain(sc.URL), sc.Page))
			continue
		}

		page := sc.Page
		if page < entry.FirstPage {
			page = entry.FirstPage
		}
		sources = append(sources, entry.SourcesForPage(page)...)
	}
	return sources, nil
}

// Batch maps the config's knobs onto a batch configuration. Unset or
// unparseable values keep their defaults.
func (c *Config) Batch() *batch.Config {
	bc := batch.DefaultConfig()
	if c.Concurrency > 0 {
		bc.Concurrency = c.Concurrency
	}
	if c.Timeout != "" {
		if d, err := time.ParseDuration(c.Timeout); err == nil && d > 0 {
			bc.FetchTimeout = d
		}
	}
	return bc
}
