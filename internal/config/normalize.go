package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeWiki(); err != nil {
		return err
	}
	if err := c.normalizeHistory(); err != nil {
		return err
	}
	c.normalizeLogging()
	if c.Watch.DebounceMillis <= 0 {
		c.Watch.DebounceMillis = defaultWatchDebounceMsec
	}
	return nil
}

func (c *Config) normalizePaths() error {
	if value, ok := os.LookupEnv("STATIONCAT_CATALOG_DIR"); ok && strings.TrimSpace(value) != "" {
		c.Paths.CatalogDir = strings.TrimSpace(value)
	}
	if strings.TrimSpace(c.Paths.CatalogDir) == "" {
		c.Paths.CatalogDir = defaultCatalogDir
	}
	var err error
	if c.Paths.CatalogDir, err = expandPath(c.Paths.CatalogDir); err != nil {
		return fmt.Errorf("paths.catalog_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeWiki() error {
	c.Wiki.Host = strings.ToLower(strings.TrimSpace(c.Wiki.Host))
	if c.Wiki.Host == "" {
		c.Wiki.Host = defaultWikiHost
	}
	c.Wiki.BaseURL = strings.TrimRight(strings.TrimSpace(c.Wiki.BaseURL), "/")
	if c.Wiki.BaseURL == "" {
		c.Wiki.BaseURL = defaultWikiBaseURL
	}
	if _, err := url.Parse(c.Wiki.BaseURL); err != nil {
		return fmt.Errorf("wiki.base_url: %w", err)
	}
	c.Wiki.UserAgent = strings.TrimSpace(c.Wiki.UserAgent)
	if c.Wiki.UserAgent == "" {
		c.Wiki.UserAgent = defaultWikiUserAgent
	}
	if c.Wiki.TimeoutSeconds <= 0 {
		c.Wiki.TimeoutSeconds = defaultWikiTimeout
	}
	if c.Wiki.MaxBodyBytes <= 0 {
		c.Wiki.MaxBodyBytes = defaultWikiMaxBodyBytes
	}
	return nil
}

func (c *Config) normalizeHistory() error {
	if strings.TrimSpace(c.History.Path) == "" {
		c.History.Path = defaultHistoryPath
	}
	var err error
	if c.History.Path, err = expandPath(c.History.Path); err != nil {
		return fmt.Errorf("history.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
