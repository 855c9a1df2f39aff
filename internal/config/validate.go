package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateWiki(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.CatalogDir) == "" {
		return errors.New("paths.catalog_dir must be set")
	}
	return nil
}

func (c *Config) validateWiki() error {
	parsed, err := url.Parse(c.Wiki.BaseURL)
	if err != nil {
		return fmt.Errorf("wiki.base_url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("wiki.base_url must use http or https, got %q", c.Wiki.BaseURL)
	}
	if c.Wiki.TimeoutSeconds > 600 {
		return errors.New("wiki.timeout_seconds must be at most 600")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
}
