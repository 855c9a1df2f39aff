// Package config loads, normalizes, and validates stationcat configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// STATIONCAT_CATALOG_DIR. The Config type centralizes the catalog location,
// wiki connection settings, logging, and import history so every command
// resolves them in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
