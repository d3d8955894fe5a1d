// Package config loads, normalizes, and validates fitsync configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the GARMIN_EMAIL, GARMIN_PASSWORD,
// and GARMIN_SESSION environment overrides so secrets can stay out of the
// config file. Always obtain settings through this package so downstream code
// receives sanitized paths, canonical log formats, and clear validation
// errors.
package config
