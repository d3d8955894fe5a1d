package config

import (
	"fmt"
	"net/url"
)

// Validate ensures the configuration is usable. Credentials are deliberately
// not required here; which authentication inputs are present is resolved at
// run time by the ordered strategy list.
func (c *Config) Validate() error {
	if err := c.validateGarmin(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateGarmin() error {
	if err := validateURL("garmin.base_url", c.Garmin.BaseURL); err != nil {
		return err
	}
	if err := validateURL("garmin.auth_url", c.Garmin.AuthURL); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be \"console\" or \"json\", got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error; got %q", c.Logging.Level)
	}
	return nil
}

func validateURL(field, value string) error {
	parsed, err := url.Parse(value)
	if err != nil {
		return fmt.Errorf("%s: %w", field, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("%s must be an http(s) URL, got %q", field, value)
	}
	if parsed.Host == "" {
		return fmt.Errorf("%s is missing a host: %q", field, value)
	}
	return nil
}
