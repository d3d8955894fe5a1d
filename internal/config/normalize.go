package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeGarmin(); err != nil {
		return err
	}
	c.normalizeNotifications()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

// normalizeGarmin trims endpoint values and applies the environment
// overrides. Environment values win over the config file so secrets can be
// injected by the invoking automation without touching disk.
func (c *Config) normalizeGarmin() error {
	if value, ok := os.LookupEnv("GARMIN_EMAIL"); ok && strings.TrimSpace(value) != "" {
		c.Garmin.Email = value
	}
	if value, ok := os.LookupEnv("GARMIN_PASSWORD"); ok && strings.TrimSpace(value) != "" {
		c.Garmin.Password = value
	}
	if value, ok := os.LookupEnv("GARMIN_SESSION"); ok && strings.TrimSpace(value) != "" {
		c.Garmin.Session = value
	}

	c.Garmin.Email = strings.TrimSpace(c.Garmin.Email)
	c.Garmin.Session = strings.TrimSpace(c.Garmin.Session)

	c.Garmin.BaseURL = strings.TrimRight(strings.TrimSpace(c.Garmin.BaseURL), "/")
	if c.Garmin.BaseURL == "" {
		c.Garmin.BaseURL = defaultGarminBaseURL
	}
	c.Garmin.AuthURL = strings.TrimRight(strings.TrimSpace(c.Garmin.AuthURL), "/")
	if c.Garmin.AuthURL == "" {
		c.Garmin.AuthURL = defaultGarminAuthURL
	}
	if c.Garmin.TimeoutSeconds <= 0 {
		c.Garmin.TimeoutSeconds = defaultGarminTimeoutSeconds
	}

	if strings.TrimSpace(c.Garmin.SessionFile) != "" {
		expanded, err := expandPath(c.Garmin.SessionFile)
		if err != nil {
			return fmt.Errorf("garmin.session_file: %w", err)
		}
		c.Garmin.SessionFile = expanded
	}
	return nil
}

func (c *Config) normalizeNotifications() {
	c.Notifications.NtfyTopic = strings.TrimSpace(c.Notifications.NtfyTopic)
	if c.Notifications.RequestTimeout <= 0 {
		c.Notifications.RequestTimeout = defaultNotifyRequestTimeout
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
