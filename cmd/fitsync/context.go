package main

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"fitsync/internal/config"
	"fitsync/internal/logging"
	"fitsync/internal/services/garmin"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) newLogger(component string) (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	return logger.With(logging.FieldComponent, component), nil
}

func (c *commandContext) newGarminClient() (*garmin.Client, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return garmin.New(cfg.Garmin.BaseURL, cfg.Garmin.AuthURL,
		garmin.WithTimeout(time.Duration(cfg.Garmin.TimeoutSeconds)*time.Second))
}

// authStrategies assembles the ordered authentication strategy list: an
// explicit session blob first, then the stored session file, then credential
// login. Inputs that are not configured contribute no strategy.
func (c *commandContext) authStrategies(client *garmin.Client) ([]garmin.Strategy, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}

	var strategies []garmin.Strategy
	if cfg.Garmin.Session != "" {
		strategies = append(strategies, garmin.SessionStrategy(client, cfg.Garmin.Session))
	}
	store := garmin.NewFileTokenStore(cfg.SessionFilePath())
	if session, err := store.Load(); err == nil && session.Token != "" {
		strategies = append(strategies, garmin.StoredSessionStrategy(client, store))
	}
	if cfg.Garmin.Email != "" && cfg.Garmin.Password != "" {
		strategies = append(strategies, garmin.CredentialStrategy(client, cfg.Garmin.Email, cfg.Garmin.Password))
	}
	return strategies, nil
}

// authenticate builds a client and walks the strategy list, returning the
// authenticated client and the winning strategy name.
func (c *commandContext) authenticate(ctx context.Context, log *slog.Logger) (*garmin.Client, string, error) {
	client, err := c.newGarminClient()
	if err != nil {
		return nil, "", err
	}
	strategies, err := c.authStrategies(client)
	if err != nil {
		return nil, "", err
	}
	_, name, err := garmin.NewAuthenticator(log, strategies...).Authenticate(ctx)
	if err != nil {
		return nil, "", err
	}
	return client, name, nil
}
