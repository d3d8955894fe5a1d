package config

const (
	defaultStateDir             = "~/.local/share/fitsync"
	defaultLogDir               = "~/.local/share/fitsync/logs"
	defaultGarminBaseURL        = "https://connectapi.garmin.com"
	defaultGarminAuthURL        = "https://sso.garmin.com"
	defaultGarminTimeoutSeconds = 30
	defaultNotifyRequestTimeout = 10
	defaultLogFormat            = "console"
	defaultLogLevel             = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Garmin: Garmin{
			BaseURL:        defaultGarminBaseURL,
			AuthURL:        defaultGarminAuthURL,
			TimeoutSeconds: defaultGarminTimeoutSeconds,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyRequestTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Paths: Paths{
			StateDir: defaultStateDir,
			LogDir:   defaultLogDir,
		},
	}
}
