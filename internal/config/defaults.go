package config

const (
	defaultDataDir             = "~/.local/share/bingelog"
	defaultUsersDir            = "~/.local/share/bingelog/users"
	defaultLogDir              = "~/.local/share/bingelog/logs"
	defaultImageCacheWorkers   = 3
	defaultFetchTimeoutSeconds = 30
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:  defaultDataDir,
			UsersDir: defaultUsersDir,
			LogDir:   defaultLogDir,
		},
		ImageCache: ImageCache{
			Workers:             defaultImageCacheWorkers,
			FetchTimeoutSeconds: defaultFetchTimeoutSeconds,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
