package config

import "strings"

// normalize expands path fields and backfills empty values with defaults so
// later consumers can rely on absolute, non-empty paths.
func (c *Config) normalize() error {
	defaults := Default()

	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaults.Paths.DataDir
	}
	if strings.TrimSpace(c.Paths.UsersDir) == "" {
		c.Paths.UsersDir = defaults.Paths.UsersDir
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaults.Paths.LogDir
	}

	for _, field := range []*string{&c.Paths.DataDir, &c.Paths.UsersDir, &c.Paths.LogDir} {
		expanded, err := ExpandPath(*field)
		if err != nil {
			return err
		}
		*field = expanded
	}

	if c.ImageCache.Workers == 0 {
		c.ImageCache.Workers = defaults.ImageCache.Workers
	}
	if c.ImageCache.FetchTimeoutSeconds == 0 {
		c.ImageCache.FetchTimeoutSeconds = defaults.ImageCache.FetchTimeoutSeconds
	}
	if strings.TrimSpace(c.Logging.Format) == "" {
		c.Logging.Format = defaults.Logging.Format
	}
	if strings.TrimSpace(c.Logging.Level) == "" {
		c.Logging.Level = defaults.Logging.Level
	}
	return nil
}
