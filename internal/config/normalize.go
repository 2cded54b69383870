package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeAPI()
	if err := c.normalizeLogging(); err != nil {
		return err
	}
	return c.normalizeUI()
}

func (c *Config) normalizeAPI() {
	if value, ok := lookupEnv(EnvBaseURL); ok {
		c.API.BaseURL = value
	}
	c.API.BaseURL = strings.TrimSpace(c.API.BaseURL)
	if c.API.BaseURL == "" {
		c.API.BaseURL = defaultBaseURL
	}
	if !strings.HasSuffix(c.API.BaseURL, "/") {
		c.API.BaseURL += "/"
	}
	c.API.UserAgent = strings.TrimSpace(c.API.UserAgent)
	if c.API.UserAgent == "" {
		c.API.UserAgent = defaultUserAgent
	}
	if c.API.ConnectTimeout == 0 {
		c.API.ConnectTimeout = defaultTimeoutSeconds
	}
	if c.API.ReadTimeout == 0 {
		c.API.ReadTimeout = defaultTimeoutSeconds
	}
	if c.API.WriteTimeout == 0 {
		c.API.WriteTimeout = defaultTimeoutSeconds
	}
}

func (c *Config) normalizeLogging() error {
	if value, ok := lookupEnv(EnvLogLevel); ok {
		c.Logging.Level = value
	}
	if value, ok := lookupEnv(EnvLogFormat); ok {
		c.Logging.Format = value
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	if strings.TrimSpace(c.Logging.Dir) == "" {
		c.Logging.Dir = defaultLogDir
	}
	var err error
	if c.Logging.Dir, err = expandPath(c.Logging.Dir); err != nil {
		return fmt.Errorf("logging.dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeUI() error {
	if c.UI.SearchDebounceMS == 0 {
		c.UI.SearchDebounceMS = defaultSearchDebounceMS
	}
	if strings.TrimSpace(c.UI.PrefsPath) == "" {
		c.UI.PrefsPath = defaultPrefsPath
	}
	var err error
	if c.UI.PrefsPath, err = expandPath(c.UI.PrefsPath); err != nil {
		return fmt.Errorf("ui.prefs_path: %w", err)
	}
	return nil
}

func lookupEnv(key string) (string, bool) {
	value, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(value) == "" {
		return "", false
	}
	return strings.TrimSpace(value), true
}
