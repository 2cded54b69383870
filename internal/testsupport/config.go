package testsupport

import (
	"path/filepath"
	"testing"

	"mealmate/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config rooted in a per-test temp directory.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Logging.Dir = filepath.Join(base, "logs")
	cfgVal.UI.PrefsPath = filepath.Join(base, "ui_prefs.json")
	cfgVal.UI.Thumbnails = false

	builder := &configBuilder{t: t, baseDir: base, cfg: &cfgVal}
	for _, opt := range opts {
		opt(builder)
	}
	return builder.cfg
}

// WithBaseURL points the config at a test server.
func WithBaseURL(url string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.API.BaseURL = url
	}
}

// WithTimeoutSeconds sets all three API timeouts.
func WithTimeoutSeconds(seconds int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.API.ConnectTimeout = seconds
		b.cfg.API.ReadTimeout = seconds
		b.cfg.API.WriteTimeout = seconds
	}
}

// WithStaleDiscard toggles stale result discarding.
func WithStaleDiscard(enabled bool) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.UI.DiscardStaleResults = enabled
	}
}
