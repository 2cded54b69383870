package config

const (
	defaultBaseURL          = "https://www.themealdb.com/api/json/v1/1/"
	defaultTimeoutSeconds   = 15
	defaultUserAgent        = "mealmate"
	defaultLogLevel         = "info"
	defaultLogFormat        = "console"
	defaultLogDir           = "~/.local/share/mealmate/logs"
	defaultSearchDebounceMS = 300
	defaultPrefsPath        = "~/.config/mealmate/ui_prefs.json"
	defaultConfigPath       = "~/.config/mealmate/config.toml"
	projectConfigName       = "mealmate.toml"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		API: API{
			BaseURL:        defaultBaseURL,
			ConnectTimeout: defaultTimeoutSeconds,
			ReadTimeout:    defaultTimeoutSeconds,
			WriteTimeout:   defaultTimeoutSeconds,
			UserAgent:      defaultUserAgent,
		},
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
			Dir:    defaultLogDir,
		},
		UI: UI{
			Thumbnails:          true,
			DiscardStaleResults: true,
			SearchDebounceMS:    defaultSearchDebounceMS,
			PrefsPath:           defaultPrefsPath,
		},
	}
}
