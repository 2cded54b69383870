// Package config loads mealmate configuration from TOML, applies defaults and
// environment overrides, and validates the result.
//
// Configuration is resolved from an explicit path, ~/.config/mealmate/config.toml,
// or ./mealmate.toml in that order. A missing file is not an error: defaults
// apply. `.env` and `.env.local` in the working directory are read before
// overrides so local development can point at a stub server without editing
// the config file. Use CreateSample to write the commented sample to disk.
package config
