package cmd

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"mealmate/internal/config"
	"mealmate/internal/logging"
	"mealmate/internal/mealdb"
	"mealmate/internal/repository"
	"mealmate/internal/viewstate"
)

type commandContext struct {
	configFlag   *string
	baseURLFlag  *string
	logLevelFlag *string
	jsonFlag     *bool

	configOnce   sync.Once
	config       *config.Config
	configPath   string
	configExists bool
	configErr    error
}

func newCommandContext(configFlag, baseURLFlag, logLevelFlag *string, jsonFlag *bool) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		baseURLFlag:  baseURLFlag,
		logLevelFlag: logLevelFlag,
		jsonFlag:     jsonFlag,
	}
}

// ensureConfig loads the config once and applies flag overrides on top of
// file and environment values.
func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, path, exists, err := config.Load(flagValue(c.configFlag))
		if err != nil {
			c.configErr = err
			return
		}
		if v := flagValue(c.baseURLFlag); v != "" {
			cfg.API.BaseURL = v
		}
		if v := flagValue(c.logLevelFlag); v != "" {
			cfg.Logging.Level = strings.ToLower(v)
		}
		if err := cfg.Validate(); err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = path
		c.configExists = exists
	})
	return c.config, c.configErr
}

func (c *commandContext) jsonOutput() bool {
	return c.jsonFlag != nil && *c.jsonFlag
}

// newLogger writes to the log file. Non-interactive commands also echo to
// stderr at debug level.
func (c *commandContext) newLogger(interactive bool) (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	outputs := []string{cfg.LogFilePath()}
	if !interactive && logging.ParseLevel(cfg.Logging.Level) == slog.LevelDebug {
		outputs = append(outputs, "stderr")
	}
	logger, err := logging.New(logging.Options{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		OutputPaths: outputs,
	})
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return logger, nil
}

// services bundles what a command needs to talk to TheMealDB.
type services struct {
	cfg    *config.Config
	logger *slog.Logger
	client *mealdb.Client
	repo   *repository.Repository
}

func (s *services) controllerOptions() []viewstate.Option {
	opts := []viewstate.Option{viewstate.WithLogger(s.logger)}
	if s.cfg.UI.DiscardStaleResults {
		opts = append(opts, viewstate.WithStaleDiscard())
	}
	return opts
}

func (c *commandContext) services(interactive bool) (*services, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.newLogger(interactive)
	if err != nil {
		return nil, err
	}

	connect, read, write := cfg.Timeouts()
	client, err := mealdb.New(cfg.API.BaseURL,
		mealdb.WithTimeouts(connect, read, write),
		mealdb.WithUserAgent(cfg.API.UserAgent),
		mealdb.WithLogger(logging.NewComponentLogger(logger, "mealdb")),
	)
	if err != nil {
		return nil, fmt.Errorf("create mealdb client: %w", err)
	}
	repo := repository.New(client, repository.WithLogger(logging.NewComponentLogger(logger, "repository")))
	return &services{cfg: cfg, logger: logger, client: client, repo: repo}, nil
}

func (c *commandContext) withServices(fn func(*services) error) error {
	svc, err := c.services(false)
	if err != nil {
		return err
	}
	return fn(svc)
}

func flagValue(v *string) string {
	if v == nil {
		return ""
	}
	return strings.TrimSpace(*v)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
