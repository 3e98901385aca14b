package main

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"mkvrobot/internal/config"
	"mkvrobot/internal/logging"
	"mkvrobot/internal/services"
	"mkvrobot/internal/services/makemkv"
	"mkvrobot/internal/store"
)

type commandContext struct {
	configFlag   string
	logLevelFlag string
	jsonFlag     bool

	// executor replaces the real makemkvcon runner when set.
	executor makemkv.Executor

	configOnce sync.Once
	config     *config.Config
	configPath string
	configSeen bool
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
}

func newCommandContext() *commandContext {
	return &commandContext{}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, path, exists, err := config.Load(strings.TrimSpace(c.configFlag))
		if err != nil {
			c.configErr = services.Wrap(services.ErrConfiguration, "config", "load", "", err)
			return
		}
		if level := strings.ToLower(strings.TrimSpace(c.logLevelFlag)); level != "" {
			cfg.Logging.Level = level
			if err := cfg.Validate(); err != nil {
				c.configErr = services.Wrap(services.ErrValidation, "config", "log-level", "", err)
				return
			}
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = services.Wrap(services.ErrConfiguration, "config", "directories", "", err)
			return
		}
		c.config = cfg
		c.configPath = path
		c.configSeen = exists
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() *slog.Logger {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		c.logger = logger
	})
	return c.logger
}

func (c *commandContext) newClient() (*makemkv.Client, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	opts := []makemkv.Option{
		makemkv.WithOptions(makemkv.OptionsFromConfig(cfg.MakeMKV)),
		makemkv.WithInfoTimeout(cfg.InfoTimeout()),
		makemkv.WithRipTimeout(cfg.RipTimeout()),
		makemkv.WithLogger(c.ensureLogger()),
	}
	if c.executor != nil {
		opts = append(opts, makemkv.WithExecutor(c.executor))
	}
	return makemkv.New(cfg.MakeMKV.Binary, opts...)
}

func (c *commandContext) openStore() (*store.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return store.Open(cfg.Store.Path)
}

// source picks the makemkvcon source from a --device flag, falling back to
// the configured device.
func (c *commandContext) source(flag string) makemkv.Source {
	if strings.TrimSpace(flag) != "" {
		return makemkv.ParseSource(flag)
	}
	if cfg, err := c.ensureConfig(); err == nil {
		return makemkv.ParseSource(cfg.MakeMKV.Device)
	}
	return makemkv.DiscSource(0)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
