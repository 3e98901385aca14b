package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateMakeMKV(); err != nil {
		return err
	}
	if err := c.validateWatch(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateMakeMKV() error {
	if c.MakeMKV.InfoTimeout <= 0 {
		return errors.New("makemkv.info_timeout must be positive")
	}
	if c.MakeMKV.RipTimeout <= 0 {
		return errors.New("makemkv.rip_timeout must be positive")
	}
	if c.MakeMKV.CacheMB < 0 {
		return errors.New("makemkv.cache_mb must be zero or positive")
	}
	if c.MakeMKV.MinLength < 0 {
		return errors.New("makemkv.min_length must be zero or positive")
	}
	for _, arg := range c.MakeMKV.ExtraArgs {
		if !strings.HasPrefix(arg, "--") {
			return fmt.Errorf("makemkv.extra_args: %q must be a --long option", arg)
		}
	}
	return nil
}

func (c *Config) validateWatch() error {
	if c.Watch.SettleSeconds < 0 {
		return errors.New("watch.settle_seconds must be zero or positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q (use console or json)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
