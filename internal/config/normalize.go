package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeMakeMKV()
	if err := c.normalizeStore(); err != nil {
		return err
	}
	if err := c.normalizeWatch(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeMakeMKV() {
	c.MakeMKV.Binary = strings.TrimSpace(c.MakeMKV.Binary)
	if c.MakeMKV.Binary == "" {
		c.MakeMKV.Binary = defaultBinary
	}
	if value, ok := os.LookupEnv("MKVROBOT_DEVICE"); ok && strings.TrimSpace(value) != "" {
		c.MakeMKV.Device = value
	}
	c.MakeMKV.Device = strings.TrimSpace(c.MakeMKV.Device)
	if c.MakeMKV.Device == "" {
		c.MakeMKV.Device = defaultDevice
	}
	args := make([]string, 0, len(c.MakeMKV.ExtraArgs))
	for _, arg := range c.MakeMKV.ExtraArgs {
		if trimmed := strings.TrimSpace(arg); trimmed != "" {
			args = append(args, trimmed)
		}
	}
	c.MakeMKV.ExtraArgs = args
}

func (c *Config) normalizeStore() error {
	var err error
	if strings.TrimSpace(c.Store.Path) == "" {
		c.Store.Path = filepath.Join(c.Paths.DataDir, defaultStoreFile)
	}
	if c.Store.Path, err = expandPath(c.Store.Path); err != nil {
		return fmt.Errorf("store.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeWatch() error {
	var err error
	if strings.TrimSpace(c.Watch.LockPath) == "" {
		c.Watch.LockPath = filepath.Join(c.Paths.DataDir, defaultLockFile)
	}
	if c.Watch.LockPath, err = expandPath(c.Watch.LockPath); err != nil {
		return fmt.Errorf("watch.lock_path: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
