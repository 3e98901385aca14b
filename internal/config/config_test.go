package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"mkvrobot/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}
	if want := filepath.Join(tempHome, ".config", "mkvrobot", "config.toml"); resolved != want {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, want)
	}

	wantData := filepath.Join(tempHome, ".local", "share", "mkvrobot")
	if cfg.Paths.DataDir != wantData {
		t.Fatalf("unexpected data dir: got %q want %q", cfg.Paths.DataDir, wantData)
	}
	if cfg.Store.Path != filepath.Join(wantData, "scans.db") {
		t.Fatalf("unexpected store path: %q", cfg.Store.Path)
	}
	if cfg.Watch.LockPath != filepath.Join(wantData, "watch.lock") {
		t.Fatalf("unexpected lock path: %q", cfg.Watch.LockPath)
	}
	if cfg.MakeMKV.Binary != "makemkvcon" {
		t.Fatalf("unexpected binary: %q", cfg.MakeMKV.Binary)
	}
	if cfg.MakeMKV.InfoTimeout != config.Default().MakeMKV.InfoTimeout {
		t.Fatalf("unexpected info timeout: %d", cfg.MakeMKV.InfoTimeout)
	}
	if !cfg.Store.Enabled {
		t.Fatal("expected store enabled by default")
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("MKVROBOT_DEVICE", "")

	path := filepath.Join(t.TempDir(), "mkvrobot.toml")
	contents := `
[paths]
data_dir = "~/robot"

[makemkv]
device = "/dev/sr1"
info_timeout = 60
extra_args = ["  --noscan ", ""]

[logging]
format = "JSON"
level = " Debug "
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("unexpected resolution: %q exists=%v", resolved, exists)
	}
	if cfg.Paths.DataDir != filepath.Join(tempHome, "robot") {
		t.Fatalf("unexpected data dir: %q", cfg.Paths.DataDir)
	}
	if cfg.Store.Path != filepath.Join(tempHome, "robot", "scans.db") {
		t.Fatalf("store path should follow data dir, got %q", cfg.Store.Path)
	}
	if cfg.MakeMKV.Device != "/dev/sr1" {
		t.Fatalf("unexpected device: %q", cfg.MakeMKV.Device)
	}
	if cfg.MakeMKV.InfoTimeout != 60 {
		t.Fatalf("unexpected info timeout: %d", cfg.MakeMKV.InfoTimeout)
	}
	if len(cfg.MakeMKV.ExtraArgs) != 1 || cfg.MakeMKV.ExtraArgs[0] != "--noscan" {
		t.Fatalf("unexpected extra args: %#v", cfg.MakeMKV.ExtraArgs)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("unexpected logging: %+v", cfg.Logging)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("[makemkv]\nbogus = 1\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestEnvDeviceOverridesConfigFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("MKVROBOT_DEVICE", "/dev/sr7")

	path := filepath.Join(t.TempDir(), "mkvrobot.toml")
	if err := os.WriteFile(path, []byte("[makemkv]\ndevice = \"/dev/sr1\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.MakeMKV.Device != "/dev/sr7" {
		t.Fatalf("expected device from env, got %q", cfg.MakeMKV.Device)
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "sample.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(contents), "[makemkv]") {
		t.Fatalf("sample config missing makemkv section: %s", contents)
	}

	var cfg config.Config
	if err := toml.Unmarshal(contents, &cfg); err != nil {
		t.Fatalf("unmarshal sample: %v", err)
	}
	if !strings.Contains(cfg.Paths.DataDir, "mkvrobot") {
		t.Fatalf("expected data dir to contain mkvrobot, got %q", cfg.Paths.DataDir)
	}
	if cfg.MakeMKV.Binary != "makemkvcon" {
		t.Fatalf("unexpected sample binary: %q", cfg.MakeMKV.Binary)
	}
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"info timeout", func(c *config.Config) { c.MakeMKV.InfoTimeout = 0 }},
		{"rip timeout", func(c *config.Config) { c.MakeMKV.RipTimeout = -1 }},
		{"cache", func(c *config.Config) { c.MakeMKV.CacheMB = -1 }},
		{"min length", func(c *config.Config) { c.MakeMKV.MinLength = -5 }},
		{"extra args", func(c *config.Config) { c.MakeMKV.ExtraArgs = []string{"info"} }},
		{"settle", func(c *config.Config) { c.Watch.SettleSeconds = -1 }},
		{"log format", func(c *config.Config) { c.Logging.Format = "xml" }},
		{"log level", func(c *config.Config) { c.Logging.Level = "trace" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}

	cfg := config.Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestEnsureDirectories(t *testing.T) {
	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "data", "logs")
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	for _, dir := range []string{cfg.Paths.DataDir, cfg.Paths.LogDir} {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			t.Fatalf("expected directory %q: %v", dir, err)
		}
	}
}

func TestDurations(t *testing.T) {
	cfg := config.Default()
	cfg.MakeMKV.InfoTimeout = 30
	cfg.Watch.SettleSeconds = 2
	if got := cfg.InfoTimeout().Seconds(); got != 30 {
		t.Fatalf("InfoTimeout = %v", got)
	}
	if got := cfg.SettleDelay().Seconds(); got != 2 {
		t.Fatalf("SettleDelay = %v", got)
	}
}
