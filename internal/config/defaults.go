package config

const (
	defaultConfigPath    = "~/.config/mkvrobot/config.toml"
	defaultDataDir       = "~/.local/share/mkvrobot"
	defaultLogDir        = "~/.local/share/mkvrobot/logs"
	defaultStoreFile     = "scans.db"
	defaultLockFile      = "watch.lock"
	defaultBinary        = "makemkvcon"
	defaultDevice        = "/dev/sr0"
	defaultInfoTimeout   = 300
	defaultRipTimeout    = 3600
	defaultCacheMB       = 1
	defaultMinLength     = 120
	defaultSettleSeconds = 5
	defaultLogFormat     = "console"
	defaultLogLevel      = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		MakeMKV: MakeMKV{
			Binary:      defaultBinary,
			Device:      defaultDevice,
			InfoTimeout: defaultInfoTimeout,
			RipTimeout:  defaultRipTimeout,
			CacheMB:     defaultCacheMB,
			MinLength:   defaultMinLength,
		},
		Store: Store{
			Enabled: true,
		},
		Watch: Watch{
			SettleSeconds: defaultSettleSeconds,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
