package makemkv

import (
	"strconv"

	"mkvrobot/internal/config"
)

// drivesOnlySource makes makemkvcon list drives and exit without opening a disc.
const drivesOnlySource = "disc:9999"

// Options holds the global makemkvcon switches placed before the command.
type Options struct {
	// CacheMB sets --cache; zero leaves makemkvcon's default.
	CacheMB int
	// MinLength sets --minlength in seconds; zero leaves the default.
	MinLength int
	DirectIO  bool
	NoScan    bool
	Decrypt   bool
	// Progress sets --progress, e.g. "-same" to interleave PRG lines on stdout.
	Progress string
	// Messages sets --messages, e.g. "-null" to silence MSG lines.
	Messages string
	Debug    bool
	Extra    []string
}

// OptionsFromConfig maps the [makemkv] config section onto Options.
func OptionsFromConfig(cfg config.MakeMKV) Options {
	return Options{
		CacheMB:   cfg.CacheMB,
		MinLength: cfg.MinLength,
		DirectIO:  cfg.DirectIO,
		Extra:     append([]string(nil), cfg.ExtraArgs...),
	}
}

// Args renders the options as makemkvcon arguments, always starting with -r.
func (o Options) Args() []string {
	args := []string{"-r"}
	if o.CacheMB > 0 {
		args = append(args, "--cache="+strconv.Itoa(o.CacheMB))
	}
	if o.MinLength > 0 {
		args = append(args, "--minlength="+strconv.Itoa(o.MinLength))
	}
	if o.DirectIO {
		args = append(args, "--directio=true")
	}
	if o.NoScan {
		args = append(args, "--noscan")
	}
	if o.Decrypt {
		args = append(args, "--decrypt")
	}
	if o.Progress != "" {
		args = append(args, "--progress="+o.Progress)
	}
	if o.Messages != "" {
		args = append(args, "--messages="+o.Messages)
	}
	if o.Debug {
		args = append(args, "--debug")
	}
	return append(args, o.Extra...)
}

// InfoArgs builds an info command for source.
func (o Options) InfoArgs(source Source) []string {
	return append(o.Args(), "info", source.String())
}

// DrivesArgs builds an info command that only enumerates drives.
func (o Options) DrivesArgs() []string {
	return append(o.Args(), "info", drivesOnlySource)
}

// MkvArgs builds an mkv command. A negative title rips every title.
func (o Options) MkvArgs(source Source, title int, dest string) []string {
	titleArg := "all"
	if title >= 0 {
		titleArg = strconv.Itoa(title)
	}
	return append(o.Args(), "mkv", source.String(), titleArg, dest)
}

// BackupArgs builds a backup command.
func (o Options) BackupArgs(source Source, dest string) []string {
	return append(o.Args(), "backup", source.String(), dest)
}
