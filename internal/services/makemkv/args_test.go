package makemkv_test

import (
	"testing"

	"mkvrobot/internal/config"
	"mkvrobot/internal/services/makemkv"
)

func TestOptionsArgs(t *testing.T) {
	tests := []struct {
		name string
		opts makemkv.Options
		want []string
	}{
		{"zero", makemkv.Options{}, []string{"-r"}},
		{"cache and length", makemkv.Options{CacheMB: 16, MinLength: 120}, []string{"-r", "--cache=16", "--minlength=120"}},
		{
			"all switches",
			makemkv.Options{DirectIO: true, NoScan: true, Decrypt: true, Progress: "-same", Messages: "-null", Debug: true, Extra: []string{"--upnp=false"}},
			[]string{"-r", "--directio=true", "--noscan", "--decrypt", "--progress=-same", "--messages=-null", "--debug", "--upnp=false"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.opts.Args(); !equalStrings(got, tt.want) {
				t.Fatalf("Args() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCommandArgs(t *testing.T) {
	opts := makemkv.Options{CacheMB: 1}
	if got, want := opts.InfoArgs(makemkv.DiscSource(2)), []string{"-r", "--cache=1", "info", "disc:2"}; !equalStrings(got, want) {
		t.Fatalf("InfoArgs = %v, want %v", got, want)
	}
	if got, want := opts.DrivesArgs(), []string{"-r", "--cache=1", "info", "disc:9999"}; !equalStrings(got, want) {
		t.Fatalf("DrivesArgs = %v, want %v", got, want)
	}
	if got, want := opts.MkvArgs(makemkv.ISOSource("/tmp/a.iso"), 3, "/out"), []string{"-r", "--cache=1", "mkv", "iso:/tmp/a.iso", "3", "/out"}; !equalStrings(got, want) {
		t.Fatalf("MkvArgs = %v, want %v", got, want)
	}
	if got, want := opts.BackupArgs(makemkv.DeviceSource("/dev/sr0"), "/out"), []string{"-r", "--cache=1", "backup", "dev:/dev/sr0", "/out"}; !equalStrings(got, want) {
		t.Fatalf("BackupArgs = %v, want %v", got, want)
	}
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := config.Default().MakeMKV
	cfg.DirectIO = true
	cfg.ExtraArgs = []string{"--noscan"}
	opts := makemkv.OptionsFromConfig(cfg)
	want := []string{"-r", "--cache=1", "--minlength=120", "--directio=true", "--noscan"}
	if got := opts.Args(); !equalStrings(got, want) {
		t.Fatalf("Args() = %v, want %v", got, want)
	}
	cfg.ExtraArgs[0] = "--changed"
	if opts.Extra[0] != "--noscan" {
		t.Fatal("options must not alias config extra args")
	}
}

func TestParseSource(t *testing.T) {
	tests := []struct {
		in   string
		want makemkv.Source
		dev  string
	}{
		{"", "disc:0", ""},
		{"  ", "disc:0", ""},
		{"/dev/sr0", "dev:/dev/sr0", "/dev/sr0"},
		{"dev:/dev/sr1", "dev:/dev/sr1", "/dev/sr1"},
		{"DISC:3", "DISC:3", ""},
		{"2", "disc:2", ""},
		{"/media/movie.ISO", "iso:/media/movie.ISO", ""},
		{"/media/VIDEO_TS", "file:/media/VIDEO_TS", ""},
		{"iso:/x.iso", "iso:/x.iso", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := makemkv.ParseSource(tt.in)
			if got != tt.want {
				t.Fatalf("ParseSource(%q) = %q, want %q", tt.in, got, tt.want)
			}
			if dev := got.DevicePath(); dev != tt.dev {
				t.Fatalf("DevicePath() = %q, want %q", dev, tt.dev)
			}
		})
	}
}
