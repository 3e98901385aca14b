package main

import (
	"encoding/json"
	"path/filepath"
	"slices"
	"testing"

	"mkvrobot/internal/services"
	"mkvrobot/internal/services/makemkv"
)

var ripLines = []string{
	`PRGT:5018,0,"Saving to MKV file"`,
	`PRGC:5017,0,"Saving to MKV file"`,
	`PRGV:0,0,65536`,
	`PRGV:32768,32768,65536`,
	`PRGV:65536,65536,65536`,
	`MSG:5036,0,1,"Copy complete. 1 titles saved.","Copy complete. %1 titles saved.","1"`,
}

func TestRipTitleToDestination(t *testing.T) {
	env := setupCLITestEnv(t)
	exec := &ripExecutor{stubExecutor{lines: ripLines}}
	dest := filepath.Join(env.baseDir, "out")

	out, stderr, err := runCLIWithRip(t, env, exec, "rip", "--title", "3", "--dest", dest)
	if err != nil {
		t.Fatalf("rip: %v", err)
	}
	requireContains(t, out, filepath.Join(dest, "title_t00.mkv"))
	requireContains(t, stderr, "Saving to MKV file")
	requireContains(t, stderr, "100.0%")

	if len(exec.args) != 1 {
		t.Fatalf("expected one makemkvcon call, got %d", len(exec.args))
	}
	args := exec.args[0]
	if !slices.Contains(args, "--progress=-same") {
		t.Fatalf("expected progress switch in %v", args)
	}
	if !equalTail(args, []string{"mkv", "dev:/dev/sr0", "3", dest}) {
		t.Fatalf("unexpected args %v", args)
	}
}

func TestRipDefaultDestinationUsesDiscName(t *testing.T) {
	env := setupCLITestEnv(t)
	exec := &ripExecutor{stubExecutor{lines: append(append([]string(nil), sampleRobotLines...), ripLines...)}}

	out, _, err := runCLIWithRip(t, env, exec, "--json", "rip")
	if err != nil {
		t.Fatalf("rip: %v", err)
	}
	var view ripView
	if err := json.Unmarshal([]byte(out), &view); err != nil {
		t.Fatalf("decode json: %v\n%s", err, out)
	}
	want := filepath.Join(env.cfg.Paths.DataDir, "rips", "Sample Disc")
	if view.Destination != want {
		t.Fatalf("expected destination %q, got %q", want, view.Destination)
	}
	if len(view.Files) != 1 || view.Mode != "mkv" {
		t.Fatalf("unexpected rip view %+v", view)
	}
	if len(exec.args) != 2 || !equalTail(exec.args[1], []string{"mkv", "dev:/dev/sr0", "all", want}) {
		t.Fatalf("unexpected args %v", exec.args)
	}
}

func TestParseTitleSelector(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{"", -1, false},
		{"all", -1, false},
		{" ALL ", -1, false},
		{"0", 0, false},
		{"12", 12, false},
		{"-1", 0, true},
		{"first", 0, true},
	}
	for _, tt := range tests {
		got, err := parseTitleSelector(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("parseTitleSelector(%q) expected error", tt.input)
			}
			if services.ExitCode(err) != services.ExitUsage {
				t.Fatalf("parseTitleSelector(%q) expected validation error, got %v", tt.input, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Fatalf("parseTitleSelector(%q) = %d, %v; want %d", tt.input, got, err, tt.want)
		}
	}
}

func TestProgressPrinterThrottles(t *testing.T) {
	var buf stringsBuilder
	printer := newProgressPrinter(&buf)
	for _, pct := range []float64{0, 1, 5, 9.9, 10, 11, 55} {
		printer.update(makemkv.ProgressUpdate{Stage: "Saving", Percent: pct})
	}
	printer.update(makemkv.ProgressUpdate{Stage: "Analyzing", Percent: 55})
	if got := buf.lines; got != 4 {
		t.Fatalf("expected 4 progress lines, got %d", got)
	}
}

type stringsBuilder struct {
	lines int
}

func (s *stringsBuilder) Write(p []byte) (int, error) {
	s.lines++
	return len(p), nil
}
