package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"mkvrobot/internal/config"
	"mkvrobot/internal/testsupport"
)

var sampleRobotLines = []string{
	`MSG:1005,0,1,"MakeMKV v1.17.7 linux(x64-release) started","%1 started","MakeMKV v1.17.7 linux(x64-release)"`,
	`DRV:0,2,999,1,"BD-RE HL-DT-ST BD-RE  WH16NS60","SAMPLE_DISC","/dev/sr0"`,
	`DRV:1,256,999,0,"","",""`,
	`TCOUT:2`,
	`CINFO:1,6209,"Blu-ray disc"`,
	`CINFO:2,0,"Sample Disc"`,
	`CINFO:32,0,"SAMPLE_DISC"`,
	`TINFO:0,2,0,"Sample Disc"`,
	`TINFO:0,8,0,"24"`,
	`TINFO:0,9,0,"1:52:03"`,
	`TINFO:0,10,0,"31.2 GB"`,
	`TINFO:0,16,0,"00800.mpls"`,
	`TINFO:1,9,0,"0:03:10"`,
	`SINFO:0,0,1,6201,"Video"`,
	`SINFO:0,0,6,0,"MPEG4-AVC"`,
	`SINFO:0,1,1,6202,"Audio"`,
	`SINFO:0,1,3,0,"eng"`,
	`garbage without tag`,
}

type stubExecutor struct {
	lines []string
	err   error
	args  [][]string
}

func (s *stubExecutor) Run(ctx context.Context, binary string, args []string, onLine func(string)) error {
	s.args = append(s.args, append([]string(nil), args...))
	for _, line := range s.lines {
		onLine(line)
	}
	return s.err
}

// ripExecutor writes one MKV into the destination directory, which is the
// last argument for both mkv and backup runs.
type ripExecutor struct {
	stubExecutor
}

func (r *ripExecutor) Run(ctx context.Context, binary string, args []string, onLine func(string)) error {
	if slices.Contains(args, "mkv") {
		dest := args[len(args)-1]
		if err := os.WriteFile(filepath.Join(dest, "title_t00.mkv"), []byte("rip"), 0o644); err != nil {
			return err
		}
	}
	return r.stubExecutor.Run(ctx, binary, args, onLine)
}

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	baseDir    string
}

func setupCLITestEnv(t *testing.T, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	t.Setenv("MKVROBOT_DEVICE", "")
	cfg := testsupport.NewConfig(t, opts...)
	cfg.Logging.Level = "error"
	base := testsupport.BaseDir(cfg)
	t.Setenv("HOME", filepath.Join(base, "home"))

	configPath := filepath.Join(base, "config.toml")
	writeTestConfig(t, configPath, cfg)

	return &cliTestEnv{cfg: cfg, configPath: configPath, baseDir: base}
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	data, err := cfg.Encode()
	if err != nil {
		t.Fatalf("encode config: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func runCLI(t *testing.T, env *cliTestEnv, executor *stubExecutor, stdin string, args ...string) (string, string, error) {
	t.Helper()
	ctx := newCommandContext()
	if executor != nil {
		ctx.executor = executor
	}
	return execute(t, ctx, env, stdin, args...)
}

func runCLIWithRip(t *testing.T, env *cliTestEnv, executor *ripExecutor, args ...string) (string, string, error) {
	t.Helper()
	ctx := newCommandContext()
	ctx.executor = executor
	return execute(t, ctx, env, "", args...)
}

func execute(t *testing.T, ctx *commandContext, env *cliTestEnv, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommandWithContext(ctx)
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	flags := []string{}
	if env != nil {
		flags = append(flags, "--config", env.configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected output to contain %q, got:\n%s", substr, output)
	}
}

func requireNotContains(t *testing.T, output, substr string) {
	t.Helper()
	if strings.Contains(output, substr) {
		t.Fatalf("expected output not to contain %q, got:\n%s", substr, output)
	}
}
