package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mkvrobot/internal/services"
	"mkvrobot/internal/testsupport"
)

func TestScanRecordsHistory(t *testing.T) {
	env := setupCLITestEnv(t)
	exec := &stubExecutor{lines: sampleRobotLines}

	out, _, err := runCLI(t, env, exec, "", "--json", "scan", "--device", "disc:1")
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	var view scanView
	if err := json.Unmarshal([]byte(out), &view); err != nil {
		t.Fatalf("decode json: %v\n%s", err, out)
	}
	if view.ScanID == "" {
		t.Fatal("expected scan to be recorded")
	}
	if view.Source != "disc:1" {
		t.Fatalf("expected source disc:1, got %q", view.Source)
	}
	if len(exec.args) != 1 || !equalTail(exec.args[0], []string{"info", "disc:1"}) {
		t.Fatalf("unexpected makemkvcon args %v", exec.args)
	}

	out, _, err = runCLI(t, env, nil, "", "history", "list")
	if err != nil {
		t.Fatalf("history list: %v", err)
	}
	requireContains(t, out, view.ScanID[:8])
	requireContains(t, out, "Sample Disc")

	out, _, err = runCLI(t, env, nil, "", "history", "show", view.ScanID[:8], "--raw")
	if err != nil {
		t.Fatalf("history show --raw: %v", err)
	}
	requireContains(t, out, `TCOUT:2`)

	out, _, err = runCLI(t, env, nil, "", "history", "show", view.ScanID)
	if err != nil {
		t.Fatalf("history show: %v", err)
	}
	requireContains(t, out, "1:52:03")

	exportDir := filepath.Join(env.baseDir, "export")
	out, _, err = runCLI(t, env, nil, "", "history", "export", view.ScanID, exportDir)
	if err != nil {
		t.Fatalf("history export: %v", err)
	}
	requireContains(t, out, "Wrote ")
	entries, err := os.ReadDir(exportDir)
	if err != nil || len(entries) != 1 {
		t.Fatalf("expected one exported file, got %v (%v)", entries, err)
	}
	if !strings.HasPrefix(entries[0].Name(), "Sample_Disc-") {
		t.Fatalf("unexpected export name %q", entries[0].Name())
	}

	if _, _, err := runCLI(t, env, nil, "", "history", "delete", view.ScanID); err != nil {
		t.Fatalf("history delete: %v", err)
	}
	_, _, err = runCLI(t, env, nil, "", "history", "show", view.ScanID)
	if services.ExitCode(err) != services.ExitNotFound {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}

func TestScanNoStore(t *testing.T) {
	env := setupCLITestEnv(t)
	exec := &stubExecutor{lines: sampleRobotLines}

	out, _, err := runCLI(t, env, exec, "", "scan", "--no-store")
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	requireContains(t, out, "Sample Disc")
	requireNotContains(t, out, "Saved scan")

	out, _, err = runCLI(t, env, nil, "", "history", "list")
	if err != nil {
		t.Fatalf("history list: %v", err)
	}
	requireContains(t, out, "No scans recorded")
}

func TestHistoryRequiresStore(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithStoreDisabled())
	_, _, err := runCLI(t, env, nil, "", "history", "list")
	if services.ExitCode(err) != services.ExitConfiguration {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestScanFatalMessage(t *testing.T) {
	env := setupCLITestEnv(t)
	exec := &stubExecutor{lines: []string{
		`MSG:5021,260,1,"This application version is too old.","%1","This application version is too old."`,
	}}
	_, _, err := runCLI(t, env, exec, "", "scan")
	if err == nil {
		t.Fatal("expected scan to fail")
	}
	if code := services.ExitCode(err); code != services.ExitExternalTool {
		t.Fatalf("expected exit code %d, got %d (%v)", services.ExitExternalTool, code, err)
	}
}

func TestDrivesListsPopulatedSlots(t *testing.T) {
	env := setupCLITestEnv(t)
	exec := &stubExecutor{lines: sampleRobotLines}

	out, _, err := runCLI(t, env, exec, "", "drives")
	if err != nil {
		t.Fatalf("drives: %v", err)
	}
	requireContains(t, out, "/dev/sr0")
	requireContains(t, out, "SAMPLE_DISC")
	requireNotContains(t, out, "disc:1")
}

func equalTail(args, tail []string) bool {
	if len(args) < len(tail) {
		return false
	}
	offset := len(args) - len(tail)
	for i, v := range tail {
		if args[offset+i] != v {
			return false
		}
	}
	return true
}

func TestWatchHandlerScansInsertedDisc(t *testing.T) {
	env := setupCLITestEnv(t)
	exec := &stubExecutor{lines: sampleRobotLines}
	ctx := newCommandContext()
	ctx.configFlag = env.configPath
	ctx.executor = exec

	outcome, err := ctx.watchHandler()(context.Background(), "/dev/sr1")
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	if outcome.ScanID == "" || outcome.Label != "Sample Disc" || outcome.Titles != 2 {
		t.Fatalf("unexpected outcome %+v", outcome)
	}
	if !equalTail(exec.args[0], []string{"info", "dev:/dev/sr1"}) {
		t.Fatalf("unexpected args %v", exec.args[0])
	}
}
