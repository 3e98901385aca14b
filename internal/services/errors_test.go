package services_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"mkvrobot/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrExternalTool, "makemkv", "info", "failed", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"makemkv", "info", "failed"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapDefaultsMarkerAndDetail(t *testing.T) {
	err := services.Wrap(nil, " ", "", "", nil)
	if !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected transient marker, got %v", err)
	}
	if !strings.Contains(err.Error(), "service failure") {
		t.Fatalf("expected fallback detail, got %q", err.Error())
	}
}

func TestExitCodeMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, services.ExitOK},
		{"validation", services.Wrap(services.ErrValidation, "cli", "parse", "bad source", nil), services.ExitUsage},
		{"configuration", services.Wrap(services.ErrConfiguration, "config", "load", "", nil), services.ExitConfiguration},
		{"external tool", fmt.Errorf("scan: %w", services.Wrap(services.ErrExternalTool, "makemkv", "info", "", nil)), services.ExitExternalTool},
		{"not found", services.Wrap(services.ErrNotFound, "store", "get", "", nil), services.ExitNotFound},
		{"timeout", services.Wrap(services.ErrTimeout, "makemkv", "info", "", nil), services.ExitTimeout},
		{"plain", errors.New("other"), services.ExitFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := services.ExitCode(tt.err); got != tt.want {
				t.Fatalf("ExitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
