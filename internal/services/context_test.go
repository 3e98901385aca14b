package services_test

import (
	"context"
	"testing"

	"mkvrobot/internal/services"
)

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithDevice(ctx, "/dev/sr0")
	ctx = services.WithScanID(ctx, "scan-1")
	ctx = services.WithCommand(ctx, "info")
	ctx = services.WithRequestID(ctx, "req-123")

	if device, ok := services.DeviceFromContext(ctx); !ok || device != "/dev/sr0" {
		t.Fatalf("unexpected device: %v %v", device, ok)
	}
	if id, ok := services.ScanIDFromContext(ctx); !ok || id != "scan-1" {
		t.Fatalf("unexpected scan id: %v %v", id, ok)
	}
	if command, ok := services.CommandFromContext(ctx); !ok || command != "info" {
		t.Fatalf("unexpected command: %v %v", command, ok)
	}
	if rid, ok := services.RequestIDFromContext(ctx); !ok || rid != "req-123" {
		t.Fatalf("unexpected request id: %v %v", rid, ok)
	}
}

func TestBlankValuesPreserveContext(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithDevice(ctx, "")
	ctx = services.WithCommand(ctx, "")
	if _, ok := services.DeviceFromContext(ctx); ok {
		t.Fatal("expected no device value")
	}
	if _, ok := services.CommandFromContext(ctx); ok {
		t.Fatal("expected no command value")
	}
}
