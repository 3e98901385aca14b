package watch_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofrs/flock"

	"mkvrobot/internal/services"
	"mkvrobot/internal/testsupport"
	"mkvrobot/internal/watch"
)

func TestNewRequiresDevicePath(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithDevice("disc:0"))
	if _, err := watch.New(cfg, nil, nil); !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	if _, err := watch.New(nil, nil, nil); !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error for nil config, got %v", err)
	}
}

func TestRunRefusesSecondInstance(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithDevice("dev:/dev/sr0"))
	w, err := watch.New(cfg, nil, nil)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if w.LockPath() != cfg.Watch.LockPath {
		t.Fatalf("unexpected lock path %q", w.LockPath())
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Watch.LockPath), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	holder := flock.New(cfg.Watch.LockPath)
	ok, err := holder.TryLock()
	if err != nil || !ok {
		t.Fatalf("failed to take lock: ok=%v err=%v", ok, err)
	}
	defer holder.Unlock()

	if err := w.Run(context.Background()); !errors.Is(err, watch.ErrAlreadyRunning) {
		t.Fatalf("expected ErrAlreadyRunning, got %v", err)
	}
}
