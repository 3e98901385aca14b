package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"mkvrobot/internal/config"
	"mkvrobot/internal/logging"
	"mkvrobot/internal/services"
	"mkvrobot/internal/services/makemkv"
)

// ErrAlreadyRunning is returned when another watcher holds the lock.
var ErrAlreadyRunning = errors.New("another mkvrobot watcher is already running")

// Watcher couples a Monitor with a single-instance lock.
type Watcher struct {
	logger   *slog.Logger
	monitor  *Monitor
	lockPath string
	lock     *flock.Flock
}

// New builds a Watcher for the configured device.
func New(cfg *config.Config, logger *slog.Logger, handler Handler) (*Watcher, error) {
	if cfg == nil {
		return nil, services.Wrap(services.ErrConfiguration, "watch", "new", "config required", nil)
	}
	device := makemkv.ParseSource(cfg.MakeMKV.Device).DevicePath()
	monitor := NewMonitor(device, cfg.SettleDelay(), logger, handler)
	if monitor == nil {
		return nil, services.Wrap(services.ErrConfiguration, "watch", "new", "makemkv.device must name a /dev path to watch", nil)
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Watcher{
		logger:   logging.NewComponentLogger(logger, "watch"),
		monitor:  monitor,
		lockPath: cfg.Watch.LockPath,
		lock:     flock.New(cfg.Watch.LockPath),
	}, nil
}

// Run holds the lock and watches until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	if err := w.acquire(); err != nil {
		return err
	}
	defer w.release()

	if err := w.monitor.Start(ctx); err != nil {
		return services.Wrap(services.ErrConfiguration, "watch", "start", "connect to udev netlink socket", err)
	}
	defer w.monitor.Stop()

	w.logger.Info("watching for discs",
		logging.String(logging.FieldEventType, "watch_started"),
		logging.String(logging.FieldDevice, w.monitor.Device()),
		logging.String("lock", w.lockPath),
	)
	<-ctx.Done()
	return nil
}

// LockPath returns the lock file location.
func (w *Watcher) LockPath() string { return w.lockPath }

func (w *Watcher) acquire() error {
	if err := os.MkdirAll(filepath.Dir(w.lockPath), 0o755); err != nil {
		return fmt.Errorf("create lock directory: %w", err)
	}
	ok, err := w.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return ErrAlreadyRunning
	}
	return nil
}

func (w *Watcher) release() {
	if err := w.lock.Unlock(); err != nil {
		w.logger.Warn("failed to release watch lock", logging.Error(err))
	}
}
