package watch

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pilebones/go-udev/netlink"

	"mkvrobot/internal/logging"
)

// Outcome describes what a Handler did with an inserted disc.
type Outcome struct {
	ScanID string
	Label  string
	Titles int
}

// Handler reacts to media on device.
type Handler func(ctx context.Context, device string) (*Outcome, error)

// Monitor listens for udev netlink events and calls a Handler when a disc is
// inserted into its device.
type Monitor struct {
	logger  *slog.Logger
	handler Handler
	device  string
	settle  time.Duration
	busy    atomic.Bool

	// inflight tracks the scan goroutine started by handleEvent.
	inflight sync.WaitGroup

	mu      sync.Mutex
	conn    *netlink.UEventConn
	quit    chan struct{}
	running bool
}

// NewMonitor creates a monitor for device. It returns nil when device is empty.
func NewMonitor(device string, settle time.Duration, logger *slog.Logger, handler Handler) *Monitor {
	device = strings.TrimSpace(device)
	if device == "" {
		return nil
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Monitor{
		logger:  logging.NewComponentLogger(logger, "netlink-monitor"),
		handler: handler,
		device:  device,
		settle:  settle,
	}
}

// Start begins listening for udev netlink events.
func (m *Monitor) Start(ctx context.Context) error {
	if m == nil {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.running {
		return nil
	}

	conn := new(netlink.UEventConn)
	if err := conn.Connect(netlink.UdevEvent); err != nil {
		return err
	}

	m.conn = conn
	m.quit = make(chan struct{})
	m.running = true

	go m.monitorLoop(ctx, conn, m.quit)

	m.logger.Info("netlink monitor started",
		logging.String(logging.FieldEventType, "netlink_monitor_started"),
		logging.String(logging.FieldDevice, m.device),
	)
	return nil
}

// Stop shuts down the netlink monitor.
func (m *Monitor) Stop() {
	if m == nil {
		return
	}

	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return
	}
	if m.quit != nil {
		close(m.quit)
		m.quit = nil
	}
	if m.conn != nil {
		_ = m.conn.Close()
		m.conn = nil
	}
	m.running = false
	m.mu.Unlock()

	m.inflight.Wait()
	m.logger.Info("netlink monitor stopped",
		logging.String(logging.FieldEventType, "netlink_monitor_stopped"),
	)
}

// Running reports whether the netlink monitor is active.
func (m *Monitor) Running() bool {
	if m == nil {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}

// Device returns the device the monitor reacts to.
func (m *Monitor) Device() string {
	if m == nil {
		return ""
	}
	return m.device
}

func (m *Monitor) monitorLoop(ctx context.Context, conn *netlink.UEventConn, quit <-chan struct{}) {
	queue := make(chan netlink.UEvent)
	errs := make(chan error)
	monitorQuit := conn.Monitor(queue, errs, buildMatcher())

	for {
		select {
		case <-ctx.Done():
			close(monitorQuit)
			return
		case <-quit:
			close(monitorQuit)
			return
		case uevent := <-queue:
			m.handleEvent(ctx, quit, uevent)
		case err := <-errs:
			m.logger.Warn("netlink monitor error",
				logging.Error(err),
				logging.String(logging.FieldEventType, "netlink_monitor_error"),
				logging.String(logging.FieldErrorHint, "check kernel netlink subsystem"),
				logging.String(logging.FieldImpact, "disc detection may be affected"),
			)
		}
	}
}

// buildMatcher matches disc media events:
// SUBSYSTEM=block, ID_CDROM=1, ID_CDROM_MEDIA=1, ACTION=change|add
func buildMatcher() netlink.Matcher {
	action := "change|add"
	rules := &netlink.RuleDefinitions{}
	rules.AddRule(netlink.RuleDefinition{
		Action: &action,
		Env: map[string]string{
			"SUBSYSTEM":      "block",
			"ID_CDROM":       "1",
			"ID_CDROM_MEDIA": "1",
		},
	})
	return rules
}

func (m *Monitor) handleEvent(ctx context.Context, quit <-chan struct{}, uevent netlink.UEvent) {
	devname := extractDeviceName(uevent)
	if devname == "" {
		m.logger.Debug("ignoring event without device name",
			logging.String("action", string(uevent.Action)),
			logging.String("kobj", uevent.KObj),
		)
		return
	}
	if devname != m.device {
		m.logger.Debug("ignoring event for non-configured device",
			logging.String(logging.FieldDevice, devname),
			logging.String("configured_device", m.device),
		)
		return
	}
	if !m.busy.CompareAndSwap(false, true) {
		m.logger.Debug("scan already in progress, ignoring event",
			logging.String(logging.FieldDevice, devname),
		)
		return
	}

	m.logger.Info("disc media detected via netlink",
		logging.String(logging.FieldEventType, "netlink_disc_detected"),
		logging.String(logging.FieldDevice, devname),
		logging.String("action", string(uevent.Action)),
	)

	// The scan runs off the event loop so follow-up events for the same
	// insertion are drained and dropped by the busy guard.
	m.inflight.Add(1)
	go m.scan(ctx, quit, devname)
}

func (m *Monitor) scan(ctx context.Context, quit <-chan struct{}, devname string) {
	defer m.inflight.Done()
	defer m.busy.Store(false)

	if m.handler == nil {
		return
	}
	if !m.wait(ctx, quit) {
		return
	}

	outcome, err := m.handler(ctx, devname)
	if err != nil {
		logging.ErrorWithContext(m.logger, "disc scan failed", "watch_scan_failed",
			logging.Error(err),
			logging.String(logging.FieldDevice, devname),
			logging.String(logging.FieldErrorHint, "run mkvrobot scan manually for details"),
			logging.String(logging.FieldImpact, "disc not recorded"),
		)
		return
	}
	if outcome == nil {
		return
	}
	m.logger.Info("disc scanned",
		logging.String(logging.FieldEventType, "watch_disc_scanned"),
		logging.String(logging.FieldDevice, devname),
		logging.String(logging.FieldScanID, outcome.ScanID),
		logging.String("label", outcome.Label),
		logging.Int("titles", outcome.Titles),
	)
}

// wait gives the drive time to spin up before makemkvcon opens it. It
// reports false when the monitor is shutting down.
func (m *Monitor) wait(ctx context.Context, quit <-chan struct{}) bool {
	if m.settle <= 0 {
		return true
	}
	timer := time.NewTimer(m.settle)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-quit:
		return false
	case <-timer.C:
		return true
	}
}

// extractDeviceName gets the device path from a uevent.
func extractDeviceName(uevent netlink.UEvent) string {
	if devname := uevent.Env["DEVNAME"]; devname != "" {
		if !strings.HasPrefix(devname, "/") {
			return "/dev/" + devname
		}
		return devname
	}

	devpath := uevent.Env["DEVPATH"]
	if devpath == "" {
		return ""
	}
	parts := strings.Split(devpath, "/")
	return "/dev/" + parts[len(parts)-1]
}
