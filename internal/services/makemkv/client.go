package makemkv

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"mkvrobot/internal/logging"
	"mkvrobot/internal/robot"
	"mkvrobot/internal/services"
)

const component = "makemkv"

// ProgressUpdate captures MakeMKV progress output.
type ProgressUpdate struct {
	// Stage is the overall operation named by the last PRGT line.
	Stage string
	// Operation is the sub-operation named by the last PRGC line.
	Operation string
	// Percent is overall progress, CurrentPercent the sub-operation's.
	Percent        float64
	CurrentPercent float64
}

// Report is the outcome of an info run.
type Report struct {
	Source    Source
	Args      []string
	Raw       string
	Result    *robot.Result
	StartedAt time.Time
	Duration  time.Duration
}

// RipResult is the outcome of an mkv or backup run.
type RipResult struct {
	Saved  int
	Failed int
	Files  []string
	// ReadErrors counts MSG read errors and bare drive error lines.
	ReadErrors int
}

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// WithLogger sets the logger used for MSG classification.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logging.NewComponentLogger(logger, component)
		}
	}
}

// WithOptions replaces the global makemkvcon switches.
func WithOptions(options Options) Option {
	return func(c *Client) {
		c.options = options
	}
}

// WithInfoTimeout bounds info and drive listing runs. Zero disables the bound.
func WithInfoTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.infoTimeout = timeout
	}
}

// WithRipTimeout bounds mkv and backup runs. Zero disables the bound.
func WithRipTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.ripTimeout = timeout
	}
}

// Client wraps makemkvcon interactions.
type Client struct {
	binary      string
	options     Options
	infoTimeout time.Duration
	ripTimeout  time.Duration
	exec        Executor
	logger      *slog.Logger
}

// New constructs a MakeMKV client.
func New(binary string, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, services.Wrap(services.ErrConfiguration, component, "new", "makemkv binary required", nil)
	}
	client := &Client{
		binary: binary,
		exec:   commandExecutor{},
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Info runs makemkvcon info against source and aggregates the output.
func (c *Client) Info(ctx context.Context, source Source) (*Report, error) {
	args := c.options.InfoArgs(source)
	started := time.Now()
	ctx, cancel := withDefaultTimeout(ctx, c.infoTimeout)
	defer cancel()
	raw, handler, err := c.run(ctx, "info", args, nil)
	report := &Report{
		Source:    source,
		Args:      args,
		Raw:       raw,
		Result:    robot.Parse(raw),
		StartedAt: started,
		Duration:  time.Since(started),
	}
	if err != nil {
		return report, c.explain(err, "info", report.Result.Messages)
	}
	if handler.fatalErr != nil {
		return report, services.Wrap(services.ErrExternalTool, component, "info", "makemkvcon reported a fatal message", handler.fatalErr)
	}
	c.logger.Debug("makemkv info complete",
		slog.String(logging.FieldEventType, "makemkv_info_complete"),
		slog.String("source", source.String()),
		slog.Int("titles", len(report.Result.Disc.Titles)),
		slog.Int("rejected_lines", report.Result.Stats.Rejected()),
		slog.Duration("duration", report.Duration),
	)
	return report, nil
}

// Drives lists the drive slots makemkvcon knows about, skipping empty ones.
func (c *Client) Drives(ctx context.Context) ([]robot.Drive, error) {
	ctx, cancel := withDefaultTimeout(ctx, c.infoTimeout)
	defer cancel()
	raw, _, err := c.run(ctx, "drives", c.options.DrivesArgs(), nil)
	result := robot.Parse(raw)
	if err != nil && len(result.Drives) == 0 {
		return nil, c.explain(err, "drives", result.Messages)
	}
	drives := make([]robot.Drive, 0, len(result.Drives))
	for _, drive := range result.Drives {
		if strings.TrimSpace(drive.DriveName) == "" {
			continue
		}
		drives = append(drives, drive)
	}
	return drives, nil
}

// Mkv rips title (or every title when title is negative) from source into
// dest as MKV files.
func (c *Client) Mkv(ctx context.Context, source Source, title int, dest string, progress func(ProgressUpdate)) (*RipResult, error) {
	return c.transfer(ctx, "mkv", dest, func(dest string) []string {
		return c.options.MkvArgs(source, title, dest)
	}, progress)
}

// Backup decrypts the whole disc at source into dest.
func (c *Client) Backup(ctx context.Context, source Source, dest string, progress func(ProgressUpdate)) (*RipResult, error) {
	return c.transfer(ctx, "backup", dest, func(dest string) []string {
		return c.options.BackupArgs(source, dest)
	}, progress)
}

func (c *Client) transfer(ctx context.Context, command, dest string, build func(string) []string, progress func(ProgressUpdate)) (*RipResult, error) {
	if strings.TrimSpace(dest) == "" {
		return nil, services.Wrap(services.ErrValidation, component, command, "destination directory required", nil)
	}
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, component, command, "create destination", err)
	}

	args := build(dest)
	if progress != nil && c.options.Progress == "" {
		args = withProgressSame(args)
	}

	tracker := &progressTracker{stage: "Saving", emit: progress}
	ctx, cancel := withDefaultTimeout(ctx, c.ripTimeout)
	defer cancel()
	_, handler, err := c.run(ctx, command, args, tracker.observe)
	if err != nil {
		return nil, c.explain(err, command, nil)
	}
	if handler.fatalErr != nil {
		return nil, services.Wrap(services.ErrExternalTool, component, command, "makemkvcon reported a fatal message", handler.fatalErr)
	}

	files, err := gatherMKVFiles(dest)
	if err != nil {
		return nil, services.Wrap(services.ErrExternalTool, component, command, "inspect outputs", err)
	}
	if command == "mkv" && len(files) == 0 {
		return nil, services.Wrap(services.ErrExternalTool, component, command, "makemkv produced no output file; check disc for read errors", nil)
	}
	return &RipResult{
		Saved:      handler.savedCount,
		Failed:     handler.failedCount,
		Files:      files,
		ReadErrors: handler.readErrors + handler.bareErrors,
	}, nil
}

// run executes makemkvcon, classifying MSG records as they arrive and
// handing every decoded record to observe. It returns the raw output.
func (c *Client) run(ctx context.Context, command string, args []string, observe func(robot.Record)) (string, *msgHandler, error) {
	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	logger := logging.WithContext(ctx, c.logger).With(slog.String(logging.FieldCommand, command))
	handler := newMsgHandler(logger, cancel)
	var raw strings.Builder

	logger.Debug("running makemkvcon",
		slog.String("binary", c.binary),
		slog.String("args", strings.Join(args, " ")),
	)

	err := c.exec.Run(ctx, c.binary, args, func(line string) {
		raw.WriteString(line)
		raw.WriteByte('\n')
		record, decodeErr := robot.Decode(line)
		if decodeErr != nil {
			if errors.Is(decodeErr, robot.ErrNoDelimiter) {
				handler.handleBareLine(line)
			}
			return
		}
		if msg, ok := record.(robot.Message); ok {
			handler.handle(msg)
		}
		if observe != nil {
			observe(record)
		}
	})
	if err != nil {
		if cause := context.Cause(ctx); cause != nil && !errors.Is(cause, context.Canceled) {
			err = fmt.Errorf("%w: %w", cause, err)
		}
	}
	return raw.String(), handler, err
}

func (c *Client) explain(err error, command string, messages []robot.Message) error {
	var msgErr *MessageError
	switch {
	case errors.As(err, &msgErr):
		return services.Wrap(services.ErrExternalTool, component, command, "makemkvcon reported a fatal message", err)
	case errors.Is(err, context.DeadlineExceeded):
		return services.Wrap(services.ErrTimeout, component, command, "makemkvcon timed out", err)
	case errors.Is(err, exec.ErrNotFound):
		return services.Wrap(services.ErrConfiguration, component, command, "makemkvcon binary not found", err)
	}
	detail := "makemkvcon failed"
	if text := FirstError(messages); text != "" {
		detail = detail + ": " + text
	}
	return services.Wrap(services.ErrExternalTool, component, command, detail, err)
}

// withDefaultTimeout applies timeout unless ctx already carries a deadline.
func withDefaultTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return ctx, func() {}
	}
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

// withProgressSame inserts --progress=-same among the global switches so
// PRG lines arrive on stdout with everything else.
func withProgressSame(args []string) []string {
	out := make([]string, 0, len(args)+1)
	inserted := false
	for _, arg := range args {
		if !inserted && !strings.HasPrefix(arg, "-") {
			out = append(out, "--progress=-same")
			inserted = true
		}
		out = append(out, arg)
	}
	if !inserted {
		out = append(out, "--progress=-same")
	}
	return out
}

type progressTracker struct {
	stage     string
	operation string
	emit      func(ProgressUpdate)
}

func (p *progressTracker) observe(record robot.Record) {
	switch r := record.(type) {
	case robot.Progress:
		if r.Scope == robot.ProgressTotal {
			p.stage = r.Name
		} else {
			p.operation = r.Name
		}
	case robot.ProgressValue:
		if p.emit == nil || r.Max <= 0 {
			return
		}
		p.emit(ProgressUpdate{
			Stage:          p.stage,
			Operation:      p.operation,
			Percent:        r.Percent(),
			CurrentPercent: r.CurrentPercent(),
		})
	}
}

func gatherMKVFiles(dir string) ([]string, error) {
	items, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	result := make([]string, 0, len(items))
	for _, item := range items {
		if item.IsDir() {
			continue
		}
		if !strings.HasSuffix(strings.ToLower(item.Name()), ".mkv") {
			continue
		}
		result = append(result, filepath.Join(dir, item.Name()))
	}
	sort.Strings(result)
	return result, nil
}
