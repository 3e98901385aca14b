package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"mkvrobot/internal/services"
	"mkvrobot/internal/services/makemkv"
	"mkvrobot/internal/watch"
)

func newWatchCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Scan every disc inserted into the configured drive",
		Long: "Listen for udev media-change events on the configured device and run\n" +
			"makemkvcon info for each inserted disc, recording the result in the\n" +
			"scan history. Runs until interrupted.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger := ctx.ensureLogger()
			watcher, err := watch.New(cfg, logger, ctx.watchHandler())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Watching %s (Ctrl+C to stop)\n", cfg.MakeMKV.Device)
			if err := watcher.Run(cmd.Context()); err != nil {
				if errors.Is(err, watch.ErrAlreadyRunning) {
					return services.Wrap(services.ErrConfiguration, "watch", "lock", watcher.LockPath(), err)
				}
				return err
			}
			return nil
		},
	}
}

// watchHandler scans the device that reported new media and records it.
func (c *commandContext) watchHandler() watch.Handler {
	return func(ctx context.Context, device string) (*watch.Outcome, error) {
		report, scanID, err := c.scanSource(ctx, makemkv.ParseSource(device), true)
		if err != nil {
			return nil, err
		}
		disc := report.Result.Disc
		label := disc.Name()
		if label == "" {
			label = disc.VolumeName()
		}
		return &watch.Outcome{
			ScanID: scanID,
			Label:  label,
			Titles: len(disc.Titles),
		}, nil
	}
}
