package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"mkvrobot/internal/logging"
	"mkvrobot/internal/services"
	"mkvrobot/internal/services/makemkv"
	"mkvrobot/internal/store"
)

type scanView struct {
	ScanID   string   `json:"scan_id,omitempty"`
	Source   string   `json:"source"`
	Args     []string `json:"args"`
	Duration string   `json:"duration"`
	Disc     discView `json:"disc"`
}

func newScanCommand(ctx *commandContext) *cobra.Command {
	var (
		device  string
		noStore bool
		opts    parseOptions
	)

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Run makemkvcon info against a disc and summarize it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			source := ctx.source(device)
			report, scanID, err := ctx.scanSource(cmd.Context(), source, !noStore)
			if err != nil {
				return err
			}
			if ctx.jsonFlag {
				return writeJSON(cmd, scanView{
					ScanID:   scanID,
					Source:   source.String(),
					Args:     report.Args,
					Duration: report.Duration.Round(time.Millisecond).String(),
					Disc:     newDiscView(report.Result),
				})
			}
			out := cmd.OutOrStdout()
			renderResult(out, report.Result, discRenderOptions{
				streams:    opts.streams,
				attributes: opts.attributes,
				messages:   opts.messages,
				colorize:   shouldColorize(out),
			})
			if scanID != "" {
				fmt.Fprintf(out, "\nSaved scan %s\n", scanID)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&device, "device", "d", "", "Source to scan (disc:N, dev:/dev/srN, iso:path, file:path or a bare path)")
	cmd.Flags().BoolVar(&noStore, "no-store", false, "Do not record the scan in the history database")
	cmd.Flags().BoolVar(&opts.streams, "streams", false, "Show per-title stream tables")
	cmd.Flags().BoolVar(&opts.attributes, "attributes", false, "Show every raw attribute")
	cmd.Flags().BoolVar(&opts.messages, "messages", false, "Show MSG lines")
	return cmd
}

// scanSource runs an info pass and, when persist is set and the store is
// enabled, records it. The returned scan id is empty when nothing was saved.
func (c *commandContext) scanSource(ctx context.Context, source makemkv.Source, persist bool) (*makemkv.Report, string, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, "", err
	}
	client, err := c.newClient()
	if err != nil {
		return nil, "", err
	}
	logger := c.ensureLogger()
	ctx = services.WithDevice(ctx, source.String())

	report, err := client.Info(ctx, source)
	if err != nil {
		return nil, "", err
	}
	if !persist || !cfg.Store.Enabled {
		return report, "", nil
	}

	st, err := c.openStore()
	if err != nil {
		return nil, "", err
	}
	defer st.Close()

	saved, err := st.Save(ctx, store.NewScan(source.String(), report.Raw, report.Result))
	if err != nil {
		return nil, "", err
	}
	logging.WithContext(services.WithScanID(ctx, saved.ID), logger).Info("scan recorded",
		slog.String(logging.FieldEventType, "scan_recorded"),
		slog.String("label", saved.Label()),
		slog.Int("titles", saved.TitleCount),
	)
	return report, saved.ID, nil
}
