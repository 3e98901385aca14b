package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"mkvrobot/internal/services"
	"mkvrobot/internal/store"
	"mkvrobot/internal/textutil"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:     "history",
		Aliases: []string{"scans"},
		Short:   "Browse recorded scans",
	}

	historyCmd.AddCommand(newHistoryListCommand(ctx))
	historyCmd.AddCommand(newHistoryShowCommand(ctx))
	historyCmd.AddCommand(newHistoryDeleteCommand(ctx))
	historyCmd.AddCommand(newHistoryExportCommand(ctx))
	return historyCmd
}

// withStore opens the scan store for the duration of fn.
func (c *commandContext) withStore(fn func(*store.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	if !cfg.Store.Enabled {
		return services.Wrap(services.ErrConfiguration, "history", "open", "scan store is disabled (store.enabled = false)", nil)
	}
	st, err := c.openStore()
	if err != nil {
		return err
	}
	defer st.Close()
	return fn(st)
}

func newHistoryListCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded scans, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(st *store.Store) error {
				scans, err := st.List(cmd.Context(), limit)
				if err != nil {
					return err
				}
				if ctx.jsonFlag {
					if scans == nil {
						scans = []store.Scan{}
					}
					return writeJSON(cmd, scans)
				}
				out := cmd.OutOrStdout()
				if len(scans) == 0 {
					fmt.Fprintln(out, "No scans recorded")
					return nil
				}
				rows := make([][]string, 0, len(scans))
				for _, scan := range scans {
					rows = append(rows, []string{
						shortID(scan.ID),
						scan.CreatedAt.Local().Format("2006-01-02 15:04"),
						textutil.DisplayName(scan.DiscName, scan.VolumeName),
						scan.Source,
						strconv.Itoa(scan.TitleCount),
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"ID", "Scanned", "Disc", "Source", "Titles"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight},
				))
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of scans to show (0 for all)")
	return cmd
}

func newHistoryShowCommand(ctx *commandContext) *cobra.Command {
	var (
		raw  bool
		opts parseOptions
	)

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a recorded scan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(st *store.Store) error {
				scan, err := st.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if raw {
					fmt.Fprint(out, scan.Raw)
					if scan.Raw != "" && !strings.HasSuffix(scan.Raw, "\n") {
						fmt.Fprintln(out)
					}
					return nil
				}
				result := scan.Result()
				if ctx.jsonFlag {
					return writeJSON(cmd, struct {
						store.Scan
						Disc discView `json:"disc"`
					}{Scan: *scan, Disc: newDiscView(result)})
				}
				fmt.Fprintln(out, renderField("Scan", scan.ID))
				fmt.Fprintln(out, renderField("Source", scan.Source))
				fmt.Fprintln(out, renderField("Scanned", scan.CreatedAt.Local().Format("2006-01-02 15:04:05")))
				fmt.Fprintln(out)
				renderResult(out, result, discRenderOptions{
					streams:    opts.streams,
					attributes: opts.attributes,
					messages:   opts.messages,
					colorize:   shouldColorize(out),
				})
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Print the stored makemkvcon output verbatim")
	cmd.Flags().BoolVar(&opts.streams, "streams", false, "Show per-title stream tables")
	cmd.Flags().BoolVar(&opts.attributes, "attributes", false, "Show every raw attribute")
	cmd.Flags().BoolVar(&opts.messages, "messages", false, "Show MSG lines")
	return cmd
}

func newHistoryDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a recorded scan",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(st *store.Store) error {
				scan, err := st.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if err := st.Delete(cmd.Context(), scan.ID); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted scan %s\n", scan.ID)
				return nil
			})
		},
	}
}

func newHistoryExportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "export <id> [dir]",
		Short: "Write a recorded scan's raw output to a file",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 2 {
				dir = args[1]
			}
			return ctx.withStore(func(st *store.Store) error {
				scan, err := st.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				target := filepath.Join(dir, exportFileName(*scan))
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return fmt.Errorf("create export directory %q: %w", dir, err)
				}
				if err := os.WriteFile(target, []byte(scan.Raw), 0o644); err != nil {
					return fmt.Errorf("write %s: %w", target, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", target)
				return nil
			})
		},
	}
}

func exportFileName(scan store.Scan) string {
	name := textutil.SanitizeFileName(scan.Label())
	if name == "" {
		name = "scan"
	}
	name = strings.ReplaceAll(name, " ", "_")
	return fmt.Sprintf("%s-%s.txt", name, shortID(scan.ID))
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
