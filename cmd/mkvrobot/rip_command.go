package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"mkvrobot/internal/services"
	"mkvrobot/internal/services/makemkv"
	"mkvrobot/internal/textutil"
)

type ripView struct {
	Source      string   `json:"source"`
	Destination string   `json:"destination"`
	Mode        string   `json:"mode"`
	Saved       int      `json:"saved"`
	Failed      int      `json:"failed"`
	ReadErrors  int      `json:"read_errors"`
	Files       []string `json:"files"`
}

func newRipCommand(ctx *commandContext) *cobra.Command {
	var (
		device string
		title  string
		dest   string
		backup bool
	)

	cmd := &cobra.Command{
		Use:   "rip",
		Short: "Save titles to MKV files (or back up the disc) with makemkvcon",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			titleID, err := parseTitleSelector(title)
			if err != nil {
				return err
			}
			client, err := ctx.newClient()
			if err != nil {
				return err
			}
			source := ctx.source(device)
			runCtx := services.WithDevice(cmd.Context(), source.String())

			target := strings.TrimSpace(dest)
			if target == "" {
				report, err := client.Info(runCtx, source)
				if err != nil {
					return err
				}
				cfg, err := ctx.ensureConfig()
				if err != nil {
					return err
				}
				target = defaultRipDestination(cfg.Paths.DataDir, report)
			}

			var progress func(makemkv.ProgressUpdate)
			if !ctx.jsonFlag {
				progress = newProgressPrinter(cmd.ErrOrStderr()).update
			}

			mode := "mkv"
			var result *makemkv.RipResult
			if backup {
				mode = "backup"
				result, err = client.Backup(runCtx, source, target, progress)
			} else {
				result, err = client.Mkv(runCtx, source, titleID, target, progress)
			}
			if err != nil {
				return err
			}

			if ctx.jsonFlag {
				return writeJSON(cmd, ripView{
					Source:      source.String(),
					Destination: target,
					Mode:        mode,
					Saved:       result.Saved,
					Failed:      result.Failed,
					ReadErrors:  result.ReadErrors,
					Files:       result.Files,
				})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderField("Destination", target))
			fmt.Fprintln(out, renderField("Saved", strconv.Itoa(result.Saved)))
			if result.Failed > 0 {
				fmt.Fprintln(out, renderField("Failed", strconv.Itoa(result.Failed)))
			}
			if result.ReadErrors > 0 {
				fmt.Fprintln(out, renderField("Read errors", strconv.Itoa(result.ReadErrors)))
			}
			for _, file := range result.Files {
				fmt.Fprintf(out, "%s%s\n", statusIndent, file)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&device, "device", "d", "", "Source to rip (defaults to the configured device)")
	cmd.Flags().StringVarP(&title, "title", "t", "all", "Title number to save, or \"all\"")
	cmd.Flags().StringVarP(&dest, "dest", "o", "", "Output directory (defaults to <data_dir>/rips/<disc name>)")
	cmd.Flags().BoolVar(&backup, "backup", false, "Decrypted backup of the whole disc instead of MKV titles")
	return cmd
}

// parseTitleSelector maps "all" (or empty) to -1 and otherwise expects a
// non-negative title number.
func parseTitleSelector(value string) (int, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" || value == "all" {
		return -1, nil
	}
	id, err := strconv.Atoi(value)
	if err != nil || id < 0 {
		return 0, services.Wrap(services.ErrValidation, "rip", "title", fmt.Sprintf("invalid title %q", value), nil)
	}
	return id, nil
}

func defaultRipDestination(dataDir string, report *makemkv.Report) string {
	label := ""
	started := time.Now()
	if report != nil {
		started = report.StartedAt
		if report.Result != nil {
			disc := report.Result.Disc
			label = textutil.DisplayName(disc.Name(), disc.VolumeName())
		}
	}
	name := textutil.SanitizeFileName(label)
	if name == "" {
		name = "disc-" + started.UTC().Format("20060102-150405")
	}
	return filepath.Join(dataDir, "rips", name)
}

// progressPrinter writes a line whenever the stage changes or the overall
// percentage crosses another ten percent step.
type progressPrinter struct {
	out   io.Writer
	stage string
	step  int
}

func newProgressPrinter(out io.Writer) *progressPrinter {
	return &progressPrinter{out: out, step: -1}
}

func (p *progressPrinter) update(update makemkv.ProgressUpdate) {
	step := int(update.Percent) / 10
	if update.Stage == p.stage && step == p.step {
		return
	}
	p.stage = update.Stage
	p.step = step
	stage := update.Stage
	if stage == "" {
		stage = "Working"
	}
	fmt.Fprintf(p.out, "%s %5.1f%%\n", stage, update.Percent)
}
