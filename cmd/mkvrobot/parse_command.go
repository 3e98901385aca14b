package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"mkvrobot/internal/robot"
	"mkvrobot/internal/services"
)

type parseOptions struct {
	streams    bool
	attributes bool
	messages   bool
}

func newParseCommand(ctx *commandContext) *cobra.Command {
	var opts parseOptions

	cmd := &cobra.Command{
		Use:   "parse [file|-]",
		Short: "Parse saved makemkvcon robot output",
		Long: "Parse makemkvcon -r output from a file, or from stdin when the argument\n" +
			"is omitted or \"-\", and print the disc, title and stream summary.",
		Args:        cobra.MaximumNArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			input := cmd.InOrStdin()
			name := "stdin"
			if len(args) == 1 && strings.TrimSpace(args[0]) != "-" {
				name = args[0]
				file, err := os.Open(name)
				if err != nil {
					if os.IsNotExist(err) {
						return services.Wrap(services.ErrNotFound, "parse", "open", name, err)
					}
					return fmt.Errorf("open %s: %w", name, err)
				}
				defer file.Close()
				input = file
			}
			return runParse(cmd, ctx, input, name, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.streams, "streams", false, "Show per-title stream tables")
	cmd.Flags().BoolVar(&opts.attributes, "attributes", false, "Show every raw attribute")
	cmd.Flags().BoolVar(&opts.messages, "messages", false, "Show MSG lines")
	return cmd
}

func runParse(cmd *cobra.Command, ctx *commandContext, input io.Reader, name string, opts parseOptions) error {
	result, err := robot.ParseReader(input)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if ctx.jsonFlag {
		return writeJSON(cmd, newDiscView(result))
	}
	out := cmd.OutOrStdout()
	renderResult(out, result, discRenderOptions{
		streams:    opts.streams,
		attributes: opts.attributes,
		messages:   opts.messages,
		colorize:   shouldColorize(out),
	})
	return nil
}
