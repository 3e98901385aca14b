package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newDrivesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "drives",
		Short: "List optical drives visible to makemkvcon",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.newClient()
			if err != nil {
				return err
			}
			drives, err := client.Drives(cmd.Context())
			if err != nil {
				return err
			}
			if ctx.jsonFlag {
				return writeJSON(cmd, drives)
			}
			out := cmd.OutOrStdout()
			if len(drives) == 0 {
				fmt.Fprintln(out, "No drives found")
				return nil
			}
			rows := make([][]string, 0, len(drives))
			for _, drive := range drives {
				disc := drive.DiscName
				if !drive.HasDisc() {
					disc = "(empty)"
				}
				rows = append(rows, []string{
					"disc:" + strconv.Itoa(drive.Index),
					drive.Device,
					drive.DriveName,
					disc,
					yesNo(drive.Enabled),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Source", "Device", "Drive", "Disc", "Enabled"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignLeft},
			))
			return nil
		},
	}
}
