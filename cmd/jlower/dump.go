package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"jlower/internal/driver"
	"jlower/internal/ir"
)

var dumpCmd = &cobra.Command{
	Use:   "dump <file.jlu>",
	Short: "Print a unit's tree",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		u, err := ir.UnmarshalUnit(data)
		if err != nil {
			return fmt.Errorf("%s: %w", args[0], err)
		}
		lowered, _ := cmd.Flags().GetBool("lowered")
		if lowered {
			opts, err := driverOptions(cmd, runConfig)
			if err != nil {
				return err
			}
			if _, err := driver.LowerUnit(cmd.Context(), u, opts); err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
		}
		return ir.Fprint(cmd.OutOrStdout(), u)
	},
}

func init() {
	dumpCmd.Flags().Bool("lowered", false, "run the array lowering before printing")
}
