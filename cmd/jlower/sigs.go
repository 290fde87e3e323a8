package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"jlower/internal/driver"
)

var sigsCmd = &cobra.Command{
	Use:   "sigs [paths...]",
	Short: "List the runtime array constructors the units need",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			args = []string{"."}
		}
		opts, err := driverOptions(cmd, runConfig)
		if err != nil {
			return err
		}
		opts.OutDir = ""
		files, err := driver.ListUnits(args)
		if err != nil {
			return err
		}
		res, err := driver.LowerFiles(cmd.Context(), files, opts)
		printDiagnostics(cmd.ErrOrStderr(), res.Bag, opts.MaxDiagnostics)
		if err != nil {
			return err
		}
		decls, _ := cmd.Flags().GetBool("decls")
		usage := res.SignatureUsage()
		if decls {
			for _, u := range usage {
				fmt.Fprintln(cmd.OutOrStdout(), u.Declaration)
			}
			return nil
		}
		rows := [][]string{{"CLASS", "SELECTOR", "SHAPE", "KIND", "UNITS"}}
		for _, u := range usage {
			rows = append(rows, []string{u.Class, u.Selector, u.Shape, u.Kind, strconv.Itoa(u.Units)})
		}
		fmt.Fprint(cmd.OutOrStdout(), formatTable(rows))
		return nil
	},
}

func init() {
	sigsCmd.Flags().Bool("decls", false, "print declarations instead of a table")
}
