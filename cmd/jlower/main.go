package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"jlower/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "jlower",
	Short: "Array and varargs lowering for translated Java units",
	Long: `jlower rewrites array creation and variable-arity calls in translated
Java units into calls on the target runtime's array wrapper constructors.`,
	SilenceUsage:      true,
	PersistentPreRunE: setupRun,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		teardownTracing()
	},
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(lowerCmd)
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(sigsCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	rootCmd.PersistentFlags().String("config", "", "path to jlower.toml (default: search upwards from the working directory)")
	rootCmd.PersistentFlags().String("prefix", "", "runtime class prefix (overrides [translate].runtime_prefix)")
	rootCmd.PersistentFlags().Int("jobs", 0, "parallel units (overrides [build].jobs; 0 = GOMAXPROCS)")
	rootCmd.PersistentFlags().String("trace", "", "trace output path (- for stderr)")
	rootCmd.PersistentFlags().String("trace-level", "", "trace level (off|error|phase|detail|debug)")
	rootCmd.PersistentFlags().String("trace-format", "", "trace format (auto|text|ndjson)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setupRun applies colour mode, loads configuration and starts tracing
// before any subcommand runs.
func setupRun(cmd *cobra.Command, args []string) error {
	mode, err := cmd.Flags().GetString("color")
	if err != nil {
		return err
	}
	switch mode {
	case "auto":
		color.NoColor = !isTerminal(os.Stdout)
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	default:
		return fmt.Errorf("invalid --color %q (expected auto|on|off)", mode)
	}
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	runConfig = cfg
	return setupTracing(cmd, cfg)
}

// isTerminal reports whether f is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
