package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"

	"jlower/internal/arrays"
	"jlower/internal/driver"
	"jlower/internal/observ"
	"jlower/internal/project"
)

var lowerCmd = &cobra.Command{
	Use:   "lower [paths...]",
	Short: "Lower array constructions and varargs calls in units",
	Long: `Lower decodes each .jlu unit, rewrites array creations, brace initializers
and variable-arity calls into runtime constructor calls, and writes the result
to the output directory. Directories are searched recursively.`,
	RunE: runLower,
}

func init() {
	lowerCmd.Flags().StringP("out", "o", "", "output directory (overrides [translate].out_dir)")
	lowerCmd.Flags().Bool("no-cache", false, "bypass the disk cache")
	lowerCmd.Flags().Bool("decls", false, "print the runtime declarations each unit needs")
	lowerCmd.Flags().Bool("watch", false, "re-lower units when they change")
	lowerCmd.Flags().String("ui", "auto", "progress view (auto|on|off)")
}

func runLower(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		args = []string{"."}
	}
	opts, err := driverOptions(cmd, runConfig)
	if err != nil {
		return err
	}
	if out, _ := cmd.Flags().GetString("out"); out != "" {
		opts.OutDir = out
	}
	quiet, _ := cmd.Flags().GetBool("quiet")
	decls, _ := cmd.Flags().GetBool("decls")
	watch, _ := cmd.Flags().GetBool("watch")
	timings, _ := cmd.Flags().GetBool("timings")
	uiMode, _ := cmd.Flags().GetString("ui")
	showUI, err := useProgressUI(uiMode, quiet || watch)
	if err != nil {
		return err
	}

	run := func(ctx context.Context, paths []string) error {
		if timings {
			opts.Timer = observ.NewTimer()
		}
		files, err := driver.ListUnits(paths)
		if err != nil {
			return err
		}
		var res *driver.Result
		if showUI && len(files) > 0 {
			res, err = lowerWithUI(ctx, "lowering", files, opts)
		} else {
			res, err = driver.LowerFiles(ctx, files, opts)
		}
		printDiagnostics(cmd.ErrOrStderr(), res.Bag, opts.MaxDiagnostics)
		if err != nil {
			return err
		}
		if !quiet {
			printLowered(cmd.OutOrStdout(), res, decls)
		}
		if opts.Timer != nil {
			fmt.Fprint(cmd.ErrOrStderr(), opts.Timer.Summary())
		}
		return nil
	}

	if err := run(cmd.Context(), args); err != nil {
		if !watch {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "lower: %v\n", err)
	}
	if !watch {
		return nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	var ignore []string
	if opts.OutDir != "" {
		ignore = append(ignore, opts.OutDir)
	}
	w, err := driver.NewWatcher(args, ignore, driver.DefaultDebounce)
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	if !quiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "watching %d path(s); press Ctrl-C to stop\n", len(args))
	}
	return w.Run(ctx, func(ctx context.Context, changed []string) error {
		// A failing unit should not end the watch; diagnostics are already out.
		if err := run(ctx, changed); err != nil && !errors.Is(err, context.Canceled) {
			fmt.Fprintf(cmd.ErrOrStderr(), "lower: %v\n", err)
		}
		return nil
	})
}

// useProgressUI resolves --ui. Auto shows the view only on an interactive
// stdout and never in quiet or watch mode.
func useProgressUI(mode string, suppress bool) (bool, error) {
	switch mode {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "auto", "":
		return !suppress && isTerminal(os.Stdout), nil
	}
	return false, fmt.Errorf("invalid --ui value %q (want auto, on or off)", mode)
}

// driverOptions maps the effective configuration onto driver options.
func driverOptions(cmd *cobra.Command, cfg project.Config) (driver.Options, error) {
	maxDiag, err := cmd.Flags().GetInt("max-diagnostics")
	if err != nil {
		return driver.Options{}, err
	}
	opts := driver.Options{
		Runtime:        arrays.Runtime{Prefix: cfg.Translate.RuntimePrefix},
		Jobs:           cfg.Jobs(),
		OutDir:         cfg.Translate.OutDir,
		MaxDiagnostics: maxDiag,
	}
	noCache := false
	if f := cmd.Flags().Lookup("no-cache"); f != nil {
		noCache = f.Value.String() == "true"
	}
	if cfg.Build.Cache && !noCache {
		cache, err := driver.OpenDiskCache("jlower", cfg.Build.CacheDir)
		if err != nil {
			return driver.Options{}, fmt.Errorf("open cache: %w", err)
		}
		opts.Cache = cache
	}
	return opts, nil
}

func printLowered(w io.Writer, res *driver.Result, decls bool) {
	for _, ur := range res.Units {
		status := ""
		if ur.Cached {
			status = " (cached)"
		}
		target := ur.OutPath
		if target == "" {
			target = "-"
		} else if rel, err := filepath.Rel(".", target); err == nil {
			target = rel
		}
		fmt.Fprintf(w, "%s -> %s: %d init, %d length, %d dims, %d varargs%s\n",
			ur.Path, target, ur.Stats.Initializers, ur.Stats.Lengths, ur.Stats.Dimensions, ur.Stats.Varargs, status)
		if decls {
			for _, sig := range ur.Signatures {
				fmt.Fprintf(w, "  %s %s\n", sig.Class, sig.Declaration)
			}
		}
	}
}
