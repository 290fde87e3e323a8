package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"jlower/internal/project"
)

// runConfig is the effective configuration of the current invocation.
var runConfig = project.Default()

// resolveConfig loads jlower.toml (explicit --config, else discovered) and
// applies command-line overrides on top.
func resolveConfig(cmd *cobra.Command) (project.Config, error) {
	flags := cmd.Flags()
	cfg := project.Default()

	explicit, err := flags.GetString("config")
	if err != nil {
		return cfg, err
	}
	if explicit != "" {
		if cfg, err = project.Load(explicit); err != nil {
			return cfg, err
		}
	} else {
		m, ok, err := project.LoadManifest(".")
		if err != nil {
			return cfg, err
		}
		if ok {
			cfg = m.Config
		}
	}

	if flags.Changed("prefix") {
		if cfg.Translate.RuntimePrefix, err = flags.GetString("prefix"); err != nil {
			return cfg, err
		}
	}
	if flags.Changed("jobs") {
		if cfg.Build.Jobs, err = flags.GetInt("jobs"); err != nil {
			return cfg, err
		}
	}
	if flags.Changed("trace") {
		if cfg.Trace.Output, err = flags.GetString("trace"); err != nil {
			return cfg, err
		}
		if !flags.Changed("trace-level") && cfg.Trace.Level == "off" {
			cfg.Trace.Level = "phase"
		}
	}
	if flags.Changed("trace-level") {
		if cfg.Trace.Level, err = flags.GetString("trace-level"); err != nil {
			return cfg, err
		}
	}
	if flags.Changed("trace-format") {
		if cfg.Trace.Format, err = flags.GetString("trace-format"); err != nil {
			return cfg, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
