package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"jlower/internal/project"
	"jlower/internal/trace"
)

var activeTracer trace.Tracer = trace.Nop

// setupTracing builds the tracer described by cfg and attaches it to the
// command context.
func setupTracing(cmd *cobra.Command, cfg project.Config) error {
	level, err := trace.ParseLevel(cfg.Trace.Level)
	if err != nil {
		return fmt.Errorf("invalid trace level: %w", err)
	}
	format, err := trace.ParseFormat(cfg.Trace.Format)
	if err != nil {
		return fmt.Errorf("invalid trace format: %w", err)
	}
	output := cfg.Trace.Output
	if output == "stderr" {
		output = "-"
	}
	tracer, err := trace.New(trace.Config{Level: level, Format: format, OutputPath: output})
	if err != nil {
		return fmt.Errorf("failed to create tracer: %w", err)
	}
	activeTracer = tracer
	ctx := trace.WithTracer(cmd.Context(), tracer)
	cmd.SetContext(ctx)
	return nil
}

func teardownTracing() {
	if err := activeTracer.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "trace: %v\n", err)
	}
	activeTracer = trace.Nop
}
