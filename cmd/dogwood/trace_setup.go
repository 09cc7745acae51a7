package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"dogwood/internal/config"
	"dogwood/internal/trace"
)

// setupTracing builds the recorder from the effective trace settings and
// attaches it to the command context. The cleanup function dumps the buffer
// to stderr in ring mode and closes the output file.
func setupTracing(cmd *cobra.Command, tc config.TraceConfig) (func(), error) {
	level, err := trace.ParseLevel(tc.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid trace level: %w", err)
	}
	mode, err := trace.ParseMode(tc.Mode)
	if err != nil {
		return nil, fmt.Errorf("invalid trace mode: %w", err)
	}

	rec, err := trace.New(trace.Config{
		Level:      level,
		Mode:       mode,
		OutputPath: tc.Output,
		RingSize:   tc.RingSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer: %w", err)
	}
	cmd.SetContext(trace.WithRecorder(cmd.Context(), rec))

	cleanup := func() {
		if mode == trace.ModeRing && rec.Buffered() {
			if err := rec.Dump(cmd.ErrOrStderr()); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "trace: dump error: %v\n", err)
			}
		}
		if err := rec.Close(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: close error: %v\n", err)
		}
	}
	return cleanup, nil
}
