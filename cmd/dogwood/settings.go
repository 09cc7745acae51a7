package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"dogwood/internal/config"
	"dogwood/internal/diagfmt"
	"dogwood/internal/repl"
)

// settings are the effective options of one command: flags that were set
// explicitly win over the config file, which wins over defaults.
type settings struct {
	cfg     config.Config
	format  diagfmt.Format
	color   bool
	quiet   bool
	timings bool
	ui      uiMode
}

func loadSettings(cmd *cobra.Command) (settings, error) {
	flags := cmd.Flags()

	path, err := flags.GetString("config")
	if err != nil {
		return settings{}, fmt.Errorf("failed to get config flag: %w", err)
	}
	wd, err := os.Getwd()
	if err != nil {
		return settings{}, fmt.Errorf("failed to get working directory: %w", err)
	}
	cfg, err := config.Resolve(path, wd)
	if err != nil {
		return settings{}, err
	}

	override := func(name string, dst *string) {
		if flags.Changed(name) {
			*dst, _ = flags.GetString(name)
		}
	}
	override("color", &cfg.Diagnostics.Color)
	override("format", &cfg.Diagnostics.Format)
	override("ui", &cfg.REPL.UI)
	override("trace-level", &cfg.Trace.Level)
	override("trace-mode", &cfg.Trace.Mode)
	override("trace", &cfg.Trace.Output)
	if flags.Changed("max-diagnostics") {
		cfg.Diagnostics.Max, _ = flags.GetInt("max-diagnostics")
	}
	if flags.Changed("trace-ring-size") {
		cfg.Trace.RingSize, _ = flags.GetInt("trace-ring-size")
	}
	// --trace без уровня включает фазы
	if flags.Changed("trace") && !flags.Changed("trace-level") && cfg.Trace.Level == "off" {
		cfg.Trace.Level = "phase"
	}

	st := settings{cfg: cfg}
	if st.format, err = diagfmt.ParseFormat(cfg.Diagnostics.Format); err != nil {
		return settings{}, err
	}
	if st.ui, err = readUIMode(cfg.REPL.UI); err != nil {
		return settings{}, err
	}
	if st.color, err = readColor(cfg.Diagnostics.Color); err != nil {
		return settings{}, err
	}
	if st.quiet, err = flags.GetBool("quiet"); err != nil {
		return settings{}, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if st.timings, err = flags.GetBool("timings"); err != nil {
		return settings{}, fmt.Errorf("failed to get timings flag: %w", err)
	}
	return st, nil
}

func readColor(value string) (bool, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "", "auto":
		return isTerminal(os.Stderr), nil
	default:
		return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", value)
	}
}

func (st settings) sessionOptions() repl.Options {
	return repl.Options{MaxReports: st.cfg.Diagnostics.Max}
}

func (st settings) printer(cmd *cobra.Command) repl.Printer {
	return repl.Printer{
		Out:    cmd.OutOrStdout(),
		Err:    cmd.ErrOrStderr(),
		Format: st.format,
		Pretty: diagfmt.PrettyOpts{
			Color:    st.color,
			Context:  st.cfg.Diagnostics.Context,
			ShowHelp: true,
		},
		JSON: diagfmt.JSONOpts{
			IncludePositions: true,
			IncludeHelp:      true,
			Max:              st.cfg.Diagnostics.Max,
		},
		ShowRPN: st.cfg.REPL.ShowRPN,
		Quiet:   st.quiet,
		Timings: st.timings,
	}
}

// prepare loads settings and starts tracing and profiling for a command that
// evaluates input. The returned cleanup stops both.
func prepare(cmd *cobra.Command) (settings, func(), error) {
	st, err := loadSettings(cmd)
	if err != nil {
		return settings{}, nil, err
	}
	stopTrace, err := setupTracing(cmd, st.cfg.Trace)
	if err != nil {
		return settings{}, nil, err
	}
	stopProf, err := setupProfiling(cmd)
	if err != nil {
		stopTrace()
		return settings{}, nil, err
	}
	return st, func() {
		stopProf()
		stopTrace()
	}, nil
}
