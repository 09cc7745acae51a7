package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"dogwood/internal/trace"
	"dogwood/internal/version"
)

// errLinesFailed signals exit status 1 after the reports were already printed.
var errLinesFailed = errors.New("some lines failed")

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "dogwood",
		Short: "Checked unsigned 64-bit calculator",
		Long: `dogwood evaluates integer expressions over unsigned 64-bit values.
Every overflow is an error, and malformed input is repaired and explained.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runREPL,
	}
	// Устанавливаем версию для автоматического флага --version
	root.Version = version.Version

	root.AddCommand(newReplCmd())
	root.AddCommand(newEvalCmd())
	root.AddCommand(newTokenizeCmd())
	root.AddCommand(newParseCmd())
	root.AddCommand(newVersionCmd())

	// Глобальные флаги
	pf := root.PersistentFlags()
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.Bool("quiet", false, "suppress reports, print results only")
	pf.Bool("timings", false, "show per-line phase timings")
	pf.Int("max-diagnostics", 32, "maximum number of reports per line")
	pf.String("format", "pretty", "output format (pretty|short|json|msgpack)")
	pf.String("config", "", "path to a dogwood.toml (default: search upwards, then the user config dir)")
	pf.String("ui", "off", "interactive UI (auto|on|off)")
	pf.String("trace", "", "trace output file (- for stderr)")
	pf.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	pf.String("trace-mode", "stream", "trace storage (stream|ring|both)")
	pf.Int("trace-ring-size", trace.DefaultRingSize, "ring buffer capacity in events")
	pf.String("cpu-profile", "", "write a CPU profile to file")
	pf.String("mem-profile", "", "write a heap profile to file on exit")
	pf.String("runtime-trace", "", "write a Go runtime trace to file")

	return root
}

// main builds the command tree and executes it. Any error exits with status 1;
// errLinesFailed has already been reported line by line.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		if !errors.Is(err, errLinesFailed) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
