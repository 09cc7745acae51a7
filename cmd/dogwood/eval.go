package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"fortio.org/safecast"
	"github.com/spf13/cobra"

	"dogwood/internal/parser"
	"dogwood/internal/repl"
	"dogwood/internal/source"
	"dogwood/internal/ui"
)

func newEvalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval [flags] [expr...]",
		Short: "Evaluate expressions without the prompt",
		Long: `Eval treats every argument, and every line of --file, as an independent
line of input. Lines run in parallel; output keeps input order.
The exit status is 1 if any line produced a report.`,
		RunE: runEval,
	}
	cmd.Flags().StringP("file", "f", "", "read expressions from a file, one per line (- for stdin)")
	cmd.Flags().Int("jobs", 0, "max parallel lines (0=auto)")
	return cmd
}

func runEval(cmd *cobra.Command, args []string) error {
	st, cleanup, err := prepare(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	lines, err := evalInputs(cmd, args)
	if err != nil {
		return err
	}
	if len(lines) == 0 {
		return errors.New("nothing to evaluate: pass expressions or --file")
	}

	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	opts := repl.BatchOptions{
		Jobs: jobs,
		Session: func(l source.Line) *repl.Session {
			return repl.NewSession(parser.Service{Name: l.Name, LineNo: l.No}, st.sessionOptions())
		},
	}

	var results []repl.TurnResult
	if shouldUseTUI(st.ui) && len(lines) > 1 {
		results, err = ui.RunBatch(cmd.Context(), "eval", lines, opts, cmd.ErrOrStderr())
	} else {
		results, err = repl.EvalBatch(cmd.Context(), lines, opts)
	}
	if err != nil {
		return err
	}

	printer := st.printer(cmd)
	failed := 0
	for i := range results {
		// пустые строки пропущены
		if results[i].Reports == nil {
			continue
		}
		if err := printer.Print(&results[i]); err != nil {
			return err
		}
		if results[i].Failed() {
			failed++
		}
	}
	if failed > 0 {
		return errLinesFailed
	}
	return nil
}

// evalInputs collects arguments first, then the lines of --file.
func evalInputs(cmd *cobra.Command, args []string) ([]source.Line, error) {
	lines := make([]source.Line, 0, len(args))
	for i, a := range args {
		no, err := safecast.Conv[uint32](i + 1)
		if err != nil {
			return nil, fmt.Errorf("too many arguments: %w", err)
		}
		l := source.NewLine("<args>", a)
		l.No = no
		lines = append(lines, l)
	}

	path, err := cmd.Flags().GetString("file")
	if err != nil {
		return nil, fmt.Errorf("failed to get file flag: %w", err)
	}
	if path == "" {
		return lines, nil
	}

	var content []byte
	name := path
	if path == "-" {
		name = "<stdin>"
		content, err = io.ReadAll(cmd.InOrStdin())
	} else {
		content, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return append(lines, source.SplitLines(name, content)...), nil
}
