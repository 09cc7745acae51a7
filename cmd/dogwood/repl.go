package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"dogwood/internal/history"
	"dogwood/internal/parser"
	"dogwood/internal/repl"
	"dogwood/internal/ui"
)

func newReplCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start the interactive calculator (the default command)",
		Args:  cobra.NoArgs,
		RunE:  runREPL,
	}
}

func runREPL(cmd *cobra.Command, _ []string) error {
	st, cleanup, err := prepare(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx := cmd.Context()
	session := repl.NewSession(parser.Service{}, st.sessionOptions())
	printer := st.printer(cmd)
	prompt := st.cfg.REPL.Prompt

	store, past := openHistory(cmd, st)
	defer func() {
		if err := store.Save(past); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "history: %v\n", err)
		}
	}()

	if shouldUseTUI(st.ui) {
		past, err = ui.RunREPL(ctx, session, printer, prompt, past, cmd.InOrStdin(), cmd.OutOrStdout())
		return err
	}

	var in repl.LineReader
	// Строчный редактор только на настоящем терминале; в пайпе читаем построчно.
	if f, ok := cmd.InOrStdin().(*os.File); ok && isTerminal(f) && isTerminal(os.Stdout) {
		t, err := repl.OpenTerminal(f, os.Stdout)
		if err != nil {
			return err
		}
		defer t.Close()
		printer.Out, printer.Err = t.Writer(), t.Writer()
		in = t
	} else {
		in = repl.NewScanner(cmd.InOrStdin(), cmd.OutOrStdout())
	}
	return repl.Run(ctx, &recorder{LineReader: in, lines: &past}, session, &printer, prompt)
}

// openHistory loads saved input. Problems with the history file are
// reported and otherwise ignored; a nil store saves nothing.
func openHistory(cmd *cobra.Command, st settings) (*history.Store, []string) {
	if !st.cfg.REPL.History {
		return nil, nil
	}
	store, err := history.Open("dogwood")
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "history: %v\n", err)
		return nil, nil
	}
	past, err := store.Load()
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "history: %v\n", err)
	}
	return store, past
}

// recorder appends every non-blank line read to lines.
type recorder struct {
	repl.LineReader
	lines *[]string
}

func (r *recorder) ReadLine(prompt string) (string, error) {
	line, err := r.LineReader.ReadLine(prompt)
	if err == nil && strings.TrimSpace(line) != "" {
		*r.lines = append(*r.lines, line)
	}
	return line, err
}
