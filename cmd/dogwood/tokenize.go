package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"dogwood/internal/diag"
	"dogwood/internal/diagfmt"
	"dogwood/internal/parser"
	"dogwood/internal/repl"
	"dogwood/internal/source"
)

func newTokenizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tokenize [flags] expr...",
		Short: "Print the token stream of an expression",
		Long:  `Tokenize lexes the arguments, joined by spaces, as one line and prints every token.`,
		Args:  cobra.MinimumNArgs(1),
		RunE:  runTokenize,
	}
}

func runTokenize(cmd *cobra.Command, args []string) error {
	st, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	svc := parser.Service{Name: "<args>"}
	line := source.NewLine(svc.Name, strings.Join(args, " "))
	res := parser.Parse(line, parser.Options{})

	// Выводим только ошибку лексера: разбор здесь не интересен
	var lexFailures []diag.Failure
	for _, f := range res.Failures {
		if _, ok := f.(diag.LexFailure); ok {
			lexFailures = append(lexFailures, f)
		}
	}
	if err := printFailures(cmd, st, line, lexFailures, svc); err != nil {
		return err
	}

	switch st.format {
	case diagfmt.FormatJSON:
		return diagfmt.FormatTokensJSON(cmd.OutOrStdout(), res.Tokens)
	default:
		return diagfmt.FormatTokensPretty(cmd.OutOrStdout(), res.Tokens, line)
	}
}

// printFailures renders failures of line with the configured printer.
func printFailures(cmd *cobra.Command, st settings, line source.Line, failures []diag.Failure, ex diag.Explainer) error {
	if len(failures) == 0 {
		return nil
	}
	bag := diag.NewBag(st.cfg.Diagnostics.Max)
	for _, f := range failures {
		bag.Add(diag.Render(line.Text, f, ex))
	}
	printer := st.printer(cmd)
	if err := printer.Print(&repl.TurnResult{Line: line, Reports: bag}); err != nil {
		return fmt.Errorf("print reports: %w", err)
	}
	return nil
}
