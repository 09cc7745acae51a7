package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"dogwood/internal/ast"
	"dogwood/internal/diagfmt"
	"dogwood/internal/fix"
	"dogwood/internal/parser"
	"dogwood/internal/source"
)

func newParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [flags] expr...",
		Short: "Print the postfix form and tree of an expression without evaluating it",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runParse,
	}
	cmd.Flags().Bool("spans", false, "annotate tree nodes with byte spans")
	cmd.Flags().Bool("fix", false, "print the line with the first repair of every failure applied")
	return cmd
}

func runParse(cmd *cobra.Command, args []string) error {
	st, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	spans, err := cmd.Flags().GetBool("spans")
	if err != nil {
		return fmt.Errorf("failed to get spans flag: %w", err)
	}
	applyFix, err := cmd.Flags().GetBool("fix")
	if err != nil {
		return fmt.Errorf("failed to get fix flag: %w", err)
	}

	svc := parser.Service{Name: "<args>"}
	line := source.NewLine(svc.Name, strings.Join(args, " "))
	res := parser.Parse(line, parser.Options{})

	if err := printFailures(cmd, st, line, res.Failures, svc); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if res.Expr != nil {
		if _, err := fmt.Fprintln(out, ast.FormatRPN(res.Expr, line.Text)); err != nil {
			return err
		}
	}
	if err := diagfmt.FormatTree(out, res.Expr, line.Text, diagfmt.TreeOpts{Spans: spans}); err != nil {
		return err
	}
	if applyFix && len(res.Failures) > 0 {
		fixed, err := fix.Apply(line.Text, res.Failures)
		switch {
		case errors.Is(err, fix.ErrNoFixes):
			fmt.Fprintln(cmd.ErrOrStderr(), "fix: no applicable repairs")
		case err != nil:
			return err
		default:
			if _, err := fmt.Fprintf(out, "fixed: %s\n", fixed.Text); err != nil {
				return err
			}
		}
	}
	if len(res.Failures) > 0 {
		return errLinesFailed
	}
	return nil
}
