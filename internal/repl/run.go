package repl

import (
	"context"
	"errors"
	"io"
	"strings"

	"dogwood/internal/source"
	"dogwood/internal/trace"
)

// DefaultPrompt is printed before each line.
const DefaultPrompt = ">>> "

// Run reads lines until end of input and prints one turn per non-blank
// line. Reaching end of input is a clean exit.
func Run(ctx context.Context, in LineReader, s *Session, p *Printer, prompt string) error {
	ctx, session := trace.Start(ctx, trace.ScopeDriver, "session")
	turns := 0
	defer func() {
		session.Set("turns", itoa(turns)).End("")
	}()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		text, err := in.ReadLine(prompt)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if strings.TrimSpace(text) == "" {
			continue
		}

		turns++
		res, err := s.Turn(ctx, source.NewLine("<stdin>", text))
		if err != nil {
			return err
		}
		if err := p.Print(&res); err != nil {
			return err
		}
	}
}
