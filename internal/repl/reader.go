package repl

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// LineReader yields input lines without their terminator and io.EOF at the end.
type LineReader interface {
	ReadLine(prompt string) (string, error)
}

// Scanner reads lines from any reader, printing the prompt to Prompt
// when it is set.
type Scanner struct {
	sc     *bufio.Scanner
	prompt io.Writer
}

func NewScanner(r io.Reader, prompt io.Writer) *Scanner {
	return &Scanner{sc: bufio.NewScanner(r), prompt: prompt}
}

func (s *Scanner) ReadLine(prompt string) (string, error) {
	if s.prompt != nil && prompt != "" {
		if _, err := io.WriteString(s.prompt, prompt); err != nil {
			return "", err
		}
	}
	if !s.sc.Scan() {
		if err := s.sc.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return "", io.EOF
	}
	return s.sc.Text(), nil
}

// Terminal is a raw-mode line editor with history on an interactive tty.
// Output meant for the user goes through Writer so that newlines are
// translated while the tty is raw.
type Terminal struct {
	fd    int
	state *term.State
	t     *term.Terminal
}

// OpenTerminal puts stdin into raw mode. Close restores it.
func OpenTerminal(in *os.File, out io.Writer) (*Terminal, error) {
	fd := int(in.Fd())
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("enter raw mode: %w", err)
	}
	rw := struct {
		io.Reader
		io.Writer
	}{in, out}
	return &Terminal{fd: fd, state: state, t: term.NewTerminal(rw, "")}, nil
}

func (t *Terminal) ReadLine(prompt string) (string, error) {
	t.t.SetPrompt(prompt)
	line, err := t.t.ReadLine()
	if err != nil {
		// Ctrl-D на пустой строке даёт io.EOF
		return "", err
	}
	return line, nil
}

// Writer returns the writer that keeps the raw tty readable.
func (t *Terminal) Writer() io.Writer {
	return t.t
}

// Close leaves raw mode.
func (t *Terminal) Close() error {
	return term.Restore(t.fd, t.state)
}

// IsTerminal reports whether f is an interactive terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
