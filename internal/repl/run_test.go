package repl_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"dogwood/internal/repl"
)

func TestRunTranscript(t *testing.T) {
	input := "1 + 1\n\n   \n5 / 0\n2 ** 5 % 6\n"
	var out, errOut bytes.Buffer
	in := repl.NewScanner(strings.NewReader(input), &out)
	p := &repl.Printer{Out: &out, Err: &errOut, ShowRPN: true}

	if err := repl.Run(context.Background(), in, newSession(), p, repl.DefaultPrompt); err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := ">>> 1 1 +\nResult: 2\n>>> >>> >>> 5 0 /\n>>> 2 5 ** 6 %\nResult: 2\n>>> "
	if out.String() != want {
		t.Errorf("stdout = %q\nwant %q", out.String(), want)
	}
	if n := strings.Count(errOut.String(), "evaluation overflowed"); n != 1 {
		t.Errorf("stderr = %q", errOut.String())
	}
}

func TestRunEmptyInput(t *testing.T) {
	var out bytes.Buffer
	in := repl.NewScanner(strings.NewReader(""), nil)
	p := &repl.Printer{Out: &out, Err: &out}
	if err := repl.Run(context.Background(), in, newSession(), p, repl.DefaultPrompt); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("unexpected output %q", out.String())
	}
}

type failingReader struct{ err error }

func (r failingReader) ReadLine(string) (string, error) { return "", r.err }

func TestRunReadError(t *testing.T) {
	boom := errors.New("boom")
	p := &repl.Printer{Out: io.Discard, Err: io.Discard}
	err := repl.Run(context.Background(), failingReader{boom}, newSession(), p, "")
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	in := repl.NewScanner(strings.NewReader("1\n"), nil)
	p := &repl.Printer{Out: io.Discard, Err: io.Discard}
	if err := repl.Run(ctx, in, newSession(), p, ""); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v", err)
	}
}
