package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"dogwood/internal/history"
)

// execute runs the command tree in an isolated directory so that no stray
// dogwood.toml is picked up.
func execute(t *testing.T, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	return executeWithCache(t, t.TempDir(), stdin, args...)
}

func executeWithCache(t *testing.T, cache, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", cache)
	t.Chdir(t.TempDir())

	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetArgs(append([]string{"--color", "off"}, args...))
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&errOut)
	err = root.Execute()
	return out.String(), errOut.String(), err
}

func TestReplFromPipe(t *testing.T) {
	out, errOut, err := execute(t, "1 + 1\n\n5 / 0\n", "repl")
	if err != nil {
		t.Fatalf("repl: %v", err)
	}
	if want := ">>> 1 1 +\nResult: 2\n>>> >>> 5 0 /\n>>> "; out != want {
		t.Errorf("stdout = %q\nwant %q", out, want)
	}
	if !strings.Contains(errOut, "error[EVL3001]: evaluation overflowed") {
		t.Errorf("stderr = %q", errOut)
	}
}

func TestRootRunsRepl(t *testing.T) {
	out, _, err := execute(t, "2 ** 5 % 6\n")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Result: 2\n") {
		t.Errorf("stdout = %q", out)
	}
}

func TestEvalArgs(t *testing.T) {
	out, errOut, err := execute(t, "", "eval", "1 + 1", "30 / (2 * 3)", "3 + 5 ** 3 ** 3")
	if err != nil {
		t.Fatalf("eval: %v (stderr %q)", err, errOut)
	}
	want := "1 1 +\nResult: 2\n30 2 3 * /\nResult: 5\n3 5 3 3 ** ** +\nResult: 7450580596923828128\n"
	if out != want {
		t.Errorf("stdout = %q\nwant %q", out, want)
	}
}

func TestEvalFailureExitStatus(t *testing.T) {
	out, errOut, err := execute(t, "", "--format", "short", "eval", "1", "99999999999999999999")
	if !errors.Is(err, errLinesFailed) {
		t.Fatalf("err = %v, want errLinesFailed", err)
	}
	if out != "1\nResult: 1\n99999999999999999999\n" {
		t.Errorf("stdout = %q", out)
	}
	if want := "<args>:2:1: error EVL3002: cannot be represented as a u64\n"; errOut != want {
		t.Errorf("stderr = %q\nwant %q", errOut, want)
	}
}

func TestEvalFileWithJobs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "calc.txt")
	if err := os.WriteFile(path, []byte("1 + 2\n\n2 ** 10\n7 % 4\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	out, _, err := execute(t, "", "eval", "--jobs", "3", "-f", path)
	if err != nil {
		t.Fatal(err)
	}
	if want := "1 2 +\nResult: 3\n2 10 **\nResult: 1024\n7 4 %\nResult: 3\n"; out != want {
		t.Errorf("stdout = %q\nwant %q", out, want)
	}
}

func TestEvalStdinFile(t *testing.T) {
	out, errOut, err := execute(t, "1 +\n", "--format", "short", "eval", "-f", "-")
	if !errors.Is(err, errLinesFailed) {
		t.Fatalf("err = %v", err)
	}
	if out != "" {
		t.Errorf("stdout = %q", out)
	}
	if want := "<stdin>:1:4: error SYN2001: parsing error\n"; errOut != want {
		t.Errorf("stderr = %q\nwant %q", errOut, want)
	}
}

func TestEvalNothing(t *testing.T) {
	if _, _, err := execute(t, "", "eval"); err == nil {
		t.Fatal("expected an error without input")
	}
}

func TestConfigFileAndFlagPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dogwood.toml")
	conf := "[repl]\nshow_rpn = false\n\n[diagnostics]\nformat = \"short\"\n"
	if err := os.WriteFile(path, []byte(conf), 0o600); err != nil {
		t.Fatal(err)
	}

	out, errOut, err := execute(t, "", "--config", path, "eval", "1 + 1", "5 / 0")
	if !errors.Is(err, errLinesFailed) {
		t.Fatalf("err = %v", err)
	}
	if out != "Result: 2\n" {
		t.Errorf("show_rpn from config ignored: %q", out)
	}
	if want := "<args>:2:1: error EVL3001: evaluation overflowed\n"; errOut != want {
		t.Errorf("format from config ignored: %q", errOut)
	}

	_, errOut, _ = execute(t, "", "--config", path, "--format", "pretty", "eval", "5 / 0")
	if !strings.HasPrefix(errOut, "error[EVL3001]") {
		t.Errorf("flag should override config: %q", errOut)
	}
}

func TestBadConfigValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dogwood.toml")
	if err := os.WriteFile(path, []byte("[diagnostics]\nformat = \"xml\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, _, err := execute(t, "", "--config", path, "eval", "1"); err == nil {
		t.Fatal("expected invalid config error")
	}
}

func TestTokenize(t *testing.T) {
	out, _, err := execute(t, "", "--format", "json", "tokenize", "1", "+", "2")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Count(out, `"kind"`) != 4 {
		t.Errorf("expected 4 tokens including EOF:\n%s", out)
	}
}

func TestTokenizeLexError(t *testing.T) {
	out, errOut, err := execute(t, "", "--format", "short", "tokenize", "1 $")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `"$"`) {
		t.Errorf("invalid token missing:\n%s", out)
	}
	if errOut != "<args>:1:3: error LEX1001: lexing error\n" {
		t.Errorf("stderr = %q", errOut)
	}
}

func TestParse(t *testing.T) {
	out, _, err := execute(t, "", "parse", "1 + 2")
	if err != nil {
		t.Fatal(err)
	}
	if want := "1 2 +\n  +\n/ | \\\n1   2\n"; out != want {
		t.Errorf("stdout = %q\nwant %q", out, want)
	}
}

func TestParseBroken(t *testing.T) {
	out, _, err := execute(t, "", "--quiet", "parse", "1 +")
	if !errors.Is(err, errLinesFailed) {
		t.Fatalf("err = %v", err)
	}
	if out != "<no tree>\n" {
		t.Errorf("stdout = %q", out)
	}
}

func TestTracingToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.log")
	if _, _, err := execute(t, "", "--trace", path, "eval", "1 + 1"); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"driver:batch", "turn:turn", "phase:lex+parse", "phase:eval"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("trace lacks %q:\n%s", want, data)
		}
	}
}

func TestTraceRingDumpsOnExit(t *testing.T) {
	_, errOut, err := execute(t, "", "--trace-level", "phase", "--trace-mode", "ring", "eval", "1")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(errOut, "phase:eval") {
		t.Errorf("ring not dumped: %q", errOut)
	}
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "", "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "dogwood ") {
		t.Errorf("stdout = %q", out)
	}

	out, _, err = execute(t, "", "--format", "json", "version", "--full")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`"tool": "dogwood"`, `"git_commit": "unknown"`} {
		if !strings.Contains(out, want) {
			t.Errorf("json lacks %q:\n%s", want, out)
		}
	}

	if _, _, err := execute(t, "", "--format", "short", "version"); err == nil {
		t.Error("short format should be rejected")
	}
}

func TestReadUIMode(t *testing.T) {
	tests := []struct {
		in      string
		want    uiMode
		wantErr bool
	}{
		{"", uiModeAuto, false},
		{"AUTO", uiModeAuto, false},
		{" on ", uiModeOn, false},
		{"off", uiModeOff, false},
		{"maybe", "", true},
	}
	for _, tt := range tests {
		got, err := readUIMode(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("readUIMode(%q) = %q, %v", tt.in, got, err)
		}
	}
	if !shouldUseTUI(uiModeOn) || shouldUseTUI(uiModeOff) {
		t.Error("explicit modes must win")
	}
}

func TestProfilingFlags(t *testing.T) {
	dir := t.TempDir()
	cpu := filepath.Join(dir, "cpu.out")
	mem := filepath.Join(dir, "mem.out")
	if _, _, err := execute(t, "", "--cpu-profile", cpu, "--mem-profile", mem, "eval", "1 + 1"); err != nil {
		t.Fatal(err)
	}
	for _, p := range []string{cpu, mem} {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("profile %s not written: %v", p, err)
		}
	}
}

func TestReplSavesHistory(t *testing.T) {
	cache := t.TempDir()
	if _, _, err := executeWithCache(t, cache, "1 + 1\n\n2 * 3\n", "repl"); err != nil {
		t.Fatal(err)
	}
	if _, _, err := executeWithCache(t, cache, "4\n", "repl"); err != nil {
		t.Fatal(err)
	}
	got, err := history.Open("dogwood")
	if err != nil {
		t.Fatal(err)
	}
	entries, err := got.Load()
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"1 + 1", "2 * 3", "4"}; !reflect.DeepEqual(entries, want) {
		t.Errorf("history = %q, want %q", entries, want)
	}
}

func TestParseFix(t *testing.T) {
	out, _, err := execute(t, "", "--quiet", "parse", "--fix", "(1 +")
	if !errors.Is(err, errLinesFailed) {
		t.Fatalf("err = %v", err)
	}
	if want := "<no tree>\nfixed: (1 + 0)\n"; out != want {
		t.Errorf("stdout = %q, want %q", out, want)
	}
}
